// internal/event/manager.go
package event

import (
	"sync"

	"github.com/wovenlab/loom/internal/logger"
)

// Handler is the subscriber signature. Returning true marks the event
// consumed and stops propagation to later subscribers.
type Handler func(e Event) bool

// Manager handles event subscriptions and synchronous dispatch. Dispatch
// runs on the caller's goroutine; handlers that need real work schedule it
// elsewhere (the syntax manager's debounce, the task pool).
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates an empty event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler for an event type. Handlers run in
// subscription order.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[eventType] = append(m.handlers[eventType], handler)
}

// Dispatch sends an event to all handlers registered for its type.
// The handler slice is copied so a handler may subscribe during dispatch
// without invalidating the iteration.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	m.mu.RLock()
	handlers := m.handlers[eventType]
	handlersCopy := make([]Handler, len(handlers))
	copy(handlersCopy, handlers)
	m.mu.RUnlock()

	if len(handlersCopy) == 0 {
		return
	}
	logger.DebugTagf("event", "dispatching type %v to %d handler(s)", eventType, len(handlersCopy))

	e := Event{Type: eventType, Data: data}
	for _, handler := range handlersCopy {
		if handler(e) {
			break
		}
	}
}
