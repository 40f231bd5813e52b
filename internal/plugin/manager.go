// internal/plugin/manager.go
package plugin

import (
	"fmt"
	"sync"

	"github.com/wovenlab/loom/internal/logger"
)

// Manager holds registered plugins and drives their lifecycle.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewManager creates an empty plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin. Must be called before InitializePlugins.
func (m *Manager) Register(p Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin %q already registered", name)
	}

	m.plugins[name] = p
	logger.Debugf("plugin: registered %q", name)
	return nil
}

// InitializePlugins calls Initialize on every registered plugin. A failing
// plugin is logged and skipped so one bad plugin cannot take the editor
// down.
func (m *Manager) InitializePlugins(api EditorAPI) {
	for _, p := range m.snapshot() {
		if err := p.Initialize(api); err != nil {
			logger.Errorf("plugin: initializing %q failed: %v", p.Name(), err)
			continue
		}
		logger.Debugf("plugin: initialized %q", p.Name())
	}
}

// ShutdownPlugins calls Shutdown on every registered plugin.
func (m *Manager) ShutdownPlugins() {
	for _, p := range m.snapshot() {
		if err := p.Shutdown(); err != nil {
			logger.Errorf("plugin: shutting down %q failed: %v", p.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}

// snapshot copies the plugin list so lifecycle calls run unlocked.
func (m *Manager) snapshot() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]Plugin, 0, len(m.plugins))
	for _, p := range m.plugins {
		list = append(list, p)
	}
	return list
}
