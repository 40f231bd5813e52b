// internal/task/pool.go
package task

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/wovenlab/loom/internal/logger"
)

var (
	// ErrRunning is returned when Start is called on a running pool.
	ErrRunning = errors.New("task pool is already running")

	// ErrStopped is returned when Spawn or Stop is called on a stopped pool.
	ErrStopped = errors.New("task pool is not running")

	// ErrQueueFull is returned when the job queue cannot accept more work.
	ErrQueueFull = errors.New("task queue is full")
)

// ID tags a spawned closure. IDs are unique and strictly increasing within
// one Pool, so a later submission always carries a larger ID.
type ID uint64

// Result delivers a closure's return value back to the owner, tagged with
// the ID Spawn handed out for it.
type Result struct {
	ID    ID
	Value any
}

type job struct {
	id ID
	fn func() any
}

// Pool runs closures on a fixed set of worker goroutines. The owner spawns
// work, then polls Results from its event loop; nothing runs on a worker
// beyond the closure itself, so all state transitions stay on the owner
// side.
type Pool struct {
	workers   int
	queueSize int

	mu      sync.Mutex // guards channel creation in Start/Stop
	queue   chan job
	results chan Result
	running atomic.Bool
	wg      sync.WaitGroup

	nextID    atomic.Uint64
	spawned   atomic.Uint64
	completed atomic.Uint64
	panicked  atomic.Uint64
	dropped   atomic.Uint64
}

// Option configures a Pool before Start.
type Option func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithQueueSize sets the job queue capacity.
func WithQueueSize(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.queueSize = n
		}
	}
}

// NewPool creates a stopped pool; call Start before spawning.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		workers:   2,
		queueSize: 64,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the worker goroutines.
func (p *Pool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running.Load() {
		return ErrRunning
	}

	p.queue = make(chan job, p.queueSize)
	// Sized so a worker can always deliver: at most queueSize queued plus
	// one in-flight job per worker are ever undelivered.
	p.results = make(chan Result, p.queueSize+p.workers)
	p.running.Store(true)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(p.queue, p.results)
	}

	logger.Debugf("task pool started with %d workers", p.workers)
	return nil
}

// Stop rejects new work, lets queued jobs finish, and waits for the workers
// until ctx expires. The results channel is closed once all workers have
// exited, so a drain loop over Results terminates.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running.Load() {
		p.mu.Unlock()
		return ErrStopped
	}
	p.running.Store(false)
	close(p.queue)
	results := p.results
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(results)
		close(done)
	}()

	select {
	case <-done:
		logger.Debugf("task pool stopped: %+v", p.Stats())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Spawn queues fn for execution on a worker and returns its ID. The
// closure's return value arrives later on Results tagged with that ID.
// Returns ErrStopped before Start or after Stop, and ErrQueueFull when the
// queue is at capacity.
func (p *Pool) Spawn(fn func() any) (ID, error) {
	if !p.running.Load() {
		return 0, ErrStopped
	}

	id := ID(p.nextID.Add(1))
	select {
	case p.queue <- job{id: id, fn: fn}:
		p.spawned.Add(1)
		return id, nil
	default:
		p.dropped.Add(1)
		return 0, ErrQueueFull
	}
}

// Results returns the channel the owner polls for completed work. It yields
// one Result per successfully spawned closure, including panicked ones, and
// is closed by Stop after the last worker exits.
func (p *Pool) Results() <-chan Result {
	return p.results
}

func (p *Pool) worker(queue <-chan job, results chan<- Result) {
	defer p.wg.Done()
	for j := range queue {
		results <- p.run(j)
		p.completed.Add(1)
	}
}

// run executes one job. A panicking closure yields a Result with a nil
// Value rather than killing the worker.
func (p *Pool) run(j job) (res Result) {
	res = Result{ID: j.id}
	defer func() {
		if r := recover(); r != nil {
			p.panicked.Add(1)
			logger.Errorf("task %d panicked: %v\n%s", j.id, r, debug.Stack())
		}
	}()
	res.Value = j.fn()
	return res
}

// QueueDepth returns the number of jobs waiting for a worker.
func (p *Pool) QueueDepth() int {
	if !p.running.Load() {
		return 0
	}
	return len(p.queue)
}

// IsRunning reports whether Start has been called and Stop has not.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}

// Stats is a point-in-time snapshot of pool counters.
type Stats struct {
	Spawned   uint64
	Completed uint64
	Panicked  uint64
	Dropped   uint64
}

// Stats returns the pool's counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Spawned:   p.spawned.Load(),
		Completed: p.completed.Load(),
		Panicked:  p.panicked.Load(),
		Dropped:   p.dropped.Load(),
	}
}
