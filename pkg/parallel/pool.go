package parallel

import (
	"fmt"
	"math"
	"sync"
)

// Pool manages a bounded set of worker goroutines executing submitted tasks.
type Pool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // Protects tasks from concurrent close during send
	closed  bool         // Protected by mu

	errMu sync.Mutex
	err   error // First task panic, surfaced via Err
}

// ErrTooManyWorkers is returned when the worker count exceeds the maximum allowed.
var ErrTooManyWorkers = fmt.Errorf("worker count exceeds maximum")

// MaxPoolWorkers is the maximum number of workers allowed in a pool.
const MaxPoolWorkers = math.MaxInt / 2

// NewPool creates a worker pool with the given number of workers.
// Non-positive counts default to 1.
func NewPool(workers int) (*Pool, error) {
	if workers <= 0 {
		workers = 1
	}

	// Prevent overflow in buffer size calculation
	if workers > MaxPoolWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxPoolWorkers)
	}

	p := &Pool{
		workers: workers,
		tasks:   make(chan func(), workers*2),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p, nil
}

// worker processes tasks from the queue
func (p *Pool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		// Capture task panics instead of crashing the worker; the first
		// one is reported through Err
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.errMu.Lock()
					if p.err == nil {
						p.err = fmt.Errorf("task panic: %v", r)
					}
					p.errMu.Unlock()
				}
			}()
			task()
		}()
	}
}

// Submit adds a task to the pool.
// Returns false if the pool is closed, true if the task was submitted.
func (p *Pool) Submit(task func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return false
	}

	// Safe to send because we hold the lock and the pool is not closed
	p.tasks <- task
	return true
}

// Err returns the first task panic observed so far, or nil.
func (p *Pool) Err() error {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	return p.err
}

// Workers returns the pool's worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// Close shuts down the pool and waits for in-flight tasks to finish.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
	})
	p.wg.Wait()
}
