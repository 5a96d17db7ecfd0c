package tasks

import (
	"log"
	"sync"
)

// Runner executes best-effort background work handed off by request
// handlers. Tasks are queued on a buffered channel and run by a fixed pool
// of workers; a task failure is logged and never reaches the code that
// enqueued it, so a mission-assignment or progress-update error can never
// fail the HTTP request that triggered it.
type Runner struct {
	queue chan task
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

type task struct {
	name string
	fn   func() error
}

// NewRunner starts a runner with the given worker count and queue size
func NewRunner(workers, queueSize int) *Runner {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	r := &Runner{queue: make(chan task, queueSize)}
	r.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go r.worker()
	}
	return r
}

// Enqueue hands off a task without blocking the caller. If the queue is full
// or the runner is shut down the task is dropped with a log line; callers
// must treat every task as best-effort.
func (r *Runner) Enqueue(name string, fn func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		log.Printf("task %s dropped: runner is shut down", name)
		return
	}

	select {
	case r.queue <- task{name: name, fn: fn}:
	default:
		log.Printf("task %s dropped: queue full", name)
	}
}

// Close stops accepting tasks, waits for queued work to drain
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Runner) worker() {
	defer r.wg.Done()
	for t := range r.queue {
		r.run(t)
	}
}

// run executes one task, containing panics so a bad task cannot take a
// worker goroutine down with it
func (r *Runner) run(t task) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("task %s panicked: %v", t.name, rec)
		}
	}()
	if err := t.fn(); err != nil {
		log.Printf("task %s failed: %v", t.name, err)
	}
}
