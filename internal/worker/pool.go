// worker/pool.go
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a unit of detached work. The context carries the per-job timeout.
type Job func(ctx context.Context) error

type jobWrapper struct {
	id string
	fn Job
}

// Pool runs jobs on a fixed set of goroutines. Submit never blocks: when the
// buffer is full the job is dropped and Submit reports false.
type Pool struct {
	jobs    chan jobWrapper
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewPool(workerCount int, bufferSize int, timeout time.Duration, logger *slog.Logger) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool{
		jobs:    make(chan jobWrapper, bufferSize),
		timeout: timeout,
		logger:  logger,
	}

	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.run(job)
	}
}

// run uses context.Background because jobs outlive the request that
// submitted them.
func (p *Pool) run(job jobWrapper) {
	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if err := job.fn(ctx); err != nil {
		p.logger.Error("job failed", "job_id", job.id, "error", err)
	}
}

func (p *Pool) Submit(id string, fn Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobs <- jobWrapper{id: id, fn: fn}:
		return true
	default:
		return false
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}
