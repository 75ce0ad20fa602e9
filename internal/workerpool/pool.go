package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	ErrPoolFull   = errors.New("task pool is full")
	ErrPoolClosed = errors.New("task pool is closed")
)

// Job is a unit of work. It receives the context of the submitter.
type Job func(ctx context.Context) error

type Submitter interface {
	Submit(ctx context.Context, job Job) (<-chan error, error)
}

type entry struct {
	ctx  context.Context
	job  Job
	done chan error
}

type Pool struct {
	logger *logrus.Logger
	queue  chan entry
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func New(logger *logrus.Logger, poolSize int) *Pool {
	return &Pool{
		logger: logger,
		queue:  make(chan entry, poolSize),
	}
}

func (p *Pool) Start(workers int) {
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.work(i)
	}
}

// Submit queues job without blocking. The returned channel receives the
// job's error exactly once.
func (p *Pool) Submit(ctx context.Context, job Job) (<-chan error, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrPoolClosed
	}

	e := entry{ctx: ctx, job: job, done: make(chan error, 1)}
	select {
	case p.queue <- e:
		return e.done, nil
	default:
		return nil, ErrPoolFull
	}
}

// Shutdown stops accepting jobs and waits for queued ones to finish.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) work(n int) {
	defer p.wg.Done()

	for e := range p.queue {
		if err := e.ctx.Err(); err != nil {
			e.done <- err
			continue
		}
		e.done <- p.run(n, e)
	}
}

func (p *Pool) run(n int, e entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithContext(e.ctx).WithField("worker", n).Errorf("job panicked: %v", r)
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return e.job(e.ctx)
}
