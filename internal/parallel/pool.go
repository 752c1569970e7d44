// Package parallel runs independent searches on a bounded set of
// goroutines. Each search owns its session, so the tasks share nothing but
// the pool.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrPoolShutdown is returned when trying to submit tasks to a shutdown pool.
var ErrPoolShutdown = errors.New("worker pool has been shutdown")

// WorkerPool manages a fixed number of goroutines. Submit blocks while every
// worker is busy and the queue is full, which bounds how many searches are
// held in memory at once.
type WorkerPool struct {
	maxWorkers int
	taskChan   chan func()
	workerWg   sync.WaitGroup
	mu         sync.RWMutex
	closed     bool
	once       sync.Once
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If maxWorkers is 0 or negative, it defaults to the number of CPU cores.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		maxWorkers: maxWorkers,
		taskChan:   make(chan func(), maxWorkers*2),
	}
	for i := 0; i < maxWorkers; i++ {
		pool.workerWg.Add(1)
		go pool.worker()
	}
	return pool
}

// Workers returns the number of goroutines in the pool.
func (wp *WorkerPool) Workers() int {
	return wp.maxWorkers
}

func (wp *WorkerPool) worker() {
	defer wp.workerWg.Done()
	for task := range wp.taskChan {
		task()
	}
}

// Submit queues task for execution, blocking until there is room in the
// queue or ctx is done.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return ErrPoolShutdown
	}
	select {
	case wp.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting tasks and waits for the queued ones to finish.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskChan)
		wp.mu.Unlock()
		wp.workerWg.Wait()
	})
}

// Batch groups tasks submitted to a pool so they can be waited on together.
// The first error returned by a task cancels the context handed to the
// tasks that have not finished yet.
type Batch struct {
	pool   *WorkerPool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
	err    error
}

// NewBatch starts a batch on the pool. The tasks' context derives from ctx.
func (wp *WorkerPool) NewBatch(ctx context.Context) *Batch {
	ctx, cancel := context.WithCancel(ctx)
	return &Batch{pool: wp, ctx: ctx, cancel: cancel}
}

// Go submits task. An error is returned only when the task could not be
// queued; errors from the task itself are reported by Wait.
func (b *Batch) Go(task func(ctx context.Context) error) error {
	b.wg.Add(1)
	err := b.pool.Submit(b.ctx, func() {
		defer b.wg.Done()
		if err := task(b.ctx); err != nil {
			b.fail(err)
		}
	})
	if err != nil {
		b.wg.Done()
		b.fail(err)
	}
	return err
}

func (b *Batch) fail(err error) {
	b.once.Do(func() {
		b.err = err
		b.cancel()
	})
}

// Wait blocks until every submitted task has returned and reports the first
// error.
func (b *Batch) Wait() error {
	b.wg.Wait()
	b.cancel()
	return b.err
}
