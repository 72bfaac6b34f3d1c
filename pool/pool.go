// Package pool runs blocking extraction calls on a fixed set of workers so
// request goroutines never execute slow file decoding directly.
package pool

import (
	"context"
	"sync"
)

// Pool is a fixed-size worker pool. It is process-wide and shared by all
// requests; every submitted call executes independently, with no caching and
// no deduplication.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

func New(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	p := &Pool{tasks: make(chan func())}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				task()
			}
		}()
	}
	return p
}

// Close stops accepting work and waits for in-flight tasks to finish.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.tasks) })
	p.wg.Wait()
}

// Run executes fn on a pool worker, blocks until it completes, and returns
// fn's result unchanged. Waiting for a free worker is abandoned when ctx is
// done; a task that has already started always runs to completion.
func Run[T any](ctx context.Context, p *Pool, fn func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	done := make(chan outcome, 1)
	task := func() {
		value, err := fn()
		done <- outcome{value: value, err: err}
	}

	select {
	case p.tasks <- task:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}

	out := <-done
	return out.value, out.err
}
