// Package worker provides the bounded fan-out pool used by the enrichment
// stage. Concurrency is capped so per-point weather lookups do not swamp
// the forecast API.
package worker

import (
	"context"
	"sync"
)

type ProcessFunc[T any] func(ctx context.Context, job T)

type Pool[T any] struct {
	numWorkers int
	jobs       chan T
	process    ProcessFunc[T]
	wg         sync.WaitGroup
}

func NewPool[T any](numWorkers, bufferSize int, process ProcessFunc[T]) *Pool[T] {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Pool[T]{
		numWorkers: numWorkers,
		jobs:       make(chan T, bufferSize),
		process:    process,
	}
}

func (p *Pool[T]) Start(ctx context.Context) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool[T]) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.process(ctx, job)
		}
	}
}

func (p *Pool[T]) Submit(job T) {
	p.jobs <- job
}

// Stop closes the job channel and blocks until all queued jobs have been
// processed (or the workers' context was cancelled).
func (p *Pool[T]) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
