// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for parallel
// computation. A Pool is created once and reused across many operations:
// the batch driver shares one pool between spectrum jobs and the row bands
// of each image.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := pool.ForEach(ctx, len(jobs), func(ctx context.Context, i int) error {
//	    return jobs[i].Run(ctx)
//	})
package workerpool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem represents a single parallel operation to execute.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	// Spawn persistent workers
	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of indices.
// Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p.closed.Load() {
		// Fallback to sequential if pool is closed
		fn(0, n)
		return
	}

	// Determine number of workers to use (don't use more workers than items)
	workers := min(p.numWorkers, n)

	// For very small n, just run sequentially
	if workers == 1 {
		fn(0, n)
		return
	}

	// Calculate chunk size (ensure all items are covered)
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			// No work for this worker
			wg.Done()
			continue
		}

		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}

// ForEach calls fn for each index in [0, n) using atomic work stealing and
// returns the combined errors of all failed calls. Once ctx is done no new
// indices are started and ctx.Err() is included in the result.
//
// fn must not itself call back into the same pool: workers blocked on a
// nested barrier would deadlock it.
func (p *Pool) ForEach(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}

	var (
		mu   sync.Mutex
		errs error
	)
	run := func(i int) {
		if err := fn(ctx, i); err != nil {
			mu.Lock()
			errs = multierr.Append(errs, err)
			mu.Unlock()
		}
	}

	var nextIdx atomic.Int32
	var stopped atomic.Bool
	next := func() (int, bool) {
		if ctx.Err() != nil {
			stopped.Store(true)
			return 0, false
		}
		idx := int(nextIdx.Add(1)) - 1
		return idx, idx < n
	}

	workers := min(p.numWorkers, n)
	if p.closed.Load() || workers == 1 {
		for i, ok := next(); ok; i, ok = next() {
			run(i)
		}
	} else {
		var wg sync.WaitGroup
		wg.Add(workers)
		for range workers {
			p.workC <- workItem{
				fn: func() {
					for i, ok := next(); ok; i, ok = next() {
						run(i)
					}
				},
				barrier: &wg,
			}
		}
		wg.Wait()
	}

	if stopped.Load() {
		errs = multierr.Append(errs, ctx.Err())
	}
	return errs
}
