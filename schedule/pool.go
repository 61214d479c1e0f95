// Copyright 2026 The gorender Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package schedule provides the "schedule work, wait for all of it"
// primitive both cores consume: a fixed-size set of worker goroutines
// shared by two distinct dispatch shapes. The path tracer launches one
// long-lived worker loop per goroutine that repeatedly claims the next
// film block off a film.BlockGenerator (a self-feeding producer, so the
// pool only has to keep that one closure alive per worker). The
// rasterizer instead hands the pool a flat range of independent tile
// indices; ParallelFor claims those directly off a shared counter, the
// same index-claiming shape film.BlockGenerator uses to hand out tiles,
// rather than routing every tile through a generic task queue.
package schedule

import (
	"runtime"
	"sync"
	"sync/atomic"

	core "github.com/gorender/core"
)

// Pool is a fixed-size set of worker goroutines. Safe for concurrent use.
type Pool struct {
	workers int

	tasks chan func()
	done  chan struct{}

	wg       sync.WaitGroup // worker goroutine lifetime
	inflight sync.WaitGroup // outstanding Go() calls, the Wait() barrier
	running  atomic.Bool
}

// New creates a pool with the given worker count. workers <= 0 uses
// runtime.GOMAXPROCS(0).
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		tasks:   make(chan func(), workers*4),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	core.Logger().Debug("thread pool created", "workers", workers)
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case task := <-p.tasks:
			task()
		case <-p.done:
			p.drainTasks()
			return
		}
	}
}

// drainTasks runs every task already queued before the worker exits, so a
// Close racing with an in-flight Go call still completes queued work.
func (p *Pool) drainTasks() {
	for {
		select {
		case task := <-p.tasks:
			task()
		default:
			return
		}
	}
}

// Go queues fn for execution on whichever worker becomes free next and
// returns immediately. Its completion is observed by the next Wait call.
// A no-op if the pool has been Closed. Intended for long-lived, self-
// feeding workers (one Go call per worker, each looping over its own
// source of work) rather than fine-grained per-item dispatch — see
// ParallelFor for that.
func (p *Pool) Go(fn func()) {
	if fn == nil || !p.running.Load() {
		return
	}
	p.inflight.Add(1)

	wrapped := func() {
		defer p.inflight.Done()
		fn()
	}
	select {
	case p.tasks <- wrapped:
	case <-p.done:
		p.inflight.Done()
	}
}

// Wait blocks until every Go and ParallelFor call issued so far has
// completed, the pipeline-phase barrier between vertex-setup, binning, and
// tile-raster (or between path-tracer blocks).
func (p *Pool) Wait() {
	p.inflight.Wait()
}

// ParallelFor runs fn(i) for every i in [0,n) across the pool and waits
// for all of them to finish. Rather than enqueuing n separate closures
// and relying on queue depth to balance load, it launches at most
// Workers() claimants that each pull indices off one shared atomic
// counter — the same index-claiming shape film.BlockGenerator uses to
// hand out tiles, sized down here to a plain integer range so an uneven
// split of n across workers never leaves one goroutine idle while
// another still has a backlog of same-sized tiles.
func (p *Pool) ParallelFor(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	claimants := p.workers
	if n < claimants {
		claimants = n
	}

	var next atomic.Int64
	var batch sync.WaitGroup
	batch.Add(claimants)
	for range claimants {
		p.Go(func() {
			defer batch.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= n {
					return
				}
				fn(i)
			}
		})
	}
	batch.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// Close stops accepting new work and waits for queued work to complete.
// Safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}
