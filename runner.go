// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package libphenom

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// Driver is an optional ticking goroutine wrapping a Wheel: it calls
// Tick(Now(), dispatch, arg) once per interval until Shutdown. Nothing
// in Wheel requires a Driver; callers that already run their own event
// loop can call Tick directly instead.
type Driver struct {
	w        *Wheel
	interval time.Duration
	dispatch Dispatch
	arg      interface{}

	cancel chan struct{}
	wg     sync.WaitGroup
}

// NewDriver builds a Driver for w, ticking every interval and invoking
// dispatch (with arg) for each fired timer. Call Start to begin ticking.
func NewDriver(w *Wheel, interval time.Duration, dispatch Dispatch, arg interface{}) *Driver {
	return &Driver{w: w, interval: interval, dispatch: dispatch, arg: arg}
}

// Start launches the ticking goroutine. No timers fire before Start.
func (d *Driver) Start() {
	d.cancel = make(chan struct{})
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if DBGon() {
			DBG("starting driver with tick %s\n", d.interval)
		}
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-d.cancel:
				return
			case <-ticker.C:
				d.w.Tick(Now(), d.dispatch, d.arg)
			}
		}
	}()
}

// Shutdown signals the ticking goroutine to stop and waits for it.
func (d *Driver) Shutdown() {
	if d.cancel != nil {
		close(d.cancel)
	}
	d.wg.Wait()
}

// dispatchJob is one fired timer waiting to run on a WorkerPool goroutine
// instead of on the caller's ticking goroutine.
type dispatchJob struct {
	w   *Wheel
	t   *Timer
	now Timeval
	arg interface{}
	fn  Dispatch
}

// WorkerPool is an optional fan-out for Dispatch callbacks: a fixed set
// of goroutines draining a FIFO of dispatch jobs, so a caller whose
// callbacks are slow can hand them off from Tick's own goroutine instead
// of running every one of them inline. Tick itself never submits to a
// WorkerPool on its own -- a Dispatch callback that wants this behavior
// calls Submit from within its own body.
type WorkerPool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	q      *queue.Queue
	closed bool
	wg     sync.WaitGroup
}

// NewWorkerPool starts n worker goroutines backed by a
// github.com/eapache/queue ring buffer.
func NewWorkerPool(n int) *WorkerPool {
	wp := &WorkerPool{q: queue.New()}
	wp.cond = sync.NewCond(&wp.mu)
	for i := 0; i < n; i++ {
		wp.wg.Add(1)
		go wp.loop()
	}
	return wp
}

func (wp *WorkerPool) loop() {
	defer wp.wg.Done()
	for {
		wp.mu.Lock()
		for wp.q.Length() == 0 && !wp.closed {
			wp.cond.Wait()
		}
		if wp.q.Length() == 0 {
			wp.mu.Unlock()
			return
		}
		job := wp.q.Remove().(dispatchJob)
		wp.mu.Unlock()
		job.fn(job.w, job.t, job.now, job.arg)
	}
}

// Submit enqueues a fired timer for a worker goroutine to dispatch.
func (wp *WorkerPool) Submit(w *Wheel, t *Timer, now Timeval, arg interface{}, fn Dispatch) {
	wp.mu.Lock()
	wp.q.Add(dispatchJob{w: w, t: t, now: now, arg: arg, fn: fn})
	wp.cond.Signal()
	wp.mu.Unlock()
}

// Shutdown lets the workers drain the jobs already queued and waits for
// every worker goroutine to exit. Submit does not check for a shut-down
// pool: a job submitted after Shutdown is queued but never run.
func (wp *WorkerPool) Shutdown() {
	wp.mu.Lock()
	wp.closed = true
	wp.cond.Broadcast()
	wp.mu.Unlock()
	wp.wg.Wait()
}
