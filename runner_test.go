// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package libphenom

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDriverFiresArmedTimer(t *testing.T) {
	var w Wheel
	if err := w.Init(Now(), 5); err != nil {
		t.Fatalf("Init failed: %s\n", err)
	}

	var fired atomic.Int32
	d := NewDriver(&w, 5*time.Millisecond, func(w *Wheel, tm *Timer, now Timeval, arg interface{}) {
		fired.Add(1)
	}, nil)
	d.Start()
	defer d.Shutdown()

	var tm Timer
	tm.SetDue(Now().Add(20 * time.Millisecond))
	if err := w.Insert(&tm); err != nil {
		t.Fatalf("Insert failed: %s\n", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for fired.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if fired.Load() == 0 {
		t.Fatalf("driver never dispatched the armed timer\n")
	}
}

func TestDriverShutdownStopsTicking(t *testing.T) {
	var w Wheel
	if err := w.Init(Now(), 5); err != nil {
		t.Fatalf("Init failed: %s\n", err)
	}
	d := NewDriver(&w, 5*time.Millisecond, func(w *Wheel, tm *Timer, now Timeval, arg interface{}) {}, nil)
	d.Start()
	d.Shutdown()
	// the ticking goroutine must already have exited once Shutdown returns
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("driver goroutine still running after Shutdown\n")
	}
}

func TestWorkerPoolDrainsSubmittedJobs(t *testing.T) {
	wp := NewWorkerPool(4)
	defer wp.Shutdown()

	var w Wheel
	if err := w.Init(Now(), 1); err != nil {
		t.Fatalf("Init failed: %s\n", err)
	}

	var done atomic.Int32
	const n = 200
	fn := func(w *Wheel, tm *Timer, now Timeval, arg interface{}) {
		done.Add(1)
	}
	for i := 0; i < n; i++ {
		var tm Timer
		wp.Submit(&w, &tm, Now(), nil, fn)
	}

	deadline := time.Now().Add(2 * time.Second)
	for done.Load() < n && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := done.Load(); got != n {
		t.Fatalf("expected %d jobs drained, got %d\n", n, got)
	}
}

func TestWorkerPoolShutdownDrainsQueueFirst(t *testing.T) {
	wp := NewWorkerPool(1)
	var done atomic.Int32
	fn := func(w *Wheel, tm *Timer, now Timeval, arg interface{}) { done.Add(1) }
	for i := 0; i < 10; i++ {
		wp.Submit(nil, nil, Timeval{}, nil, fn)
	}
	wp.Shutdown()
	if got := done.Load(); got != 10 {
		t.Fatalf("expected all 10 queued jobs to drain before Shutdown returns, got %d\n", got)
	}
}
