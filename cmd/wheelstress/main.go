// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Command wheelstress arms a large number of timers at random delays and
// runs a Driver against them, printing dispatch latency stats. It
// is a manual smoke test, not a benchmark harness.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	wtimer "github.com/107192468/libphenom"
)

func main() {
	count := flag.Int("n", 10000, "number of timers to arm")
	maxDelay := flag.Duration("max-delay", 10*time.Second, "maximum random delay")
	resolution := flag.Uint("resolution-ms", 10, "wheel tick resolution, in milliseconds")
	flag.Parse()

	var w wtimer.Wheel
	if err := w.Init(wtimer.Now(), uint32(*resolution)); err != nil {
		fmt.Println("init failed:", err)
		return
	}

	var fired atomic.Int64
	var worst atomic.Int64 // worst-case (dispatch time - due), in microseconds

	dispatch := func(w *wtimer.Wheel, t *wtimer.Timer, now wtimer.Timeval, arg interface{}) {
		lateness := now.Sub(t.Due())
		fired.Add(1)
		if us := lateness.Microseconds(); us > worst.Load() {
			worst.Store(us)
		}
	}

	d := wtimer.NewDriver(&w, time.Duration(*resolution)*time.Millisecond, dispatch, nil)
	d.Start()

	var wg sync.WaitGroup
	timers := make([]wtimer.Timer, *count)
	for i := range timers {
		due := wtimer.Now().Add(time.Duration(rand.Int63n(int64(*maxDelay))))
		timers[i].SetDue(due)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := w.Insert(&timers[i]); err != nil {
				fmt.Println("insert failed:", err)
			}
		}(i)
	}
	wg.Wait()

	time.Sleep(*maxDelay + time.Second)
	d.Shutdown()

	fmt.Printf("armed %d timers, fired %d, worst lateness %dus\n",
		*count, fired.Load(), worst.Load())
}
