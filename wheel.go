// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package libphenom

import (
	"sync"
)

// Wheel is a hierarchical hashed timing wheel: four cascading levels of
// 256 slots each, giving O(1) Insert/Remove and amortized O(1) Tick for
// any delta that fits in 32 bits of ticks.
//
// The zero value is not usable; call Init before Insert/Remove/Tick.
type Wheel struct {
	mu sync.Mutex

	tickResolution uint32 // milliseconds per tick, fixed at Init

	nextRun Ticks // next absolute tick to service

	// generation counts Removes of armed timers wheel-wide. Bumped only
	// by removeUnlocked; read by insertUnlocked to snapshot a timer's
	// wheelGen/generation pair. See Timer.WasModified.
	generation uint32

	buckets [WheelsNo][W0Entries]timerList
}

// Init prepares w to run starting at now, ticking every resolutionMs
// milliseconds. resolutionMs must be > 0.
func (w *Wheel) Init(now Timeval, resolutionMs uint32) error {
	if resolutionMs == 0 {
		return ErrInvalidResolution
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tickResolution = resolutionMs
	w.nextRun = ticksOf(now, resolutionMs)
	w.generation = 0
	for lvl := 0; lvl < WheelsNo; lvl++ {
		for i := range w.buckets[lvl] {
			w.buckets[lvl][i].init()
		}
	}
	return nil
}

// TickResolution returns the duration of one tick, as configured by Init.
func (w *Wheel) TickResolution() uint32 { return w.tickResolution }

// NextRun returns the next absolute time w will service, converted back
// to a Timeval for diagnostics. It is not meaningful for scheduling
// decisions: call Insert/Tick with real clock readings instead.
func (w *Wheel) NextRun() Timeval {
	w.mu.Lock()
	defer w.mu.Unlock()
	return timevalOf(w.nextRun, w.tickResolution)
}

// route computes t's (level, slot) against the wheel's current next_run
// and links it there. It does not touch active/generation/wheelGen: it
// is shared between insertUnlocked (a real arming) and cascade (a pure
// relocation of an already-armed timer). Must be called with mu held.
func (w *Wheel) route(t *Timer) error {
	due := ticksOf(t.due, w.tickResolution)
	lvl, slot, err := locate(due, w.nextRun)
	if err != nil {
		return err
	}
	w.buckets[lvl][slot].push(t)
	return nil
}

// Insert arms t, which must be detached and have its Due already set via
// SetDue. Returns ErrExists if t is already armed, ErrTicksTooHigh if
// t.Due is 2^32 ticks or more from the wheel's current position.
func (w *Wheel) Insert(t *Timer) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.insertUnlocked(t)
}

// InsertUnlocked is Insert for a caller that already holds w's mutex --
// in practice, a Dispatch callback that was invoked with the mutex
// released would call Insert, not this; InsertUnlocked exists for
// callers that manage their own locking around a batch of operations and
// is documented as unsafe to call from within a Dispatch invoked by w
// itself (Tick always calls Dispatch with the mutex released).
func (w *Wheel) InsertUnlocked(t *Timer) error {
	return w.insertUnlocked(t)
}

func (w *Wheel) insertUnlocked(t *Timer) error {
	if t.active {
		if ERRon() {
			ERR("insert: timer %p is already armed\n", t)
		}
		return ErrExists
	}
	if err := w.route(t); err != nil {
		return err
	}
	t.active = true
	t.wheelGen.Store(w.generation)
	t.generation.Store(w.generation)
	return nil
}

// Remove disarms t. Returns ErrNotFound if t is not currently armed.
func (w *Wheel) Remove(t *Timer) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.removeUnlocked(t)
}

// RemoveUnlocked is Remove for a caller that already holds w's mutex.
// Same re-entrancy caveat as InsertUnlocked.
func (w *Wheel) RemoveUnlocked(t *Timer) error {
	return w.removeUnlocked(t)
}

func (w *Wheel) removeUnlocked(t *Timer) error {
	if !t.active {
		return ErrNotFound
	}
	t.unlink()
	t.active = false
	w.generation++
	t.generation.Store(w.generation)
	return nil
}

// cascadeAt redistributes the higher-level slots that next_run's advance
// to the absolute tick pos has just rolled over, coarsest level first,
// so a timer cascaded down from level 3 lands in level 2 (and potentially
// gets cascaded again, down through level 1) before level 0 is drained.
// Must be called with mu held.
func (w *Wheel) cascadeAt(pos uint64) {
	idx1 := slotAt(1, pos)
	if idx1 == 0 {
		idx2 := slotAt(2, pos)
		if idx2 == 0 {
			w.cascade(3, slotAt(3, pos))
		}
		w.cascade(2, idx2)
	}
	w.cascade(1, idx1)
}

// claim drains level 0's slot idx, unlinking and disarming every timer in
// it and returning them for dispatch once the mutex is released. Must be
// called with mu held.
func (w *Wheel) claim(idx uint16) []*Timer {
	lst := &w.buckets[0][idx]
	var fired []*Timer
	for !lst.isEmpty() {
		t := lst.head.next
		t.unlink()
		t.active = false
		fired = append(fired, t)
	}
	return fired
}

// Tick services every wheel step up to and including now, cascading as
// needed and invoking dispatch once for each timer that fired, with the
// wheel's mutex released for the duration of each call. arg is passed
// through to dispatch unchanged. Returns the number of timers fired.
//
// If now is earlier than the wheel's current position (the clock went
// backward, or Tick was already called for a later time), Tick is a
// no-op and returns 0.
func (w *Wheel) Tick(now Timeval, dispatch Dispatch, arg interface{}) int {
	w.mu.Lock()
	target := ticksOf(now, w.tickResolution)
	count := 0
	for {
		if w.nextRun.GT(target) {
			w.mu.Unlock()
			return count
		}
		pos := w.nextRun.Val()
		slot := slotAt(0, pos)
		if slot == 0 && pos > 0 {
			w.cascadeAt(pos)
		}
		fired := w.claim(slot)
		w.nextRun = w.nextRun.AddUint64(1)
		w.mu.Unlock()

		for _, t := range fired {
			dispatch(w, t, now, arg)
			count++
		}
		w.mu.Lock()
	}
}
