// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package libphenom

import (
	"sync/atomic"
)

// Dispatch is the callback a Wheel invokes for each timer it fires. w is
// the wheel the timer belonged to, t is the timer (already unlinked,
// Armed() == false by the time Dispatch is called), now is the time
// passed to Tick, and arg is the opaque value Tick was called with.
//
// Dispatch may call w.Insert or w.Remove -- on t, or on any other timer --
// but must not otherwise touch wheel-internal state. It must not call
// w.InsertUnlocked/w.RemoveUnlocked: the wheel has already released its
// mutex by the time Dispatch runs.
type Dispatch func(w *Wheel, t *Timer, now Timeval, arg interface{})

// A Timer is the caller-owned record threaded into a Wheel slot while
// armed. The wheel never allocates, copies, or frees a Timer; callers
// embed it in their own structures and pass a pointer to Insert.
//
// A zero-value Timer is detached and ready to be given a Due time and
// inserted.
type Timer struct {
	next, prev *Timer // intrusive list links; meaningful only while armed

	due Timeval // absolute due time; converted to ticks on every route

	active bool // true iff currently linked into a slot

	// generation/wheelGen back WasModified. Insert sets both to the
	// wheel's current generation counter, so they start out equal; Remove
	// bumps the wheel's counter and stores the new value into generation
	// only, so a timer removed since its last insert always has
	// generation != wheelGen. Kept as atomics so WasModified can be read
	// without taking the wheel lock, the same lock-free-readback
	// guarantee the teacher provides via its own atomically-packed timer
	// state.
	generation atomic.Uint32
	wheelGen   atomic.Uint32
}

// Detached reports whether t is not currently linked into any list. A
// freshly zero-valued Timer, and a Timer just after Remove or after
// being dispatched, are both detached.
func (t *Timer) Detached() bool {
	return t == t.next || (t.next == nil && t.prev == nil)
}

// unlink removes t from whatever list it currently belongs to and marks
// it detached (self-referencing). t must currently be linked.
func (t *Timer) unlink() {
	t.prev.next = t.next
	t.next.prev = t.prev
	t.next = t
	t.prev = t
}

// Armed reports whether t is currently linked into a wheel slot.
func (t *Timer) Armed() bool {
	return t.active
}

// SetDue sets the absolute time t should next fire at. t must be
// detached. SetDue itself does not check this; Insert on a timer that
// is still armed returns ErrExists.
func (t *Timer) SetDue(due Timeval) { t.due = due }

// Due returns the absolute time t is scheduled to fire at. The value
// stays set after t is dispatched or removed, so a Dispatch callback can
// read it.
func (t *Timer) Due() Timeval { return t.due }

// WasModified reports whether at least one Remove(t) has happened since
// the last successful Insert(t) -- the cheap liveness check described in
// §4.3: a caller holding a raw *Timer across some asynchronous boundary
// can use it to tell whether the wheel has released the timer since.
func (t *Timer) WasModified() bool {
	return t.generation.Load() != t.wheelGen.Load()
}
