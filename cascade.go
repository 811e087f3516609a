// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package libphenom

// WheelsNo is the number of cascading levels.
const WheelsNo = 4

// Each level indexes 256 slots (8 bits), so the 4 levels together cover a
// 32-bit tick delta, per the insertion router in the spec (level 0 is the
// finest-grained, level 3 the coarsest).
const (
	W0Bits = 8
	W1Bits = 8
	W2Bits = 8
	W3Bits = 8

	W0Entries = 1 << W0Bits
	W1Entries = 1 << W1Bits
	W2Entries = 1 << W2Bits
	W3Entries = 1 << W3Bits

	W0Mask = W0Entries - 1
	W1Mask = W1Entries - 1
	W2Mask = W2Entries - 1
	W3Mask = W3Entries - 1
)

// slotAt returns the slot index within level lvl that pos (an absolute
// tick count) falls into.
func slotAt(lvl int, pos uint64) uint16 {
	switch lvl {
	case 0:
		return uint16(pos & W0Mask)
	case 1:
		return uint16((pos >> W0Bits) & W1Mask)
	case 2:
		return uint16((pos >> (W0Bits + W1Bits)) & W2Mask)
	default:
		return uint16((pos >> (W0Bits + W1Bits + W2Bits)) & W3Mask)
	}
}

// locate maps a timer's due time, relative to nextRun, into a (level,
// slot) pair, following §4.1 of the routing rule: the level is chosen by
// how many ticks away due is, and the slot is the corresponding digit of
// the absolute due tick count at that level.
//
// due <= nextRun (already due, or in the past) routes to level 0 slot 0,
// to be picked up on the very next tick step.
func locate(due, nextRun Ticks) (level int, slot uint16, err error) {
	if due.LE(nextRun) {
		return 0, uint16(nextRun.Val() & W0Mask), nil
	}
	delta := due.Sub(nextRun).Val()
	switch {
	case delta < W0Entries:
		return 0, uint16(due.Val() & W0Mask), nil
	case delta < W0Entries*W1Entries:
		return 1, slotAt(1, due.Val()), nil
	case delta < W0Entries*W1Entries*W2Entries:
		return 2, slotAt(2, due.Val()), nil
	case delta < MaxTicksDiff:
		return 3, slotAt(3, due.Val()), nil
	default:
		return 0, 0, ErrTicksTooHigh
	}
}

// cascade drains level lvl's slot idx, recomputing each timer's route
// against the wheel's current next_run and reinserting it at a lower
// level, possibly more than one level down (by construction, since the
// cascaded slot only ever holds timers
// due within lvl's own span of ticks from the moment it was last
// cascaded). Must be called with the wheel mutex held, before next_run
// advances past pos (see Wheel.cascadeAt).
func (w *Wheel) cascade(lvl int, idx uint16) {
	lst := &w.buckets[lvl][idx]
	for !lst.isEmpty() {
		t := lst.head.next
		lst.remove(t)
		// route recomputes (level, slot) against next_run, which has
		// not yet advanced past pos; per invariant 2 the recomputed
		// delta always lands at a level < lvl. Unlike Insert, route
		// leaves active/generation/wheelGen untouched: from the
		// caller's perspective the timer never stopped being armed.
		if err := w.route(t); err != nil {
			// a timer that was expressible when first inserted cannot
			// become inexpressible purely from time advancing forward;
			// this can only mean wheel state is corrupted.
			PANIC("cascade: reinsert of %p failed: %s\n", t, err)
		}
	}
}
