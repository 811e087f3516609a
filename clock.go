// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package libphenom

import (
	"strconv"
	"time"

	"github.com/intuitivelabs/timestamp"
)

const (
	// TicksBits is the width of a tick delta: four wheel levels of 8 bits
	// each (see cascade.go).
	TicksBits = W0Bits + W1Bits + W2Bits + W3Bits
	// MaxTicksDiff is one past the largest tick delta representable by the
	// wheel: a delta must be strictly below it.
	MaxTicksDiff = 1 << TicksBits
)

// Timeval is the monotonic timestamp representation used at the wheel's
// external boundary: a {seconds, microseconds} pair, the Go analogue of
// a C struct timeval. All wheel arithmetic happens on Ticks internally;
// Timeval only crosses the Insert/Tick API.
type Timeval struct {
	Sec  int64
	Usec int32
}

// NewTimeval builds a Timeval from a time.Duration measured against
// whatever monotonic reference the caller has chosen (see Now()).
func NewTimeval(d time.Duration) Timeval {
	sec := int64(d / time.Second)
	usec := int32((d % time.Second) / time.Microsecond)
	if usec < 0 {
		usec += 1000000
		sec--
	}
	return Timeval{Sec: sec, Usec: usec}
}

// Duration converts a Timeval back to a time.Duration relative to the
// same reference it was produced from.
func (tv Timeval) Duration() time.Duration {
	return time.Duration(tv.Sec)*time.Second + time.Duration(tv.Usec)*time.Microsecond
}

// Add returns tv advanced by d.
func (tv Timeval) Add(d time.Duration) Timeval {
	return NewTimeval(tv.Duration() + d)
}

// Sub returns the duration tv-u.
func (tv Timeval) Sub(u Timeval) time.Duration {
	return tv.Duration() - u.Duration()
}

// Before reports whether tv is strictly earlier than u.
func (tv Timeval) Before(u Timeval) bool {
	return tv.Duration() < u.Duration()
}

// After reports whether tv is strictly later than u.
func (tv Timeval) After(u Timeval) bool {
	return tv.Duration() > u.Duration()
}

// String formats a Timeval the way a timeval is usually printed.
func (tv Timeval) String() string {
	usec := strconv.FormatInt(int64(tv.Usec), 10)
	for len(usec) < 6 {
		usec = "0" + usec
	}
	return strconv.FormatInt(tv.Sec, 10) + "." + usec
}

// bootTS anchors the monotonic clock the package hands out via Now(): the
// wheel itself never reads the clock (callers always supply "now"), this
// is only a convenience for runner.go and for tests/cmd/wheelstress.
var bootTS = timestamp.Now()

// Now returns the current monotonic time as a Timeval, measured since
// package initialization. It is a convenience wrapper around
// github.com/intuitivelabs/timestamp and is never called by Wheel itself.
func Now() Timeval {
	return NewTimeval(timestamp.Now().Sub(bootTS))
}

// Ticks is a monotonically increasing tick counter. Unlike Timeval, all
// wheel-internal bookkeeping (next_run, a timer's routed delta) is done in
// Ticks, following the teacher package's convention of never comparing
// raw integers directly and always going through typed helpers.
type Ticks struct {
	v uint64
}

// NewTicks wraps a raw tick count.
func NewTicks(u uint64) Ticks { return Ticks{u} }

// Val returns the raw tick count.
func (t Ticks) Val() uint64 { return t.v }

// EQ reports t == u.
func (t Ticks) EQ(u Ticks) bool { return t.v == u.v }

// NE reports t != u.
func (t Ticks) NE(u Ticks) bool { return t.v != u.v }

// LT reports t < u.
func (t Ticks) LT(u Ticks) bool { return t.v < u.v }

// GT reports t > u.
func (t Ticks) GT(u Ticks) bool { return t.v > u.v }

// LE reports t <= u.
func (t Ticks) LE(u Ticks) bool { return t.v <= u.v }

// GE reports t >= u.
func (t Ticks) GE(u Ticks) bool { return t.v >= u.v }

// Add returns t+u.
func (t Ticks) Add(u Ticks) Ticks { return Ticks{t.v + u.v} }

// Sub returns t-u, saturating at 0 (ticks never go negative: callers that
// need a signed delta should compare with LT first).
func (t Ticks) Sub(u Ticks) Ticks {
	if u.v > t.v {
		return Ticks{0}
	}
	return Ticks{t.v - u.v}
}

// AddUint64 returns t+u.
func (t Ticks) AddUint64(u uint64) Ticks { return Ticks{t.v + u} }

// String converts a tick value to a string.
func (t Ticks) String() string { return strconv.FormatUint(t.v, 10) }

// ticksOf converts a Timeval to an absolute tick count at the given
// resolution (milliseconds per tick), truncating towards zero exactly as
// the original timerwheel implementation divides a millisecond timestamp
// by its tick_resolution.
func ticksOf(tv Timeval, resolutionMs uint32) Ticks {
	ms := tv.Sec*1000 + int64(tv.Usec)/1000
	if ms < 0 {
		ms = 0
	}
	return NewTicks(uint64(ms) / uint64(resolutionMs))
}

// timevalOf converts an absolute tick count back to a Timeval at the
// given resolution. Used only for diagnostics (Wheel.NextRun).
func timevalOf(t Ticks, resolutionMs uint32) Timeval {
	ms := t.Val() * uint64(resolutionMs)
	return NewTimeval(time.Duration(ms) * time.Millisecond)
}
