// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package libphenom

import (
	"errors"
)

// ErrExists is returned by Insert/InsertUnlocked when called on a timer
// that is already armed. Re-arming an active timer is a programmer error.
var ErrExists = errors.New("timer already armed")

// ErrNotFound is returned by Remove/RemoveUnlocked when called on a timer
// that is not currently armed.
var ErrNotFound = errors.New("timer not armed")

// ErrTicksTooHigh is returned when a timer's delta from the wheel's
// next_run does not fit in the wheel's 32-bit tick-delta space.
var ErrTicksTooHigh = errors.New("ticks delta too high")

// ErrInvalidResolution is returned by Init when the requested tick
// resolution is zero.
var ErrInvalidResolution = errors.New("tick resolution must be > 0")

// ErrBusy is reserved for contention reporting; the wheel never returns it
// itself, but it is kept so the error table has a value for every row.
var ErrBusy = errors.New("wheel busy")

// ErrNoMemory is reserved for allocation failure during Init. Nothing in
// the wheel allocates in a way that can fail, but the sentinel documents
// the row in the error table.
var ErrNoMemory = errors.New("no memory")
