// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package libphenom

import (
	"fmt"

	"github.com/intuitivelabs/slog"
)

// Log is the package-wide logger. Level defaults to warnings and above;
// callers can lower it with slog.SetLevel(&Log, slog.LDBG) to get debug
// messages (such as the Driver's start message).
var Log = slog.Log{
	Level:  slog.LWARN,
	Prefix: "libphenom: ",
}

// DBGon returns true if debug level logging is enabled.
func DBGon() bool { return Log.DBGon() }

// WARNon returns true if warning level logging is enabled.
func WARNon() bool { return Log.WARNon() }

// ERRon returns true if error level logging is enabled.
func ERRon() bool { return Log.ERRon() }

// DBG logs a debug message. Guard hot-path calls with DBGon() first.
func DBG(f string, a ...interface{}) { Log.DBG(f, a...) }

// WARN logs a warning message.
func WARN(f string, a ...interface{}) { Log.WARN(f, a...) }

// ERR logs an error message.
func ERR(f string, a ...interface{}) { Log.ERR(f, a...) }

// BUG logs an internal invariant violation. It never returns to the
// caller's line of execution in the intended usage: callers pair it with
// panic() or a PANIC() call right after.
func BUG(f string, a ...interface{}) { Log.BUG(f, a...) }

// PANIC logs the message at the highest level and then panics. Reserved
// for corruption that indicates a bug in the wheel itself (a broken list
// invariant, a cascade producing an inexpressible delta, next_run moving
// backwards) -- never for ordinary caller errors, which are returned as
// values instead.
func PANIC(f string, a ...interface{}) {
	Log.PANIC(f, a...)
	panic(fmt.Sprintf(f, a...))
}
