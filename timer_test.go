// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package libphenom

import "testing"

func TestTimerZeroValueDetached(t *testing.T) {
	var tm Timer
	if !tm.Detached() {
		t.Fatalf("zero-value Timer should be detached\n")
	}
	if tm.Armed() {
		t.Fatalf("zero-value Timer should not be armed\n")
	}
}

func TestTimerWasModifiedFalseBeforeAnyRemove(t *testing.T) {
	var w Wheel
	if err := w.Init(NewTimeval(0), 1); err != nil {
		t.Fatalf("Init failed: %s\n", err)
	}
	var tm Timer
	tm.SetDue(NewTimeval(0))
	if err := w.Insert(&tm); err != nil {
		t.Fatalf("Insert failed: %s\n", err)
	}
	if tm.WasModified() {
		t.Fatalf("WasModified should be false right after Insert\n")
	}
}

func TestTimerWasModifiedTrueAfterRemove(t *testing.T) {
	var w Wheel
	if err := w.Init(NewTimeval(0), 1); err != nil {
		t.Fatalf("Init failed: %s\n", err)
	}
	var tm Timer
	tm.SetDue(NewTimeval(0))
	if err := w.Insert(&tm); err != nil {
		t.Fatalf("Insert failed: %s\n", err)
	}
	if err := w.Remove(&tm); err != nil {
		t.Fatalf("Remove failed: %s\n", err)
	}
	if !tm.WasModified() {
		t.Fatalf("WasModified should be true after Remove\n")
	}
}
