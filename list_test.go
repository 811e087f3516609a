// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package libphenom

import "testing"

func TestTimerListInit(t *testing.T) {
	var lst timerList
	lst.init()
	if !lst.isEmpty() {
		t.Fatalf("freshly init list is not empty\n")
	}
	if lst.head.next != &lst.head || lst.head.prev != &lst.head {
		t.Fatalf("head not self-linked: n=%p p=%p head=%p\n",
			lst.head.next, lst.head.prev, &lst.head)
	}
}

func TestTimerListPushRemove(t *testing.T) {
	var lst timerList
	lst.init()

	var a, b, c Timer
	lst.push(&a)
	lst.push(&b)
	lst.push(&c)

	n := 0
	for cur := lst.head.next; cur != &lst.head; cur = cur.next {
		n++
	}
	if n != 3 {
		t.Fatalf("expected 3 entries, walked %d\n", n)
	}

	lst.remove(&b)
	if lst.isEmpty() {
		t.Fatalf("list should still have 2 entries\n")
	}
	if !b.Detached() {
		t.Fatalf("b should be detached after remove\n")
	}

	lst.remove(&a)
	lst.remove(&c)
	if !lst.isEmpty() {
		t.Fatalf("list should be empty after removing all entries\n")
	}
}

func TestTimerListWalkVisitsEveryEntryOnce(t *testing.T) {
	var lst timerList
	lst.init()
	timers := make([]Timer, 8)
	for i := range timers {
		lst.push(&timers[i])
	}
	seen := map[*Timer]bool{}
	for cur := lst.head.next; cur != &lst.head; cur = cur.next {
		seen[cur] = true
	}
	if len(seen) != len(timers) {
		t.Fatalf("walked %d distinct entries, want %d\n", len(seen), len(timers))
	}
}
