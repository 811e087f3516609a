// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package libphenom

// timerList is an intrusive doubly-linked list of Timer nodes: the head
// is a sentinel Timer whose next/prev fields form a circular list, the
// same technique the teacher package uses for its own wheel slots, so
// that arming or cancelling a timer never allocates.
type timerList struct {
	head Timer
}

// init sets up lst as an empty circular list.
func (lst *timerList) init() {
	lst.head.next = &lst.head
	lst.head.prev = &lst.head
}

// isEmpty reports whether the list has no entries.
func (lst *timerList) isEmpty() bool {
	return lst.head.next == &lst.head
}

// push links t at the head of lst. t must be detached.
func (lst *timerList) push(t *Timer) {
	t.prev = &lst.head
	t.next = lst.head.next
	t.next.prev = t
	lst.head.next = t
}

// remove unlinks t from lst and marks it detached (self-referencing).
// t must currently belong to lst.
func (lst *timerList) remove(t *Timer) {
	t.unlink()
}
