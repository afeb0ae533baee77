// Package list implements a generic doubly linked list (deque) with
// borrowing iterators and a cursor that can split and splice whole chains
// in constant time.
//
// The zero value of List is an empty list ready to use. Access to a list
// follows a borrow discipline checked at runtime: at any time a list may
// have any number of Iter, or a single IterMut, or a single Cursor alive.
// Mutating the list directly while one of them is alive panics.
package list

import "iter"

type node[T any] struct {
	value      T
	next, prev *node[T]
}

type List[T any] struct {
	front, back *node[T]
	length      int

	b borrow
}

func New[T any]() *List[T] {
	return &List[T]{}
}

// From returns a list holding vs in order.
func From[T any](vs ...T) *List[T] {
	l := New[T]()
	for _, v := range vs {
		l.pushBack(v)
	}
	return l
}

// Collect builds a list from seq.
func Collect[T any](seq iter.Seq[T]) *List[T] {
	l := New[T]()
	for v := range seq {
		l.pushBack(v)
	}
	return l
}

func (l *List[T]) Len() int {
	return l.length
}

func (l *List[T]) IsEmpty() bool {
	return l.length == 0
}

func (l *List[T]) PushFront(v T) {
	l.b.mustBeFree("PushFront")
	l.pushFront(v)
}

func (l *List[T]) PushBack(v T) {
	l.b.mustBeFree("PushBack")
	l.pushBack(v)
}

// Append pushes vs to the back in order.
func (l *List[T]) Append(vs ...T) {
	l.b.mustBeFree("Append")
	for _, v := range vs {
		l.pushBack(v)
	}
}

// Extend pushes every value of seq to the back.
func (l *List[T]) Extend(seq iter.Seq[T]) {
	l.b.mustBeFree("Extend")
	for v := range seq {
		l.pushBack(v)
	}
}

func (l *List[T]) PopFront() (v T, ok bool) {
	l.b.mustBeFree("PopFront")
	return l.popFront()
}

func (l *List[T]) PopBack() (v T, ok bool) {
	l.b.mustBeFree("PopBack")
	return l.popBack()
}

func (l *List[T]) Front() (v T, ok bool) {
	l.b.mustNotBeExclusive("Front")
	if l.front == nil {
		return
	}
	return l.front.value, true
}

func (l *List[T]) Back() (v T, ok bool) {
	l.b.mustNotBeExclusive("Back")
	if l.back == nil {
		return
	}
	return l.back.value, true
}

// FrontMut returns a pointer to the front value, or nil if l is empty.
// The pointer must not be used after the value is popped.
func (l *List[T]) FrontMut() *T {
	l.b.mustBeFree("FrontMut")
	if l.front == nil {
		return nil
	}
	return &l.front.value
}

// BackMut is like FrontMut for the back value.
func (l *List[T]) BackMut() *T {
	l.b.mustBeFree("BackMut")
	if l.back == nil {
		return nil
	}
	return &l.back.value
}

// Clear pops every node. Nodes are unlinked one by one so that no chain
// outlives the list.
func (l *List[T]) Clear() {
	l.b.mustBeFree("Clear")
	for {
		if _, ok := l.popFront(); !ok {
			return
		}
	}
}

// Slice returns the values from front to back.
func (l *List[T]) Slice() []T {
	l.b.mustNotBeExclusive("Slice")
	return l.slice()
}

func (l *List[T]) slice() []T {
	s := make([]T, 0, l.length)
	for n := l.front; n != nil; n = n.next {
		s = append(s, n.value)
	}
	return s
}

func (l *List[T]) pushFront(v T) {
	n := &node[T]{value: v}
	l.length++

	if l.front == nil {
		l.front = n
		l.back = n
		return
	}

	n.next = l.front
	l.front.prev = n
	l.front = n
}

func (l *List[T]) pushBack(v T) {
	n := &node[T]{value: v}
	l.length++

	if l.back == nil {
		l.front = n
		l.back = n
		return
	}

	n.prev = l.back
	l.back.next = n
	l.back = n
}

func (l *List[T]) popFront() (v T, ok bool) {
	n := l.front
	if n == nil {
		return
	}

	l.front = n.next
	if l.front != nil {
		l.front.prev = nil
	} else {
		l.back = nil
	}
	l.length--

	n.next = nil
	return n.value, true
}

func (l *List[T]) popBack() (v T, ok bool) {
	n := l.back
	if n == nil {
		return
	}

	l.back = n.prev
	if l.back != nil {
		l.back.next = nil
	} else {
		l.front = nil
	}
	l.length--

	n.prev = nil
	return n.value, true
}

// take moves the whole chain of l into a new list and leaves l empty.
func (l *List[T]) take() *List[T] {
	nl := &List[T]{front: l.front, back: l.back, length: l.length}
	l.front, l.back, l.length = nil, nil, 0
	return nl
}
