package list

import "iter"

// span is the shared state of the borrowing iterators: the next unvisited
// node from each end and how many nodes are left between them, inclusive.
type span[T any] struct {
	front, back *node[T]
	remaining   int
}

func (s *span[T]) nextFront() *node[T] {
	if s.remaining == 0 {
		return nil
	}
	n := s.front
	s.front = n.next
	s.remaining--
	return n
}

func (s *span[T]) nextBack() *node[T] {
	if s.remaining == 0 {
		return nil
	}
	n := s.back
	s.back = n.prev
	s.remaining--
	return n
}

// IntoIter owns the chain it was created from. Every step pops a node.
type IntoIter[T any] struct {
	l *List[T]
}

// IntoIter moves all values of l into the returned iterator, leaving l
// empty.
func (l *List[T]) IntoIter() *IntoIter[T] {
	l.b.mustBeFree("IntoIter")
	return &IntoIter[T]{l: l.take()}
}

func (it *IntoIter[T]) Next() (T, bool) {
	return it.l.popFront()
}

func (it *IntoIter[T]) NextBack() (T, bool) {
	return it.l.popBack()
}

func (it *IntoIter[T]) Len() int {
	return it.l.length
}

// Iter walks a list without removing nodes. It holds a shared borrow of
// the list until it is exhausted or closed.
type Iter[T any] struct {
	l *List[T]
	s span[T]
}

func (l *List[T]) Iter() *Iter[T] {
	l.b.acquireShared("Iter")
	it := &Iter[T]{l: l, s: span[T]{front: l.front, back: l.back, remaining: l.length}}
	if it.s.remaining == 0 {
		it.Close()
	}
	return it
}

func (it *Iter[T]) Next() (v T, ok bool) {
	n := it.s.nextFront()
	if n == nil {
		return
	}
	it.releaseIfDone()
	return n.value, true
}

func (it *Iter[T]) NextBack() (v T, ok bool) {
	n := it.s.nextBack()
	if n == nil {
		return
	}
	it.releaseIfDone()
	return n.value, true
}

func (it *Iter[T]) Len() int {
	return it.s.remaining
}

// Close releases the borrow early. Further steps report exhaustion.
// It is safe to call Close more than once.
func (it *Iter[T]) Close() {
	it.s = span[T]{}
	if it.l != nil {
		it.l.b.releaseShared()
		it.l = nil
	}
}

func (it *Iter[T]) releaseIfDone() {
	if it.s.remaining == 0 {
		it.Close()
	}
}

// IterMut is like Iter but yields pointers to the values. It holds an
// exclusive borrow of the list, and hands out each node at most once.
type IterMut[T any] struct {
	l *List[T]
	s span[T]
}

func (l *List[T]) IterMut() *IterMut[T] {
	l.b.acquireExclusive("IterMut")
	it := &IterMut[T]{l: l, s: span[T]{front: l.front, back: l.back, remaining: l.length}}
	if it.s.remaining == 0 {
		it.Close()
	}
	return it
}

func (it *IterMut[T]) Next() *T {
	n := it.s.nextFront()
	if n == nil {
		return nil
	}
	it.releaseIfDone()
	return &n.value
}

func (it *IterMut[T]) NextBack() *T {
	n := it.s.nextBack()
	if n == nil {
		return nil
	}
	it.releaseIfDone()
	return &n.value
}

func (it *IterMut[T]) Len() int {
	return it.s.remaining
}

func (it *IterMut[T]) Close() {
	it.s = span[T]{}
	if it.l != nil {
		it.l.b.releaseExclusive()
		it.l = nil
	}
}

func (it *IterMut[T]) releaseIfDone() {
	if it.s.remaining == 0 {
		it.Close()
	}
}

// All returns an iterator over index-value pairs from front to back.
// The list is borrowed for the duration of the loop.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		l.b.acquireShared("All")
		defer l.b.releaseShared()

		i := 0
		for n := l.front; n != nil; n = n.next {
			if !yield(i, n.value) {
				return
			}
			i++
		}
	}
}

// Values is like All without the indexes.
func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range l.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward returns an iterator over index-value pairs from back to front.
func (l *List[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		l.b.acquireShared("Backward")
		defer l.b.releaseShared()

		i := l.length - 1
		for n := l.back; n != nil; n = n.prev {
			if !yield(i, n.value) {
				return
			}
			i--
		}
	}
}

// AllMut is like All but yields pointers to the values and borrows the
// list exclusively.
func (l *List[T]) AllMut() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		l.b.acquireExclusive("AllMut")
		defer l.b.releaseExclusive()

		i := 0
		for n := l.front; n != nil; n = n.next {
			if !yield(i, &n.value) {
				return
			}
			i++
		}
	}
}

// BackwardMut is AllMut from back to front.
func (l *List[T]) BackwardMut() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		l.b.acquireExclusive("BackwardMut")
		defer l.b.releaseExclusive()

		i := l.length - 1
		for n := l.back; n != nil; n = n.prev {
			if !yield(i, &n.value) {
				return
			}
			i--
		}
	}
}

// Drain empties l when the loop starts and yields its values from front
// to back. Values not reached when the loop stops early are dropped.
func (l *List[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := l.IntoIter()
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				break
			}
		}
		for {
			if _, ok := it.Next(); !ok {
				return
			}
		}
	}
}
