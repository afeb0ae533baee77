package list

// Cursor is a position over a list that can move in both directions and
// restructure the list around itself.
//
// Besides the nodes, a cursor can sit on the "ghost" position which lies
// between the back and the front of the list. A new cursor starts there.
// Moving forward from the ghost enters the front, moving forward from the
// back returns to the ghost.
//
// A Cursor borrows its list exclusively until Close is called.
type Cursor[T any] struct {
	l     *List[T]
	cur   *node[T] // nil on the ghost
	index int
}

func (l *List[T]) Cursor() *Cursor[T] {
	l.b.acquireExclusive("Cursor")
	return &Cursor[T]{l: l}
}

// Close releases the list. The cursor must not be used afterwards.
func (c *Cursor[T]) Close() {
	c.list().b.releaseExclusive()
	c.l = nil
	c.cur = nil
}

func (c *Cursor[T]) list() *List[T] {
	if c.l == nil {
		panic("list: use of closed cursor")
	}
	return c.l
}

// Index returns the offset of the current node from the front. ok is false
// on the ghost.
func (c *Cursor[T]) Index() (i int, ok bool) {
	c.list()
	if c.cur == nil {
		return 0, false
	}
	return c.index, true
}

// Current returns a pointer to the current value, or nil on the ghost.
func (c *Cursor[T]) Current() *T {
	c.list()
	if c.cur == nil {
		return nil
	}
	return &c.cur.value
}

// PeekNext returns a pointer to the value after the current one. On the
// ghost it is the front value.
func (c *Cursor[T]) PeekNext() *T {
	l := c.list()
	n := l.front
	if c.cur != nil {
		n = c.cur.next
	}
	if n == nil {
		return nil
	}
	return &n.value
}

// PeekPrev returns a pointer to the value before the current one. On the
// ghost it is the back value.
func (c *Cursor[T]) PeekPrev() *T {
	l := c.list()
	n := l.back
	if c.cur != nil {
		n = c.cur.prev
	}
	if n == nil {
		return nil
	}
	return &n.value
}

// Front, Back and Slice read the whole list. They are the read path of
// the list while the cursor holds it.
func (c *Cursor[T]) Front() (v T, ok bool) {
	l := c.list()
	if l.front == nil {
		return
	}
	return l.front.value, true
}

func (c *Cursor[T]) Back() (v T, ok bool) {
	l := c.list()
	if l.back == nil {
		return
	}
	return l.back.value, true
}

func (c *Cursor[T]) Slice() []T {
	return c.list().slice()
}

func (c *Cursor[T]) MoveNext() {
	l := c.list()
	if c.cur == nil {
		if l.front != nil {
			c.cur = l.front
			c.index = 0
		}
		return
	}
	c.cur = c.cur.next
	c.index++
	if c.cur == nil {
		c.index = 0
	}
}

func (c *Cursor[T]) MovePrev() {
	l := c.list()
	if c.cur == nil {
		if l.back != nil {
			c.cur = l.back
			c.index = l.length - 1
		}
		return
	}
	c.cur = c.cur.prev
	c.index--
	if c.cur == nil {
		c.index = 0
	}
}

// SplitBefore detaches everything before the current node and returns it
// as a new list. The cursor keeps its node, which becomes the front (index
// 0). On the ghost the whole list is detached.
//
//	A <-> B <-> C <-> D    =>    C <-> D  (kept)    A <-> B  (returned)
//	            ^                ^
func (c *Cursor[T]) SplitBefore() *List[T] {
	l := c.list()
	if c.cur == nil {
		return l.take()
	}

	prev := c.cur.prev
	if prev == nil {
		return New[T]()
	}

	ret := &List[T]{front: l.front, back: prev, length: c.index}
	prev.next = nil
	c.cur.prev = nil

	l.front = c.cur
	l.length -= c.index
	c.index = 0
	return ret
}

// SplitAfter detaches everything after the current node and returns it
// as a new list. The cursor does not move. On the ghost the whole list is
// detached.
//
//	A <-> B <-> C <-> D    =>    A <-> B  (kept)    C <-> D  (returned)
//	      ^                            ^
func (c *Cursor[T]) SplitAfter() *List[T] {
	l := c.list()
	if c.cur == nil {
		return l.take()
	}

	next := c.cur.next
	if next == nil {
		return New[T]()
	}

	ret := &List[T]{front: next, back: l.back, length: l.length - c.index - 1}
	next.prev = nil
	c.cur.next = nil

	l.back = c.cur
	l.length = c.index + 1
	return ret
}

// SpliceBefore moves all nodes of other in front of the current node, or
// to the back of the list on the ghost. other is left empty. The cursor
// keeps its node and its index grows by the number of moved nodes.
//
//	other: 1 <-> 2
//	A <-> B <-> C    =>    A <-> 1 <-> 2 <-> B <-> C
//	      ^                                  ^
func (c *Cursor[T]) SpliceBefore(other *List[T]) {
	l := c.list()
	c.checkDonor(other)
	if other.length == 0 {
		return
	}

	in := other.take()
	if c.cur == nil {
		l.linkBack(in)
		return
	}

	prev := c.cur.prev
	if prev != nil {
		prev.next = in.front
		in.front.prev = prev
	} else {
		l.front = in.front
	}
	in.back.next = c.cur
	c.cur.prev = in.back

	l.length += in.length
	c.index += in.length
}

// SpliceAfter moves all nodes of other behind the current node, or to the
// front of the list on the ghost. other is left empty. The cursor keeps
// its node and index.
//
//	other: 1 <-> 2
//	A <-> B <-> C    =>    A <-> B <-> 1 <-> 2 <-> C
//	      ^                      ^
func (c *Cursor[T]) SpliceAfter(other *List[T]) {
	l := c.list()
	c.checkDonor(other)
	if other.length == 0 {
		return
	}

	in := other.take()
	if c.cur == nil {
		l.linkFront(in)
		return
	}

	next := c.cur.next
	if next != nil {
		next.prev = in.back
		in.back.next = next
	} else {
		l.back = in.back
	}
	in.front.prev = c.cur
	c.cur.next = in.front

	l.length += in.length
}

// InsertBefore inserts v in front of the current node, or at the back on
// the ghost.
func (c *Cursor[T]) InsertBefore(v T) {
	c.list()
	in := New[T]()
	in.pushBack(v)
	c.SpliceBefore(in)
}

// InsertAfter inserts v behind the current node, or at the front on the
// ghost.
func (c *Cursor[T]) InsertAfter(v T) {
	c.list()
	in := New[T]()
	in.pushBack(v)
	c.SpliceAfter(in)
}

// RemoveCurrent unlinks the current node and returns its value. The cursor
// moves onto the following node, which takes over the index, or onto the
// ghost if the removed node was the back. On the ghost nothing happens.
func (c *Cursor[T]) RemoveCurrent() (v T, ok bool) {
	l := c.list()
	n := c.cur
	if n == nil {
		return
	}

	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.front = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.back = n.prev
	}
	l.length--

	c.cur = n.next
	if c.cur == nil {
		c.index = 0
	}
	n.prev, n.next = nil, nil
	return n.value, true
}

func (c *Cursor[T]) checkDonor(other *List[T]) {
	if other == c.l {
		panic("list: cannot splice a list into itself")
	}
	other.b.mustBeFree("Splice")
}

// linkBack appends the non-empty chain of in to l.
func (l *List[T]) linkBack(in *List[T]) {
	if l.back == nil {
		l.front, l.back, l.length = in.front, in.back, in.length
		return
	}
	l.back.next = in.front
	in.front.prev = l.back
	l.back = in.back
	l.length += in.length
}

// linkFront prepends the non-empty chain of in to l.
func (l *List[T]) linkFront(in *List[T]) {
	if l.front == nil {
		l.front, l.back, l.length = in.front, in.back, in.length
		return
	}
	l.front.prev = in.back
	in.back.next = l.front
	l.front = in.front
	l.length += in.length
}
