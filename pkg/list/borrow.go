package list

import (
	"errors"
	"fmt"
)

// ErrBorrowed is wrapped by the value of every panic caused by breaking
// the borrow discipline of a List.
var ErrBorrowed = errors.New("list is borrowed")

// borrow tracks who currently has access to a list. It is not a lock:
// a conflicting access is a bug in the caller and panics.
type borrow struct {
	shared    int
	exclusive bool
}

func (b *borrow) acquireShared(by string) {
	if b.exclusive {
		panic(fmt.Errorf("%s: %w exclusively", by, ErrBorrowed))
	}
	b.shared++
}

func (b *borrow) releaseShared() {
	if b.shared <= 0 {
		panic("list: shared borrow released twice")
	}
	b.shared--
}

func (b *borrow) acquireExclusive(by string) {
	switch {
	case b.exclusive:
		panic(fmt.Errorf("%s: %w exclusively", by, ErrBorrowed))
	case b.shared > 0:
		panic(fmt.Errorf("%s: %w by %d iterator(s)", by, ErrBorrowed, b.shared))
	}
	b.exclusive = true
}

func (b *borrow) releaseExclusive() {
	if !b.exclusive {
		panic("list: exclusive borrow released twice")
	}
	b.exclusive = false
}

// mustBeFree panics if anything borrows the list.
func (b *borrow) mustBeFree(op string) {
	switch {
	case b.exclusive:
		panic(fmt.Errorf("%s: %w exclusively", op, ErrBorrowed))
	case b.shared > 0:
		panic(fmt.Errorf("%s: %w by %d iterator(s)", op, ErrBorrowed, b.shared))
	}
}

// mustNotBeExclusive panics if an IterMut or a Cursor borrows the list.
func (b *borrow) mustNotBeExclusive(op string) {
	if b.exclusive {
		panic(fmt.Errorf("%s: %w exclusively", op, ErrBorrowed))
	}
}
