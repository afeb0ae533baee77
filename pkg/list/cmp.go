package list

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"hash/maphash"

	"golang.org/x/exp/constraints"
)

// Equal reports whether a and b hold equal values in the same order.
func Equal[T comparable](a, b *List[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

func EqualFunc[T, U any](a *List[T], b *List[U], eq func(T, U) bool) bool {
	a.b.mustNotBeExclusive("Equal")
	b.b.mustNotBeExclusive("Equal")
	if a.length != b.length {
		return false
	}
	for x, y := a.front, b.front; x != nil; x, y = x.next, y.next {
		if !eq(x.value, y.value) {
			return false
		}
	}
	return true
}

// PartialCompare compares a and b lexicographically. ok is false if some
// pair of elements visited on the way is unordered, e.g. a NaN.
func PartialCompare[T constraints.Ordered](a, b *List[T]) (c int, ok bool) {
	return PartialCompareFunc(a, b, partialCmp[T])
}

// PartialCompareFunc is like PartialCompare with a custom element
// comparison that may report a pair as unordered.
func PartialCompareFunc[T any](a, b *List[T], pcmp func(x, y T) (int, bool)) (c int, ok bool) {
	a.b.mustNotBeExclusive("Compare")
	b.b.mustNotBeExclusive("Compare")

	x, y := a.front, b.front
	for ; x != nil && y != nil; x, y = x.next, y.next {
		c, ok = pcmp(x.value, y.value)
		if !ok || c != 0 {
			return c, ok
		}
	}
	return cmp.Compare(a.length, b.length), true
}

func Less[T constraints.Ordered](a, b *List[T]) bool {
	c, ok := PartialCompare(a, b)
	return ok && c < 0
}

func LessOrEqual[T constraints.Ordered](a, b *List[T]) bool {
	c, ok := PartialCompare(a, b)
	return ok && c <= 0
}

func Greater[T constraints.Ordered](a, b *List[T]) bool {
	c, ok := PartialCompare(a, b)
	return ok && c > 0
}

func GreaterOrEqual[T constraints.Ordered](a, b *List[T]) bool {
	c, ok := PartialCompare(a, b)
	return ok && c >= 0
}

// Compare is a total lexicographic order. NaNs sort first, as in
// cmp.Compare.
func Compare[T constraints.Ordered](a, b *List[T]) int {
	return CompareFunc(a, b, cmp.Compare[T])
}

func CompareFunc[T any](a, b *List[T], tcmp func(x, y T) int) int {
	c, _ := PartialCompareFunc(a, b, func(x, y T) (int, bool) { return tcmp(x, y), true })
	return c
}

func partialCmp[T constraints.Ordered](x, y T) (int, bool) {
	switch {
	case x < y:
		return -1, true
	case x > y:
		return 1, true
	case x == y:
		return 0, true
	}
	return 0, false
}

// Hash hashes the length of l followed by its elements. Equal lists have
// equal hashes for the same seed.
func Hash[T comparable](seed maphash.Seed, l *List[T]) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	HashFunc(&h, l, maphash.WriteComparable[T])
	return h.Sum64()
}

// HashFunc writes l into h, using write for each element.
func HashFunc[T any](h *maphash.Hash, l *List[T], write func(*maphash.Hash, T)) {
	l.b.mustNotBeExclusive("Hash")
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(l.length))
	h.Write(b[:])
	for n := l.front; n != nil; n = n.next {
		write(h, n.value)
	}
}

// Clone returns a shallow copy of l.
func (l *List[T]) Clone() *List[T] {
	return l.CloneFunc(func(v T) T { return v })
}

// CloneFunc returns a copy of l with every value passed through clone.
func (l *List[T]) CloneFunc(clone func(T) T) *List[T] {
	l.b.mustNotBeExclusive("Clone")
	nl := New[T]()
	for n := l.front; n != nil; n = n.next {
		nl.pushBack(clone(n.value))
	}
	return nl
}

// Format prints l like a slice of its values, honouring the verb and flags.
func (l *List[T]) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, fmt.FormatString(f, verb), l.Slice())
}

func (l *List[T]) String() string {
	return fmt.Sprint(l.Slice())
}
