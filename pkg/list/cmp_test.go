package list

import (
	"fmt"
	"hash/maphash"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Equal(t *testing.T) {
	n := From[uint8]()
	m := From[uint8]()
	require.True(t, Equal(n, m))
	n.PushFront(1)
	require.False(t, Equal(n, m))
	m.PushBack(1)
	require.True(t, Equal(n, m))

	require.False(t, Equal(From(2, 3, 4), From(1, 2, 3)))
	require.False(t, Equal(From(1, 2), From(1, 2, 3)))

	require.True(t, EqualFunc(From("a", "B"), From("A", "b"), strings.EqualFold))
}

func Test_Compare(t *testing.T) {
	n := From[int]()
	m := From(1, 2, 3)
	assert.True(t, Less(n, m))
	assert.True(t, Greater(m, n))
	assert.True(t, LessOrEqual(n, n))
	assert.True(t, GreaterOrEqual(n, n))
	assert.Equal(t, -1, Compare(n, m))
	assert.Equal(t, 0, Compare(m, m.Clone()))
	assert.Equal(t, 1, Compare(From(1, 3), m))
	assert.Equal(t, -1, CompareFunc(From("b"), From("a"), func(x, y string) int {
		return strings.Compare(y, x)
	}))
}

func Test_Compare_nan(t *testing.T) {
	nan := math.NaN()

	n, m := From(nan), From(nan)
	assert.False(t, Less(n, m))
	assert.False(t, Greater(n, m))
	assert.False(t, LessOrEqual(n, m))
	assert.False(t, GreaterOrEqual(n, m))
	_, ok := PartialCompare(n, m)
	assert.False(t, ok)

	one := From(1.0)
	assert.False(t, Less(n, one))
	assert.False(t, Greater(n, one))
	assert.False(t, LessOrEqual(n, one))
	assert.False(t, GreaterOrEqual(n, one))

	u := From(1.0, 2.0, nan)
	v := From(1.0, 2.0, 3.0)
	assert.False(t, Less(u, v))
	assert.False(t, Greater(u, v))
	assert.False(t, LessOrEqual(u, v))
	assert.False(t, GreaterOrEqual(u, v))

	s := From(1.0, 2.0, 4.0, 2.0)
	tt := From(1.0, 2.0, 3.0, 2.0)
	assert.False(t, Less(s, tt))
	assert.True(t, Greater(s, one))
	assert.False(t, LessOrEqual(s, one))
	assert.True(t, GreaterOrEqual(s, one))

	// A NaN past the first difference is never looked at.
	assert.True(t, Greater(From(2.0, nan), From(1.0, nan)))
}

func Test_Hash(t *testing.T) {
	seed := maphash.MakeSeed()
	list1 := From(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	list2 := From(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)

	require.Equal(t, Hash(seed, list1), Hash(seed, list1.Clone()))
	require.NotEqual(t, Hash(seed, list1), Hash(seed, list2))

	// The length is part of the hash.
	require.NotEqual(t, Hash(seed, From("ab")), Hash(seed, From("a", "b")))

	set := make(map[uint64]string)
	set[Hash(seed, list1)] = "list1"
	set[Hash(seed, list2)] = "list2"
	require.Len(t, set, 2)
	require.Equal(t, "list1", set[Hash(seed, From(0, 1, 2, 3, 4, 5, 6, 7, 8, 9))])
}

func Test_Clone(t *testing.T) {
	l := From([]int{1}, []int{2})
	shallow := l.Clone()
	deep := l.CloneFunc(func(s []int) []int { return append([]int(nil), s...) })

	(*l.FrontMut())[0] = 10
	v, _ := shallow.Front()
	require.Equal(t, 10, v[0])
	v, _ = deep.Front()
	require.Equal(t, 1, v[0])

	shallow.PopBack()
	require.Equal(t, 2, l.Len())
	checkLinks(t, shallow)
}

func Test_Format(t *testing.T) {
	l := From(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	require.Equal(t, "[0 1 2 3 4 5 6 7 8 9]", fmt.Sprint(l))
	require.Equal(t, "[0 1 2 3 4 5 6 7 8 9]", l.String())

	s := From("just", "one", "test", "more")
	require.Equal(t, `["just" "one" "test" "more"]`, fmt.Sprintf("%q", s))
	require.Equal(t, "[ 1  2]", fmt.Sprintf("%2d", From(1, 2)))
	require.Equal(t, "[]", fmt.Sprint(New[int]()))
}
