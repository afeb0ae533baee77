package mem_store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pmkol/dlist/pkg/store"
)

func Test_MemStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()
	defer m.Close()

	_, err := m.Load(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	lists := map[string][]string{"a": {"1", "2"}}
	require.NoError(t, m.Save(ctx, &store.Snapshot{Lists: lists, SavedAt: time.Now()}))

	// The stored copy is independent of the caller's map.
	lists["a"][0] = "x"
	s, err := m.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, s.Lists["a"])

	require.NoError(t, m.Save(ctx, &store.Snapshot{Lists: map[string][]string{"b": nil}}))
	s, err = m.Load(ctx)
	require.NoError(t, err)
	require.Len(t, s.Lists, 1)
	require.Contains(t, s.Lists, "b")
	require.Equal(t, 2, m.Saves())
}
