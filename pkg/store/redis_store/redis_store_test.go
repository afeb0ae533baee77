package redis_store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pmkol/dlist/pkg/store"
)

func Test_RedisStoreOpts_Init(t *testing.T) {
	_, err := NewRedisStore(RedisStoreOpts{})
	require.Error(t, err)

	_, err = Open("not a url", RedisStoreOpts{})
	require.Error(t, err)

	r, err := Open("redis://127.0.0.1:6379/0", RedisStoreOpts{})
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, defaultKey, r.opts.Key)
	require.Equal(t, time.Second, r.opts.ClientTimeout)
}

func Test_RedisStore_unreachable(t *testing.T) {
	// Nothing listens on port 1.
	r, err := Open("redis://127.0.0.1:1/0", RedisStoreOpts{ClientTimeout: 200 * time.Millisecond})
	require.NoError(t, err)

	ctx := context.Background()
	err = r.Save(ctx, &store.Snapshot{Lists: map[string][]string{"a": {"1"}}})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrDisabled)

	_, err = r.Load(ctx)
	require.ErrorIs(t, err, ErrDisabled)
	require.ErrorIs(t, r.Save(ctx, &store.Snapshot{}), ErrDisabled)

	// Close stops the reconnecting goroutine.
	closed := make(chan error, 1)
	go func() {
		closed <- r.Close()
	}()
	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not stop the reconnecting goroutine")
	}
	require.True(t, r.disabled())
}
