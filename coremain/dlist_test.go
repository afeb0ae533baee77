package coremain

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pmkol/dlist/pkg/store/mem_store"
)

func Test_Dlist_runFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "s.yaml", testScript)

	out := new(bytes.Buffer)
	m := mem_store.NewMemStore()
	d, err := newDlist(zap.NewNop(), out, m)
	require.NoError(t, err)

	require.NoError(t, d.runFile(context.Background(), p))
	require.Equal(t, "m: [1 2 3 4]\n", out.String())

	snap, err := m.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", "3", "4"}, snap.Lists["m"])

	// A failed run is not saved.
	bad := writeFile(t, dir, "bad.yaml", "lists: {x: [1]}\nsteps: [{op: len, list: nope}]")
	require.Error(t, d.runFile(context.Background(), bad))
	require.Equal(t, 1, m.Saves())

	require.Error(t, d.runFile(context.Background(), dir+"/missing.yaml"))
}

func Test_Dlist_api(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "s.yaml", testScript)
	d, err := newDlist(zap.NewNop(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, d.runFile(context.Background(), p))

	rec := httptest.NewRecorder()
	d.GetHTTPAPIMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lists", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var lists map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lists))
	require.Equal(t, map[string][]string{"m": {"1", "2", "3", "4"}}, lists)

	rec = httptest.NewRecorder()
	d.GetHTTPAPIMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `dlist_script_ops_total{op="push_back"} 1`)
	require.Contains(t, rec.Body.String(), "dlist_script_lists 1")
}

func Test_Dlist_watch(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "s.yaml", testScript)
	d, err := newDlist(zap.NewNop(), nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- d.watch(ctx, p, 20*time.Millisecond)
	}()

	// Give the watcher some time to start.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(p, []byte("lists: {w: [x, y]}"), 0o644))
	require.Eventually(t, func() bool {
		_, ok := d.runner.Snapshot()["w"]
		return ok
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func Test_RunDlist(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "s.yaml", testScript)

	out := new(bytes.Buffer)
	require.NoError(t, RunDlist(context.Background(), &Config{Script: ScriptConfig{File: p}}, out))
	require.Equal(t, "m: [1 2 3 4]\n", out.String())

	// With an api, RunDlist returns once ctx is done.
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	cfg := &Config{
		Script: ScriptConfig{File: p},
		API:    APIConfig{HTTP: "127.0.0.1:0", MaxConns: 2},
	}
	require.NoError(t, RunDlist(ctx, cfg, new(bytes.Buffer)))

	cfg = &Config{Script: ScriptConfig{File: p}, Store: StoreConfig{Redis: "://bad"}}
	require.ErrorContains(t, RunDlist(context.Background(), cfg, out), "redis")
}
