package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Parse(t *testing.T) {
	s, err := Parse(strings.NewReader(`
lists:
  a: [1, two, 3.5]
steps:
  - op: push_back
    list: a
    values: [4]
  - op: move_next
    n: "2"
`))
	require.NoError(t, err)
	require.Equal(t, []string{"1", "two", "3.5"}, s.Lists["a"])
	require.Len(t, s.Steps, 2)
	require.Equal(t, "push_back", s.Steps[0].Op)
	require.Equal(t, "a", s.Steps[0].Args["list"])

	args, err := ops["move_next"].decode(s.Steps[1].Args)
	require.NoError(t, err)
	require.Equal(t, 2, args.(*moveArgs).N)
}

func Test_Parse_empty(t *testing.T) {
	s, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, s.Steps)
}

func Test_Parse_errors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr string
	}{
		{"unknown op", "steps: [{op: rotate}]", "unknown op"},
		{"unknown arg", "steps: [{op: move_next, m: 1}]", "invalid args"},
		{"bad arg type", "steps: [{op: move_next, n: [1, 2]}]", "invalid args"},
		{"unknown top level key", "listz: {}", "failed to decode script"},
		{"bad yaml", "steps: [", "failed to decode script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.script))
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func Test_Load(t *testing.T) {
	p := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(p, []byte("lists: {a: [x]}\nsteps: [{op: print, list: a}]\n"), 0o644))
	s, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, s.Lists["a"])

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func Test_Ops(t *testing.T) {
	names := Ops()
	for _, want := range []string{
		"push_front", "push_back", "pop_front", "pop_back", "front", "back",
		"cursor", "move_next", "move_prev", "current", "peek_next", "peek_prev", "index",
		"split_before", "split_after", "splice_before", "splice_after", "assert",
	} {
		require.Contains(t, names, want)
	}
}
