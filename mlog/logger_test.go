package mlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func Test_NewLogger(t *testing.T) {
	lg, closeLog, err := NewLogger(&LogConfig{})
	require.NoError(t, err)
	closeLog()
	require.True(t, lg.Core().Enabled(zapcore.InfoLevel))
	require.False(t, lg.Core().Enabled(zapcore.DebugLevel))

	_, _, err = NewLogger(&LogConfig{Level: "loud"})
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "dlist.log")
	lg, closeLog, err = NewLogger(&LogConfig{Level: "debug", File: file, Production: true})
	require.NoError(t, err)
	lg.Debug("hello")
	closeLog()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(b), "{"), "expected json output, got %q", b)
	require.Contains(t, string(b), `"msg":"hello"`)
}

func Test_SetLevel(t *testing.T) {
	defer SetLevel(zapcore.InfoLevel)
	require.False(t, L().Core().Enabled(zapcore.DebugLevel))
	SetLevel(zapcore.DebugLevel)
	require.True(t, L().Core().Enabled(zapcore.DebugLevel))
}
