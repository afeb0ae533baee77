package mlog

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogConfig struct {
	// Level, See also zapcore.ParseLevel.
	Level string `yaml:"level"`

	// File that logger will be writen into.
	// Default is stderr.
	File string `yaml:"file"`

	// Production enables json output.
	Production bool `yaml:"production"`
}

var (
	stderr = zapcore.Lock(os.Stderr)

	lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	l   = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), stderr, lvl))
)

// NewLogger builds a logger from lc. A zero LogConfig gives an info level
// console logger on stderr. The returned func flushes the logger and
// closes the log file, if any.
func NewLogger(lc *LogConfig) (*zap.Logger, func(), error) {
	lvl, err := parseLevel(lc.Level)
	if err != nil {
		return nil, nil, err
	}

	out := stderr
	closeFile := func() {}
	if len(lc.File) > 0 {
		f, closeF, err := zap.Open(lc.File)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = zapcore.Lock(f)
		closeFile = closeF
	}

	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	if lc.Production {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	lg := zap.New(zapcore.NewCore(enc, out, lvl))
	return lg, func() {
		_ = lg.Sync()
		closeFile()
	}, nil
}

func parseLevel(s string) (zapcore.Level, error) {
	if len(s) == 0 {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("invalid log level [%s]", s)
	}
	return lvl, nil
}

// L is a global logger.
func L() *zap.Logger {
	return l
}

// SetLevel sets the log level for the global logger.
func SetLevel(l zapcore.Level) {
	lvl.SetLevel(l)
}
