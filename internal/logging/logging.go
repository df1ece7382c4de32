// Package logging builds the zap logger shared by all commands.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ledgerline/mfin/internal/config"
)

// New builds a console-encoded logger from cfg. Output goes to stderr, or to
// a size-rotated file when log.file is set so the TUI screen stays clean.
// verbose forces debug level.
func New(cfg config.LogConfig, verbose bool) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	return zap.New(zapcore.NewCore(encoder(), syncer(cfg), level), zap.AddCaller()), nil
}

// ForScreen returns the logger to use while the TUI owns the terminal. Without
// a log file, output would land on the alternate screen, so it is discarded.
func ForScreen(log *zap.Logger, cfg config.LogConfig) *zap.Logger {
	if cfg.File == "" {
		return zap.NewNop()
	}
	return log
}

// NewWithWriter builds a logger writing to w. Tests use it to capture
// output.
func NewWithWriter(w io.Writer, level zapcore.Level) *zap.Logger {
	return zap.New(zapcore.NewCore(encoder(), zapcore.AddSync(w), level))
}

func parseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.WarnLevel, nil
	}
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func encoder() zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func syncer(cfg config.LogConfig) zapcore.WriteSyncer {
	if cfg.File == "" {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	})
}
