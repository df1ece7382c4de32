package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ledgerline/mfin/internal/config"
)

func TestNewWithWriter_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zapcore.InfoLevel)

	log.Debug("hidden")
	log.Info("export written", zap.String("path", "Villages_2024-04-01.csv"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry should be filtered:\n%s", out)
	}
	if !strings.Contains(out, "INFO") || !strings.Contains(out, `"path": "Villages_2024-04-01.csv"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud"}, false); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mfin.log")
	log, err := New(config.LogConfig{Level: "error", File: path, MaxSizeMB: 1, MaxBackups: 1}, true)
	if err != nil {
		t.Fatal(err)
	}

	log.Debug("loaded records", zap.Int("count", 47))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "loaded records") {
		t.Fatalf("verbose should force debug level, file has:\n%s", data)
	}
}

func TestParseLevel_DefaultsToWarn(t *testing.T) {
	level, err := parseLevel("")
	if err != nil || level != zapcore.WarnLevel {
		t.Fatalf("parseLevel(\"\") = %v, %v", level, err)
	}
}

func TestForScreen(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zapcore.DebugLevel)

	quiet := ForScreen(log, config.LogConfig{})
	quiet.Error("load failed")
	if buf.Len() != 0 || quiet.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("logger without a file should be silent while the TUI runs: %q", buf.String())
	}

	if got := ForScreen(log, config.LogConfig{File: filepath.Join(t.TempDir(), "mfin.log")}); got != log {
		t.Fatal("file logger should be kept")
	}
}
