package ui

import (
	"bytes"
	"testing"

	"github.com/ledgerline/mfin/internal/ui/styles"
)

func TestSpinner_NonTerminal(t *testing.T) {
	styles.SetNoColor(true)
	defer styles.SetNoColor(false)

	var buf bytes.Buffer
	s := NewSpinner(&buf, "Loading Overdue Loans")
	s.Start()
	s.Success("Loaded 58 records")
	s.Stop()

	want := "Loading Overdue Loans...\n+ Loaded 58 records\n"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestSpinner_Error(t *testing.T) {
	styles.SetNoColor(true)
	defer styles.SetNoColor(false)

	var buf bytes.Buffer
	s := NewSpinner(&buf, "Connecting")
	s.Start()
	s.Error("connection refused")

	want := "Connecting...\nError: connection refused\n"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}
