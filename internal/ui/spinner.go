package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/ledgerline/mfin/internal/ui/styles"
)

// Spinner shows an animated line while records load outside the TUI
// (mfin export, piped mfin view). On a non-terminal writer it prints the
// message once.
type Spinner struct {
	w       io.Writer
	message string
	done    chan struct{}
	stopped sync.WaitGroup
	once    sync.Once
}

// NewSpinner creates a spinner writing to w. Use os.Stderr so stdout stays
// clean for piped output.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		done:    make(chan struct{}),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Start begins the animation in the background.
func (s *Spinner) Start() {
	if styles.IsAccessible() || !isTerminal(s.w) {
		fmt.Fprintln(s.w, s.message+"...")
		return
	}

	s.stopped.Add(1)
	go func() {
		defer s.stopped.Done()
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		style := lipgloss.NewStyle().Foreground(styles.Accent)
		i := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprintf(s.w, "\r%s %s", style.Render(frames[i%len(frames)]), s.message)
				i++
			}
		}
	}()
}

// Stop halts the animation and clears the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.done) })
	s.stopped.Wait()
}

// Success stops the spinner and prints a success line.
func (s *Spinner) Success(msg string) {
	s.Stop()
	fmt.Fprintln(s.w, styles.SuccessMsg(msg))
}

// Error stops the spinner and prints an error line.
func (s *Spinner) Error(msg string) {
	s.Stop()
	fmt.Fprintln(s.w, styles.ErrorMsg(msg))
}
