package styles

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Symbols
const (
	SymbolSuccess = "✓"
	SymbolWarning = "⚠"
	SymbolSortAsc = "▲"
	SymbolSortDsc = "▼"
)

var noColorFlag atomic.Bool

// SetNoColor forces colors off regardless of the environment.
func SetNoColor(v bool) {
	noColorFlag.Store(v)
}

// NoColor checks if colors should be disabled
func NoColor() bool {
	return noColorFlag.Load() || os.Getenv("NO_COLOR") != "" || os.Getenv("MFIN_NO_COLOR") != ""
}

// IsAccessible checks if accessibility mode is enabled
// When enabled: no spinner, simplified output
func IsAccessible() bool {
	return os.Getenv("MFIN_ACCESSIBLE") == "1" || os.Getenv("MFIN_ACCESSIBLE") == "true"
}

// Base text styles
var (
	Bold = lipgloss.NewStyle().Bold(true)
)

// Semantic styles - use these instead of raw colors
var (
	// Message types
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	// Record status badges
	ActiveStyle   = lipgloss.NewStyle().Foreground(ColorActive)
	InactiveStyle = lipgloss.NewStyle().Foreground(ColorInactive)
	PendingStyle  = lipgloss.NewStyle().Foreground(ColorPending)
	OverdueStyle  = lipgloss.NewStyle().Foreground(ColorOverdue).Bold(true)
	ClosedStyle   = lipgloss.NewStyle().Foreground(ColorClosed)

	// Pagination
	PageStyle        = lipgloss.NewStyle().Foreground(TextSecondary)
	CurrentPageStyle = lipgloss.NewStyle().Background(Accent).Foreground(TextPrimary).Bold(true)
	DisabledStyle    = lipgloss.NewStyle().Foreground(BgBorder)

	// Help bar
	HelpKey = lipgloss.NewStyle().Foreground(Accent)
)

// ═══════════════════════════════════════════════════════════════════════════
// Render functions - centralized formatting with NoColor support
// ═══════════════════════════════════════════════════════════════════════════

// Render applies a style if colors are enabled
func Render(s lipgloss.Style, text string) string {
	if NoColor() {
		return text
	}
	return s.Render(text)
}

// Status colors a record status word (active, pending, overdue...).
func Status(status string) string {
	switch strings.ToLower(status) {
	case "active", "approved", "disbursed", "open", "success":
		return Render(ActiveStyle, status)
	case "inactive", "rejected", "failed":
		return Render(InactiveStyle, status)
	case "pending", "submitted", "in review", "initiated":
		return Render(PendingStyle, status)
	case "overdue", "npa", "defaulted":
		return Render(OverdueStyle, status)
	case "closed", "completed":
		return Render(ClosedStyle, status)
	default:
		return status
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Message formatters - structured output
// ═══════════════════════════════════════════════════════════════════════════

// SuccessMsg formats a success message with checkmark
func SuccessMsg(msg string) string {
	symbol := SymbolSuccess
	if NoColor() {
		symbol = "+"
	}
	return fmt.Sprintf("%s %s", Render(SuccessStyle, symbol), msg)
}

// ErrorMsg formats an error message
func ErrorMsg(title string) string {
	return Render(ErrorStyle, "Error: "+title)
}

// WarningMsg formats a warning message
func WarningMsg(msg string) string {
	symbol := SymbolWarning
	if NoColor() {
		symbol = "!"
	}
	return fmt.Sprintf("%s %s", Render(WarningStyle, symbol), msg)
}

// MutedMsg formats muted/secondary text
func MutedMsg(msg string) string {
	return Render(MutedStyle, msg)
}

// SectionHeader formats a section header
func SectionHeader(title string) string {
	return Render(Bold, title)
}

// HelpLine formats a help line (key description)
func HelpLine(key, description string) string {
	return fmt.Sprintf("  %s %s", Render(HelpKey, key), Render(MutedStyle, description))
}
