package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used throughout mfin
var (
	ErrUnknownScreen     = errors.New("unknown screen")
	ErrNoSource          = errors.New("no record source configured")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNotConnected      = errors.New("not connected to database")
	ErrInvalidConfigKey  = errors.New("invalid config key")
)

// AppError is a structured error with context and suggestions
type AppError struct {
	Title       string   // Short error title
	Message     string   // Detailed message
	Context     string   // What was being attempted
	Causes      []string // Possible causes
	Suggestions []string // Actionable suggestions with commands
	Err         error    // Wrapped error
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Title + ": " + e.Err.Error()
	}
	return e.Title
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Format returns a nicely formatted error message
func (e *AppError) Format() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Title))

	if e.Message != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Message))
	}
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Context))
	}

	if len(e.Causes) > 0 {
		sb.WriteString("\n  Possible causes:\n")
		for _, cause := range e.Causes {
			sb.WriteString(fmt.Sprintf("    • %s\n", cause))
		}
	}

	if len(e.Suggestions) > 0 {
		sb.WriteString("\n  Try:\n")
		for _, sug := range e.Suggestions {
			sb.WriteString(fmt.Sprintf("    $ %s\n", sug))
		}
	}

	return sb.String()
}

// NewError creates a new AppError
func NewError(title string) *AppError {
	return &AppError{Title: title}
}

// WithMessage adds a detailed message
func (e *AppError) WithMessage(msg string) *AppError {
	e.Message = msg
	return e
}

// WithContext adds context about what was being attempted
func (e *AppError) WithContext(ctx string) *AppError {
	e.Context = ctx
	return e
}

// WithCauses adds possible causes
func (e *AppError) WithCauses(causes ...string) *AppError {
	e.Causes = append(e.Causes, causes...)
	return e
}

// WithSuggestion adds an actionable suggestion
func (e *AppError) WithSuggestion(sug string) *AppError {
	e.Suggestions = append(e.Suggestions, sug)
	return e
}

// WithSuggestions adds multiple suggestions
func (e *AppError) WithSuggestions(sugs ...string) *AppError {
	e.Suggestions = append(e.Suggestions, sugs...)
	return e
}

// Wrap wraps an underlying error
func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

// ══════════════════════════════════════════════════════════════════════════
// Pre-built error constructors for common cases
// ══════════════════════════════════════════════════════════════════════════

// UnknownScreenError reports a screen name that is not registered.
func UnknownScreenError(name string) *AppError {
	return NewError(fmt.Sprintf("Unknown screen '%s'", name)).
		WithSuggestions(
			"mfin screens           # List available screens",
		).
		Wrap(ErrUnknownScreen)
}

// NoSourceError reports a source kind that needs settings which are missing.
func NoSourceError(kind, missing string) *AppError {
	return NewError(fmt.Sprintf("Source '%s' is not configured", kind)).
		WithMessage(fmt.Sprintf("%s is required for %s sources", missing, kind)).
		WithSuggestions(
			"mfin view <screen> --file records.csv",
			"mfin view <screen> --db postgres://... --table loans",
			"mfin config source.kind sample",
		).
		Wrap(ErrNoSource)
}

// UnsupportedFormatError reports a file source with an unknown extension.
func UnsupportedFormatError(path string) *AppError {
	return NewError("Unsupported file format").
		WithContext(path).
		WithMessage("Supported formats are .json, .yaml, .yml and .csv").
		Wrap(ErrUnsupportedFormat)
}

// DatabaseConnectionError returns a structured error for DB connection issues
func DatabaseConnectionError(url string, err error) *AppError {
	return NewError("Cannot connect to database").
		WithContext(RedactURL(url)).
		WithCauses(
			"Database server is not running",
			"Invalid connection credentials",
			"Network connectivity issues",
			"Database does not exist",
		).
		WithSuggestions(
			"mfin config source.url          # Check the configured URL",
			"echo $MFIN_DATABASE_URL         # Check the environment override",
		).
		Wrap(err)
}

// MissingArgumentError returns an error for missing required argument
func MissingArgumentError(argName, example string) *AppError {
	e := NewError(fmt.Sprintf("Missing required argument: <%s>", argName))
	if example != "" {
		e.WithSuggestion(example)
	}
	return e
}

// TooManyArgumentsError returns an error for too many arguments
func TooManyArgumentsError(expected int, got int) *AppError {
	return NewError(fmt.Sprintf("Too many arguments: expected %d, got %d", expected, got))
}

// RedactURL hides the password of a connection URL.
func RedactURL(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return url
	}
	user, _, hasPass := strings.Cut(userinfo, ":")
	if !hasPass {
		return url
	}
	return scheme + "://" + user + ":****@" + host
}
