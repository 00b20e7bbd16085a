// Package errors provides rich error types and display for the tabkit CLI.
//
// Errors carry a code for categorization, the underlying cause and
// actionable suggestions, and render either as a styled box or as plain
// text for non-terminal output.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"tabkit/internal/tui/themes"

	"github.com/charmbracelet/lipgloss"
)

// Code represents an error code for categorization.
type Code string

const (
	CodeUnknown        Code = "UNKNOWN"
	CodeConfigNotFound Code = "CONFIG_NOT_FOUND"
	CodeConfigInvalid  Code = "CONFIG_INVALID"
	CodeFileNotFound   Code = "FILE_NOT_FOUND"
	CodeParse          Code = "PARSE"
	CodeSelector       Code = "SELECTOR"
	CodeValidation     Code = "VALIDATION"
	CodeNotTerminal    Code = "NOT_TERMINAL"
	CodeServer         Code = "SERVER"
	CodeUserCancelled  Code = "USER_CANCELLED"
)

// Rich is an enhanced error with additional context for display.
type Rich struct {
	// Code is a unique error code for categorization
	Code Code
	// Message is the user-friendly error message
	Message string
	// Details provides additional technical information
	Details string
	// Suggestions are actionable items the user can try
	Suggestions []string
	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *Rich) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Rich) Unwrap() error {
	return e.Cause
}

// New creates a new Rich error.
func New(code Code, message string) *Rich {
	return &Rich{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, code Code, message string) *Rich {
	return &Rich{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WithDetails adds technical details to the error.
func (e *Rich) WithDetails(details string) *Rich {
	e.Details = details
	return e
}

// WithSuggestions adds actionable suggestions.
func (e *Rich) WithSuggestions(suggestions ...string) *Rich {
	e.Suggestions = suggestions
	return e
}

// AsRich converts an error to a Rich error if possible.
func AsRich(err error) *Rich {
	var rich *Rich
	if errors.As(err, &rich) {
		return rich
	}
	return nil
}

// Display formats the error as a styled box.
func Display(err error, theme *themes.Theme) string {
	if theme == nil {
		theme = themes.Global().Active()
	}

	rich := AsRich(err)
	if rich == nil {
		rich = New(CodeUnknown, err.Error())
	}
	p := theme.Palette

	var b strings.Builder

	header := lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	code := lipgloss.NewStyle().Foreground(p.Muted).Italic(true)
	muted := lipgloss.NewStyle().Foreground(p.Muted)

	b.WriteString(header.Render("✗ Error"))
	b.WriteString(" ")
	b.WriteString(code.Render(fmt.Sprintf("[%s]", rich.Code)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(p.Text).Render(rich.Message))
	b.WriteString("\n")

	if rich.Details != "" {
		b.WriteString("\n")
		b.WriteString(muted.Render(rich.Details))
		b.WriteString("\n")
	}

	if rich.Cause != nil {
		b.WriteString("\n")
		b.WriteString(muted.Render("Caused by: " + rich.Cause.Error()))
		b.WriteString("\n")
	}

	if len(rich.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(p.Focus).Render("Suggestions:"))
		b.WriteString("\n")
		for _, s := range rich.Suggestions {
			b.WriteString("  • ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Error).
		Padding(0, 1).
		Width(64)
	return box.Render(strings.TrimRight(b.String(), "\n"))
}

// DisplaySimple formats an error for non-TUI output.
func DisplaySimple(err error) string {
	rich := AsRich(err)
	if rich == nil {
		return fmt.Sprintf("Error: %v\n", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error [%s]: %s\n", rich.Code, rich.Message)

	if rich.Details != "" {
		fmt.Fprintf(&b, "  Details: %s\n", rich.Details)
	}
	if rich.Cause != nil {
		fmt.Fprintf(&b, "  Caused by: %v\n", rich.Cause)
	}
	if len(rich.Suggestions) > 0 {
		b.WriteString("  Suggestions:\n")
		for _, s := range rich.Suggestions {
			fmt.Fprintf(&b, "    - %s\n", s)
		}
	}

	return b.String()
}

// ConfigInvalid returns a config loading or validation error.
func ConfigInvalid(path string, cause error) *Rich {
	details := "Searched /etc/tabkit, ~/.config/tabkit and the working directory"
	if path != "" {
		details = fmt.Sprintf("File: %s", path)
	}
	return New(CodeConfigInvalid, "Configuration could not be loaded").
		WithDetails(details).
		WithCause(cause).
		WithSuggestions(
			"Check the configuration file syntax",
			"Run 'tabkit config init' to write a fresh configuration",
			"Unset TABKIT_* environment variables that override it",
		)
}

// ConfigExists returns an error for refusing to overwrite a config file.
func ConfigExists(path string) *Rich {
	return New(CodeValidation, "Configuration file already exists").
		WithDetails(fmt.Sprintf("File: %s", path)).
		WithSuggestions(
			"Remove the file first",
			"Use '--file' to write somewhere else",
		)
}

// DocumentUnreadable returns an error for an HTML file that cannot be read
// or parsed.
func DocumentUnreadable(path string, cause error) *Rich {
	return New(CodeFileNotFound, "Document could not be read").
		WithDetails(fmt.Sprintf("File: %s", path)).
		WithCause(cause).
		WithSuggestions(
			"Check that the file exists and is readable",
			"Pass '-' to read the document from standard input",
		)
}

// InvalidSelector returns an error for a markup selector that does not
// compile.
func InvalidSelector(cause error) *Rich {
	return New(CodeSelector, "A markup selector is not valid CSS").
		WithCause(cause).
		WithSuggestions(
			"Check the markup.*_selector settings in your config",
			"Selectors follow CSS syntax, for example '.tabs__button'",
		)
}

// InvalidActivation returns an error for a malformed --activate value.
func InvalidActivation(value, reason string) *Rich {
	return New(CodeValidation, fmt.Sprintf("Invalid activation %q", value)).
		WithDetails(reason).
		WithSuggestions(
			"Use GROUP=INDEX, where GROUP is a group name or position",
			"Run 'tabkit inspect FILE' to list group names and indices",
		)
}

// NotTerminal returns an error for interactive commands run without a TTY.
func NotTerminal(command string) *Rich {
	return New(CodeNotTerminal, fmt.Sprintf("'%s' needs an interactive terminal", command)).
		WithSuggestions(
			"Run the command in a terminal",
			"Use 'tabkit inspect' or 'tabkit render' for scripted use",
		)
}

// WithCause sets the underlying cause.
func (e *Rich) WithCause(cause error) *Rich {
	e.Cause = cause
	return e
}

// UserCancelled returns an error indicating the user cancelled the operation.
func UserCancelled() *Rich {
	return New(CodeUserCancelled, "Operation cancelled by user")
}
