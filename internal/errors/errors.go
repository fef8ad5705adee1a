package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the type of a script error
type ErrorType string

const (
	SyntaxError    ErrorType = "SyntaxError"
	NameError      ErrorType = "NameError"
	DefineError    ErrorType = "DefineError"
	PlacementError ErrorType = "PlacementError"
	MoveError      ErrorType = "MoveError"
	AssertionError ErrorType = "AssertionError"
)

// SourceLocation represents a location in a script source
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// ScriptError represents a script error with source location information
type ScriptError struct {
	Type     ErrorType
	Message  string
	Location SourceLocation
	Source   string // The source line where the error occurred
}

// Error implements the error interface
func (e *ScriptError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: %s", e.Type, e.Message))

	if e.Location.File != "" {
		sb.WriteString(fmt.Sprintf("\n  at %s:%d:%d",
			e.Location.File, e.Location.Line, e.Location.Column))

		// Show the source line if available
		if e.Source != "" {
			prefix := fmt.Sprintf("%d | ", e.Location.Line)
			sb.WriteString(fmt.Sprintf("\n\n  %s%s\n", prefix, e.Source))
			sb.WriteString("  ")
			sb.WriteString(strings.Repeat(" ", len(prefix)))
			if e.Location.Column > 1 {
				sb.WriteString(strings.Repeat(" ", e.Location.Column-1))
			}
			sb.WriteString("^")
		}
	}

	return sb.String()
}

// New creates a new script error
func New(typ ErrorType, message string, file string, line, column int) *ScriptError {
	return &ScriptError{
		Type:    typ,
		Message: message,
		Location: SourceLocation{
			File:   file,
			Line:   line,
			Column: column,
		},
	}
}

// WithSource adds the source line to the error
func (e *ScriptError) WithSource(source string) *ScriptError {
	e.Source = source
	return e
}
