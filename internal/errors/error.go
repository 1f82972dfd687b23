package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryStore     Category = "store"
	CategoryConfig    Category = "config"
	CategoryLoader    Category = "loader"
	CategoryTransport Category = "transport"
	CategoryExport    Category = "export"
	CategoryCLI       Category = "cli"
)

// Location represents a position inside a file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// DialError is a structured error with location, suggestion and cause.
type DialError struct {
	// Code is a unique error identifier (e.g., "D001").
	Code string

	// Category groups the error by subsystem.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location points into the file that caused the error, if any.
	Location *Location

	// Context contains the lines surrounding Location.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *DialError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *DialError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a file location and reads the surrounding lines.
func (e *DialError) WithLocation(file string, line, column int) *DialError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *DialError) WithSuggestion(s string) *DialError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *DialError) WithDetail(d string) *DialError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *DialError) Wrap(err error) *DialError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a DialError from a registered error code.
func New(code string) *DialError {
	template, ok := registry[code]
	if !ok {
		return &DialError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &DialError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new DialError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *DialError {
	return &DialError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a DialError.
func FromError(err error, code string) *DialError {
	if err == nil {
		return nil
	}
	if de, ok := err.(*DialError); ok {
		return de
	}
	return New(code).Wrap(err)
}
