package errors

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryRender    Category = "render"
	CategoryScript    Category = "script"
	CategoryConfig    Category = "config"
	CategoryStorage   Category = "storage"
	CategoryTransport Category = "transport"
	CategoryCLI       Category = "cli"
)

// Location represents a position in a source document.
type Location struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	file := l.File
	if file == "" {
		file = "<input>"
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", file, l.Line)
}

// Error is a structured error with a registered code, source location and
// a hint for fixing it.
type Error struct {
	// Code is a unique error identifier (e.g., "E150").
	Code string

	// Category is the error type (script, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is where in the input document the error occurred.
	Location *Location

	// Context contains the surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example shows the correct form.
	Example string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Location != nil {
		msg = e.Location.String() + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithLocation points the error at a line of a file on disk.
func (e *Error) WithLocation(file string, line, column int) *Error {
	e.Location = &Location{File: file, Line: line, Column: column}
	if f, err := os.Open(file); err == nil {
		e.Context = contextLines(f, line, 5)
		f.Close()
	}
	return e
}

// WithSource points the error at a line of an in-memory document. The name is
// only used for display and may be empty.
func (e *Error) WithSource(name string, src []byte, line, column int) *Error {
	e.Location = &Location{File: name, Line: line, Column: column}
	e.Context = contextLines(bytes.NewReader(src), line, 5)
	return e
}

// WithMessagef appends specifics to the registered message.
func (e *Error) WithMessagef(format string, args ...any) *Error {
	e.Message += ": " + fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithExample adds an example of the correct form.
func (e *Error) WithExample(ex string) *Error {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// contextLines returns up to size lines centred on target.
func contextLines(r io.Reader, target, size int) []string {
	if target <= 0 {
		return nil
	}
	var lines []string
	scanner := bufio.NewScanner(r)
	n := 0
	start := target - size/2
	end := target + size/2

	for scanner.Scan() {
		n++
		if n >= start && n <= end {
			lines = append(lines, scanner.Text())
		}
		if n > end {
			break
		}
	}
	return lines
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates an Error with a formatted message and no code.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error. Errors that already are
// *Error are returned as is.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*Error); ok {
		return ce
	}
	return New(code).Wrap(err)
}
