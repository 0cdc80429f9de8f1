package errors

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/vango-dev/markup/pkg/markup"
	"github.com/vango-dev/markup/pkg/outline"
)

// Category represents the type of error.
type Category string

const (
	CategoryOutline Category = "outline"
	CategoryConfig  Category = "config"
	CategoryIO      Category = "io"
	CategoryServer  Category = "server"
	CategoryCLI     Category = "cli"
)

// Location represents a source code location.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
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

// MarkupError is a structured error with source location and suggestions.
type MarkupError struct {
	// Code is a unique error identifier (e.g., "M001").
	Code string

	// Category is the error type (outline, config, ...).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source location where the error occurred.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *MarkupError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *MarkupError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a source location and reads the lines around it.
func (e *MarkupError) WithLocation(file string, line, column int) *MarkupError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *MarkupError) WithSuggestion(s string) *MarkupError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *MarkupError) WithDetail(d string) *MarkupError {
	e.Detail = d
	return e
}

// WithContext adds custom context lines to the error.
func (e *MarkupError) WithContext(lines []string) *MarkupError {
	e.Context = lines
	return e
}

// Wrap wraps another error.
func (e *MarkupError) Wrap(err error) *MarkupError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	if filename == "" || targetLine <= 0 {
		return nil
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	return scanContextLines(file, targetLine, contextSize)
}

func scanContextLines(r io.Reader, targetLine, contextSize int) []string {
	if targetLine <= 0 {
		return nil
	}

	var lines []string
	scanner := bufio.NewScanner(r)
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

// New creates a MarkupError from a registered error code.
func New(code string) *MarkupError {
	template, ok := registry[code]
	if !ok {
		return &MarkupError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &MarkupError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new MarkupError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *MarkupError {
	return &MarkupError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a MarkupError.
func FromError(err error, code string) *MarkupError {
	if err == nil {
		return nil
	}
	var me *MarkupError
	if stderrors.As(err, &me) {
		return me
	}
	return New(code).Wrap(err)
}

// FromOutline turns an outline decoding or build error into a diagnostic
// pointing into file. file may be empty for input read from stdin.
func FromOutline(err error, file string) *MarkupError {
	e := fromOutline(err, file)
	if e != nil && e.Location != nil && e.Context == nil {
		e.Context = readContextLines(file, e.Location.Line, 5)
	}
	return e
}

// FromOutlineSource is FromOutline for input that is already in memory,
// such as stdin or a request body. Context lines are taken from src.
func FromOutlineSource(err error, name string, src []byte) *MarkupError {
	e := fromOutline(err, name)
	if e != nil && e.Location != nil && e.Context == nil {
		e.Context = scanContextLines(bytes.NewReader(src), e.Location.Line, 5)
	}
	return e
}

func fromOutline(err error, file string) *MarkupError {
	if err == nil {
		return nil
	}

	var me *MarkupError
	if stderrors.As(err, &me) {
		return me
	}

	code := "M002"
	suggestion := ""
	switch {
	case stderrors.Is(err, outline.ErrEmpty):
		return New("M005").Wrap(err).
			WithSuggestion("Provide at least an empty mapping, e.g. {children: []}")
	case stderrors.Is(err, outline.ErrSyntax):
		code = "M001"
	case stderrors.Is(err, outline.ErrInvalidName):
		code = "M004"
	case stderrors.Is(err, markup.ErrUnknownDialect):
		code = "M003"
		suggestion = "Use one of: html, xhtml, xml"
	}

	var oerr *outline.Error
	if !stderrors.As(err, &oerr) {
		return New(code).Wrap(err).WithDetail(err.Error())
	}

	e := New(code).Wrap(err).WithDetail(oerr.Msg)
	if suggestion != "" {
		e.WithSuggestion(suggestion)
	}
	if oerr.Line > 0 {
		name := file
		if name == "" {
			name = "<stdin>"
		}
		e.Location = &Location{File: name, Line: oerr.Line, Column: oerr.Column}
	}
	return e
}
