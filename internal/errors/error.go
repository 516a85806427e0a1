package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryProtocol Category = "protocol"
	CategoryCatalog  Category = "catalog"
	CategoryConfig   Category = "config"
	CategoryRuntime  Category = "runtime"
)

// DropdownError is a structured error with a code, a hint and a wrapped cause.
type DropdownError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *DropdownError) Error() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Wrapped != nil {
		b.WriteString(": ")
		b.WriteString(e.Wrapped.Error())
	}
	return b.String()
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *DropdownError) Unwrap() error {
	return e.Wrapped
}

// Is matches another *DropdownError with the same code, so sentinel values
// built with New compare equal to decorated copies.
func (e *DropdownError) Is(target error) bool {
	t, ok := target.(*DropdownError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithDetail replaces the detail text.
func (e *DropdownError) WithDetail(d string) *DropdownError {
	e.Detail = d
	return e
}

// WithDetailf replaces the detail text with a formatted string.
func (e *DropdownError) WithDetailf(format string, args ...any) *DropdownError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion.
func (e *DropdownError) WithSuggestion(s string) *DropdownError {
	e.Suggestion = s
	return e
}

// Wrap records err as the cause.
func (e *DropdownError) Wrap(err error) *DropdownError {
	e.Wrapped = err
	return e
}

// Format renders the error for a terminal: message, detail and hint on
// separate lines.
func (e *DropdownError) Format() string {
	var b strings.Builder
	b.WriteString("ERROR ")
	b.WriteString(e.Error())
	b.WriteString("\n")
	if e.Detail != "" {
		b.WriteString("  ")
		b.WriteString(e.Detail)
		b.WriteString("\n")
	}
	if e.Suggestion != "" {
		b.WriteString("  Hint: ")
		b.WriteString(e.Suggestion)
		b.WriteString("\n")
	}
	return b.String()
}

// New creates a DropdownError from a registered code.
func New(code string) *DropdownError {
	template, ok := registry[code]
	if !ok {
		return &DropdownError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &DropdownError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates an uncoded DropdownError with a formatted message.
func Newf(category Category, format string, args ...any) *DropdownError {
	return &DropdownError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError returns err as a *DropdownError, wrapping it in code if it is
// not one already. It returns nil for a nil err.
func FromError(err error, code string) *DropdownError {
	if err == nil {
		return nil
	}
	var de *DropdownError
	if stderrors.As(err, &de) {
		return de
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code of the first DropdownError in err's chain, or "".
func CodeOf(err error) string {
	var de *DropdownError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return ""
}
