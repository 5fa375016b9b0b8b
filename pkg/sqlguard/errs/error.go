// Package errs classifies raw database driver failures into a closed set of categories.
//
// Every classified error carries three things: a short message that is safe to show to end users,
// a verbose diagnostic detail that must never be displayed, and a Category for programmatic branching.
// Building a classified error always emits a Diagnostic to the classifier's Sink, so the detail is
// recorded even when callers only look at the user message.
package errs

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Error is a classified failure. Its Error method returns the display-safe user message.
type Error struct {
	ID          string
	Category    Category
	UserMessage string
	Detail      string
	Code        string

	cause error
}

func (e *Error) Error() string {
	return e.UserMessage
}

// Unwrap returns the driver error the classification was derived from, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches another *Error of the same category, so errors.Is(err, &Error{Category: ...}) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.ID == "" && t.Category == e.Category
}

// Diagnostic is the record emitted when an Error is constructed.
type Diagnostic struct {
	ID          string    `json:"id"`
	Time        time.Time `json:"time"`
	Category    Category  `json:"category"`
	UserMessage string    `json:"userMessage"`
	Detail      string    `json:"detail"`
	Code        string    `json:"code,omitempty"`
}

func (d Diagnostic) PrettyPrint(writer io.Writer) {
	fmt.Fprintf(writer, "\u001B[38;5;8m%s \u001B[38;5;160m%-20s\u001B[0m %s\n%s\n",
		d.ID, d.Category, d.UserMessage, d.Detail)
}

// CategoryOf returns the category of the first *Error in err's chain.
func CategoryOf(err error) (Category, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Category, true
	}

	return "", false
}

// Is reports whether err is a classified error of the given category.
func Is(err error, category Category) bool {
	c, ok := CategoryOf(err)

	return ok && c == category
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)

	return e, ok
}
