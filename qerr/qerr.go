// Package qerr implements the engine's typed errors. Grounded on the
// teacher's jerrors package (referenced, not retrieved, from
// go.appointy.com/graphwalk's copied http.go via jerrors.ConvertError):
// a small typed-error shape with a Kind plus a message, rather than a
// pile of wrapped sentinel strings.
//
// Spec §7 divides errors into parse (out of scope: no frontend in the
// core), validation (IndexedQuery construction), and execution (the only
// error interpret_ir itself can raise). qerr models the latter two.
package qerr

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

// Kind distinguishes validation errors (raised while building an
// IndexedQuery) from execution errors (the only kind interpret_ir itself
// can raise, per spec §7).
type Kind int

const (
	KindIndex Kind = iota
	KindExecution
)

func (k Kind) String() string {
	switch k {
	case KindIndex:
		return "index"
	case KindExecution:
		return "execution"
	default:
		return "unknown"
	}
}

// Error is the engine's typed error: a Kind plus a human-readable
// message and, for execution errors, an optional debug dump of the
// offending value/context.
type Error struct {
	Kind    Kind
	Message string
	Detail  any // e.g. a DataContext or value.Value, dumped lazily on Error()
}

func (e *Error) Error() string {
	if e.Detail == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s\n%s", e.Kind, e.Message, spew.Sdump(e.Detail))
}

// Index constructs an IndexedQuery-building validation error.
func Index(format string, args ...any) *Error {
	return &Error{Kind: KindIndex, Message: fmt.Sprintf(format, args...)}
}

// Execution constructs a runtime execution error, optionally carrying a
// debug detail value rendered on demand via go-spew.
func Execution(detail any, format string, args ...any) *Error {
	return &Error{Kind: KindExecution, Message: fmt.Sprintf(format, args...), Detail: detail}
}

// IsKind reports whether err is a *Error of the given Kind.
func IsKind(err error, k Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == k
}
