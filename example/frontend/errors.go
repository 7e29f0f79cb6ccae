package frontend

import "fmt"

// ParseError is returned for malformed query text: bad syntax, an
// unrecognized directive argument, a directive attached to the wrong
// kind of field, or a name that collides with one already declared.
// Grounded on trustfall_core's frontend ParseError (directives.rs),
// collapsed to a single variant since this package has no source
// position tracking of its own (graphql-go/graphql's AST nodes carry a
// Loc, but lowering errors here are almost always about directive
// combinations rather than raw syntax).
type ParseError struct {
	Where string // e.g. a field or directive name
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Where == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Where, e.Msg)
}

func errorf(where, format string, args ...any) *ParseError {
	return &ParseError{Where: where, Msg: fmt.Sprintf(format, args...)}
}
