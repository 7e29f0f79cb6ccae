package value

import (
	"fmt"
	"strings"
)

// maxListDepth bounds the list-modifier nesting depth a Type can carry,
// per the value model's "fixed maximum nesting depth (~30)".
const maxListDepth = 30

// Type is a type descriptor: a named base type plus a stack of
// list-modifier frames, each recording whether that level is nullable.
// Frame 0 is innermost (closest to the base type); the last frame is the
// outermost list layer.
type Type struct {
	base      string
	nullable  []bool // nullable[i] is the nullability of the i-th list layer, base not included
	baseNull  bool
}

// Named constructs a non-list type descriptor for base, nullable as given.
func Named(base string, nullable bool) Type {
	return Type{base: base, baseNull: nullable}
}

// ListOf wraps inner in one additional list layer with the given
// nullability for the new outer layer.
func ListOf(inner Type, nullable bool) Type {
	if len(inner.nullable)+1 > maxListDepth {
		panic(fmt.Sprintf("value: type nesting exceeds maximum depth %d", maxListDepth))
	}
	frames := make([]bool, len(inner.nullable)+1)
	copy(frames, inner.nullable)
	frames[len(frames)-1] = nullable
	return Type{base: inner.base, baseNull: inner.baseNull, nullable: frames}
}

// IsList reports whether t has at least one list layer.
func (t Type) IsList() bool { return len(t.nullable) > 0 }

// Nullable reports whether the outermost layer of t (the list layer if
// any, otherwise the base type) is nullable.
func (t Type) Nullable() bool {
	if len(t.nullable) == 0 {
		return t.baseNull
	}
	return t.nullable[len(t.nullable)-1]
}

// Peel removes one outer list layer, returning the element type. Panics
// if t is not a list.
func (t Type) Peel() Type {
	if len(t.nullable) == 0 {
		panic("value: Peel called on a non-list type")
	}
	frames := make([]bool, len(t.nullable)-1)
	copy(frames, t.nullable)
	return Type{base: t.base, baseNull: t.baseNull, nullable: frames}
}

// Base returns the innermost, non-list base type name (e.g. "Int",
// "String", a vertex type name).
func (t Type) Base() string { return t.base }

// WithNullable returns a copy of t with the outermost layer's
// nullability replaced.
func (t Type) WithNullable(nullable bool) Type {
	cp := t
	if len(cp.nullable) == 0 {
		cp.baseNull = nullable
		return cp
	}
	cp.nullable = append([]bool(nil), cp.nullable...)
	cp.nullable[len(cp.nullable)-1] = nullable
	return cp
}

// Equal reports structural equality: same base name, same list depth,
// same nullability at every level.
func (t Type) Equal(other Type) bool {
	if t.base != other.base || t.baseNull != other.baseNull || len(t.nullable) != len(other.nullable) {
		return false
	}
	for i := range t.nullable {
		if t.nullable[i] != other.nullable[i] {
			return false
		}
	}
	return true
}

// IgnoringNullability reports whether a and b have the same base type
// and list shape, disregarding nullability at every level.
func IgnoringNullability(a, b Type) bool {
	return a.base == b.base && len(a.nullable) == len(b.nullable)
}

// IsSubtype reports whether a value of type `sub` may be used wherever a
// value of type `super` is expected: both must share the same base name
// and list shape (ignoring nullability), and at every level where
// `super` is non-nullable, `sub` must also be non-nullable. This is the
// scalar-only subtype check used to validate a query variable's declared
// type against the type inferred at its use site.
func IsSubtype(sub, super Type) bool {
	if sub.base != super.base || len(sub.nullable) != len(super.nullable) {
		return false
	}
	if !super.baseNull && sub.baseNull {
		return false
	}
	for i := range sub.nullable {
		if !super.nullable[i] && sub.nullable[i] {
			return false
		}
	}
	return true
}

// String renders t as e.g. "String", "String!", "[Int!]", "[[Int]!]!".
func (t Type) String() string {
	var b strings.Builder
	for i := len(t.nullable) - 1; i >= 0; i-- {
		b.WriteByte('[')
	}
	b.WriteString(t.base)
	if !t.baseNull {
		b.WriteByte('!')
	}
	for i := 0; i < len(t.nullable); i++ {
		b.WriteByte(']')
		if !t.nullable[i] {
			b.WriteByte('!')
		}
	}
	return b.String()
}
