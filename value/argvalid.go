package value

// IsArgumentValid reports whether v is an acceptable value for a variable
// declared with the given top-level type: nulls only where the type (at
// the relevant level) is nullable, and nested lists checked recursively
// element by element. This implements the spec's
// "is_argument_type_valid" contract used when binding query variables.
func IsArgumentValid(t Type, v Value) bool {
	if v.IsNull() {
		return t.Nullable()
	}

	if t.IsList() {
		elems, ok := v.AsList()
		if !ok {
			return false
		}
		elemType := t.Peel()
		for _, e := range elems {
			if !IsArgumentValid(elemType, e) {
				return false
			}
		}
		return true
	}

	// Both integer widths are accepted for any integer- or float-typed
	// variable; every other scalar kind must match its base type name.
	base := t.Base()
	switch v.Kind() {
	case KindInt64, KindUint64:
		return base == "Int" || base == "UInt" || base == "Float"
	case KindFloat64:
		return base == "Float"
	case KindString:
		return base == "String" || base == "ID"
	case KindBool:
		return base == "Boolean"
	case KindEnum:
		return true
	default:
		return false
	}
}
