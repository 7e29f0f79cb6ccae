// Package serialize converts the engine's loosely-typed value.Value rows
// and edge parameter maps into statically-typed Go structs for callers
// that would rather work with concrete record types than
// map[string]value.Value (spec §6's serialization surface).
//
// Grounded on go.appointy.com/graphwalk's teacher package `schemabuilder`:
// input_object.go's generateArgParser/FromJSON reflect walk (fields
// resolved by name, filled one at a time, pointers and slices unwrapped
// recursively) and reflect.go's tag parsing convention, generalized from
// "JSON object into args struct" into "value.Value row into record
// struct".
package serialize

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/golang/protobuf/ptypes/duration"
	"github.com/golang/protobuf/ptypes/timestamp"
	"github.com/iancoleman/strcase"

	"go.appointy.com/graphwalk/value"
)

// Timestamp mirrors the teacher's schemabuilder.Timestamp: a named
// protobuf Timestamp used only for its Seconds/Nanos fields, since
// value.Value has no dedicated timestamp kind — an adapter's schema
// models a timestamp property as an Int64-kind output of Unix seconds,
// and Into lands it in a time.Time field via this wrapper.
type Timestamp timestamp.Timestamp

// Time converts t to its time.Time equivalent.
func (t Timestamp) Time() time.Time { return time.Unix(t.Seconds, int64(t.Nanos)) }

// TimestampFromTime builds a Timestamp from t, the inverse of Time.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp{Seconds: t.Unix(), Nanos: int32(t.Nanosecond())}
}

// Duration mirrors the teacher's schemabuilder.Duration the same way,
// for an Int64-kind output of total nanoseconds landing in a
// time.Duration field.
type Duration duration.Duration

// Duration converts d to its time.Duration equivalent.
func (d Duration) Duration() time.Duration {
	return time.Duration(d.Seconds)*time.Second + time.Duration(d.Nanos)
}

// DurationFromDuration builds a Duration from d, the inverse of Duration.
func DurationFromDuration(d time.Duration) Duration {
	return Duration{Seconds: int64(d / time.Second), Nanos: int32(d % time.Second)}
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// Into deserializes row — an interpreter output row, or any other
// string-keyed value.Value map — into dest, which must be a non-nil
// pointer to a struct. Each exported field is matched against row by, in
// order: an explicit `graphwalk:"name"` tag, the field's lowerCamel form,
// the field's snake_case form, or the field's own name verbatim — the
// first of these present as a key in row wins, reconciling adapters that
// use either naming convention for output names (spec §6).
func Into(row map[string]value.Value, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("serialize: dest must be a non-nil pointer to a struct, got %T", dest)
	}
	return intoStruct(row, rv.Elem())
}

// EdgeParameters deserializes an edge's resolved parameter map into
// dest, with the same field-matching rules as Into. Grounded on
// generateArgParser's per-field dispatch over an args struct.
func EdgeParameters(params map[string]value.Value, dest any) error {
	return Into(params, dest)
}

func intoStruct(row map[string]value.Value, structVal reflect.Value) error {
	typ := structVal.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}

		v, ok := lookupField(row, field)
		if !ok {
			continue
		}
		if err := assign(structVal.Field(i), v); err != nil {
			return fmt.Errorf("serialize: field %s: %w", field.Name, err)
		}
	}
	return nil
}

func lookupField(row map[string]value.Value, field reflect.StructField) (value.Value, bool) {
	for _, key := range fieldKeys(field) {
		if v, ok := row[key]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

func fieldKeys(field reflect.StructField) []string {
	if tag, ok := field.Tag.Lookup("graphwalk"); ok {
		name := strings.Split(tag, ",")[0]
		if name == "-" {
			return nil
		}
		if name != "" {
			return []string{name}
		}
	}
	return []string{strcase.ToLowerCamel(field.Name), strcase.ToSnake(field.Name), field.Name}
}

// assign converts v into dest, a settable reflect.Value, recursing
// through pointers and slices the way generateObjectParser's FromJSON
// closures do.
func assign(dest reflect.Value, v value.Value) error {
	if dest.Kind() == reflect.Ptr {
		if v.IsNull() {
			dest.Set(reflect.Zero(dest.Type()))
			return nil
		}
		ptr := reflect.New(dest.Type().Elem())
		if err := assign(ptr.Elem(), v); err != nil {
			return err
		}
		dest.Set(ptr)
		return nil
	}

	if v.IsNull() {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}

	switch {
	case dest.Type() == timeType:
		i, ok := v.AsInt64()
		if !ok {
			return fmt.Errorf("expected an Int64-kind timestamp value, got %s", v.Kind())
		}
		dest.Set(reflect.ValueOf(Timestamp{Seconds: i}.Time()))
		return nil

	case dest.Type() == durationType:
		i, ok := v.AsInt64()
		if !ok {
			return fmt.Errorf("expected an Int64-kind duration value, got %s", v.Kind())
		}
		dest.SetInt(int64(time.Duration(i)))
		return nil
	}

	switch dest.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := v.AsInt64()
		if !ok {
			return fmt.Errorf("expected an Int64-kind value, got %s", v.Kind())
		}
		dest.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, ok := v.AsUint64()
		if !ok {
			return fmt.Errorf("expected a Uint64-kind value, got %s", v.Kind())
		}
		dest.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, ok := v.AsFloat64()
		if !ok {
			return fmt.Errorf("expected a Float64-kind value, got %s", v.Kind())
		}
		dest.SetFloat(f)
	case reflect.String:
		s, ok := v.AsString()
		if !ok {
			return fmt.Errorf("expected a String/Enum-kind value, got %s", v.Kind())
		}
		dest.SetString(s)
	case reflect.Bool:
		b, ok := v.AsBool()
		if !ok {
			return fmt.Errorf("expected a Boolean-kind value, got %s", v.Kind())
		}
		dest.SetBool(b)
	case reflect.Slice:
		items, ok := v.AsList()
		if !ok {
			return fmt.Errorf("expected a List-kind value, got %s", v.Kind())
		}
		out := reflect.MakeSlice(dest.Type(), len(items), len(items))
		for i, item := range items {
			if err := assign(out.Index(i), item); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		dest.Set(out)
	default:
		return fmt.Errorf("unsupported destination kind %s", dest.Kind())
	}
	return nil
}
