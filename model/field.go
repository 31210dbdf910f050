package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cast"
)

// Type is the value type of a field.
type Type int

// Field types.
const (
	TypeString Type = iota
	TypeInt
	TypeBool
	TypeList
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeList:
		return "list"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Field describes how one local field maps to a key of the remote dictionary.
// Fields are pure metadata and are built with String, Int, Bool or List.
type Field struct {
	// Name is the local field name.
	Name string
	// Key is the remote dictionary key. Defaults to Name.
	Key string
	// Type is the value type the remote value is coerced to.
	Type Type

	def        any
	hasDefault bool
}

// String declares a string field.
func String(name string) Field {
	return Field{Name: name, Key: name, Type: TypeString}
}

// Int declares an integer field.
func Int(name string) Field {
	return Field{Name: name, Key: name, Type: TypeInt}
}

// Bool declares a boolean field.
func Bool(name string) Field {
	return Field{Name: name, Key: name, Type: TypeBool}
}

// List declares a list field.
func List(name string) Field {
	return Field{Name: name, Key: name, Type: TypeList}
}

// From sets the remote key the field is read from.
func (f Field) From(key string) Field {
	f.Key = key
	return f
}

// Default sets the value a new object starts with.
// It panics when v cannot be coerced to the field type.
func (f Field) Default(v any) Field {
	value, err := coerce(f.Type, v)
	if err != nil {
		panic(fmt.Sprintf("model: default of field %q: %v", f.Name, err))
	}

	f.def = value
	f.hasDefault = true

	return f
}

// DefaultValue returns the explicit default and whether one was given.
func (f Field) DefaultValue() (any, bool) {
	return f.def, f.hasDefault
}

// initial returns the value of the field in a new object.
func (f Field) initial() any {
	if f.hasDefault {
		if list, ok := f.def.([]any); ok {
			return slices.Clone(list)
		}
		return f.def
	}

	return zero(f.Type)
}

func zero(t Type) any {
	switch t {
	case TypeInt:
		return int64(0)
	case TypeBool:
		return false
	case TypeList:
		return []any(nil)
	default:
		return ""
	}
}

// ErrNullValue is returned when a remote value is JSON null.
var ErrNullValue = errors.New("null value")

// coerce converts a remote value to the Go representation of t:
// string, int64, bool or []any.
func coerce(t Type, v any) (any, error) {
	if v == nil {
		return nil, ErrNullValue
	}

	v = plainNumber(v)

	var (
		out any
		err error
	)

	switch t {
	case TypeString:
		out, err = cast.ToStringE(v)
	case TypeInt:
		out, err = toInt64(v)
	case TypeBool:
		out, err = cast.ToBoolE(v)
	case TypeList:
		var list []any
		list, err = cast.ToSliceE(v)
		if err == nil && list == nil {
			list = []any{}
		}
		list = slices.Clone(list)
		for i, item := range list {
			list[i] = plainNumber(item)
		}
		out = list
	default:
		return nil, errors.Newf("unknown field type %s", t)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "cannot use %T as %s", v, t)
	}

	return out, nil
}

// plainNumber turns a json.Number into an int64, or a float64 when it has a
// fraction or exponent. Other values are returned unchanged.
func plainNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}

	if i, err := n.Int64(); err == nil {
		return i
	}

	if f, err := n.Float64(); err == nil {
		return f
	}

	return n.String()
}

// toInt64 reads strings as base 10 so that "010" is 10, not octal 8.
func toInt64(v any) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return cast.ToInt64E(v)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %q as integer", s)
	}

	return n, nil
}
