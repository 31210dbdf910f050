package model

import (
	"maps"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cast"
)

// Object is an instance of a kind: one value per model field.
type Object struct {
	kind    *Kind
	values  []any
	binding Binding
}

// New creates an object of kind with every field set to its default,
// or to the zero value of its type when no default was declared.
func New(kind *Kind) *Object {
	values := make([]any, len(kind.model))
	for i, f := range kind.model {
		values[i] = f.initial()
	}

	return &Object{kind: kind, values: values}
}

// Kind returns the kind of the object.
func (o *Object) Kind() *Kind {
	return o.kind
}

// Populate assigns every known remote key of raw to its field.
// Unknown keys are ignored. A value that cannot be coerced to the field type,
// including null, leaves the field unchanged and is reported in the returned
// error; population itself never stops early.
func (o *Object) Populate(raw map[string]any) error {
	var result *multierror.Error

	// Sorted for a stable warning order
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		i, ok := o.kind.byKey[key]
		if !ok {
			continue
		}

		f := o.kind.model[i]
		value, err := coerce(f.Type, raw[key])
		if err != nil {
			result = multierror.Append(result, &CoercionError{Kind: o.kind.name, Field: f.Name, Key: key, Err: err})
			continue
		}
		o.values[i] = value
	}

	return result.ErrorOrNil()
}

// CoercionError reports a remote value that did not match its field type.
type CoercionError struct {
	Kind  string
	Field string
	Key   string
	Err   error
}

func (e *CoercionError) Error() string {
	return e.Kind + "." + e.Field + " (" + e.Key + "): " + e.Err.Error()
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// Get returns the value of a local field.
func (o *Object) Get(name string) (any, bool) {
	i, ok := o.kind.byName[name]
	if !ok {
		return nil, false
	}

	return o.values[i], true
}

// Set coerces v to the field type and assigns it.
func (o *Object) Set(name string, v any) error {
	i, ok := o.kind.byName[name]
	if !ok {
		return errors.Newf("%s has no field %q", o.kind.name, name)
	}

	value, err := coerce(o.kind.model[i].Type, v)
	if err != nil {
		return errors.Wrapf(err, "%s.%s", o.kind.name, name)
	}
	o.values[i] = value

	return nil
}

// String returns a string field, or "" for unknown names.
func (o *Object) String(name string) string {
	v, _ := o.Get(name)
	s, _ := v.(string)

	return s
}

// Int returns an integer field, or 0 for unknown names.
func (o *Object) Int(name string) int64 {
	v, _ := o.Get(name)
	n, _ := v.(int64)

	return n
}

// Bool returns a boolean field, or false for unknown names.
func (o *Object) Bool(name string) bool {
	v, _ := o.Get(name)
	b, _ := v.(bool)

	return b
}

// List returns a list field, or nil for unknown names.
func (o *Object) List(name string) []any {
	v, _ := o.Get(name)
	l, _ := v.([]any)

	return l
}

// Strings returns a list field with every element converted to a string.
func (o *Object) Strings(name string) []string {
	list := o.List(name)
	if list == nil {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, cast.ToString(item))
	}

	return out
}

// Raw returns the field values keyed by remote key.
func (o *Object) Raw() map[string]any {
	out := make(map[string]any, len(o.values))
	for i, f := range o.kind.model {
		v := o.values[i]
		if list, ok := v.([]any); ok {
			v = slices.Clone(list)
		}
		out[f.Key] = v
	}

	return out
}

// Bind attaches a non-owning binding.
func (o *Object) Bind(b Binding) {
	o.binding = b
}

// Binding returns the attached binding, or nil.
func (o *Object) Binding() Binding {
	return o.binding
}
