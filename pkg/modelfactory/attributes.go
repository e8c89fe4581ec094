package modelfactory

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Get returns attrs[key] as a T.
//
// It fails with an *AttributeError when the key is missing, when the value
// is still the Required placeholder, or when the value is not a T. No
// conversions are attempted.
//
// Example:
//
//	func NewUser(attrs modelfactory.Attributes) (any, error) {
//	    name, err := modelfactory.Get[string](attrs, "name")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return &User{Name: name}, nil
//	}
func Get[T any](attrs Attributes, key string) (T, error) {
	var zero T
	v, ok := attrs[key]
	if !ok {
		return zero, &AttributeError{Key: key, Reason: ErrAttributeMissing}
	}
	return convert[T](key, v)
}

// GetOr returns attrs[key] as a T, or def when the key is missing.
// A present value of the wrong type or the Required placeholder is still an
// error.
func GetOr[T any](attrs Attributes, key string, def T) (T, error) {
	v, ok := attrs[key]
	if !ok {
		return def, nil
	}
	return convert[T](key, v)
}

func convert[T any](key string, v any) (T, error) {
	var zero T
	if IsRequired(v) {
		return zero, &AttributeError{Key: key, Reason: ErrAttributeRequired}
	}
	if v == nil && nilable[T]() {
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return zero, &AttributeError{
			Key:    key,
			Reason: ErrAttributeType,
			Detail: fmt.Sprintf("want %s, got %T", NameOf[T](), v),
		}
	}
	return out, nil
}

// nilable reports whether nil is a valid T.
func nilable[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

// Reject returns an *AttributeError wrapping ErrUnknownAttribute when attrs
// holds a key outside allowed. Keys are reported in sorted order.
func (a Attributes) Reject(allowed ...string) error {
	var unknown []string
	for k := range a {
		if !slices.Contains(allowed, k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	slices.Sort(unknown)
	return &AttributeError{
		Key:    unknown[0],
		Reason: ErrUnknownAttribute,
		Detail: "unknown keys: " + strings.Join(unknown, ", "),
	}
}

// Keys returns the attribute keys in sorted order.
func (a Attributes) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}
