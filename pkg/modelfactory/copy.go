package modelfactory

import "reflect"

// Duplicator is implemented by values that know how to copy themselves.
// Default attributes holding a Duplicator are copied with Duplicate instead
// of the built-in shallow copy.
type Duplicator interface {
	Duplicate() any
}

// shallowCopy returns a copy of v one level deep.
//
// Slices, maps and pointers get fresh top-level storage; their elements are
// shared. Every other kind is returned as-is: values stored in an interface
// cannot be mutated in place, and funcs and chans have no meaningful copy.
func shallowCopy(v any) any {
	if v == nil {
		return nil
	}
	if d, ok := v.(Duplicator); ok {
		return d.Duplicate()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Cap())
		reflect.Copy(out, rv)
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out.Interface()
	case reflect.Pointer:
		if rv.IsNil() {
			return v
		}
		out := reflect.New(rv.Elem().Type())
		out.Elem().Set(rv.Elem())
		return out.Interface()
	default:
		return v
	}
}
