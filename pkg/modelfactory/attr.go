package modelfactory

import "fmt"

// Kind identifies how a template attribute produces its value.
type Kind int

const (
	// KindDefault is a literal default, shallow-copied per build when mutable.
	KindDefault Kind = iota

	// KindFrozen is a literal default shared as-is across builds.
	KindFrozen

	// KindGenerated is produced by a zero-argument function on every build.
	KindGenerated

	// KindOptional is dropped from the built attributes unless overridden.
	KindOptional

	// KindRequired is kept as a placeholder unless overridden.
	KindRequired
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindFrozen:
		return "frozen"
	case KindGenerated:
		return "generated"
	case KindOptional:
		return "optional"
	case KindRequired:
		return "required"
	default:
		return "unknown"
	}
}

// Attr is a tagged template attribute value.
//
// The zero Attr is Default(nil).
type Attr struct {
	kind  Kind
	value any
	gen   func() any
}

// Optional marks an attribute that is omitted unless a build overrides it.
var Optional = Attr{kind: KindOptional}

// Required marks an attribute that must be overridden. When it is not, the
// Required value itself lands in the built attributes, so constructors that
// type-check their input fail loudly.
var Required = Attr{kind: KindRequired}

// Default returns a literal default attribute.
func Default(v any) Attr {
	return Attr{kind: KindDefault, value: v}
}

// Frozen returns a literal default that is never copied. Use it for values
// the built instances will not mutate.
func Frozen(v any) Attr {
	return Attr{kind: KindFrozen, value: v}
}

// Generated returns an attribute whose value is produced by fn on each build.
// A nil fn generates nil.
func Generated(fn func() any) Attr {
	if fn == nil {
		fn = func() any { return nil }
	}
	return Attr{kind: KindGenerated, gen: fn}
}

// Kind returns the attribute kind.
func (a Attr) Kind() Kind {
	return a.kind
}

// Value returns the literal value for Default and Frozen attributes, and nil
// for every other kind. Default values are shallow-copied like they are for
// a build, so mutating the result never reaches the template.
func (a Attr) Value() any {
	if a.kind == KindDefault {
		return shallowCopy(a.value)
	}
	return a.value
}

// String implements fmt.Stringer.
func (a Attr) String() string {
	switch a.kind {
	case KindDefault, KindFrozen:
		return fmt.Sprintf("%s(%v)", a.kind, a.value)
	default:
		return a.kind.String()
	}
}

// IsRequired reports whether v is the Required placeholder.
func IsRequired(v any) bool {
	a, ok := v.(Attr)
	return ok && a.kind == KindRequired
}

// asAttr wraps plain values as Default attributes.
func asAttr(v any) Attr {
	switch a := v.(type) {
	case Attr:
		return a
	case *Attr:
		if a == nil {
			return Default(nil)
		}
		return *a
	default:
		return Default(v)
	}
}

// resolve produces the per-build value of a template-only attribute.
// ok is false when the attribute must be dropped.
func (a Attr) resolve() (v any, ok bool) {
	switch a.kind {
	case KindOptional:
		return nil, false
	case KindRequired:
		return Required, true
	case KindGenerated:
		return a.gen(), true
	case KindFrozen:
		return a.value, true
	default:
		return shallowCopy(a.value), true
	}
}
