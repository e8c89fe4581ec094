package modelfactory

import (
	"reflect"

	"github.com/randalmurphal/modelfactory/pkg/modelfactory/registry"
)

// Constructor builds an instance from merged attributes.
// Errors are returned to the Build caller unchanged.
type Constructor func(attrs Attributes) (any, error)

// InitConstructor is a Constructor that also receives the build's
// post-construction hook. The constructor decides whether and when to call
// it; init is never nil.
type InitConstructor func(attrs Attributes, init func(any)) (any, error)

// Class is a resolved type: its name and how to construct it.
type Class struct {
	Name string

	newFn     Constructor
	newInitFn InitConstructor
}

// SupportsInit reports whether the class accepts a post-construction hook.
func (c Class) SupportsInit() bool {
	return c.newInitFn != nil
}

// New constructs an instance. The hook is offered only to classes defined
// with DefineWithInit; for the rest it never runs.
func (c Class) New(attrs Attributes, init func(any)) (any, error) {
	if c.newInitFn != nil {
		if init == nil {
			init = func(any) {}
		}
		return c.newInitFn(attrs, init)
	}
	return c.newFn(attrs)
}

// Types maps type names to constructors.
//
// Names are resolved when an instance is built, not when a template is
// registered, so templates can be registered before their types are defined.
type Types struct {
	classes *registry.Registry[string, Class]
}

// NewTypes creates an empty type table.
func NewTypes() *Types {
	return &Types{classes: registry.New[string, Class]()}
}

// Define registers fn as the constructor for name, replacing any earlier one.
func (t *Types) Define(name string, fn Constructor) {
	t.classes.Register(name, Class{Name: name, newFn: fn})
}

// DefineWithInit registers a constructor that accepts a post-construction hook.
func (t *Types) DefineWithInit(name string, fn InitConstructor) {
	t.classes.Register(name, Class{Name: name, newInitFn: fn})
}

// Resolve returns the class registered under name.
// Returns a *ClassResolutionError when there is none.
func (t *Types) Resolve(name string) (Class, error) {
	c, ok := t.classes.Get(name)
	if !ok {
		return Class{}, &ClassResolutionError{Name: name}
	}
	return c, nil
}

// Undefine removes the constructor for name. Templates for name fail to
// build until it is defined again.
func (t *Types) Undefine(name string) {
	t.classes.Delete(name)
}

// Len returns the number of defined types.
func (t *Types) Len() int {
	return t.classes.Len()
}

// Has reports whether name resolves.
func (t *Types) Has(name string) bool {
	return t.classes.Has(name)
}

// Names returns the defined type names in sorted order.
func (t *Types) Names() []string {
	return t.classes.Keys()
}

// Clear removes every constructor.
func (t *Types) Clear() {
	t.classes.Clear()
}

// NameOf returns the name used for T in templates and type tables, such as
// "models.User" or "*models.User".
func NameOf[T any]() string {
	return reflect.TypeFor[T]().String()
}

// DefineType registers a typed constructor under NameOf[T]() and returns
// that name.
//
//	name := modelfactory.DefineType(types, func(a modelfactory.Attributes) (User, error) {
//	    return NewUser(a)
//	})
//	reg.Register(name, map[string]any{"name": "Alice"})
func DefineType[T any](types *Types, fn func(Attributes) (T, error)) string {
	name := NameOf[T]()
	types.Define(name, func(attrs Attributes) (any, error) {
		return fn(attrs)
	})
	return name
}
