/*
Package modelfactory builds test fixtures from named attribute templates.

# Overview

Templates are registered once, usually during test setup. Each build merges
the template with per-call overrides and hands the result to the
constructor defined for the template's type name:

	type User struct {
	    Name  string
	    Tags  []string
	    Email string
	}

	func newUser(a modelfactory.Attributes) (any, error) {
	    name, err := modelfactory.Get[string](a, "name")
	    if err != nil {
	        return nil, err
	    }
	    email, err := modelfactory.Get[string](a, "email")
	    if err != nil {
	        return nil, err
	    }
	    tags, err := modelfactory.GetOr[[]string](a, "tags", nil)
	    if err != nil {
	        return nil, err
	    }
	    return &User{Name: name, Email: email, Tags: tags}, nil
	}

	types := modelfactory.NewTypes()
	types.Define("User", newUser)

	reg := modelfactory.NewRegistry()
	reg.Register("User", map[string]any{
	    "name":  "Alice",
	    "tags":  []string{"admin"},
	    "email": modelfactory.SequenceFormat("user%d@example.com", 1),
	})

	f := modelfactory.New(reg, types)
	u, err := modelfactory.BuildAs[*User](f, "User", modelfactory.Attributes{"name": "Bob"})

# Attribute Kinds

Template values are tagged with a Kind:
  - Default(v): copied one level deep per build when v is a slice, map or
    pointer, so one instance mutating its collection never leaks into the
    next. Plain values passed to Register are Defaults.
  - Frozen(v): shared as-is.
  - Generated(fn): fn is called on every build. Sequence, SequenceFormat,
    UUID and Now are ready-made generators.
  - Optional: omitted unless overridden.
  - Required: kept as the Required placeholder unless overridden, so that
    Get and type assertions in constructors fail loudly.

Overrides always win and are passed through untouched. Passing the same
slice to two builds shares it between both instances.

# Type Resolution

Types maps names to constructors. Names are resolved at build time, so
templates may be registered before the types they describe. DefineType and
NameOf derive the name from a Go type.

# Persistence

Create builds an instance and calls Save on it when it implements Saver.
Instances without Save are returned unchanged.

# Thread Safety

Registry is not synchronized: register templates during setup, build
afterwards. Types is safe for concurrent use.
*/
package modelfactory
