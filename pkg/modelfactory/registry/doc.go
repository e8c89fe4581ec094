// Package registry provides a generic keyed registry safe for concurrent use.
//
// modelfactory uses it for the constructor table that maps type names to
// constructors:
//
//	classes := registry.New[string, Constructor]()
//	classes.Register("User", newUser)
//
//	ctor, ok := classes.Get("User")
//
// Keys always returns entries in ascending key order, which keeps error
// messages and listings stable across runs.
package registry
