package modelfactory

import (
	"errors"
	"fmt"
)

// Sentinel errors for template and type lookup.
var (
	// ErrTemplateNotFound indicates no template is registered under the requested name.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrClassNotFound indicates no constructor is defined for the requested type name.
	ErrClassNotFound = errors.New("no such type")
)

// Sentinel errors for attribute extraction.
var (
	// ErrAttributeMissing indicates the attribute set has no value for a key.
	ErrAttributeMissing = errors.New("attribute missing")

	// ErrAttributeType indicates the attribute value has an unexpected type.
	ErrAttributeType = errors.New("attribute has wrong type")

	// ErrAttributeRequired indicates a Required placeholder was never overridden.
	ErrAttributeRequired = errors.New("attribute is required")

	// ErrUnknownAttribute indicates an attribute the target type does not accept.
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// TemplateNotFoundError is returned by Registry.Lookup and Factory.Build
// when the requested template was never registered.
type TemplateNotFoundError struct {
	// Name is the requested template name.
	Name string
}

// Error implements the error interface.
func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template not found: %s", e.Name)
}

// Unwrap returns ErrTemplateNotFound for errors.Is support.
func (e *TemplateNotFoundError) Unwrap() error {
	return ErrTemplateNotFound
}

// ClassResolutionError is returned when a template's type name has no
// constructor at build time.
type ClassResolutionError struct {
	// Name is the type name that failed to resolve.
	Name string
}

// Error implements the error interface.
func (e *ClassResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve type %s: %v", e.Name, ErrClassNotFound)
}

// Unwrap returns ErrClassNotFound for errors.Is support.
func (e *ClassResolutionError) Unwrap() error {
	return ErrClassNotFound
}

// AttributeError describes why an attribute could not be extracted.
type AttributeError struct {
	// Key is the attribute key.
	Key string
	// Reason is one of the ErrAttribute* sentinels or ErrUnknownAttribute.
	Reason error
	// Detail adds context such as the expected and actual types.
	Detail string
}

// Error implements the error interface.
func (e *AttributeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("attribute %q: %v (%s)", e.Key, e.Reason, e.Detail)
	}
	return fmt.Sprintf("attribute %q: %v", e.Key, e.Reason)
}

// Unwrap returns the reason for errors.Is support.
func (e *AttributeError) Unwrap() error {
	return e.Reason
}

// InstanceTypeError is returned by BuildAs and CreateAs when the built
// instance is not of the requested Go type.
type InstanceTypeError struct {
	Name string
	Want string
	Got  string
}

// Error implements the error interface.
func (e *InstanceTypeError) Error() string {
	return fmt.Sprintf("template %s built %s, want %s", e.Name, e.Got, e.Want)
}
