package modelfactory

import (
	"errors"
)

// Test fixture types used across tests

// Widget is a simple target type built from attributes.
type Widget struct {
	Greeting string
	Tags     []string
	Serial   any
	Extra    map[string]any
}

// newWidget copies every attribute into a Widget without type checks.
func newWidget(attrs Attributes) (any, error) {
	w := &Widget{Extra: map[string]any{}}
	for k, v := range attrs {
		switch k {
		case "greeting":
			s, ok := v.(string)
			if !ok {
				return nil, errors.New("greeting must be a string")
			}
			w.Greeting = s
		case "tags":
			tags, _ := v.([]string)
			w.Tags = tags
		case "serial":
			w.Serial = v
		default:
			w.Extra[k] = v
		}
	}
	return w, nil
}

// Account implements Saver and records Save calls.
type Account struct {
	Owner   string
	Saves   int
	SaveErr error
}

// Save implements Saver.
func (a *Account) Save() error {
	a.Saves++
	return a.SaveErr
}

// newAccount builds an Account with a typed owner.
func newAccount(attrs Attributes) (any, error) {
	owner, err := Get[string](attrs, "owner")
	if err != nil {
		return nil, err
	}
	acct := &Account{Owner: owner}
	if saveErr, ok := attrs["save_err"].(error); ok {
		acct.SaveErr = saveErr
	}
	return acct, nil
}

// newTestFactory returns a factory with Widget and Account defined.
func newTestFactory() (*Factory, *Registry) {
	reg := NewRegistry()
	types := NewTypes()
	types.Define("Widget", newWidget)
	types.Define("Account", newAccount)
	return New(reg, types), reg
}
