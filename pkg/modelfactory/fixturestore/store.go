// Package fixturestore persists fixture records written by model Save methods.
//
// A fixture type that should be persisted by Factory.Create holds a Store
// and writes itself in Save:
//
//	func (u *User) Save() error {
//	    return fixturestore.SaveJSON(u.store, "User", u.ID, u)
//	}
package fixturestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Store persists fixture records keyed by (kind, id).
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a record. Overwrites an existing (kind, id) record.
	Save(kind, id string, data []byte) error

	// Load retrieves a record.
	// Returns ErrNotFound if the record doesn't exist.
	Load(kind, id string) ([]byte, error)

	// List returns all records of a kind in write order.
	// Returns an empty slice (not error) for an unknown kind.
	List(kind string) ([]Info, error)

	// Delete removes a record. Returns nil if it doesn't exist.
	Delete(kind, id string) error

	// DeleteKind removes every record of a kind.
	DeleteKind(kind string) error

	// Close releases any resources.
	Close() error
}

// Info describes a stored record without its data.
type Info struct {
	Kind      string
	ID        string
	Sequence  int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a record doesn't exist.
	ErrNotFound = errors.New("fixture not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("fixture store closed")
)

// SaveJSON encodes v as JSON and saves it under (kind, id).
func SaveJSON(s Store, kind, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", kind, id, err)
	}
	return s.Save(kind, id, data)
}

// LoadJSON loads the record (kind, id) and decodes it into v.
func LoadJSON(s Store, kind, id string, v any) error {
	data, err := s.Load(kind, id)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s %s: %w", kind, id, err)
	}
	return nil
}
