package fixturestore

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps fixtures in memory. Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	kinds  map[string]map[string]record // kind -> id -> record
	seq    int
	closed bool
}

type record struct {
	data      []byte
	sequence  int
	timestamp time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{kinds: make(map[string]map[string]record)}
}

// Save implements Store.
func (m *MemoryStore) Save(kind, id string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	if m.kinds[kind] == nil {
		m.kinds[kind] = make(map[string]record)
	}

	m.seq++
	m.kinds[kind][id] = record{
		data:      slices.Clone(data),
		sequence:  m.seq,
		timestamp: time.Now().UTC(),
	}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(kind, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}
	rec, ok := m.kinds[kind][id]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(rec.data), nil
}

// List implements Store.
func (m *MemoryStore) List(kind string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	records := m.kinds[kind]
	infos := make([]Info, 0, len(records))
	for id, rec := range records {
		infos = append(infos, Info{
			Kind:      kind,
			ID:        id,
			Sequence:  rec.sequence,
			Timestamp: rec.timestamp,
			Size:      int64(len(rec.data)),
		})
	}
	slices.SortFunc(infos, func(a, b Info) int {
		return cmp.Compare(a.Sequence, b.Sequence)
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.kinds[kind], id)
	return nil
}

// DeleteKind implements Store.
func (m *MemoryStore) DeleteKind(kind string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.kinds, kind)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.kinds = nil
	return nil
}

// Len returns the number of records across all kinds.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, records := range m.kinds {
		n += len(records)
	}
	return n
}
