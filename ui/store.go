package ui

import (
	"sync"
	"time"

	"datalens/domain/core"
	"datalens/domain/table"
)

// Entry holds one parsed dataset and its caller-facing metadata for the
// lifetime of the process. Nothing here is written to disk; clearing or
// replacing a dataset simply drops it.
type Entry struct {
	ID        core.DatasetID `json:"id"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	Dataset   table.Dataset  `json:"-"`
}

// Store is the explicit process-wide holder of parsed datasets, with a
// defined subscribe/notify contract. All mutation goes through Put and
// Delete; subscribers are notified outside the lock so a slow subscriber
// cannot block the API.
type Store struct {
	mu      sync.RWMutex
	entries map[core.DatasetID]*Entry
	order   []core.DatasetID
	subs    []func(core.DatasetID)
}

// NewStore creates an empty dataset store.
func NewStore() *Store {
	return &Store{entries: make(map[core.DatasetID]*Entry)}
}

// Put stores a dataset under a fresh ID and returns its entry.
func (s *Store) Put(name string, ds table.Dataset) *Entry {
	entry := &Entry{
		ID:        core.NewDatasetID(),
		Name:      name,
		CreatedAt: time.Now(),
		Dataset:   ds,
	}

	s.mu.Lock()
	s.entries[entry.ID] = entry
	s.order = append(s.order, entry.ID)
	subs := append([]func(core.DatasetID){}, s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(entry.ID)
	}
	return entry
}

// Get returns the entry for id, if present.
func (s *Store) Get(id core.DatasetID) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	return entry, ok
}

// List returns all entries in insertion order.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entry, 0, len(s.order))
	for _, id := range s.order {
		if entry, ok := s.entries[id]; ok {
			out = append(out, entry)
		}
	}
	return out
}

// Delete removes the entry for id and reports whether it existed.
func (s *Store) Delete(id core.DatasetID) bool {
	s.mu.Lock()
	_, ok := s.entries[id]
	if ok {
		delete(s.entries, id)
		for i, oid := range s.order {
			if oid == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	subs := append([]func(core.DatasetID){}, s.subs...)
	s.mu.Unlock()

	if ok {
		for _, fn := range subs {
			fn(id)
		}
	}
	return ok
}

// Subscribe registers fn to run after every Put or Delete, receiving the
// affected dataset ID.
func (s *Store) Subscribe(fn func(core.DatasetID)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
