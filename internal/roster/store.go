package roster

import (
	"errors"
	"fmt"
)

// ErrEmptyKey indicates a record whose name normalized to an empty identity
// key; such records are invalid and must never enter a store.
var ErrEmptyKey = errors.New("empty identity key")

// ErrDuplicateKey indicates two distinct records normalized to the same
// identity key within one store.
var ErrDuplicateKey = errors.New("duplicate identity key")

// Store is one festival-year's roster: insertion-ordered records with a
// unique identity-key index. It is a plain in-memory value; persistence lives
// in csv.go and callers replace whole stores rather than mutating shared ones.
type Store struct {
	records []*Record
	index   map[string]*Record
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{index: make(map[string]*Record)}
}

// Add appends a record, enforcing identity-key uniqueness.
func (s *Store) Add(r *Record) error {
	if r == nil {
		return errors.New("nil record")
	}
	if r.Key == "" {
		return fmt.Errorf("%w: %q", ErrEmptyKey, r.Name)
	}
	if _, exists := s.index[r.Key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, r.Key)
	}
	if s.index == nil {
		s.index = make(map[string]*Record)
	}
	s.records = append(s.records, r)
	s.index[r.Key] = r
	return nil
}

// Get looks a record up by identity key.
func (s *Store) Get(key string) (*Record, bool) {
	if s == nil {
		return nil, false
	}
	r, ok := s.index[key]
	return r, ok
}

// Records returns the records in insertion order. The slice is shared; treat
// it as read-only.
func (s *Store) Records() []*Record {
	if s == nil {
		return nil
	}
	return s.records
}

// Len returns the number of records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Clone returns a deep copy, preserving insertion order.
func (s *Store) Clone() *Store {
	out := NewStore()
	if s == nil {
		return out
	}
	for _, r := range s.records {
		// Keys were unique in the source store, so Add cannot fail.
		_ = out.Add(r.Clone())
	}
	return out
}

// Equal reports whether two stores hold equal records in the same order.
func (s *Store) Equal(other *Store) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i, r := range s.Records() {
		if !r.Equal(other.Records()[i]) {
			return false
		}
	}
	return true
}
