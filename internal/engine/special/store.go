package special

import (
	"sync/atomic"
	"time"
)

// Store holds the active macro table. Readers never block; Swap replaces the
// table for all later lookups.
type Store struct {
	current atomic.Pointer[Map]
}

// NewStore returns a store serving m.
func NewStore(m Map) *Store {
	s := &Store{}
	s.Swap(m)
	return s
}

// Load returns the active table.
func (s *Store) Load() Map {
	if p := s.current.Load(); p != nil {
		return *p
	}
	return nil
}

// Swap installs m and returns the previous table.
func (s *Store) Swap(m Map) Map {
	if m == nil {
		m = Map{}
	}
	if old := s.current.Swap(&m); old != nil {
		return *old
	}
	return nil
}

// Resolve looks trigger up in the active table.
func (s *Store) Resolve(trigger rune, cur Fields, today time.Time) (time.Time, bool) {
	return s.Load().Resolve(trigger, cur, today)
}
