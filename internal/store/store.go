package store

import (
	"sort"
	"sync"

	"der_simulator/internal/frame"
)

// Store holds per-meter load frames in memory, keyed by meter ID. It exists
// for fleet runs: one simulation per registered meter.
type Store struct {
	mu     sync.RWMutex
	meters map[string]*frame.IntervalFrame
}

func New() *Store {
	return &Store{meters: make(map[string]*frame.IntervalFrame)}
}

// AddMeter registers a meter's load frame, replacing any previous frame for
// the same ID.
func (s *Store) AddMeter(id string, load *frame.IntervalFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meters[id] = load
}

// Meter returns the load frame for a meter ID.
func (s *Store) Meter(id string) (*frame.IntervalFrame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	load, ok := s.meters[id]
	return load, ok
}

// MeterIDs returns all registered meter IDs in sorted order.
func (s *Store) MeterIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.meters))
	for id := range s.meters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered meters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.meters)
}
