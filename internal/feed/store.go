package feed

import (
	"sort"
	"sync"
	"time"

	"ppi-radar.klederson.com/internal/config"
)

// Store is a thread-safe store of heard contacts.
type Store struct {
	mu       sync.RWMutex
	contacts map[string]*Contact
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		contacts: make(map[string]*Contact),
		now:      time.Now,
	}
}

// Upsert adds or updates a contact and returns a copy of the result. RSSI
// of a known contact is smoothed with an EMA; its bearing never changes.
func (s *Store) Upsert(id, name string, rssi float64) Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if existing, ok := s.contacts[id]; ok {
		existing.RSSI = existing.RSSI*(1-config.SmoothingAlpha) + rssi*config.SmoothingAlpha
		existing.Distance = RSSIToDistance(existing.RSSI, config.MeasuredPower, config.PathLossExp)
		existing.LastSeen = now
		if name != "" {
			existing.Name = name
		}
		return *existing
	}

	c := &Contact{
		ID:       id,
		Name:     name,
		RSSI:     rssi,
		LastSeen: now,
		Bearing:  IDToBearing(id),
		Distance: RSSIToDistance(rssi, config.MeasuredPower, config.PathLossExp),
	}
	s.contacts[id] = c
	return *c
}

// Evict removes contacts not heard within timeout and returns their IDs.
func (s *Store) Evict(timeout time.Duration) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-timeout)
	var evicted []string
	for id, c := range s.contacts {
		if c.LastSeen.Before(cutoff) {
			delete(s.contacts, id)
			evicted = append(evicted, id)
		}
	}
	sort.Strings(evicted)
	return evicted
}

// Snapshot returns a copy of all contacts, strongest RSSI first.
func (s *Store) Snapshot() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		result = append(result, *c)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].RSSI != result[j].RSSI {
			return result[i].RSSI > result[j].RSSI
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts)
}
