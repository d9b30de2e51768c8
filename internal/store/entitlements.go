// internal/store/entitlements.go
package store

import "sync"

// EntitlementStore tracks purchased document identifiers per browser session.
// Entitlements only grow; deleting a document leaves dangling identifiers
// behind, which is accepted behavior.
type EntitlementStore struct {
	mu        sync.RWMutex
	purchased map[string]map[string]struct{}
}

func NewEntitlementStore() *EntitlementStore {
	return &EntitlementStore{
		purchased: make(map[string]map[string]struct{}),
	}
}

func (s *EntitlementStore) Grant(sessionID, docID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.purchased[sessionID]
	if !ok {
		set = make(map[string]struct{})
		s.purchased[sessionID] = set
	}
	set[docID] = struct{}{}
}

func (s *EntitlementStore) Has(sessionID, docID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.purchased[sessionID][docID]
	return ok
}

// Purchased returns a copy of the session's purchased-ID set.
func (s *EntitlementStore) Purchased(sessionID string) map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := make(map[string]struct{}, len(s.purchased[sessionID]))
	for id := range s.purchased[sessionID] {
		set[id] = struct{}{}
	}
	return set
}
