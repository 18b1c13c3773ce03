package booking

import (
	"context"
	"sync"
	"time"
)

// MemoryDraftStore keeps drafts in a mutex-guarded map with per-entry
// expiry.  It is the default store for single-node deployments and for
// tests; multi-node deployments should use the redis store so that the
// payment redirect can land on any instance.
type MemoryDraftStore struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time
	m   map[uint64]memoryDraftEntry
}

type memoryDraftEntry struct {
	draft     Draft
	expiresAt time.Time
}

// NewMemoryDraftStore returns an empty in-memory store whose drafts
// expire after ttl.
func NewMemoryDraftStore(ttl time.Duration) *MemoryDraftStore {
	return &MemoryDraftStore{
		ttl: ttl,
		now: time.Now,
		m:   make(map[uint64]memoryDraftEntry),
	}
}

// Put stores the draft for the client, replacing any existing one and
// resetting the expiry clock.
func (s *MemoryDraftStore) Put(_ context.Context, clientID uint64, d Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[clientID] = memoryDraftEntry{draft: d, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Get returns the client's current draft.  Expired entries are removed
// lazily and reported as ErrNoDraft.
func (s *MemoryDraftStore) Get(_ context.Context, clientID uint64) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[clientID]
	if !ok {
		return Draft{}, ErrNoDraft
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.m, clientID)
		return Draft{}, ErrNoDraft
	}
	return e.draft, nil
}

// Delete discards the client's draft.  Deleting a missing draft is a
// no-op.
func (s *MemoryDraftStore) Delete(_ context.Context, clientID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, clientID)
	return nil
}
