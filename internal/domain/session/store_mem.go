package session

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	session   Session
	expiresAt time.Time
}

// memStore is the default single-process store.
type memStore struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]memEntry

	now func() time.Time
}

// NewMemStore builds an in-memory session store. A non-positive ttl
// defaults to 24h.
func NewMemStore(ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &memStore{
		ttl:  ttl,
		data: make(map[string]memEntry),
		now:  time.Now,
	}
}

func (s *memStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.data[keyPrefix+id]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	cp := entry.session
	return &cp, nil
}

func (s *memStore) Set(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[keyPrefix+sess.ID] = memEntry{
		session:   *sess,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *memStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, keyPrefix+id)
	return nil
}
