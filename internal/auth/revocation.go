package auth

import (
	"context"
	"sync"
	"time"
)

// RevocationStore records revoked token ids until their natural expiry.
//
// Revoke must be idempotent: revoking an id twice leaves the same state as once.
// Implementations may drop an entry once its recorded expiry has passed, since the
// verifier rejects the token on exp from then on, but never earlier.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Purger is implemented by stores that need explicit removal of expired entries.
type Purger interface {
	Purge(ctx context.Context, now time.Time) (int, error)
}

// MemoryRevocationStore is a process-local RevocationStore.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewMemoryRevocationStore creates an empty store.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{entries: make(map[string]time.Time)}
}

// Revoke adds tokenID. An existing entry keeps its original expiry.
func (s *MemoryRevocationStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[tokenID]; !exists {
		s.entries[tokenID] = expiresAt
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (s *MemoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.entries[tokenID]
	return exists, nil
}

// Purge removes entries whose token expiry is at or before now.
func (s *MemoryRevocationStore) Purge(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for tokenID, expiresAt := range s.entries {
		if !now.Before(expiresAt) {
			delete(s.entries, tokenID)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of entries currently held.
func (s *MemoryRevocationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// NegativeCache remembers "not revoked" answers from an underlying store for a
// short TTL. Positive answers are never cached since they are permanent until
// expiry anyway. A Revoke issued through the cache is visible to every later
// lookup in this process, but revocations made by other processes stay invisible
// for up to ttl.
type NegativeCache struct {
	store   RevocationStore
	ttl     time.Duration
	nowFunc func() time.Time

	mu      sync.Mutex
	entries map[string]time.Time
	// bumped by every local Revoke; a lookup that overlapped one must not cache
	epoch uint64
}

// NewNegativeCache wraps store. A non-positive ttl returns store unchanged.
func NewNegativeCache(store RevocationStore, ttl time.Duration, now func() time.Time) RevocationStore {
	if ttl <= 0 {
		return store
	}
	if now == nil {
		now = time.Now
	}
	return &NegativeCache{
		store:   store,
		ttl:     ttl,
		nowFunc: now,
		entries: make(map[string]time.Time),
	}
}

// Revoke forwards to the store and forgets any cached answer for tokenID.
func (c *NegativeCache) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	err := c.store.Revoke(ctx, tokenID, expiresAt)
	c.mu.Lock()
	c.epoch++
	delete(c.entries, tokenID)
	c.mu.Unlock()
	return err
}

// IsRevoked answers from the cache when a fresh negative answer exists.
func (c *NegativeCache) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	now := c.nowFunc()

	c.mu.Lock()
	if until, ok := c.entries[tokenID]; ok {
		if now.Before(until) {
			c.mu.Unlock()
			return false, nil
		}
		delete(c.entries, tokenID)
	}
	epoch := c.epoch
	c.mu.Unlock()

	revoked, err := c.store.IsRevoked(ctx, tokenID)
	if err != nil || revoked {
		return revoked, err
	}

	c.mu.Lock()
	if c.epoch == epoch {
		c.entries[tokenID] = now.Add(c.ttl)
	}
	c.mu.Unlock()
	return false, nil
}

// Purge drops stale cache entries and purges the wrapped store when it supports it.
func (c *NegativeCache) Purge(ctx context.Context, now time.Time) (int, error) {
	c.mu.Lock()
	for tokenID, until := range c.entries {
		if !now.Before(until) {
			delete(c.entries, tokenID)
		}
	}
	c.mu.Unlock()

	if purger, ok := c.store.(Purger); ok {
		return purger.Purge(ctx, now)
	}
	return 0, nil
}
