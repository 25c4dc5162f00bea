// Package repository provides the revocation store backends used by the session
// manager: redis, PostgreSQL, MySQL and an in-process map.
package repository

import (
	"context"
	"sync"
	"time"

	sessionDomain "github.com/codecollab/server/internal/session/domain"
)

// MemoryRevocationStore keeps revoked tokens in a process-local map. Records are
// ignored once expired and purged by the janitor. Revocations are lost on restart
// and not shared between replicas, so it only suits development and tests.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	records map[string]time.Time
	clock   sessionDomain.Clock

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewMemoryRevocationStore creates an empty store. A nil clock uses time.Now.
func NewMemoryRevocationStore(clock sessionDomain.Clock) *MemoryRevocationStore {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryRevocationStore{
		records: make(map[string]time.Time),
		clock:   clock,
	}
}

// Revoke records token until now+ttl. A second revoke refreshes the expiry.
func (s *MemoryRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[token] = s.clock().Add(ttl)
	return nil
}

// IsRevoked reports whether token has an unexpired record.
func (s *MemoryRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	expiresAt, ok := s.records[token]
	s.mu.RUnlock()

	return ok && s.clock().Before(expiresAt), nil
}

// Ping always succeeds unless ctx is done.
func (s *MemoryRevocationStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len returns the number of records held, expired or not.
func (s *MemoryRevocationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Purge removes expired records and returns how many were removed.
func (s *MemoryRevocationStore) Purge() int {
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, expiresAt := range s.records {
		if !now.Before(expiresAt) {
			delete(s.records, token)
			removed++
		}
	}
	return removed
}

// StartJanitor purges expired records every interval until Close is called.
// Calling it more than once has no effect.
func (s *MemoryRevocationStore) StartJanitor(interval time.Duration) {
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Purge()
			case <-s.stop:
				return
			}
		}
	}()
}

// Close stops the janitor and waits for it to exit.
func (s *MemoryRevocationStore) Close() error {
	s.mu.RLock()
	stop, done := s.stop, s.done
	s.mu.RUnlock()

	if stop == nil {
		return nil
	}
	s.stopOnce.Do(func() { close(stop) })
	<-done
	return nil
}
