// file: internal/cache/cache.go
// version: 2.0.0
// guid: a1b2c3d4-e5f6-7a8b-9c0d-1e2f3a4b5c6d

package cache

import (
	"sync"
	"time"
)

// Snapshot is a single-slot cache for a list with sliding expiration.
// It stores a private copy of the list taken at Put time and hands out
// copies on Get, so neither the source nor callers can alter what is cached.
// Safe for concurrent use.
type Snapshot[T any] struct {
	mu         sync.Mutex
	items      []T
	present    bool
	expiresAt  time.Time
	ttl        time.Duration
	generation uint64
	now        func() time.Time
}

// Option configures a Snapshot
type Option[T any] func(*Snapshot[T])

// WithClock overrides the time source (tests)
func WithClock[T any](now func() time.Time) Option[T] {
	return func(s *Snapshot[T]) {
		s.now = now
	}
}

// New creates an empty snapshot cache with the given sliding TTL
func New[T any](ttl time.Duration, opts ...Option[T]) *Snapshot[T] {
	s := &Snapshot[T]{
		ttl: ttl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the cached list if present and not expired. A hit pushes the
// expiry forward by the TTL.
func (s *Snapshot[T]) Get() ([]T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.present {
		return nil, false
	}
	now := s.now()
	if !now.Before(s.expiresAt) {
		s.clear()
		return nil, false
	}
	s.expiresAt = now.Add(s.ttl)
	return clone(s.items), true
}

// Put stores a copy of items and resets the expiry
func (s *Snapshot[T]) Put(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(items)
}

// Fill stores items only if no Invalidate happened since gen was read via
// Generation. It reports whether the items were stored. Readers use it to
// avoid caching a list that a concurrent mutation has already superseded.
func (s *Snapshot[T]) Fill(gen uint64, items []T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false
	}
	s.store(items)
	return true
}

// Generation returns a counter that changes on every Invalidate
func (s *Snapshot[T]) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Invalidate clears the slot unconditionally
func (s *Snapshot[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.clear()
}

func (s *Snapshot[T]) store(items []T) {
	s.items = clone(items)
	s.present = true
	s.expiresAt = s.now().Add(s.ttl)
}

func (s *Snapshot[T]) clear() {
	s.items = nil
	s.present = false
	s.expiresAt = time.Time{}
}

// clone never returns nil so an empty list stays an empty list
func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
