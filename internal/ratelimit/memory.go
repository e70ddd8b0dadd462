package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	count       int
	windowStart time.Time
}

// MemoryStore keeps fixed-window counters in process memory. Buckets are
// created lazily on first hit and swept periodically once stale.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// NewMemoryStore creates a store and starts a cleanup goroutine that removes
// buckets untouched for longer than sweepAfter.
func NewMemoryStore(sweepAfter time.Duration) *MemoryStore {
	s := newMemoryStore(time.Now)

	go func() {
		for {
			time.Sleep(sweepAfter)
			s.sweep(sweepAfter)
		}
	}()

	return s
}

// newMemoryStore allows injecting a clock in tests.
func newMemoryStore(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		buckets: make(map[string]*bucket),
		now:     now,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	b, exists := s.buckets[key]
	if !exists || now.Sub(b.windowStart) >= window {
		s.buckets[key] = &bucket{count: 1, windowStart: now}
		return 1, nil
	}

	b.count++
	return b.count, nil
}

func (s *MemoryStore) sweep(maxAge time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, b := range s.buckets {
		if now.Sub(b.windowStart) > maxAge {
			delete(s.buckets, key)
		}
	}
}
