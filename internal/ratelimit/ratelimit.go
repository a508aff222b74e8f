// Package ratelimit implements the per-client fixed-window rate limit used
// by the public contact endpoint. The in-memory store is the default
// single-instance implementation; a shared cache can implement Store for
// multi-instance deployments.
package ratelimit

import (
	"sync"
	"time"
)

// Store decides whether a request from the given bucket key may proceed.
// When a request is rejected, retryAfter is how long the caller should wait.
type Store interface {
	Allow(key string) (allowed bool, retryAfter time.Duration)
}

// entry tracks request counts within one window for a single key
type entry struct {
	count     int
	firstSeen time.Time
}

// MemoryStore is a mutex-guarded fixed-window counter map.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*entry
	max        int
	window     time.Duration
	staleAfter time.Duration
	stop       chan struct{}
}

// NewMemoryStore creates a store allowing max requests per window.
// Entries untouched for staleAfter are removed by the sweep loop.
func NewMemoryStore(max int, window, staleAfter time.Duration) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]*entry),
		max:        max,
		window:     window,
		staleAfter: staleAfter,
		stop:       make(chan struct{}),
	}
}

// Allow records a request for key and reports whether it is within the limit.
// The window is rolling from the first request: once it elapses the counter
// resets and the request that observed the expiry starts a new window.
func (s *MemoryStore) Allow(key string) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	e, ok := s.entries[key]
	if !ok || now.Sub(e.firstSeen) >= s.window {
		s.entries[key] = &entry{count: 1, firstSeen: now}
		return true, 0
	}

	if e.count >= s.max {
		remaining := s.window - now.Sub(e.firstSeen)
		if remaining < time.Second {
			remaining = time.Second
		}
		return false, remaining
	}

	e.count++
	return true, 0
}

// Start launches the background sweep loop. The loop holds no reference
// back to request handling; it only bounds the map's memory.
func (s *MemoryStore) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep(time.Now())
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweep loop
func (s *MemoryStore) Stop() {
	close(s.stop)
}

func (s *MemoryStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if now.Sub(e.firstSeen) > s.staleAfter {
			delete(s.entries, key)
		}
	}
}
