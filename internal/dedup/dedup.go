// Package dedup guarantees at-most-once processing of webhook events under
// at-least-once delivery. Events are remembered for a retention window; the
// in-memory store is the default single-instance implementation and a shared
// cache can implement Store for multi-instance deployments.
package dedup

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// eventKeySecret keys the HMAC that derives deterministic event IDs.
// It is a domain separator, not a secret: the IDs only need to be
// deterministic and collision-resistant, not unforgeable.
const eventKeySecret = "calendly-event-dedup"

// EventKey derives a deterministic ID for a booking from the invitee email
// and the slot start time. The same booking always maps to the same key so
// retried deliveries are recognized as duplicates.
func EventKey(inviteeEmail, startTime string) string {
	mac := hmac.New(sha256.New, []byte(eventKeySecret))
	mac.Write([]byte(strings.ToLower(inviteeEmail) + ":" + startTime))
	return hex.EncodeToString(mac.Sum(nil))[:32]
}

// Store remembers processed event IDs for the retention window.
type Store interface {
	// MarkSeen records the key and reports true if it was new.
	// A false return means the event was already processed.
	MarkSeen(key string) bool
}

// MemoryStore is a mutex-guarded TTL set of processed event IDs.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]time.Time
	ttl   time.Duration
	stop  chan struct{}
}

// NewMemoryStore creates a store that remembers keys for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		items: make(map[string]time.Time),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
}

// MarkSeen records key as processed if it is new within the TTL.
func (s *MemoryStore) MarkSeen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if seen, ok := s.items[key]; ok && now.Sub(seen) < s.ttl {
		return false
	}
	s.items[key] = now
	return true
}

// Start launches the background prune loop
func (s *MemoryStore) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.prune(time.Now())
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the prune loop
func (s *MemoryStore) Stop() {
	close(s.stop)
}

func (s *MemoryStore) prune(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, seen := range s.items {
		if now.Sub(seen) > s.ttl {
			delete(s.items, key)
		}
	}
}
