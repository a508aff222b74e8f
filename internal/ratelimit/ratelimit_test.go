package ratelimit

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	s := NewMemoryStore(5, time.Minute, 5*time.Minute)

	for i := 1; i <= 5; i++ {
		allowed, _ := s.Allow("10.0.0.1")
		if !allowed {
			t.Fatalf("request %d rejected, want allowed", i)
		}
	}

	allowed, retryAfter := s.Allow("10.0.0.1")
	if allowed {
		t.Fatal("6th request allowed, want rejected")
	}
	if retryAfter <= 0 {
		t.Fatalf("retryAfter = %v, want positive", retryAfter)
	}
	if retryAfter > time.Minute {
		t.Fatalf("retryAfter = %v, want at most the window", retryAfter)
	}
}

func TestAllowIndependentKeys(t *testing.T) {
	s := NewMemoryStore(5, time.Minute, 5*time.Minute)

	for i := 0; i < 5; i++ {
		s.Allow("10.0.0.1")
	}
	if allowed, _ := s.Allow("10.0.0.1"); allowed {
		t.Fatal("first key should be exhausted")
	}

	if allowed, _ := s.Allow("10.0.0.2"); !allowed {
		t.Fatal("second key should be unaffected by the first")
	}
}

func TestWindowReset(t *testing.T) {
	s := NewMemoryStore(2, 50*time.Millisecond, 5*time.Minute)

	s.Allow("ip")
	s.Allow("ip")
	if allowed, _ := s.Allow("ip"); allowed {
		t.Fatal("3rd request within window allowed, want rejected")
	}

	time.Sleep(60 * time.Millisecond)

	if allowed, _ := s.Allow("ip"); !allowed {
		t.Fatal("request after window expiry rejected, want allowed")
	}
}

func TestSweepEvictsStaleEntries(t *testing.T) {
	s := NewMemoryStore(5, time.Minute, 5*time.Minute)

	s.Allow("old")
	s.Allow("fresh")

	s.mu.Lock()
	s.entries["old"].firstSeen = time.Now().Add(-10 * time.Minute)
	s.mu.Unlock()

	s.sweep(time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries["old"]; ok {
		t.Error("stale entry survived the sweep")
	}
	if _, ok := s.entries["fresh"]; !ok {
		t.Error("fresh entry was evicted")
	}
}
