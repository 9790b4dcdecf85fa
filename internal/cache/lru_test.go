// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newClockedLRU(capacity int, ttl time.Duration) (*LRUCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache(capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRUCache_BasicOperations(t *testing.T) {
	cache := NewLRUCache(3, time.Minute)

	cache.Add("a", []byte("1"), 0)
	cache.Add("b", []byte("2"), 0)
	cache.Add("c", []byte("3"), 0)

	for _, key := range []string{"a", "b", "c"} {
		if _, found := cache.Get(key); !found {
			t.Errorf("Get(%q) not found", key)
		}
	}

	got, _ := cache.Get("b")
	if string(got) != "2" {
		t.Errorf("Get(b) = %q, want %q", got, "2")
	}

	if cache.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cache.Len())
	}
}

func TestLRUCache_Eviction(t *testing.T) {
	cache := NewLRUCache(3, time.Minute)

	cache.Add("a", []byte("1"), 0)
	cache.Add("b", []byte("2"), 0)
	cache.Add("c", []byte("3"), 0)

	// 'a' becomes most recently used, leaving 'b' as the LRU entry
	cache.Get("a")
	cache.Add("d", []byte("4"), 0)

	if _, found := cache.Get("b"); found {
		t.Error("expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := cache.Get(key); !found {
			t.Errorf("expected %q to be present", key)
		}
	}

	_, _, evictions, size := cache.Counters()
	if evictions != 1 {
		t.Errorf("evictions = %d, want 1", evictions)
	}
	if size != 3 {
		t.Errorf("size = %d, want 3", size)
	}
}

func TestLRUCache_Update(t *testing.T) {
	cache := NewLRUCache(2, time.Minute)

	cache.Add("a", []byte("old"), 0)
	cache.Add("a", []byte("new"), 0)

	got, found := cache.Get("a")
	if !found {
		t.Fatal("expected 'a' to be present")
	}
	if string(got) != "new" {
		t.Errorf("Get(a) = %q, want %q", got, "new")
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestLRUCache_ReturnsCopies(t *testing.T) {
	cache := NewLRUCache(2, time.Minute)

	value := []byte("abc")
	cache.Add("k", value, 0)
	value[0] = 'x'

	got, _ := cache.Get("k")
	if string(got) != "abc" {
		t.Errorf("stored value changed with caller slice: %q", got)
	}

	got[1] = 'y'
	again, _ := cache.Get("k")
	if string(again) != "abc" {
		t.Errorf("stored value changed with returned slice: %q", again)
	}
}

func TestLRUCache_TTLExpiration(t *testing.T) {
	cache, clock := newClockedLRU(10, time.Minute)

	cache.Add("short", []byte("1"), 10*time.Second)
	cache.Add("default", []byte("2"), 0)

	clock.Advance(30 * time.Second)

	if _, found := cache.Get("short"); found {
		t.Error("expected 'short' to be expired")
	}
	if !cache.Contains("default") {
		t.Error("expected 'default' to still be live")
	}

	clock.Advance(time.Minute)
	if cache.Contains("default") {
		t.Error("expected 'default' to be expired")
	}
}

func TestLRUCache_CleanupExpired(t *testing.T) {
	cache, clock := newClockedLRU(10, time.Minute)

	cache.Add("a", []byte("1"), 10*time.Second)
	cache.Add("b", []byte("2"), 10*time.Second)
	cache.Add("c", []byte("3"), time.Hour)

	clock.Advance(20 * time.Second)

	if removed := cache.CleanupExpired(); removed != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", removed)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
	if !cache.Contains("c") {
		t.Error("expected 'c' to remain")
	}
}

func TestLRUCache_RemoveMatching(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		removed int
		remain  []string
	}{
		{"all with empty pattern", "", 4, nil},
		{"all with star", "*", 4, nil},
		{"prefix", "recommendations:*", 3, []string{"similar:x"}},
		{"single user", "recommendations:u1:*", 2, []string{"recommendations:u2:10:us-east-1", "similar:x"}},
		{"no match", "trending:*", 0, []string{"recommendations:u1:10:us-east-1", "recommendations:u1:5:us-east-1", "recommendations:u2:10:us-east-1", "similar:x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewLRUCache(10, time.Minute)
			cache.Add("recommendations:u1:10:us-east-1", []byte("a"), 0)
			cache.Add("recommendations:u1:5:us-east-1", []byte("b"), 0)
			cache.Add("recommendations:u2:10:us-east-1", []byte("c"), 0)
			cache.Add("similar:x", []byte("d"), 0)

			if got := cache.RemoveMatching(tt.pattern); got != tt.removed {
				t.Errorf("RemoveMatching(%q) = %d, want %d", tt.pattern, got, tt.removed)
			}
			if cache.Len() != len(tt.remain) {
				t.Errorf("Len() = %d, want %d", cache.Len(), len(tt.remain))
			}
			for _, key := range tt.remain {
				if !cache.Contains(key) {
					t.Errorf("expected %q to remain", key)
				}
			}
		})
	}
}

func TestLRUCache_RemoveAndClear(t *testing.T) {
	cache := NewLRUCache(10, time.Minute)
	cache.Add("a", []byte("1"), 0)
	cache.Add("b", []byte("2"), 0)

	if !cache.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if cache.Remove("a") {
		t.Error("second Remove(a) = true, want false")
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", cache.Len())
	}

	// List must still be usable after a clear
	cache.Add("c", []byte("3"), 0)
	if !cache.Contains("c") {
		t.Error("expected 'c' after re-adding")
	}
}

func TestLRUCache_Counters(t *testing.T) {
	cache := NewLRUCache(10, time.Minute)
	cache.Add("a", []byte("1"), 0)

	cache.Get("a")
	cache.Get("a")
	cache.Get("missing")

	hits, misses, _, size := cache.Counters()
	if hits != 2 {
		t.Errorf("hits = %d, want 2", hits)
	}
	if misses != 1 {
		t.Errorf("misses = %d, want 1", misses)
	}
	if size != 1 {
		t.Errorf("size = %d, want 1", size)
	}
}

func TestLRUCache_Defaults(t *testing.T) {
	cache := NewLRUCache(0, 0)
	if cache.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", cache.capacity, DefaultCapacity)
	}
	if cache.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", cache.ttl, DefaultTTL)
	}
}

func TestLRUCache_ConcurrentAccess(t *testing.T) {
	cache := NewLRUCache(100, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d-%d", id, j%20)
				cache.Add(key, []byte("v"), 0)
				cache.Get(key)
				if j%10 == 0 {
					cache.RemoveMatching(fmt.Sprintf("key-%d-*", id))
				}
			}
		}(i)
	}
	wg.Wait()

	if cache.Len() > 100 {
		t.Errorf("Len() = %d exceeds capacity 100", cache.Len())
	}
}
