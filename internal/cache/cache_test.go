// File: internal/cache/cache_test.go

package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New(10, time.Minute)
	defer c.Close()

	c.Set("key", "value")

	got, found := c.Get("key")
	if !found {
		t.Fatal("Expected to find cached item")
	}
	if got != "value" {
		t.Errorf("Expected 'value', got %v", got)
	}

	if _, found := c.Get("missing"); found {
		t.Error("Expected a miss for an unknown key")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := New(10, time.Minute)
	defer c.Close()

	c.Set("key", "first")
	c.Set("key", "second")

	got, _ := c.Get("key")
	if got != "second" {
		t.Errorf("Expected overwritten value, got %v", got)
	}
	if c.Len() != 1 {
		t.Errorf("Expected a single entry, got %d", c.Len())
	}
}

func TestCacheExpiration(t *testing.T) {
	c := New(10, 20*time.Millisecond)
	defer c.Close()

	c.Set("key", "value")
	time.Sleep(40 * time.Millisecond)

	if _, found := c.Get("key"); found {
		t.Error("Expected expired item to be gone")
	}
}

func TestCacheEvictsOldest(t *testing.T) {
	c := New(2, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if _, found := c.Get("a"); found {
		t.Error("Expected the oldest entry to be evicted")
	}
	if _, found := c.Get("b"); !found {
		t.Error("Expected newer entry to survive")
	}
	if c.Len() != 2 {
		t.Errorf("Expected cache at capacity 2, got %d", c.Len())
	}
}

func TestCacheGetRefreshesRecency(t *testing.T) {
	c := New(2, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // a becomes most recently used
	c.Set("c", 3)

	if _, found := c.Get("a"); !found {
		t.Error("Expected recently used entry to survive eviction")
	}
	if _, found := c.Get("b"); found {
		t.Error("Expected least recently used entry to be evicted")
	}
}
