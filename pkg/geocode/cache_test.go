package geocode

import (
	"testing"
	"time"
)

func TestCacheGetAfterPut(t *testing.T) {
	c := NewCache()
	c.Put("srinagar-all", "payload")

	got, ok := c.Get("srinagar-all")
	if !ok {
		t.Fatal("expected a cache hit right after Put")
	}
	if got != "payload" {
		t.Fatalf("got %v, want payload", got)
	}
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("never-stored"); ok {
		t.Fatal("expected a miss for an unknown key")
	}
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	c := NewCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Put("jammu-all", "old")

	now = now.Add(CacheTTL - time.Second)
	if _, ok := c.Get("jammu-all"); !ok {
		t.Fatal("entry expired before TTL elapsed")
	}

	now = now.Add(2 * time.Second)
	if _, ok := c.Get("jammu-all"); ok {
		t.Fatal("entry still served after TTL elapsed")
	}
	if c.Len() != 0 {
		t.Fatalf("stale entry not evicted, %d entries left", c.Len())
	}

	// A fresh fill after the miss is served again.
	c.Put("jammu-all", "new")
	got, ok := c.Get("jammu-all")
	if !ok || got != "new" {
		t.Fatalf("got %v ok=%v, want new value after refill", got, ok)
	}
}

func TestCachePutOverwrites(t *testing.T) {
	c := NewCache()
	c.Put("key", "first")
	c.Put("key", "second")

	got, _ := c.Get("key")
	if got != "second" {
		t.Fatalf("got %v, want second", got)
	}
	if c.Len() != 1 {
		t.Fatalf("overwrite left %d entries, want 1", c.Len())
	}
}
