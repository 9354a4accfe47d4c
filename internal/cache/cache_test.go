package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New[int](nil)
	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
	c.Set("a", 42, time.Minute)
	v, ok := c.Get("a")
	if !ok || v != 42 {
		t.Errorf("expected hit with 42, got %d ok=%v", v, ok)
	}
}

func TestExpiry(t *testing.T) {
	now := time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)
	c := New[string](func() time.Time { return now })

	c.Set("quote:SPY", "cached", 120*time.Second)
	if _, ok := c.Get("quote:SPY"); !ok {
		t.Fatal("expected hit before expiry")
	}

	now = now.Add(121 * time.Second)
	if _, ok := c.Get("quote:SPY"); ok {
		t.Error("expected miss after TTL elapsed")
	}
}

func TestOverwrite(t *testing.T) {
	now := time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)
	c := New[int](func() time.Time { return now })

	c.Set("k", 1, time.Second)
	now = now.Add(2 * time.Second)
	c.Set("k", 2, time.Minute)

	v, ok := c.Get("k")
	if !ok || v != 2 {
		t.Errorf("expected refreshed entry 2, got %d ok=%v", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("expected a single entry, got %d", c.Len())
	}
}
