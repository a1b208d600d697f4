package cache

import (
	"testing"
	"time"
)

func TestSummaryKey_Distinct(t *testing.T) {
	base := SummaryKey("ultra_short", "gpt-4o-mini", "some text")

	if SummaryKey("ultra_short", "gpt-4o-mini", "some text") != base {
		t.Error("Identical inputs must produce identical keys")
	}
	if SummaryKey("technical", "gpt-4o-mini", "some text") == base {
		t.Error("Variant must be part of the key")
	}
	if SummaryKey("ultra_short", "gpt-4o", "some text") == base {
		t.Error("Model must be part of the key")
	}
	if SummaryKey("ultra_short", "gpt-4o-mini", "other text") == base {
		t.Error("Text must be part of the key")
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Expected a cache hit")
	}
	if string(got) != "v" {
		t.Errorf("Got %q, want %q", got, "v")
	}

	if _, ok := c.Get("absent"); ok {
		t.Error("Expected a miss for an absent key")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("Expected the entry to expire")
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("a", []byte("1"), time.Minute)
	_ = c.Set("b", []byte("2"), time.Minute)

	if err := c.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Expected deleted key to miss")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Expected cleared key to miss")
	}
}
