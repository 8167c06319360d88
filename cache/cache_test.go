package cache

import (
	"testing"
	"time"

	"github.com/centscape/preview/models"
)

func record(url string) *models.ExtractResponse {
	r := &models.ExtractResponse{}
	r.URL = url
	return r
}

func TestKeyStable(t *testing.T) {
	a := Key("https://www.amazon.com/dp/B08N5WRWNW")
	b := Key("https://www.amazon.com/dp/B08N5WRWNW")
	if a != b {
		t.Error("same URL must produce the same key")
	}
	if a == Key("https://www.amazon.com/dp/B000000000") {
		t.Error("different URLs must produce different keys")
	}
	if len(a) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(a))
	}
}

func TestGetSet(t *testing.T) {
	c := New(10)
	key := Key("https://shop.example.com/p/1")

	if _, ok := c.Get(key, 60_000); ok {
		t.Error("empty cache reported a hit")
	}

	c.Set(key, record("https://shop.example.com/p/1"))

	got, ok := c.Get(key, 60_000)
	if !ok {
		t.Fatal("want a hit after Set")
	}
	if got.URL != "https://shop.example.com/p/1" {
		t.Errorf("url = %q", got.URL)
	}
}

func TestGetZeroMaxAgeBypasses(t *testing.T) {
	c := New(10)
	key := Key("https://shop.example.com/p/1")
	c.Set(key, record("x"))

	if _, ok := c.Get(key, 0); ok {
		t.Error("maxAge 0 must bypass the cache")
	}
	if _, ok := c.Get(key, -1); ok {
		t.Error("negative maxAge must bypass the cache")
	}
}

func TestGetExpired(t *testing.T) {
	c := New(10)
	key := Key("https://shop.example.com/p/1")
	c.Set(key, record("x"))

	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get(key, 1); ok {
		t.Error("entry older than maxAge must miss")
	}
}

func TestSetEvictsAtCapacity(t *testing.T) {
	c := New(2)
	c.Set(Key("a"), record("a"))
	c.Set(Key("b"), record("b"))
	c.Set(Key("c"), record("c"))

	c.mu.RLock()
	n := len(c.store)
	c.mu.RUnlock()
	if n != 2 {
		t.Errorf("store size = %d, want capacity 2", n)
	}

	if _, ok := c.Get(Key("c"), 60_000); !ok {
		t.Error("newest entry must survive eviction")
	}
}
