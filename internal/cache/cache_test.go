// file: internal/cache/cache_test.go
// version: 2.0.0
// guid: b2c3d4e5-f6a7-8b9c-0d1e-2f3a4b5c6d7e

package cache

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(ttl time.Duration) (*Snapshot[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return New[string](ttl, WithClock[string](clock.now)), clock
}

func TestGetMissWhenEmpty(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	if _, ok := c.Get(); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestPutGet(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Put([]string{"a", "b"})
	v, ok := c.Get()
	if !ok || len(v) != 2 || v[0] != "a" || v[1] != "b" {
		t.Fatalf("expected [a b], got %v ok=%v", v, ok)
	}
}

func TestPutEmptyListIsHit(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Put(nil)
	v, ok := c.Get()
	if !ok {
		t.Fatal("expected hit for cached empty list")
	}
	if v == nil || len(v) != 0 {
		t.Fatalf("expected non-nil empty slice, got %#v", v)
	}
}

func TestExpiry(t *testing.T) {
	c, clock := newTestCache(5 * time.Minute)
	c.Put([]string{"a"})
	clock.advance(5 * time.Minute)
	if _, ok := c.Get(); ok {
		t.Fatal("expected expired entry")
	}
}

func TestSlidingExpiration(t *testing.T) {
	c, clock := newTestCache(5 * time.Minute)
	c.Put([]string{"a"})

	// Each hit within the window extends it
	for i := 0; i < 3; i++ {
		clock.advance(4 * time.Minute)
		if _, ok := c.Get(); !ok {
			t.Fatalf("expected hit on access %d", i)
		}
	}

	clock.advance(5*time.Minute + time.Second)
	if _, ok := c.Get(); ok {
		t.Fatal("expected miss after idle period longer than ttl")
	}
}

func TestInvalidate(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Put([]string{"a"})
	c.Invalidate()
	if _, ok := c.Get(); ok {
		t.Fatal("expected miss after invalidate")
	}
}

func TestSnapshotIsolatedFromSource(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	src := []string{"a", "b"}
	c.Put(src)
	src[0] = "mutated"

	v, _ := c.Get()
	if v[0] != "a" {
		t.Fatalf("cached snapshot leaked source mutation: %v", v)
	}

	v[1] = "caller-mutated"
	again, _ := c.Get()
	if again[1] != "b" {
		t.Fatalf("cached snapshot leaked caller mutation: %v", again)
	}
}

func TestFillRejectedAfterInvalidate(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	gen := c.Generation()
	c.Invalidate()
	if c.Fill(gen, []string{"stale"}) {
		t.Fatal("expected fill with old generation to be rejected")
	}
	if _, ok := c.Get(); ok {
		t.Fatal("stale fill must not populate the cache")
	}

	if !c.Fill(c.Generation(), []string{"fresh"}) {
		t.Fatal("expected fill with current generation to succeed")
	}
	v, ok := c.Get()
	if !ok || v[0] != "fresh" {
		t.Fatalf("expected fresh entry, got %v ok=%v", v, ok)
	}
}
