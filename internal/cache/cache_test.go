package cache

import (
	"sync"
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New[string, int](time.Minute)

	c.Set("tallos", 42)
	val, ok := c.Get("tallos")
	if !ok {
		t.Fatal("expected to find tallos")
	}
	if val != 42 {
		t.Errorf("expected 42, got %d", val)
	}

	if _, ok := c.Get("nonexistent"); ok {
		t.Error("expected not to find nonexistent key")
	}
}

func TestCacheExpiryWithMockedClock(t *testing.T) {
	c := New[string, string](time.Minute)

	current := time.Now()
	c.clock = func() time.Time { return current }

	c.Set("catalog", "v1")

	if _, ok := c.Get("catalog"); !ok {
		t.Fatal("expected to find catalog before TTL")
	}

	current = current.Add(2 * time.Minute)

	if _, ok := c.Get("catalog"); ok {
		t.Error("expected catalog to be expired after clock advance")
	}
}

func TestCacheDelete(t *testing.T) {
	c := New[string, int](time.Minute)

	c.Set("key", 100)
	c.Delete("key")

	if _, ok := c.Get("key"); ok {
		t.Error("expected key to be deleted")
	}

	// Deleting a missing key must not panic
	c.Delete("nonexistent")
}

func TestCacheClear(t *testing.T) {
	c := New[string, int](time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected empty cache, got len=%d", c.Len())
	}
}

func TestCachePrune(t *testing.T) {
	c := New[string, string](time.Minute)

	current := time.Now()
	c.clock = func() time.Time { return current }

	c.Set("old1", "x")
	c.Set("old2", "y")
	current = current.Add(2 * time.Minute)
	c.Set("fresh", "z")

	c.Prune()

	if c.Len() != 1 {
		t.Errorf("expected 1 item after prune, got %d", c.Len())
	}
	if val, ok := c.Get("fresh"); !ok || val != "z" {
		t.Errorf("expected fresh entry to survive prune, got %q ok=%v", val, ok)
	}
}

func TestCacheConcurrency(t *testing.T) {
	c := New[int, int](time.Minute)

	var wg sync.WaitGroup
	const n = 100

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set(i, i*2)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			val, ok := c.Get(i)
			if !ok {
				t.Errorf("expected to find key %d", i)
				return
			}
			if val != i*2 {
				t.Errorf("expected %d, got %d", i*2, val)
			}
		}(i)
	}
	wg.Wait()
}

func TestCacheOverwrite(t *testing.T) {
	c := New[string, int](time.Minute)

	c.Set("key", 1)
	c.Set("key", 2)

	val, ok := c.Get("key")
	if !ok {
		t.Fatal("expected to find key")
	}
	if val != 2 {
		t.Errorf("expected overwritten value 2, got %d", val)
	}
}
