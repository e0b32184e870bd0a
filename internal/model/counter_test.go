package model

import (
	"slices"
	"testing"
)

func TestCounter_PreservesFirstSeenOrder(t *testing.T) {
	c := NewCounter[string]()
	for _, k := range []string{"b", "a", "b", "c", "a", "b"} {
		c.Inc(k)
	}

	var keys []string
	var counts []int
	for k, n := range c.All() {
		keys = append(keys, k)
		counts = append(counts, n)
	}

	if !slices.Equal(keys, []string{"b", "a", "c"}) {
		t.Errorf("Expected keys [b a c], got %v", keys)
	}
	if !slices.Equal(counts, []int{3, 2, 1}) {
		t.Errorf("Expected counts [3 2 1], got %v", counts)
	}
	if c.Len() != 3 {
		t.Errorf("Expected 3 distinct keys, got %d", c.Len())
	}
	if c.Total() != 6 {
		t.Errorf("Expected total 6, got %d", c.Total())
	}
}

func TestCounter_Get(t *testing.T) {
	c := NewCounter[LookupKey]()
	key := LookupKey{DstPort: "443", Protocol: "tcp"}
	if _, ok := c.Get(key); ok {
		t.Fatal("Expected unseen key to be absent")
	}
	c.Inc(key)
	c.Inc(key)
	if n, ok := c.Get(key); !ok || n != 2 {
		t.Errorf("Expected count 2, got %d (present=%v)", n, ok)
	}
}

func TestCounter_AllStopsEarly(t *testing.T) {
	c := NewCounter[int]()
	for i := range 5 {
		c.Inc(i)
	}
	seen := 0
	for range c.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Errorf("Expected iteration to stop after 2 keys, got %d", seen)
	}
}
