package model

import "iter"

// Counter counts occurrences of keys and remembers the order in which each
// key was first seen, so iteration is deterministic across runs.
type Counter[K comparable] struct {
	order  []K
	counts map[K]int
}

// NewCounter returns an empty counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

// Inc adds one to the count for key.
func (c *Counter[K]) Inc(key K) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Get returns the count for key and whether the key has been seen.
func (c *Counter[K]) Get(key K) (int, bool) {
	n, ok := c.counts[key]
	return n, ok
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.order)
}

// All yields every key with its count in first-seen order.
func (c *Counter[K]) All() iter.Seq2[K, int] {
	return func(yield func(K, int) bool) {
		for _, k := range c.order {
			if !yield(k, c.counts[k]) {
				return
			}
		}
	}
}

// Total returns the sum of all counts.
func (c *Counter[K]) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}
