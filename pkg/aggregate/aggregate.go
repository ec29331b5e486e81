// Package aggregate groups live objects into counted composite keys.
//
// Keys are plain comparable structs, so equality and hashing are
// structural over every field:
//
//	type entityKey struct {
//		DimID int
//		Dim   string
//		Type  string
//	}
//
//	counts := aggregate.Aggregate(entities, func(e Entity) (entityKey, bool) {
//		t, ok := e.Classify()
//		return entityKey{dim.ID(), dim.Name(), t.Name}, ok
//	}, notPlayer)
package aggregate

import "slices"

// Counts maps composite keys to the number of items that produced them.
// Iteration follows the order in which keys were first seen.
type Counts[K comparable] struct {
	keys   []K
	counts map[K]int
}

// New returns an empty Counts.
func New[K comparable]() *Counts[K] {
	return &Counts[K]{counts: make(map[K]int)}
}

// Inc adds one to the count of k.
func (c *Counts[K]) Inc(k K) {
	c.Add(k, 1)
}

// Add adds n to the count of k.
func (c *Counts[K]) Add(k K, n int) {
	if _, ok := c.counts[k]; !ok {
		c.keys = append(c.keys, k)
	}
	c.counts[k] += n
}

// Get returns the count of k, zero when k was never seen.
func (c *Counts[K]) Get(k K) int {
	return c.counts[k]
}

// Keys returns the keys in first-seen order.
func (c *Counts[K]) Keys() []K {
	return slices.Clone(c.keys)
}

// Len returns the number of distinct keys.
func (c *Counts[K]) Len() int {
	return len(c.keys)
}

// Total returns the sum of all counts.
func (c *Counts[K]) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Each calls fn for every key in first-seen order.
func (c *Counts[K]) Each(fn func(k K, n int)) {
	for _, k := range c.keys {
		fn(k, c.counts[k])
	}
}

// Aggregate counts items by the key returned from key. Items rejected by
// filter, or for which key reports false, are skipped without error: an
// object that cannot be classified is left out of the counts rather than
// failing the pass. A nil filter accepts every item.
//
// items may be a view of a collection that another goroutine mutates; it
// is cloned before the walk so the pass sees one fixed ordering.
func Aggregate[T any, K comparable](items []T, key func(T) (K, bool), filter func(T) bool) *Counts[K] {
	return Into(New[K](), items, key, filter)
}

// Into is Aggregate accumulating into an existing Counts, used when one
// pass spans several source collections.
func Into[T any, K comparable](c *Counts[K], items []T, key func(T) (K, bool), filter func(T) bool) *Counts[K] {
	for _, item := range slices.Clone(items) {
		if filter != nil && !filter(item) {
			continue
		}
		k, ok := key(item)
		if !ok {
			continue
		}
		c.Inc(k)
	}
	return c
}
