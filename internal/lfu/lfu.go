// Package lfu implements an O(1) least-frequently-used cache: O(1)
// amortized Get/Put and O(1) eviction of the least-frequently-used,
// earliest-inserted entry.
//
// The layout follows the bucketed-frequency design described in "An O(1)
// algorithm for implementing the LFU cache eviction scheme" (Shah, Mitra,
// Matani): a key index maps keys to list nodes, and a frequency index maps
// a frequency count to the doubly-linked bucket of nodes currently at that
// frequency. min_freq tracks the smallest non-empty bucket so eviction
// never scans.
package lfu

import (
	"errors"
	"iter"
	"sort"

	"github.com/go-logr/logr"

	"idxcore/internal/invariant"
	"idxcore/internal/xlist"
	"idxcore/internal/xlog"
)

// ErrKeyNotFound is returned by Get and GetFrequency when the key is not
// present in the cache.
var ErrKeyNotFound = errors.New("lfu: key not found")

// DefaultCapacity is used by callers that want a sane default rather than
// sizing the cache themselves.
const DefaultCapacity = 128

type entry[V any] struct {
	value V
	freq  int
}

type bucket[K comparable, V any] = xlist.List[K, *entry[V]]
type nodeHandle[K comparable, V any] = xlist.Node[K, *entry[V]]

// Cache is an LFU cache keyed by K, holding values of type V.
//
// The zero value is not ready for use; construct one with New.
type Cache[K comparable, V any] struct {
	capacity int
	size     int
	minFreq  int

	keyIndex  map[K]*nodeHandle[K, V]
	freqIndex map[int]*bucket[K, V]

	log logr.Logger
}

// Option configures a Cache at construction time.
type Option[K comparable, V any] func(*Cache[K, V])

// WithLogger overrides the default package logger.
func WithLogger[K comparable, V any](log logr.Logger) Option[K, V] {
	return func(c *Cache[K, V]) { c.log = log }
}

// New creates an empty cache with the given capacity. Capacity zero is
// legal: Get and Put become no-ops (but remain total functions). A
// negative capacity is a construction-time programming error.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) *Cache[K, V] {
	invariant.Check(capacity >= 0, "lfu: capacity must be non-negative")

	c := &Cache[K, V]{
		capacity:  capacity,
		keyIndex:  make(map[K]*nodeHandle[K, V], capacity),
		freqIndex: make(map[int]*bucket[K, V]),
		log:       xlog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int { return c.size }

// Cap returns the cache's capacity.
func (c *Cache[K, V]) Cap() int { return c.capacity }

// Get returns the value stored for key and promotes it (frequency +1,
// moved to the back of its new bucket). It returns ErrKeyNotFound when the
// key is absent or the cache has zero capacity.
func (c *Cache[K, V]) Get(key K) (V, error) {
	var zero V
	if c.capacity == 0 {
		return zero, ErrKeyNotFound
	}

	node, ok := c.keyIndex[key]
	if !ok {
		return zero, ErrKeyNotFound
	}

	c.promote(node)
	return node.Value.value, nil
}

// GetFrequency returns the current access frequency of key, or
// ErrKeyNotFound if the key is absent. It does not promote the entry.
func (c *Cache[K, V]) GetFrequency(key K) (int, error) {
	node, ok := c.keyIndex[key]
	if !ok {
		return 0, ErrKeyNotFound
	}
	return node.Value.freq, nil
}

// Put inserts or overwrites key's value. Overwriting promotes the entry.
// Inserting past capacity evicts the earliest-inserted entry at min_freq
// before inserting the new entry at frequency 1.
func (c *Cache[K, V]) Put(key K, value V) {
	if c.capacity == 0 {
		return
	}

	if node, ok := c.keyIndex[key]; ok {
		node.Value.value = value
		c.promote(node)
		return
	}

	if c.size == c.capacity {
		c.evict()
	} else {
		c.size++
	}

	c.minFreq = 1
	node := &nodeHandle[K, V]{Key: key, Value: &entry[V]{value: value, freq: 1}}
	c.bucketFor(1).PushBack(node)
	c.keyIndex[key] = node

	c.log.V(xlog.Debug).Info("lfu.put.inserted", "key", key, "size", c.size, "capacity", c.capacity)
}

// All iterates the cache's entries ordered by descending frequency, newest-
// inserted-into-its-bucket first on ties. This ordering is a debugging
// convenience; it is not a contract the cache otherwise guarantees.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		freqs := make([]int, 0, len(c.freqIndex))
		for f := range c.freqIndex {
			freqs = append(freqs, f)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(freqs)))

		for _, f := range freqs {
			b := c.freqIndex[f]
			for n := b.Back(); n != nil; n = n.Prev() {
				if !yield(n.Key, n.Value.value) {
					return
				}
			}
		}
	}
}

// promote removes the node from bucket f, increments freq, appends to the
// back of bucket f+1 (creating it if absent), and retires bucket f from the
// frequency index if it is now empty, bumping min_freq when the retired
// bucket was the minimum.
func (c *Cache[K, V]) promote(node *nodeHandle[K, V]) {
	f := node.Value.freq
	oldBucket := c.freqIndex[f]
	invariant.Check(oldBucket != nil, "lfu: promoted node's bucket missing from frequency index")

	oldBucket.Remove(node)
	node.Value.freq = f + 1
	c.bucketFor(f + 1).PushBack(node)

	if oldBucket.IsEmpty() {
		delete(c.freqIndex, f)
		if f == c.minFreq {
			c.minFreq = f + 1
		}
	}

	c.log.V(xlog.Debug).Info("lfu.promote", "key", node.Key, "freq", node.Value.freq)
}

// evict pops the front (earliest-inserted) node of the min_freq bucket and
// removes its key from the key index. Size accounting for the subsequent
// insert is the caller's responsibility.
func (c *Cache[K, V]) evict() {
	b := c.freqIndex[c.minFreq]
	invariant.Check(b != nil && !b.IsEmpty(), "lfu: min_freq bucket missing or empty on eviction")

	node := b.PopFront()
	delete(c.keyIndex, node.Key)
	if b.IsEmpty() {
		delete(c.freqIndex, c.minFreq)
	}

	c.log.V(xlog.Debug).Info("lfu.evict", "key", node.Key, "freq", c.minFreq)
}

func (c *Cache[K, V]) bucketFor(freq int) *bucket[K, V] {
	b, ok := c.freqIndex[freq]
	if !ok {
		b = xlist.New[K, *entry[V]]()
		c.freqIndex[freq] = b
	}
	return b
}
