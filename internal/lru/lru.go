// Package lru implements a least-recently-used cache: the strict
// degenerate case of lfu with a single bucket ordered by recency instead
// of a frequency index.
package lru

import (
	"errors"

	"github.com/go-logr/logr"

	"idxcore/internal/invariant"
	"idxcore/internal/xlist"
	"idxcore/internal/xlog"
)

// ErrKeyNotFound is returned by Get when the key is not present in the
// cache.
var ErrKeyNotFound = errors.New("lru: key not found")

// DefaultCapacity is used by callers that want a sane default rather than
// sizing the cache themselves.
const DefaultCapacity = 128

// Cache is an LRU cache keyed by K, holding values of type V.
//
// The zero value is not ready for use; construct one with New.
type Cache[K comparable, V any] struct {
	capacity int
	size     int

	order *xlist.List[K, V]
	index map[K]*xlist.Node[K, V]

	log logr.Logger
}

// Option configures a Cache at construction time.
type Option[K comparable, V any] func(*Cache[K, V])

// WithLogger overrides the default package logger.
func WithLogger[K comparable, V any](log logr.Logger) Option[K, V] {
	return func(c *Cache[K, V]) { c.log = log }
}

// New creates an empty cache with the given capacity. Capacity zero is
// legal: Get and Put become no-ops. A negative capacity is a
// construction-time programming error.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) *Cache[K, V] {
	invariant.Check(capacity >= 0, "lru: capacity must be non-negative")

	c := &Cache[K, V]{
		capacity: capacity,
		order:    xlist.New[K, V](),
		index:    make(map[K]*xlist.Node[K, V], capacity),
		log:      xlog.Default(),
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

// Get returns the value stored for key and moves it to the most-recently-
// used position. It returns ErrKeyNotFound when the key is absent or the
// cache has zero capacity.
func (c *Cache[K, V]) Get(key K) (V, error) {
	var zero V
	if c.capacity == 0 {
		return zero, ErrKeyNotFound
	}

	node, ok := c.index[key]
	if !ok {
		return zero, ErrKeyNotFound
	}

	c.order.Remove(node)
	c.order.PushBack(node)
	return node.Value, nil
}

// Put inserts or overwrites key's value, moving it to the most-recently-
// used position. Inserting past capacity evicts the least-recently-used
// entry first.
func (c *Cache[K, V]) Put(key K, value V) {
	if c.capacity == 0 {
		return
	}

	if node, ok := c.index[key]; ok {
		node.Value = value
		c.order.Remove(node)
		c.order.PushBack(node)
		return
	}

	if c.size == c.capacity {
		evicted := c.order.PopFront()
		invariant.Check(evicted != nil, "lru: pop from non-empty order list returned nil")
		delete(c.index, evicted.Key)
		c.size--
		c.log.V(xlog.Debug).Info("lru.evict", "key", evicted.Key)
	}

	node := &xlist.Node[K, V]{Key: key, Value: value}
	c.order.PushBack(node)
	c.index[key] = node
	c.size++

	c.log.V(xlog.Debug).Info("lru.put.inserted", "key", key, "size", c.size, "capacity", c.capacity)
}
