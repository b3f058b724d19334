// Package lru provides a generic, fixed-capacity Least-Recently-Used cache.
//
// Both Get and Put count as a use. When a new key is Put into a full cache,
// the least recently used entry is evicted to make room for it.
//
// LRU is not safe for concurrent use. Callers sharing one cache across
// goroutines must guard every call with the same lock.
package lru

import (
	"github.com/krisalay/lru-cache/recency"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// maxPrealloc bounds how much of the capacity is allocated up front, so a
// huge capacity does not cost memory before it is used.
const maxPrealloc = 1024

// entry is what the map stores for a resident key: its value and the
// position of the key in the recency order.
type entry[V any] struct {
	value  V
	handle recency.Handle
}

/*
LRU is the cache store. It coordinates two structures:

  - items: key -> (value, handle), for O(1) lookup
  - order: keys from least to most recently used, for O(1) promotion and
    eviction

Every key in items is in order and every key in order is in items. Each
stored handle points at the node holding that same key.
*/
type LRU[K comparable, V any] struct {
	capacity int
	items    map[K]entry[V]
	order    *recency.Index[K]
}

// New creates an empty cache holding at most capacity entries. It returns
// an error wrapping ErrInvalidCapacity when capacity is not positive.
func New[K comparable, V any](capacity int) (*LRU[K, V], error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}

	prealloc := min(capacity, maxPrealloc)

	log.Debugf("Creating LRU cache with capacity=%d", capacity)

	return &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]entry[V], prealloc),
		order:    recency.NewWithCapacity[K](prealloc),
	}, nil
}

// Capacity returns the maximum number of entries the cache holds.
func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

// Size returns the number of entries currently in the cache.
func (c *LRU[K, V]) Size() int {
	if checkInvariants {
		c.assertInvariants("size")
	}

	return c.order.Len()
}

// Get returns the value stored for key and marks key as most recently used.
// A miss returns None and changes nothing.
func (c *LRU[K, V]) Get(key K) fn.Option[V] {
	if checkInvariants {
		c.assertInvariants("get")
		defer c.assertInvariants("get")
	}

	ent, ok := c.items[key]
	if !ok {
		return fn.None[V]()
	}

	c.touch(key, ent)
	return fn.Some(ent.value)
}

/*
Put stores value under key and marks key as most recently used.

  - key present: the value is overwritten and the key promoted
  - key absent, cache full: the least recently used key is evicted first
  - key absent: the key is appended as most recently used

Right after Put returns, Get(key) yields value.
*/
func (c *LRU[K, V]) Put(key K, value V) {
	if checkInvariants {
		c.assertInvariants("put")
		defer c.assertStored("put", key)
	}

	if ent, ok := c.items[key]; ok {
		ent.value = value
		c.touch(key, ent)
		return
	}

	if c.order.Len() >= c.capacity {
		c.evictOldest()
	}

	c.items[key] = entry[V]{
		value:  value,
		handle: c.order.Enqueue(key),
	}
}

// Peek returns the value stored for key without changing its recency.
func (c *LRU[K, V]) Peek(key K) fn.Option[V] {
	ent, ok := c.items[key]
	if !ok {
		return fn.None[V]()
	}
	return fn.Some(ent.value)
}

// Keys returns the resident keys from least to most recently used. It does
// not change recency.
func (c *LRU[K, V]) Keys() []K {
	return c.order.Keys()
}

// touch promotes key and stores ent back with its (possibly new) handle.
func (c *LRU[K, V]) touch(key K, ent entry[V]) {
	ent.handle = c.order.Update(ent.handle)
	c.items[key] = ent
}

// evictOldest drops the least recently used entry. An empty order is a
// no-op.
func (c *LRU[K, V]) evictOldest() {
	c.order.Dequeue().WhenSome(func(key K) {
		delete(c.items, key)
		log.Tracef("Evicted key=%v, size=%d, capacity=%d", key,
			c.order.Len(), c.capacity)
	})
}
