package lru

import (
	"reflect"

	"github.com/krisalay/lru-cache/api"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// Checked wraps a cache and re-verifies its contract around every call:
//
//   - 0 <= Size() <= capacity before and after Size, Get and Put
//   - Get(key) returns value right after Put(key, value)
//
// A violation panics with an *InvariantError. Checked is meant for tests and
// property-based checking of an api.Cache implementation; it adds a Get to
// every Put.
type Checked[K comparable, V any] struct {
	inner    api.Cache[K, V]
	capacity int
	equal    func(a, b V) bool
}

// A compile time check to ensure both cache types satisfy api.Cache.
var (
	_ api.Cache[string, int] = (*LRU[string, int])(nil)
	_ api.Cache[string, int] = (*Checked[string, int])(nil)
)

// CheckOption configures a Checked cache.
type CheckOption[V any] func(*checkConfig[V])

type checkConfig[V any] struct {
	equal func(a, b V) bool
}

// WithEqual sets how Checked compares a stored value with the one it reads
// back. The default is reflect.DeepEqual, which never considers non-nil
// funcs or NaN equal to themselves; caches holding those need WithEqual.
func WithEqual[V any](equal func(a, b V) bool) CheckOption[V] {
	return func(cfg *checkConfig[V]) {
		cfg.equal = equal
	}
}

// NewChecked creates a new LRU of the given capacity wrapped in a Checked.
func NewChecked[K comparable, V any](capacity int,
	opts ...CheckOption[V]) (*Checked[K, V], error) {

	inner, err := New[K, V](capacity)
	if err != nil {
		return nil, err
	}

	return Wrap[K, V](inner, capacity, opts...)
}

// Wrap checks an existing cache that was created with the given capacity.
func Wrap[K comparable, V any](inner api.Cache[K, V], capacity int,
	opts ...CheckOption[V]) (*Checked[K, V], error) {

	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}

	cfg := checkConfig[V]{
		equal: func(a, b V) bool {
			return reflect.DeepEqual(a, b)
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Checked[K, V]{
		inner:    inner,
		capacity: capacity,
		equal:    cfg.equal,
	}
	c.checkSize("wrap")

	return c, nil
}

// Capacity returns the capacity the wrapped cache is checked against.
func (c *Checked[K, V]) Capacity() int {
	return c.capacity
}

// Size returns the size of the wrapped cache.
func (c *Checked[K, V]) Size() int {
	c.checkSize("size")
	defer c.checkSize("size")

	return c.inner.Size()
}

// Get forwards to the wrapped cache.
func (c *Checked[K, V]) Get(key K) fn.Option[V] {
	c.checkSize("get")
	defer c.checkSize("get")

	return c.inner.Get(key)
}

// Put forwards to the wrapped cache, then reads key back.
func (c *Checked[K, V]) Put(key K, value V) {
	c.checkSize("put")
	defer c.checkSize("put")

	c.inner.Put(key, value)

	got := c.inner.Get(key)
	if got.IsNone() {
		violated("put", "key %v missing right after put", key)
	}
	if !c.equal(got.UnwrapOr(value), value) {
		violated("put", "entry value doesn't match just inserted value "+
			"for key %v", key)
	}
}

func (c *Checked[K, V]) checkSize(op string) {
	if size := c.inner.Size(); size < 0 || size > c.capacity {
		violated(op, "size %d outside [0, %d]", size, c.capacity)
	}
}
