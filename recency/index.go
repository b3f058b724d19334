// Package recency keeps cache keys in least-to-most recently used order.
package recency

import (
	"fmt"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Handle addresses one key inside an Index. It is a slot number in the
// Index's node arena, so holding one never keeps a node alive by itself.
// A handle is only valid until its key leaves the Index through Dequeue.
type Handle int

// nilHandle marks the absence of a neighbour (or an empty free list).
const nilHandle Handle = -1

// node is ONE key inside the doubly-linked order.
type node[K comparable] struct {
	// key is the cache key this node represents
	key K

	// prev points to the node that was used just before this one
	// (closer to the front / least recently used end)
	prev Handle

	// next points to the node that was used just after this one.
	// While the slot sits on the free list, next chains free slots.
	next Handle

	// live is false while the slot is on the free list
	live bool
}

/*
Index is an ordered sequence of keys:

	front (least recently used) ... back (most recently used)

Nodes are stored in a slab (nodes) instead of being allocated one by one.
Freed slots go on a free list and are reused by the next Enqueue, so a
long-running cache stops allocating once it has been full once.

All operations are O(1) except Keys and Validate.
Index is NOT safe for concurrent use.
*/
type Index[K comparable] struct {
	nodes []node[K]

	// head is the least recently used key, tail the most recently used one
	head Handle
	tail Handle

	// free is the first reusable slot in nodes
	free Handle

	size int
}

// New returns an empty Index.
func New[K comparable]() *Index[K] {
	return NewWithCapacity[K](0)
}

// NewWithCapacity returns an empty Index whose arena is pre-sized for n keys.
func NewWithCapacity[K comparable](n int) *Index[K] {
	if n < 0 {
		n = 0
	}
	return &Index[K]{
		nodes: make([]node[K], 0, n),
		head:  nilHandle,
		tail:  nilHandle,
		free:  nilHandle,
	}
}

// Len returns the number of keys in the Index.
func (x *Index[K]) Len() int {
	return x.size
}

// Enqueue appends key at the back (most recently used end) and returns its
// handle. It always succeeds.
func (x *Index[K]) Enqueue(key K) Handle {
	h := x.alloc()

	n := &x.nodes[h]
	n.key = key
	n.live = true

	x.linkBack(h)
	x.size++
	return h
}

// Dequeue removes the front (least recently used) key and returns it.
// It returns None when the Index is empty.
func (x *Index[K]) Dequeue() fn.Option[K] {
	if x.head == nilHandle {
		return fn.None[K]()
	}

	h := x.head
	key := x.nodes[h].key

	x.unlink(h)
	x.release(h)
	x.size--

	return fn.Some(key)
}

/*
Update marks the key at h as most recently used and returns the handle of
its new position. Three cases:

 1. h is already the back: nothing moves.
 2. h is the front: the front is unlinked and re-appended.
 3. h is in the interior: both neighbours are relinked to each other, then
    the node is re-appended.

The node keeps its slot, so the returned handle is always h. Callers should
still store the returned value.
*/
func (x *Index[K]) Update(h Handle) Handle {
	x.mustBeLive(h)

	if h == x.tail {
		return h
	}

	x.unlink(h)
	x.linkBack(h)
	return h
}

// Key returns the key stored at h.
func (x *Index[K]) Key(h Handle) K {
	x.mustBeLive(h)
	return x.nodes[h].key
}

// Front returns the least recently used key without removing it.
func (x *Index[K]) Front() fn.Option[K] {
	if x.head == nilHandle {
		return fn.None[K]()
	}
	return fn.Some(x.nodes[x.head].key)
}

// Back returns the most recently used key.
func (x *Index[K]) Back() fn.Option[K] {
	if x.tail == nilHandle {
		return fn.None[K]()
	}
	return fn.Some(x.nodes[x.tail].key)
}

// Keys returns every key from front (least recent) to back (most recent).
func (x *Index[K]) Keys() []K {
	out := make([]K, 0, x.size)
	for h := x.head; h != nilHandle; h = x.nodes[h].next {
		out = append(out, x.nodes[h].key)
	}
	return out
}

// alloc takes a slot from the free list, or grows the arena by one.
func (x *Index[K]) alloc() Handle {
	if x.free != nilHandle {
		h := x.free
		x.free = x.nodes[h].next
		return h
	}

	x.nodes = append(x.nodes, node[K]{})
	return Handle(len(x.nodes) - 1)
}

// release clears the slot and pushes it on the free list. The key is zeroed
// so the arena does not keep evicted keys reachable.
func (x *Index[K]) release(h Handle) {
	x.nodes[h] = node[K]{
		prev: nilHandle,
		next: x.free,
	}
	x.free = h
}

// linkBack attaches an unlinked node after the current tail.
func (x *Index[K]) linkBack(h Handle) {
	n := &x.nodes[h]
	n.prev = x.tail
	n.next = nilHandle

	// If the list was empty, head and tail are the same
	if x.tail == nilHandle {
		x.head = h
	} else {
		x.nodes[x.tail].next = h
	}
	x.tail = h
}

// unlink detaches h from its neighbours and fixes head and tail if needed.
// The node itself is left with stale links; linkBack or release resets them.
func (x *Index[K]) unlink(h Handle) {
	n := x.nodes[h]

	if n.prev != nilHandle {
		x.nodes[n.prev].next = n.next
	} else {
		x.head = n.next
	}

	if n.next != nilHandle {
		x.nodes[n.next].prev = n.prev
	} else {
		x.tail = n.prev
	}
}

func (x *Index[K]) mustBeLive(h Handle) {
	if h < 0 || int(h) >= len(x.nodes) || !x.nodes[h].live {
		panic(fmt.Sprintf("recency: stale or unknown handle %d", h))
	}
}
