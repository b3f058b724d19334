package lru

// assertInvariants checks the size bound and that items and order describe
// the same set of keys. It is O(n) and only runs in lrudebug builds.
func (c *LRU[K, V]) assertInvariants(op string) {
	size := c.order.Len()
	if size < 0 || size > c.capacity {
		violated(op, "size %d outside [0, %d]", size, c.capacity)
	}

	if len(c.items) != size {
		violated(op, "map holds %d keys, order holds %d", len(c.items),
			size)
	}

	if err := c.order.Validate(); err != nil {
		violated(op, "%v", err)
	}

	for key, ent := range c.items {
		if got := c.order.Key(ent.handle); got != key {
			violated(op, "handle of %v points at %v", key, got)
		}
	}
}

// assertStored checks that key was just written: it is resident and is the
// most recently used key.
func (c *LRU[K, V]) assertStored(op string, key K) {
	c.assertInvariants(op)

	if _, ok := c.items[key]; !ok {
		violated(op, "key %v missing right after put", key)
	}

	back := c.order.Back()
	if back.IsNone() || back.UnwrapOr(key) != key {
		violated(op, "key %v is not most recently used after put", key)
	}
}
