package api

import "github.com/lightningnetwork/lnd/fn/v2"

/*
Cache defines the PUBLIC API of a fixed-capacity LRU cache.
It is implemented by *lru.LRU and by the contract-checking *lru.Checked, so
callers and tests can swap one for the other.

Implementations are NOT required to be safe for concurrent use.
*/
type Cache[K comparable, V any] interface {

	// Size returns how many entries are stored. It never exceeds the
	// capacity the cache was created with, and has no side effects.
	Size() int

	/*
		Get retrieves the value associated with the given key.

		BEHAVIOR:
		---------
		1. If the key is resident:
		   - The key becomes the most recently used one
		   - Some(value) is returned

		2. If the key was never stored, or has been evicted:
		   - None is returned
		   - Nothing changes
	*/
	Get(key K) fn.Option[V]

	/*
		Put stores a key-value pair in the cache.

		BEHAVIOR:
		---------
		- An existing key gets the new value and becomes most recently used
		- A new key is added as most recently used
		- If the cache is full and the key is new, exactly one entry is
		  evicted first: the least recently used one

		Immediately after Put(key, value), Get(key) returns value.
	*/
	Put(key K, value V)
}
