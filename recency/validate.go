package recency

import (
	"errors"
	"fmt"
)

// ErrCorrupt is wrapped by every error returned from Validate.
var ErrCorrupt = errors.New("recency index corrupt")

/*
Validate walks the whole Index and checks that its links agree with each
other:

  - following next from head reaches tail in exactly Len() steps
  - every node's prev points at the node visited before it
  - no key appears twice
  - every slot is either linked or on the free list, never both

It is O(n) and meant for tests and debug builds.
*/
func (x *Index[K]) Validate() error {
	seen := make(map[K]struct{}, x.size)

	count := 0
	prev := nilHandle
	for h := x.head; h != nilHandle; h = x.nodes[h].next {
		if h < 0 || int(h) >= len(x.nodes) {
			return fmt.Errorf("%w: handle %d out of range", ErrCorrupt, h)
		}

		n := x.nodes[h]
		if !n.live {
			return fmt.Errorf("%w: free slot %d is linked", ErrCorrupt, h)
		}
		if n.prev != prev {
			return fmt.Errorf("%w: slot %d has prev=%d, want %d",
				ErrCorrupt, h, n.prev, prev)
		}
		if _, dup := seen[n.key]; dup {
			return fmt.Errorf("%w: duplicate key %v", ErrCorrupt, n.key)
		}
		seen[n.key] = struct{}{}

		count++
		if count > x.size {
			return fmt.Errorf("%w: more than %d linked nodes",
				ErrCorrupt, x.size)
		}
		prev = h
	}

	if count != x.size {
		return fmt.Errorf("%w: walked %d nodes, size is %d",
			ErrCorrupt, count, x.size)
	}
	if prev != x.tail {
		return fmt.Errorf("%w: walk ended at %d, tail is %d",
			ErrCorrupt, prev, x.tail)
	}

	free := 0
	for h := x.free; h != nilHandle; h = x.nodes[h].next {
		if h < 0 || int(h) >= len(x.nodes) {
			return fmt.Errorf("%w: free handle %d out of range",
				ErrCorrupt, h)
		}
		if x.nodes[h].live {
			return fmt.Errorf("%w: live slot %d on free list",
				ErrCorrupt, h)
		}
		free++
		if free > len(x.nodes) {
			return fmt.Errorf("%w: free list cycles", ErrCorrupt)
		}
	}

	if count+free != len(x.nodes) {
		return fmt.Errorf("%w: %d linked + %d free != %d slots",
			ErrCorrupt, count, free, len(x.nodes))
	}

	return nil
}
