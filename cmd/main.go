package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog"
	lru "github.com/krisalay/lru-cache"
	"github.com/krisalay/lru-cache/api"
)

// step is one cache call in a demo scenario.
type step struct {
	put   bool
	key   int
	value int
}

type scenario struct {
	title    string
	capacity int
	steps    []step
}

func put(k, v int) step { return step{put: true, key: k, value: v} }
func get(k int) step    { return step{key: k} }

var scenarios = []scenario{
	{
		title:    "1) SINGLE PUT",
		capacity: 1,
		steps:    []step{put(1, 1)},
	},
	{
		title:    "2) LATEST PUT STAYS",
		capacity: 1,
		steps:    []step{put(1, 1), put(2, 2)},
	},
	{
		title:    "3) GET PROMOTES",
		capacity: 2,
		steps:    []step{put(1, 1), put(2, 2), get(1), put(3, 3)},
	},
	{
		title:    "4) SIZE STAYS AT CAPACITY",
		capacity: 2,
		steps:    []step{put(1, 1), put(2, 2), put(3, 3)},
	},
	{
		title:    "5) GETS REORDER BEFORE EVICTION",
		capacity: 3,
		steps: []step{
			put(1, 1), put(2, 2), put(3, 3), put(4, 4),
			get(4), get(3), get(2), put(5, 5),
		},
	},
}

// ================= MAIN =================

func main() {
	fmt.Println("\n==================== SYSTEM BOOT ====================")

	// ---------------- Logging ----------------
	backend := btclog.NewBackend(os.Stdout)
	logger := backend.Logger(lru.Subsystem)
	logger.SetLevel(btclog.LevelTrace)
	lru.UseLogger(logger)

	// ---------------- Construction check ----------------
	if _, err := lru.New[int, int](0); err != nil {
		fmt.Println("CACHE  → new(capacity=0) rejected:", err)
	}

	for _, sc := range scenarios {
		fmt.Printf("\n==================== %s ====================\n",
			sc.title)

		plain, err := lru.New[int, int](sc.capacity)
		if err != nil {
			fmt.Fprintln(os.Stderr, "new cache:", err)
			os.Exit(1)
		}
		c, err := lru.Wrap[int, int](plain, sc.capacity)
		if err != nil {
			fmt.Fprintln(os.Stderr, "wrap cache:", err)
			os.Exit(1)
		}

		run(c, sc.steps)

		fmt.Printf("STATE  → size=%d keys(LRU→MRU)=%v\n", c.Size(),
			plain.Keys())
	}
}

func run(c api.Cache[int, int], steps []step) {
	for _, s := range steps {
		if s.put {
			c.Put(s.key, s.value)
			fmt.Printf("CACHE  → PUT %d = %d\n", s.key, s.value)
			continue
		}

		v := c.Get(s.key)
		if v.IsNone() {
			fmt.Printf("CACHE  → GET %d = <miss>\n", s.key)
			continue
		}
		fmt.Printf("CACHE  → GET %d = %d\n", s.key, v.UnwrapOr(0))
	}
}
