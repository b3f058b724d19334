package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	lru "github.com/krisalay/lru-cache"
	"github.com/krisalay/lru-cache/api"
	"github.com/lightningnetwork/lnd/fn/v2"
	"golang.org/x/sync/errgroup"
)

// ctxCheckEvery is how many operations a worker runs between checks for
// cancellation.
const ctxCheckEvery = 1024

// referenceCache adapts hashicorp's simplelru to api.Cache so both
// implementations run the exact same workload code.
type referenceCache struct {
	c *simplelru.LRU[string, int]
}

func (r *referenceCache) Size() int { return r.c.Len() }

func (r *referenceCache) Get(key string) fn.Option[int] {
	v, ok := r.c.Get(key)
	if !ok {
		return fn.None[int]()
	}
	return fn.Some(v)
}

func (r *referenceCache) Put(key string, value int) { r.c.Add(key, value) }

// lockedCache guards every call of a cache with one mutex so it can be
// shared between workers.
type lockedCache struct {
	mu    sync.Mutex
	inner api.Cache[string, int]
}

func (l *lockedCache) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Size()
}

func (l *lockedCache) Get(key string) fn.Option[int] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Get(key)
}

func (l *lockedCache) Put(key string, value int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inner.Put(key, value)
}

func newCache(impl string, capacity int) (api.Cache[string, int], error) {
	switch impl {
	case implLRU:
		c, err := lru.New[string, int](capacity)
		if err != nil {
			return nil, err
		}
		return c, nil

	case implReference:
		c, err := simplelru.NewLRU[string, int](capacity, nil)
		if err != nil {
			return nil, err
		}
		return &referenceCache{c: c}, nil

	default:
		return nil, fmt.Errorf("unknown impl %q", impl)
	}
}

// result summarises one benchmark run.
type result struct {
	impl     string
	ops      int64
	hits     int64
	misses   int64
	duration time.Duration
}

func (r result) throughput() float64 {
	if r.duration <= 0 {
		return 0
	}
	return float64(r.ops) / r.duration.Seconds()
}

func (r result) hitRatio() float64 {
	gets := r.hits + r.misses
	if gets == 0 {
		return 0
	}
	return float64(r.hits) / float64(gets)
}

// runWorkload drives impl with cfg.Workers concurrent workers. Without
// cfg.Shared every worker owns its own cache; with it, all workers go
// through one mutex-guarded cache.
func runWorkload(ctx context.Context, cfg *config, impl string) (result,
	error) {

	keys := make([]string, cfg.Keys)
	for i := range keys {
		keys[i] = "key-" + strconv.Itoa(i)
	}

	caches := make([]api.Cache[string, int], cfg.Workers)
	if cfg.Shared {
		inner, err := newCache(impl, cfg.Capacity)
		if err != nil {
			return result{}, err
		}
		shared := &lockedCache{inner: inner}
		for i := range caches {
			caches[i] = shared
		}
	} else {
		for i := range caches {
			c, err := newCache(impl, cfg.Capacity)
			if err != nil {
				return result{}, err
			}
			caches[i] = c
		}
	}

	var hits, misses, ops atomic.Int64

	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		c := caches[w]
		rng := rand.New(rand.NewPCG(cfg.Seed, uint64(w)))

		g.Go(func() error {
			var h, m, n int64
			defer func() {
				hits.Add(h)
				misses.Add(m)
				ops.Add(n)
			}()

			for i := 0; i < cfg.Ops; i++ {
				if i%ctxCheckEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}

				key := keys[rng.IntN(len(keys))]
				n++

				if rng.Float64() >= cfg.ReadRatio {
					c.Put(key, i)
					continue
				}

				if c.Get(key).IsSome() {
					h++
				} else {
					m++
				}
			}

			if size := c.Size(); size > cfg.Capacity {
				return fmt.Errorf("%s cache grew to %d entries, "+
					"capacity is %d", impl, size, cfg.Capacity)
			}
			return nil
		})
	}

	err := g.Wait()

	return result{
		impl:     impl,
		ops:      ops.Load(),
		hits:     hits.Load(),
		misses:   misses.Load(),
		duration: time.Since(start),
	}, err
}
