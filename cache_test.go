package lru_test

import (
	"testing"

	lru "github.com/krisalay/lru-cache"
	"github.com/krisalay/lru-cache/api"
	"github.com/stretchr/testify/require"
)

//
// ================= HELPERS =================
//

// op is one step applied to a cache in a scenario.
type op struct {
	put   bool
	key   int
	value int
}

func put(k, v int) op { return op{put: true, key: k, value: v} }
func get(k int) op    { return op{key: k} }

// requireState checks that the cache holds exactly want. Reading the keys
// back promotes them, so it is only called once a scenario has finished.
func requireState(t *testing.T, c api.Cache[int, int], want map[int]int) {
	t.Helper()

	require.Equal(t, len(want), c.Size())
	for k, v := range want {
		require.Equal(t, v, c.Get(k).UnwrapOrFail(t), "key %d", k)
	}
}

// caches returns a plain and a contract-checked cache of the same capacity,
// so each scenario runs against both.
func caches(t *testing.T, capacity int) map[string]api.Cache[int, int] {
	t.Helper()

	plain, err := lru.New[int, int](capacity)
	require.NoError(t, err)

	checked, err := lru.NewChecked[int, int](capacity)
	require.NoError(t, err)

	return map[string]api.Cache[int, int]{
		"plain":   plain,
		"checked": checked,
	}
}

//
// ================= CONSTRUCTION =================
//

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -1 << 20} {
		c, err := lru.New[int, int](capacity)
		require.ErrorIs(t, err, lru.ErrInvalidCapacity)
		require.Nil(t, c)

		checked, err := lru.NewChecked[int, int](capacity)
		require.ErrorIs(t, err, lru.ErrInvalidCapacity)
		require.Nil(t, checked)
	}
}

func TestNewStartsEmpty(t *testing.T) {
	for _, capacity := range []int{1, 2, 1 << 30} {
		c, err := lru.New[string, string](capacity)
		require.NoError(t, err)
		require.Zero(t, c.Size())
		require.Equal(t, capacity, c.Capacity())
		require.Empty(t, c.Keys())
	}
}

//
// ================= SCENARIOS =================
//

func TestScenarios(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		ops      []op
		want     map[int]int
	}{
		{
			name:     "one put",
			capacity: 1,
			ops:      []op{put(1, 1)},
			want:     map[int]int{1: 1},
		},
		{
			name:     "latest put stays",
			capacity: 1,
			ops:      []op{put(1, 1), put(2, 2)},
			want:     map[int]int{2: 2},
		},
		{
			name:     "get promotes",
			capacity: 2,
			ops:      []op{put(1, 1), put(2, 2), get(1), put(3, 3)},
			want:     map[int]int{1: 1, 3: 3},
		},
		{
			name:     "gets reorder before eviction",
			capacity: 3,
			ops: []op{
				put(1, 1), put(2, 2), put(3, 3), put(4, 4),
				get(4), get(3), get(2), put(5, 5),
			},
			want: map[int]int{2: 2, 3: 3, 5: 5},
		},
		{
			name:     "series with a miss",
			capacity: 3,
			ops: []op{
				put(1, 1), put(2, 2), put(3, 3), put(4, 4),
				get(4), get(3), get(2), get(1), put(5, 5),
				get(2), get(3), get(5),
			},
			want: map[int]int{2: 2, 3: 3, 5: 5},
		},
		{
			name:     "overwrite promotes",
			capacity: 2,
			ops:      []op{put(1, 1), put(2, 2), put(1, 10), put(3, 3)},
			want:     map[int]int{1: 10, 3: 3},
		},
	}

	for _, tc := range tests {
		for name, c := range caches(t, tc.capacity) {
			t.Run(tc.name+"/"+name, func(t *testing.T) {
				for _, o := range tc.ops {
					if o.put {
						c.Put(o.key, o.value)
					} else {
						c.Get(o.key)
					}
				}

				requireState(t, c, tc.want)
			})
		}
	}
}

func TestSizeDoesNotExceedCapacity(t *testing.T) {
	c, err := lru.New[int, int](2)
	require.NoError(t, err)

	c.Put(1, 1)
	c.Put(2, 2)
	c.Put(3, 3)

	require.Equal(t, 2, c.Size())
	require.Equal(t, 3, c.Get(3).UnwrapOrFail(t))

	// Exactly one of the first two keys survived.
	require.NotEqual(t, c.Get(1).IsSome(), c.Get(2).IsSome())
}

//
// ================= BASIC OPERATIONS =================
//

func TestGetMissHasNoSideEffect(t *testing.T) {
	c, err := lru.New[string, int](2)
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("b", 2)

	require.True(t, c.Get("missing").IsNone())
	require.Equal(t, []string{"a", "b"}, c.Keys())
	require.Equal(t, 2, c.Size())
}

func TestReadAfterWrite(t *testing.T) {
	c, err := lru.New[string, string](3)
	require.NoError(t, err)

	for _, kv := range [][2]string{
		{"a", "1"}, {"b", "2"}, {"a", "3"}, {"c", "4"}, {"d", "5"},
		{"a", "6"},
	} {
		c.Put(kv[0], kv[1])
		require.Equal(t, kv[1], c.Get(kv[0]).UnwrapOrFail(t))
	}
}

func TestKeysFollowRecency(t *testing.T) {
	c, err := lru.New[string, int](3)
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	require.Equal(t, []string{"a", "b", "c"}, c.Keys())

	c.Get("a")
	require.Equal(t, []string{"b", "c", "a"}, c.Keys())

	c.Put("b", 20)
	require.Equal(t, []string{"c", "a", "b"}, c.Keys())

	c.Put("d", 4)
	require.Equal(t, []string{"a", "b", "d"}, c.Keys())
}

func TestPeekDoesNotPromote(t *testing.T) {
	c, err := lru.New[string, int](2)
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("b", 2)

	require.Equal(t, 1, c.Peek("a").UnwrapOrFail(t))
	require.True(t, c.Peek("zzz").IsNone())

	// "a" is still the oldest, so it goes first.
	c.Put("c", 3)
	require.True(t, c.Peek("a").IsNone())
	require.Equal(t, []string{"b", "c"}, c.Keys())
}

func TestEvictedValueIsReleased(t *testing.T) {
	c, err := lru.New[int, []byte](1)
	require.NoError(t, err)

	c.Put(1, []byte("one"))
	c.Put(2, []byte("two"))

	require.True(t, c.Get(1).IsNone())
	require.Equal(t, []byte("two"), c.Get(2).UnwrapOrFail(t))

	// Re-inserting an evicted key behaves like a fresh insert.
	c.Put(1, []byte("uno"))
	require.True(t, c.Get(2).IsNone())
	require.Equal(t, []byte("uno"), c.Get(1).UnwrapOrFail(t))
}
