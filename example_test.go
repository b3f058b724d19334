package lru_test

import (
	"fmt"

	lru "github.com/krisalay/lru-cache"
)

func Example() {
	c, err := lru.New[string, int](2)
	if err != nil {
		panic(err)
	}

	c.Put("a", 1)
	c.Put("b", 2)

	// Reading "a" makes "b" the least recently used entry.
	c.Get("a")
	c.Put("c", 3)

	fmt.Println(c.Keys())
	fmt.Println(c.Get("b").IsNone())
	fmt.Println(c.Get("a").UnwrapOr(-1))

	// Output:
	// [a c]
	// true
	// 1
}

func ExampleNew_invalidCapacity() {
	_, err := lru.New[string, int](0)
	fmt.Println(err)

	// Output:
	// capacity must be positive: got 0
}
