package ecs_test

import (
	"fmt"

	"github.com/plus3/boxpush/ecs"
)

type Clock struct {
	Ticks   int
	Elapsed float64
}

// ExampleNewSingleton shows that every handle to a singleton type shares the
// one instance held by the storage.
func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	clock := ecs.NewSingleton[Clock](storage, Clock{Elapsed: 1.5})
	clock.Get().Ticks++

	// The initial value is ignored once the singleton exists.
	again := ecs.NewSingleton[Clock](storage, Clock{Elapsed: 99})
	fmt.Printf("ticks=%d elapsed=%.1f\n", again.Get().Ticks, again.Get().Elapsed)

	// Output:
	// ticks=1 elapsed=1.5
}
