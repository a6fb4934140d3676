package ecs_test

import (
	"fmt"

	"github.com/plus3/boxpush/ecs"
)

type Cell struct{ X, Y int }

type Heading struct{ DX, DY int }

type StepCount int

// StepSystem moves every heading entity one cell per tick.
type StepSystem struct {
	Walkers ecs.Query[struct {
		*Cell
		*Heading
	}]
	Steps ecs.Singleton[StepCount]
}

func (s *StepSystem) Execute(*ecs.UpdateFrame) {
	for w := range s.Walkers.Values() {
		w.Cell.X += w.Heading.DX
		w.Cell.Y += w.Heading.DY
		*s.Steps.Get() += 1
	}
}

// ExampleScheduler runs a fixed-step loop: Advance banks wall time and runs
// one tick per whole step, capped at maxSteps.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Cell](registry)
	ecs.RegisterComponent[Heading](registry)
	storage := ecs.NewStorage(registry)
	ecs.NewSingleton[StepCount](storage)

	walker := storage.Spawn(Cell{}, Heading{DX: 1})
	storage.Spawn(Cell{X: 5})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&StepSystem{})

	ticks := scheduler.Advance(0.5, 0.125, 3)

	var steps *StepCount
	storage.ReadSingleton(&steps)
	cell := ecs.ReadComponent[Cell](storage, walker)
	fmt.Printf("ticks=%d steps=%d walker=(%d,%d)\n", ticks, *steps, cell.X, cell.Y)

	// Output:
	// ticks=3 steps=3 walker=(3,0)
}
