package ecs_test

import "github.com/plus3/boxpush/ecs"

// Fixture components for the store tests.
type (
	Position struct{ X, Y float32 }
	Velocity struct{ DX, DY float32 }
	Health   struct{ Current, Max int }
	Name     string
	Score    int
	Frozen   struct{}
)

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Frozen](registry)
	return registry
}
