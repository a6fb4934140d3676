package ecs_test

import (
	"testing"

	"github.com/plus3/boxpush/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type HealthSystem struct {
	Entities     ecs.Query[struct{ *Health }]
	ExecuteCount int
	TotalHealth  int
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	s.TotalHealth = 0
	for item := range s.Entities.Values() {
		s.TotalHealth += item.Health.Current
	}
}

type recordingSystem struct {
	name  string
	trace *[]string
}

func (s *recordingSystem) Execute(frame *ecs.UpdateFrame) {
	*s.trace = append(*s.trace, s.name)
}

type counterSystem struct {
	Counter ecs.Singleton[Score]
}

func (s *counterSystem) Execute(frame *ecs.UpdateFrame) {
	*s.Counter.Get()++
}

type spawnOnceSystem struct {
	done bool
}

func (s *spawnOnceSystem) Execute(frame *ecs.UpdateFrame) {
	if s.done {
		return
	}
	s.done = true
	frame.Commands.Spawn(Health{Current: 10})
}

func TestScheduler(t *testing.T) {
	registry := newTestRegistry()

	t.Run("system execution order", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		var trace []string
		scheduler.Register(&recordingSystem{name: "input", trace: &trace})
		scheduler.Register(&recordingSystem{name: "objective", trace: &trace})
		scheduler.Register(&recordingSystem{name: "events", trace: &trace})

		scheduler.Once(1.0)
		scheduler.Once(1.0)

		assert.Equal(t, []string{"input", "objective", "events", "input", "objective", "events"}, trace)
		assert.Equal(t, uint64(2), scheduler.Ticks())
	})

	t.Run("queries see earlier systems", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		health := &HealthSystem{}
		scheduler.Register(movement)
		scheduler.Register(health)

		id := storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 10, DY: 20})
		storage.Spawn(Health{Current: 100, Max: 100})

		scheduler.Once(0.5)

		pos := ecs.ReadComponent[Position](storage, id)
		assert.Equal(t, float32(5), pos.X)
		assert.Equal(t, float32(10), pos.Y)
		assert.Equal(t, 100, health.TotalHealth)
		assert.Equal(t, 1, movement.ExecuteCount)
	})

	t.Run("singleton fields are bound", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		ecs.NewSingleton[Score](storage, 3)
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&counterSystem{})

		scheduler.Once(0)
		scheduler.Once(0)

		var score *Score
		require.True(t, storage.ReadSingleton(&score))
		assert.Equal(t, Score(5), *score)
	})

	t.Run("commands flush after the tick", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		spawner := &spawnOnceSystem{}
		health := &HealthSystem{}
		scheduler.Register(spawner)
		scheduler.Register(health)

		scheduler.Once(0)
		assert.Equal(t, 0, health.TotalHealth, "spawn is deferred")
		assert.Equal(t, 1, storage.EntityCount())

		scheduler.Once(0)
		assert.Equal(t, 10, health.TotalHealth)
	})
}

func TestSchedulerAdvance(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	health := &HealthSystem{}
	scheduler.Register(health)

	tests := []struct {
		name    string
		elapsed float64
		want    int
	}{
		{"less than a step runs nothing", 0.125, 0},
		{"carry completes a step", 0.125, 1},
		{"several steps at once", 0.75, 3},
		{"zero elapsed", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scheduler.Advance(tt.elapsed, 0.25, 10))
		})
	}

	assert.Equal(t, 4, health.ExecuteCount)

	t.Run("catch-up cap drops backlog", func(t *testing.T) {
		assert.Equal(t, 10, scheduler.Advance(100, 0.25, 10))
		assert.Equal(t, 0, scheduler.Advance(0.125, 0.25, 10))
	})
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	scheduler.Register(&HealthSystem{})
	scheduler.Register(&MovementSystem{})

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)
	assert.Equal(t, "HealthSystem", stats.Systems[0].Name)
	assert.Zero(t, stats.Systems[0].MinDuration)

	for range 3 {
		scheduler.Once(0)
	}

	stats = scheduler.GetStats()
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, uint64(3), stats.Ticks)
	for _, system := range stats.Systems {
		assert.Equal(t, int64(3), system.ExecutionCount)
		assert.LessOrEqual(t, system.MinDuration, system.MaxDuration)
	}
}
