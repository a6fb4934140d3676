package ecs_test

import (
	"reflect"
	"slices"
	"testing"

	"github.com/plus3/boxpush/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1.0, Y: 2.0}, &Velocity{DX: 0.5, DY: 0.5}, Score(32))
	assert.True(t, id.Valid())
	assert.Equal(t, 0, id.Index())
	assert.Equal(t, 1, storage.EntityCount())
}

func TestHandlesFollowCreationOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id1 := storage.Spawn(Position{X: 1})
	id2 := storage.Spawn(Health{Current: 1})
	id3 := storage.Spawn(Position{X: 3}, Name("third"))

	assert.Less(t, id1, id2)
	assert.Less(t, id2, id3)

	storage.Delete(id2)
	id4 := storage.Spawn(Position{X: 4})
	assert.Greater(t, id4, id3, "handles are never reused")
}

func TestGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3.0, Y: 4.0}, Name("Test Entity"))

	posComp := storage.GetComponent(id, reflect.TypeOf(Position{}))
	require.NotNil(t, posComp)
	pos := posComp.(*Position)
	assert.Equal(t, float32(3.0), pos.X)
	assert.Equal(t, float32(4.0), pos.Y)

	name := ecs.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, Name("Test Entity"), *name)

	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Velocity{})))
	assert.Nil(t, ecs.ReadComponent[Health](storage, id))
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1.0, Y: 1.0}, &Health{Current: 100, Max: 100})
	other := storage.Spawn(&Position{X: 2.0, Y: 2.0})

	storage.Delete(id)

	assert.False(t, storage.Alive(id))
	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Position{})))
	assert.Equal(t, 1, storage.EntityCount())

	pos := ecs.ReadComponent[Position](storage, other)
	require.NotNil(t, pos)
	assert.Equal(t, float32(2.0), pos.X)

	// deleting twice is a no-op
	storage.Delete(id)
	assert.Equal(t, 1, storage.EntityCount())
}

func TestHasComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1.0, Y: 1.0}, &Velocity{DX: 0.5, DY: 0.5})

	assert.True(t, storage.HasComponent(id, reflect.TypeOf(Position{})))
	assert.True(t, storage.HasComponent(id, reflect.TypeOf(Velocity{})))
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Name(""))))
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Health{})))
}

func TestComponentMutation(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1.0, Y: 1.0})

	pos := ecs.ReadComponent[Position](storage, id)
	pos.X = 10.0
	pos.Y = 20.0

	pos2 := ecs.ReadComponent[Position](storage, id)
	assert.Equal(t, float32(10.0), pos2.X)
	assert.Equal(t, float32(20.0), pos2.Y)
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	pos := ecs.ReadComponent[Position](storage, first)

	for i := 0; i < 500; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	pos.X = 42
	assert.Equal(t, float32(42), ecs.ReadComponent[Position](storage, first).X)
}

func TestAddAndRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1})
	storage.AddComponent(id, Velocity{DX: 2})

	assert.True(t, storage.HasComponent(id, reflect.TypeOf(Velocity{})))
	assert.Equal(t, float32(2), ecs.ReadComponent[Velocity](storage, id).DX)

	storage.AddComponent(id, Velocity{DX: 3})
	assert.Equal(t, float32(3), ecs.ReadComponent[Velocity](storage, id).DX, "add replaces")

	storage.RemoveComponent(id, reflect.TypeOf(Velocity{}))
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Velocity{})))
	assert.True(t, storage.Alive(id))

	storage.RemoveComponent(id, reflect.TypeOf(Position{}))
	assert.False(t, storage.Alive(id), "entity without components is deleted")
}

func TestComponentTypesSorted(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Velocity{}, Position{}, Health{})

	var names []string
	for _, typ := range storage.ComponentTypes(id) {
		names = append(names, typ.String())
	}
	assert.True(t, slices.IsSorted(names))
	assert.Len(t, names, 3)
}

func TestEntitiesIteration(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{})
	b := storage.Spawn(Position{})
	c := storage.Spawn(Position{})
	storage.Delete(b)

	assert.Equal(t, []ecs.EntityId{a, c}, slices.Collect(storage.Entities()))
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
}

func TestReadSingleton(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var health *Health
	assert.False(t, storage.ReadSingleton(&health))

	storage.AddSingleton(Health{Current: 5, Max: 10})
	require.True(t, storage.ReadSingleton(&health))
	assert.Equal(t, 5, health.Current)

	health.Current = 7
	var again *Health
	require.True(t, storage.ReadSingleton(&again))
	assert.Equal(t, 7, again.Current)
}
