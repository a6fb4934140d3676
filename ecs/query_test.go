package ecs_test

import (
	"testing"

	"github.com/plus3/boxpush/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuerySnapshot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Health{Current: 1})

	query := ecs.NewQuery[struct{ *Health }](storage)

	assert.Panics(t, func() { query.Iter() })

	query.Execute()
	assert.Equal(t, 1, query.Len())

	storage.Spawn(Health{Current: 2})
	assert.Equal(t, 1, query.Len(), "snapshot does not change until re-executed")

	query.Execute()
	total := 0
	for item := range query.Values() {
		total += item.Health.Current
	}
	assert.Equal(t, 3, total)
}
