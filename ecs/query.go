package ecs

import "iter"

type queryRow[T any] struct {
	id   EntityId
	item T
}

// Query is a View whose matches are snapshotted once per tick. The Scheduler
// executes every Query field of a system right before that system runs, so
// the system sees changes made by the systems before it.
type Query[T any] struct {
	view     *View[T]
	rows     []queryRow[T]
	executed bool
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the Query to storage and drops any snapshot.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.rows = q.rows[:0]
	q.executed = false
}

// Execute takes a fresh snapshot.
func (q *Query[T]) Execute() {
	clear(q.rows)
	q.rows = q.rows[:0]
	for id, item := range q.view.Iter() {
		q.rows = append(q.rows, queryRow[T]{id: id, item: item})
	}
	q.executed = true
}

// Len returns the number of entities in the snapshot.
func (q *Query[T]) Len() int {
	return len(q.rows)
}

// Iter yields the snapshot in entity creation order. It panics before the
// first Execute.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustExecute()
	return func(yield func(EntityId, T) bool) {
		for _, row := range q.rows {
			if !yield(row.id, row.item) {
				return
			}
		}
	}
}

// Values is Iter without the entity ids.
func (q *Query[T]) Values() iter.Seq[T] {
	q.mustExecute()
	return func(yield func(T) bool) {
		for _, row := range q.rows {
			if !yield(row.item) {
				return
			}
		}
	}
}

func (q *Query[T]) mustExecute() {
	if !q.executed {
		panic("ecs: query read before Execute")
	}
}
