package ecs

import "reflect"

// Singleton is a typed handle to the one instance of T held by a Storage.
// Systems declare Singleton fields and the Scheduler binds them on Register.
type Singleton[T any] struct {
	storage *Storage
	value   *T
}

// NewSingleton returns a handle to the T singleton of storage. When storage
// holds none yet, it is added first from initial, or as the zero value.
func NewSingleton[T any](storage *Storage, initial ...T) *Singleton[T] {
	s := &Singleton[T]{storage: storage}
	if s.lookup() == nil {
		var value T
		if len(initial) > 0 {
			value = initial[0]
		}
		storage.AddSingleton(value)
		s.lookup()
	}
	return s
}

// Init binds the handle to storage. The Scheduler calls it on Register.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.value = nil
	s.lookup()
}

// Get returns the singleton, or nil when storage has none yet.
func (s *Singleton[T]) Get() *T {
	if s.value == nil {
		s.lookup()
	}
	return s.value
}

func (s *Singleton[T]) lookup() *T {
	if s.storage == nil {
		return nil
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.value = entry.value.Interface().(*T)
	}
	return s.value
}
