package ecs

import (
	"iter"
	"reflect"
	"sort"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

type singletonEntry struct {
	value reflect.Value // *T
}

// Storage holds every live entity as a slot shared by a set of parallel
// component tables, one table per registered component type.
type Storage struct {
	registry   *ComponentRegistry
	tables     map[reflect.Type]iComponentStorage
	alive      []bool
	live       int
	singletons map[reflect.Type]*singletonEntry
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		tables:     make(map[reflect.Type]iComponentStorage),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry this storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	index := len(s.alive)
	s.alive = append(s.alive, true)
	s.live++

	for _, comp := range components {
		s.setComponent(index, comp)
	}
	return entityAt(index)
}

// Delete removes all data related to the entity ID
func (s *Storage) Delete(id EntityId) {
	if !s.Alive(id) {
		return
	}

	index := id.Index()
	for _, table := range s.tables {
		table.Delete(index)
	}
	s.alive[index] = false
	s.live--
}

// Alive reports whether id refers to an entity that has not been deleted.
func (s *Storage) Alive(id EntityId) bool {
	index := id.Index()
	return index >= 0 && index < len(s.alive) && s.alive[index]
}

// AddComponent attaches component to the entity, replacing any existing
// component of the same type. The entity handle does not change.
func (s *Storage) AddComponent(id EntityId, component any) {
	if !s.Alive(id) {
		return
	}
	s.setComponent(id.Index(), component)
}

// RemoveComponent detaches the component of compType from the entity. An
// entity left without components is deleted.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) {
	if !s.Alive(id) {
		return
	}

	table, ok := s.tables[compType]
	if !ok {
		return
	}
	table.Delete(id.Index())

	if len(s.ComponentTypes(id)) == 0 {
		s.Delete(id)
	}
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	if !s.Alive(id) {
		return nil
	}

	table, ok := s.tables[compType]
	if !ok {
		return nil
	}
	return table.Get(id.Index())
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	if !s.Alive(id) {
		return false
	}

	table, ok := s.tables[compType]
	return ok && table.Has(id.Index())
}

// ComponentTypes returns the component types attached to id, sorted by name.
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	if !s.Alive(id) {
		return nil
	}

	var types []reflect.Type
	for typ, table := range s.tables {
		if table.Has(id.Index()) {
			types = append(types, typ)
		}
	}
	sort.Sort(byTypeName(types))
	return types
}

// Entities yields every live entity in creation order.
func (s *Storage) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for index, alive := range s.alive {
			if !alive {
				continue
			}
			if !yield(entityAt(index)) {
				return
			}
		}
	}
}

// EntityCount returns the number of live entities.
func (s *Storage) EntityCount() int {
	return s.live
}

// AddSingleton stores value as the single instance of its type, replacing
// any previous instance.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	if typ == nil {
		panic("cannot add nil singleton")
	}

	if entry, ok := s.singletons[typ]; ok {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[typ] = &singletonEntry{value: ptr}
}

// ReadSingleton points *target at the stored singleton. target must be a **T.
// Returns false if no singleton of type T exists.
func (s *Storage) ReadSingleton(target any) bool {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr || targetValue.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	entry := s.getSingletonEntry(targetValue.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	targetValue.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

func (s *Storage) table(typ reflect.Type) iComponentStorage {
	return s.tables[typ]
}

func (s *Storage) setComponent(index int, component any) {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("components cannot be nil")
	}
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Components can be structs or primitives (int, string, etc.)
	// But not pointers, maps, channels, or functions (those aren't value types)
	switch compType.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}

	table, ok := s.tables[compType]
	if !ok {
		factory := s.registry.getFactory(compType)
		if factory == nil {
			panic("component type " + compType.String() + " not registered")
		}
		table = factory()
		s.tables[compType] = table
	}
	table.Set(index, component)
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the T attached to entityId, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
