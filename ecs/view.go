package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View represents a query for entities with a specific combination of components
// The type T should be a struct with embedded pointer fields for each component type
// Named fields can be marked as optional using the `ecs:"optional"` struct tag
// A field of type EntityId (embedded or named) receives the entity's handle
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr

	hasId    bool
	idOffset uintptr
}

// NewView creates a new view for the given struct type
// Embedded fields are always required
// Named fields can be marked as optional using the `ecs:"optional"` struct tag
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{
		storage:     storage,
		types:       make([]reflect.Type, 0, structType.NumField()),
		optional:    make([]bool, 0, structType.NumField()),
		fieldOffset: make([]uintptr, 0, structType.NumField()),
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityIdType {
			v.hasId = true
			v.idOffset = field.Offset
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		// Embedded fields (field.Anonymous) are always required
		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}

		v.types = append(v.types, fieldType.Elem())
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		v.optional = append(v.optional, isOptional)
	}

	return v
}

// Fill populates the provided struct pointer with component data for the given entity
// Returns false if the entity is missing any required components
// Optional components are set to nil if not present
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	if !v.storage.Alive(id) {
		return false
	}
	return v.populateResult(unsafe.Pointer(ptr), id.Index(), v.resolveTables())
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// resolveTables looks up the table for every field. Tables are created lazily
// on first spawn, so this runs per iteration rather than once.
func (v *View[T]) resolveTables() []iComponentStorage {
	tables := make([]iComponentStorage, len(v.types))
	for i, typ := range v.types {
		tables[i] = v.storage.table(typ)
	}
	return tables
}

// driver picks the smallest required table to iterate. It returns nil and
// false when a required table does not exist yet, in which case nothing matches.
// A nil driver with true means every field is optional and all entities are scanned.
func (v *View[T]) driver(tables []iComponentStorage) (iComponentStorage, bool) {
	var smallest iComponentStorage
	for i, table := range tables {
		if v.optional[i] {
			continue
		}
		if table == nil {
			return nil, false
		}
		if smallest == nil || table.Len() < smallest.Len() {
			smallest = table
		}
	}
	return smallest, true
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, entityIndex int, tables []iComponentStorage) bool {
	for i, table := range tables {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])

		var componentPtr unsafe.Pointer
		if table != nil {
			componentPtr = table.Pointer(entityIndex)
		}
		if componentPtr == nil && !v.optional[i] {
			return false
		}
		*(*unsafe.Pointer)(fieldPtr) = componentPtr
	}

	if v.hasId {
		*(*EntityId)(unsafe.Pointer(uintptr(resultPtr) + v.idOffset)) = entityAt(entityIndex)
	}
	return true
}

// Iter returns an iterator over all entities that have all the required components
// for this view, in entity creation order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		tables := v.resolveTables()
		driver, ok := v.driver(tables)
		if !ok {
			return
		}

		var result T
		resultPtr := unsafe.Pointer(&result)

		visit := func(entityIndex int) bool {
			if !v.populateResult(resultPtr, entityIndex, tables) {
				return true
			}
			return yield(entityAt(entityIndex), result)
		}

		if driver == nil {
			for id := range v.storage.Entities() {
				if !visit(id.Index()) {
					return
				}
			}
			return
		}

		for entityIndex := range driver.Iter() {
			if !v.storage.alive[entityIndex] {
				continue
			}
			if !visit(entityIndex) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}
