package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{typ: t}
	}
}

// Registered reports whether T has been registered.
func Registered[T any](r *ComponentRegistry) bool {
	_, ok := r.factories[reflect.TypeFor[T]()]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

// componentBlock holds a fixed run of slots. Blocks are allocated separately
// so growing the table never moves a component that a caller holds a pointer to.
type componentBlock[T any] struct {
	items  [genericBlockSize]T
	filled [genericBlockSize]bool
}

// genericComponentStorage stores components of type T in a sparse table
// addressed directly by entity slot.
type genericComponentStorage[T any] struct {
	typ    reflect.Type
	blocks []*componentBlock[T]
	count  int
}

func (cs *genericComponentStorage[T]) Type() reflect.Type {
	return cs.typ
}

// Set stores item at index, growing the table as needed. It returns false if
// item is neither a T nor a *T.
func (cs *genericComponentStorage[T]) Set(index int, item any) bool {
	var concreteItem T
	if ptr, ok := item.(*T); ok {
		concreteItem = *ptr
	} else if val, ok := item.(T); ok {
		concreteItem = val
	} else {
		return false
	}

	if index < 0 {
		return false
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	for blockIdx >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, &componentBlock[T]{})
	}

	block := cs.blocks[blockIdx]
	if !block.filled[slotIdx] {
		cs.count++
	}
	block.items[slotIdx] = concreteItem
	block.filled[slotIdx] = true
	return true
}

// Get returns a pointer to the component at the given index, or nil.
func (cs *genericComponentStorage[T]) Get(index int) any {
	block, slotIdx := cs.slot(index)
	if block == nil || !block.filled[slotIdx] {
		return nil
	}
	return &block.items[slotIdx]
}

// Pointer is Get without the interface boxing, for views that write field pointers directly.
func (cs *genericComponentStorage[T]) Pointer(index int) unsafe.Pointer {
	block, slotIdx := cs.slot(index)
	if block == nil || !block.filled[slotIdx] {
		return nil
	}
	return unsafe.Pointer(&block.items[slotIdx])
}

// Delete marks a component slot as empty.
func (cs *genericComponentStorage[T]) Delete(index int) {
	block, slotIdx := cs.slot(index)
	if block == nil || !block.filled[slotIdx] {
		return
	}

	var zero T
	block.items[slotIdx] = zero
	block.filled[slotIdx] = false
	cs.count--
}

// Has checks if a component exists at the given index.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	block, slotIdx := cs.slot(index)
	return block != nil && block.filled[slotIdx]
}

// Len returns the number of filled slots.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}

// Iter yields filled slot indices in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for blockIdx, block := range cs.blocks {
			for slotIdx := range genericBlockSize {
				if !block.filled[slotIdx] {
					continue
				}
				if !yield(blockIdx*genericBlockSize + slotIdx) {
					return
				}
			}
		}
	}
}

func (cs *genericComponentStorage[T]) slot(index int) (*componentBlock[T], int) {
	if index < 0 {
		return nil, 0
	}

	blockIdx := index / genericBlockSize
	if blockIdx >= len(cs.blocks) {
		return nil, 0
	}
	return cs.blocks[blockIdx], index % genericBlockSize
}
