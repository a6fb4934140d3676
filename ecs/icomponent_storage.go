package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iComponentStorage is a type-erased component table indexed by entity slot.
type iComponentStorage interface {
	Set(index int, item any) bool
	Delete(index int)
	Get(index int) any
	Pointer(index int) unsafe.Pointer
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
	Type() reflect.Type
}
