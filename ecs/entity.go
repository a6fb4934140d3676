package ecs

// EntityId is a handle into the component tables of a Storage.
// Handles are issued in creation order starting at 1 and are never reused,
// so comparing two handles also compares their creation order. The zero
// value is never a live entity.
type EntityId uint32

// Index returns the slot the entity occupies in every component table.
func (e EntityId) Index() int {
	return int(e) - 1
}

// Valid reports whether the handle could refer to an entity.
func (e EntityId) Valid() bool {
	return e != 0
}

func entityAt(index int) EntityId {
	return EntityId(index + 1)
}
