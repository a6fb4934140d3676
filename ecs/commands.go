package ecs

import "reflect"

type commandKind uint8

const (
	cmdSpawn commandKind = iota
	cmdDelete
	cmdAdd
	cmdRemove
	cmdDefer
)

type command struct {
	kind       commandKind
	entity     EntityId
	components []any
	typ        reflect.Type
	fn         func()
}

// Commands buffers structural changes queued by systems during a tick. The
// Scheduler flushes them after the last system has run, so queries never
// observe a half-applied change.
type Commands struct {
	queue []command
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run after every structural change of the flush.
func (c *Commands) Defer(fn func()) {
	c.queue = append(c.queue, command{kind: cmdDefer, fn: fn})
}

// Spawn queues a new entity with components.
func (c *Commands) Spawn(components ...any) {
	c.queue = append(c.queue, command{kind: cmdSpawn, components: components})
}

// Delete queues the removal of entity.
func (c *Commands) Delete(entity EntityId) {
	c.queue = append(c.queue, command{kind: cmdDelete, entity: entity})
}

// AddComponent queues component to be set on entity.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.queue = append(c.queue, command{kind: cmdAdd, entity: entity, components: []any{component}})
}

// RemoveComponent queues the removal of the component of type typ from entity.
func (c *Commands) RemoveComponent(entity EntityId, typ reflect.Type) {
	c.queue = append(c.queue, command{kind: cmdRemove, entity: entity, typ: typ})
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.queue)
}

// Flush applies the queue to storage and empties it. Deletes go first and
// cancel any add or remove queued for the same entity; the remaining changes
// apply in queue order, and deferred functions run last.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]struct{})
	for _, cmd := range c.queue {
		if cmd.kind == cmdDelete {
			storage.Delete(cmd.entity)
			deleted[cmd.entity] = struct{}{}
		}
	}

	for _, cmd := range c.queue {
		if _, gone := deleted[cmd.entity]; gone && (cmd.kind == cmdAdd || cmd.kind == cmdRemove) {
			continue
		}
		switch cmd.kind {
		case cmdSpawn:
			storage.Spawn(cmd.components...)
		case cmdAdd:
			storage.AddComponent(cmd.entity, cmd.components[0])
		case cmdRemove:
			storage.RemoveComponent(cmd.entity, cmd.typ)
		}
	}

	for _, cmd := range c.queue {
		if cmd.kind == cmdDefer {
			cmd.fn()
		}
	}

	clear(c.queue)
	c.queue = c.queue[:0]
}
