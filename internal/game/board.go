package game

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/boxpush/ecs"
)

// cellIndex maps occupied cells to the entity occupying them, one map per
// kind of occupant. It also counts boxes and how many of them rest on a spot.
type cellIndex struct {
	width   int
	walls   *intmap.Map[int, ecs.EntityId]
	spots   *intmap.Map[int, ecs.EntityId]
	boxes   *intmap.Map[int, ecs.EntityId]
	players *intmap.Map[int, ecs.EntityId]

	boxCount int
	onSpot   int
}

func newCellIndex(board Board) *cellIndex {
	capacity := board.Width * board.Height
	return &cellIndex{
		width:   board.Width,
		walls:   intmap.New[int, ecs.EntityId](capacity),
		spots:   intmap.New[int, ecs.EntityId](capacity),
		boxes:   intmap.New[int, ecs.EntityId](capacity),
		players: intmap.New[int, ecs.EntityId](capacity),
	}
}

func (ci *cellIndex) key(x, y int) int {
	return y*ci.width + x
}

func (ci *cellIndex) clear() {
	ci.walls.Clear()
	ci.spots.Clear()
	ci.boxes.Clear()
	ci.players.Clear()
	ci.boxCount, ci.onSpot = 0, 0
}

// solved reports whether every indexed box rests on a spot.
func (ci *cellIndex) solved() bool {
	return ci.boxCount > 0 && ci.onSpot == ci.boxCount
}

func (ci *cellIndex) wall(x, y int) bool {
	return has(ci.walls, ci.key(x, y))
}

func (ci *cellIndex) spot(x, y int) bool {
	return has(ci.spots, ci.key(x, y))
}

func (ci *cellIndex) box(x, y int) (ecs.EntityId, bool) {
	return ci.boxes.Get(ci.key(x, y))
}

func (ci *cellIndex) player(x, y int) bool {
	return has(ci.players, ci.key(x, y))
}

// blocksBox reports whether a box may not be pushed onto (x, y).
func (ci *cellIndex) blocksBox(x, y int) bool {
	key := ci.key(x, y)
	return has(ci.walls, key) || has(ci.boxes, key) || has(ci.players, key)
}

func (ci *cellIndex) move(m *intmap.Map[int, ecs.EntityId], id ecs.EntityId, fromX, fromY, toX, toY int) {
	m.Del(ci.key(fromX, fromY))
	m.Put(ci.key(toX, toY), id)
}

func has(m *intmap.Map[int, ecs.EntityId], key int) bool {
	_, ok := m.Get(key)
	return ok
}
