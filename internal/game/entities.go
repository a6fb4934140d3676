package game

import (
	"github.com/plus3/boxpush/ecs"
	"github.com/plus3/boxpush/internal/level"
)

// Populate spawns the entities for every cell of m, row by row.
// playerFrameTime is the animation step of the player sprite in seconds.
func Populate(storage *ecs.Storage, m *level.Map, playerFrameTime float64) {
	for _, cell := range m.Cells {
		position := Position{X: cell.X, Y: cell.Y}

		switch cell.Symbol {
		case level.Player:
			createFloor(storage, position)
			createPlayer(storage, position, playerFrameTime)
		case level.Box:
			createFloor(storage, position)
			createBox(storage, position)
		case level.Wall:
			createWall(storage, position)
		case level.BoxSpot:
			createFloor(storage, position)
			createBoxSpot(storage, position)
		case level.Floor:
			createFloor(storage, position)
		case level.Nothing:
		}
	}
}

func createFloor(storage *ecs.Storage, position Position) ecs.EntityId {
	position.Z = ZFloor
	return storage.Spawn(
		position,
		Renderable{Asset: AssetFloor},
		Floor{},
	)
}

func createWall(storage *ecs.Storage, position Position) ecs.EntityId {
	position.Z = ZObject
	return storage.Spawn(
		position,
		Renderable{Asset: AssetWall},
		Wall{},
		Collidable{},
	)
}

func createBox(storage *ecs.Storage, position Position) ecs.EntityId {
	position.Z = ZObject
	return storage.Spawn(
		position,
		Renderable{Asset: AssetBox},
		Box{},
		Movable{},
		Collidable{},
	)
}

func createBoxSpot(storage *ecs.Storage, position Position) ecs.EntityId {
	position.Z = ZBoxSpot
	return storage.Spawn(
		position,
		Renderable{Asset: AssetBoxSpot},
		BoxSpot{},
	)
}

func createPlayer(storage *ecs.Storage, position Position, frameTime float64) ecs.EntityId {
	position.Z = ZObject
	return storage.Spawn(
		position,
		Renderable{
			Asset:     AssetPlayer1,
			Frames:    []string{AssetPlayer1, AssetPlayer2, AssetPlayer3},
			FrameTime: frameTime,
		},
		Player{},
		Movable{},
		Collidable{},
	)
}

func boxAsset(onSpot bool) string {
	if onSpot {
		return AssetBoxOnSpot
	}
	return AssetBox
}
