package game

import "github.com/plus3/boxpush/ecs"

// Paint order. Lower values are drawn first.
const (
	ZFloor   = 0
	ZBoxSpot = 1
	ZObject  = 2
)

// Image asset names. Hosts must be able to draw every one of them.
const (
	AssetFloor     = "floor"
	AssetWall      = "wall"
	AssetBox       = "box"
	AssetBoxOnSpot = "box_on_spot"
	AssetBoxSpot   = "box_spot"
	AssetPlayer1   = "player_1"
	AssetPlayer2   = "player_2"
	AssetPlayer3   = "player_3"
)

// Assets lists every image asset an entity template can reference.
func Assets() []string {
	return []string{
		AssetFloor,
		AssetWall,
		AssetBox,
		AssetBoxOnSpot,
		AssetBoxSpot,
		AssetPlayer1,
		AssetPlayer2,
		AssetPlayer3,
	}
}

// Position is a grid cell plus paint depth.
type Position struct {
	X, Y int
	Z    int
}

// Renderable names the sprite for an entity. When Frames is set the sprite
// cycles through it every FrameTime seconds of elapsed game time. Elapsed
// time stops once the puzzle is solved, so animations hold their last frame
// on the solved board.
type Renderable struct {
	Asset     string
	Frames    []string
	FrameTime float64
}

// Current returns the asset to draw at elapsed seconds.
func (r *Renderable) Current(elapsed float64) string {
	if len(r.Frames) == 0 || r.FrameTime <= 0 {
		return r.Asset
	}
	frame := int(elapsed/r.FrameTime) % len(r.Frames)
	return r.Frames[frame]
}

type Player struct{}

// Box is a pushable crate. OnSpot is true while it rests on a BoxSpot.
type Box struct {
	OnSpot bool
}

type Wall struct{}

type BoxSpot struct{}

type Floor struct{}

type Movable struct{}

type Collidable struct{}

// RegisterComponents registers every game component type.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Renderable](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Box](registry)
	ecs.RegisterComponent[Wall](registry)
	ecs.RegisterComponent[BoxSpot](registry)
	ecs.RegisterComponent[Floor](registry)
	ecs.RegisterComponent[Movable](registry)
	ecs.RegisterComponent[Collidable](registry)
}
