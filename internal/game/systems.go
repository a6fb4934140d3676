package game

import (
	"github.com/charmbracelet/log"
	"github.com/plus3/boxpush/ecs"
)

// TimeSystem advances simulated time. It runs first so every later system in
// the tick sees the same clock.
type TimeSystem struct {
	Context ecs.Singleton[Context]
}

func (s *TimeSystem) Execute(frame *ecs.UpdateFrame) {
	ctx := s.Context.Get()
	ctx.Time.Ticks++
	if ctx.GamePlay.State != Solved {
		ctx.Time.Elapsed += frame.DeltaTime
	}
}

// InputSystem drains the key queue and moves players, pushing at most one box
// per key.
type InputSystem struct {
	Context ecs.Singleton[Context]
	Players ecs.Query[struct {
		ecs.EntityId
		*Position
		*Player
	}]
	Boxes ecs.Query[struct {
		ecs.EntityId
		*Position
		*Box
	}]
	Walls ecs.Query[struct {
		ecs.EntityId
		*Position
		*Wall
	}]
	Spots ecs.Query[struct {
		ecs.EntityId
		*Position
		*BoxSpot
	}]

	index *cellIndex
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	ctx := s.Context.Get()
	keys := ctx.Keys
	ctx.Keys = ctx.Keys[:0]

	if len(keys) == 0 || ctx.GamePlay.State == Solved {
		return
	}

	s.rebuildIndex(ctx.Board)

	for _, key := range keys {
		dx, dy, ok := key.Direction()
		if !ok {
			continue
		}
		for player := range s.Players.Values() {
			s.move(frame.Storage, ctx, player.EntityId, player.Position, dx, dy)
			// Keys left in the queue are dropped once the boxes are all placed.
			if s.index.solved() {
				return
			}
		}
	}
}

func (s *InputSystem) rebuildIndex(board Board) {
	if s.index == nil || s.index.width != board.Width {
		s.index = newCellIndex(board)
	} else {
		s.index.clear()
	}

	for wall := range s.Walls.Values() {
		s.index.walls.Put(s.index.key(wall.Position.X, wall.Position.Y), wall.EntityId)
	}
	for spot := range s.Spots.Values() {
		s.index.spots.Put(s.index.key(spot.Position.X, spot.Position.Y), spot.EntityId)
	}
	for box := range s.Boxes.Values() {
		s.index.boxes.Put(s.index.key(box.Position.X, box.Position.Y), box.EntityId)
		s.index.boxCount++
		if box.Box.OnSpot {
			s.index.onSpot++
		}
	}
	for player := range s.Players.Values() {
		s.index.players.Put(s.index.key(player.Position.X, player.Position.Y), player.EntityId)
	}
}

// move steps one player by (dx, dy). Rejected moves leave everything as it was.
func (s *InputSystem) move(storage *ecs.Storage, ctx *Context, playerId ecs.EntityId, position *Position, dx, dy int) {
	targetX, targetY := position.X+dx, position.Y+dy
	if !ctx.Board.Contains(targetX, targetY) || s.index.wall(targetX, targetY) || s.index.player(targetX, targetY) {
		return
	}

	if boxId, ok := s.index.box(targetX, targetY); ok {
		beyondX, beyondY := targetX+dx, targetY+dy
		if !ctx.Board.Contains(beyondX, beyondY) || s.index.blocksBox(beyondX, beyondY) {
			return
		}
		s.push(storage, ctx, boxId, beyondX, beyondY)
	}

	s.index.move(s.index.players, playerId, position.X, position.Y, targetX, targetY)
	position.X, position.Y = targetX, targetY
	ctx.GamePlay.Moves++
}

func (s *InputSystem) push(storage *ecs.Storage, ctx *Context, boxId ecs.EntityId, x, y int) {
	position := ecs.ReadComponent[Position](storage, boxId)
	box := ecs.ReadComponent[Box](storage, boxId)

	s.index.move(s.index.boxes, boxId, position.X, position.Y, x, y)
	position.X, position.Y = x, y

	onSpot := s.index.spot(x, y)
	if onSpot == box.OnSpot {
		return
	}
	box.OnSpot = onSpot
	if onSpot {
		s.index.onSpot++
	} else {
		s.index.onSpot--
	}

	if renderable := ecs.ReadComponent[Renderable](storage, boxId); renderable != nil {
		renderable.Asset = boxAsset(onSpot)
	}

	kind := BoxLeftSpot
	if onSpot {
		kind = BoxPlacedOnSpot
	}
	ctx.emit(Event{Kind: kind, Entity: boxId, Position: *position})
}

// ObjectiveSystem marks the puzzle solved once every box rests on a spot.
// A board without boxes is never solved.
type ObjectiveSystem struct {
	Context ecs.Singleton[Context]
	Boxes   ecs.Query[struct{ *Box }]
}

func (s *ObjectiveSystem) Execute(frame *ecs.UpdateFrame) {
	ctx := s.Context.Get()
	if ctx.GamePlay.State == Solved || s.Boxes.Len() == 0 {
		return
	}

	for box := range s.Boxes.Values() {
		if !box.Box.OnSpot {
			return
		}
	}

	ctx.GamePlay.State = Solved
	ctx.GamePlay.SolvedAt = ctx.Time.Elapsed
	ctx.emit(Event{Kind: PuzzleSolved})
}

// EventSystem drains the gameplay event queue into sounds. Playback errors
// are logged and the event is dropped.
type EventSystem struct {
	Context ecs.Singleton[Context]
	Audio   AudioPlayer
	Logger  *log.Logger
}

func (s *EventSystem) Execute(frame *ecs.UpdateFrame) {
	ctx := s.Context.Get()
	events := ctx.Events
	ctx.Events = ctx.Events[:0]

	for _, event := range events {
		if event.Kind == PuzzleSolved {
			s.Logger.Info("puzzle solved", "moves", ctx.GamePlay.Moves, "elapsed", ctx.GamePlay.SolvedAt, "tick", frame.Tick)
		} else {
			s.Logger.Debug("gameplay event", "event", event.Kind, "entity", event.Entity, "x", event.Position.X, "y", event.Position.Y)
		}

		sound := event.Kind.Sound()
		if err := s.Audio.Play(sound); err != nil {
			s.Logger.Warn("sound playback failed", "sound", sound, "err", err)
		}
	}
}
