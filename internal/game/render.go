package game

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/plus3/boxpush/ecs"
)

// HUDHeight is the pixel strip below the board reserved for HUD text.
const HUDHeight = 40

// Screen is the render target singleton. Game.Draw sets Canvas before each
// render pass.
type Screen struct {
	Canvas Canvas
}

// DrawOp is one sprite draw issued by the renderer.
type DrawOp struct {
	Entity ecs.EntityId
	Asset  string
	Z      int
	X, Y   float64
	ScaleX float64
	ScaleY float64
}

// RenderSystem draws every Position+Renderable entity back to front, then the
// HUD. It never writes to Context.
type RenderSystem struct {
	Renderables ecs.Query[struct {
		ecs.EntityId
		*Position
		*Renderable
	}]
	Context ecs.Singleton[Context]
	Screen  ecs.Singleton[Screen]

	Images     ImageStore
	TileWidth  int
	TileHeight int

	ops []DrawOp
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	ctx := s.Context.Get()
	canvas := s.Screen.Get().Canvas
	if canvas == nil {
		return
	}

	s.ops = s.ops[:0]
	for entity := range s.Renderables.Values() {
		s.ops = append(s.ops, s.drawOp(entity.EntityId, entity.Position, entity.Renderable, ctx.Time.Elapsed))
	}

	slices.SortStableFunc(s.ops, func(a, b DrawOp) int {
		if c := cmp.Compare(a.Z, b.Z); c != 0 {
			return c
		}
		return cmp.Compare(a.Entity, b.Entity)
	})

	for _, op := range s.ops {
		canvas.DrawSprite(op.Asset, op.X, op.Y, op.ScaleX, op.ScaleY)
	}

	s.drawHUD(canvas, ctx)
}

func (s *RenderSystem) drawOp(id ecs.EntityId, position *Position, renderable *Renderable, elapsed float64) DrawOp {
	asset := renderable.Current(elapsed)
	op := DrawOp{
		Entity: id,
		Asset:  asset,
		Z:      position.Z,
		X:      float64(position.X * s.TileWidth),
		Y:      float64(position.Y * s.TileHeight),
		ScaleX: 1,
		ScaleY: 1,
	}

	width, height := s.Images.Size(asset)
	if width > 0 && height > 0 && (width != s.TileWidth || height != s.TileHeight) {
		op.ScaleX = float64(s.TileWidth) / float64(width)
		op.ScaleY = float64(s.TileHeight) / float64(height)
	}
	return op
}

func (s *RenderSystem) drawHUD(canvas Canvas, ctx *Context) {
	top := float64(ctx.Board.Height*s.TileHeight) + 4
	canvas.DrawText(fmt.Sprintf("Time: %.1fs  Moves: %d", ctx.Time.Elapsed, ctx.GamePlay.Moves), 4, top)

	banner := "Push every box onto a spot"
	if ctx.GamePlay.State == Solved {
		banner = fmt.Sprintf("Solved in %d moves!", ctx.GamePlay.Moves)
	}
	canvas.DrawText(banner, 4, top+float64(HUDHeight)/2)
}

// Ops returns the sprite draws of the most recent frame in paint order.
func (s *RenderSystem) Ops() []DrawOp {
	return slices.Clone(s.ops)
}
