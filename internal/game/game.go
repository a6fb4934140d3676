// Package game implements the box pushing rules as ECS systems and exposes
// them through the Update, Draw and KeyDown entry points that hosts call.
package game

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/boxpush/ecs"
	"github.com/plus3/boxpush/internal/level"
)

// ErrQuit is returned by Update once Escape has been pressed.
var ErrQuit = errors.New("game: quit requested")

// Options configures a Game. Zero values fall back to the defaults below.
type Options struct {
	TickRate        int
	MaxCatchUp      int
	TileWidth       int
	TileHeight      int
	PlayerFrameTime float64

	Images ImageStore
	Audio  AudioPlayer
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.TickRate <= 0 {
		o.TickRate = 60
	}
	if o.TileWidth <= 0 {
		o.TileWidth = 48
	}
	if o.TileHeight <= 0 {
		o.TileHeight = 48
	}
	if o.Images == nil {
		o.Images = TileImages{Width: o.TileWidth, Height: o.TileHeight}
	}
	if o.Audio == nil {
		o.Audio = NopAudio{}
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Status is a copy of the game's progress.
type Status struct {
	State    State
	Moves    int
	Elapsed  float64
	SolvedAt float64
	Ticks    uint64
}

// Stats bundles storage and scheduler statistics.
type Stats struct {
	Storage   *ecs.StorageStats
	Scheduler *ecs.SchedulerStats
}

// Game owns the storage and schedules for one level.
type Game struct {
	level *level.Map
	opts  Options

	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	renderer  *ecs.Scheduler
	render    *RenderSystem
	ctx       *Context
	screen    *Screen

	quit bool
}

// NewGame builds a game for m. The map is kept so the level can be restarted.
func NewGame(m *level.Map, opts Options) *Game {
	opts.setDefaults()
	g := &Game{level: m, opts: opts}
	g.reset()
	return g
}

func (g *Game) reset() {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	g.storage = ecs.NewStorage(registry)

	g.ctx = ecs.NewSingleton[Context](g.storage, Context{
		Board: Board{Width: g.level.Width, Height: g.level.Height},
	}).Get()
	g.screen = ecs.NewSingleton[Screen](g.storage).Get()

	Populate(g.storage, g.level, g.opts.PlayerFrameTime)

	g.scheduler = ecs.NewScheduler(g.storage)
	g.scheduler.Register(&TimeSystem{})
	g.scheduler.Register(&InputSystem{})
	g.scheduler.Register(&ObjectiveSystem{})
	g.scheduler.Register(&EventSystem{Audio: g.opts.Audio, Logger: g.opts.Logger})

	g.render = &RenderSystem{
		Images:     g.opts.Images,
		TileWidth:  g.opts.TileWidth,
		TileHeight: g.opts.TileHeight,
	}
	g.renderer = ecs.NewScheduler(g.storage)
	g.renderer.Register(g.render)

	g.opts.Logger.Debug("level loaded",
		"width", g.level.Width,
		"height", g.level.Height,
		"entities", g.storage.EntityCount(),
	)
}

// Update advances the simulation by dt of wall time, running as many fixed
// ticks as fit. It returns ErrQuit once Escape was pressed.
func (g *Game) Update(dt time.Duration) error {
	if g.quit {
		return ErrQuit
	}
	g.scheduler.Advance(dt.Seconds(), g.step(), g.opts.MaxCatchUp)
	return nil
}

// Tick runs exactly one fixed step.
func (g *Game) Tick() {
	g.scheduler.Once(g.step())
}

func (g *Game) step() float64 {
	return 1 / float64(g.opts.TickRate)
}

// Draw renders the current state to canvas. Call it between ticks only.
func (g *Game) Draw(canvas Canvas) {
	g.screen.Canvas = canvas
	g.renderer.Once(0)
	g.screen.Canvas = nil
}

// KeyDown records a key press. Movement keys are queued for the next tick,
// Escape requests quit and R restarts the level.
func (g *Game) KeyDown(key Key) {
	switch key {
	case KeyEscape:
		g.quit = true
	case KeyR:
		g.Restart()
	default:
		g.ctx.Keys = append(g.ctx.Keys, key)
	}
}

// Restart rebuilds the level from its map, discarding all progress.
func (g *Game) Restart() {
	g.opts.Logger.Info("level restarted", "moves", g.ctx.GamePlay.Moves)
	g.reset()
}

// Status returns a copy of the current progress.
func (g *Game) Status() Status {
	return Status{
		State:    g.ctx.GamePlay.State,
		Moves:    g.ctx.GamePlay.Moves,
		Elapsed:  g.ctx.Time.Elapsed,
		SolvedAt: g.ctx.GamePlay.SolvedAt,
		Ticks:    g.ctx.Time.Ticks,
	}
}

// Layout returns the pixel size of the board plus the HUD strip.
func (g *Game) Layout() (width, height int) {
	return g.level.Width * g.opts.TileWidth, g.level.Height*g.opts.TileHeight + HUDHeight
}

// Storage returns the entity store of the running level. It changes on Restart.
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// Scheduler returns the tick scheduler of the running level. It changes on Restart.
func (g *Game) Scheduler() *ecs.Scheduler {
	return g.scheduler
}

// Stats collects storage and tick scheduler statistics.
func (g *Game) Stats() Stats {
	return Stats{
		Storage:   g.storage.CollectStats(),
		Scheduler: g.scheduler.GetStats(),
	}
}

// LastFrame returns the sprite draws of the most recent Draw.
func (g *Game) LastFrame() []DrawOp {
	return g.render.Ops()
}
