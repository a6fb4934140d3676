package ebitenhost

import (
	"errors"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/boxpush/ecs"
	"github.com/plus3/boxpush/ecs/debugui"
	debugui_ebiten "github.com/plus3/boxpush/ecs/debugui/ebiten"
	"github.com/plus3/boxpush/internal/game"
	"github.com/plus3/boxpush/internal/platform"
)

var background = color.RGBA{R: 240, G: 236, B: 226, A: 255}

var keyMap = map[ebiten.Key]game.Key{
	ebiten.KeyArrowUp:    game.KeyUp,
	ebiten.KeyArrowDown:  game.KeyDown,
	ebiten.KeyArrowLeft:  game.KeyLeft,
	ebiten.KeyArrowRight: game.KeyRight,
	ebiten.KeyW:          game.KeyW,
	ebiten.KeyA:          game.KeyA,
	ebiten.KeyS:          game.KeyS,
	ebiten.KeyD:          game.KeyD,
	ebiten.KeyR:          game.KeyR,
	ebiten.KeyEscape:     game.KeyEscape,
}

// MapKey translates an ebiten key to a game key.
func MapKey(key ebiten.Key) game.Key {
	if k, ok := keyMap[key]; ok {
		return k
	}
	return game.KeyUnknown
}

// Options configures a Host.
type Options struct {
	Title    string
	Scale    float64
	Debug    bool
	Recorder *platform.SolveRecorder
	Logger   *log.Logger
}

// Host implements ebiten.Game around a game.Game.
type Host struct {
	game     *game.Game
	images   *ImageStore
	opts     Options
	canvas   screenCanvas
	pressed  []ebiten.Key
	lastTick time.Time

	// debug overlay, nil unless Options.Debug
	debugStorage   *ecs.Storage
	debugScheduler *ecs.Scheduler
	debugBackend   *ecs.Singleton[debugui_ebiten.ImguiBackend]
	debugInput     *ecs.Singleton[debugui.ImguiInputState]
	overlay        *debugui.Overlay
}

// New creates a host for g. images must be the store g was built with.
func New(g *game.Game, images *ImageStore, opts Options) *Host {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	h := &Host{
		game:   g,
		images: images,
		opts:   opts,
		canvas: screenCanvas{images: images},
	}

	width, height := g.Layout()
	windowWidth, windowHeight := int(float64(width)*opts.Scale), int(float64(height)*opts.Scale)

	if opts.Debug {
		h.initDebug(windowWidth, windowHeight)
	} else {
		ebiten.SetWindowSize(windowWidth, windowHeight)
		ebiten.SetWindowTitle(opts.Title)
	}
	return h
}

func (h *Host) initDebug(width, height int) {
	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)
	h.debugStorage = ecs.NewStorage(registry)

	backend := debugui_ebiten.NewImguiBackend(h.opts.Title+" (debug)", max(width, 1280), max(height, 720))
	h.debugBackend = ecs.NewSingleton[debugui_ebiten.ImguiBackend](h.debugStorage, backend)

	h.overlay = debugui.Spawn(h.debugStorage, func() (*ecs.Storage, *ecs.Scheduler) {
		return h.game.Storage(), h.game.Scheduler()
	})
	h.debugInput = ecs.NewSingleton[debugui.ImguiInputState](h.debugStorage)

	h.debugScheduler = ecs.NewScheduler(h.debugStorage)
	h.debugScheduler.Register(&debugui.ImguiSystem{})
}

// Run opens the window and blocks until the game quits or the window closes.
func (h *Host) Run() error {
	h.lastTick = time.Now()
	err := ebiten.RunGame(h)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (h *Host) Update() error {
	now := time.Now()
	dt := now.Sub(h.lastTick)
	h.lastTick = now

	if h.debugBackend != nil {
		h.debugBackend.Get().BeginFrame()
		defer h.debugBackend.Get().EndFrame()
		h.overlay.Performance.Record(float32(dt.Seconds()))
		h.debugScheduler.Once(dt.Seconds())
	}

	if h.debugInput == nil || !h.debugInput.Get().WantCaptureKeyboard {
		h.pressed = inpututil.AppendJustPressedKeys(h.pressed[:0])
		for _, key := range h.pressed {
			if k := MapKey(key); k != game.KeyUnknown {
				h.game.KeyDown(k)
				if k == game.KeyR && h.opts.Recorder != nil {
					h.opts.Recorder.Reset()
				}
			}
		}
	}

	if err := h.game.Update(dt); err != nil {
		if errors.Is(err, game.ErrQuit) {
			h.opts.Logger.Info("quit requested")
			return ebiten.Termination
		}
		return err
	}

	if h.opts.Recorder != nil {
		h.opts.Recorder.Observe(h.game.Status())
	}
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	h.canvas.screen = screen
	h.game.Draw(&h.canvas)
	h.canvas.screen = nil

	if h.debugBackend != nil {
		h.debugBackend.Get().Draw(screen)
	}
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.debugBackend != nil {
		h.debugBackend.Get().Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return h.game.Layout()
}
