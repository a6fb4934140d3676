package game_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/plus3/boxpush/ecs"
	"github.com/plus3/boxpush/internal/game"
	"github.com/plus3/boxpush/internal/level"
	"github.com/stretchr/testify/require"
)

const (
	tileWidth  = 32
	tileHeight = 32
)

type recordingAudio struct {
	played []string
	err    error
}

func (a *recordingAudio) Play(name string) error {
	a.played = append(a.played, name)
	return a.err
}

type spriteCall struct {
	Asset          string
	X, Y           float64
	ScaleX, ScaleY float64
}

type recordingCanvas struct {
	sprites []spriteCall
	text    []string
}

func (c *recordingCanvas) DrawSprite(asset string, x, y, scaleX, scaleY float64) {
	c.sprites = append(c.sprites, spriteCall{Asset: asset, X: x, Y: y, ScaleX: scaleX, ScaleY: scaleY})
}

func (c *recordingCanvas) DrawText(text string, x, y float64) {
	c.text = append(c.text, text)
}

var errNoDevice = errors.New("no audio device")

type fixture struct {
	game  *game.Game
	audio *recordingAudio
	logs  *bytes.Buffer
}

func newFixture(t *testing.T, text string, opts game.Options) *fixture {
	t.Helper()

	m, err := level.Parse(text)
	require.NoError(t, err)

	f := &fixture{audio: &recordingAudio{}, logs: &bytes.Buffer{}}
	if opts.TickRate == 0 {
		opts.TickRate = 4
	}
	opts.TileWidth = tileWidth
	opts.TileHeight = tileHeight
	if opts.Audio == nil {
		opts.Audio = f.audio
	}
	opts.Logger = log.New(f.logs)
	f.game = game.NewGame(m, opts)
	return f
}

// press queues keys and runs one tick.
func (f *fixture) press(keys ...game.Key) {
	for _, key := range keys {
		f.game.KeyDown(key)
	}
	f.game.Tick()
}

type placed struct {
	ID       ecs.EntityId
	Position game.Position
}

// entitiesWith lists every entity carrying T with its position, in creation order.
func entitiesWith[T any](storage *ecs.Storage) []placed {
	var out []placed
	view := ecs.NewView[struct {
		ecs.EntityId
		Position *game.Position
		Tag      *T
	}](storage)
	for item := range view.Values() {
		out = append(out, placed{ID: item.EntityId, Position: *item.Position})
	}
	return out
}

func positionsOf[T any](storage *ecs.Storage) [][2]int {
	var out [][2]int
	for _, p := range entitiesWith[T](storage) {
		out = append(out, [2]int{p.Position.X, p.Position.Y})
	}
	return out
}
