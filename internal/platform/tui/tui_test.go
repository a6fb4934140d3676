package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/plus3/boxpush/internal/config"
	"github.com/plus3/boxpush/internal/game"
	"github.com/plus3/boxpush/internal/level"
	"github.com/plus3/boxpush/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGlyphs = map[string]config.GlyphConfig{
	game.AssetFloor:     {Glyph: ".", Color: "#333333"},
	game.AssetBox:       {Glyph: "b", Color: "#d7875f"},
	game.AssetBoxOnSpot: {Glyph: "B", Color: "#5fd75f"},
	game.AssetBoxSpot:   {Glyph: "o", Color: "#d7d75f"},
	game.AssetPlayer1:   {Glyph: "@", Color: "#5fafff"},
}

type savedSolve struct {
	level string
	moves int
}

type fakeSaver struct {
	solves []savedSolve
}

func (s *fakeSaver) SaveSolve(level string, moves int, _ time.Duration) (int64, error) {
	s.solves = append(s.solves, savedSolve{level: level, moves: moves})
	return int64(len(s.solves)), nil
}

func newTestModel(t *testing.T, text string, saver platform.SolveSaver) Model {
	t.Helper()

	m, err := level.Parse(text)
	require.NoError(t, err)

	logger := log.New(&bytes.Buffer{})
	g := game.NewGame(m, game.Options{
		TickRate:   4,
		TileWidth:  32,
		TileHeight: 32,
		Logger:     logger,
	})
	return NewModel(g, ModelOptions{
		Level:      "demo",
		TickRate:   4,
		TileWidth:  32,
		TileHeight: 32,
		Glyphs:     testGlyphs,
		Recorder:   platform.NewSolveRecorder(saver, "demo", logger),
	})
}

func tick(t *testing.T, m Model, after time.Duration) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(TickMsg(m.lastTick.Add(after)))
	return next.(Model), cmd
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	assert.Nil(t, cmd)
	return next.(Model)
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want game.Key
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, game.KeyUp},
		{tea.KeyMsg{Type: tea.KeyDown}, game.KeyDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, game.KeyLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, game.KeyRight},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, game.KeyW},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}, game.KeyD},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, game.KeyR},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, game.KeyEscape},
		{tea.KeyMsg{Type: tea.KeyEsc}, game.KeyEscape},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, game.KeyEscape},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, game.KeyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, MapKey(tt.msg))
		})
	}
}

func TestCanvasPaintOrder(t *testing.T) {
	c := NewCanvas(3, 2, 32, 32, testGlyphs)

	c.DrawSprite(game.AssetFloor, 0, 0, 1, 1)
	c.DrawSprite(game.AssetFloor, 32, 0, 1, 1)
	c.DrawSprite(game.AssetPlayer1, 32, 0, 1, 1)
	c.DrawSprite("unknown", 64, 32, 1, 1)
	c.DrawSprite(game.AssetBox, 96, 0, 1, 1)
	c.DrawText("Moves: 0", 0, 64)

	assert.Equal(t, ". @   \n    ? \nMoves: 0", c.Plain())

	c.Clear()
	assert.Equal(t, "      \n      ", c.Plain())
}

func TestModelSolvesAndRecordsOnce(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestModel(t, "P B S", saver)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, cmd := tick(t, m, 300*time.Millisecond)
	require.NotNil(t, cmd)

	status := m.game.Status()
	assert.Equal(t, game.Solved, status.State)
	assert.Equal(t, 1, status.Moves)

	m, _ = tick(t, m, 300*time.Millisecond)
	assert.Equal(t, []savedSolve{{level: "demo", moves: 1}}, saver.solves)

	view := m.View()
	assert.Contains(t, view, "Solved in 1 moves!")
	assert.Contains(t, m.canvas.Plain(), ". @ B ")
}

func TestModelRestartRearmsRecorder(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestModel(t, "P B S", saver)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = tick(t, m, 300*time.Millisecond)
	require.True(t, m.opts.Recorder.Saved())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.False(t, m.opts.Recorder.Saved())
	assert.Equal(t, game.InProgress, m.game.Status().State)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	_, _ = tick(t, m, 300*time.Millisecond)
	assert.Len(t, saver.solves, 2)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, "P . .", nil)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, cmd := tick(t, m, 10*time.Millisecond)

	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
	assert.True(t, m.Quitting())
	assert.Empty(t, m.View())
}

func TestModelIgnoresUnknownKeys(t *testing.T) {
	m := newTestModel(t, "P . .", nil)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m, _ = tick(t, m, 300*time.Millisecond)
	assert.Equal(t, 0, m.game.Status().Moves)
}

func TestToneStreamer(t *testing.T) {
	audio := NewToneAudio(map[string]config.ToneConfig{
		"correct": {Frequency: 880, Duration: 100 * time.Millisecond},
	})

	s, err := audio.Streamer("correct")
	require.NoError(t, err)

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, sampleRate.N(100*time.Millisecond), total)

	_, err = audio.Streamer("missing")
	assert.ErrorContains(t, err, `no tone for sound "missing"`)
}

func TestTonePlayNeedsSpeaker(t *testing.T) {
	audio := NewToneAudio(map[string]config.ToneConfig{
		"correct": {Frequency: 880, Duration: 100 * time.Millisecond},
	})
	assert.ErrorContains(t, audio.Play("correct"), "speaker not initialized")
}

func TestSSHServerSessions(t *testing.T) {
	_, err := NewSSHServer(SSHServerConfig{Pack: &level.Pack{}})
	require.Error(t, err)

	pack, err := level.DefaultPack()
	require.NoError(t, err)

	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "localhost:0",
		HostKeyPath: filepath.Join(t.TempDir(), "keys", "host_ed25519"),
		Pack:        pack,
		Game:        game.Options{TickRate: 4, TileWidth: 32, TileHeight: 32},
		Glyphs:      testGlyphs,
		Logger:      log.New(&bytes.Buffer{}),
	})
	require.NoError(t, err)
	assert.Equal(t, pack.Levels[0].Name, srv.config.DefaultLevel)

	m, err := srv.sessionModel("", "alice")
	require.NoError(t, err)
	assert.Equal(t, pack.Levels[0].Name, m.opts.Level)

	m, err = srv.sessionModel("2", "alice")
	require.NoError(t, err)
	assert.Equal(t, pack.Levels[1].Name, m.opts.Level)

	_, err = srv.sessionModel("no-such-level", "alice")
	assert.ErrorIs(t, err, level.ErrLevelNotFound)

	view := m.View()
	assert.True(t, strings.Contains(view, "Moves: 0"))
}
