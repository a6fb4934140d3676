package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/plus3/boxpush/internal/config"
	"github.com/plus3/boxpush/internal/game"
	"github.com/plus3/boxpush/internal/platform"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
)

const helpText = "arrows/wasd move • r restart • esc quit"

// ModelOptions configures a terminal session for one level.
type ModelOptions struct {
	Level      string
	TickRate   int
	TileWidth  int
	TileHeight int
	Glyphs     map[string]config.GlyphConfig
	Recorder   *platform.SolveRecorder
}

// Model is the Bubble Tea model driving a game.Game.
type Model struct {
	game     *game.Game
	canvas   *Canvas
	opts     ModelOptions
	lastTick time.Time
	quitting bool
}

// NewModel wraps g. Tile sizes must match the game's options; both default to 48.
func NewModel(g *game.Game, opts ModelOptions) Model {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.TileWidth <= 0 {
		opts.TileWidth = 48
	}
	if opts.TileHeight <= 0 {
		opts.TileHeight = 48
	}

	w, h := g.Layout()
	cols := w / opts.TileWidth
	rows := (h - game.HUDHeight) / opts.TileHeight

	return Model{
		game:     g,
		canvas:   NewCanvas(cols, rows, opts.TileWidth, opts.TileHeight, opts.Glyphs),
		opts:     opts,
		lastTick: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.TickRate)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := MapKey(msg)
		if key == game.KeyUnknown {
			return m, nil
		}
		m.game.KeyDown(key)
		if key == game.KeyR && m.opts.Recorder != nil {
			m.opts.Recorder.Reset()
		}
		return m, nil

	case TickMsg:
		now := time.Time(msg)
		dt := now.Sub(m.lastTick)
		m.lastTick = now

		if err := m.game.Update(dt); errors.Is(err, game.ErrQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.opts.Recorder != nil {
			m.opts.Recorder.Observe(m.game.Status())
		}
		return m, tickCmd(m.opts.TickRate)
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.canvas.Clear()
	m.game.Draw(m.canvas)

	var sb strings.Builder
	if m.opts.Level != "" {
		sb.WriteString(titleStyle.Render(fmt.Sprintf("boxpush: %s", m.opts.Level)))
		sb.WriteString("\n\n")
	}
	sb.WriteString(m.canvas.String())
	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render(helpText))
	return sb.String()
}

// Quitting reports whether the session has ended.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts a Bubble Tea program for m on the local terminal.
func Run(m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
