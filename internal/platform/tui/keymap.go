package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/plus3/boxpush/internal/game"
)

// MapKey translates a Bubble Tea key message to a game key. The usual
// terminal quit keys map to Escape.
func MapKey(msg tea.KeyMsg) game.Key {
	switch msg.String() {
	case "up":
		return game.KeyUp
	case "down":
		return game.KeyDown
	case "left":
		return game.KeyLeft
	case "right":
		return game.KeyRight
	case "w":
		return game.KeyW
	case "a":
		return game.KeyA
	case "s":
		return game.KeyS
	case "d":
		return game.KeyD
	case "r":
		return game.KeyR
	case "esc", "q", "ctrl+c":
		return game.KeyEscape
	}
	return game.KeyUnknown
}
