package game

import "fmt"

// Key is a host independent key code.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyR
	KeyEscape
)

var keyNames = map[Key]string{
	KeyUnknown: "unknown",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyW:       "w",
	KeyA:       "a",
	KeyS:       "s",
	KeyD:       "d",
	KeyR:       "r",
	KeyEscape:  "escape",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// Direction returns the grid step for a movement key.
func (k Key) Direction() (dx, dy int, ok bool) {
	switch k {
	case KeyUp, KeyW:
		return 0, -1, true
	case KeyDown, KeyS:
		return 0, 1, true
	case KeyLeft, KeyA:
		return -1, 0, true
	case KeyRight, KeyD:
		return 1, 0, true
	}
	return 0, 0, false
}

// ParseMoves turns a move string such as "UURDL" into arrow keys.
// Whitespace is ignored and letters are case-insensitive.
func ParseMoves(moves string) ([]Key, error) {
	var keys []Key
	for i, r := range moves {
		switch r {
		case 'U', 'u':
			keys = append(keys, KeyUp)
		case 'D', 'd':
			keys = append(keys, KeyDown)
		case 'L', 'l':
			keys = append(keys, KeyLeft)
		case 'R', 'r':
			keys = append(keys, KeyRight)
		case ' ', '\t', '\n', '\r':
		default:
			return nil, fmt.Errorf("game: invalid move %q at offset %d", r, i)
		}
	}
	return keys, nil
}
