package game

import "github.com/plus3/boxpush/ecs"

// EventKind identifies a gameplay event.
type EventKind int

const (
	BoxPlacedOnSpot EventKind = iota
	BoxLeftSpot
	PuzzleSolved
)

// Sound names played for gameplay events.
const (
	SoundCorrect   = "correct"
	SoundIncorrect = "incorrect"
	SoundSolved    = "solved"
)

// Sounds lists every sound an event can play.
func Sounds() []string {
	return []string{SoundCorrect, SoundIncorrect, SoundSolved}
}

func (k EventKind) String() string {
	switch k {
	case BoxPlacedOnSpot:
		return "box_placed_on_spot"
	case BoxLeftSpot:
		return "box_left_spot"
	case PuzzleSolved:
		return "puzzle_solved"
	}
	return "unknown"
}

// Sound returns the sound played for the event kind.
func (k EventKind) Sound() string {
	switch k {
	case BoxPlacedOnSpot:
		return SoundCorrect
	case BoxLeftSpot:
		return SoundIncorrect
	case PuzzleSolved:
		return SoundSolved
	}
	return ""
}

// Event is a transient gameplay notification. Entity and Position refer to
// the box involved, and are zero for PuzzleSolved.
type Event struct {
	Kind     EventKind
	Entity   ecs.EntityId
	Position Position
}
