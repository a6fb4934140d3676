package game

// State is the puzzle status. The only transition is InProgress to Solved.
type State int

const (
	InProgress State = iota
	Solved
)

func (s State) String() string {
	if s == Solved {
		return "solved"
	}
	return "in progress"
}

// GamePlay tracks progress through the puzzle.
type GamePlay struct {
	State    State
	Moves    int
	SolvedAt float64
}

// Time is simulated time. Elapsed stops advancing once the puzzle is solved.
type Time struct {
	Elapsed float64
	Ticks   uint64
}

// Board is the map size in cells.
type Board struct {
	Width  int
	Height int
}

// Contains reports whether (x, y) lies on the board.
func (b Board) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// Context is the state shared by every system. It lives in storage as a
// singleton for the lifetime of one level.
type Context struct {
	Time     Time
	GamePlay GamePlay
	Board    Board

	// Keys is appended to by KeyDown and drained by the input system.
	Keys []Key
	// Events is appended to by the input and objective systems and drained
	// by the event system in the same tick.
	Events []Event
}

func (c *Context) emit(event Event) {
	c.Events = append(c.Events, event)
}
