// Package level turns the textual grid format into map cells and loads
// named level packs.
package level

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMap is wrapped by every parse failure.
var ErrInvalidMap = errors.New("invalid map")

// Symbol is a single map cell character.
type Symbol byte

const (
	Player  Symbol = 'P'
	Box     Symbol = 'B'
	Wall    Symbol = 'W'
	BoxSpot Symbol = 'S'
	Floor   Symbol = '.'
	Nothing Symbol = 'N'
)

// Valid reports whether s is one of the known map symbols.
func (s Symbol) Valid() bool {
	switch s {
	case Player, Box, Wall, BoxSpot, Floor, Nothing:
		return true
	}
	return false
}

func (s Symbol) String() string {
	return string(s)
}

// Cell is one parsed grid position. Row index is Y, column index is X.
type Cell struct {
	X, Y   int
	Symbol Symbol
}

// Map is a parsed level. Width is the length of the longest row.
type Map struct {
	Width  int
	Height int
	Cells  []Cell
}

// Count returns how many cells carry symbol.
func (m *Map) Count(symbol Symbol) int {
	n := 0
	for _, cell := range m.Cells {
		if cell.Symbol == symbol {
			n++
		}
	}
	return n
}

// Parse reads newline separated rows of symbols, each cell separated from
// the next by exactly one space. Leading and trailing blank lines are ignored,
// as is whitespace around each row. Any other separator is an error.
func Parse(text string) (*Map, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return nil, fmt.Errorf("%w: no cells", ErrInvalidMap)
	}

	rows := strings.Split(text, "\n")
	m := &Map{Height: len(rows)}

	for y, row := range rows {
		row = strings.TrimSpace(row)
		if row == "" {
			return nil, fmt.Errorf("%w: row %d is empty", ErrInvalidMap, y)
		}

		fields := strings.Split(row, " ")
		for x, field := range fields {
			if field == "" {
				return nil, fmt.Errorf("%w: empty cell at row %d column %d", ErrInvalidMap, y, x)
			}
			if len(field) != 1 || !Symbol(field[0]).Valid() {
				return nil, fmt.Errorf("%w: unknown symbol %q at row %d column %d", ErrInvalidMap, field, y, x)
			}
			m.Cells = append(m.Cells, Cell{X: x, Y: y, Symbol: Symbol(field[0])})
		}
		m.Width = max(m.Width, len(fields))
	}

	return m, nil
}

// String renders the map back to its text form. Short rows are not padded.
func (m *Map) String() string {
	var sb strings.Builder
	y := 0
	for i, cell := range m.Cells {
		if cell.Y != y {
			sb.WriteByte('\n')
			y = cell.Y
		} else if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte(cell.Symbol))
	}
	return sb.String()
}
