package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/plus3/boxpush/internal/config"
)

const emptyCell = -1

type glyph struct {
	text  string
	style lipgloss.Style
}

// Canvas implements game.Canvas on a character grid with one cell per tile.
// Later sprites on a cell replace earlier ones, so paint order is preserved.
type Canvas struct {
	width, height int
	tileWidth     int
	tileHeight    int

	glyphs  []glyph
	byAsset map[string]int
	cells   []int
	hud     []string
}

// NewCanvas creates a canvas for a width x height board drawn with tiles of
// tileWidth x tileHeight pixels. Assets without a configured glyph show as "?".
func NewCanvas(width, height, tileWidth, tileHeight int, glyphs map[string]config.GlyphConfig) *Canvas {
	c := &Canvas{
		width:      width,
		height:     height,
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
		byAsset:    make(map[string]int, len(glyphs)),
		cells:      make([]int, width*height),
	}

	for asset, g := range glyphs {
		c.byAsset[asset] = len(c.glyphs)
		c.glyphs = append(c.glyphs, glyph{
			text:  g.Glyph,
			style: lipgloss.NewStyle().Foreground(lipgloss.Color(g.Color)),
		})
	}
	c.byAsset[""] = len(c.glyphs)
	c.glyphs = append(c.glyphs, glyph{text: "?", style: lipgloss.NewStyle()})

	c.Clear()
	return c
}

// Clear empties the grid and the HUD.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = emptyCell
	}
	c.hud = c.hud[:0]
}

func (c *Canvas) DrawSprite(asset string, x, y, _, _ float64) {
	col, row := int(x)/c.tileWidth, int(y)/c.tileHeight
	if col < 0 || row < 0 || col >= c.width || row >= c.height {
		return
	}

	index, ok := c.byAsset[asset]
	if !ok {
		index = c.byAsset[""]
	}
	c.cells[row*c.width+col] = index
}

func (c *Canvas) DrawText(text string, _, _ float64) {
	c.hud = append(c.hud, text)
}

// String renders the grid with colours, then the HUD lines.
// Adjacent cells with the same glyph are styled as one run.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height*4 + c.height)

	for y := range c.height {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.width {
			start := c.cells[y*c.width+x]

			var run strings.Builder
			for x < c.width && c.cells[y*c.width+x] == start {
				run.WriteString(c.text(start))
				x++
			}

			if start == emptyCell {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(c.glyphs[start].style.Render(run.String()))
			}
		}
	}

	for _, line := range c.hud {
		sb.WriteRune('\n')
		sb.WriteString(line)
	}
	return sb.String()
}

// Plain renders the grid and HUD without colours.
func (c *Canvas) Plain() string {
	var sb strings.Builder
	for y := range c.height {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := range c.width {
			sb.WriteString(c.text(c.cells[y*c.width+x]))
		}
	}
	for _, line := range c.hud {
		sb.WriteRune('\n')
		sb.WriteString(line)
	}
	return sb.String()
}

// text is a cell's glyph padded to two columns so tiles are roughly square.
func (c *Canvas) text(index int) string {
	if index == emptyCell {
		return "  "
	}
	return c.glyphs[index].text + " "
}
