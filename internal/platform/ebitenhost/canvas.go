package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// screenCanvas adapts an ebiten screen to game.Canvas for one frame.
type screenCanvas struct {
	screen *ebiten.Image
	images *ImageStore
}

func (c *screenCanvas) DrawSprite(asset string, x, y, scaleX, scaleY float64) {
	img := c.images.Image(asset)
	if img == nil {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scaleX, scaleY)
	op.GeoM.Translate(x, y)
	c.screen.DrawImage(img, op)
}

func (c *screenCanvas) DrawText(text string, x, y float64) {
	ebitenutil.DebugPrintAt(c.screen, text, int(x), int(y))
}
