package game

// Canvas receives the draw calls of one frame.
type Canvas interface {
	// DrawSprite draws asset with its top-left corner at (x, y) pixels,
	// scaled by (scaleX, scaleY).
	DrawSprite(asset string, x, y, scaleX, scaleY float64)
	// DrawText draws one line of HUD text at (x, y) pixels.
	DrawText(text string, x, y float64)
}

// ImageStore reports the native pixel size of loaded image assets.
type ImageStore interface {
	Size(asset string) (width, height int)
}

// AudioPlayer plays a loaded sound by name.
type AudioPlayer interface {
	Play(name string) error
}

// NopCanvas discards every draw call.
type NopCanvas struct{}

func (NopCanvas) DrawSprite(string, float64, float64, float64, float64) {}
func (NopCanvas) DrawText(string, float64, float64)                       {}

// NopAudio accepts every sound and plays nothing.
type NopAudio struct{}

func (NopAudio) Play(string) error { return nil }

// TileImages reports every asset as exactly one tile, so sprites are never scaled.
type TileImages struct {
	Width, Height int
}

func (t TileImages) Size(string) (int, int) { return t.Width, t.Height }
