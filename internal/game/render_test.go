package game_test

import (
	"testing"

	"github.com/plus3/boxpush/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sizedImages map[string][2]int

func (s sizedImages) Size(asset string) (int, int) {
	size := s[asset]
	return size[0], size[1]
}

func TestRenderOrder(t *testing.T) {
	f := newFixture(t, "P S", game.Options{})
	canvas := &recordingCanvas{}
	f.game.Draw(canvas)

	require.Len(t, canvas.sprites, 4)
	assert.Equal(t, []string{game.AssetFloor, game.AssetFloor, game.AssetBoxSpot, game.AssetPlayer1},
		[]string{canvas.sprites[0].Asset, canvas.sprites[1].Asset, canvas.sprites[2].Asset, canvas.sprites[3].Asset})

	ops := f.game.LastFrame()
	for i := 1; i < len(ops); i++ {
		if ops[i-1].Z == ops[i].Z {
			assert.Less(t, ops[i-1].Entity, ops[i].Entity, "ties keep creation order")
		} else {
			assert.Less(t, ops[i-1].Z, ops[i].Z)
		}
	}
}

func TestRenderFloorBeforeBox(t *testing.T) {
	f := newFixture(t, ". . . .\n. . . .\n. . . .\n. . B .", game.Options{})
	canvas := &recordingCanvas{}
	f.game.Draw(canvas)

	var floorAt, boxAt = -1, -1
	for i, sprite := range canvas.sprites {
		if sprite.X == 2*tileWidth && sprite.Y == 3*tileHeight {
			switch sprite.Asset {
			case game.AssetFloor:
				floorAt = i
			case game.AssetBox:
				boxAt = i
			}
		}
	}

	require.NotEqual(t, -1, floorAt)
	require.NotEqual(t, -1, boxAt)
	assert.Less(t, floorAt, boxAt)

	box := canvas.sprites[boxAt]
	assert.Equal(t, float64(2*tileWidth), box.X)
	assert.Equal(t, float64(3*tileHeight), box.Y)
	assert.Equal(t, 1.0, box.ScaleX)
	assert.Equal(t, 1.0, box.ScaleY)
}

func TestRenderScalesToTile(t *testing.T) {
	images := sizedImages{
		game.AssetFloor: {64, 16},
		game.AssetWall:  {tileWidth, tileHeight},
	}
	f := newFixture(t, ". W", game.Options{Images: images})
	canvas := &recordingCanvas{}
	f.game.Draw(canvas)

	require.Len(t, canvas.sprites, 2)
	assert.Equal(t, spriteCall{Asset: game.AssetFloor, X: 0, Y: 0, ScaleX: 0.5, ScaleY: 2}, canvas.sprites[0])
	assert.Equal(t, spriteCall{Asset: game.AssetWall, X: tileWidth, Y: 0, ScaleX: 1, ScaleY: 1}, canvas.sprites[1])
}

func TestRenderFollowsMoves(t *testing.T) {
	f := newFixture(t, "P B S .", game.Options{})
	f.press(game.KeyRight)

	canvas := &recordingCanvas{}
	f.game.Draw(canvas)

	last := canvas.sprites[len(canvas.sprites)-2:]
	assert.Equal(t, game.AssetPlayer1, last[0].Asset)
	assert.Equal(t, float64(tileWidth), last[0].X)
	assert.Equal(t, game.AssetBoxOnSpot, last[1].Asset)
	assert.Equal(t, float64(2*tileWidth), last[1].X)
}

func playerSprite(t *testing.T, f *fixture) string {
	t.Helper()
	canvas := &recordingCanvas{}
	f.game.Draw(canvas)
	for _, sprite := range canvas.sprites {
		switch sprite.Asset {
		case game.AssetPlayer1, game.AssetPlayer2, game.AssetPlayer3:
			return sprite.Asset
		}
	}
	require.Fail(t, "no player sprite drawn")
	return ""
}

func TestPlayerAnimation(t *testing.T) {
	t.Run("cycles with elapsed time", func(t *testing.T) {
		f := newFixture(t, "P . B S .", game.Options{PlayerFrameTime: 0.25})
		assert.Equal(t, game.AssetPlayer1, playerSprite(t, f))

		f.press()
		assert.Equal(t, game.AssetPlayer2, playerSprite(t, f))
		f.press()
		assert.Equal(t, game.AssetPlayer3, playerSprite(t, f))
		f.press()
		assert.Equal(t, game.AssetPlayer1, playerSprite(t, f), "wraps around")
	})

	t.Run("holds its frame once solved", func(t *testing.T) {
		f := newFixture(t, "P B S .", game.Options{PlayerFrameTime: 0.25})
		f.press(game.KeyRight)
		require.Equal(t, game.Solved, f.game.Status().State)
		assert.Equal(t, game.AssetPlayer2, playerSprite(t, f))

		f.press()
		f.press()
		assert.Equal(t, game.AssetPlayer2, playerSprite(t, f))
		assert.Equal(t, uint64(3), f.game.Status().Ticks, "ticks keep counting")
	})
}

func TestHUD(t *testing.T) {
	f := newFixture(t, "P B S", game.Options{TickRate: 2})
	canvas := &recordingCanvas{}
	f.game.Draw(canvas)
	require.Len(t, canvas.text, 2)
	assert.Equal(t, "Time: 0.0s  Moves: 0", canvas.text[0])
	assert.Equal(t, "Push every box onto a spot", canvas.text[1])

	f.press(game.KeyRight)
	canvas = &recordingCanvas{}
	f.game.Draw(canvas)
	assert.Equal(t, "Time: 0.5s  Moves: 1", canvas.text[0])
	assert.Equal(t, "Solved in 1 moves!", canvas.text[1])
}

func TestDrawDoesNotTick(t *testing.T) {
	f := newFixture(t, "P . .", game.Options{})
	f.game.KeyDown(game.KeyRight)

	f.game.Draw(game.NopCanvas{})
	f.game.Draw(game.NopCanvas{})

	status := f.game.Status()
	assert.Equal(t, uint64(0), status.Ticks)
	assert.Equal(t, 0, status.Moves)
	assert.Equal(t, [][2]int{{0, 0}}, positionsOf[game.Player](f.game.Storage()))
}
