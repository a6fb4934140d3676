package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/plus3/boxpush/internal/game"
	"github.com/plus3/boxpush/internal/level"
	"github.com/plus3/boxpush/internal/platform"
	"github.com/plus3/boxpush/internal/platform/ebitenhost"
	"github.com/plus3/boxpush/internal/platform/tui"
)

var (
	flagPlayMap   string
	flagPlayPack  string
	flagPlayTUI   bool
	flagPlayDebug bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Play a level by name or 1-based number. Without a level the first level of
the pack is played.

Controls:
  Arrows/WASD - Move
  R           - Restart the level
  Esc         - Quit

Examples:
  boxpush play
  boxpush play corridor
  boxpush play 3 --tui
  boxpush play --pack ./levels.yaml detour
  boxpush play --map ./room.txt --debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayMap, "map", "", "Play a single map file instead of a pack level")
	playCmd.Flags().StringVar(&flagPlayPack, "pack", "", "Level pack YAML (default: built-in pack)")
	playCmd.Flags().BoolVar(&flagPlayTUI, "tui", false, "Play in the terminal instead of a window")
	playCmd.Flags().BoolVar(&flagPlayDebug, "debug", false, "Show the entity debug overlay (window only)")
}

func runPlay(_ *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	var ref string
	if len(args) > 0 {
		ref = args[0]
	}
	name, m, err := loadLevel(flagPlayPack, flagPlayMap, ref)
	if err != nil {
		return err
	}

	saver, closeStore := a.openSaver()
	defer closeStore()
	recorder := platform.NewSolveRecorder(saver, name, a.logger)

	if flagPlayTUI {
		return playTerminal(a, name, m, recorder)
	}
	return playWindow(a, name, m, recorder)
}

func playWindow(a *app, name string, m *level.Map, recorder *platform.SolveRecorder) error {
	images, err := ebitenhost.LoadImages(a.cfg.Assets.Dir, a.cfg.Assets.Images, game.Assets())
	if err != nil {
		return err
	}
	sounds, err := ebitenhost.LoadSounds(a.cfg.Assets.Dir, a.cfg.Assets.Sounds, game.Sounds())
	if err != nil {
		return err
	}

	opts := a.gameOptions()
	opts.Images = images
	opts.Audio = sounds
	g := game.NewGame(m, opts)

	a.logger.Info("starting level", "level", name, "width", m.Width, "height", m.Height)
	host := ebitenhost.New(g, images, ebitenhost.Options{
		Title:    a.cfg.Window.Title + " - " + name,
		Scale:    a.cfg.Window.Scale,
		Debug:    flagPlayDebug,
		Recorder: recorder,
		Logger:   a.logger,
	})
	return host.Run()
}

func playTerminal(a *app, name string, m *level.Map, recorder *platform.SolveRecorder) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("--tui needs stdout to be a terminal")
	}
	if w, h, err := term.GetSize(fd); err == nil && (m.Width*2 > w || m.Height+6 > h) {
		a.logger.Warn("terminal may be too small for this level",
			"columns", w, "rows", h, "needColumns", m.Width*2, "needRows", m.Height+6)
	}

	opts := a.gameOptions()
	audio := tui.NewToneAudio(a.cfg.Terminal.Tones)
	if err := audio.Initialize(); err != nil {
		a.logger.Warn("sound disabled", "err", err)
	} else {
		defer audio.Close()
		opts.Audio = audio
	}

	g := game.NewGame(m, opts)

	// stderr shares the screen with the board.
	a.logger.SetOutput(io.Discard)
	defer a.logger.SetOutput(os.Stderr)

	return tui.Run(tui.NewModel(g, tui.ModelOptions{
		Level:      name,
		TickRate:   opts.TickRate,
		TileWidth:  opts.TileWidth,
		TileHeight: opts.TileHeight,
		Glyphs:     a.cfg.Terminal.Glyphs,
		Recorder:   recorder,
	}))
}
