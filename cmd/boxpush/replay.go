package main

import (
	"github.com/spf13/cobra"

	"github.com/plus3/boxpush/internal/game"
	"github.com/plus3/boxpush/internal/level"
	"github.com/plus3/boxpush/internal/platform"
)

var (
	flagReplayMoves  string
	flagReplayPack   string
	flagReplayMap    string
	flagReplayRecord bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [level]",
	Short: "Replay a move sequence without a window",
	Long: `Run a level headless, one tick per move, and print a report of the outcome
and of the entity store and systems.

Moves are U, D, L and R (case-insensitive); whitespace is ignored. Rejected
moves such as walking into a wall still use a tick.

Examples:
  boxpush replay first-steps --moves RR
  boxpush replay corridor --moves "RRRR UU" --record
  boxpush replay --map ./room.txt --moves LLDR`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayMoves, "moves", "", "Move sequence, e.g. UURDL")
	replayCmd.Flags().StringVar(&flagReplayPack, "pack", "", "Level pack YAML (default: built-in pack)")
	replayCmd.Flags().StringVar(&flagReplayMap, "map", "", "Replay on a single map file")
	replayCmd.Flags().BoolVar(&flagReplayRecord, "record", false, "Record the solve if the moves solve the level")
}

func runReplay(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	var ref string
	if len(args) > 0 {
		ref = args[0]
	}
	name, m, err := loadLevel(flagReplayPack, flagReplayMap, ref)
	if err != nil {
		return err
	}

	keys, err := game.ParseMoves(flagReplayMoves)
	if err != nil {
		return err
	}

	report := replay(name, m, keys, a.gameOptions())

	if flagReplayRecord {
		saver, closeStore := a.openSaver()
		defer closeStore()

		recorder := platform.NewSolveRecorder(saver, name, a.logger)
		recorder.Observe(report.Status)
		report.Recorded = saver != nil && report.Status.State == game.Solved
	}

	return report.Generate(cmd.OutOrStdout())
}

// replay plays keys on a fresh game, one tick each, with no window or sound.
func replay(name string, m *level.Map, keys []game.Key, opts game.Options) *Report {
	opts.Images = game.TileImages{Width: opts.TileWidth, Height: opts.TileHeight}
	opts.Audio = game.NopAudio{}

	g := game.NewGame(m, opts)
	for _, key := range keys {
		g.KeyDown(key)
		g.Tick()
	}
	g.Draw(game.NopCanvas{})

	status := g.Status()
	stats := g.Stats()
	return &Report{
		Level:     name,
		Width:     m.Width,
		Height:    m.Height,
		Keys:      len(keys),
		Rejected:  len(keys) - status.Moves,
		Status:    status,
		Storage:   stats.Storage,
		Scheduler: stats.Scheduler,
		Sprites:   len(g.LastFrame()),
	}
}
