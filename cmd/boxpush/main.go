// boxpush is a tile-based box pushing puzzle.
//
// Usage:
//
//	boxpush play [level]        - Play a level in a window or the terminal
//	boxpush levels              - List the level pack
//	boxpush scores <level>      - Show the best recorded solves
//	boxpush replay <level>      - Run a move sequence headless and print a report
//	boxpush serve               - Serve the terminal game over SSH
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.boxpush, ./configs, embedded)
//	--db <path>         - Solve records database
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/plus3/boxpush/internal/config"
	"github.com/plus3/boxpush/internal/game"
	"github.com/plus3/boxpush/internal/level"
	"github.com/plus3/boxpush/internal/platform"
	"github.com/plus3/boxpush/internal/storage"
)

var (
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "boxpush",
	Short: "Push every box onto a spot",
	Long: `boxpush is a tile-based puzzle: walk the player around the board and push
every box onto a spot. Boxes can be pushed but never pulled.

Examples:
  boxpush levels
  boxpush play corridor
  boxpush play --tui 2
  boxpush play --map ./my-level.txt
  boxpush replay first-steps --moves RR`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to solve records database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}

// app is the state every command starts from.
type app struct {
	cfg    config.Config
	logger *log.Logger
}

func setup() (*app, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "boxpush",
	})

	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(lvl)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}

	return &app{cfg: cfg, logger: logger}, nil
}

func (a *app) gameOptions() game.Options {
	return game.Options{
		TickRate:        a.cfg.Game.TickRate,
		MaxCatchUp:      a.cfg.Game.MaxCatchUp,
		TileWidth:       a.cfg.Game.TileWidth,
		TileHeight:      a.cfg.Game.TileHeight,
		PlayerFrameTime: a.cfg.Game.AnimationStep,
		Logger:          a.logger,
	}
}

// openSaver opens the solve records. A database that cannot be opened only
// disables recording, so the result is a nil interface rather than a nil *Store.
func (a *app) openSaver() (platform.SolveSaver, func()) {
	store, err := storage.Open(a.cfg.Storage.Path)
	if err != nil {
		a.logger.Warn("solve records disabled", "path", a.cfg.Storage.Path, "err", err)
		return nil, func() {}
	}
	return store, func() { store.Close() }
}

func loadPack(path string) (*level.Pack, error) {
	if path == "" {
		return level.DefaultPack()
	}
	return level.LoadPack(path)
}

// loadLevel resolves the level to play: a map file when given, otherwise ref
// looked up in the pack, otherwise the pack's first level.
func loadLevel(packPath, mapPath, ref string) (string, *level.Map, error) {
	if mapPath != "" {
		data, err := os.ReadFile(mapPath)
		if err != nil {
			return "", nil, fmt.Errorf("read map: %w", err)
		}
		m, err := level.Parse(string(data))
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", mapPath, err)
		}
		name := strings.TrimSuffix(filepath.Base(mapPath), filepath.Ext(mapPath))
		return name, m, nil
	}

	pack, err := loadPack(packPath)
	if err != nil {
		return "", nil, err
	}
	if ref == "" {
		if len(pack.Levels) == 0 {
			return "", nil, fmt.Errorf("%w: pack is empty", level.ErrLevelNotFound)
		}
		ref = pack.Levels[0].Name
	}

	lvl, err := pack.Find(ref)
	if err != nil {
		return "", nil, err
	}
	m, err := lvl.Parsed()
	if err != nil {
		return "", nil, err
	}
	return lvl.Name, m, nil
}
