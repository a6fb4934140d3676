package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plus3/boxpush/internal/level"
)

var flagLevelsPack string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels of a pack",
	Long: `List every level of the built-in pack, or of --pack, with its size and box count.

Examples:
  boxpush levels
  boxpush levels --pack ./levels.yaml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsPack, "pack", "", "Level pack YAML (default: built-in pack)")
}

func runLevels(cmd *cobra.Command, _ []string) error {
	pack, err := loadPack(flagLevelsPack)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Levels")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-3s  %-16s  %-7s  %s\n", "#", "NAME", "SIZE", "BOXES")
	fmt.Fprintf(out, "  %-3s  %-16s  %-7s  %s\n", "---", "----------------", "-------", "-----")

	for i := range pack.Levels {
		lvl := &pack.Levels[i]
		m, err := lvl.Parsed()
		if err != nil {
			return err
		}
		size := fmt.Sprintf("%dx%d", m.Width, m.Height)
		fmt.Fprintf(out, "  %-3d  %-16s  %-7s  %d\n", i+1, lvl.Name, size, m.Count(level.Box))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Play one with 'boxpush play <name or number>'.")
	return nil
}
