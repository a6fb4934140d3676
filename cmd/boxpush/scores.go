package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plus3/boxpush/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show the best solves of a level",
	Long: `Display the best recorded solves of a level, fewest moves first and
fastest time on ties.

Examples:
  boxpush scores corridor
  boxpush scores corridor --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of solves to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	name := args[0]

	a, err := setup()
	if err != nil {
		return err
	}

	store, err := storage.Open(a.cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	solves, err := store.BestSolves(name, flagScoresLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Best solves - %s\n\n", name)

	if len(solves) == 0 {
		fmt.Fprintln(out, "No solves recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'boxpush play %s' to set the first one!\n", name)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-9s  %s\n", "RANK", "MOVES", "TIME", "DATE")
	fmt.Fprintf(out, "  %-4s  %-6s  %-9s  %s\n", "----", "------", "---------", "----------------")
	for i, s := range solves {
		fmt.Fprintf(out, "  %-4d  %-6d  %-9s  %s\n",
			i+1,
			s.Moves,
			fmt.Sprintf("%.1fs", s.Elapsed.Seconds()),
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return nil
}
