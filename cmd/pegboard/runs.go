package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pegboard/internal/pachinko/layouts"
	"github.com/vovakirdan/pegboard/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
	flagRunsTUI   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [layout]",
	Short: "Show recorded runs",
	Long: `Display recorded runs, newest first. Runs are recorded when an
interactive board halts, or by 'pegboard simulate --save'.

Examples:
  pegboard runs
  pegboard runs bit-counter --limit 5
  pegboard runs --browse
  pegboard runs terminal-trap --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the runs of the layout (all runs without one)")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "browse", false, "Open the interactive run browser")
}

func runRuns(_ *cobra.Command, args []string) {
	layoutID := ""
	if len(args) == 1 {
		layoutID = args[0]
	}

	if flagRunsTUI {
		logger := newLogger(os.Stderr)
		lays, err := layouts.All(layoutsDir(loadConfig(logger)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading layouts: %v\n", err)
			os.Exit(1)
		}
		cfg := terminalConfig()
		if _, err := browseRuns(lays, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsClear {
		if err := store.ClearRuns(layoutID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Runs cleared.")
		return
	}

	var runs []storage.RunRecord
	if layoutID == "" {
		runs, err = store.RecentRuns(flagRunsLimit)
	} else {
		runs, err = store.RunsForLayout(layoutID, flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play a layout until the board halts, or run 'pegboard simulate --save'.")
		return
	}

	fmt.Printf("  %-16s  %-14s  %-4s  %-4s  %-6s  %-9s  %s\n", "Date", "Layout", "Blue", "Red", "Hops", "Halt", "Sequence")
	fmt.Printf("  %-16s  %-14s  %-4s  %-4s  %-6s  %-9s  %s\n", "----", "------", "----", "---", "----", "----", "--------")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-14s  %-4d  %-4d  %-6d  %-9s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.LayoutID, r.BlueCount, r.RedCount, r.Hops, r.HaltReason, r.Collected)
	}

	if layoutID == "" {
		return
	}
	stats, err := store.AllLayoutStats()
	if err == nil {
		if st, ok := stats[layoutID]; ok {
			fmt.Println()
			fmt.Printf("%d runs, best %d balls, average %.1f\n", st.RunsCount, st.BestCollect, st.AvgCollected)
		}
	}
}
