package main

import (
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pegboard/internal/config"
	"github.com/vovakirdan/pegboard/internal/pachinko"
	"github.com/vovakirdan/pegboard/internal/storage"
)

var (
	flagMaxHops int
	flagPlot    bool
	flagSave    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [layout]",
	Short: "Run a layout without the UI",
	Long: `Run the board until it halts, hop by hop and without animation, then
print where the balls went.

Examples:
  pegboard simulate bit-counter
  pegboard simulate terminal-trap --max-hops 50
  pegboard simulate ./my-board.yaml --plot --save
  pegboard simulate empty --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagMaxHops, "max-hops", 100000, "Stop after this many hops")
	simulateCmd.Flags().BoolVar(&flagPlot, "plot", false, "Plot collected blue and red balls over time")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the runs database")
}

func runSimulate(_ *cobra.Command, args []string) {
	logger := newLogger(os.Stderr)
	cfg := loadConfig(logger)

	arg := cfg.Layouts.Default
	if len(args) == 1 {
		arg = args[0]
	}
	lay, err := resolveLayout(config.ExpandHome(arg), layoutsDir(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	board, placed, err := lay.NewBoard(pachinko.WithAnimationSpeed(cfg.EffectiveSpeed()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if placed != len(lay.Pieces) {
		logger.Warn("some pieces are not on a slot", "placed", placed, "listed", len(lay.Pieces))
	}
	logger.Debug("board ready", "layout", lay.ID, "size", fmt.Sprintf("%dx%d", lay.Config.Size.W, lay.Config.Size.H), "pieces", placed)

	// Cumulative tallies, one point per collected ball
	blue, red := []float64{0}, []float64{0}
	sum := pachinko.Simulate(board, flagMaxHops, func(b pachinko.Ball) {
		nb, nr := blue[len(blue)-1], red[len(red)-1]
		if b.Color == pachinko.Red {
			nr++
		} else {
			nb++
		}
		blue, red = append(blue, nb), append(red, nr)
		logger.Debug("collected", "color", b.Color, "at", b.Position, "hops", board.Hops())
	})

	if !sum.Completed {
		logger.Warn("hop limit reached before the board halted", "max", flagMaxHops)
	}
	logger.Info("simulation finished", "layout", lay.ID, "halt", sum.Halt, "hops", sum.Hops)

	printSummary(lay.ID, sum)

	if flagPlot && len(blue) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.PlotMany(
			[][]float64{blue, red},
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
			asciigraph.Caption("collected balls (blue, red)"),
		))
	}

	if flagSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		id, err := store.SaveRun(storage.RunFromSummary(lay.ID, sum))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving run: %v\n", err)
			os.Exit(1)
		}
		logger.Info("run saved", "id", id)
	}
}

// printSummary writes the outcome of a run to stdout.
func printSummary(layoutID string, sum pachinko.RunSummary) {
	rec := storage.RunFromSummary(layoutID, sum)

	fmt.Printf("Layout:    %s\n", rec.LayoutID)
	fmt.Printf("Hops:      %d\n", rec.Hops)
	fmt.Printf("Halt:      %s\n", rec.HaltReason)
	fmt.Printf("Collected: %d (blue %d, red %d)\n", len(sum.Collected), rec.BlueCount, rec.RedCount)
	if rec.Collected != "" {
		fmt.Printf("Sequence:  %s\n", rec.Collected)
	}
}
