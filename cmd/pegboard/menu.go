package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pegboard/internal/pachinko/layouts"
	"github.com/vovakirdan/pegboard/internal/platform/tui"
	"github.com/vovakirdan/pegboard/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a layout interactively",
	Long: `Start with a layout picker.

Use arrow keys or j/k to navigate, Enter to open a layout, Tab to browse
recorded runs. Quitting the board returns to the picker.

Examples:
  pegboard menu
  pegboard menu --layouts-dir ./boards`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	cfg := terminalConfig()

	lays, err := layouts.All(layoutsDir(loadConfig(logger)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading layouts: %v\n", err)
		os.Exit(1)
	}

	for {
		res, err := tui.RunPicker(lays, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return

		case res.WantsRuns:
			back, err := browseRuns(lays, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if !back {
				return
			}

		default:
			if err := playSession(res.LayoutID, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error running board: %v\n", err)
				os.Exit(1)
			}
		}
	}
}

// browseRuns opens the run browser. It reports whether the user went back
// rather than quitting.
func browseRuns(lays []layouts.Layout, width, height int) (bool, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return false, fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	return tui.RunRunsBrowser(store, lays, width, height)
}
