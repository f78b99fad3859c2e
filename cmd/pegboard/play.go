package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pegboard/internal/config"
	"github.com/vovakirdan/pegboard/internal/core"
	"github.com/vovakirdan/pegboard/internal/games/pegboard"
	"github.com/vovakirdan/pegboard/internal/platform/tui"
	"github.com/vovakirdan/pegboard/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [layout]",
	Short: "Play a layout",
	Long: `Open a layout on the board. The argument is a layout ID or the path to
a layout file; without it the config's default layout is used.

Controls:
  Arrows/WASD  - Move the cursor between piece slots
  Tab          - Cycle the piece to place (path, cross, bit, terminal)
  Enter        - Place the piece at the cursor
  X/Backspace  - Remove the piece at the cursor
  F            - Flip the piece at the cursor
  Mouse click  - Place on an empty slot, flip an occupied one
  Space        - Start/stop the board
  R            - Reset balls (pieces stay)
  C            - Clear all pieces
  +/-          - Faster/slower
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  pegboard play
  pegboard play bit-counter
  pegboard play ./my-board.yaml
  pegboard play terminal-trap --fps 30`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	logger := newLogger(os.Stderr)

	layoutArg := ""
	if len(args) == 1 {
		layoutArg = args[0]
		cfg := loadConfig(logger)
		if _, err := resolveLayout(layoutArg, layoutsDir(cfg)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'pegboard layouts' to see available layouts.")
			os.Exit(1)
		}
	}

	if err := playSession(layoutArg, terminalConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error running board: %v\n", err)
		os.Exit(1)
	}
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg
}

// playSession runs one interactive board until the user quits.
func playSession(layoutArg string, cfg core.RuntimeConfig) error {
	logger, closeLog := sessionLogger()
	defer closeLog()

	pegboard.SetConfigPath(flagConfig)
	pegboard.SetLayoutsDir(flagLayoutsDir)
	pegboard.SetLayout(layoutArg)
	pegboard.SetSpeedPreset(config.SpeedPreset(flagSpeed))

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the board still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	game := pegboard.New()
	if err := tui.Run(game, store, logger, cfg); err != nil {
		return err
	}
	if logger != nil {
		if _, sum, ok := game.LastRun(); ok {
			logger.Info("session ended", "layout", game.Layout().ID, "halt", sum.Halt, "hops", sum.Hops)
		}
	}
	return nil
}
