// pegboard is a pachinko board you build and run in the terminal.
//
// Usage:
//
//	pegboard play [layout]      - Play a layout (ID or .yaml file)
//	pegboard menu               - Pick a layout interactively
//	pegboard simulate [layout]  - Run a layout headless and print the outcome
//	pegboard layouts            - List available layouts
//	pegboard runs [layout]      - Show recorded runs
//	pegboard scores             - Show the best interactive runs
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.pegboard/pegboard.db)
//	--config <path>       - Use a custom pachinko.yaml
//	--layouts-dir <path>  - Look for layout files in this directory
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs of interactive sessions to a file
//	--speed <preset>      - slow, normal, fast or turbo
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pegboard/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagLayoutsDir string
	flagLogLevel   string
	flagLogFile    string
	flagSpeed      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pegboard",
	Short: "Pegboard - build pachinko boards in your terminal",
	Long: `Pegboard drops blue and red balls through a triangular grid of pegs.
Place paths, crosses, bits and terminals on the pegs to route them.

Available commands:
  play      - Play a layout directly
  menu      - Interactive layout picker
  simulate  - Run a layout without the UI
  layouts   - Show all available layouts
  runs      - View recorded runs
  scores    - View the best interactive runs

Examples:
  pegboard play bit-counter
  pegboard menu
  pegboard simulate terminal-trap --plot
  pegboard runs bit-counter`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pegboard/pegboard.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom pachinko config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLayoutsDir, "layouts-dir", "", "Directory with layout files (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for interactive sessions")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast, turbo (default from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(layoutsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the command logger honouring --log-level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pegboard",
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// sessionLogger returns the logger for full-screen sessions, which cannot
// share the terminal with log output. Without --log-file it returns nil and
// the session discards logs.
func sessionLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return nil, func() {}
	}

	path := config.ExpandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return nil, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return nil, func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// loadConfig reads the pachinko config, falling back to defaults on error,
// and applies --speed.
func loadConfig(logger *log.Logger) config.PachinkoConfig {
	cfg, err := config.LoadPachinko(flagConfig)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultPachinkoConfig()
	}
	if flagSpeed != "" && !config.ApplySpeedPreset(&cfg, config.SpeedPreset(flagSpeed)) {
		logger.Warn("unknown speed preset, keeping config", "speed", flagSpeed)
	}
	return cfg
}

// layoutsDir returns the directory searched for layout files.
func layoutsDir(cfg config.PachinkoConfig) string {
	if flagLayoutsDir != "" {
		return config.ExpandHome(flagLayoutsDir)
	}
	return config.ExpandHome(cfg.Layouts.Dir)
}
