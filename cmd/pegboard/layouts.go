package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pegboard/internal/pachinko/layouts"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List all available layouts",
	Long: `Shows the built-in layouts and those found in the layouts directory.
A file in the directory replaces the built-in layout with the same ID.`,
	Run: runLayouts,
}

func runLayouts(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	dir := layoutsDir(loadConfig(logger))

	lays, err := layouts.All(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading layouts: %v\n", err)
		os.Exit(1)
	}
	if len(lays) == 0 {
		fmt.Println("No layouts available.")
		return
	}

	fmt.Println("Available layouts:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, lay := range lays {
		maxIDLen = max(maxIDLen, len(lay.ID))
	}

	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "ID", "Size", "Pieces", "Name")
	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "--", "----", "------", "----")
	for _, lay := range lays {
		size := fmt.Sprintf("%dx%d", lay.Config.Size.W, lay.Config.Size.H)
		name := lay.Name
		if lay.FilePath != "" && !strings.HasPrefix(lay.FilePath, "builtin/") {
			name += " (" + filepath.Join(dir, lay.FilePath) + ")"
		}
		fmt.Printf("  %-*s  %-7s  %-6d  %s\n", maxIDLen, lay.ID, size, len(lay.Pieces), name)
	}

	fmt.Println()
	fmt.Println("Run 'pegboard play <id>' to play a layout.")
}

// resolveLayout loads a layout by ID, or from a file when arg names one.
func resolveLayout(arg, dir string) (layouts.Layout, error) {
	ext := strings.ToLower(filepath.Ext(arg))
	if ext == ".yaml" || ext == ".yml" {
		return layouts.LoadPath(arg)
	}
	return layouts.Find(dir, arg)
}
