// Package layouts loads board layouts: a configuration plus the pieces placed
// on it. The pachinko package does not depend on layouts.
package layouts

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/pegboard/internal/pachinko"
	"github.com/vovakirdan/pegboard/internal/pachinko/layouts/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Layout represents a complete layout definition.
type Layout struct {
	ID          string
	Name        string
	Description string
	Config      pachinko.Configuration
	Pieces      []formats.Piece
	FilePath    string
}

// NewBoard builds a board from the layout and places its pieces.
// Pieces that do not land on a piece slot are skipped; the number placed is
// returned alongside the board.
func (l *Layout) NewBoard(opts ...pachinko.Option) (*pachinko.Board, int, error) {
	b, err := pachinko.NewBoard(l.Config, opts...)
	if err != nil {
		return nil, 0, fmt.Errorf("layout %s: %w", l.ID, err)
	}
	return b, l.Apply(b), nil
}

// Apply clears the board's pieces and places the layout's pieces on it.
// The board configuration is left alone.
func (l *Layout) Apply(b *pachinko.Board) int {
	b.Clear()
	placed := 0
	for _, p := range l.Pieces {
		piece := pachinko.NewPiece(p.Kind)
		piece.SetOrientation(p.Orientation)
		if b.PlacePiece(piece, p.Position.Vec()) {
			placed++
		}
	}
	return placed
}

// Loader handles loading layouts from a directory tree.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader creates a loader reading from a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: "."}
}

// Builtin returns a loader over the layouts compiled into the binary.
func Builtin() *Loader {
	return &Loader{FS: builtinFS, Root: "builtin"}
}

// LoadAll recursively scans and loads all layout files.
// Returns layouts sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Layout, error) {
	var layouts []Layout

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		layout, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}

		layouts = append(layouts, layout)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].ID < layouts[j].ID
	})

	return layouts, nil
}

// LoadFile loads a single layout file, relative to the loader's file system.
func (l *Loader) LoadFile(p string) (Layout, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Layout{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parse(data, p)
}

// LoadByID loads a specific layout by ID.
func (l *Loader) LoadByID(id string) (Layout, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return Layout{}, err
	}

	for _, lay := range layouts {
		if lay.ID == id {
			return lay, nil
		}
	}

	return Layout{}, fmt.Errorf("layout not found: %s", id)
}

// ListIDs returns all layout IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(layouts))
	for i, lay := range layouts {
		ids[i] = lay.ID
	}
	return ids, nil
}

// LoadPath loads a single layout file from disk.
func LoadPath(p string) (Layout, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Layout{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parse(data, p)
}

// Find resolves a layout by ID among the built-ins and, when dir is not
// empty, the layouts in dir. Files in dir win over built-ins with the same ID.
func Find(dir, id string) (Layout, error) {
	if dir != "" {
		if lay, err := NewLoader(dir).LoadByID(id); err == nil {
			return lay, nil
		}
	}
	return Builtin().LoadByID(id)
}

// All returns the built-in layouts merged with those in dir, sorted by ID.
func All(dir string) ([]Layout, error) {
	byID := make(map[string]Layout)
	builtin, err := Builtin().LoadAll()
	if err != nil {
		return nil, err
	}
	for _, lay := range builtin {
		byID[lay.ID] = lay
	}
	if dir != "" {
		if _, statErr := os.Stat(dir); statErr == nil {
			custom, err := NewLoader(dir).LoadAll()
			if err != nil {
				return nil, err
			}
			for _, lay := range custom {
				byID[lay.ID] = lay
			}
		}
	}

	out := make([]Layout, 0, len(byID))
	for _, lay := range byID {
		out = append(out, lay)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parse routes to the correct parser by file extension.
func parse(data []byte, p string) (Layout, error) {
	ext := strings.ToLower(path.Ext(p))
	var (
		parsed formats.Layout
		err    error
	)
	switch ext {
	case ".yaml", ".yml":
		parsed, err = formats.ParseYAML(data)
	default:
		err = fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return Layout{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	return Layout{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Description: parsed.Description,
		Config:      parsed.Config,
		Pieces:      parsed.Pieces,
		FilePath:    p,
	}, nil
}
