// Package formats provides pluggable layout file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/pegboard/internal/core"
	"github.com/vovakirdan/pegboard/internal/pachinko"
)

// YAMLLayout represents the YAML structure for a layout file.
type YAMLLayout struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Board       YAMLBoard   `yaml:"board"`
	Pieces      []YAMLPiece `yaml:"pieces"`
}

// YAMLBoard represents the board configuration block.
type YAMLBoard struct {
	Size          YAMLSize `yaml:"size"`
	StartingColor string   `yaml:"starting_color,omitempty"`
	BlueBalls     *int     `yaml:"blue_balls,omitempty"`
	RedBalls      *int     `yaml:"red_balls,omitempty"`
	EntryPoint    *int     `yaml:"entry_point,omitempty"`
}

// YAMLSize represents board dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPiece represents a single placed piece.
type YAMLPiece struct {
	Kind        string `yaml:"kind"`
	X           int    `yaml:"x"`
	Y           int    `yaml:"y"`
	Orientation string `yaml:"orientation,omitempty"`
}

// Piece is a parsed piece placement.
type Piece struct {
	Kind        pachinko.Kind
	Position    core.Point
	Orientation pachinko.Direction
}

// Layout represents a parsed layout ready for use.
type Layout struct {
	ID          string
	Name        string
	Description string
	Config      pachinko.Configuration
	Pieces      []Piece
}

// ParseYAML parses a YAML layout file. Missing board fields fall back to
// the default configuration.
func ParseYAML(data []byte) (Layout, error) {
	var yl YAMLLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Layout{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Layout{}, fmt.Errorf("layout has no id")
	}

	cfg := pachinko.DefaultConfiguration()
	if yl.Board.Size.W != 0 || yl.Board.Size.H != 0 {
		cfg.Size = pachinko.Size{W: yl.Board.Size.W, H: yl.Board.Size.H}
	}
	if yl.Board.StartingColor != "" {
		c, err := pachinko.ParseBallColor(yl.Board.StartingColor)
		if err != nil {
			return Layout{}, err
		}
		cfg.StartingColor = c
	}
	if yl.Board.BlueBalls != nil {
		cfg.NumBlueBalls = *yl.Board.BlueBalls
	}
	if yl.Board.RedBalls != nil {
		cfg.NumRedBalls = *yl.Board.RedBalls
	}
	if yl.Board.EntryPoint != nil {
		cfg.EntryPoint = *yl.Board.EntryPoint
	}
	if err := cfg.Validate(); err != nil {
		return Layout{}, err
	}

	layout := Layout{
		ID:          yl.ID,
		Name:        yl.Name,
		Description: yl.Description,
		Config:      cfg,
	}

	for i, p := range yl.Pieces {
		kind, err := pachinko.ParseKind(p.Kind)
		if err != nil {
			return Layout{}, fmt.Errorf("piece %d: %w", i, err)
		}
		orient, err := pachinko.ParseDirection(p.Orientation)
		if err != nil {
			return Layout{}, fmt.Errorf("piece %d: %w", i, err)
		}
		layout.Pieces = append(layout.Pieces, Piece{
			Kind:        kind,
			Position:    core.P(p.X, p.Y),
			Orientation: orient,
		})
	}

	return layout, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
