package config

import (
	_ "embed"
)

//go:embed defaults/pachinko.yaml
var defaultPachinkoYAML []byte

// DefaultPachinkoConfig returns the default pegboard configuration.
func DefaultPachinkoConfig() PachinkoConfig {
	return PachinkoConfig{
		Board: BoardConfig{
			Width:         11,
			Height:        11,
			StartingColor: "blue",
			BlueBalls:     8,
			RedBalls:      8,
			EntryPoint:    2,
		},
		Animation: AnimationConfig{
			Preset:    string(SpeedNormal),
			Speed:     4.0,
			MinSpeed:  1.0,
			MaxSpeed:  32.0,
			SpeedStep: 2.0,
		},
		Layouts: LayoutsConfig{
			Dir:     "~/.pegboard/layouts",
			Default: "empty",
		},
	}
}
