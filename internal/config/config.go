// Package config provides YAML-based configuration loading and animation
// speed presets for the pegboard.
package config

import (
	"fmt"

	"github.com/vovakirdan/pegboard/internal/pachinko"
)

// PachinkoConfig contains all configuration for the pegboard.
type PachinkoConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Animation AnimationConfig `yaml:"animation"`
	Layouts   LayoutsConfig   `yaml:"layouts"`
}

// BoardConfig defines the board used when no layout overrides it.
type BoardConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	StartingColor string `yaml:"starting_color"`
	BlueBalls     int    `yaml:"blue_balls"`
	RedBalls      int    `yaml:"red_balls"`
	EntryPoint    int    `yaml:"entry_point"`
}

// AnimationConfig defines how fast balls hop between pegs.
type AnimationConfig struct {
	Preset    string  `yaml:"preset"`     // Named preset, overrides Speed when set
	Speed     float64 `yaml:"speed"`      // Hops per second
	MinSpeed  float64 `yaml:"min_speed"`  // Lower bound for interactive slow-down
	MaxSpeed  float64 `yaml:"max_speed"`  // Upper bound for interactive speed-up
	SpeedStep float64 `yaml:"speed_step"` // Multiplier applied per faster/slower step
}

// LayoutsConfig defines where user layouts live.
type LayoutsConfig struct {
	Dir     string `yaml:"dir"`
	Default string `yaml:"default"`
}

// ToBoardConfiguration converts the board section into a validated board
// configuration.
func (c PachinkoConfig) ToBoardConfiguration() (pachinko.Configuration, error) {
	color, err := pachinko.ParseBallColor(c.Board.StartingColor)
	if err != nil {
		return pachinko.Configuration{}, fmt.Errorf("config: %w", err)
	}

	cfg := pachinko.Configuration{
		Size:          pachinko.Size{W: c.Board.Width, H: c.Board.Height},
		StartingColor: color,
		NumBlueBalls:  c.Board.BlueBalls,
		NumRedBalls:   c.Board.RedBalls,
		EntryPoint:    c.Board.EntryPoint,
	}
	if err := cfg.Validate(); err != nil {
		return pachinko.Configuration{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// EffectiveSpeed returns the configured hops per second, resolving the
// preset when one is named.
func (c PachinkoConfig) EffectiveSpeed() float64 {
	if c.Animation.Preset != "" {
		if speed, ok := SpeedForPreset(SpeedPreset(c.Animation.Preset)); ok {
			return speed
		}
	}
	if c.Animation.Speed > 0 {
		return c.Animation.Speed
	}
	return pachinko.DefaultAnimationSpeed
}
