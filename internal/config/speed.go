package config

import "github.com/vovakirdan/pegboard/internal/core"

// SpeedPreset represents a named animation speed.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedTurbo  SpeedPreset = "turbo"
)

// SpeedPresets lists the presets from slowest to fastest.
var SpeedPresets = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedTurbo}

// SpeedForPreset returns the hops per second for a preset.
func SpeedForPreset(preset SpeedPreset) (float64, bool) {
	switch preset {
	case SpeedSlow:
		return 2, true
	case SpeedNormal:
		return 4, true
	case SpeedFast:
		return 8, true
	case SpeedTurbo:
		return 16, true
	default:
		return 0, false
	}
}

// ApplySpeedPreset sets the animation preset and speed. Unknown presets
// leave the config unchanged and report false.
func ApplySpeedPreset(cfg *PachinkoConfig, preset SpeedPreset) bool {
	speed, ok := SpeedForPreset(preset)
	if !ok {
		return false
	}
	cfg.Animation.Preset = string(preset)
	cfg.Animation.Speed = speed
	return true
}

// SpeedController steps the animation speed up and down within the
// configured bounds.
type SpeedController struct {
	cfg   AnimationConfig
	speed float64
}

// NewSpeedController creates a controller starting at speed.
func NewSpeedController(cfg AnimationConfig, speed float64) *SpeedController {
	if cfg.MinSpeed <= 0 {
		cfg.MinSpeed = 1
	}
	if cfg.MaxSpeed < cfg.MinSpeed {
		cfg.MaxSpeed = cfg.MinSpeed
	}
	if cfg.SpeedStep <= 1 {
		cfg.SpeedStep = 2 // A step must change the speed
	}
	return &SpeedController{cfg: cfg, speed: core.ClampF(speed, cfg.MinSpeed, cfg.MaxSpeed)}
}

// Speed returns the current hops per second.
func (s *SpeedController) Speed() float64 {
	return s.speed
}

// Faster multiplies the speed by one step and returns the new speed.
func (s *SpeedController) Faster() float64 {
	s.speed = core.ClampF(s.speed*s.cfg.SpeedStep, s.cfg.MinSpeed, s.cfg.MaxSpeed)
	return s.speed
}

// Slower divides the speed by one step and returns the new speed.
func (s *SpeedController) Slower() float64 {
	s.speed = core.ClampF(s.speed/s.cfg.SpeedStep, s.cfg.MinSpeed, s.cfg.MaxSpeed)
	return s.speed
}
