package core

import "time"

// DefaultTickRate is the number of simulation ticks per second when none is
// configured.
const DefaultTickRate = 60

// RuntimeConfig is what the platform hands a game on reset: the screen it
// draws into and the tick rate that fixes the simulation step.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second
}

// DefaultConfig returns an 80x24 screen at the default tick rate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// Normalize replaces a non-positive tick rate with the default.
func (c RuntimeConfig) Normalize() RuntimeConfig {
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	return c
}

// Step returns the simulated time covered by one tick.
func (c RuntimeConfig) Step() time.Duration {
	return time.Second / time.Duration(c.Normalize().TickRate)
}

// GameState is the status a game reports to the platform after each tick.
type GameState struct {
	Score    int  // Balls collected since the last reset
	GameOver bool // The board halted and the run is over
	Paused   bool // The board is stopped with a ball in flight
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State  GameState
	Events []string // Board events of this tick, logged at debug level
}
