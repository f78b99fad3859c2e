package tui

import (
	"github.com/vovakirdan/pegboard/internal/core"
	"github.com/vovakirdan/pegboard/internal/pachinko"
)

// Game is what the model drives. Games contain pure logic with no Bubble Tea
// dependency; the platform handles input mapping, timing and drawing.
type Game interface {
	// ID is used for score storage and screenshot names.
	ID() string

	// Title is shown as the terminal window title.
	Title() string

	// Reset initializes the game. Called once before the first tick.
	Reset(cfg core.RuntimeConfig)

	// Resize adapts to new screen dimensions without touching game state.
	Resize(w, h int)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the screen buffer.
	Render(dst *core.Screen)

	// State returns the current score and game over/paused flags.
	State() core.GameState
}

// runReporter is implemented by games that can describe a finished run.
type runReporter interface {
	LastRun() (layoutID string, sum pachinko.RunSummary, ok bool)
}
