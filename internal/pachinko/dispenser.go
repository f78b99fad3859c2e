package pachinko

import "github.com/vovakirdan/pegboard/internal/core"

// Dispenser layout constants in board units.
const (
	DispenserHeight   = 0.65
	DispenserMaxShown = 12 // Balls drawn per side before the stack is cut off
)

// Dispenser holds the bounded supply of balls for both sides of the board.
type Dispenser struct {
	entryPoint int
	blue       int
	red        int
}

// NewDispenser creates a dispenser with the given entry point and counts.
func NewDispenser(entryPoint, blue, red int) *Dispenser {
	d := &Dispenser{entryPoint: entryPoint}
	d.FillBalls(blue, red)
	return d
}

// EntryPoint returns the column offset where balls land on the board.
func (d *Dispenser) EntryPoint() int { return d.entryPoint }

// SetEntryPoint moves the landing column.
func (d *Dispenser) SetEntryPoint(entry int) { d.entryPoint = entry }

// Remaining returns the number of balls left of the given color.
func (d *Dispenser) Remaining(c BallColor) int {
	if c == Red {
		return d.red
	}
	return d.blue
}

// FillBalls resets both counts. Negative counts are treated as zero.
func (d *Dispenser) FillBalls(blue, red int) {
	d.blue = max(blue, 0)
	d.red = max(red, 0)
}

// DispenseBall takes one ball of the given color. Blue balls land on the left
// entry column heading right, red balls on the right heading left. It returns
// false and changes nothing when that color is used up.
func (d *Dispenser) DispenseBall(c BallColor) (Ball, bool) {
	switch c {
	case Blue:
		if d.blue == 0 {
			return Ball{}, false
		}
		d.blue--
		return Ball{Position: core.P(-d.entryPoint, 0), Direction: Left, Color: Blue}, true
	case Red:
		if d.red == 0 {
			return Ball{}, false
		}
		d.red--
		return Ball{Position: core.P(d.entryPoint, 0), Direction: Right, Color: Red}, true
	default:
		return Ball{}, false
	}
}
