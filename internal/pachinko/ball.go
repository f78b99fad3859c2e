// Package pachinko implements the pegboard simulation: a triangular funnel of
// pegs, the pieces that redirect balls passing through it, the dispenser that
// feeds balls in and the collector that receives them at the bottom.
// This package is UI-agnostic and deterministic.
package pachinko

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pegboard/internal/core"
)

// Direction is the side a ball enters from or exits to.
// Left and Right are signed so that negation swaps them.
type Direction int

const (
	Left  Direction = -1
	None  Direction = 0
	Right Direction = 1
)

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "None"
	}
}

// Opposite returns the mirrored direction. None stays None.
func (d Direction) Opposite() Direction {
	return -d
}

// ParseDirection parses "left", "right" or "none" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	case "none", "":
		return None, nil
	default:
		return None, fmt.Errorf("unknown direction %q", s)
	}
}

// BallColor identifies which dispenser a ball came from.
type BallColor uint8

const (
	Blue BallColor = iota
	Red
)

// String returns the string representation of a ball color.
func (c BallColor) String() string {
	if c == Red {
		return "Red"
	}
	return "Blue"
}

// Color maps the ball color to a screen color.
func (c BallColor) Color() core.Color {
	if c == Red {
		return core.ColorBrightRed
	}
	return core.ColorBrightBlue
}

// ParseBallColor parses "blue" or "red" (case-insensitive).
func ParseBallColor(s string) (BallColor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "blue", "b":
		return Blue, nil
	case "red", "r":
		return Red, nil
	default:
		return Blue, fmt.Errorf("unknown ball color %q", s)
	}
}

// Ball is the single ball in flight on the board.
type Ball struct {
	Position  core.Point
	Direction Direction // Side the ball enters its current peg from
	Color     BallColor
}

// Drop moves the ball one row down towards out. The ball enters the next peg
// from the side opposite to the one it left through.
func (b *Ball) Drop(out Direction) {
	b.Position.X += int(out)
	b.Position.Y++
	b.Direction = out.Opposite()
}

// Fall moves the ball straight down one row without changing its direction.
func (b *Ball) Fall() {
	b.Position.Y++
}

// IsAtBottom reports whether the ball has left the funnel of a board with the
// given size. The centre column has one extra row before the exit.
func (b *Ball) IsAtBottom(size Size) bool {
	p := b.Position
	return (p.X != 0 && p.Y >= size.H-1) || (p.X == 0 && p.Y >= size.H)
}
