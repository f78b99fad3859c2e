package pachinko

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/pegboard/internal/core"
)

// Kind identifies a piece variant.
type Kind uint8

const (
	KindPath Kind = iota
	KindCross
	KindBit
	KindTerminal
)

// Kinds lists every piece kind in palette order.
var Kinds = []Kind{KindPath, KindCross, KindBit, KindTerminal}

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	switch k {
	case KindPath:
		return "Path"
	case KindCross:
		return "Cross"
	case KindBit:
		return "Bit"
	case KindTerminal:
		return "Terminal"
	default:
		return "Unknown"
	}
}

// Symmetric reports whether the kind routes balls independently of
// orientation. Symmetric pieces always have orientation None.
func (k Kind) Symmetric() bool {
	return k == KindCross || k == KindTerminal
}

// Glyph returns the character used to draw the kind on the character screen.
func (k Kind) Glyph() rune {
	switch k {
	case KindPath:
		return '/'
	case KindCross:
		return 'X'
	case KindBit:
		return 'b'
	case KindTerminal:
		return 'T'
	default:
		return '?'
	}
}

// ParseKind parses a piece kind name (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "path":
		return KindPath, nil
	case "cross":
		return KindCross, nil
	case "bit":
		return KindBit, nil
	case "terminal":
		return KindTerminal, nil
	default:
		return 0, fmt.Errorf("unknown piece kind %q", s)
	}
}

// PieceID identifies a piece inside a board's piece store. Zero means no piece.
type PieceID uint32

// Piece is a board component that redirects a ball passing through its peg.
// Variants are selected by Kind; Path and Bit depend on orientation.
type Piece struct {
	kind        Kind
	orientation Direction
	position    core.Point

	id   PieceID
	slot int // Index of the owning peg, -1 when detached
}

// NewPiece creates a detached piece of the given kind.
func NewPiece(kind Kind) *Piece {
	p := &Piece{kind: kind, slot: -1}
	if !kind.Symmetric() {
		p.orientation = Right
	}
	return p
}

// Kind returns the variant of the piece.
func (p *Piece) Kind() Kind { return p.kind }

// Orientation returns the current lean of the piece.
func (p *Piece) Orientation() Direction { return p.orientation }

// SetOrientation sets the lean of an asymmetric piece. Symmetric pieces
// ignore it.
func (p *Piece) SetOrientation(d Direction) {
	if p.kind.Symmetric() || d == None {
		return
	}
	p.orientation = d
}

// Position returns the board position of the piece. Detached pieces report
// the origin.
func (p *Piece) Position() core.Point { return p.position }

// Attached reports whether the piece currently sits on a peg.
func (p *Piece) Attached() bool { return p.slot >= 0 }

// Operate consumes the side the ball entered from and returns the side it
// leaves through. None means the ball is held.
func (p *Piece) Operate(input Direction) Direction {
	switch p.kind {
	case KindPath:
		return p.orientation.Opposite()
	case KindCross:
		return input.Opposite()
	case KindBit:
		out := p.orientation.Opposite()
		p.FlipOrientation()
		return out
	default:
		return None
	}
}

// FlipOrientation mirrors the piece. Symmetric pieces keep None.
func (p *Piece) FlipOrientation() {
	p.orientation = p.orientation.Opposite()
}

// Animate returns the ball position in piece-local coordinates, within
// [-0.5, 0.5] on both axes, at fraction t of the way through the piece.
func (p *Piece) Animate(t float64, input Direction) core.Vec {
	if input == None {
		return core.Vec{}
	}
	return p.BallPath(input).PointAt(t)
}

// BallPath returns the trajectory of a ball entering from input, given the
// current orientation. It ends at the corner Operate will send the ball to.
func (p *Piece) BallPath(input Direction) *Curve {
	if input == None {
		return NewCurve(core.Vec{})
	}
	var c *Curve
	switch p.kind {
	case KindPath:
		if input == p.orientation {
			c = NewCurve(core.V(-.5, -.5)).LineTo(.5, .5)
		} else {
			c = NewCurve(core.V(-.5, -.5)).QuadTo(-.25, -.45, 0, 0).LineTo(-.5, .5)
		}
	case KindBit:
		if input == p.orientation {
			c = NewCurve(core.V(-.5, -.5)).
				QuadTo(-.35, -.5, -.2, -.4).
				LineTo(0, -.4).
				QuadTo(.25, -.35, .25, 0).
				LineTo(.5, .5)
		} else {
			c = NewCurve(core.V(-.5, -.5)).QuadTo(-.25, -.45, -.1, 0).LineTo(-.5, .5)
		}
	case KindCross:
		c = NewCurve(core.V(-.5, -.5)).
			LineTo(-.15, -.3).
			LineTo(-.3, 0).
			LineTo(0, .4).
			LineTo(.4, .4).
			LineTo(.5, .5)
	case KindTerminal:
		c = NewCurve(core.V(-.5, -.5)).QuadTo(-.25, -.45, 0, 0).LineTo(.4, 0).LineTo(0, 0)
	default:
		return FallPath(input)
	}
	if input == Right {
		c = c.MirrorX()
	}
	return c
}

// FallPath is the trajectory of a ball crossing a peg without a piece.
func FallPath(input Direction) *Curve {
	x := float64(input) * .5
	return NewCurve(core.V(x, -.5)).LineTo(x, .5)
}

// Rotation returns the rotation in radians applied to the piece's shape at
// fraction t of an animation. Only Bit pieces turn, by a quarter turn eased
// around the midpoint.
func (p *Piece) Rotation(t float64) float64 {
	if p.kind != KindBit {
		return 0
	}
	ease := 0.5 + 0.5*math.Tanh(10*(t-0.5))
	return -float64(p.orientation) * ease * 0.5 * math.Pi
}

// Color returns the stroke color of the piece.
func (p *Piece) Color() core.Color {
	switch p.kind {
	case KindPath:
		return core.ColorGreen
	case KindCross:
		return core.ColorOrange
	case KindBit:
		return core.ColorBlue
	default:
		return core.ColorDefault
	}
}

// LineWidth returns the stroke width of the piece's shape in board units.
func (p *Piece) LineWidth() float64 {
	if p.kind == KindCross {
		return 0.1
	}
	return 0.15
}

// ShapePath returns the piece outline as SVG path data in a unit square.
// Asymmetric pieces are drawn leaning right; renderers mirror the path for
// a left orientation.
func (p *Piece) ShapePath() string {
	switch p.kind {
	case KindPath:
		return "M 1 0.25 L 0.25 1"
	case KindBit:
		return "M 0.8 0.2 L 0.375 0.62 L 0.75 1 M 0.375 0.625 L 0 0.25 M 0.8 0.2 v 0.3 M 0.8 0.2 h -0.3"
	case KindCross:
		return "M 0.50 0.10 L 0.50 0.45 L 0.65 0.55 M 0.50 0.45 L 0.35 0.55 " +
			"M 0.10 0.20 L 0.00 0.55 L 0.15 0.70 M 0.90 0.20 L 1.00 0.55 L 0.85 0.70 " +
			"M 0.20 1.00 L 0.80 1.00"
	case KindTerminal:
		return "M 0.15 0.35 A 0.25 0.35 0 0 0 0 0.65 H 1 A 0.25 0.35 0 0 0 0.85 0.35"
	default:
		return ""
	}
}

// Glyph returns the character drawn for the piece, taking its lean into
// account.
func (p *Piece) Glyph() rune {
	switch p.kind {
	case KindPath:
		if p.orientation == Left {
			return '\\'
		}
		return '/'
	case KindBit:
		if p.orientation == Left {
			return 'd'
		}
		return 'b'
	default:
		return p.kind.Glyph()
	}
}

// detach clears the piece's link to a peg.
func (p *Piece) detach() {
	p.slot = -1
	p.position = core.Point{}
}
