package pachinko

import "github.com/vovakirdan/pegboard/internal/core"

// Padding is the canvas margin around the board, in canvas units.
type Padding struct {
	Top, Left, Bottom, Right float64
}

// DefaultPadding returns the margins used by the drawing surface.
func DefaultPadding() Padding {
	return Padding{Top: 64, Left: 25, Bottom: 64, Right: 25}
}

// CanvasSize is the extent of a drawing surface.
type CanvasSize struct {
	W, H float64
}

// Scale returns the number of canvas units per board unit for a board of the
// given size. The board keeps its aspect ratio, with room for the dispenser
// above it and the collector below.
func Scale(size Size, canvas CanvasSize, pad Padding) float64 {
	xScale := (canvas.W - pad.Left - pad.Right) / float64(size.W)
	yScale := (canvas.H - pad.Top - pad.Bottom) / (float64(size.H) + DispenserHeight + CollectorHeight)
	return min(xScale, yScale)
}

// CanvasToBoard converts a canvas point to board coordinates.
func CanvasToBoard(p core.Vec, size Size, canvas CanvasSize, pad Padding) core.Vec {
	s := Scale(size, canvas, pad)
	return core.Vec{
		X: (p.X - 0.5*canvas.W) / s,
		Y: (p.Y-pad.Top)/s - 1,
	}
}

// BoardToCanvas converts a board point to canvas coordinates. It is the
// inverse of CanvasToBoard.
func BoardToCanvas(p core.Vec, size Size, canvas CanvasSize, pad Padding) core.Vec {
	s := Scale(size, canvas, pad)
	return core.Vec{
		X: s*p.X + 0.5*canvas.W,
		Y: (p.Y+1)*s + pad.Top,
	}
}

// CanvasToBoard converts a canvas point using the board's size and padding.
func (b *Board) CanvasToBoard(p core.Vec, canvas CanvasSize) core.Vec {
	return CanvasToBoard(p, b.cfg.Size, canvas, b.padding)
}

// BoardToCanvas converts a board point using the board's size and padding.
func (b *Board) BoardToCanvas(p core.Vec, canvas CanvasSize) core.Vec {
	return BoardToCanvas(p, b.cfg.Size, canvas, b.padding)
}

// Padding returns the canvas padding used by the board's mapping.
func (b *Board) Padding() Padding { return b.padding }
