package pachinko

import "github.com/vovakirdan/pegboard/internal/core"

// Snapshot is the render data for one frame. It shares no memory with the
// board.
type Snapshot struct {
	Size     Size
	State    State
	Halt     HaltReason
	Progress float64 // Fraction of the current hop, 0..1
	Speed    float64
	Hops     int

	Pegs   []Peg
	Pieces []PieceView

	HasBall     bool
	Ball        Ball
	BallDrawPos core.Vec // Animated ball position in board units

	BlueRemaining int
	RedRemaining  int
	EntryPoint    int

	Collected []BallColor
}

// PieceView describes how to draw an attached piece.
type PieceView struct {
	Kind        Kind
	Orientation Direction
	Position    core.Point
	Color       core.Color
	ColorName   string
	LineWidth   float64
	ShapePath   string
	Rotation    float64 // Radians, non-zero only while a Bit is animating
	Glyph       rune
}

// Snapshot returns the current render data.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Size:          b.cfg.Size,
		State:         b.State(),
		Halt:          b.halt,
		Progress:      b.Progress(),
		Speed:         b.speed,
		Hops:          b.hops,
		Pegs:          b.Pegs(),
		BlueRemaining: b.dispenser.Remaining(Blue),
		RedRemaining:  b.dispenser.Remaining(Red),
		EntryPoint:    b.dispenser.EntryPoint(),
		Collected:     b.collector.Colors(),
	}

	var active *Piece
	if b.ball != nil {
		s.HasBall = true
		s.Ball = *b.ball
		s.BallDrawPos = b.BallDrawPosition()
		active = b.pieceOn(b.ball.Position)
	}

	for _, p := range b.sortedPieces() {
		v := PieceView{
			Kind:        p.kind,
			Orientation: p.orientation,
			Position:    p.position,
			Color:       p.Color(),
			ColorName:   p.Color().String(),
			LineWidth:   p.LineWidth(),
			ShapePath:   p.ShapePath(),
			Glyph:       p.Glyph(),
		}
		if p == active {
			v.Rotation = p.Rotation(s.Progress)
		}
		s.Pieces = append(s.Pieces, v)
	}
	return s
}

// BallDrawPosition returns where the ball in flight should be drawn, in board
// units, following the trajectory through the piece on its peg.
func (b *Board) BallDrawPosition() core.Vec {
	if b.ball == nil {
		return core.Vec{}
	}
	t := b.Progress()
	var local core.Vec
	if p := b.pieceOn(b.ball.Position); p != nil {
		local = p.Animate(t, b.ball.Direction)
	} else {
		local = FallPath(b.ball.Direction).PointAt(t)
	}
	return b.ball.Position.Vec().Add(local)
}
