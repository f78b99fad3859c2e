package pachinko

import (
	"github.com/vovakirdan/pegboard/internal/core"
)

// Peg is a fixed grid point. Only valid piece slots can hold a piece.
type Peg struct {
	Position  core.Point
	Valid     bool
	PieceSlot bool
	piece     PieceID
}

// HasPiece reports whether a piece is attached to the peg.
func (p Peg) HasPiece() bool { return p.piece != 0 }

// buildGrid recomputes every peg from the configuration. Attached pieces
// are dropped from the pegs but kept in the piece store.
func (b *Board) buildGrid() {
	hw := b.cfg.Size.HalfWidth()
	h := b.cfg.Size.H
	b.pegs = make([]Peg, 0, b.cfg.Size.W*h)
	for y := 0; y < h; y++ {
		for x := -hw; x <= hw; x++ {
			pos := core.P(x, y)
			valid := b.IsValidPosition(pos)
			b.pegs = append(b.pegs, Peg{
				Position:  pos,
				Valid:     valid,
				PieceSlot: valid && b.IsPieceSlot(pos),
			})
		}
	}
}

// index maps a position to its slot in the peg grid.
func (b *Board) index(p core.Point) (int, bool) {
	hw := b.cfg.Size.HalfWidth()
	if p.X < -hw || p.X > hw || p.Y < 0 || p.Y >= b.cfg.Size.H {
		return 0, false
	}
	return p.Y*b.cfg.Size.W + p.X + hw, true
}

// IsValidPosition reports whether p lies inside the funnel reachable from the
// entry point. The second to last row only admits the centre column.
func (b *Board) IsValidPosition(p core.Point) bool {
	hw := b.cfg.Size.HalfWidth()
	h := b.cfg.Size.H
	if p.X < -hw || p.X > hw || p.Y < 0 || p.Y > h {
		return false
	}
	if p.Y == h-1 && p.X != 0 {
		return false
	}
	ax := core.Abs(p.X)
	y1 := -ax + b.cfg.EntryPoint - 2
	y2 := ax - b.cfg.EntryPoint - 2
	return p.Y > y1 && p.Y > y2
}

// IsPieceSlot reports whether p is on the checkerboard of slots. Slot parity
// alternates by row and depends on the board height.
func (b *Board) IsPieceSlot(p core.Point) bool {
	parity := b.cfg.Size.H % 2
	odd := core.Abs(p.X%2) == 1
	if core.Abs(p.Y%2) != parity {
		return !odd
	}
	return odd
}

// FindNearestPieceSlot rounds an approximate board position to a piece slot,
// snapping x to the column parity of the rounded row.
func (b *Board) FindNearestPieceSlot(v core.Vec) (core.Point, bool) {
	y := core.RoundHalfUp(v.Y)
	parityDiff := core.Abs((b.cfg.Size.H-1)%2 - y%2)
	x := core.RoundHalfUp(0.5*(v.X-float64(parityDiff)))*2 + parityDiff
	p := core.P(x, y)
	if _, ok := b.index(p); !ok {
		return p, false
	}
	if !b.IsValidPosition(p) || !b.IsPieceSlot(p) {
		return p, false
	}
	return p, true
}

// Pegs returns a copy of the peg grid in row-major order.
func (b *Board) Pegs() []Peg {
	out := make([]Peg, len(b.pegs))
	copy(out, b.pegs)
	return out
}

// PegAt returns the peg at an exact position.
func (b *Board) PegAt(p core.Point) (Peg, bool) {
	idx, ok := b.index(p)
	if !ok {
		return Peg{}, false
	}
	return b.pegs[idx], true
}

// PlacePiece attaches piece to the slot nearest pos. A piece already on that
// slot is detached, and a piece already on the board is moved. It returns
// false and leaves the piece untouched when no slot is near pos.
func (b *Board) PlacePiece(piece *Piece, pos core.Vec) bool {
	if piece == nil {
		return false
	}
	slot, ok := b.FindNearestPieceSlot(pos)
	if !ok {
		return false
	}
	idx, _ := b.index(slot)

	if cur := b.pieceOn(slot); cur == piece {
		return true
	} else if cur != nil {
		b.RemovePiece(cur)
	}
	b.RemovePiece(piece)

	b.nextID++
	piece.id = b.nextID
	b.pieces[piece.id] = piece
	b.pegs[idx].piece = piece.id
	piece.slot = idx
	piece.position = slot
	b.releaseBall()
	return true
}

// RemovePiece detaches piece from the board. Pieces that are not attached
// are ignored. Removing the terminal that holds the ball releases it.
func (b *Board) RemovePiece(piece *Piece) {
	if piece == nil || !piece.Attached() || b.pieces[piece.id] != piece {
		return
	}
	if piece.slot < len(b.pegs) && b.pegs[piece.slot].piece == piece.id {
		b.pegs[piece.slot].piece = 0
	}
	delete(b.pieces, piece.id)
	piece.detach()
	b.releaseBall()
}

// PieceAt returns the piece on the slot nearest pos, or nil.
func (b *Board) PieceAt(pos core.Vec) *Piece {
	slot, ok := b.FindNearestPieceSlot(pos)
	if !ok {
		return nil
	}
	return b.pieceOn(slot)
}

// FlipPieceAt flips the piece on the slot nearest pos. It returns false when
// there is no piece there.
func (b *Board) FlipPieceAt(pos core.Vec) bool {
	p := b.PieceAt(pos)
	if p == nil {
		return false
	}
	p.FlipOrientation()
	return true
}

// Pieces returns the attached pieces ordered by placement.
func (b *Board) Pieces() []*Piece {
	return b.sortedPieces()
}

// PieceCount returns the number of attached pieces.
func (b *Board) PieceCount() int {
	return len(b.pieces)
}

// pieceOn returns the piece attached at an exact position.
func (b *Board) pieceOn(p core.Point) *Piece {
	idx, ok := b.index(p)
	if !ok || b.pegs[idx].piece == 0 {
		return nil
	}
	return b.pieces[b.pegs[idx].piece]
}
