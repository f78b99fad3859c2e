package pegboard

import (
	"fmt"

	"github.com/vovakirdan/pegboard/internal/core"
	"github.com/vovakirdan/pegboard/internal/pachinko"
)

// Layout of the character screen around the board.
const (
	hudHeight    = 2
	footerHeight = 1
	cellAspect   = 2 // Terminal cells are about twice as tall as wide
)

// screenPadding is the board mapping padding in canvas units, where one
// canvas unit is one row or two columns.
var screenPadding = pachinko.Padding{Top: hudHeight + 1, Left: 1, Bottom: footerHeight + 1, Right: 1}

// canvas returns the screen as a square-celled canvas.
func (g *Game) canvas() pachinko.CanvasSize {
	return pachinko.CanvasSize{W: float64(g.screenW) / cellAspect, H: float64(g.screenH)}
}

// scale returns canvas units per board unit. Below 1 pegs would overlap.
func (g *Game) scale() float64 {
	if g.board == nil {
		return 0
	}
	return pachinko.Scale(g.board.Size(), g.canvas(), screenPadding)
}

// boardToScreen maps a board point to a screen cell.
func (g *Game) boardToScreen(p core.Vec) core.Point {
	c := pachinko.BoardToCanvas(p, g.board.Size(), g.canvas(), screenPadding)
	return core.P(core.RoundHalfUp(c.X*cellAspect), core.RoundHalfUp(c.Y))
}

// screenToBoard maps a screen cell to a board point.
func (g *Game) screenToBoard(cell core.Point) core.Vec {
	c := core.V(float64(cell.X)/cellAspect, float64(cell.Y))
	return pachinko.CanvasToBoard(c, g.board.Size(), g.canvas(), screenPadding)
}

// Render draws the board, its pieces, the ball and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.board == nil {
		return
	}
	if g.tooSmall {
		dst.DrawTextCentered(g.screenH/2, "Screen too small")
		return
	}

	snap := g.board.Snapshot()
	g.renderHUD(dst, snap)
	g.renderDispenser(dst, snap)
	g.renderPegs(dst, snap)
	g.renderCursor(dst)
	g.renderBall(dst, snap)
	g.renderCollector(dst, snap)
	g.renderFooter(dst, snap)
}

func (g *Game) renderHUD(dst *core.Screen, snap pachinko.Snapshot) {
	title := g.layout.Name
	if title == "" {
		title = g.layout.ID
	}
	dst.DrawTextColored(1, 0, "PACHINKO", core.ColorBrightYellow)
	dst.DrawText(10, 0, fmt.Sprintf("%s  |  %s  |  %.1f hops/s", title, snap.State, snap.Speed))

	kind := g.SelectedKind()
	dst.DrawText(1, 1, "Piece: ")
	dst.DrawTextColored(8, 1, kind.String(), pachinko.NewPiece(kind).Color())
	blue, red := g.board.Collector().Counts()
	dst.DrawText(18, 1, fmt.Sprintf("Collected: %d (blue %d, red %d)  Hops: %d", len(snap.Collected), blue, red, snap.Hops))
}

func (g *Game) renderDispenser(dst *core.Screen, snap pachinko.Snapshot) {
	e := float64(snap.EntryPoint)
	blue := g.boardToScreen(core.V(-e, -pachinko.DispenserHeight))
	red := g.boardToScreen(core.V(e, -pachinko.DispenserHeight))

	drawStack(dst, blue.X, blue.Y, -1, min(snap.BlueRemaining, pachinko.DispenserMaxShown), core.ColorBrightBlue)
	drawStack(dst, red.X, red.Y, 1, min(snap.RedRemaining, pachinko.DispenserMaxShown), core.ColorBrightRed)
}

// drawStack draws n balls in a row growing away from x in direction dir.
func drawStack(dst *core.Screen, x, y, dir, n int, c core.Color) {
	for i := range n {
		dst.SetColored(x+dir*i, y, '●', c)
	}
}

func (g *Game) renderPegs(dst *core.Screen, snap pachinko.Snapshot) {
	for _, peg := range snap.Pegs {
		if !peg.Valid {
			continue
		}
		cell := g.boardToScreen(peg.Position.Vec())
		if peg.PieceSlot {
			dst.SetColored(cell.X, cell.Y, '∘', core.ColorGray)
		} else {
			dst.SetColored(cell.X, cell.Y, '·', core.ColorSlate)
		}
	}
	for _, p := range snap.Pieces {
		cell := g.boardToScreen(p.Position.Vec())
		dst.SetColored(cell.X, cell.Y, p.Glyph, p.Color)
	}
}

func (g *Game) renderCursor(dst *core.Screen) {
	cell := g.boardToScreen(g.cursor.Vec())
	dst.SetColored(cell.X-1, cell.Y, '[', core.ColorWhite)
	dst.SetColored(cell.X+1, cell.Y, ']', core.ColorWhite)
}

func (g *Game) renderBall(dst *core.Screen, snap pachinko.Snapshot) {
	if !snap.HasBall {
		return
	}
	cell := g.boardToScreen(snap.BallDrawPos)
	dst.SetColored(cell.X, cell.Y, '●', snap.Ball.Color.Color())
}

func (g *Game) renderCollector(dst *core.Screen, snap pachinko.Snapshot) {
	h := float64(snap.Size.H)
	left := g.boardToScreen(core.V(-float64(snap.Size.HalfWidth()), h+pachinko.CollectorHeight/2))

	shown := snap.Collected
	if len(shown) > pachinko.CollectorMaxShown {
		shown = shown[len(shown)-pachinko.CollectorMaxShown:]
	}
	for i, c := range shown {
		dst.SetColored(left.X+i, left.Y, '●', c.Color())
	}
}

func (g *Game) renderFooter(dst *core.Screen, snap pachinko.Snapshot) {
	y := g.screenH - 1
	switch {
	case g.message != "":
		dst.DrawTextColored(1, y, g.message, core.ColorBrightYellow)
	case snap.Halt == pachinko.HaltTerminal:
		dst.DrawTextColored(1, y, "Ball trapped by a terminal. Space to resume, R to reset", core.ColorBrightRed)
	case snap.Halt == pachinko.HaltExhausted:
		dst.DrawTextColored(1, y, "Dispenser empty. R to reset", core.ColorGreen)
	default:
		dst.DrawTextColored(1, y, "Space run  Enter place  X remove  F flip  Tab piece  C clear  R reset  +/- speed  Q quit", core.ColorGray)
	}
}
