// Package pegboard provides the interactive pachinko board for the terminal.
// It adapts the board simulation to the platform's fixed-tick game loop.
package pegboard

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/vovakirdan/pegboard/internal/config"
	"github.com/vovakirdan/pegboard/internal/core"
	"github.com/vovakirdan/pegboard/internal/pachinko"
	"github.com/vovakirdan/pegboard/internal/pachinko/layouts"
)

// GameID identifies the board in score storage.
const GameID = "pachinko"

// Game implements the interactive pegboard.
type Game struct {
	board  *pachinko.Board
	layout layouts.Layout
	cfg    config.PachinkoConfig
	speed  *config.SpeedController

	// Screen dimensions
	screenW  int
	screenH  int
	step     time.Duration // Board time per tick
	tooSmall bool

	// Editing state
	cursor  core.Point
	palette int // Index into pachinko.Kinds

	// Status
	score    int
	message  string
	lastRun  pachinko.RunSummary
	finished bool
}

// Package-level variables for configuration
var (
	configPath     string
	layoutsDir     string
	selectedLayout string
	speedPreset    config.SpeedPreset
)

// SetConfigPath sets the config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetLayoutsDir overrides the configured directory of layout files.
func SetLayoutsDir(dir string) {
	layoutsDir = dir
}

// SetSpeedPreset overrides the configured animation speed. An empty or
// unknown preset keeps the config value.
func SetSpeedPreset(preset config.SpeedPreset) {
	speedPreset = preset
}

// SetLayout selects the layout to play, either a layout ID or a path to a
// layout file.
func SetLayout(idOrPath string) {
	selectedLayout = idOrPath
}

// New creates a new pegboard game.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Pachinko"
}

// Board exposes the underlying board.
func (g *Game) Board() *pachinko.Board {
	return g.board
}

// Layout returns the layout the board was built from.
func (g *Game) Layout() layouts.Layout {
	return g.layout
}

// Reset builds the board on first use and afterwards only returns the balls
// to the dispenser, keeping the pieces the player placed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.step = cfg.Step()

	if g.board == nil {
		g.load()
	} else {
		g.board.Reset()
	}

	g.score = 0
	g.finished = false
	g.tooSmall = g.scale() < 1
}

// Resize adapts the drawing area without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = g.scale() < 1
}

// load reads the configuration and layout and builds the board.
func (g *Game) load() {
	cfg, err := config.LoadPachinko(configPath)
	if err != nil {
		g.message = err.Error()
		cfg = config.DefaultPachinkoConfig()
	}
	config.ApplySpeedPreset(&cfg, speedPreset)
	g.cfg = cfg
	g.speed = config.NewSpeedController(cfg.Animation, cfg.EffectiveSpeed())

	lay, err := g.resolveLayout()
	if err != nil {
		g.message = err.Error()
		lay = g.fallbackLayout()
	}
	g.layout = lay

	board, _, err := lay.NewBoard(pachinko.WithAnimationSpeed(g.speed.Speed()))
	if err != nil {
		g.message = err.Error()
		fallback := g.fallbackLayout()
		g.layout = fallback
		board, _, _ = fallback.NewBoard(pachinko.WithAnimationSpeed(g.speed.Speed()))
	}
	g.board = board
	g.cursor = g.firstSlot()
}

// resolveLayout finds the selected layout, or the configured default.
func (g *Game) resolveLayout() (layouts.Layout, error) {
	sel := selectedLayout
	if sel == "" {
		sel = g.cfg.Layouts.Default
	}
	if sel == "" {
		return g.fallbackLayout(), nil
	}

	ext := strings.ToLower(filepath.Ext(sel))
	if ext == ".yaml" || ext == ".yml" {
		return layouts.LoadPath(config.ExpandHome(sel))
	}
	dir := layoutsDir
	if dir == "" {
		dir = g.cfg.Layouts.Dir
	}
	return layouts.Find(config.ExpandHome(dir), sel)
}

// fallbackLayout is an empty board using the configured board section.
func (g *Game) fallbackLayout() layouts.Layout {
	bc, err := g.cfg.ToBoardConfiguration()
	if err != nil {
		bc = pachinko.DefaultConfiguration()
	}
	return layouts.Layout{ID: "custom", Name: "Custom", Config: bc}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var events []string

	g.handleInput(in)

	if !g.finished {
		res := g.board.Advance(g.step)
		if res.Collected != nil {
			g.score++
			events = append(events, fmt.Sprintf("collected %s ball at %v", res.Collected.Color, res.Collected.Position))
		}
		if res.Halted != pachinko.HaltNone {
			g.finished = true
			g.lastRun = pachinko.Summarize(g.board)
			events = append(events, fmt.Sprintf("board halted: %s after %d hops", res.Halted, g.board.Hops()))
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// handleInput maps platform actions to board operations. A message lasts
// until the next action.
func (g *Game) handleInput(in core.InputFrame) {
	if in.Empty() {
		return
	}
	g.message = ""

	if in.Has(core.ActionRestart) {
		g.board.Reset()
		g.score = 0
		g.finished = false
		return
	}

	if in.Has(core.ActionToggleRun) {
		if g.board.Running() {
			g.board.Stop()
		} else {
			g.board.Start()
			if g.board.HaltReason() == pachinko.HaltExhausted {
				// No ball of the starting color left to dispense
				g.finished = true
				g.lastRun = pachinko.Summarize(g.board)
			} else {
				g.finished = false
			}
		}
	}

	switch {
	case in.Has(core.ActionUp):
		g.moveCursorRow(-1)
	case in.Has(core.ActionDown):
		g.moveCursorRow(1)
	case in.Has(core.ActionLeft):
		g.moveCursorColumn(-1)
	case in.Has(core.ActionRight):
		g.moveCursorColumn(1)
	}

	if in.Has(core.ActionNextPiece) {
		g.palette = (g.palette + 1) % len(pachinko.Kinds)
	}
	if in.Has(core.ActionPlace) {
		g.placeAtCursor()
	}
	if in.Has(core.ActionRemove) {
		g.board.RemovePiece(g.board.PieceAt(g.cursor.Vec()))
	}
	if in.Has(core.ActionFlip) {
		g.board.FlipPieceAt(g.cursor.Vec())
	}
	if in.Has(core.ActionClear) {
		g.board.Clear()
	}
	if in.Has(core.ActionFaster) {
		g.board.SetAnimationSpeed(g.speed.Faster())
	}
	if in.Has(core.ActionSlower) {
		g.board.SetAnimationSpeed(g.speed.Slower())
	}

	if in.Clicked {
		g.handleClick(in.Click)
	}
}

// placeAtCursor puts a piece of the selected kind on the cursor slot.
func (g *Game) placeAtCursor() {
	kind := g.SelectedKind()
	if cur := g.board.PieceAt(g.cursor.Vec()); cur != nil && cur.Kind() == kind {
		return
	}
	if !g.board.PlacePiece(pachinko.NewPiece(kind), g.cursor.Vec()) {
		g.message = fmt.Sprintf("cannot place at %v", g.cursor)
	}
}

// handleClick moves the cursor to the clicked slot. Clicking an empty slot
// places the selected piece, clicking a piece flips it.
func (g *Game) handleClick(cell core.Point) {
	pos := g.screenToBoard(cell)
	slot, ok := g.board.FindNearestPieceSlot(pos)
	if !ok {
		return
	}
	g.cursor = slot
	if !g.board.FlipPieceAt(slot.Vec()) {
		g.placeAtCursor()
	}
}

// SelectedKind returns the piece kind placed by the next place action.
func (g *Game) SelectedKind() pachinko.Kind {
	return pachinko.Kinds[g.palette]
}

// Cursor returns the slot under the editing cursor.
func (g *Game) Cursor() core.Point {
	return g.cursor
}

// LastRun reports the most recent finished run.
func (g *Game) LastRun() (layoutID string, sum pachinko.RunSummary, ok bool) {
	if !g.finished {
		return "", pachinko.RunSummary{}, false
	}
	return g.layout.ID, g.lastRun, true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.board != nil && g.board.State() == pachinko.StateHalted,
		Paused:   g.board != nil && g.board.State() == pachinko.StateStopped,
	}
}

// isSlot reports whether p is a piece slot on the current board.
func (g *Game) isSlot(p core.Point) bool {
	peg, ok := g.board.PegAt(p)
	return ok && peg.PieceSlot
}

// firstSlot returns the top-most slot closest to the centre.
func (g *Game) firstSlot() core.Point {
	best, found := core.Point{}, false
	for _, peg := range g.board.Pegs() {
		if !peg.PieceSlot {
			continue
		}
		p := peg.Position
		if !found || p.Y < best.Y || (p.Y == best.Y && core.Abs(p.X) < core.Abs(best.X)) {
			best, found = p, true
		}
	}
	return best
}

// moveCursorColumn moves to the next slot on the same row.
func (g *Game) moveCursorColumn(dir int) {
	hw := g.board.Size().HalfWidth()
	for x := g.cursor.X + 2*dir; x >= -hw && x <= hw; x += 2 * dir {
		if p := core.P(x, g.cursor.Y); g.isSlot(p) {
			g.cursor = p
			return
		}
	}
}

// moveCursorRow moves to the nearest slot on the next row that has one.
func (g *Game) moveCursorRow(dir int) {
	size := g.board.Size()
	for y := g.cursor.Y + dir; y >= 0 && y < size.H; y += dir {
		for d := 0; d <= size.W; d++ {
			for _, x := range []int{g.cursor.X - d, g.cursor.X + d} {
				if p := core.P(x, y); g.isSlot(p) {
					g.cursor = p
					return
				}
			}
		}
	}
}
