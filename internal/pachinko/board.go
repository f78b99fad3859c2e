package pachinko

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/pegboard/internal/core"
)

// DefaultAnimationSpeed is the number of peg hops per second.
const DefaultAnimationSpeed = 4.0

// ErrInvalidConfiguration is returned when a board configuration is rejected.
var ErrInvalidConfiguration = errors.New("invalid board configuration")

// Size is the board extent in pegs. W must be odd.
type Size struct {
	W, H int
}

// HalfWidth returns the number of peg columns on each side of the centre.
func (s Size) HalfWidth() int {
	return (s.W - 1) / 2
}

// Configuration describes a board's dimensions and ball supply.
type Configuration struct {
	Size          Size
	StartingColor BallColor
	NumBlueBalls  int
	NumRedBalls   int
	EntryPoint    int
}

// DefaultConfiguration returns an 11x11 board with eight balls of each color.
func DefaultConfiguration() Configuration {
	return Configuration{
		Size:          Size{W: 11, H: 11},
		StartingColor: Blue,
		NumBlueBalls:  8,
		NumRedBalls:   8,
		EntryPoint:    2,
	}
}

// Validate checks the configuration. Errors wrap ErrInvalidConfiguration.
func (c Configuration) Validate() error {
	switch {
	case c.Size.W < 1 || c.Size.W%2 == 0:
		return fmt.Errorf("%w: width %d must be odd and positive", ErrInvalidConfiguration, c.Size.W)
	case c.Size.H < 1:
		return fmt.Errorf("%w: height %d must be at least 1", ErrInvalidConfiguration, c.Size.H)
	case c.NumBlueBalls < 0 || c.NumRedBalls < 0:
		return fmt.Errorf("%w: ball counts must not be negative", ErrInvalidConfiguration)
	case c.EntryPoint < 0 || c.EntryPoint > c.Size.HalfWidth():
		return fmt.Errorf("%w: entry point %d outside [0, %d]", ErrInvalidConfiguration, c.EntryPoint, c.Size.HalfWidth())
	case c.StartingColor != Blue && c.StartingColor != Red:
		return fmt.Errorf("%w: unknown starting color %d", ErrInvalidConfiguration, c.StartingColor)
	}
	return nil
}

// State is the coarse state of the board's simulation.
type State uint8

const (
	StateIdle    State = iota // No ball, not running
	StateRunning              // Ball in flight and animating
	StateStopped              // Ball in flight, paused
	StateHalted               // Held by a terminal or out of balls
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	case StateHalted:
		return "Halted"
	default:
		return "Idle"
	}
}

// HaltReason explains why the board stopped on its own.
type HaltReason uint8

const (
	HaltNone      HaltReason = iota
	HaltExhausted            // Dispenser had no ball of the requested color
	HaltTerminal             // A piece held the ball
)

// String returns the string representation of a halt reason.
func (r HaltReason) String() string {
	switch r {
	case HaltExhausted:
		return "exhausted"
	case HaltTerminal:
		return "terminal"
	default:
		return "none"
	}
}

// StepResult reports what happened during one Advance or Tick call.
type StepResult struct {
	Hopped    bool       // The ball moved to the next row
	Collected *Ball      // Ball that reached the collector
	Dispensed *Ball      // Replacement ball taken from the dispenser
	Halted    HaltReason // Set when the board halted during this call
}

// Option configures a Board.
type Option func(*Board)

// WithClock replaces the wall clock used by Tick.
func WithClock(clock func() time.Time) Option {
	return func(b *Board) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithPadding sets the canvas padding used by the coordinate mapping.
func WithPadding(p Padding) Option {
	return func(b *Board) {
		b.padding = p
	}
}

// WithAnimationSpeed sets the initial number of hops per second.
func WithAnimationSpeed(speed float64) Option {
	return func(b *Board) {
		b.SetAnimationSpeed(speed)
	}
}

// Board owns the peg grid, the pieces placed on it, the dispenser, the
// collector and the single ball in flight.
type Board struct {
	cfg       Configuration
	pegs      []Peg
	pieces    map[PieceID]*Piece
	nextID    PieceID
	dispenser *Dispenser
	collector Collector

	ball    *Ball
	running bool
	halt    HaltReason
	hops    int

	animTime time.Duration
	duration time.Duration
	speed    float64
	prevTime time.Time
	clock    func() time.Time

	padding Padding
}

// NewBoard creates a board with the given configuration.
func NewBoard(cfg Configuration, opts ...Option) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Board{
		pieces:    make(map[PieceID]*Piece),
		dispenser: NewDispenser(cfg.EntryPoint, cfg.NumBlueBalls, cfg.NumRedBalls),
		clock:     time.Now,
		padding:   DefaultPadding(),
	}
	b.SetAnimationSpeed(DefaultAnimationSpeed)
	for _, opt := range opts {
		opt(b)
	}
	b.cfg = cfg
	b.buildGrid()
	return b, nil
}

// Configuration returns the active configuration.
func (b *Board) Configuration() Configuration { return b.cfg }

// Size returns the board size.
func (b *Board) Size() Size { return b.cfg.Size }

// Dispenser returns the board's dispenser.
func (b *Board) Dispenser() *Dispenser { return b.dispenser }

// Collector returns the board's collector.
func (b *Board) Collector() *Collector { return &b.collector }

// Ball returns a copy of the ball in flight.
func (b *Board) Ball() (Ball, bool) {
	if b.ball == nil {
		return Ball{}, false
	}
	return *b.ball, true
}

// Running reports whether the animation clock is advancing.
func (b *Board) Running() bool { return b.running }

// HaltReason returns why the board halted, or HaltNone.
func (b *Board) HaltReason() HaltReason { return b.halt }

// Hops returns the number of peg-to-peg moves since the last reset.
func (b *Board) Hops() int { return b.hops }

// State returns the current simulation state.
func (b *Board) State() State {
	switch {
	case b.running:
		return StateRunning
	case b.halt != HaltNone:
		return StateHalted
	case b.ball != nil:
		return StateStopped
	default:
		return StateIdle
	}
}

// AnimationSpeed returns the number of hops per second.
func (b *Board) AnimationSpeed() float64 { return b.speed }

// AnimationDuration returns the time one hop takes.
func (b *Board) AnimationDuration() time.Duration { return b.duration }

// SetAnimationSpeed sets the number of hops per second. Non-positive values
// are ignored.
func (b *Board) SetAnimationSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	b.speed = speed
	b.duration = time.Duration(float64(time.Second) / speed)
}

// Progress returns how far the current hop has animated, in [0, 1].
func (b *Board) Progress() float64 {
	if b.duration <= 0 {
		return 0
	}
	return core.ClampF(float64(b.animTime)/float64(b.duration), 0, 1)
}

// Configure applies a new configuration. The grid is rebuilt and the
// dispenser refilled. Pieces whose position is still a piece slot stay
// attached; the others are detached. The collector and the ball in flight
// are kept, and a ball whose terminal was detached is no longer held.
func (b *Board) Configure(cfg Configuration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	b.cfg = cfg
	b.buildGrid()

	for _, p := range b.sortedPieces() {
		idx, ok := b.index(p.position)
		if !ok || !b.pegs[idx].PieceSlot || b.pegs[idx].piece != 0 {
			delete(b.pieces, p.id)
			p.detach()
			continue
		}
		b.pegs[idx].piece = p.id
		p.slot = idx
	}

	b.dispenser.SetEntryPoint(cfg.EntryPoint)
	b.dispenser.FillBalls(cfg.NumBlueBalls, cfg.NumRedBalls)
	if b.halt == HaltExhausted {
		b.halt = HaltNone
	}
	b.releaseBall()
	return nil
}

// Start begins or resumes the simulation. Without a ball in flight a ball of
// the starting color is dispensed first; if none is left the board halts.
func (b *Board) Start() {
	if b.ball == nil {
		ball, ok := b.dispenser.DispenseBall(b.cfg.StartingColor)
		if !ok {
			b.running = false
			b.halt = HaltExhausted
			return
		}
		b.ball = &ball
		b.animTime = 0
	}
	b.halt = HaltNone
	b.running = true
	b.prevTime = b.clock()
}

// Stop freezes the animation. The ball and its progress are kept.
func (b *Board) Stop() {
	b.running = false
}

// Reset stops the board, refills the dispenser, empties the collector and
// drops the ball in flight. Pieces stay where they are.
func (b *Board) Reset() {
	b.running = false
	b.animTime = 0
	b.dispenser.FillBalls(b.cfg.NumBlueBalls, b.cfg.NumRedBalls)
	b.collector.Clear()
	b.ball = nil
	b.halt = HaltNone
	b.hops = 0
}

// Clear detaches every piece from the board.
func (b *Board) Clear() {
	for _, p := range b.pieces {
		p.detach()
	}
	for i := range b.pegs {
		b.pegs[i].piece = 0
	}
	b.pieces = make(map[PieceID]*Piece)
	b.releaseBall()
}

// Tick advances the simulation by the wall-clock time elapsed since the
// previous Tick or Start. It does nothing while the board is not running.
func (b *Board) Tick() StepResult {
	if !b.running {
		return StepResult{}
	}
	now := b.clock()
	dt := now.Sub(b.prevTime)
	b.prevTime = now
	return b.Advance(dt)
}

// Advance adds dt to the animation clock. Once the clock passes the hop
// duration it is reset and the ball is routed to its next peg. At most one
// hop resolves per call.
func (b *Board) Advance(dt time.Duration) StepResult {
	if !b.running || b.ball == nil {
		return StepResult{}
	}
	if dt > 0 {
		b.animTime += dt
	}
	if b.animTime <= b.duration {
		return StepResult{}
	}
	b.animTime = 0
	return b.completeHop()
}

// completeHop routes the ball through the piece on its peg, collects it at
// the bottom and dispenses the next one.
func (b *Board) completeHop() StepResult {
	var res StepResult
	ball := b.ball

	if p := b.pieceOn(ball.Position); p != nil {
		out := p.Operate(ball.Direction)
		if out == None {
			b.haltWith(HaltTerminal)
			res.Halted = HaltTerminal
			return res
		}
		ball.Drop(out)
	} else {
		ball.Fall()
	}
	b.hops++
	res.Hopped = true

	if !ball.IsAtBottom(b.cfg.Size) {
		return res
	}

	collected := *ball
	b.collector.CollectBall(collected)
	res.Collected = &collected

	next := Red
	if collected.Position.X < 0 {
		next = Blue
	}
	nb, ok := b.dispenser.DispenseBall(next)
	if !ok {
		b.ball = nil
		b.haltWith(HaltExhausted)
		res.Halted = HaltExhausted
		return res
	}
	b.ball = &nb
	res.Dispensed = &nb
	return res
}

func (b *Board) haltWith(r HaltReason) {
	b.running = false
	b.halt = r
}

// releaseBall clears a terminal halt once no terminal is left under the
// held ball. The ball stays in place and the board reads as stopped.
func (b *Board) releaseBall() {
	if b.halt != HaltTerminal || b.ball == nil {
		return
	}
	if p := b.pieceOn(b.ball.Position); p != nil && p.Kind() == KindTerminal {
		return
	}
	b.halt = HaltNone
}

// sortedPieces returns the attached pieces ordered by id.
func (b *Board) sortedPieces() []*Piece {
	out := make([]*Piece, 0, len(b.pieces))
	for _, p := range b.pieces {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
