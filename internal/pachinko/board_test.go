package pachinko

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/pegboard/internal/core"
)

// hop is long enough to finish exactly one animation at the default speed.
const hop = 250*time.Millisecond + time.Nanosecond

func TestConfigurationValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Configuration)
		valid  bool
	}{
		{"default", func(*Configuration) {}, true},
		{"even width", func(c *Configuration) { c.Size.W = 10 }, false},
		{"zero width", func(c *Configuration) { c.Size.W = 0 }, false},
		{"zero height", func(c *Configuration) { c.Size.H = 0 }, false},
		{"negative blue", func(c *Configuration) { c.NumBlueBalls = -1 }, false},
		{"negative red", func(c *Configuration) { c.NumRedBalls = -3 }, false},
		{"entry too wide", func(c *Configuration) { c.EntryPoint = 6 }, false},
		{"entry negative", func(c *Configuration) { c.EntryPoint = -1 }, false},
		{"entry at edge", func(c *Configuration) { c.EntryPoint = 5 }, true},
		{"single peg", func(c *Configuration) { c.Size = Size{W: 1, H: 1}; c.EntryPoint = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfiguration()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Validate() = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestNewBoardRejectsInvalid(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Size.W = 4
	if _, err := NewBoard(cfg); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("NewBoard() error = %v", err)
	}
}

func TestBoardInitialState(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())

	if b.State() != StateIdle {
		t.Errorf("State() = %v, want Idle", b.State())
	}
	if _, ok := b.Ball(); ok {
		t.Error("new board has a ball")
	}
	if b.AnimationSpeed() != 4 || b.AnimationDuration() != 250*time.Millisecond {
		t.Errorf("speed %f duration %v", b.AnimationSpeed(), b.AnimationDuration())
	}
	if b.Dispenser().Remaining(Blue) != 8 || b.Dispenser().Remaining(Red) != 8 {
		t.Error("dispenser not filled from configuration")
	}
}

func TestStartDispensesStartingColor(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.StartingColor = Red
	b := newTestBoard(t, cfg)

	b.Start()
	ball, ok := b.Ball()
	if !ok {
		t.Fatal("Start did not dispense a ball")
	}
	if ball.Color != Red || ball.Position != core.P(2, 0) {
		t.Errorf("ball = %+v", ball)
	}
	if b.State() != StateRunning {
		t.Errorf("State() = %v, want Running", b.State())
	}
	if b.Dispenser().Remaining(Red) != 7 {
		t.Errorf("red remaining = %d, want 7", b.Dispenser().Remaining(Red))
	}

	// Starting again keeps the same ball.
	b.Start()
	if b.Dispenser().Remaining(Red) != 7 {
		t.Error("second Start dispensed another ball")
	}
}

func TestStartExhausted(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.NumBlueBalls = 0
	b := newTestBoard(t, cfg)

	b.Start()
	if b.Running() {
		t.Error("board running without a ball")
	}
	if b.State() != StateHalted || b.HaltReason() != HaltExhausted {
		t.Errorf("State() = %v reason %v", b.State(), b.HaltReason())
	}
}

func TestStopIsResumable(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())
	b.Start()
	b.Advance(100 * time.Millisecond)
	b.Stop()

	if b.State() != StateStopped {
		t.Errorf("State() = %v, want Stopped", b.State())
	}
	progress := b.Progress()

	if res := b.Advance(time.Second); res.Hopped {
		t.Error("stopped board advanced")
	}
	if b.Progress() != progress {
		t.Error("stopped board changed progress")
	}

	b.Start()
	if res := b.Advance(160 * time.Millisecond); !res.Hopped {
		t.Error("resumed board did not finish the hop")
	}
}

func TestAdvanceThreshold(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())
	b.Start()

	if res := b.Advance(250 * time.Millisecond); res.Hopped {
		t.Error("hop resolved at exactly the duration")
	}
	if b.Progress() != 1 {
		t.Errorf("Progress() = %f, want 1", b.Progress())
	}
	if res := b.Advance(time.Nanosecond); !res.Hopped {
		t.Error("hop not resolved past the duration")
	}
	if b.Progress() != 0 {
		t.Errorf("Progress() = %f after hop, want 0", b.Progress())
	}

	// A long frame still resolves a single hop.
	b.Advance(10 * time.Second)
	if b.Hops() != 2 {
		t.Errorf("Hops() = %d, want 2", b.Hops())
	}
}

func TestFallWithoutPiece(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())
	b.Start()
	b.Advance(hop)

	ball, _ := b.Ball()
	if ball.Position != core.P(-2, 1) || ball.Direction != Left {
		t.Errorf("ball = %+v, want straight fall", ball)
	}
}

func TestDropThroughPiece(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())
	p := NewPiece(KindPath)
	p.SetOrientation(Left)
	b.PlacePiece(p, core.V(-2, 0))

	b.Start()
	b.Advance(hop)

	ball, _ := b.Ball()
	if ball.Position != core.P(-1, 1) || ball.Direction != Left {
		t.Errorf("ball = %+v, want (-1,1) entering from Left", ball)
	}
}

func TestCollectAndDispenseBySide(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())
	b.Start()

	var res StepResult
	for range 10 {
		res = b.Advance(hop)
	}
	if res.Collected == nil || res.Collected.Position != core.P(-2, 10) {
		t.Fatalf("expected collection at (-2,10), got %+v", res.Collected)
	}
	if res.Dispensed == nil || res.Dispensed.Color != Blue {
		t.Errorf("exit on the left should dispense Blue, got %+v", res.Dispensed)
	}
	if b.Collector().Len() != 1 {
		t.Errorf("collector has %d balls", b.Collector().Len())
	}
}

func TestCentreColumnExitsOneRowLater(t *testing.T) {
	cfg := Configuration{Size: Size{W: 3, H: 3}, EntryPoint: 0, NumBlueBalls: 1}
	b := newTestBoard(t, cfg)
	b.Start()

	b.Advance(hop)
	b.Advance(hop)
	if b.Collector().Len() != 0 {
		t.Fatal("centre ball collected at y = h-1")
	}
	res := b.Advance(hop)
	if res.Collected == nil || res.Collected.Position != core.P(0, 3) {
		t.Errorf("collected = %+v, want (0,3)", res.Collected)
	}
	if res.Halted != HaltExhausted {
		t.Errorf("Halted = %v, want exhausted", res.Halted)
	}
}

func TestTerminalHaltsBoard(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())
	b.PlacePiece(NewPiece(KindTerminal), core.V(-2, 0))
	b.Start()

	res := b.Advance(hop)
	if res.Halted != HaltTerminal {
		t.Fatalf("Halted = %v, want terminal", res.Halted)
	}
	if b.Running() {
		t.Error("board still running")
	}
	ball, ok := b.Ball()
	if !ok || ball.Position != core.P(-2, 0) {
		t.Errorf("held ball = %+v, %v", ball, ok)
	}
	if b.State() != StateHalted {
		t.Errorf("State() = %v, want Halted", b.State())
	}

	// Restarting replays the terminal.
	b.Start()
	if b.State() != StateRunning {
		t.Errorf("State() = %v after restart", b.State())
	}
	if res := b.Advance(hop); res.Halted != HaltTerminal {
		t.Error("terminal did not hold the ball again")
	}
}

func TestResetRestoresSupply(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())
	piece := NewPiece(KindBit)
	b.PlacePiece(piece, core.V(2, 0))
	b.Start()
	for range 25 {
		b.Advance(hop)
	}
	if b.Collector().IsEmpty() {
		t.Fatal("setup: nothing collected")
	}

	b.Reset()

	if !b.Collector().IsEmpty() {
		t.Error("collector not cleared")
	}
	if b.Dispenser().Remaining(Blue) != 8 || b.Dispenser().Remaining(Red) != 8 {
		t.Error("dispenser not refilled")
	}
	if b.State() != StateIdle || b.Hops() != 0 || b.Progress() != 0 {
		t.Errorf("State() = %v hops %d progress %f", b.State(), b.Hops(), b.Progress())
	}
	if !piece.Attached() {
		t.Error("Reset removed pieces")
	}
}

func TestTickUsesClock(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }
	b, err := NewBoard(DefaultConfiguration(), WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}

	if res := b.Tick(); res.Hopped {
		t.Error("idle board ticked")
	}

	b.Start()
	now = now.Add(100 * time.Millisecond)
	if res := b.Tick(); res.Hopped {
		t.Error("hop resolved too early")
	}
	now = now.Add(200 * time.Millisecond)
	if res := b.Tick(); !res.Hopped {
		t.Error("hop not resolved after 300ms")
	}
}

func TestAnimationSpeed(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())

	b.SetAnimationSpeed(2)
	if b.AnimationDuration() != 500*time.Millisecond {
		t.Errorf("duration = %v, want 500ms", b.AnimationDuration())
	}
	b.SetAnimationSpeed(0)
	b.SetAnimationSpeed(-1)
	if b.AnimationSpeed() != 2 {
		t.Errorf("non-positive speed accepted: %f", b.AnimationSpeed())
	}

	fast, _ := NewBoard(DefaultConfiguration(), WithAnimationSpeed(10))
	if fast.AnimationDuration() != 100*time.Millisecond {
		t.Errorf("WithAnimationSpeed duration = %v", fast.AnimationDuration())
	}
}

func TestConfigureKeepsValidPieces(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())
	edge := NewPiece(KindTerminal)
	inner := NewPiece(KindCross)
	b.PlacePiece(edge, core.V(-2, 0))
	b.PlacePiece(inner, core.V(-1, 3))
	b.collector.CollectBall(Ball{Color: Red})

	b.Start()
	if res := b.Advance(hop); res.Halted != HaltTerminal {
		t.Fatalf("Halted = %v, want terminal", res.Halted)
	}

	cfg := DefaultConfiguration()
	cfg.EntryPoint = 0
	cfg.NumBlueBalls = 3
	if err := b.Configure(cfg); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}

	if edge.Attached() {
		t.Error("piece on a now-invalid peg kept")
	}
	if !inner.Attached() || b.PieceAt(core.V(-1, 3)) != inner {
		t.Error("piece on a still-valid slot dropped")
	}
	if b.PieceCount() != 1 {
		t.Errorf("PieceCount() = %d, want 1", b.PieceCount())
	}
	if b.Dispenser().Remaining(Blue) != 3 || b.Dispenser().EntryPoint() != 0 {
		t.Error("dispenser not reconfigured")
	}
	if b.Collector().Len() != 1 {
		t.Error("Configure cleared the collector")
	}

	// The detached terminal no longer holds the ball.
	if b.HaltReason() != HaltNone || b.State() != StateStopped {
		t.Errorf("State() = %v, HaltReason() = %v after the terminal was detached", b.State(), b.HaltReason())
	}
	if ball, ok := b.Ball(); !ok || ball.Position != core.P(-2, 0) {
		t.Errorf("ball = %+v, %v, want kept at (-2,0)", ball, ok)
	}
}

func TestRemovingTerminalReleasesBall(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())
	term := NewPiece(KindTerminal)
	b.PlacePiece(term, core.V(-2, 0))
	b.PlacePiece(NewPiece(KindPath), core.V(1, 1))
	b.Start()
	b.Advance(hop)

	// Removing an unrelated piece keeps the halt.
	b.RemovePiece(b.PieceAt(core.V(1, 1)))
	if b.HaltReason() != HaltTerminal {
		t.Fatalf("HaltReason() = %v, want terminal", b.HaltReason())
	}

	b.RemovePiece(term)
	if b.State() != StateStopped {
		t.Errorf("State() = %v after removing the terminal, want Stopped", b.State())
	}

	b.Start()
	if res := b.Advance(hop); res.Halted != HaltNone || !res.Hopped {
		t.Errorf("released ball did not move on: %+v", res)
	}
}

func TestConfigureInvalidLeavesBoard(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())
	p := NewPiece(KindPath)
	b.PlacePiece(p, core.V(2, 0))

	bad := DefaultConfiguration()
	bad.Size.W = 8
	if err := b.Configure(bad); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("Configure() = %v", err)
	}
	if b.Size() != DefaultConfiguration().Size || !p.Attached() {
		t.Error("rejected configuration modified the board")
	}
}

func TestConfigureClearsExhaustion(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.NumBlueBalls = 0
	b := newTestBoard(t, cfg)
	b.Start()
	if b.HaltReason() != HaltExhausted {
		t.Fatal("setup: expected exhausted")
	}

	if err := b.Configure(DefaultConfiguration()); err != nil {
		t.Fatal(err)
	}
	if b.State() != StateIdle {
		t.Errorf("State() = %v, want Idle", b.State())
	}
	b.Start()
	if !b.Running() {
		t.Error("board did not start after refill")
	}
}

func TestClearDetachesAll(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())
	pieces := []*Piece{NewPiece(KindPath), NewPiece(KindBit), NewPiece(KindCross)}
	b.PlacePiece(pieces[0], core.V(-2, 0))
	b.PlacePiece(pieces[1], core.V(2, 0))
	b.PlacePiece(pieces[2], core.V(0, 2))

	b.Clear()
	if b.PieceCount() != 0 {
		t.Errorf("PieceCount() = %d", b.PieceCount())
	}
	for _, p := range pieces {
		if p.Attached() {
			t.Errorf("%v still attached", p.Kind())
		}
	}
	for _, peg := range b.Pegs() {
		if peg.HasPiece() {
			t.Errorf("peg %v still has a piece", peg.Position)
		}
	}
}

func TestSnapshot(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())
	bit := NewPiece(KindBit)
	b.PlacePiece(bit, core.V(-2, 0))
	b.Start()
	b.Advance(125 * time.Millisecond)

	s := b.Snapshot()
	if s.State != StateRunning || !s.HasBall {
		t.Fatalf("snapshot state %v ball %v", s.State, s.HasBall)
	}
	if s.Progress != 0.5 {
		t.Errorf("Progress = %f, want 0.5", s.Progress)
	}
	if len(s.Pieces) != 1 || s.Pieces[0].Kind != KindBit || s.Pieces[0].ColorName != "blue" {
		t.Fatalf("Pieces = %+v", s.Pieces)
	}
	if s.Pieces[0].Rotation == 0 {
		t.Error("active bit should be rotating")
	}
	if s.BlueRemaining != 7 || s.RedRemaining != 8 {
		t.Errorf("remaining = %d/%d", s.BlueRemaining, s.RedRemaining)
	}

	// The ball is drawn inside the peg cell.
	d := s.BallDrawPos.Sub(core.V(-2, 0))
	if d.X < -.5 || d.X > .5 || d.Y < -.5 || d.Y > .5 {
		t.Errorf("BallDrawPos = %v outside peg (-2,0)", s.BallDrawPos)
	}

	s.Pegs[0].Valid = !s.Pegs[0].Valid
	if b.Pegs()[0].Valid == s.Pegs[0].Valid {
		t.Error("snapshot shares peg storage with the board")
	}
}
