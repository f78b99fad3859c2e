package pachinko

import (
	"testing"

	"github.com/vovakirdan/pegboard/internal/core"
)

func TestSimulateEmptyBoard(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())

	var seen int
	sum := Simulate(b, 10000, func(Ball) { seen++ })

	if !sum.Completed || sum.Halt != HaltExhausted {
		t.Fatalf("summary = %+v", sum)
	}
	if len(sum.Collected) != 8 || seen != 8 {
		t.Fatalf("collected %d balls, callback saw %d", len(sum.Collected), seen)
	}
	for i, c := range sum.Collected {
		if c != Blue {
			t.Errorf("ball %d = %v, want Blue", i, c)
		}
	}
	if sum.Hops != 80 {
		t.Errorf("Hops = %d, want 80", sum.Hops)
	}
}

func TestSimulateHopLimit(t *testing.T) {
	b := newTestBoard(t, DefaultConfiguration())
	sum := Simulate(b, 15, nil)

	if sum.Completed {
		t.Error("run should stop at the hop limit")
	}
	if sum.Hops != 15 || len(sum.Collected) != 1 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestSimulateDeterminism(t *testing.T) {
	build := func() *Board {
		b := newTestBoard(t, DefaultConfiguration())
		b.PlacePiece(NewPiece(KindBit), core.V(-2, 0))
		b.PlacePiece(NewPiece(KindBit), core.V(2, 0))
		cross := NewPiece(KindCross)
		b.PlacePiece(cross, core.V(-1, 1))
		path := NewPiece(KindPath)
		path.SetOrientation(Left)
		b.PlacePiece(path, core.V(1, 1))
		return b
	}

	a := Simulate(build(), 5000, nil)
	c := Simulate(build(), 5000, nil)

	if a.Hops != c.Hops || a.Halt != c.Halt || len(a.Collected) != len(c.Collected) {
		t.Fatalf("runs differ: %+v vs %+v", a, c)
	}
	for i := range a.Collected {
		if a.Collected[i] != c.Collected[i] {
			t.Fatalf("ball %d differs", i)
		}
	}
	if len(a.Collected) == 0 {
		t.Error("nothing collected")
	}
}

func TestCollectedString(t *testing.T) {
	if got := CollectedString([]BallColor{Blue, Red, Red, Blue}); got != "BRRB" {
		t.Errorf("CollectedString() = %q, want BRRB", got)
	}
	if got := CollectedString(nil); got != "" {
		t.Errorf("CollectedString(nil) = %q", got)
	}
}
