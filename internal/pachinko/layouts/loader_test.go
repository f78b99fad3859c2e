package layouts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/pegboard/internal/core"
	"github.com/vovakirdan/pegboard/internal/pachinko"
)

func TestBuiltinLoadAll(t *testing.T) {
	lays, err := Builtin().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	want := []string{"bit-counter", "empty", "mini-cross", "terminal-trap"}
	if len(lays) != len(want) {
		t.Fatalf("expected %d layouts, got %d", len(want), len(lays))
	}
	for i, id := range want {
		if lays[i].ID != id {
			t.Errorf("layout %d: expected %q, got %q", i, id, lays[i].ID)
		}
	}
}

func TestBuiltinLayoutsPlaceEveryPiece(t *testing.T) {
	lays, err := Builtin().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	for _, lay := range lays {
		t.Run(lay.ID, func(t *testing.T) {
			b, placed, err := lay.NewBoard()
			if err != nil {
				t.Fatalf("NewBoard failed: %v", err)
			}
			if placed != len(lay.Pieces) {
				t.Errorf("placed %d of %d pieces", placed, len(lay.Pieces))
			}
			if b.PieceCount() != placed {
				t.Errorf("board holds %d pieces, want %d", b.PieceCount(), placed)
			}
		})
	}
}

func TestTerminalTrapHalts(t *testing.T) {
	lay, err := Builtin().LoadByID("terminal-trap")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	b, _, err := lay.NewBoard()
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}

	sum := pachinko.Simulate(b, 1000, nil)
	if sum.Halt != pachinko.HaltTerminal {
		t.Errorf("expected terminal halt, got %v", sum.Halt)
	}
	if sum.Hops != 10 {
		t.Errorf("expected 10 hops, got %d", sum.Hops)
	}
	if len(sum.Collected) != 0 {
		t.Errorf("expected nothing collected, got %v", sum.Collected)
	}

	ball, ok := b.Ball()
	if !ok || ball.Position != core.P(0, 10) {
		t.Errorf("expected ball held at (0,10), got %v (%v)", ball.Position, ok)
	}
}

func TestMiniCrossCollectsOneBall(t *testing.T) {
	lay, err := Builtin().LoadByID("mini-cross")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	b, _, err := lay.NewBoard()
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}

	var collected []pachinko.Ball
	sum := pachinko.Simulate(b, 100, func(ball pachinko.Ball) {
		collected = append(collected, ball)
	})
	if sum.Halt != pachinko.HaltExhausted {
		t.Errorf("expected exhausted halt, got %v", sum.Halt)
	}
	if len(collected) != 1 || collected[0].Color != pachinko.Blue {
		t.Errorf("expected one blue ball, got %v", collected)
	}
}

func TestLoaderNotFound(t *testing.T) {
	_, err := Builtin().LoadByID("nonexistent")
	if err == nil {
		t.Error("expected error for missing layout")
	}
}

func TestLoaderSkipsInvalidFiles(t *testing.T) {
	ids, err := NewLoader("testdata").ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}

	want := []string{"empty", "stray"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("expected %v, got %v", want, ids)
		}
	}
}

func TestApplySkipsStrayPieces(t *testing.T) {
	lay, err := NewLoader("testdata").LoadFile("stray.yml")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if lay.FilePath != "stray.yml" {
		t.Errorf("expected file path stray.yml, got %q", lay.FilePath)
	}

	b, placed, err := lay.NewBoard()
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	if placed != 1 {
		t.Errorf("expected 1 piece placed, got %d", placed)
	}

	p := b.PieceAt(core.V(0, 0))
	if p == nil || p.Kind() != pachinko.KindPath || p.Orientation() != pachinko.Left {
		t.Errorf("expected left path at origin, got %+v", p)
	}

	// Applying again replaces rather than stacks.
	if n := lay.Apply(b); n != 1 || b.PieceCount() != 1 {
		t.Errorf("expected 1 piece after re-apply, got placed=%d count=%d", n, b.PieceCount())
	}
}

func TestFindPrefersDirectory(t *testing.T) {
	lay, err := Find("testdata", "empty")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if lay.Name != "Empty Override" {
		t.Errorf("expected override, got %q", lay.Name)
	}

	lay, err = Find("testdata", "bit-counter")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if lay.ID != "bit-counter" {
		t.Errorf("expected built-in bit-counter, got %q", lay.ID)
	}

	if _, err := Find(filepath.Join(t.TempDir(), "missing"), "empty"); err != nil {
		t.Errorf("missing directory should fall back to built-ins: %v", err)
	}
}

func TestAllMergesDirectory(t *testing.T) {
	lays, err := All("testdata")
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}

	byID := make(map[string]Layout)
	for i, lay := range lays {
		byID[lay.ID] = lay
		if i > 0 && lays[i-1].ID >= lay.ID {
			t.Errorf("layouts not sorted: %s >= %s", lays[i-1].ID, lay.ID)
		}
	}
	if len(lays) != 5 {
		t.Errorf("expected 5 layouts, got %d", len(lays))
	}
	if byID["empty"].Config.Size.W != 5 {
		t.Errorf("expected override size, got %+v", byID["empty"].Config.Size)
	}
	if _, ok := byID["stray"]; !ok {
		t.Error("expected stray layout from directory")
	}
}

func TestLoadPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "solo.yaml")
	data := []byte("id: solo\nname: Solo\nboard:\n  size: { w: 1, h: 1 }\n  entry_point: 0\n")
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	lay, err := LoadPath(p)
	if err != nil {
		t.Fatalf("LoadPath failed: %v", err)
	}
	if lay.ID != "solo" || lay.Config.Size != (pachinko.Size{W: 1, H: 1}) {
		t.Errorf("unexpected layout %+v", lay)
	}

	if _, err := LoadPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
