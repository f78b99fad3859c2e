package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pegboard/internal/core"
	"github.com/vovakirdan/pegboard/internal/games/pegboard"
	"github.com/vovakirdan/pegboard/internal/pachinko"
	"github.com/vovakirdan/pegboard/internal/storage"
)

// fakeGame records what the model feeds it.
type fakeGame struct {
	resets  int
	resized core.Point
	inputs  []core.InputFrame
	state   core.GameState
	events  []string
	run     pachinko.RunSummary
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Resize(w, h int) { g.resized = core.P(w, h) }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake")
}
func (g *fakeGame) LastRun() (string, pachinko.RunSummary, bool) {
	return "demo", g.run, g.state.GameOver
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	return core.StepResult{State: g.state, Events: g.events}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model
}

func TestModelForwardsInput(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, nil, core.DefaultConfig())
	m.Init()
	if g.resets != 1 {
		t.Fatalf("expected one reset, got %d", g.resets)
	}

	m = update(t, m, runes("f"))
	m = update(t, m, tea.MouseMsg{X: 7, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg{})

	if len(g.inputs) != 1 {
		t.Fatalf("expected one step, got %d", len(g.inputs))
	}
	in := g.inputs[0]
	if !in.Has(core.ActionFlip) {
		t.Error("expected Flip in the frame")
	}
	if !in.Clicked || in.Click != core.P(7, 3) {
		t.Errorf("expected click at (7,3), got %v %v", in.Clicked, in.Click)
	}

	m = update(t, m, TickMsg{})
	if in := g.inputs[1]; in.Has(core.ActionFlip) || in.Clicked {
		t.Error("frame should be cleared after a tick")
	}
	_ = m
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, nil, core.DefaultConfig())
	m.Init()

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if g.resets != 1 {
		t.Errorf("resize should not reset, got %d resets", g.resets)
	}
	if g.resized != core.P(120, 40) {
		t.Errorf("expected resize to 120x40, got %v", g.resized)
	}
	if !strings.Contains(m.View(), "fake") {
		t.Error("expected game output in view")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, nil, core.DefaultConfig())
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	g := &fakeGame{
		state: core.GameState{Score: 2, GameOver: true},
		run: pachinko.RunSummary{
			Hops:      9,
			Collected: []pachinko.BallColor{pachinko.Blue, pachinko.Red},
			Halt:      pachinko.HaltExhausted,
			Completed: true,
		},
	}
	m := NewModel(g, store, nil, core.DefaultConfig())
	m.Init()

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	runs, err := store.RunsForLayout("demo", 10)
	if err != nil {
		t.Fatalf("RunsForLayout: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one saved run, got %d", len(runs))
	}
	if runs[0].Collected != "BR" || runs[0].Hops != 9 {
		t.Errorf("unexpected run %+v", runs[0])
	}
	if high, _ := store.HighScore("fake"); high != 2 {
		t.Errorf("expected high score 2, got %d", high)
	}

	// Resuming without a restart continues the same run.
	g.state.GameOver = false
	m = update(t, m, TickMsg{})
	g.state.GameOver = true
	m = update(t, m, TickMsg{})

	runs, _ = store.RunsForLayout("demo", 10)
	if len(runs) != 1 {
		t.Fatalf("expected a resumed halt to keep one run, got %d", len(runs))
	}

	// A restart followed by another halt records a second run.
	m = update(t, m, runes("r"))
	update(t, m, TickMsg{})

	runs, _ = store.RunsForLayout("demo", 10)
	if len(runs) != 2 {
		t.Errorf("expected two runs after the second halt, got %d", len(runs))
	}
}

// newBoardGame builds the interactive board on a layout without reading the
// user's config.
func newBoardGame(t *testing.T, layout string) *pegboard.Game {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pachinko.yaml")
	if err := os.WriteFile(cfgPath, []byte("layouts:\n  dir: "+dir+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	pegboard.SetConfigPath(cfgPath)
	pegboard.SetLayout(layout)
	t.Cleanup(func() {
		pegboard.SetConfigPath("")
		pegboard.SetLayout("")
	})
	return pegboard.New()
}

func tickUntilHalt(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 5000; i++ {
		m = update(t, m, TickMsg{})
		if m.gameState.GameOver {
			return m
		}
	}
	t.Fatal("board did not halt")
	return m
}

func TestModelRecordsResumedRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m := NewModel(newBoardGame(t, "terminal-trap"), store, nil, core.DefaultConfig())
	m.Init()

	// The terminal holds the ball again after every resume.
	for i := 0; i < 3; i++ {
		m = update(t, m, runes(" "))
		m = tickUntilHalt(t, m)
	}

	runs, err := store.RunsForLayout("terminal-trap", 10)
	if err != nil {
		t.Fatalf("RunsForLayout: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one run for three halts without a reset, got %d", len(runs))
	}
	if runs[0].HaltReason != "terminal" || runs[0].Collected != "" {
		t.Errorf("unexpected run %+v", runs[0])
	}

	m = update(t, m, runes("r"))
	m = update(t, m, TickMsg{})
	m = update(t, m, runes(" "))
	tickUntilHalt(t, m)

	runs, _ = store.RunsForLayout("terminal-trap", 10)
	if len(runs) != 2 {
		t.Errorf("expected a second run after a reset, got %d", len(runs))
	}
}
