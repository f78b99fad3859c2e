package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/pegboard/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColored(1, 0, "PEG", core.ColorBrightYellow)
	s.DrawText(1, 1, "plain")

	lines := strings.Split(RenderScreen(s), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "PEG") {
		t.Errorf("colored run split or lost: %q", lines[0])
	}
	if lines[1] != " plain      " {
		t.Errorf("uncolored row should be written as is, got %q", lines[1])
	}
	if lines[2] != strings.Repeat(" ", 12) {
		t.Errorf("blank row should be written as is, got %q", lines[2])
	}
}

func TestCellStyleDefault(t *testing.T) {
	if got := cellStyle(core.ColorDefault).Render("x"); got != "x" {
		t.Errorf("default color should not be styled, got %q", got)
	}
}
