// Package tui runs the board in the terminal with Bubble Tea. It owns the
// frame loop, key and mouse mapping, the layout picker and the run browser.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the model to advance the board by one fixed step.
type TickMsg time.Time

// tickCmd schedules the next tick one step after now. The board always
// advances by the fixed step, so a late tick slows the board down instead of
// skipping hops.
func tickCmd(step time.Duration) tea.Cmd {
	return tea.Tick(step, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
