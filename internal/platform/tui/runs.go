package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pegboard/internal/pachinko/layouts"
	"github.com/vovakirdan/pegboard/internal/storage"
)

// Run browser layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show layout sidebar
	sidebarWidth       = 22  // Width of layout sidebar
	maxRuns            = 100 // Max runs to load per layout
)

// RunsKeyMap defines the key bindings for the run browser.
type RunsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextLayout key.Binding
	PrevLayout key.Binding
	Clear      key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLayout, k.PrevLayout, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLayout, k.PrevLayout},
		{k.Clear, k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLayout: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next layout"),
		),
		PrevLayout: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev layout"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear layout runs"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing recorded runs.
type RunsModel struct {
	layoutIDs   []string
	names       map[string]string
	cursor      int
	store       *storage.Store
	runs        []storage.RunRecord
	stats       map[string]*storage.LayoutStats
	table       table.Model
	help        help.Model
	keys        RunsKeyMap
	theme       Theme
	err         error
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRunsModel creates a run browser over the given layouts. Layouts that
// only appear in the run history are listed as well.
func NewRunsModel(store *storage.Store, lays []layouts.Layout, width, height int) RunsModel {
	h := help.New()
	h.ShowAll = false

	m := RunsModel{
		names:       make(map[string]string),
		store:       store,
		keys:        DefaultRunsKeyMap(),
		help:        h,
		theme:       DefaultTheme(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	for _, lay := range lays {
		m.names[lay.ID] = lay.Name
	}
	m.loadStats()
	for id := range m.stats {
		if _, ok := m.names[id]; !ok {
			m.names[id] = id
		}
	}
	for id := range m.names {
		m.layoutIDs = append(m.layoutIDs, id)
	}
	sort.Strings(m.layoutIDs)

	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table sized to the window.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Blue", Width: 5},
		{Title: "Red", Width: 5},
		{Title: "Hops", Width: 6},
		{Title: "Halt", Width: 10},
		{Title: "Sequence", Width: 16},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if seq := tableWidth - 52; seq > columns[5].Width {
		columns[5].Width = min(seq, 40)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = m.theme.TableHeader
	s.Selected = s.Selected.Inherit(m.theme.TableActive)
	t.SetStyles(s)
	return t
}

// currentLayout returns the selected layout ID, or "" when there is none.
func (m RunsModel) currentLayout() string {
	if len(m.layoutIDs) == 0 {
		return ""
	}
	return m.layoutIDs[m.cursor]
}

func (m *RunsModel) loadStats() {
	if m.store == nil {
		return
	}
	m.stats, m.err = m.store.AllLayoutStats()
}

// loadRuns loads the runs of the selected layout.
func (m *RunsModel) loadRuns() {
	m.runs = nil
	if m.store != nil && m.currentLayout() != "" {
		m.runs, m.err = m.store.RunsForLayout(m.currentLayout(), maxRuns)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%d", r.BlueCount),
			fmt.Sprintf("%d", r.RedCount),
			fmt.Sprintf("%d", r.Hops),
			r.HaltReason,
			r.Collected,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the run browser.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLayout):
			if len(m.layoutIDs) > 0 {
				m.cursor = (m.cursor + 1) % len(m.layoutIDs)
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLayout):
			if len(m.layoutIDs) > 0 {
				m.cursor = (m.cursor - 1 + len(m.layoutIDs)) % len(m.layoutIDs)
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if m.store != nil && m.currentLayout() != "" {
				m.err = m.store.ClearRuns(m.currentLayout())
				m.loadStats()
				m.loadRuns()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run browser.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RUNS"
	if id := m.currentLayout(); id != "" {
		title = fmt.Sprintf("RUNS - %s", m.names[id])
	}
	b.WriteString(centerText(m.theme.Title.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Subtitle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)
	content := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.currentLayout()), m.width))
		b.WriteString("\n\n")
		b.WriteString(content)
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.theme.Error.Render(m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Controls.Render(m.help.View(m.keys)))
	return b.String()
}

// statsLine summarizes the selected layout's history.
func (m RunsModel) statsLine() string {
	st, ok := m.stats[m.currentLayout()]
	if !ok {
		return "no runs yet"
	}
	return fmt.Sprintf("%d runs  |  best %d balls  |  avg %.1f  |  %d hops  |  last %s",
		st.RunsCount, st.BestCollect, st.AvgCollected, st.TotalHops, st.LastPlayed.Format("Jan 02 15:04"))
}

// renderSidebar lists the layouts with the selected one highlighted.
func (m RunsModel) renderSidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Layouts\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, id := range m.layoutIDs {
		cursor := "  "
		item := m.theme.ItemNormal
		if i == m.cursor {
			cursor = "> "
			item = m.theme.ItemActive
		}
		name := m.names[id]
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sb.WriteString(item.Render(cursor + name))
		sb.WriteString("\n")
	}
	return style.Render(sb.String())
}

// renderTableContent renders the table or an empty message.
func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		return m.theme.Empty.Render("No runs recorded yet.\nPlay the layout until the board halts!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the picker.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// RunRunsBrowser runs the run browser screen.
// Returns true if user wants to go back, false if quitting.
func RunRunsBrowser(store *storage.Store, lays []layouts.Layout, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewRunsModel(store, lays, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(RunsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
