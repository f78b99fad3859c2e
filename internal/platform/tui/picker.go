package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pegboard/internal/core"
	"github.com/vovakirdan/pegboard/internal/pachinko/layouts"
)

// PickerModel is the layout picker shown by the menu command.
type PickerModel struct {
	layouts      []layouts.Layout
	cursor       int
	scrollOffset int
	width        int
	height       int
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	theme        Theme
	selected     *layouts.Layout
	openRuns     bool
	quitting     bool
}

// NewPickerModel creates a picker over the given layouts.
func NewPickerModel(lays []layouts.Layout, cfg core.RuntimeConfig) PickerModel {
	return PickerModel{
		layouts:   lays,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     DefaultTheme(),
	}
}

// Init initializes the model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.layouts)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.layouts) > 0 {
			lay := m.layouts[m.cursor]
			m.selected = &lay
			return m, tea.Quit
		}
	case MenuActionRuns:
		m.openRuns = true
		return m, tea.Quit
	}
	return m, nil
}

// visibleItems is the number of list rows that fit between header and footer.
func (m PickerModel) visibleItems() int {
	return max(m.height-12, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *PickerModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the layout list.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("P A C H I N K O"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Subtitle.Render("Select a layout:"), m.width))
	b.WriteString("\n\n")

	if len(m.layouts) == 0 {
		b.WriteString(centerText(m.theme.Description.Render("No layouts found"), m.width))
		b.WriteString("\n")
	}

	end := min(m.scrollOffset+m.visibleItems(), len(m.layouts))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.Subtitle.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		lay := m.layouts[i]
		cursor := "  "
		style := m.theme.ItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.ItemActive
		}
		size := lay.Config.Size
		line := fmt.Sprintf("%s%-18s %2dx%-2d  %d pieces", cursor, lay.Name, size.W, size.H, len(lay.Pieces))
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}
	if end < len(m.layouts) {
		b.WriteString(centerText(m.theme.Subtitle.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	if len(m.layouts) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.Description.Render(m.layouts[m.cursor].Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Runs  |  Q: Quit"
	b.WriteString(centerText(m.theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// PickerResult holds the outcome of the layout picker.
type PickerResult struct {
	LayoutID  string
	Config    core.RuntimeConfig
	WantsRuns bool
	Quit      bool
}

// RunPicker shows the layout picker and returns the selection.
func RunPicker(lays []layouts.Layout, cfg core.RuntimeConfig) (PickerResult, error) {
	p := tea.NewProgram(NewPickerModel(lays, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return PickerResult{Config: cfg}, err
	}

	m, ok := final.(PickerModel)
	if !ok {
		return PickerResult{Config: cfg, Quit: true}, nil
	}

	res := PickerResult{Config: m.config}
	switch {
	case m.openRuns:
		res.WantsRuns = true
	case m.selected != nil:
		res.LayoutID = m.selected.ID
	default:
		res.Quit = true
	}
	return res, nil
}
