package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/canvas-arcade/internal/controller"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items    []registry.GameInfo
	cursor   int
	width    int
	height   int
	keys     controller.KeyMap
	quitting bool
	selected string // Set when the user picks a game
}

// NewMenuModel creates a picker over the games in dir with the cursor on
// current.
func NewMenuModel(dir *registry.Directory, keys controller.KeyMap, current string) MenuModel {
	items := dir.List()
	cursor := 0
	for i, g := range items {
		if g.ID == current {
			cursor = i
		}
	}
	return MenuModel{items: items, cursor: cursor, keys: keys}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), msg.String() == "esc":
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up, m.keys.P2Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down, m.keys.P2Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Start, m.keys.A):
		if len(m.items) > 0 {
			m.selected = m.items[m.cursor].ID
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  A R C A D E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = cursorStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := fmt.Sprintf("%s/%s: Navigate  |  %s: Play  |  %s: Quit",
		m.keys.Up.Help().Key, m.keys.Down.Help().Key, m.keys.Start.Help().Key, m.keys.Quit.Help().Key)
	b.WriteString(dimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the picked game key, or "" if none was picked.
func (m MenuModel) Selected() string {
	return m.selected
}

// centerText centers text within width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunMenu shows the picker and returns the chosen game key, or "" when the
// user quits.
func RunMenu(dir *registry.Directory, keys controller.KeyMap, current string) (string, error) {
	p := tea.NewProgram(NewMenuModel(dir, keys, current), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
