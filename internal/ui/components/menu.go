package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mnordin/planverk/internal/ui/theme"
)

// MenuItem is one entry in a vertical menu. Disabled entries render
// dimmed and are skipped during navigation; the pipeline's stage gates
// surface as disabled entries.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu builds a menu with the first enabled entry selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

func (m Menu) Init() tea.Cmd {
	return nil
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected = m.nextEnabled(m.Selected, -1)
	case "down", "j":
		m.Selected = m.nextEnabled(m.Selected, +1)
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			if item := m.Items[m.Selected]; item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

// nextEnabled walks from the current position in the given direction
// and stays put when every further entry is disabled.
func (m Menu) nextEnabled(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return from
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		b.WriteString(m.renderItem(item, i == m.Selected))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Menu) renderItem(item MenuItem, selected bool) string {
	switch {
	case item.Disabled:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + item.Label)
	case selected:
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ▸ " + item.Label)
	default:
		return lipgloss.NewStyle().Foreground(theme.Text).Render("    " + item.Label)
	}
}
