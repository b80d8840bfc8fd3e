package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mnordin/planverk/internal/ui/theme"
)

// Toggle is an on/off checkbox flipped with space or enter.
type Toggle struct {
	Label   string
	On      bool
	Focused bool
}

// NewToggle creates a toggle in the off state.
func NewToggle(label string) Toggle {
	return Toggle{Label: label}
}

// Update flips the toggle when focused.
func (t Toggle) Update(msg tea.Msg) (Toggle, tea.Cmd) {
	if !t.Focused {
		return t, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case " ", "space", "enter":
			t.On = !t.On
		}
	}
	return t, nil
}

// View renders the toggle.
func (t Toggle) View() string {
	box := "[ ]"
	if t.On {
		box = "[x]"
	}

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if t.Focused {
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return style.Render(box + " " + t.Label)
}
