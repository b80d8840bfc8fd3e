package components

import "github.com/mnordin/planverk/internal/ui/theme"

// Button renders an action label. Activation is handled by the owning
// screen (enter on the focused element), so this is render-only.
func Button(label string, focused bool) string {
	text := "  ▸ " + label + " "
	if focused {
		return theme.ButtonActive.Render(text)
	}
	return theme.ButtonInactive.Render(text)
}
