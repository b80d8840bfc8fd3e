package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/mnordin/planverk/internal/ui/layout"
)

// Screen is one full-frame view in the TUI. The router owns the stack;
// the app chrome draws the header and footer around View's output.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area only; width and height exclude the
	// header and footer.
	View(width, height int) string

	// Title labels the screen in the header bar.
	Title() string
}

// KeyHintProvider lets a screen put its own key hints in the footer.
// Screens without it get the generic navigation hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ModelChangedMsg announces the active model to the root model so the
// header can display it. Sent once the provider is constructed.
type ModelChangedMsg struct {
	ModelID string
}
