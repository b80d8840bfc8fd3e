package calibrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mnordin/planverk/internal/curriculum"
	"github.com/mnordin/planverk/internal/extract"
	"github.com/mnordin/planverk/internal/router"
	"github.com/mnordin/planverk/internal/screen"
	"github.com/mnordin/planverk/internal/ui/components"
	"github.com/mnordin/planverk/internal/ui/layout"
	"github.com/mnordin/planverk/internal/ui/theme"
)

// analyzedMsg is sent when document analysis finishes.
type analyzedMsg struct {
	Err error
}

type phase int

const (
	phasePath phase = iota
	phaseAnalyzing
	phaseForm
	phaseLocked
)

// Field labels in form order.
var fieldLabels = []string{"Audience", "CEFR level", "Grade E criteria", "Themes"}

const lockIndex = 4 // after the four fields

// CalibrateScreen runs the first pipeline stage: pick a curriculum
// document, let the model extract the profile, edit the four fields,
// and lock them for the rest of the session.
type CalibrateScreen struct {
	sess *curriculum.Session

	phase  phase
	path   components.TextInput
	fields [4]components.TextInput
	focus  int
	errMsg string
}

var _ screen.Screen = (*CalibrateScreen)(nil)
var _ screen.KeyHintProvider = (*CalibrateScreen)(nil)

// New creates the calibration screen. If the session already carries a
// locked profile the screen opens in read-only mode.
func New(sess *curriculum.Session) *CalibrateScreen {
	s := &CalibrateScreen{
		sess: sess,
		path: components.NewTextInput("Path to curriculum document (.pdf or .txt)", 300),
	}
	for i, label := range fieldLabels {
		s.fields[i] = components.NewTextInput(label, 500)
		s.fields[i].Model.Blur()
	}

	if _, locked := sess.Profile(); locked {
		s.phase = phaseLocked
		s.loadProfileIntoForm()
	} else if draft, ok := sess.Draft(); ok {
		s.phase = phaseForm
		s.setFormValues(draft)
		s.setFocus(0)
	}
	return s
}

func (s *CalibrateScreen) Title() string {
	return "Calibration"
}

func (s *CalibrateScreen) Init() tea.Cmd {
	if s.phase == phasePath {
		return s.path.Init()
	}
	return nil
}

func (s *CalibrateScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseForm:
		return []layout.KeyHint{
			{Key: "Tab/↓", Description: "Next field"},
			{Key: "Enter", Description: "Lock profile"},
			{Key: "Ctrl+R", Description: "New document"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseLocked:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Analyze"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *CalibrateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case analyzedMsg:
		if msg.Err != nil {
			s.phase = phasePath
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		draft, _ := s.sess.Draft()
		s.phase = phaseForm
		s.errMsg = ""
		s.setFormValues(draft)
		s.setFocus(0)
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s.forwardToFocused(msg)
}

func (s *CalibrateScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "esc" && s.phase != phaseAnalyzing {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.phase {
	case phasePath:
		if msg.String() == "enter" {
			path := strings.TrimSpace(s.path.Value())
			if path == "" {
				s.errMsg = "Enter a file path."
				return s, nil
			}
			s.phase = phaseAnalyzing
			s.errMsg = ""
			return s, s.analyze(path)
		}

	case phaseAnalyzing:
		return s, nil

	case phaseForm:
		switch msg.String() {
		case "tab", "down":
			s.setFocus((s.focus + 1) % (lockIndex + 1))
			return s, nil
		case "shift+tab", "up":
			s.setFocus((s.focus + lockIndex) % (lockIndex + 1))
			return s, nil
		case "ctrl+r":
			// Start over with a new document; the draft stays until
			// the next analysis overwrites it.
			s.phase = phasePath
			s.errMsg = ""
			return s, s.path.Init()
		case "enter":
			if s.focus == lockIndex {
				return s, s.lock()
			}
			s.setFocus(s.focus + 1)
			return s, nil
		}

	case phaseLocked:
		return s, nil
	}

	return s.forwardToFocused(msg)
}

func (s *CalibrateScreen) forwardToFocused(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case s.phase == phasePath:
		s.path, cmd = s.path.Update(msg)
	case s.phase == phaseForm && s.focus < lockIndex:
		s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	}
	return s, cmd
}

func (s *CalibrateScreen) setFocus(i int) {
	s.focus = i
	for j := range s.fields {
		if j == i {
			s.fields[j].Model.Focus()
		} else {
			s.fields[j].Model.Blur()
		}
	}
}

// analyze reads the document and runs the calibration stage.
func (s *CalibrateScreen) analyze(path string) tea.Cmd {
	sess := s.sess
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return analyzedMsg{Err: fmt.Errorf("read document: %w", err)}
		}
		doc := extract.Document{Name: filepath.Base(path), Data: data}
		if err := sess.Calibrate(context.Background(), doc); err != nil {
			return analyzedMsg{Err: err}
		}
		return analyzedMsg{}
	}
}

// lock pushes the edited fields into the draft and locks it.
func (s *CalibrateScreen) lock() tea.Cmd {
	profile := s.formValues()
	if err := s.sess.SetDraft(profile); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if err := s.sess.Lock(); err != nil {
		if errors.Is(err, curriculum.ErrDraftIncomplete) {
			s.errMsg = "All four fields must be filled before locking."
		} else {
			s.errMsg = err.Error()
		}
		return nil
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *CalibrateScreen) setFormValues(p curriculum.Profile) {
	s.fields[0].SetValue(p.Audience)
	s.fields[1].SetValue(p.Level)
	s.fields[2].SetValue(p.Grading)
	s.fields[3].SetValue(p.Themes)
}

func (s *CalibrateScreen) formValues() curriculum.Profile {
	return curriculum.Profile{
		Audience: strings.TrimSpace(s.fields[0].Value()),
		Level:    strings.TrimSpace(s.fields[1].Value()),
		Grading:  strings.TrimSpace(s.fields[2].Value()),
		Themes:   strings.TrimSpace(s.fields[3].Value()),
	}
}

func (s *CalibrateScreen) loadProfileIntoForm() {
	if p, ok := s.sess.Profile(); ok {
		s.setFormValues(p)
	}
}

func (s *CalibrateScreen) View(width, height int) string {
	var b strings.Builder

	switch s.phase {
	case phasePath:
		b.WriteString(theme.Body.Render("Point Planverk at your curriculum document.") + "\n\n")
		b.WriteString(s.path.View() + "\n")

	case phaseAnalyzing:
		b.WriteString(theme.Hint.Render("Analyzing document... this can take a moment.") + "\n")

	case phaseForm, phaseLocked:
		if s.phase == phaseLocked {
			b.WriteString(theme.Done.Render("Profile is locked for this session.") + "\n\n")
		} else {
			b.WriteString(theme.Body.Render("Review the extracted profile. Edit freely, then lock it.") + "\n\n")
		}
		for i, label := range fieldLabels {
			style := lipgloss.NewStyle().Foreground(theme.TextDim)
			if s.phase == phaseForm && s.focus == i {
				style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			}
			b.WriteString(style.Render(label+":") + "\n")
			if s.phase == phaseLocked {
				b.WriteString("  " + theme.Body.Render(s.fields[i].Value()) + "\n\n")
			} else {
				b.WriteString("  " + s.fields[i].View() + "\n\n")
			}
		}
		if s.phase == phaseForm {
			b.WriteString(components.Button("Lock profile", s.focus == lockIndex) + "\n")
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg) + "\n")
	}

	content := lipgloss.NewStyle().Width(min(width-8, 90)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
