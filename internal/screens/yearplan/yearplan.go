package yearplan

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mnordin/planverk/internal/curriculum"
	"github.com/mnordin/planverk/internal/router"
	"github.com/mnordin/planverk/internal/screen"
	"github.com/mnordin/planverk/internal/ui/components"
	"github.com/mnordin/planverk/internal/ui/layout"
	"github.com/mnordin/planverk/internal/ui/theme"
)

// planGeneratedMsg is sent when the skeleton generation finishes.
type planGeneratedMsg struct {
	Err error
}

type mode int

const (
	modeEmpty mode = iota
	modeGenerating
	modeList
	modeEdit
	modeAppend
	modeConfirmReset
)

// YearPlanScreen shows the weekly skeleton and lets the teacher
// regenerate, edit, extend, and trim it.
type YearPlanScreen struct {
	sess *curriculum.Session

	mode     mode
	cursor   int
	topic    components.TextInput
	grammar  components.TextInput
	editWeek int // week being edited, 0 when appending
	focus    int // 0 topic, 1 grammar
	errMsg   string
}

var _ screen.Screen = (*YearPlanScreen)(nil)
var _ screen.KeyHintProvider = (*YearPlanScreen)(nil)

// New creates the year plan screen.
func New(sess *curriculum.Session) *YearPlanScreen {
	s := &YearPlanScreen{sess: sess}
	if len(sess.Plan()) > 0 {
		s.mode = modeList
	}
	return s
}

func (s *YearPlanScreen) Title() string {
	return "Year Plan"
}

func (s *YearPlanScreen) Init() tea.Cmd {
	return nil
}

func (s *YearPlanScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeList:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "E", Description: "Edit"},
			{Key: "A", Description: "Add week"},
			{Key: "D", Description: "Delete"},
			{Key: "R", Description: "Reset plan"},
			{Key: "Esc", Description: "Back"},
		}
	case modeEdit, modeAppend:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Switch field"},
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeConfirmReset:
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset"},
			{Key: "N", Description: "Keep plan"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *YearPlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planGeneratedMsg:
		if msg.Err != nil {
			s.mode = modeEmpty
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.mode = modeList
		s.cursor = 0
		s.errMsg = ""
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s.forwardToInputs(msg)
}

func (s *YearPlanScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "esc" && (s.mode == modeEmpty || s.mode == modeList) {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.mode {
	case modeEmpty:
		if key == "enter" {
			s.mode = modeGenerating
			s.errMsg = ""
			return s, s.generate()
		}

	case modeGenerating:
		return s, nil

	case modeList:
		plan := s.sess.Plan()
		switch key {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(plan)-1 {
				s.cursor++
			}
		case "e", "enter":
			if s.cursor < len(plan) {
				entry := plan[s.cursor]
				s.openEditor(entry.Topic, entry.Grammar)
				s.editWeek = entry.Week
				s.mode = modeEdit
				return s, s.topic.Init()
			}
		case "a":
			s.openEditor("", "")
			s.editWeek = 0
			s.mode = modeAppend
			return s, s.topic.Init()
		case "d":
			if s.cursor < len(plan) {
				if err := s.sess.RemoveWeek(plan[s.cursor].Week); err != nil {
					s.errMsg = err.Error()
				} else if s.cursor >= len(plan)-1 && s.cursor > 0 {
					s.cursor--
				}
				if len(s.sess.Plan()) == 0 {
					s.mode = modeEmpty
				}
			}
		case "r":
			s.mode = modeConfirmReset
		}
		return s, nil

	case modeEdit, modeAppend:
		switch key {
		case "tab", "down", "up", "shift+tab":
			s.focus = 1 - s.focus
			if s.focus == 0 {
				s.topic.Model.Focus()
				s.grammar.Model.Blur()
			} else {
				s.topic.Model.Blur()
				s.grammar.Model.Focus()
			}
			return s, nil
		case "enter":
			return s, s.saveEditor()
		case "esc":
			s.mode = modeList
			return s, nil
		}

	case modeConfirmReset:
		switch key {
		case "y", "Y":
			s.sess.ResetPlan()
			s.mode = modeEmpty
			s.cursor = 0
		case "n", "N", "esc":
			s.mode = modeList
		}
		return s, nil
	}

	return s.forwardToInputs(msg)
}

func (s *YearPlanScreen) forwardToInputs(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.mode != modeEdit && s.mode != modeAppend {
		return s, nil
	}
	var cmd tea.Cmd
	if s.focus == 0 {
		s.topic, cmd = s.topic.Update(msg)
	} else {
		s.grammar, cmd = s.grammar.Update(msg)
	}
	return s, cmd
}

func (s *YearPlanScreen) openEditor(topic, grammar string) {
	s.topic = components.NewTextInput("Topic", 200)
	s.grammar = components.NewTextInput("Grammar focus", 200)
	s.topic.SetValue(topic)
	s.grammar.SetValue(grammar)
	s.grammar.Model.Blur()
	s.focus = 0
	s.errMsg = ""
}

func (s *YearPlanScreen) saveEditor() tea.Cmd {
	topic := strings.TrimSpace(s.topic.Value())
	grammar := strings.TrimSpace(s.grammar.Value())
	if topic == "" {
		s.errMsg = "Topic cannot be empty."
		return nil
	}

	var err error
	if s.mode == modeAppend {
		err = s.sess.AppendWeek(topic, grammar)
	} else {
		err = s.sess.UpdateWeek(s.editWeek, topic, grammar)
	}
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.mode = modeList
	s.errMsg = ""
	return nil
}

// generate runs the skeleton stage off the update loop.
func (s *YearPlanScreen) generate() tea.Cmd {
	sess := s.sess
	return func() tea.Msg {
		return planGeneratedMsg{Err: sess.GeneratePlan(context.Background())}
	}
}

func (s *YearPlanScreen) View(width, height int) string {
	switch s.mode {
	case modeEmpty:
		return s.renderCentered(width, height,
			theme.Body.Render("No year plan yet.")+"\n\n"+
				components.Button("Generate 34-week skeleton", true)+
				s.renderError())

	case modeGenerating:
		return s.renderCentered(width, height,
			theme.Hint.Render("Drafting the year skeleton..."))

	case modeConfirmReset:
		return s.renderCentered(width, height,
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
				Render("Reset the whole plan?")+"\n\n"+
				theme.Body.Render("All week entries are discarded. The locked profile is kept."))

	case modeEdit, modeAppend:
		title := fmt.Sprintf("Editing week %d", s.editWeek)
		if s.mode == modeAppend {
			title = "New week"
		}
		return s.renderCentered(width, height,
			theme.Body.Render(title)+"\n\n"+
				"Topic:\n  "+s.topic.View()+"\n\n"+
				"Grammar focus:\n  "+s.grammar.View()+
				s.renderError())
	}

	return s.renderList(width, height)
}

func (s *YearPlanScreen) renderList(width, height int) string {
	plan := s.sess.Plan()

	done := 0
	for _, e := range plan {
		if e.Status == curriculum.StatusComplete {
			done++
		}
	}

	var b strings.Builder
	bar := components.NewProgressBar(
		fmt.Sprintf("Material %d/%d", done, len(plan)),
		float64(done)/float64(max(len(plan), 1)),
		min(width-8, 60))
	b.WriteString(bar.View() + "\n\n")

	// Window the list around the cursor so long plans fit the frame.
	visible := height - 5
	if visible < 5 {
		visible = 5
	}
	start := 0
	if s.cursor >= visible {
		start = s.cursor - visible + 1
	}
	end := min(start+visible, len(plan))

	for i := start; i < end; i++ {
		e := plan[i]
		status := theme.Pending.Render("·")
		if e.Status == curriculum.StatusComplete {
			status = theme.Done.Render("✓")
		}

		line := fmt.Sprintf("%s  v%02d  %-40s %s", status, e.Week, clip(e.Topic, 40), clip(e.Grammar, 24))
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		if i == s.cursor {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			prefix = "▸ "
		}
		b.WriteString(style.Render(prefix+line) + "\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.NewStyle().Padding(1, 4).Render(b.String())
}

func (s *YearPlanScreen) renderCentered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *YearPlanScreen) renderError() string {
	if s.errMsg == "" {
		return ""
	}
	return "\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
