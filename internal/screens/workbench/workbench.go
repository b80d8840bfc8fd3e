package workbench

import (
	"context"
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

// materialReadyMsg is sent when lesson generation finishes.
type materialReadyMsg struct {
	Week     int
	Material curriculum.Material
	Err      error
}

// sourceLoadedMsg is sent when a source document has been read and its
// text extracted.
type sourceLoadedMsg struct {
	Excerpt curriculum.SourceExcerpt
	Err     error
}

type mode int

const (
	modePick mode = iota
	modeForm
	modeGenerating
	modeView
)

// Form focus positions.
const (
	focusTopic = iota
	focusGrammar
	focusNotes
	focusSource
	focusAccessible
	focusGenerate
	focusCount
)

var tabNames = []string{"Teacher Guide", "Student Text", "Exercises"}

// WorkbenchScreen runs the third pipeline stage: pick a week, shape the
// inputs, generate the three lesson sections, and read them in tabs.
type WorkbenchScreen struct {
	sess *curriculum.Session

	mode   mode
	cursor int

	week       int
	topic      components.TextInput
	grammar    components.TextInput
	notes      components.TextInput
	sourcePath components.TextInput
	accessible components.Toggle
	sources    []curriculum.SourceExcerpt
	focus      int

	material curriculum.Material
	tab      int
	errMsg   string
}

var _ screen.Screen = (*WorkbenchScreen)(nil)
var _ screen.KeyHintProvider = (*WorkbenchScreen)(nil)

// New creates the workbench screen.
func New(sess *curriculum.Session) *WorkbenchScreen {
	return &WorkbenchScreen{sess: sess}
}

func (s *WorkbenchScreen) Title() string {
	return "Workbench"
}

func (s *WorkbenchScreen) Init() tea.Cmd {
	return nil
}

func (s *WorkbenchScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modePick:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Open week"},
			{Key: "V", Description: "View material"},
			{Key: "Esc", Description: "Back"},
		}
	case modeForm:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Add source / Generate"},
			{Key: "Esc", Description: "Back"},
		}
	case modeView:
		return []layout.KeyHint{
			{Key: "←→/1-3", Description: "Switch section"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return nil
	}
}

func (s *WorkbenchScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case materialReadyMsg:
		if msg.Err != nil {
			s.mode = modeForm
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.material = msg.Material
		s.mode = modeView
		s.tab = 0
		s.errMsg = ""
		return s, nil

	case sourceLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.sources = append(s.sources, msg.Excerpt)
		s.sourcePath.SetValue("")
		s.errMsg = ""
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s.forwardToFocused(msg)
}

func (s *WorkbenchScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.mode {
	case modePick:
		plan := s.sess.Plan()
		switch key {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(plan)-1 {
				s.cursor++
			}
		case "enter":
			if s.cursor < len(plan) {
				s.openForm(plan[s.cursor])
				return s, s.topic.Init()
			}
		case "v":
			if s.cursor < len(plan) {
				if m, ok := s.sess.Material(plan[s.cursor].Week); ok {
					s.week = plan[s.cursor].Week
					s.material = m
					s.mode = modeView
					s.tab = 0
				} else {
					s.errMsg = "No material generated for that week yet."
				}
			}
		}
		return s, nil

	case modeForm:
		switch key {
		case "esc":
			s.mode = modePick
			s.errMsg = ""
			return s, nil
		case "tab", "down":
			s.setFocus((s.focus + 1) % focusCount)
			return s, nil
		case "shift+tab", "up":
			s.setFocus((s.focus + focusCount - 1) % focusCount)
			return s, nil
		case "enter":
			switch s.focus {
			case focusSource:
				return s, s.loadSource()
			case focusGenerate:
				s.mode = modeGenerating
				s.errMsg = ""
				return s, s.generate()
			case focusAccessible:
				s.accessible.On = !s.accessible.On
				return s, nil
			default:
				s.setFocus(s.focus + 1)
				return s, nil
			}
		case " ", "space":
			if s.focus == focusAccessible {
				s.accessible.On = !s.accessible.On
				return s, nil
			}
		}

	case modeGenerating:
		return s, nil

	case modeView:
		switch key {
		case "esc":
			s.mode = modePick
			return s, nil
		case "left", "h":
			s.tab = (s.tab + len(tabNames) - 1) % len(tabNames)
			return s, nil
		case "right", "l", "tab":
			s.tab = (s.tab + 1) % len(tabNames)
			return s, nil
		case "1", "2", "3":
			s.tab = int(key[0] - '1')
			return s, nil
		}
		return s, nil
	}

	return s.forwardToFocused(msg)
}

func (s *WorkbenchScreen) forwardToFocused(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.mode != modeForm {
		return s, nil
	}
	var cmd tea.Cmd
	switch s.focus {
	case focusTopic:
		s.topic, cmd = s.topic.Update(msg)
	case focusGrammar:
		s.grammar, cmd = s.grammar.Update(msg)
	case focusNotes:
		s.notes, cmd = s.notes.Update(msg)
	case focusSource:
		s.sourcePath, cmd = s.sourcePath.Update(msg)
	}
	return s, cmd
}

// openForm prepares the input form for a plan entry. Topic and grammar
// are prefilled from the skeleton but stay editable per generation.
func (s *WorkbenchScreen) openForm(entry curriculum.WeekEntry) {
	s.week = entry.Week
	s.topic = components.NewTextInput("Topic", 200)
	s.topic.SetValue(entry.Topic)
	s.grammar = components.NewTextInput("Grammar focus", 200)
	s.grammar.SetValue(entry.Grammar)
	s.grammar.Model.Blur()
	s.notes = components.NewTextInput("Anything the model should know (optional)", 500)
	s.notes.Model.Blur()
	s.sourcePath = components.NewTextInput("Path to a source document (optional)", 300)
	s.sourcePath.Model.Blur()
	s.accessible = components.NewToggle("Dyslexia-friendly adaptation")
	s.sources = nil
	s.focus = focusTopic
	s.mode = modeForm
	s.errMsg = ""
}

func (s *WorkbenchScreen) setFocus(i int) {
	s.focus = i
	inputs := []*components.TextInput{&s.topic, &s.grammar, &s.notes, &s.sourcePath}
	for j, in := range inputs {
		if j == i {
			in.Model.Focus()
		} else {
			in.Model.Blur()
		}
	}
	s.accessible.Focused = i == focusAccessible
}

// loadSource reads and extracts the document named in the source field.
func (s *WorkbenchScreen) loadSource() tea.Cmd {
	path := strings.TrimSpace(s.sourcePath.Value())
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return sourceLoadedMsg{Err: fmt.Errorf("read source: %w", err)}
		}
		name := filepath.Base(path)
		text, err := extract.Text(extract.Document{Name: name, Data: data})
		if err != nil {
			return sourceLoadedMsg{Err: err}
		}
		return sourceLoadedMsg{Excerpt: curriculum.SourceExcerpt{Name: name, Text: text}}
	}
}

// generate runs the lesson stage off the update loop.
func (s *WorkbenchScreen) generate() tea.Cmd {
	sess := s.sess
	input := curriculum.WorkbenchInput{
		Week:       s.week,
		Topic:      strings.TrimSpace(s.topic.Value()),
		Grammar:    strings.TrimSpace(s.grammar.Value()),
		Notes:      strings.TrimSpace(s.notes.Value()),
		Accessible: s.accessible.On,
		Sources:    s.sources,
	}
	return func() tea.Msg {
		material, err := sess.GenerateMaterial(context.Background(), input)
		return materialReadyMsg{Week: input.Week, Material: material, Err: err}
	}
}

func (s *WorkbenchScreen) View(width, height int) string {
	switch s.mode {
	case modePick:
		return s.renderPick(width, height)
	case modeForm:
		return s.renderForm(width, height)
	case modeGenerating:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render(fmt.Sprintf("Writing lesson material for week %d...", s.week)))
	case modeView:
		return s.renderView(width, height)
	}
	return ""
}

func (s *WorkbenchScreen) renderPick(width, height int) string {
	plan := s.sess.Plan()
	if len(plan) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("The year plan is empty. Generate it first."))
	}

	var b strings.Builder
	b.WriteString(theme.Body.Render("Pick a week to prepare:") + "\n\n")

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

func (s *WorkbenchScreen) renderForm(width, height int) string {
	label := func(idx int, text string) string {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if s.focus == idx {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		return style.Render(text)
	}

	var b strings.Builder
	b.WriteString(theme.Body.Render(fmt.Sprintf("Lesson inputs for week %d", s.week)) + "\n\n")

	b.WriteString(label(focusTopic, "Topic:") + "\n  " + s.topic.View() + "\n\n")
	b.WriteString(label(focusGrammar, "Grammar focus:") + "\n  " + s.grammar.View() + "\n\n")
	b.WriteString(label(focusNotes, "Teacher notes:") + "\n  " + s.notes.View() + "\n\n")

	b.WriteString(label(focusSource, "Source documents:") + "\n")
	for _, src := range s.sources {
		b.WriteString("  " + theme.Done.Render("+ "+src.Name) + "\n")
	}
	b.WriteString("  " + s.sourcePath.View() + "\n\n")

	b.WriteString(s.accessible.View() + "\n\n")

	b.WriteString(components.Button("Generate lesson", s.focus == focusGenerate) + "\n")

	if s.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg) + "\n")
	}

	content := lipgloss.NewStyle().Width(min(width-8, 90)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *WorkbenchScreen) renderView(width, height int) string {
	var tabs []string
	for i, name := range tabNames {
		style := lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 2)
		if i == s.tab {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 2).
				Border(lipgloss.RoundedBorder(), false, false, true, false).
				BorderForeground(theme.Primary)
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%d %s", i+1, name)))
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	var body string
	switch s.tab {
	case 0:
		body = s.material.TeacherGuide
	case 1:
		body = s.material.StudentText
	case 2:
		body = s.material.Exercises
	}

	bodyBox := lipgloss.NewStyle().
		Width(min(width-8, 100)).
		Foreground(theme.Text).
		Render(body)

	header := theme.Subtitle.Render(fmt.Sprintf("Week %d", s.week))

	content := header + "\n" + tabBar + "\n\n" + bodyBox
	return lipgloss.NewStyle().Padding(1, 4).Render(content)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
