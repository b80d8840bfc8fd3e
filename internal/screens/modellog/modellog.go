package modellog

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mnordin/planverk/internal/router"
	"github.com/mnordin/planverk/internal/screen"
	"github.com/mnordin/planverk/internal/store"
	"github.com/mnordin/planverk/internal/ui/layout"
	"github.com/mnordin/planverk/internal/ui/theme"
)

type eventsLoadedMsg struct {
	Events []store.LLMEvent
	Err    error
}

// ModelLogScreen lists recent LLM calls with their stage, token counts
// and latency. Selecting an event shows the captured request and
// response bodies.
type ModelLogScreen struct {
	eventRepo store.EventRepo
	events    []store.LLMEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*ModelLogScreen)(nil)
var _ screen.KeyHintProvider = (*ModelLogScreen)(nil)

// New creates a new ModelLogScreen.
func New(eventRepo store.EventRepo) *ModelLogScreen {
	return &ModelLogScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *ModelLogScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.eventRepo.QueryLLMEvents(context.Background(), store.QueryOpts{Limit: 50})
		return eventsLoadedMsg{Events: events, Err: err}
	}
}

func (s *ModelLogScreen) Title() string {
	return "Model Log"
}

func (s *ModelLogScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ModelLogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *ModelLogScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading model log...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No model calls recorded yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, e := range s.events {
		ok := theme.Done.Render("✓")
		if !e.Success {
			ok = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}

		line := fmt.Sprintf("%s  %s  %-12s %-24s %5d→%-5d %5dms",
			ok,
			e.Timestamp.Local().Format("Jan 02 15:04"),
			e.Stage,
			clip(e.Model, 24),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
		)

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := s.renderDetail(e, width)
			b.WriteString(detail)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *ModelLogScreen) renderDetail(e store.LLMEvent, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var parts []string
	if e.ErrorMessage != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Error).
			Render("error: "+e.ErrorMessage))
	}
	if e.RequestBody != "" {
		parts = append(parts, dim.Render("request:  "+clip(flatten(e.RequestBody), 90)))
	}
	if e.ResponseBody != "" {
		parts = append(parts, dim.Render("response: "+clip(flatten(e.ResponseBody), 90)))
	}
	if len(parts) == 0 {
		parts = append(parts, dim.Italic(true).Render("no bodies captured"))
	}

	var b strings.Builder
	for _, p := range parts {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, p))
		b.WriteString("\n")
	}
	return b.String()
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
