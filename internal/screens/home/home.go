package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mnordin/planverk/internal/curriculum"
	"github.com/mnordin/planverk/internal/router"
	"github.com/mnordin/planverk/internal/screen"
	"github.com/mnordin/planverk/internal/screens/calibrate"
	"github.com/mnordin/planverk/internal/screens/modellog"
	"github.com/mnordin/planverk/internal/screens/workbench"
	"github.com/mnordin/planverk/internal/screens/yearplan"
	"github.com/mnordin/planverk/internal/store"
	"github.com/mnordin/planverk/internal/ui/components"
	"github.com/mnordin/planverk/internal/ui/theme"
)

// HomeScreen is the hub for the three pipeline stages. Stages appear in
// order; entries past the current gate render disabled until their
// prerequisite stage has produced data.
type HomeScreen struct {
	sess      *curriculum.Session
	eventRepo store.EventRepo
	menu      components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen for a session.
func New(sess *curriculum.Session, eventRepo store.EventRepo) *HomeScreen {
	h := &HomeScreen{sess: sess, eventRepo: eventRepo}

	items := []components.MenuItem{
		{Label: "CALIBRATION", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: calibrate.New(sess)}
			}
		}},
		{Label: "YEAR PLAN", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: yearplan.New(sess)}
			}
		}},
		{Label: "WORKBENCH", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: workbench.New(sess)}
			}
		}},
		{Label: "MODEL LOG", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: modellog.New(eventRepo)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	h.refreshGates()
	return h
}

// refreshGates re-derives the disabled state of each stage entry.
// Called on every update so returning from a child screen reflects new
// session data immediately.
func (h *HomeScreen) refreshGates() {
	gates := h.sess.Gates()

	h.menu.Items[1].Disabled = !gates.ProfileLocked
	h.menu.Items[2].Disabled = !gates.PlanReady
	h.menu.Items[3].Disabled = h.eventRepo == nil

	if h.menu.Items[h.menu.Selected].Disabled {
		for i, item := range h.menu.Items {
			if !item.Disabled {
				h.menu.Selected = i
				break
			}
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.refreshGates()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("Year Planning Pipeline"))
	sections = append(sections, h.renderStatus(width))
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderStatus summarizes session progress under the title.
func (h *HomeScreen) renderStatus(width int) string {
	gates := h.sess.Gates()

	var parts []string

	if profile, ok := h.sess.Profile(); ok {
		parts = append(parts, theme.Done.Render("✓ Profile locked")+
			theme.Hint.Render(fmt.Sprintf("  (%s, %s)", profile.Audience, profile.Level)))
	} else if gates.HasDraft {
		parts = append(parts, theme.Pending.Render("◌ Profile drafted, not locked"))
	} else {
		parts = append(parts, theme.Pending.Render("◌ No curriculum profile yet"))
	}

	plan := h.sess.Plan()
	if len(plan) > 0 {
		done := 0
		for _, e := range plan {
			if e.Status == curriculum.StatusComplete {
				done++
			}
		}
		parts = append(parts, theme.Done.Render(
			fmt.Sprintf("✓ Year plan: %d weeks, %d with material", len(plan), done)))
	} else {
		parts = append(parts, theme.Pending.Render("◌ No year plan yet"))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(parts, "\n"))
}

func (h *HomeScreen) Title() string {
	return "Home"
}
