package welcome

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mnordin/planverk/internal/curriculum"
	"github.com/mnordin/planverk/internal/llm"
	"github.com/mnordin/planverk/internal/router"
	"github.com/mnordin/planverk/internal/screen"
	"github.com/mnordin/planverk/internal/store"
	"github.com/mnordin/planverk/internal/ui/components"
	"github.com/mnordin/planverk/internal/ui/theme"
)

// providerReadyMsg is sent when the provider has been constructed and a
// session opened against it.
type providerReadyMsg struct {
	Session *curriculum.Session
	ModelID string
	Err     error
}

// HomeFactory builds the home screen once a session exists.
type HomeFactory func(sess *curriculum.Session, eventRepo store.EventRepo) screen.Screen

// WelcomeScreen greets the teacher and collects the API key when the
// environment doesn't provide one. The key is applied to the in-memory
// provider config only; it is never written anywhere.
type WelcomeScreen struct {
	cfg         llm.Config
	eventRepo   store.EventRepo
	manager     *curriculum.Manager
	curCfg      curriculum.Config
	homeFactory HomeFactory

	input    components.TextInput
	needsKey bool
	building bool
	errMsg   string
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that transitions to the screen produced
// by homeFactory once a provider is ready.
func New(cfg llm.Config, eventRepo store.EventRepo, manager *curriculum.Manager, curCfg curriculum.Config, homeFactory HomeFactory) *WelcomeScreen {
	return &WelcomeScreen{
		cfg:         cfg,
		eventRepo:   eventRepo,
		manager:     manager,
		curCfg:      curCfg,
		homeFactory: homeFactory,
		input:       components.NewSecretInput("Paste your API key...", 200),
		needsKey:    !cfg.HasCredential(),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	if w.needsKey {
		return w.input.Init()
	}
	return nil
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case providerReadyMsg:
		w.building = false
		if msg.Err != nil {
			w.errMsg = msg.Err.Error()
			w.needsKey = true
			return w, nil
		}
		home := w.homeFactory(msg.Session, w.eventRepo)
		return w, tea.Batch(
			func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} },
			func() tea.Msg { return screen.ModelChangedMsg{ModelID: msg.ModelID} },
		)

	case tea.KeyPressMsg:
		if w.building {
			return w, nil
		}
		if msg.String() == "enter" {
			if w.needsKey {
				key := strings.TrimSpace(w.input.Value())
				if key == "" {
					w.errMsg = "An API key is required to continue."
					return w, nil
				}
				w.cfg.ApplyCredential(key)
			}
			w.building = true
			w.errMsg = ""
			return w, w.buildProvider()
		}
		if w.needsKey {
			var cmd tea.Cmd
			w.input, cmd = w.input.Update(msg)
			return w, cmd
		}
		return w, nil
	}

	if w.needsKey {
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}
	return w, nil
}

// buildProvider constructs the provider stack and opens a session.
// Runs off the update loop; the key stays inside the config value.
func (w *WelcomeScreen) buildProvider() tea.Cmd {
	cfg := w.cfg
	eventRepo := w.eventRepo
	manager := w.manager
	curCfg := w.curCfg
	return func() tea.Msg {
		provider, err := llm.NewProvider(context.Background(), cfg, eventRepo)
		if err != nil {
			return providerReadyMsg{Err: err}
		}
		svc := curriculum.NewService(provider, curCfg)
		sess := manager.Open(svc)
		return providerReadyMsg{Session: sess, ModelID: provider.ModelID()}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))
	sections = append(sections, "")
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Curriculum planning for Greek Modersmål teachers"))
	sections = append(sections, "")

	switch {
	case w.building:
		sections = append(sections, theme.Hint.Render("Connecting to the model provider..."))
	case w.needsKey:
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("No API key found in the environment ("+w.cfg.Provider+")."))
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("Enter one below; it is kept in memory for this session only."))
		sections = append(sections, "")
		sections = append(sections, w.input.View())
	default:
		sections = append(sections, theme.Hint.Render("press enter to begin"))
	}

	if w.errMsg != "" {
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(w.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
