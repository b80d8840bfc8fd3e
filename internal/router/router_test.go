package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/mnordin/planverk/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPushAndPop(t *testing.T) {
	first := &stubScreen{title: "first"}
	second := &stubScreen{title: "second"}
	r := New(first)

	r.Push(second)
	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "second", r.Active().Title())
	assert.True(t, second.initRan, "pushed screen must be initialized")

	r.Pop()
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "first", r.Active().Title())
}

func TestPopKeepsBottomScreen(t *testing.T) {
	r := New(&stubScreen{title: "only"})
	r.Pop()
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "only", r.Active().Title())
}

func TestReplaceSwapsInPlace(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.Push(&stubScreen{title: "second"})

	third := &stubScreen{title: "third"}
	r.Replace(third)

	assert.Equal(t, 2, r.Depth(), "replace must not grow the stack")
	assert.Equal(t, "third", r.Active().Title())
	assert.True(t, third.initRan)
}

func TestNavigationMessages(t *testing.T) {
	r := New(&stubScreen{title: "home"})

	pushed := &stubScreen{title: "pushed"}
	r.Update(PushScreenMsg{Screen: pushed})
	assert.Equal(t, "pushed", r.Active().Title())

	swapped := &stubScreen{title: "swapped"}
	r.Update(ReplaceScreenMsg{Screen: swapped})
	assert.Equal(t, "swapped", r.Active().Title())
	assert.True(t, swapped.initRan)
	assert.Equal(t, 2, r.Depth())

	r.Update(PopScreenMsg{})
	assert.Equal(t, "home", r.Active().Title())
}
