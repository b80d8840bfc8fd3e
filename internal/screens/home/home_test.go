package home

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnordin/planverk/internal/curriculum"
	"github.com/mnordin/planverk/internal/llm"
)

func lockedSession(t *testing.T) *curriculum.Session {
	t.Helper()
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("A | X\nB | Y"),
	})
	sess := curriculum.NewSession(curriculum.NewService(mock, curriculum.DefaultConfig()))
	require.NoError(t, sess.SetDraft(curriculum.Profile{
		Audience: "Grade 7", Level: "A2", Grading: "Reads short texts", Themes: "Myths",
	}))
	require.NoError(t, sess.Lock())
	return sess
}

func TestMenuGatesFollowSessionState(t *testing.T) {
	mock := llm.NewMockProvider()
	sess := curriculum.NewSession(curriculum.NewService(mock, curriculum.DefaultConfig()))

	h := New(sess, nil)

	// Fresh session: only calibration and quit are reachable.
	assert.False(t, h.menu.Items[0].Disabled, "calibration")
	assert.True(t, h.menu.Items[1].Disabled, "year plan")
	assert.True(t, h.menu.Items[2].Disabled, "workbench")
	assert.True(t, h.menu.Items[3].Disabled, "model log without store")
	assert.False(t, h.menu.Items[4].Disabled, "quit")
}

func TestMenuUnlocksAfterLockAndPlan(t *testing.T) {
	sess := lockedSession(t)

	h := New(sess, nil)
	assert.False(t, h.menu.Items[1].Disabled, "year plan unlocks on lock")
	assert.True(t, h.menu.Items[2].Disabled, "workbench still gated")

	require.NoError(t, sess.GeneratePlan(context.Background()))
	h.refreshGates()
	assert.False(t, h.menu.Items[2].Disabled, "workbench unlocks with plan")
}

func TestSelectionMovesOffDisabledEntry(t *testing.T) {
	sess := lockedSession(t)
	require.NoError(t, sess.GeneratePlan(context.Background()))

	h := New(sess, nil)
	h.menu.Selected = 3 // model log, disabled without a store
	h.refreshGates()

	assert.False(t, h.menu.Items[h.menu.Selected].Disabled)
}
