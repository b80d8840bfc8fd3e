package curriculum

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnordin/planverk/internal/extract"
	"github.com/mnordin/planverk/internal/llm"
)

func newTestSession(responses ...llm.MockResponse) (*Session, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	svc := NewService(mock, DefaultConfig())
	return NewSession(svc), mock
}

func profileResponse(t *testing.T) llm.MockResponse {
	t.Helper()
	body, err := json.Marshal(testProfile())
	require.NoError(t, err)
	return llm.MockResponse{Content: body}
}

func TestSessionCalibrateProducesDraft(t *testing.T) {
	s, mock := newTestSession(profileResponse(t))

	doc := extract.Document{Name: "kursplan.txt", Data: []byte("Årskurs 7, grekiska som modersmål.")}
	require.NoError(t, s.Calibrate(context.Background(), doc))

	draft, ok := s.Draft()
	require.True(t, ok)
	assert.Equal(t, "A2", draft.Level)
	assert.Equal(t, 1, mock.CallCount())

	gates := s.Gates()
	assert.True(t, gates.HasDraft)
	assert.False(t, gates.ProfileLocked)
	assert.False(t, gates.PlanReady)
}

func TestSessionLockPreconditions(t *testing.T) {
	s, _ := newTestSession()

	// Nothing to lock yet.
	assert.ErrorIs(t, s.Lock(), ErrNoDraft)

	// Incomplete draft is rejected.
	require.NoError(t, s.SetDraft(Profile{Audience: "Grade 7"}))
	assert.ErrorIs(t, s.Lock(), ErrDraftIncomplete)

	require.NoError(t, s.SetDraft(testProfile()))
	require.NoError(t, s.Lock())

	// One-way: a second lock is rejected, and so are draft edits.
	assert.ErrorIs(t, s.Lock(), ErrProfileLocked)
	assert.ErrorIs(t, s.SetDraft(testProfile()), ErrProfileLocked)

	locked, ok := s.Profile()
	require.True(t, ok)
	assert.Equal(t, testProfile(), locked)
}

func TestSessionLockedProfileUnaffectedByLaterDraftState(t *testing.T) {
	s, _ := newTestSession()

	require.NoError(t, s.SetDraft(testProfile()))
	require.NoError(t, s.Lock())

	doc := extract.Document{Name: "other.txt", Data: []byte("text")}
	assert.ErrorIs(t, s.Calibrate(context.Background(), doc), ErrProfileLocked)
}

func TestSessionGeneratePlan(t *testing.T) {
	s, _ := newTestSession(llm.MockResponse{
		Content: json.RawMessage("Myths: Zeus | Noun Gender\nGeography: Athens | Adjectives"),
	})

	// Plan requires a locked profile.
	assert.ErrorIs(t, s.GeneratePlan(context.Background()), ErrProfileNotLocked)

	require.NoError(t, s.SetDraft(testProfile()))
	require.NoError(t, s.Lock())
	require.NoError(t, s.GeneratePlan(context.Background()))

	plan := s.Plan()
	require.Len(t, plan, 2)
	assert.Equal(t, "Myths: Zeus", plan[0].Topic)
	assert.True(t, s.Gates().PlanReady)

	// Regenerating over an existing plan is rejected.
	assert.ErrorIs(t, s.GeneratePlan(context.Background()), ErrPlanExists)
}

func TestSessionPlanEdits(t *testing.T) {
	s, _ := newTestSession(llm.MockResponse{
		Content: json.RawMessage("A | X\nB | Y\nC | Z"),
	})
	require.NoError(t, s.SetDraft(testProfile()))
	require.NoError(t, s.Lock())
	require.NoError(t, s.GeneratePlan(context.Background()))

	require.NoError(t, s.UpdateWeek(2, "B edited", "Y edited"))
	assert.ErrorIs(t, s.UpdateWeek(99, "x", "y"), ErrWeekNotFound)

	require.NoError(t, s.RemoveWeek(1))
	require.NoError(t, s.AppendWeek("D", "W"))

	plan := s.Plan()
	require.Len(t, plan, 3)
	// Removal leaves week numbers untouched; append continues past the
	// highest remaining number.
	assert.Equal(t, 2, plan[0].Week)
	assert.Equal(t, "B edited", plan[0].Topic)
	assert.Equal(t, 4, plan[2].Week)
	assert.Equal(t, "D", plan[2].Topic)
}

func TestSessionResetPlanKeepsProfile(t *testing.T) {
	s, _ := newTestSession(llm.MockResponse{
		Content: json.RawMessage("A | X"),
	})
	require.NoError(t, s.SetDraft(testProfile()))
	require.NoError(t, s.Lock())
	require.NoError(t, s.GeneratePlan(context.Background()))

	s.ResetPlan()

	assert.Empty(t, s.Plan())
	gates := s.Gates()
	assert.True(t, gates.ProfileLocked)
	assert.False(t, gates.PlanReady)

	// A fresh plan can be generated after reset.
	s2, _ := newTestSession(llm.MockResponse{Content: json.RawMessage("A | X")},
		llm.MockResponse{Content: json.RawMessage("B | Y")})
	require.NoError(t, s2.SetDraft(testProfile()))
	require.NoError(t, s2.Lock())
	require.NoError(t, s2.GeneratePlan(context.Background()))
	s2.ResetPlan()
	require.NoError(t, s2.GeneratePlan(context.Background()))
	require.Len(t, s2.Plan(), 1)
	assert.Equal(t, "B", s2.Plan()[0].Topic)
}

func TestSessionGenerateMaterial(t *testing.T) {
	s, _ := newTestSession(
		llm.MockResponse{Content: json.RawMessage("A | X\nB | Y")},
		llm.MockResponse{Content: json.RawMessage("<TEACHER>guide</TEACHER><STUDENT_TEXT>κείμενο</STUDENT_TEXT><STUDENT_EXERCISES>ασκήσεις</STUDENT_EXERCISES>")},
	)
	require.NoError(t, s.SetDraft(testProfile()))
	require.NoError(t, s.Lock())

	_, err := s.GenerateMaterial(context.Background(), WorkbenchInput{Week: 1})
	assert.ErrorIs(t, err, ErrNoPlan)

	require.NoError(t, s.GeneratePlan(context.Background()))

	_, err = s.GenerateMaterial(context.Background(), WorkbenchInput{Week: 7})
	assert.ErrorIs(t, err, ErrWeekNotFound)

	input := WorkbenchInput{Week: 2, Topic: "B", Grammar: "Y"}
	material, err := s.GenerateMaterial(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "guide", material.TeacherGuide)
	assert.Equal(t, "κείμενο", material.StudentText)

	stored, ok := s.Material(2)
	require.True(t, ok)
	assert.Equal(t, material, stored)

	// The generated week flips to complete; the other stays pending.
	plan := s.Plan()
	assert.Equal(t, StatusPending, plan[0].Status)
	assert.Equal(t, StatusComplete, plan[1].Status)
}

func TestManagerSessionIsolation(t *testing.T) {
	m := NewManager()

	svcA := NewService(llm.NewMockProvider(profileResponse(t)), DefaultConfig())
	svcB := NewService(llm.NewMockProvider(), DefaultConfig())

	a := m.Open(svcA)
	b := m.Open(svcB)
	require.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, m.Len())

	doc := extract.Document{Name: "kursplan.txt", Data: []byte("Årskurs 7.")}
	require.NoError(t, a.Calibrate(context.Background(), doc))

	_, ok := b.Draft()
	assert.False(t, ok, "calibration in one session must not leak into another")

	m.Close(a.ID)
	_, ok = m.Get(a.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}
