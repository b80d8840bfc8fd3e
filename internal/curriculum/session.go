package curriculum

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mnordin/planverk/internal/extract"
)

// Gates is the feature-gate set derived from session data. Stages
// unlock monotonically but never lock earlier stages back out: a
// teacher can always go back and edit the year plan.
type Gates struct {
	HasDraft      bool // calibration produced a draft profile
	ProfileLocked bool // profile confirmed, year plan available
	PlanReady     bool // skeleton exists, workbench available
}

// Session holds one teacher's progression through the pipeline. All
// state is scoped to the session and discarded with it; nothing is
// persisted. Methods are safe for the surface's async command goroutines.
type Session struct {
	ID string

	svc *Service

	mu        sync.Mutex
	draft     *Profile
	locked    *Profile
	plan      []WeekEntry
	materials map[int]Material
}

// NewSession creates an empty session bound to a generation service.
func NewSession(svc *Service) *Session {
	return &Session{
		ID:        uuid.NewString(),
		svc:       svc,
		materials: make(map[int]Material),
	}
}

// Calibrate extracts text from the document, asks the model for the
// curriculum profile, and installs it as the editable draft. Extraction
// and provider failures surface as errors without touching state.
// Rejected once the profile is locked.
func (s *Session) Calibrate(ctx context.Context, doc extract.Document) error {
	s.mu.Lock()
	if s.locked != nil {
		s.mu.Unlock()
		return ErrProfileLocked
	}
	s.mu.Unlock()

	text, err := extract.Text(doc)
	if err != nil {
		return err
	}

	profile, err := s.svc.Analyze(ctx, text)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked != nil {
		return ErrProfileLocked
	}
	s.draft = &profile
	return nil
}

// Draft returns a copy of the editable draft profile.
func (s *Session) Draft() (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return Profile{}, false
	}
	return *s.draft, true
}

// SetDraft replaces the draft with the teacher's edits. Rejected once
// the profile is locked.
func (s *Session) SetDraft(p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked != nil {
		return ErrProfileLocked
	}
	s.draft = &p
	return nil
}

// Lock copies the draft into the immutable locked profile. One-way for
// the session lifetime: a second lock attempt is rejected, never a
// silent overwrite. Requires a complete draft.
func (s *Session) Lock() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked != nil {
		return ErrProfileLocked
	}
	if s.draft == nil {
		return ErrNoDraft
	}
	if !s.draft.Complete() {
		return ErrDraftIncomplete
	}
	locked := *s.draft
	s.locked = &locked
	return nil
}

// Profile returns a copy of the locked profile.
func (s *Session) Profile() (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked == nil {
		return Profile{}, false
	}
	return *s.locked, true
}

// GeneratePlan builds the weekly skeleton. Requires a locked profile
// and no existing plan (reset first to regenerate). The plan is never
// empty on success: unparseable model output degrades to placeholders
// inside the service.
func (s *Session) GeneratePlan(ctx context.Context) error {
	s.mu.Lock()
	if s.locked == nil {
		s.mu.Unlock()
		return ErrProfileNotLocked
	}
	if s.plan != nil {
		s.mu.Unlock()
		return ErrPlanExists
	}
	profile := *s.locked
	s.mu.Unlock()

	entries, err := s.svc.BuildPlan(ctx, profile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = entries
	return nil
}

// Plan returns a copy of the week entries.
func (s *Session) Plan() []WeekEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]WeekEntry, len(s.plan))
	copy(out, s.plan)
	return out
}

// UpdateWeek replaces the topic and grammar focus of an entry.
func (s *Session) UpdateWeek(week int, topic, grammar string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.plan {
		if s.plan[i].Week == week {
			s.plan[i].Topic = topic
			s.plan[i].Grammar = grammar
			return nil
		}
	}
	return ErrWeekNotFound
}

// AppendWeek adds a row after the current last week. The collection is
// allowed to grow past a full year.
func (s *Session) AppendWeek(topic, grammar string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plan == nil {
		return ErrNoPlan
	}
	next := 1
	for _, e := range s.plan {
		if e.Week >= next {
			next = e.Week + 1
		}
	}
	s.plan = append(s.plan, WeekEntry{Week: next, Topic: topic, Grammar: grammar, Status: StatusPending})
	return nil
}

// RemoveWeek drops a row. Remaining weeks keep their numbers; the
// collection tolerates gaps and non-34 lengths.
func (s *Session) RemoveWeek(week int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.plan {
		if s.plan[i].Week == week {
			s.plan = append(s.plan[:i], s.plan[i+1:]...)
			return nil
		}
	}
	return ErrWeekNotFound
}

// ResetPlan clears all week entries, returning the workbench gate to
// its pre-skeleton state. The locked profile is untouched. Already
// generated material is deliberately kept (current behavior; a week
// regenerated after reset overwrites its old material on the next
// workbench run).
func (s *Session) ResetPlan() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = nil
}

// GenerateMaterial runs the workbench for one week: generates the three
// lesson sections, stores them under the week number, and flips the
// entry's status to complete. Requires a plan containing the week.
func (s *Session) GenerateMaterial(ctx context.Context, input WorkbenchInput) (Material, error) {
	s.mu.Lock()
	if s.locked == nil {
		s.mu.Unlock()
		return Material{}, ErrProfileNotLocked
	}
	if len(s.plan) == 0 {
		s.mu.Unlock()
		return Material{}, ErrNoPlan
	}
	if !s.hasWeekLocked(input.Week) {
		s.mu.Unlock()
		return Material{}, ErrWeekNotFound
	}
	profile := *s.locked
	s.mu.Unlock()

	material, err := s.svc.ComposeMaterial(ctx, profile, input)
	if err != nil {
		return Material{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The plan may have been reset or the week removed while the model
	// was generating; don't resurrect a vanished week.
	if !s.hasWeekLocked(input.Week) {
		return Material{}, ErrWeekNotFound
	}
	s.materials[input.Week] = material
	for i := range s.plan {
		if s.plan[i].Week == input.Week {
			s.plan[i].Status = StatusComplete
		}
	}
	return material, nil
}

// Material returns the generated content for a week, if any.
func (s *Session) Material(week int) (Material, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.materials[week]
	return m, ok
}

// Gates derives the feature-gate set from data presence.
func (s *Session) Gates() Gates {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Gates{
		HasDraft:      s.draft != nil,
		ProfileLocked: s.locked != nil,
		PlanReady:     len(s.plan) > 0,
	}
}

// hasWeekLocked reports week presence. Callers must hold s.mu.
func (s *Session) hasWeekLocked(week int) bool {
	for _, e := range s.plan {
		if e.Week == week {
			return true
		}
	}
	return false
}
