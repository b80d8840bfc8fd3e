// Package curriculum implements the three-stage planning pipeline:
// calibration (extract curriculum metadata from a source document),
// year plan (expand the metadata into a weekly topic skeleton), and
// workbench (generate lesson material per week).
package curriculum

// Profile is the "curriculum DNA" extracted during calibration.
// It starts as an editable draft and becomes immutable once the
// teacher locks it; the locked copy is the context for every later
// generation.
type Profile struct {
	Audience string `json:"audience"` // target grade and student profile
	Level    string `json:"level"`    // estimated CEFR level, e.g. "A1", "B2"
	Grading  string `json:"grading"`  // summary of the passing-grade criteria
	Themes   string `json:"themes"`   // central themes, comma separated
}

// Complete reports whether all four fields are non-empty. Locking
// requires a complete profile.
func (p Profile) Complete() bool {
	return p.Audience != "" && p.Level != "" && p.Grading != "" && p.Themes != ""
}

// WeekStatus tracks whether lesson material has been generated for a week.
type WeekStatus int

const (
	StatusPending WeekStatus = iota
	StatusComplete
)

func (s WeekStatus) String() string {
	if s == StatusComplete {
		return "complete"
	}
	return "pending"
}

// WeekEntry is one row of the year plan: a topic and a grammar focus
// for a school week. Week numbers are assigned by position when the
// plan is generated; user edits may leave the collection shorter or
// longer than a full year.
type WeekEntry struct {
	Week    int
	Topic   string
	Grammar string
	Status  WeekStatus
}

// Material is the lesson content generated for one week. Each field is
// extracted independently; a failed extraction leaves that field set to
// its error marker without invalidating the others.
type Material struct {
	TeacherGuide string
	StudentText  string
	Exercises    string
}

// SourceExcerpt is a named piece of source text the teacher uploaded
// for a workbench generation.
type SourceExcerpt struct {
	Name string
	Text string
}

// WorkbenchInput is the ephemeral input to one lesson generation. It is
// never persisted; the surface assembles it fresh for every request.
type WorkbenchInput struct {
	Week       int
	Topic      string
	Grammar    string
	Notes      string // free-form teacher instructions
	Accessible bool   // adapt for learning difficulties
	Sources    []SourceExcerpt
}
