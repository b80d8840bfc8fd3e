package curriculum

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileCleanJSON(t *testing.T) {
	raw := `{"audience":"Grade 7, mixed ability","level":"A2","grading":"Can read short texts","themes":"Myths, Food, Family"}`

	p := ParseProfile(raw)

	assert.Equal(t, "Grade 7, mixed ability", p.Audience)
	assert.Equal(t, "A2", p.Level)
	assert.Equal(t, "Can read short texts", p.Grading)
	assert.Equal(t, "Myths, Food, Family", p.Themes)
}

func TestParseProfileFencedJSON(t *testing.T) {
	raw := "```json\n" + `{"audience":"Grade 4","level":"A1","grading":"Basic phrases","themes":"Animals"}` + "\n```"

	p := ParseProfile(raw)

	require.True(t, p.Complete())
	assert.Equal(t, "Grade 4", p.Audience)
	assert.Equal(t, "A1", p.Level)
}

func TestParseProfileSingleQuotedDict(t *testing.T) {
	// Dict-literal style output with single quotes and surrounding prose.
	raw := "Here is the analysis:\n```python\n{'audience': 'Grade 9', 'level': 'B1', 'grading': 'Full sentences', 'themes': 'History, Poetry'}\n```"

	p := ParseProfile(raw)

	require.True(t, p.Complete())
	assert.Equal(t, "Grade 9", p.Audience)
	assert.Equal(t, "B1", p.Level)
	assert.Equal(t, "Full sentences", p.Grading)
	assert.Equal(t, "History, Poetry", p.Themes)
}

func TestParseProfileGarbageYieldsSentinel(t *testing.T) {
	for _, raw := range []string{
		"",
		"I could not analyze the document, sorry.",
		`{"audience":"Grade 7"}`, // partial mapping
		"{{{{not json",
	} {
		p := ParseProfile(raw)
		assert.Equal(t, MarkerProfileField, p.Audience, "input %q", raw)
		assert.Equal(t, MarkerProfileField, p.Level, "input %q", raw)
		assert.Equal(t, MarkerProfileField, p.Grading, "input %q", raw)
		assert.Equal(t, MarkerProfileField, p.Themes, "input %q", raw)
	}
}

func TestParsePlanFullYear(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= WeeksPerYear; i++ {
		fmt.Fprintf(&b, "Topic %d | Grammar %d\n", i, i)
	}

	entries := ParsePlan(b.String(), WeeksPerYear)

	require.Len(t, entries, WeeksPerYear)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Week)
		assert.Equal(t, fmt.Sprintf("Topic %d", i+1), e.Topic)
		assert.Equal(t, fmt.Sprintf("Grammar %d", i+1), e.Grammar)
		assert.Equal(t, StatusPending, e.Status)
	}
}

func TestParsePlanSkipsNonPipeLines(t *testing.T) {
	raw := "Here is your syllabus:\n" +
		"Myths: Zeus | Noun Gender\n" +
		"(mid-year break)\n" +
		"Geography: Athens | Adjectives\n"

	entries := ParsePlan(raw, WeeksPerYear)

	require.Len(t, entries, 2)
	// Week numbers come from raw line position, not from the count of
	// valid lines seen so far.
	assert.Equal(t, 2, entries[0].Week)
	assert.Equal(t, "Myths: Zeus", entries[0].Topic)
	assert.Equal(t, 4, entries[1].Week)
	assert.Equal(t, "Geography: Athens", entries[1].Topic)
}

func TestParsePlanTenValidLines(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "Topic | Grammar\n")
	}

	entries := ParsePlan(b.String(), WeeksPerYear)
	assert.Len(t, entries, 10)
}

func TestParsePlanEmptyGrammarBecomesReview(t *testing.T) {
	entries := ParsePlan("Revision week |", WeeksPerYear)

	require.Len(t, entries, 1)
	assert.Equal(t, "Revision week", entries[0].Topic)
	assert.Equal(t, "Review", entries[0].Grammar)
}

func TestParsePlanGarbageYieldsPlaceholders(t *testing.T) {
	entries := ParsePlan("no separators anywhere\njust prose", WeeksPerYear)

	require.Len(t, entries, WeeksPerYear)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Week)
		assert.Equal(t, placeholderTopic, e.Topic)
		assert.Equal(t, placeholderGrammar, e.Grammar)
	}
}

func TestParseMaterialAllSections(t *testing.T) {
	raw := "<TEACHER>Guide text</TEACHER>\n" +
		"<STUDENT_TEXT>Ο Δίας ήταν ο βασιλιάς των θεών.</STUDENT_TEXT>\n" +
		"<STUDENT_EXERCISES>1. Ποιος ήταν ο Δίας;</STUDENT_EXERCISES>"

	m := ParseMaterial(raw)

	assert.Equal(t, "Guide text", m.TeacherGuide)
	assert.Equal(t, "Ο Δίας ήταν ο βασιλιάς των θεών.", m.StudentText)
	assert.Equal(t, "1. Ποιος ήταν ο Δίας;", m.Exercises)
}

func TestParseMaterialSectionsIndependent(t *testing.T) {
	m := ParseMaterial("<TEACHER>A</TEACHER>")

	assert.Equal(t, "A", m.TeacherGuide)
	assert.Equal(t, MarkerStudentText, m.StudentText)
	assert.Equal(t, MarkerExercises, m.Exercises)
}

func TestParseMaterialMultilineSections(t *testing.T) {
	raw := "<TEACHER>Line one.\nLine two.</TEACHER><STUDENT_TEXT>κείμενο\nσε δύο γραμμές</STUDENT_TEXT><STUDENT_EXERCISES>ασκήσεις</STUDENT_EXERCISES>"

	m := ParseMaterial(raw)

	assert.Equal(t, "Line one.\nLine two.", m.TeacherGuide)
	assert.Equal(t, "κείμενο\nσε δύο γραμμές", m.StudentText)
	assert.Equal(t, "ασκήσεις", m.Exercises)
}

func TestParseMaterialEmptyResponse(t *testing.T) {
	m := ParseMaterial("")

	assert.Equal(t, MarkerTeacherGuide, m.TeacherGuide)
	assert.Equal(t, MarkerStudentText, m.StudentText)
	assert.Equal(t, MarkerExercises, m.Exercises)
}
