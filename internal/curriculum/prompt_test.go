package curriculum

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() Profile {
	return Profile{
		Audience: "Grade 7, mixed ability",
		Level:    "A2",
		Grading:  "Can read short adapted texts",
		Themes:   "Myths, Food, Family",
	}
}

func TestBuildCalibrationMessageTruncates(t *testing.T) {
	long := strings.Repeat("α", 12_000)

	msg := buildCalibrationMessage(long, 10_000)

	// The embedded document prefix is bounded; the instruction header
	// sits on top of it.
	assert.Contains(t, msg, strings.Repeat("α", 10_000))
	assert.NotContains(t, msg, strings.Repeat("α", 10_001))
	assert.Contains(t, msg, "CURRICULUM TEXT:")
}

func TestBuildPlanMessageEmbedsProfile(t *testing.T) {
	msg := buildPlanMessage(testProfile(), WeeksPerYear)

	assert.Contains(t, msg, "Grade 7, mixed ability")
	assert.Contains(t, msg, "A2")
	assert.Contains(t, msg, "Myths, Food, Family")
	assert.Contains(t, msg, "34-week")
	assert.Contains(t, msg, "Topic | Grammar Focus")
}

func TestBuildLessonMessageAccessibilityFlag(t *testing.T) {
	input := WorkbenchInput{Week: 3, Topic: "Myths: Zeus", Grammar: "Noun Gender"}

	with := buildLessonMessage(testProfile(), withAccessible(input), 20_000)
	without := buildLessonMessage(testProfile(), input, 20_000)

	assert.Contains(t, with, accessibilityConstraint)
	assert.NotContains(t, without, accessibilityConstraint)
}

func withAccessible(in WorkbenchInput) WorkbenchInput {
	in.Accessible = true
	return in
}

func TestBuildLessonMessageSourceModes(t *testing.T) {
	input := WorkbenchInput{Week: 1, Topic: "Food", Grammar: "Articles"}

	free := buildLessonMessage(testProfile(), input, 20_000)
	assert.Contains(t, free, instructionWriteFreely)
	assert.NotContains(t, free, instructionStrictSource)
	assert.NotContains(t, free, "SOURCE MATERIAL:")

	input.Sources = []SourceExcerpt{{Name: "reader.pdf", Text: "Το φαγητό στην Ελλάδα"}}
	strict := buildLessonMessage(testProfile(), input, 20_000)
	assert.Contains(t, strict, instructionStrictSource)
	assert.NotContains(t, strict, instructionWriteFreely)
	assert.Contains(t, strict, "SOURCE (reader.pdf):")
	assert.Contains(t, strict, "Το φαγητό στην Ελλάδα")
}

func TestConcatSourcesBounded(t *testing.T) {
	sources := []SourceExcerpt{
		{Name: "a.txt", Text: strings.Repeat("β", 15_000)},
		{Name: "b.txt", Text: strings.Repeat("γ", 15_000)},
	}

	out := concatSources(sources, 20_000)

	require.Equal(t, 20_000, len([]rune(out)))
	// The first excerpt survives whole; the second is cut.
	assert.Contains(t, out, "SOURCE (a.txt):")
	assert.Contains(t, out, "SOURCE (b.txt):")
}

func TestTruncateRuneSafe(t *testing.T) {
	s := "αβγδε"

	assert.Equal(t, "αβγ", truncate(s, 3))
	assert.Equal(t, s, truncate(s, 5))
	assert.Equal(t, s, truncate(s, 100))
	assert.Equal(t, "", truncate(s, 0))
}
