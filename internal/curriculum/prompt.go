package curriculum

import (
	"fmt"
	"strings"
)

const calibrationSystemPrompt = `You are an expert pedagogical analyst for Greek Modersmål (heritage language) education in Swedish schools. You read curriculum documents and extract structured teaching parameters.`

// buildCalibrationMessage embeds a bounded prefix of the extracted
// document text and asks for the four profile fields.
func buildCalibrationMessage(rawText string, limit int) string {
	var b strings.Builder

	b.WriteString("Analyze the following Swedish curriculum text and extract 4 key data points.\n\n")
	b.WriteString("Return ONLY a JSON object with these keys:\n")
	b.WriteString(`{
    "audience": "Target grade and student profile",
    "level": "Estimated CEFR level (e.g., A1, B2)",
    "grading": "Summary of Grade E criteria",
    "themes": "List of central themes (comma separated)"
}`)
	b.WriteString("\n\nCURRICULUM TEXT:\n")
	b.WriteString(truncate(rawText, limit))

	return b.String()
}

const planSystemPrompt = `You are a curriculum architect. You turn a class profile into a full academic year syllabus.`

// buildPlanMessage embeds the locked profile and requests the weekly
// skeleton as pipe-separated lines.
func buildPlanMessage(profile Profile, weeks int) string {
	var b strings.Builder

	b.WriteString("CONTEXT:\n")
	writeProfile(&b, profile)

	b.WriteString(fmt.Sprintf("\nTASK: Create a %d-week academic syllabus for this class.\n", weeks))
	b.WriteString("\nREQUIREMENTS:\n")
	b.WriteString("- Distribute the themes logically across the weeks.\n")
	b.WriteString("- Include grammar progression from week to week.\n")
	b.WriteString(fmt.Sprintf("- OUTPUT FORMAT: raw text, exactly %d lines, each line \"Topic | Grammar Focus\".\n", weeks))
	b.WriteString(`
Example:
Myths: Zeus | Noun Gender
Geography: Athens | Adjectives
`)

	return b.String()
}

const lessonSystemPrompt = `You are an experienced Greek Modersmål teacher preparing differentiated lesson material for one school week.`

// Conditional prompt fragments. Which one lands in the prompt is
// decided by the presence of source excerpts and the accessibility flag.
const (
	instructionStrictSource = "INSTRUCTIONS: Use the SOURCE MATERIAL strictly."
	instructionWriteFreely  = "INSTRUCTIONS: Write creative Greek text appropriate for the class."
	accessibilityConstraint = "CONSTRAINT: Dyslexia-friendly. Short simple sentences, clear structure."
)

// buildLessonMessage embeds the locked profile, the week's inputs, the
// conditional instructions, and a bounded concatenation of named source
// excerpts, then requests the three delimited output sections.
func buildLessonMessage(profile Profile, input WorkbenchInput, sourceLimit int) string {
	sourceText := concatSources(input.Sources, sourceLimit)

	var b strings.Builder

	b.WriteString("CONTEXT:\n")
	writeProfile(&b, profile)

	b.WriteString(fmt.Sprintf("\nWEEK: %d | TOPIC: %s | GRAMMAR: %s\n", input.Week, input.Topic, input.Grammar))
	b.WriteString(fmt.Sprintf("TEACHER NOTES: %s\n", input.Notes))

	if input.Accessible {
		b.WriteString(accessibilityConstraint)
		b.WriteString("\n")
	}

	if sourceText != "" {
		b.WriteString(instructionStrictSource)
	} else {
		b.WriteString(instructionWriteFreely)
	}
	b.WriteString("\n")

	if sourceText != "" {
		b.WriteString("\nSOURCE MATERIAL:\n")
		b.WriteString(sourceText)
		b.WriteString("\n")
	}

	b.WriteString("\nOUTPUT: XML-like text with exactly these sections: ")
	b.WriteString("<TEACHER>lesson guide for the teacher</TEACHER> ")
	b.WriteString("<STUDENT_TEXT>reading text in Greek</STUDENT_TEXT> ")
	b.WriteString("<STUDENT_EXERCISES>exercises in Greek</STUDENT_EXERCISES>")

	return b.String()
}

func writeProfile(b *strings.Builder, p Profile) {
	b.WriteString(fmt.Sprintf("Audience: %s\n", p.Audience))
	b.WriteString(fmt.Sprintf("CEFR level: %s\n", p.Level))
	b.WriteString(fmt.Sprintf("Grade E criteria: %s\n", p.Grading))
	b.WriteString(fmt.Sprintf("Themes: %s\n", p.Themes))
}

// concatSources joins excerpts as named SOURCE blocks and truncates the
// result to limit characters, keeping the request within size bounds.
func concatSources(sources []SourceExcerpt, limit int) string {
	if len(sources) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range sources {
		b.WriteString(fmt.Sprintf("\nSOURCE (%s):\n%s\n", s.Name, s.Text))
	}
	return truncate(b.String(), limit)
}

// truncate returns a prefix of at most n runes. Rune-based so a bound
// never splits a Greek character in half.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
