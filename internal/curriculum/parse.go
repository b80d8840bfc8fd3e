package curriculum

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Error markers substituted for fields whose extraction failed. The
// teacher sees the marker in the form, edits or retries, and the
// pipeline keeps moving — parse failures never become hard errors.
const (
	MarkerProfileField = "Error parsing"
	MarkerTeacherGuide = "Error parsing Teacher Guide"
	MarkerStudentText  = "Error parsing Student Text"
	MarkerExercises    = "Error parsing Exercises"

	placeholderTopic   = "Topic"
	placeholderGrammar = "Grammar"

	// fallbackGrammar fills a plan line with a trailing empty grammar field.
	fallbackGrammar = "Review"
)

// fenceTokens are the markdown code-fence markers models like to wrap
// structured output in, stripped before parsing.
var fenceTokens = []string{"```json", "```python", "```"}

// sentinelProfile is returned whenever the calibration response cannot
// be interpreted as the four-field mapping.
func sentinelProfile() Profile {
	return Profile{
		Audience: MarkerProfileField,
		Level:    MarkerProfileField,
		Grading:  MarkerProfileField,
		Themes:   MarkerProfileField,
	}
}

// ParseProfile interprets a calibration response as a mapping with the
// four known keys. It tolerates surrounding fence markers and falls
// back from strict JSON to a per-key scan; on any failure it returns
// the sentinel profile and never an error.
func ParseProfile(raw string) Profile {
	clean := stripFences(raw)

	var p Profile
	if err := json.Unmarshal([]byte(clean), &p); err == nil && p.Complete() {
		return p
	}

	// Loose scan: pull each key's quoted value out individually. Covers
	// responses with stray prose around the mapping or single-quoted
	// dict-literal style output.
	p = Profile{
		Audience: scanField(clean, "audience"),
		Level:    scanField(clean, "level"),
		Grading:  scanField(clean, "grading"),
		Themes:   scanField(clean, "themes"),
	}
	if p.Complete() {
		return p
	}

	return sentinelProfile()
}

// fieldPatterns caches one regexp per profile key, matching both
// double- and single-quoted values.
var fieldPatterns = map[string]*regexp.Regexp{}

func init() {
	for _, key := range []string{"audience", "level", "grading", "themes"} {
		fieldPatterns[key] = regexp.MustCompile(
			`['"]` + key + `['"]\s*:\s*(?:"((?:[^"\\]|\\.)*)"|'((?:[^'\\]|\\.)*)')`)
	}
}

func scanField(text, key string) string {
	m := fieldPatterns[key].FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	val := m[1]
	if val == "" {
		val = m[2]
	}
	return strings.TrimSpace(unescape(val))
}

func unescape(s string) string {
	r := strings.NewReplacer(`\"`, `"`, `\'`, `'`, `\\`, `\`, `\n`, "\n")
	return r.Replace(s)
}

func stripFences(s string) string {
	for _, tok := range fenceTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	return strings.TrimSpace(s)
}

// ParsePlan splits a skeleton response into week entries. A line counts
// only if it contains the pipe separator; the week number comes from
// the line's 1-based position, never from the line content. When not a
// single line parses, the teacher still gets a full placeholder plan to
// edit by hand rather than a dead end.
func ParsePlan(raw string, weeks int) []WeekEntry {
	var entries []WeekEntry

	lines := strings.Split(strings.TrimSpace(raw), "\n")
	for i, line := range lines {
		if !strings.Contains(line, "|") {
			continue
		}
		parts := strings.SplitN(line, "|", 2)
		topic := strings.TrimSpace(parts[0])
		grammar := strings.TrimSpace(parts[1])
		if grammar == "" {
			grammar = fallbackGrammar
		}
		entries = append(entries, WeekEntry{
			Week:    i + 1,
			Topic:   topic,
			Grammar: grammar,
			Status:  StatusPending,
		})
	}

	if len(entries) == 0 {
		return placeholderPlan(weeks)
	}
	return entries
}

func placeholderPlan(weeks int) []WeekEntry {
	entries := make([]WeekEntry, weeks)
	for i := range entries {
		entries[i] = WeekEntry{
			Week:    i + 1,
			Topic:   placeholderTopic,
			Grammar: placeholderGrammar,
			Status:  StatusPending,
		}
	}
	return entries
}

// Section extraction: opening tag, lazy capture across line breaks,
// closing tag. Order-insensitive and each section independent.
var (
	teacherPattern   = regexp.MustCompile(`(?s)<TEACHER>(.*?)</TEACHER>`)
	studentPattern   = regexp.MustCompile(`(?s)<STUDENT_TEXT>(.*?)</STUDENT_TEXT>`)
	exercisesPattern = regexp.MustCompile(`(?s)<STUDENT_EXERCISES>(.*?)</STUDENT_EXERCISES>`)
)

// ParseMaterial extracts the three lesson sections from a workbench
// response. A section that cannot be found yields its error marker
// without affecting the other two.
func ParseMaterial(raw string) Material {
	return Material{
		TeacherGuide: extractSection(teacherPattern, raw, MarkerTeacherGuide),
		StudentText:  extractSection(studentPattern, raw, MarkerStudentText),
		Exercises:    extractSection(exercisesPattern, raw, MarkerExercises),
	}
}

func extractSection(pattern *regexp.Regexp, raw, marker string) string {
	m := pattern.FindStringSubmatch(raw)
	if m == nil {
		return marker
	}
	return strings.TrimSpace(m[1])
}
