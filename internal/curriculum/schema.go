package curriculum

import "github.com/mnordin/planverk/internal/llm"

// ProfileSchema defines the JSON structure requested from the model
// during calibration. Providers with native structured output return
// clean JSON; the tolerant parser in parse.go covers the rest.
var ProfileSchema = &llm.Schema{
	Name:        "curriculum-profile",
	Description: "Structured metadata extracted from a curriculum document",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"audience": map[string]any{
				"type":        "string",
				"description": "Target grade and student profile",
			},
			"level": map[string]any{
				"type":        "string",
				"description": "Estimated CEFR level (e.g. A1, B2)",
			},
			"grading": map[string]any{
				"type":        "string",
				"description": "Summary of the Grade E (passing) criteria",
			},
			"themes": map[string]any{
				"type":        "string",
				"description": "Central themes, comma separated",
			},
		},
		"required":             []any{"audience", "level", "grading", "themes"},
		"additionalProperties": false,
	},
}
