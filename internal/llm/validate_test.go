package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-profile",
		Description: "test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"audience": map[string]any{"type": "string"},
				"level":    map[string]any{"type": "string"},
			},
			"required":             []any{"audience", "level"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"audience": "grade 4-6", "level": "A2"}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"audience": "grade 4-6"}`)
	err := validateResponse(testSchema(), raw)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if string(inv.Content) != string(raw) {
		t.Fatal("expected offending content to be carried on the error")
	}
}

func TestValidateResponse_NotJSON(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage("not json at all"))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage("anything goes")); err != nil {
		t.Fatalf("nil schema must not validate: %v", err)
	}
}
