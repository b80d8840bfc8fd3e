package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func appendTestEvent(t *testing.T, repo EventRepo, data LLMRequestEventData) {
	t.Helper()
	if err := repo.AppendLLMRequest(context.Background(), data); err != nil {
		t.Fatalf("append LLM request: %v", err)
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSeqCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendTestEvent(t, repo, LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.5-flash", Stage: "calibration",
		RequestBody: "analyze this", ResponseBody: `{"audience":"Grade 7"}`,
		InputTokens: 1200, OutputTokens: 80, LatencyMs: 900, Success: true,
	})
	appendTestEvent(t, repo, LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.5-flash", Stage: "year-plan",
		InputTokens: 400, OutputTokens: 600, LatencyMs: 1500, Success: true,
	})
	appendTestEvent(t, repo, LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.5-flash", Stage: "lesson",
		Success: false, ErrorMessage: "rate limited",
	})

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	// Newest first.
	if events[0].Stage != "lesson" || events[2].Stage != "calibration" {
		t.Errorf("unexpected order: %s, %s, %s", events[0].Stage, events[1].Stage, events[2].Stage)
	}
	if events[0].ErrorMessage != "rate limited" {
		t.Errorf("error message = %q", events[0].ErrorMessage)
	}
	if events[2].RequestBody != "analyze this" {
		t.Errorf("request body = %q", events[2].RequestBody)
	}

	// Stage filter.
	events, err = repo.QueryLLMEvents(ctx, QueryOpts{Stage: "year-plan"})
	if err != nil {
		t.Fatalf("query filtered: %v", err)
	}
	if len(events) != 1 || events[0].Stage != "year-plan" {
		t.Fatalf("stage filter returned %d events", len(events))
	}

	// Limit.
	events, err = repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("limit returned %d events", len(events))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendTestEvent(t, repo, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5", Stage: "lesson",
		ResponseBody: "<TEACHER>guide</TEACHER>", Success: true,
	})

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil || len(events) != 1 {
		t.Fatalf("query: %v (%d events)", err, len(events))
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event")
	}
	if e.ResponseBody != "<TEACHER>guide</TEACHER>" {
		t.Errorf("response body = %q", e.ResponseBody)
	}

	// Missing ID is nil, not an error.
	e, err = repo.GetLLMEvent(ctx, 99999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if e != nil {
		t.Errorf("expected nil for missing event, got %+v", e)
	}
}

func TestLLMUsageAggregation(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendTestEvent(t, repo, LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.5-flash", Stage: "lesson",
		InputTokens: 100, OutputTokens: 200, LatencyMs: 1000, Success: true,
	})
	appendTestEvent(t, repo, LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.5-flash", Stage: "lesson",
		InputTokens: 300, OutputTokens: 400, LatencyMs: 3000, Success: true,
	})
	appendTestEvent(t, repo, LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.5-pro", Stage: "calibration",
		InputTokens: 50, OutputTokens: 10, LatencyMs: 500, Success: true,
	})

	byStage, err := repo.LLMUsageByStage(ctx)
	if err != nil {
		t.Fatalf("usage by stage: %v", err)
	}
	stages := map[string]LLMStageUsage{}
	for _, u := range byStage {
		stages[u.Stage] = u
	}
	lesson := stages["lesson"]
	if lesson.Calls != 2 || lesson.InputTokens != 400 || lesson.OutputTokens != 600 {
		t.Errorf("lesson usage = %+v", lesson)
	}
	if lesson.AvgLatencyMs != 2000 {
		t.Errorf("lesson avg latency = %d, want 2000", lesson.AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	models := map[string]LLMModelUsage{}
	for _, u := range byModel {
		models[u.Model] = u
	}
	if models["gemini-2.5-flash"].Calls != 2 || models["gemini-2.5-pro"].Calls != 1 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='llm_request_events'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "llm_request_events" {
		t.Errorf("table name = %q, want 'llm_request_events'", name)
	}
}
