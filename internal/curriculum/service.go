package curriculum

import (
	"context"
	"errors"
	"fmt"

	"github.com/mnordin/planverk/internal/llm"
)

// Service runs the three generation stages against a model provider.
// It owns prompt assembly and response parsing; session state lives in
// Session, not here.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a curriculum generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Analyze extracts a draft profile from raw document text. A provider
// failure is returned as an error; a response that merely fails to
// parse degrades to the sentinel profile instead.
func (s *Service) Analyze(ctx context.Context, rawText string) (Profile, error) {
	ctx = llm.WithStage(ctx, "calibration")

	req := llm.Request{
		System: calibrationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildCalibrationMessage(rawText, s.cfg.CalibrationLimit)},
		},
		Schema:      ProfileSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: 0.2, // extraction wants fidelity, not creativity
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		// Schema violations still carry the model's text; hand it to
		// the tolerant parser rather than failing the stage.
		var inv *llm.ErrInvalidResponse
		if errors.As(err, &inv) {
			return ParseProfile(string(inv.Content)), nil
		}
		return Profile{}, fmt.Errorf("calibration: %w", err)
	}

	return ParseProfile(resp.Text()), nil
}

// BuildPlan generates the weekly skeleton from a locked profile. By
// construction the result is never empty: an unparseable response
// falls back to a full placeholder plan.
func (s *Service) BuildPlan(ctx context.Context, profile Profile) ([]WeekEntry, error) {
	ctx = llm.WithStage(ctx, "year-plan")

	req := llm.Request{
		System: planSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPlanMessage(profile, s.cfg.Weeks)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("year plan: %w", err)
	}

	return ParsePlan(resp.Text(), s.cfg.Weeks), nil
}

// ComposeMaterial generates the three lesson sections for one week.
func (s *Service) ComposeMaterial(ctx context.Context, profile Profile, input WorkbenchInput) (Material, error) {
	ctx = llm.WithStage(ctx, "lesson")

	req := llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonMessage(profile, input, s.cfg.SourceLimit)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return Material{}, fmt.Errorf("lesson for week %d: %w", input.Week, err)
	}

	return ParseMaterial(resp.Text()), nil
}

// ModelID reports the configured model, for display in the surface.
func (s *Service) ModelID() string {
	return s.provider.ModelID()
}
