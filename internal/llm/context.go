package llm

import "context"

type contextKey string

const stageKey contextKey = "llm_stage"

// WithStage attaches a pipeline stage label ("calibration", "year-plan",
// "lesson") to the context for event logging.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

// StageFrom extracts the stage label from the context.
func StageFrom(ctx context.Context) string {
	if v, ok := ctx.Value(stageKey).(string); ok {
		return v
	}
	return "unknown"
}
