package llm

import (
	"context"
	"fmt"

	"github.com/mnordin/planverk/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with the
// retry and logging middleware. eventRepo may be nil to skip logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Middleware order: caller → retry → logging → base.
	var p Provider = base
	if eventRepo != nil {
		p = WithLogging(p, eventRepo, cfg.Provider)
	}
	p = WithRetry(p, cfg.Retry)

	return p, nil
}
