package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all model provider configuration.
//
// The model identifier is operator-set (env vars), never end-user-set.
// The API credential may come from the environment or be supplied once
// per session through the interactive surface via ApplyCredential; it is
// never written to disk.
type Config struct {
	// Provider selects the backend: "gemini", "anthropic", "openai", "mock".
	Provider string

	Gemini    GeminiConfig
	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Retry     RetryConfig

	// Timeout is the maximum duration for a single request including
	// retries. Default: 120s, lesson generation produces long outputs.
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig also covers OpenRouter and other OpenAI-compatible
// endpoints through BaseURL.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig targets Gemini, the backend the tool was built against.
func DefaultConfig() Config {
	return Config{
		Provider:  "gemini",
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 120 * time.Second,
	}
}

// ConfigFromEnv overlays PLANVERK_* environment variables on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "PLANVERK_LLM_PROVIDER")
	setFromEnv(&cfg.Gemini.APIKey, "PLANVERK_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "PLANVERK_GEMINI_MODEL")
	setFromEnv(&cfg.Anthropic.APIKey, "PLANVERK_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "PLANVERK_ANTHROPIC_MODEL")
	setFromEnv(&cfg.OpenAI.APIKey, "PLANVERK_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "PLANVERK_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "PLANVERK_OPENAI_BASE_URL")

	return cfg
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes the bare API key variables in priority order
// (Gemini, then OpenAI, then Anthropic) and returns a Config for the
// first provider whose key is found.
func DiscoverConfig() (Config, bool) {
	probes := []struct {
		env      string
		provider string
	}{
		{"GEMINI_API_KEY", "gemini"},
		{"OPENAI_API_KEY", "openai"},
		{"ANTHROPIC_API_KEY", "anthropic"},
	}

	for _, p := range probes {
		if key := os.Getenv(p.env); key != "" {
			cfg := DefaultConfig()
			cfg.Provider = p.provider
			cfg.ApplyCredential(key)
			return cfg, true
		}
	}
	return Config{}, false
}

// credential points at the API key field of the selected provider, or
// nil for providers that take none.
func (c *Config) credential() *string {
	switch c.Provider {
	case "gemini":
		return &c.Gemini.APIKey
	case "anthropic":
		return &c.Anthropic.APIKey
	case "openai":
		return &c.OpenAI.APIKey
	}
	return nil
}

// ApplyCredential sets the API key for the selected provider. Used when
// the teacher types a key into the surface instead of exporting one.
func (c *Config) ApplyCredential(key string) {
	if p := c.credential(); p != nil {
		*p = key
	}
}

// HasCredential reports whether the selected provider can authenticate.
func (c Config) HasCredential() bool {
	if c.Provider == "mock" {
		return true
	}
	p := c.credential()
	return p != nil && *p != ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini", "anthropic", "openai":
		if !c.HasCredential() {
			return fmt.Errorf("PLANVERK_%s_API_KEY is required for the %s provider",
				strings.ToUpper(c.Provider), c.Provider)
		}
	case "mock":
		// No credential needed.
	default:
		return fmt.Errorf("unknown model provider: %q", c.Provider)
	}
	return nil
}
