package llm

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"openai without key", Config{Provider: "openai"}, true},
		{"mock needs nothing", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "cohere"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyCredential(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "gemini"
	if cfg.HasCredential() {
		t.Fatal("expected no credential before ApplyCredential")
	}
	cfg.ApplyCredential("secret")
	if !cfg.HasCredential() {
		t.Fatal("expected credential after ApplyCredential")
	}
	if cfg.Gemini.APIKey != "secret" {
		t.Fatalf("expected gemini key set, got %q", cfg.Gemini.APIKey)
	}
	if cfg.Anthropic.APIKey != "" || cfg.OpenAI.APIKey != "" {
		t.Fatal("credential must only apply to the selected provider")
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-pro-latest", "gemini-pro-latest"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
