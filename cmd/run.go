package cmd

import (
	"fmt"

	"github.com/mnordin/planverk/internal/app"
	"github.com/mnordin/planverk/internal/curriculum"
	"github.com/mnordin/planverk/internal/llm"
	"github.com/mnordin/planverk/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, resolves provider config, and launches the TUI.
// A missing API key is not fatal here; the welcome screen collects one.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	cfg := llm.ConfigFromEnv()
	if !cfg.HasCredential() {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		}
	}

	opts := app.Options{
		LLMConfig:        cfg,
		CurriculumConfig: curriculum.DefaultConfig(),
		EventRepo:        st.EventRepo(),
		Manager:          curriculum.NewManager(),
	}

	return app.Run(opts)
}
