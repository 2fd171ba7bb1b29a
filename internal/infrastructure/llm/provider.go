package llm

import (
	"context"
	"fmt"

	"SurveyMonitor/internal/config"
	"SurveyMonitor/internal/ports"
)

// New selects the analyst implementation named by cfg.Provider.
func New(ctx context.Context, cfg config.AnalysisConfig) (ports.Analyst, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		return NewGeminiClient(ctx, cfg)
	case config.ProviderOpenAI:
		return NewChatGPTClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown analysis provider %q", cfg.Provider)
	}
}
