// Package app assembles the orchestrator from configuration for the binaries.
package app

import (
	"fmt"
	"net/http"

	"brandforge/internal/batch"
	"brandforge/internal/infra"
	"brandforge/internal/providers/genai"
	"brandforge/internal/providers/image"
	"brandforge/internal/providers/narrative"
	"brandforge/internal/providers/validator"
)

// BatchOptions projects the generation knobs of cfg.
func BatchOptions(cfg *infra.Config) batch.Options {
	return batch.Options{
		PassThreshold: cfg.PassThreshold,
		MaxAttempts:   cfg.MaxAttempts,
		MaxConcurrent: cfg.MaxConcurrentAssets,
	}
}

// NewAnalyst picks the narrative backend named by NARRATIVE_PROVIDER.
func NewAnalyst(cfg *infra.Config, client *genai.Client, httpClient *http.Client, logger *infra.Logger) (narrative.Analyst, error) {
	logger = infra.OrNop(logger)
	switch cfg.NarrativeProvider {
	case "openai":
		return narrative.NewOpenAIAnalyst(narrative.OpenAIOptions{
			APIKey:       cfg.OpenAIAPIKey,
			Model:        cfg.OpenAIModel,
			BaseURL:      cfg.OpenAIBaseURL,
			Organization: cfg.OpenAIOrg,
			HTTPClient:   httpClient,
			OnWarning: func(reason, detail string) {
				logger.Warn().Str("reason", reason).Str("detail", detail).Msg("narrative: openai model adjusted")
			},
		})
	case "", "gemini":
		return narrative.NewGeminiAnalyst(client), nil
	default:
		return nil, fmt.Errorf("app: unknown narrative provider %q", cfg.NarrativeProvider)
	}
}

// NewOrchestrator wires the Gemini transport, the narrative backend and the
// orchestrator. Without GEMINI_API_KEY the transport runs in synthetic mode.
func NewOrchestrator(cfg *infra.Config, logger *infra.Logger) (*batch.Orchestrator, error) {
	logger = infra.OrNop(logger)
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}

	client, err := genai.NewClient(genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		TextModel:  cfg.GeminiTextModel,
		ImageModel: cfg.GeminiImageModel,
		HTTPClient: httpClient,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	if client.Synthetic() {
		logger.Warn().Msg("app: GEMINI_API_KEY not set, rendering synthetic assets")
	}

	analyst, err := NewAnalyst(cfg, client, httpClient, logger)
	if err != nil {
		return nil, err
	}

	opts := BatchOptions(cfg)
	opts.Generator = image.NewGeminiGenerator(client)
	opts.Validator = validator.NewGeminiValidator(client)
	opts.Analyst = analyst
	opts.Logger = logger
	return batch.New(opts)
}
