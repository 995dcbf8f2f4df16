package narrative

import (
	"context"
	"strings"

	"brandforge/internal/domain"
	"brandforge/internal/prompts"
	"brandforge/internal/providers/genai"
)

// GeminiAnalyst runs the narrative prompts against the Gemini text model.
type GeminiAnalyst struct {
	client *genai.Client
}

func NewGeminiAnalyst(client *genai.Client) *GeminiAnalyst {
	return &GeminiAnalyst{client: client}
}

func (a *GeminiAnalyst) AnalyzeBrand(ctx context.Context, g domain.BrandGuidelines) (string, error) {
	text, err := a.client.GenerateText(ctx, genai.TextRequest{
		System:      prompts.AnalysisSystem,
		Prompt:      prompts.Analysis(g),
		Temperature: 0.6,
		Synthetic:   prompts.SyntheticAnalysis(g),
	})
	return finishAnalysis(geminiProviderName, text, err)
}

func (a *GeminiAnalyst) CampaignTheme(ctx context.Context, g domain.BrandGuidelines, assetNames []string) (string, error) {
	text, err := a.client.GenerateText(ctx, genai.TextRequest{
		Prompt:      prompts.CampaignTheme(g, assetNames),
		Temperature: 0.5,
		Synthetic:   prompts.FallbackTheme(g, len(assetNames)),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(genai.ScrubMarkdown(text)), nil
}

var _ Analyst = (*GeminiAnalyst)(nil)
