// Package narrative produces the free-text brand analysis and campaign theme.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"brandforge/internal/domain"
	"brandforge/internal/prompts"
	"brandforge/internal/providers/genai"
)

const (
	geminiProviderName = "gemini"
	openAIProviderName = "openai"
	staticProviderName = "static"
)

// Analyst is the narrative-analysis backend. AnalyzeBrand is called once per
// package; its failure aborts the request.
type Analyst interface {
	AnalyzeBrand(ctx context.Context, g domain.BrandGuidelines) (string, error)
	CampaignTheme(ctx context.Context, g domain.BrandGuidelines, assetNames []string) (string, error)
}

// StaticAnalyst returns deterministic text without calling any model.
type StaticAnalyst struct{}

func NewStaticAnalyst() *StaticAnalyst {
	return &StaticAnalyst{}
}

func (StaticAnalyst) AnalyzeBrand(ctx context.Context, g domain.BrandGuidelines) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return prompts.SyntheticAnalysis(g), nil
}

func (StaticAnalyst) CampaignTheme(ctx context.Context, g domain.BrandGuidelines, assetNames []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return prompts.FallbackTheme(g, len(assetNames)), nil
}

var _ Analyst = StaticAnalyst{}

// finishAnalysis scrubs model output and rejects empty answers.
func finishAnalysis(provider, text string, err error) (string, error) {
	if err != nil {
		return "", fmt.Errorf("%s analyst: %w: %w", provider, domain.ErrAnalysisUnavailable, err)
	}
	text = genai.ScrubMarkdown(text)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s analyst: %w: empty analysis", provider, domain.ErrAnalysisUnavailable)
	}
	return text, nil
}
