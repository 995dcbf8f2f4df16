// Package campaign ties a finished asset set together under one campaign.
package campaign

import (
	"context"
	"fmt"
	"strings"

	"brandforge/internal/domain"
	"brandforge/internal/infra"
	"brandforge/internal/prompts"
)

// ThemeWriter produces the unified campaign theme text.
type ThemeWriter interface {
	CampaignTheme(ctx context.Context, g domain.BrandGuidelines, assetNames []string) (string, error)
}

var deploymentSteps = map[domain.AssetType]string{
	domain.AssetTypeLogo:          "Upload logo to website header, favicon, and social profiles",
	domain.AssetTypeSocialMedia:   "Schedule social media posts across platforms",
	domain.AssetTypePresentation:  "Use presentation deck for investor and client meetings",
	domain.AssetTypeEmailTemplate: "Import email templates into the email marketing platform",
	domain.AssetTypeMarketing:     "Deploy marketing materials to digital ad platforms and print",
}

type Synthesizer struct {
	writer ThemeWriter
	logger *infra.Logger
}

func NewSynthesizer(writer ThemeWriter, logger *infra.Logger) *Synthesizer {
	return &Synthesizer{writer: writer, logger: infra.OrNop(logger)}
}

// Synthesize builds the campaign context. A failing theme writer degrades to
// a deterministic sentence; the checklist never depends on a model.
func (s *Synthesizer) Synthesize(ctx context.Context, g domain.BrandGuidelines, assets []domain.GeneratedAsset) domain.CampaignContext {
	names := make([]string, 0, len(assets))
	for _, a := range assets {
		if a.Description != "" {
			names = append(names, fmt.Sprintf("%s: %s", a.Name, a.Description))
		} else {
			names = append(names, a.Name)
		}
	}

	theme := ""
	if s.writer != nil {
		text, err := s.writer.CampaignTheme(ctx, g, names)
		if err != nil {
			s.logger.Warn().Err(err).Msg("campaign: theme generation failed, using fallback")
		} else {
			theme = strings.TrimSpace(text)
		}
	}
	if theme == "" {
		theme = prompts.FallbackTheme(g, len(assets))
	}

	message := firstNonBlank(g.CampaignMessage, g.Tagline)
	return domain.CampaignContext{
		CampaignName:        firstNonBlank(g.CampaignName, "Brand Campaign"),
		CampaignGoal:        firstNonBlank(g.CampaignGoal, "Brand awareness"),
		CampaignMessage:     message,
		UnifiedTheme:        theme,
		DeploymentChecklist: Checklist(assets, message),
	}
}

// Checklist lists one deployment step per asset type present, in canonical
// type order, followed by the campaign-wide steps.
func Checklist(assets []domain.GeneratedAsset, message string) []string {
	present := map[domain.AssetType]bool{}
	for _, a := range assets {
		present[a.Type] = true
	}
	var out []string
	for _, t := range domain.AssetTypes {
		if present[t] {
			out = append(out, deploymentSteps[t])
		}
	}
	if strings.TrimSpace(message) != "" {
		out = append(out, fmt.Sprintf("Ensure all assets prominently feature: '%s'", message))
	} else {
		out = append(out, "Ensure all assets carry a consistent key message")
	}
	return append(out,
		"Review all assets for brand consistency before launch",
		"Set up tracking and analytics for campaign performance",
	)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
