package prompts

import (
	"fmt"
	"strings"

	"brandforge/internal/domain"
)

// AnalysisSystem frames the narrative analysis call.
const AnalysisSystem = "You are a senior brand strategist at a world-class advertising agency."

// Analysis asks for the brand identity brief shared by every asset prompt.
func Analysis(g domain.BrandGuidelines) string {
	var b strings.Builder
	b.WriteString("Write a brand identity brief for the creative team. Be confident and precise, with no fluff and no jargon.\n\n")
	fmt.Fprintf(&b, "Brand: %s\n", g.BrandName)
	fmt.Fprintf(&b, "Industry: %s\n", g.Industry)
	fmt.Fprintf(&b, "Audience: %s\n", g.TargetAudience)
	fmt.Fprintf(&b, "Voice: %s\n", g.BrandTone)
	fmt.Fprintf(&b, "Values: %s\n", orDefault(g.BrandValues, "To be defined"))
	fmt.Fprintf(&b, "Tagline: %s\n\n", orDefault(g.Tagline, "None provided"))
	b.WriteString("Visual System:\n")
	fmt.Fprintf(&b, "Primary: %s | Secondary: %s | Accent: %s\n", g.PrimaryColor, g.SecondaryColor, orDefault(g.AccentColor, "None"))
	fmt.Fprintf(&b, "Typography: %s (primary), %s (secondary)\n\n", g.PrimaryFont, orDefault(g.SecondaryFont, "same as primary"))
	if g.Competitors != "" {
		fmt.Fprintf(&b, "Competitors: %s\n", g.Competitors)
	}
	if g.Differentiation != "" {
		fmt.Fprintf(&b, "Differentiation: %s\n", g.Differentiation)
	}
	fmt.Fprintf(&b, "Additional Context: %s\n\n", orDefault(g.AdditionalContext, "None"))
	b.WriteString("Cover, in order: the essence of the brand in one paragraph; the visual direction of palette and typography; ")
	b.WriteString("three or four design principles stated as directives; the imagery and texture the brand inhabits; ")
	b.WriteString("and how the identity connects with the audience.\n\n")
	b.WriteString("Write in plain prose. No bullet points. No markdown formatting.")
	return b.String()
}

// SyntheticAnalysis is the deterministic brief used when no model is
// configured.
func SyntheticAnalysis(g domain.BrandGuidelines) string {
	return fmt.Sprintf(
		"%s is a %s brand in %s speaking to %s. The palette anchors on %s with %s in support, set in %s. "+
			"Every asset should lead with the primary color, keep typography consistent and stay recognizably %s.",
		g.BrandName, strings.ToLower(g.BrandTone), g.Industry, g.TargetAudience,
		g.PrimaryColor, g.SecondaryColor, g.PrimaryFont, g.BrandName,
	)
}

// CampaignTheme asks for a short unified theme across the generated assets.
func CampaignTheme(g domain.BrandGuidelines, assetNames []string) string {
	var b strings.Builder
	b.WriteString("Write a brief (2-3 sentences) unified campaign theme for:\n\n")
	fmt.Fprintf(&b, "Brand: %s\n", g.BrandName)
	fmt.Fprintf(&b, "Campaign: %s\n", orDefault(g.CampaignName, "Brand Launch"))
	fmt.Fprintf(&b, "Goal: %s\n", orDefault(g.CampaignGoal, "Brand awareness"))
	fmt.Fprintf(&b, "Key Message: %s\n", orDefault(g.CampaignMessage, "None specified"))
	fmt.Fprintf(&b, "Brand Tone: %s\n", g.BrandTone)
	fmt.Fprintf(&b, "Assets Generated: %d coordinated assets\n", len(assetNames))
	for _, name := range assetNames {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	b.WriteString("\nDescribe how the assets work together as a cohesive campaign. Be specific about the visual and messaging thread that ties them together. Write in plain prose, no formatting.")
	return b.String()
}

// FallbackTheme is used when the theme call fails.
func FallbackTheme(g domain.BrandGuidelines, assetCount int) string {
	return fmt.Sprintf("A cohesive %s campaign featuring %d coordinated assets designed to %s.",
		strings.ToLower(orDefault(g.BrandTone, "on-brand")), assetCount,
		strings.ToLower(orDefault(g.CampaignGoal, "build brand awareness")))
}
