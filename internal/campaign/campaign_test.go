package campaign

import (
	"context"
	"errors"
	"strings"
	"testing"

	"brandforge/internal/domain"
)

type themeFunc func(ctx context.Context, g domain.BrandGuidelines, names []string) (string, error)

func (f themeFunc) CampaignTheme(ctx context.Context, g domain.BrandGuidelines, names []string) (string, error) {
	return f(ctx, g, names)
}

func assets() []domain.GeneratedAsset {
	return []domain.GeneratedAsset{
		{Type: domain.AssetTypeMarketing, Name: "marketing_banner", Description: "Banner"},
		{Type: domain.AssetTypeLogo, Name: "logo_primary"},
		{Type: domain.AssetTypeLogo, Name: "logo_icon_only"},
	}
}

func TestChecklistOrderIsFixed(t *testing.T) {
	got := Checklist(assets(), "Build faster")
	want := []string{
		"Upload logo to website header, favicon, and social profiles",
		"Deploy marketing materials to digital ad platforms and print",
		"Ensure all assets prominently feature: 'Build faster'",
		"Review all assets for brand consistency before launch",
		"Set up tracking and analytics for campaign performance",
	}
	if len(got) != len(want) {
		t.Fatalf("Checklist = %#v, want %#v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Checklist[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSynthesizeUsesWriterAndDefaults(t *testing.T) {
	var seen []string
	s := NewSynthesizer(themeFunc(func(ctx context.Context, g domain.BrandGuidelines, names []string) (string, error) {
		seen = names
		return "  One bold thread.  ", nil
	}), nil)
	g := domain.BrandGuidelines{BrandName: "Acme", BrandTone: "Bold", Tagline: "Build faster", CampaignGoal: "Launch"}
	got := s.Synthesize(context.Background(), g, assets())
	if got.UnifiedTheme != "One bold thread." {
		t.Fatalf("UnifiedTheme = %q", got.UnifiedTheme)
	}
	if got.CampaignName != "Brand Campaign" || got.CampaignGoal != "Launch" || got.CampaignMessage != "Build faster" {
		t.Fatalf("unexpected campaign fields %#v", got)
	}
	if len(seen) != 3 || seen[0] != "marketing_banner: Banner" {
		t.Fatalf("asset names = %#v", seen)
	}
}

func TestSynthesizeFallsBackOnThemeFailure(t *testing.T) {
	s := NewSynthesizer(themeFunc(func(context.Context, domain.BrandGuidelines, []string) (string, error) {
		return "", errors.New("quota")
	}), nil)
	g := domain.BrandGuidelines{BrandName: "Acme", BrandTone: "Warm", CampaignName: "Spring"}
	got := s.Synthesize(context.Background(), g, assets())
	if !strings.Contains(got.UnifiedTheme, "3 coordinated assets") {
		t.Fatalf("UnifiedTheme = %q, want fallback sentence", got.UnifiedTheme)
	}
	if got.CampaignName != "Spring" {
		t.Fatalf("CampaignName = %q", got.CampaignName)
	}
}
