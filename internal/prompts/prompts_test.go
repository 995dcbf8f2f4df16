package prompts

import (
	"strings"
	"testing"

	"brandforge/internal/domain"
)

func sampleGuidelines() domain.BrandGuidelines {
	return domain.BrandGuidelines{
		BrandName:      "Acme",
		PrimaryColor:   "#112233",
		SecondaryColor: "#445566",
		PrimaryFont:    "Inter",
		BrandTone:      "Confident",
		TargetAudience: "Developers",
		Industry:       "Software",
		Tagline:        "Build faster",
	}
}

func logoSpec() domain.AssetSpec {
	return domain.AssetSpec{
		Type:        domain.AssetTypeLogo,
		Name:        "logo_primary",
		Description: "Primary logo for Acme",
		Variant:     string(domain.LogoPrimary),
		Width:       1024,
		Height:      1024,
	}
}

func TestGenerationIsDeterministic(t *testing.T) {
	g := sampleGuidelines()
	a := Generation(g, logoSpec(), "analysis", nil)
	b := Generation(g, logoSpec(), "analysis", nil)
	if a != b {
		t.Fatal("expected identical prompts for identical inputs")
	}
	for _, want := range []string{"Acme", "#112233", "#445566", "Inter", "Build faster"} {
		if !strings.Contains(a, want) {
			t.Fatalf("prompt missing %q:\n%s", want, a)
		}
	}
	if strings.Contains(a, "CRITICAL") {
		t.Fatal("first attempt prompt must not carry a correction section")
	}
}

func TestGenerationIncorporatesCritique(t *testing.T) {
	g := sampleGuidelines()
	base := Generation(g, logoSpec(), "analysis", nil)
	correction := CorrectionFrom(domain.ValidationResult{
		Score:                40,
		Issues:               []string{"primary color missing"},
		Critique:             "color mismatch",
		RegenerationGuidance: "use #112233 for the wordmark",
	})
	got := Generation(g, logoSpec(), "analysis", correction)
	if got == base {
		t.Fatal("corrected prompt must differ from the first attempt")
	}
	for _, want := range []string{"color mismatch", "primary color missing", "Guidance: use #112233 for the wordmark"} {
		if !strings.Contains(got, want) {
			t.Fatalf("corrected prompt missing %q:\n%s", want, got)
		}
	}
	if !strings.HasPrefix(got, base) {
		t.Fatal("correction should extend the base prompt")
	}
}

func TestCorrectionFromEmptyResult(t *testing.T) {
	if c := CorrectionFrom(domain.ValidationResult{Score: 10}); c != nil {
		t.Fatalf("CorrectionFrom = %#v, want nil", c)
	}
}

func TestGenerationPerCategory(t *testing.T) {
	g := sampleGuidelines()
	cases := []struct {
		name string
		spec domain.AssetSpec
		want string
	}{
		{name: "social", spec: domain.AssetSpec{Type: domain.AssetTypeSocialMedia, Variant: "twitter_post", Width: 1200, Height: 675}, want: "Twitter/X Post"},
		{name: "slide", spec: domain.AssetSpec{Type: domain.AssetTypePresentation, Variant: "two_column", Index: 2, Width: 1920, Height: 1080, Purpose: "pitch"}, want: "Two Column"},
		{name: "email", spec: domain.AssetSpec{Type: domain.AssetTypeEmailTemplate, Variant: "welcome", Width: 600, Height: 1000}, want: "Welcome"},
		{name: "marketing", spec: domain.AssetSpec{Type: domain.AssetTypeMarketing, Variant: "business_card", Width: 1050, Height: 600}, want: "1050x600"},
		{name: "monochrome", spec: domain.AssetSpec{Type: domain.AssetTypeLogo, Variant: "monochrome"}, want: "using only #112233"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Generation(g, tc.spec, "", nil)
			if !strings.Contains(got, tc.want) {
				t.Fatalf("prompt missing %q:\n%s", tc.want, got)
			}
		})
	}
}

func TestPromptsCarryEveryGuidelineField(t *testing.T) {
	g := sampleGuidelines()
	g.AccentColor = "#778899"
	g.SecondaryFont = "Lora"
	g.BrandValues = "Sustainability first"
	g.TargetAudience = "makers"
	g.Differentiation = "Hand-finished parts"
	want := []string{"Acme", "#112233", "#445566", "#778899", "Inter", "Lora", "Confident", "makers", "Software", "Sustainability first", "Build faster", "Hand-finished parts"}

	specs := []domain.AssetSpec{
		logoSpec(),
		{Type: domain.AssetTypeSocialMedia, Name: "social_instagram_post", Variant: "instagram_post", Width: 1080, Height: 1080},
		{Type: domain.AssetTypePresentation, Name: "slide_01_title", Variant: "title", Index: 1, Width: 1920, Height: 1080},
		{Type: domain.AssetTypeEmailTemplate, Name: "email_welcome", Variant: "welcome", Width: 600, Height: 1000},
		{Type: domain.AssetTypeMarketing, Name: "marketing_flyer", Variant: "flyer", Width: 1080, Height: 1400},
	}
	for _, spec := range specs {
		got := Generation(g, spec, "", nil)
		for _, w := range want {
			if !strings.Contains(got, w) {
				t.Errorf("Generation(%s) missing %q", spec.Name, w)
			}
		}
	}
	rubric := Rubric(g, logoSpec(), 70, nil)
	for _, w := range want {
		if !strings.Contains(rubric, w) {
			t.Errorf("Rubric missing %q", w)
		}
	}
}

func TestIdentityOmitsUnsetFields(t *testing.T) {
	g := sampleGuidelines()
	g.Tagline = ""
	got := Generation(g, logoSpec(), "", nil)
	for _, absent := range []string{"Tagline:", "Brand Values:", "Differentiation:"} {
		if strings.Contains(got, absent) {
			t.Fatalf("prompt has %q for an unset field:\n%s", absent, got)
		}
	}
	if !strings.Contains(got, "- Body: Inter") {
		t.Fatalf("body font should fall back to the primary font:\n%s", got)
	}
}

func TestRubricListsPreviousIssuesAndThreshold(t *testing.T) {
	got := Rubric(sampleGuidelines(), logoSpec(), 80, []string{"text unreadable", " "})
	for _, want := range []string{"score must be 80", "text unreadable", "color_adherence", "brand_recognition"} {
		if !strings.Contains(got, want) {
			t.Fatalf("rubric missing %q:\n%s", want, got)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"icon_only":      "Icon Only",
		"brochure_cover": "Brochure Cover",
		"social-media":   "Social Media",
	}
	for in, want := range cases {
		if got := DisplayName(in); got != want {
			t.Fatalf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFallbackTheme(t *testing.T) {
	g := sampleGuidelines()
	g.CampaignGoal = "Drive Signups"
	got := FallbackTheme(g, 4)
	want := "A cohesive confident campaign featuring 4 coordinated assets designed to drive signups."
	if got != want {
		t.Fatalf("FallbackTheme = %q, want %q", got, want)
	}
}
