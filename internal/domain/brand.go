package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// BrandGuidelines describes a brand's visual and tonal identity. Values are
// treated as immutable once a generation run starts.
type BrandGuidelines struct {
	BrandName      string `json:"brand_name" yaml:"brand_name"`
	PrimaryColor   string `json:"primary_color" yaml:"primary_color"`
	SecondaryColor string `json:"secondary_color" yaml:"secondary_color"`
	AccentColor    string `json:"accent_color,omitempty" yaml:"accent_color,omitempty"`
	PrimaryFont    string `json:"primary_font" yaml:"primary_font"`
	SecondaryFont  string `json:"secondary_font,omitempty" yaml:"secondary_font,omitempty"`
	BrandTone      string `json:"brand_tone" yaml:"brand_tone"`
	TargetAudience string `json:"target_audience" yaml:"target_audience"`
	Industry       string `json:"industry" yaml:"industry"`

	BrandValues       string `json:"brand_values,omitempty" yaml:"brand_values,omitempty"`
	Tagline           string `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	AdditionalContext string `json:"additional_context,omitempty" yaml:"additional_context,omitempty"`
	Competitors       string `json:"competitors,omitempty" yaml:"competitors,omitempty"`
	Differentiation   string `json:"differentiation,omitempty" yaml:"differentiation,omitempty"`

	CampaignName    string `json:"campaign_name,omitempty" yaml:"campaign_name,omitempty"`
	CampaignGoal    string `json:"campaign_goal,omitempty" yaml:"campaign_goal,omitempty"`
	CampaignMessage string `json:"campaign_message,omitempty" yaml:"campaign_message,omitempty"`
}

// Normalize trims surrounding whitespace from every field and returns the copy.
func (g BrandGuidelines) Normalize() BrandGuidelines {
	fields := []*string{
		&g.BrandName, &g.PrimaryColor, &g.SecondaryColor, &g.AccentColor,
		&g.PrimaryFont, &g.SecondaryFont, &g.BrandTone, &g.TargetAudience,
		&g.Industry, &g.BrandValues, &g.Tagline, &g.AdditionalContext,
		&g.Competitors, &g.Differentiation, &g.CampaignName, &g.CampaignGoal,
		&g.CampaignMessage,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
	return g
}

// Validate ensures required fields are present and colors are #RRGGBB values.
func (g BrandGuidelines) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"brand_name", g.BrandName},
		{"primary_color", g.PrimaryColor},
		{"secondary_color", g.SecondaryColor},
		{"primary_font", g.PrimaryFont},
		{"brand_tone", g.BrandTone},
		{"target_audience", g.TargetAudience},
		{"industry", g.Industry},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidGuidelines, field.name)
		}
	}
	colors := []struct {
		name  string
		value string
	}{
		{"primary_color", g.PrimaryColor},
		{"secondary_color", g.SecondaryColor},
		{"accent_color", g.AccentColor},
	}
	for _, c := range colors {
		v := strings.TrimSpace(c.value)
		if v == "" {
			continue
		}
		if !hexColorPattern.MatchString(v) {
			return fmt.Errorf("%w: %s must look like #RRGGBB, got %q", ErrInvalidGuidelines, c.name, v)
		}
	}
	return nil
}

// HasCampaign reports whether any campaign field was supplied.
func (g BrandGuidelines) HasCampaign() bool {
	return strings.TrimSpace(g.CampaignName) != "" ||
		strings.TrimSpace(g.CampaignGoal) != "" ||
		strings.TrimSpace(g.CampaignMessage) != ""
}

// BodyFont returns the secondary font, falling back to the primary one.
func (g BrandGuidelines) BodyFont() string {
	if f := strings.TrimSpace(g.SecondaryFont); f != "" {
		return f
	}
	return g.PrimaryFont
}
