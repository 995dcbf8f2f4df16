package domain

import (
	"fmt"
	"strings"
)

// AssetType enumerates the closed set of asset categories.
type AssetType string

const (
	AssetTypeLogo          AssetType = "logo"
	AssetTypeSocialMedia   AssetType = "social-media"
	AssetTypePresentation  AssetType = "presentation"
	AssetTypeEmailTemplate AssetType = "email-template"
	AssetTypeMarketing     AssetType = "marketing"
)

// AssetTypes lists every category in canonical order.
var AssetTypes = []AssetType{
	AssetTypeLogo,
	AssetTypeSocialMedia,
	AssetTypePresentation,
	AssetTypeEmailTemplate,
	AssetTypeMarketing,
}

// LogoVariation enumerates supported logo variants.
type LogoVariation string

const (
	LogoPrimary    LogoVariation = "primary"
	LogoHorizontal LogoVariation = "horizontal"
	LogoStacked    LogoVariation = "stacked"
	LogoIconOnly   LogoVariation = "icon_only"
	LogoMonochrome LogoVariation = "monochrome"
	LogoReversed   LogoVariation = "reversed"
)

var logoVariations = map[LogoVariation]struct{}{
	LogoPrimary: {}, LogoHorizontal: {}, LogoStacked: {},
	LogoIconOnly: {}, LogoMonochrome: {}, LogoReversed: {},
}

// SocialPlatform enumerates supported social media placements.
type SocialPlatform string

const (
	InstagramPost    SocialPlatform = "instagram_post"
	InstagramStory   SocialPlatform = "instagram_story"
	FacebookPost     SocialPlatform = "facebook_post"
	TwitterPost      SocialPlatform = "twitter_post"
	LinkedInPost     SocialPlatform = "linkedin_post"
	YouTubeThumbnail SocialPlatform = "youtube_thumbnail"
)

var socialPlatforms = map[SocialPlatform]struct{}{
	InstagramPost: {}, InstagramStory: {}, FacebookPost: {},
	TwitterPost: {}, LinkedInPost: {}, YouTubeThumbnail: {},
}

const (
	MinSlideCount     = 1
	MaxSlideCount     = 20
	DefaultSlideCount = 5
)

// AssetRequest is a closed tagged variant: one concrete type per AssetType,
// each carrying its category-specific parameters.
type AssetRequest interface {
	AssetType() AssetType
	Validate() error
	isAssetRequest()
}

type LogoRequest struct {
	Variations       []LogoVariation `json:"variations" yaml:"variations"`
	StylePreferences string          `json:"style_preferences,omitempty" yaml:"style_preferences,omitempty"`
}

type SocialRequest struct {
	Platforms       []SocialPlatform `json:"platforms" yaml:"platforms"`
	TemplatePurpose string           `json:"template_purpose,omitempty" yaml:"template_purpose,omitempty"`
}

type PresentationRequest struct {
	SlideCount       int    `json:"slide_count" yaml:"slide_count"`
	PresentationType string `json:"presentation_type" yaml:"presentation_type"`
}

type EmailRequest struct {
	TemplateTypes []string `json:"template_types" yaml:"template_types"`
}

type MarketingRequest struct {
	MaterialTypes []string `json:"material_types" yaml:"material_types"`
}

func (LogoRequest) AssetType() AssetType         { return AssetTypeLogo }
func (SocialRequest) AssetType() AssetType       { return AssetTypeSocialMedia }
func (PresentationRequest) AssetType() AssetType { return AssetTypePresentation }
func (EmailRequest) AssetType() AssetType        { return AssetTypeEmailTemplate }
func (MarketingRequest) AssetType() AssetType    { return AssetTypeMarketing }

func (LogoRequest) isAssetRequest()         {}
func (SocialRequest) isAssetRequest()       {}
func (PresentationRequest) isAssetRequest() {}
func (EmailRequest) isAssetRequest()        {}
func (MarketingRequest) isAssetRequest()    {}

func (r LogoRequest) Validate() error {
	if len(r.Variations) == 0 {
		return fmt.Errorf("logos: at least one variation is required")
	}
	for _, v := range r.Variations {
		if _, ok := logoVariations[v]; !ok {
			return fmt.Errorf("logos: unsupported variation %q", v)
		}
	}
	return nil
}

func (r SocialRequest) Validate() error {
	if len(r.Platforms) == 0 {
		return fmt.Errorf("social: at least one platform is required")
	}
	for _, p := range r.Platforms {
		if _, ok := socialPlatforms[p]; !ok {
			return fmt.Errorf("social: unsupported platform %q", p)
		}
	}
	return nil
}

func (r PresentationRequest) Validate() error {
	if r.SlideCount < MinSlideCount || r.SlideCount > MaxSlideCount {
		return fmt.Errorf("presentation: slide_count must be between %d and %d", MinSlideCount, MaxSlideCount)
	}
	return nil
}

func (r EmailRequest) Validate() error {
	return validateFreeList("email", "template_types", r.TemplateTypes)
}

func (r MarketingRequest) Validate() error {
	return validateFreeList("marketing", "material_types", r.MaterialTypes)
}

func validateFreeList(category, field string, values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("%s: at least one entry in %s is required", category, field)
	}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s: %s contains an empty entry", category, field)
		}
	}
	return nil
}

// Selection carries the requested categories. A nil field means the category
// was not requested.
type Selection struct {
	Logos        *LogoRequest         `json:"logos,omitempty" yaml:"logos,omitempty"`
	Social       *SocialRequest       `json:"social,omitempty" yaml:"social,omitempty"`
	Presentation *PresentationRequest `json:"presentation,omitempty" yaml:"presentation,omitempty"`
	Email        *EmailRequest        `json:"email,omitempty" yaml:"email,omitempty"`
	Marketing    *MarketingRequest    `json:"marketing,omitempty" yaml:"marketing,omitempty"`
}

// DefaultLogoRequest and friends return the per-category defaults used when a
// category is requested without parameters.
func DefaultLogoRequest() *LogoRequest {
	return &LogoRequest{Variations: []LogoVariation{LogoPrimary, LogoIconOnly, LogoHorizontal}}
}

func DefaultSocialRequest() *SocialRequest {
	return &SocialRequest{Platforms: []SocialPlatform{InstagramPost, TwitterPost, LinkedInPost}}
}

func DefaultPresentationRequest() *PresentationRequest {
	return &PresentationRequest{SlideCount: DefaultSlideCount, PresentationType: "company overview"}
}

func DefaultEmailRequest() *EmailRequest {
	return &EmailRequest{TemplateTypes: []string{"welcome", "newsletter"}}
}

func DefaultMarketingRequest() *MarketingRequest {
	return &MarketingRequest{MaterialTypes: []string{"banner", "flyer", "business_card"}}
}

// DefaultSelection requests every category with its defaults.
func DefaultSelection() Selection {
	return SelectionFromFlags(true, true, true, true, true)
}

// SelectionFromFlags mirrors the include_* flags of the complete-package call.
func SelectionFromFlags(logos, social, presentation, email, marketing bool) Selection {
	var s Selection
	if logos {
		s.Logos = DefaultLogoRequest()
	}
	if social {
		s.Social = DefaultSocialRequest()
	}
	if presentation {
		s.Presentation = DefaultPresentationRequest()
	}
	if email {
		s.Email = DefaultEmailRequest()
	}
	if marketing {
		s.Marketing = DefaultMarketingRequest()
	}
	return s
}

// WithDefaults fills empty parameter lists of selected categories.
func (s Selection) WithDefaults() Selection {
	if s.Logos != nil && len(s.Logos.Variations) == 0 {
		l := *s.Logos
		l.Variations = DefaultLogoRequest().Variations
		s.Logos = &l
	}
	if s.Social != nil && len(s.Social.Platforms) == 0 {
		p := *s.Social
		p.Platforms = DefaultSocialRequest().Platforms
		s.Social = &p
	}
	if s.Presentation != nil {
		p := *s.Presentation
		if p.SlideCount == 0 {
			p.SlideCount = DefaultSlideCount
		}
		if strings.TrimSpace(p.PresentationType) == "" {
			p.PresentationType = DefaultPresentationRequest().PresentationType
		}
		s.Presentation = &p
	}
	if s.Email != nil && len(s.Email.TemplateTypes) == 0 {
		s.Email = DefaultEmailRequest()
	}
	if s.Marketing != nil && len(s.Marketing.MaterialTypes) == 0 {
		s.Marketing = DefaultMarketingRequest()
	}
	return s
}

// Requests returns the selected requests in canonical category order.
func (s Selection) Requests() []AssetRequest {
	var out []AssetRequest
	if s.Logos != nil {
		out = append(out, *s.Logos)
	}
	if s.Social != nil {
		out = append(out, *s.Social)
	}
	if s.Presentation != nil {
		out = append(out, *s.Presentation)
	}
	if s.Email != nil {
		out = append(out, *s.Email)
	}
	if s.Marketing != nil {
		out = append(out, *s.Marketing)
	}
	return out
}

// Validate checks every selected request.
func (s Selection) Validate() error {
	reqs := s.Requests()
	if len(reqs) == 0 {
		return ErrEmptySelection
	}
	for _, r := range reqs {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AssetSpec is one concrete deliverable expanded from an AssetRequest.
type AssetSpec struct {
	Type        AssetType
	Name        string
	Description string
	// Variant is the logo variation, platform, slide type, template type or
	// material type.
	Variant string
	// Index is the 1-based slide position; zero for other categories.
	Index   int
	Width   int
	Height  int
	Purpose string
}
