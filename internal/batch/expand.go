package batch

import (
	"fmt"
	"strings"

	"brandforge/internal/domain"
	"brandforge/internal/prompts"
)

type size struct{ w, h int }

var (
	logoSize  = size{1024, 1024}
	slideSize = size{1920, 1080}
	emailSize = size{600, 1000}
)

var socialSizes = map[domain.SocialPlatform]size{
	domain.InstagramPost:    {1080, 1080},
	domain.InstagramStory:   {1080, 1920},
	domain.FacebookPost:     {1200, 630},
	domain.TwitterPost:      {1200, 675},
	domain.LinkedInPost:     {1200, 627},
	domain.YouTubeThumbnail: {1280, 720},
}

var marketingSizes = map[string]size{
	"banner":         {1200, 400},
	"flyer":          {1080, 1400},
	"business_card":  {1050, 600},
	"poster":         {1080, 1620},
	"brochure_cover": {1080, 1400},
}

var slideRotation = []string{"content", "two_column", "image_focus", "section"}

// Expand turns a selection into concrete asset specs, category by category
// in canonical order.
func Expand(g domain.BrandGuidelines, sel domain.Selection) []domain.AssetSpec {
	var specs []domain.AssetSpec
	for _, req := range sel.Requests() {
		specs = append(specs, expandRequest(g, req)...)
	}
	return specs
}

func expandRequest(g domain.BrandGuidelines, req domain.AssetRequest) []domain.AssetSpec {
	switch r := req.(type) {
	case domain.LogoRequest:
		out := make([]domain.AssetSpec, 0, len(r.Variations))
		for _, v := range r.Variations {
			out = append(out, domain.AssetSpec{
				Type:        domain.AssetTypeLogo,
				Name:        "logo_" + string(v),
				Description: fmt.Sprintf("%s logo variation for %s", prompts.DisplayName(string(v)), g.BrandName),
				Variant:     string(v),
				Width:       logoSize.w,
				Height:      logoSize.h,
				Purpose:     r.StylePreferences,
			})
		}
		return out
	case domain.SocialRequest:
		out := make([]domain.AssetSpec, 0, len(r.Platforms))
		for _, p := range r.Platforms {
			s, ok := socialSizes[p]
			if !ok {
				s = socialSizes[domain.InstagramPost]
			}
			out = append(out, domain.AssetSpec{
				Type:        domain.AssetTypeSocialMedia,
				Name:        "social_" + string(p),
				Description: fmt.Sprintf("%s template for %s", prompts.DisplayName(string(p)), g.BrandName),
				Variant:     string(p),
				Width:       s.w,
				Height:      s.h,
				Purpose:     r.TemplatePurpose,
			})
		}
		return out
	case domain.PresentationRequest:
		seq := SlideSequence(r.SlideCount)
		out := make([]domain.AssetSpec, 0, len(seq))
		for i, kind := range seq {
			out = append(out, domain.AssetSpec{
				Type:        domain.AssetTypePresentation,
				Name:        fmt.Sprintf("slide_%02d_%s", i+1, kind),
				Description: fmt.Sprintf("Slide %d: %s", i+1, prompts.DisplayName(kind)),
				Variant:     kind,
				Index:       i + 1,
				Width:       slideSize.w,
				Height:      slideSize.h,
				Purpose:     r.PresentationType,
			})
		}
		return out
	case domain.EmailRequest:
		out := make([]domain.AssetSpec, 0, len(r.TemplateTypes))
		for _, t := range r.TemplateTypes {
			t = strings.TrimSpace(t)
			out = append(out, domain.AssetSpec{
				Type:        domain.AssetTypeEmailTemplate,
				Name:        "email_" + t,
				Description: fmt.Sprintf("%s email template for %s", prompts.DisplayName(t), g.BrandName),
				Variant:     t,
				Width:       emailSize.w,
				Height:      emailSize.h,
			})
		}
		return out
	case domain.MarketingRequest:
		out := make([]domain.AssetSpec, 0, len(r.MaterialTypes))
		for _, t := range r.MaterialTypes {
			t = strings.TrimSpace(t)
			s, ok := marketingSizes[strings.ToLower(t)]
			if !ok {
				s = marketingSizes["banner"]
			}
			out = append(out, domain.AssetSpec{
				Type:        domain.AssetTypeMarketing,
				Name:        "marketing_" + t,
				Description: fmt.Sprintf("%s for %s", prompts.DisplayName(t), g.BrandName),
				Variant:     t,
				Width:       s.w,
				Height:      s.h,
			})
		}
		return out
	default:
		return nil
	}
}

// SlideSequence returns the slide kinds for a deck of count slides. Decks of
// three or fewer take a prefix of title, content, closing; longer decks open
// with a title, rotate through the content kinds and end with a closing slide.
func SlideSequence(count int) []string {
	if count <= 0 {
		return nil
	}
	if count <= 3 {
		return []string{"title", "content", "closing"}[:count]
	}
	seq := make([]string, 0, count)
	seq = append(seq, "title")
	for i := 0; i < count-2; i++ {
		if i > 0 && i%4 == 0 {
			seq = append(seq, "section")
			continue
		}
		seq = append(seq, slideRotation[i%len(slideRotation)])
	}
	return append(seq, "closing")
}
