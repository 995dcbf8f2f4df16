// Package prompts builds the text sent to the generation, validation and
// narrative backends. Every builder is a pure function of its inputs.
package prompts

import (
	"fmt"
	"strings"

	"brandforge/internal/domain"
)

// Correction carries the feedback of a failed attempt into the next prompt.
type Correction struct {
	Issues   []string
	Critique string
	Guidance string
}

// CorrectionFrom builds a correction from a failing validation. It returns nil
// when the result carries no usable feedback.
func CorrectionFrom(v domain.ValidationResult) *Correction {
	c := &Correction{
		Issues:   append([]string(nil), v.Issues...),
		Critique: strings.TrimSpace(v.Critique),
		Guidance: strings.TrimSpace(v.RegenerationGuidance),
	}
	if c.empty() {
		return nil
	}
	return c
}

func (c *Correction) empty() bool {
	return c == nil || (len(c.Issues) == 0 && c.Critique == "" && c.Guidance == "")
}

var logoInstructions = map[domain.LogoVariation]string{
	domain.LogoPrimary:    "Create the primary version of the logo with the full brand name and any symbol integrated harmoniously.",
	domain.LogoHorizontal: "Create a horizontal orientation logo suitable for website headers and letterheads.",
	domain.LogoStacked:    "Create a stacked version with the icon above the text, suitable for square spaces.",
	domain.LogoIconOnly:   "Create just the symbol mark without any text, suitable for favicons and app icons.",
	domain.LogoMonochrome: "Create a single-color version using only %s that works well in limited color contexts.",
	domain.LogoReversed:   "Create a reversed version suitable for dark backgrounds, ensuring legibility and impact.",
}

var slideInstructions = map[string]string{
	"title":       "Create a title slide with prominent space for the presentation title and subtitle. Include the brand logo and any relevant imagery.",
	"section":     "Create a section divider slide that introduces new topics. Bold, impactful design with minimal text placeholders.",
	"content":     "Create a content slide with areas for a heading, bullet points or paragraphs, and optional imagery.",
	"two_column":  "Create a two-column layout slide for comparing information or showing text alongside images.",
	"image_focus": "Create an image-focused slide with a large image area and minimal text overlay capability.",
	"closing":     "Create a closing slide with contact information placeholders and the brand logo.",
}

var emailInstructions = map[string]string{
	"welcome":       "Create a welcome email template that makes new subscribers feel valued. Include brand logo, a warm greeting area, key benefits and a clear call to action.",
	"newsletter":    "Create a newsletter template with sections for featured content, multiple articles and consistent branding throughout.",
	"promotional":   "Create a promotional email template with an eye-catching header, an offer showcase area, urgency elements and prominent call-to-action buttons.",
	"transactional": "Create a transactional email template with clear information hierarchy, an order details section and professional formatting.",
	"announcement":  "Create an announcement email template for company news or product launches with an impactful header and a clear message area.",
}

var marketingInstructions = map[string]string{
	"banner":         "Create a web banner with impactful visuals, a brand messaging area and a call-to-action button. Horizontal format suitable for website headers or ad placements.",
	"flyer":          "Create a flyer design with an eye-catching header, key information sections, contact details and brand elements.",
	"business_card":  "Create a business card design with name and title placeholders, contact areas, logo placement and brand accents.",
	"poster":         "Create a poster design with a bold headline area, supporting imagery, key messages and brand identity.",
	"brochure_cover": "Create a brochure cover design with compelling imagery, brand name, tagline area and a professional aesthetic suitable for print.",
}

// Generation builds the image prompt for one asset. A non-nil correction
// appends a section quoting the previous attempt's problems.
func Generation(g domain.BrandGuidelines, spec domain.AssetSpec, analysis string, correction *Correction) string {
	var b strings.Builder
	switch spec.Type {
	case domain.AssetTypeLogo:
		writeLogo(&b, g, spec, analysis)
	case domain.AssetTypeSocialMedia:
		writeSocial(&b, g, spec, analysis)
	case domain.AssetTypePresentation:
		writeSlide(&b, g, spec, analysis)
	case domain.AssetTypeEmailTemplate:
		writeEmail(&b, g, spec, analysis)
	case domain.AssetTypeMarketing:
		writeMarketing(&b, g, spec, analysis)
	default:
		fmt.Fprintf(&b, "Create a professional brand asset for %s.\n\n%s", g.BrandName, spec.Description)
	}
	if !correction.empty() {
		b.WriteString("\n\n")
		b.WriteString(CorrectionSection(correction))
	}
	return strings.TrimSpace(b.String())
}

// CorrectionSection renders the regeneration instructions on their own.
func CorrectionSection(c *Correction) string {
	if c.empty() {
		return ""
	}
	var b strings.Builder
	b.WriteString("CRITICAL - Previous version had these issues that MUST be fixed:\n")
	for _, issue := range c.Issues {
		if issue = strings.TrimSpace(issue); issue != "" {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}
	if c.Guidance != "" {
		fmt.Fprintf(&b, "- Guidance: %s\n", c.Guidance)
	}
	if c.Critique != "" {
		fmt.Fprintf(&b, "Reviewer critique: %s\n", c.Critique)
	}
	b.WriteString("Apply these specific corrections in this version.")
	return b.String()
}

// writeIdentity lists every guideline field that is set. Rubric uses the same
// block so the auditor scores against what the generator was told.
func writeIdentity(b *strings.Builder, g domain.BrandGuidelines, accentFallback string) {
	b.WriteString("Brand Identity:\n")
	fmt.Fprintf(b, "- Brand Name: %s\n", g.BrandName)
	field(b, "Industry", g.Industry)
	field(b, "Brand Tone", g.BrandTone)
	field(b, "Target Audience", g.TargetAudience)
	field(b, "Brand Values", g.BrandValues)
	field(b, "Tagline", g.Tagline)
	field(b, "Differentiation", g.Differentiation)
	b.WriteString("\nBrand Colors:\n")
	fmt.Fprintf(b, "- Primary: %s\n", g.PrimaryColor)
	fmt.Fprintf(b, "- Secondary: %s\n", g.SecondaryColor)
	if a := orDefault(g.AccentColor, accentFallback); a != "" {
		fmt.Fprintf(b, "- Accent: %s\n", a)
	}
	b.WriteString("\nTypography:\n")
	fmt.Fprintf(b, "- Headings: %s\n", g.PrimaryFont)
	fmt.Fprintf(b, "- Body: %s\n", g.BodyFont())
}

func field(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "- %s: %s\n", label, value)
	}
}

func writeLogo(b *strings.Builder, g domain.BrandGuidelines, spec domain.AssetSpec, analysis string) {
	fmt.Fprintf(b, "Create a professional logo for %q.\n\n", g.BrandName)
	writeIdentity(b, g, "use sparingly")
	if g.Tagline != "" {
		b.WriteString("The tagline may be included where it fits the variation.\n")
	}
	variation := domain.LogoVariation(spec.Variant)
	fmt.Fprintf(b, "\nVariation Type: %s\n", DisplayName(spec.Variant))
	if instr, ok := logoInstructions[variation]; ok {
		if variation == domain.LogoMonochrome {
			instr = fmt.Sprintf(instr, g.PrimaryColor)
		}
		b.WriteString(instr + "\n")
	}
	if spec.Purpose != "" {
		fmt.Fprintf(b, "\nStyle Preferences: %s\n", spec.Purpose)
	}
	b.WriteString("\nDesign Requirements:\n")
	b.WriteString("- Clean, professional and memorable design\n")
	b.WriteString("- Scalable vector-style clarity that holds up at any size\n")
	b.WriteString("- Clear visual hierarchy with deliberate negative space\n")
	if a := truncate(analysis, 500); a != "" {
		fmt.Fprintf(b, "\nBased on brand analysis: %s\n", a)
	}
}

func writeSocial(b *strings.Builder, g domain.BrandGuidelines, spec domain.AssetSpec, analysis string) {
	platform := PlatformName(domain.SocialPlatform(spec.Variant))
	fmt.Fprintf(b, "Create a professional social media template for %s.\n\n", platform)
	fmt.Fprintf(b, "Platform: %s\nDimensions: %dx%d pixels\n", platform, spec.Width, spec.Height)
	if spec.Purpose != "" {
		fmt.Fprintf(b, "Template Purpose: %s\n", spec.Purpose)
	}
	b.WriteString("\n")
	writeIdentity(b, g, "optional")
	b.WriteString("\nDesign Requirements:\n")
	b.WriteString("- Placeholder areas for text with clear visual hierarchy\n")
	b.WriteString("- Space for the brand logo, typically in a corner\n")
	b.WriteString("- Safe zones for platform UI elements\n")
	b.WriteString("- Subtle brand motifs and readable contrast on text areas\n")
	if a := truncate(analysis, 400); a != "" {
		fmt.Fprintf(b, "\nBrand context: %s\n", a)
	}
}

func writeSlide(b *strings.Builder, g domain.BrandGuidelines, spec domain.AssetSpec, analysis string) {
	fmt.Fprintf(b, "Create a professional presentation slide design for %s.\n\n", g.BrandName)
	fmt.Fprintf(b, "Slide Type: %s\n", DisplayName(spec.Variant))
	if spec.Index > 0 {
		fmt.Fprintf(b, "Slide Position: %d\n", spec.Index)
	}
	fmt.Fprintf(b, "Presentation Purpose: %s\n", spec.Purpose)
	fmt.Fprintf(b, "Dimensions: %dx%d pixels (16:9 aspect ratio)\n\n", spec.Width, spec.Height)
	writeIdentity(b, g, "")
	b.WriteString("- Background: light or dark theme chosen to suit the brand tone\n\n")
	instr, ok := slideInstructions[spec.Variant]
	if !ok {
		instr = slideInstructions["content"]
	}
	b.WriteString(instr + "\n")
	b.WriteString("\nDesign Requirements:\n")
	b.WriteString("- Consistent logo placement and color accents\n")
	b.WriteString("- Proper margins and accessible contrast\n")
	if a := truncate(analysis, 400); a != "" {
		fmt.Fprintf(b, "\nBrand analysis context: %s\n", a)
	}
}

func writeEmail(b *strings.Builder, g domain.BrandGuidelines, spec domain.AssetSpec, analysis string) {
	fmt.Fprintf(b, "Create a professional email template design for %s.\n\n", g.BrandName)
	fmt.Fprintf(b, "Email Type: %s\n", DisplayName(spec.Variant))
	fmt.Fprintf(b, "Width: %d pixels (standard email width)\n", spec.Width)
	b.WriteString("Height: appropriate for the template type, typically 800-1200 pixels\n\n")
	writeIdentity(b, g, "")
	b.WriteString("- Background: light, clean background with brand color accents\n")
	b.WriteString("- Fonts may use a web-safe fallback representation\n\n")
	instr, ok := emailInstructions[strings.ToLower(spec.Variant)]
	if !ok {
		instr = fmt.Sprintf("Create a %s email template with a branded header, a clear message area and a call to action.", strings.ReplaceAll(spec.Variant, "_", " "))
	}
	b.WriteString(instr + "\n")
	b.WriteString("\nDesign Requirements:\n")
	b.WriteString("- Single column, mobile-friendly structure\n")
	b.WriteString("- Header, body and footer sections with social and unsubscribe placeholders\n")
	b.WriteString("- Call-to-action buttons in brand colors\n")
	if a := truncate(analysis, 400); a != "" {
		fmt.Fprintf(b, "\nBrand context: %s\n", a)
	}
}

func writeMarketing(b *strings.Builder, g domain.BrandGuidelines, spec domain.AssetSpec, analysis string) {
	label := strings.ReplaceAll(spec.Variant, "_", " ")
	fmt.Fprintf(b, "Create a professional %s design for %s.\n\n", label, g.BrandName)
	fmt.Fprintf(b, "Material Type: %s\nDimensions: %dx%d pixels\n\n", DisplayName(spec.Variant), spec.Width, spec.Height)
	writeIdentity(b, g, "optional")
	b.WriteString("\n")
	instr, ok := marketingInstructions[strings.ToLower(spec.Variant)]
	if !ok {
		instr = marketingInstructions["banner"]
	}
	b.WriteString(instr + "\n")
	b.WriteString("\nDesign Requirements:\n")
	fmt.Fprintf(b, "- Appropriate for %s\n", g.TargetAudience)
	fmt.Fprintf(b, "- Matches brand tone: %s\n", g.BrandTone)
	b.WriteString("- Print-ready finish with balanced white space\n")
	if a := truncate(analysis, 400); a != "" {
		fmt.Fprintf(b, "\nBrand context: %s\n", a)
	}
}
