package prompts

import (
	"fmt"
	"strings"

	"brandforge/internal/domain"
)

// RubricSystem is the system instruction paired with Rubric.
const RubricSystem = "You are a strict brand quality auditor. You only respond with valid JSON."

// Rubric builds the validation instructions for one generated asset. Issues
// from the previous attempt, if any, are listed so the auditor can verify they
// were fixed.
func Rubric(g domain.BrandGuidelines, spec domain.AssetSpec, threshold int, previousIssues []string) string {
	var b strings.Builder
	b.WriteString("Analyze this generated asset image and determine if it meets the brand guidelines. Be critical but fair.\n\n")
	writeIdentity(&b, g, "None specified")
	b.WriteString("\n")
	b.WriteString("Asset Details:\n")
	fmt.Fprintf(&b, "- Type: %s\n", spec.Type)
	fmt.Fprintf(&b, "- Name: %s\n", spec.Name)
	fmt.Fprintf(&b, "- Description: %s\n", spec.Description)
	if spec.Width > 0 && spec.Height > 0 {
		fmt.Fprintf(&b, "- Intended size: %dx%d pixels\n", spec.Width, spec.Height)
	}

	var prev []string
	for _, issue := range previousIssues {
		if issue = strings.TrimSpace(issue); issue != "" {
			prev = append(prev, issue)
		}
	}
	if len(prev) > 0 {
		b.WriteString("\nIMPORTANT - Previous version had these issues:\n")
		for _, issue := range prev {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
		b.WriteString("The new version MUST address them. Be strict in verifying they are fixed.\n")
	}

	b.WriteString("\nScore each dimension from 0 to 100:\n")
	fmt.Fprintf(&b, "1. color_adherence: are the brand colors (%s, %s) prominently and correctly used?\n", g.PrimaryColor, g.SecondaryColor)
	fmt.Fprintf(&b, "2. typography_compliance: do headings follow %s and body text follow %s?\n", g.PrimaryFont, g.BodyFont())
	fmt.Fprintf(&b, "3. tone_alignment: does the visual mood match %q and suit the listed audience and values?\n", g.BrandTone)
	b.WriteString("4. layout_quality: is the layout balanced, complete and polished enough for a real brand?\n")
	fmt.Fprintf(&b, "5. brand_recognition: would someone recognize this as %s?\n\n", g.BrandName)

	fmt.Fprintf(&b, "PASSING THRESHOLD: score must be %d or more to pass.\n\n", threshold)
	b.WriteString("Return ONLY a JSON object:\n")
	b.WriteString(`{"score":<0-100>,"passed":<bool>,"issues":[string],"critique":string,"regeneration_guidance":string|null,` +
		`"color_adherence":<0-100>,"typography_compliance":<0-100>,"tone_alignment":<0-100>,"layout_quality":<0-100>,"brand_recognition":<0-100>,` +
		`"strengths":[string],"improvements":[string]}`)
	b.WriteString("\n\nBe specific about issues, for example \"Primary color ")
	b.WriteString(g.PrimaryColor)
	b.WriteString(" is not visible in the design\".")
	return b.String()
}
