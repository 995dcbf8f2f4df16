// Package validator scores generated images against brand guidelines.
package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"brandforge/internal/domain"
	"brandforge/internal/prompts"
	"brandforge/internal/providers/genai"
)

// NeutralScore replaces sub-scores the model left out.
const NeutralScore = 50

// Request carries everything needed to score one image.
type Request struct {
	Image          domain.Image
	Guidelines     domain.BrandGuidelines
	Spec           domain.AssetSpec
	Threshold      int
	PreviousIssues []string
}

// Validator returns a fresh ValidationResult per call, or an error when the
// image could not be scored at all.
type Validator interface {
	Validate(ctx context.Context, req Request) (domain.ValidationResult, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(ctx context.Context, req Request) (domain.ValidationResult, error)

func (f ValidatorFunc) Validate(ctx context.Context, req Request) (domain.ValidationResult, error) {
	return f(ctx, req)
}

type GeminiValidator struct {
	client *genai.Client
}

func NewGeminiValidator(client *genai.Client) *GeminiValidator {
	return &GeminiValidator{client: client}
}

const syntheticVerdict = `{"score":78,"color_adherence":80,"typography_compliance":76,"tone_alignment":78,"layout_quality":77,"brand_recognition":79,` +
	`"issues":[],"critique":"Synthetic review: no scoring model is configured.","regeneration_guidance":null,` +
	`"strengths":["Uses the brand palette"],"improvements":["Configure GEMINI_API_KEY for real scoring"]}`

func (v *GeminiValidator) Validate(ctx context.Context, req Request) (domain.ValidationResult, error) {
	if len(req.Image.Data) == 0 {
		return domain.ValidationResult{}, fmt.Errorf("validator: %w", domain.ErrNoImage)
	}
	text, err := v.client.GenerateText(ctx, genai.TextRequest{
		System:      prompts.RubricSystem,
		Prompt:      prompts.Rubric(req.Guidelines, req.Spec, req.Threshold, req.PreviousIssues),
		Images:      []genai.InlineImage{{MIMEType: req.Image.MIMEType, Data: req.Image.Data}},
		JSON:        true,
		Temperature: 0.2,
		Synthetic:   syntheticVerdict,
	})
	if err != nil {
		return domain.ValidationResult{}, fmt.Errorf("validator: %w", err)
	}
	return ParseResult(text, req.Threshold)
}

var _ Validator = (*GeminiValidator)(nil)

// stringList accepts either a JSON array of strings or a single string.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*s = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if strings.TrimSpace(one) != "" {
		*s = []string{one}
	}
	return nil
}

type verdictPayload struct {
	Score                *float64   `json:"score"`
	OverallScore         *float64   `json:"overall_score"`
	Issues               stringList `json:"issues"`
	Critique             string     `json:"critique"`
	RegenerationGuidance *string    `json:"regeneration_guidance"`
	ColorAdherence       *float64   `json:"color_adherence"`
	TypographyCompliance *float64   `json:"typography_compliance"`
	ToneAlignment        *float64   `json:"tone_alignment"`
	LayoutQuality        *float64   `json:"layout_quality"`
	BrandRecognition     *float64   `json:"brand_recognition"`
	Explanation          string     `json:"explanation"`
	Strengths            stringList `json:"strengths"`
	Improvements         stringList `json:"improvements"`
}

// ParseResult turns model text into a ValidationResult. Missing sub-scores
// default to NeutralScore; a missing overall score is the mean of the
// sub-scores the model did return. Passed always follows the threshold, never
// the model's own verdict. Text with no decodable JSON is an error.
func ParseResult(raw string, threshold int) (domain.ValidationResult, error) {
	payload, err := genai.ParsePayload[verdictPayload](raw)
	if err != nil {
		return domain.ValidationResult{}, fmt.Errorf("validator: unreadable verdict: %w", err)
	}

	dims := []*float64{
		payload.ColorAdherence,
		payload.TypographyCompliance,
		payload.ToneAlignment,
		payload.LayoutQuality,
		payload.BrandRecognition,
	}
	var sum float64
	var present int
	for _, d := range dims {
		if d != nil {
			sum += *d
			present++
		}
	}

	score := NeutralScore
	switch {
	case payload.Score != nil:
		score = roundScore(*payload.Score)
	case payload.OverallScore != nil:
		score = roundScore(*payload.OverallScore)
	case present > 0:
		score = roundScore(sum / float64(present))
	}

	breakdown := &domain.ConsistencyScore{
		OverallScore:         domain.ClampScore(score),
		ColorAdherence:       subScore(payload.ColorAdherence),
		TypographyCompliance: subScore(payload.TypographyCompliance),
		ToneAlignment:        subScore(payload.ToneAlignment),
		LayoutQuality:        subScore(payload.LayoutQuality),
		BrandRecognition:     subScore(payload.BrandRecognition),
		Explanation:          genai.Coalesce(payload.Explanation, payload.Critique),
		Strengths:            cleanList(payload.Strengths),
		Improvements:         cleanList(payload.Improvements),
	}

	guidance := ""
	if payload.RegenerationGuidance != nil {
		guidance = strings.TrimSpace(*payload.RegenerationGuidance)
	}
	critique := genai.Coalesce(payload.Critique, payload.Explanation)
	return domain.NewValidationResult(score, threshold, cleanList(payload.Issues), critique, guidance, breakdown), nil
}

func subScore(v *float64) int {
	if v == nil {
		return NeutralScore
	}
	return domain.ClampScore(roundScore(*v))
}

// roundScore clamps before converting; out-of-range floats do not survive int().
func roundScore(v float64) int {
	if math.IsNaN(v) {
		return NeutralScore
	}
	return int(math.Round(math.Max(0, math.Min(100, v))))
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
