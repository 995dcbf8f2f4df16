package domain

import "time"

// DefaultPassThreshold is the minimum validation score that counts as a pass.
const DefaultPassThreshold = 70

// DefaultMaxAttempts bounds the self-correction loop.
const DefaultMaxAttempts = 3

// Image is an encoded image returned by the generation backend.
type Image struct {
	Data     []byte `json:"data,omitempty"`
	MIMEType string `json:"mime_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// ConsistencyScore is the five-dimension brand adherence breakdown.
type ConsistencyScore struct {
	OverallScore         int      `json:"overall_score"`
	ColorAdherence       int      `json:"color_adherence"`
	TypographyCompliance int      `json:"typography_compliance"`
	ToneAlignment        int      `json:"tone_alignment"`
	LayoutQuality        int      `json:"layout_quality"`
	BrandRecognition     int      `json:"brand_recognition"`
	Explanation          string   `json:"explanation,omitempty"`
	Strengths            []string `json:"strengths,omitempty"`
	Improvements         []string `json:"improvements,omitempty"`
}

// ValidationResult is produced fresh by every validator call.
type ValidationResult struct {
	Score                int               `json:"score"`
	Passed               bool              `json:"passed"`
	Issues               []string          `json:"issues"`
	Critique             string            `json:"critique"`
	RegenerationGuidance string            `json:"regeneration_guidance,omitempty"`
	Breakdown            *ConsistencyScore `json:"breakdown,omitempty"`
	// Unavailable is set when the validator could not score the image.
	Unavailable bool `json:"unavailable,omitempty"`
}

// ClampScore bounds a score to [0,100].
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// NewValidationResult derives Passed from the score and the threshold.
func NewValidationResult(score, threshold int, issues []string, critique, guidance string, breakdown *ConsistencyScore) ValidationResult {
	score = ClampScore(score)
	if issues == nil {
		issues = []string{}
	}
	return ValidationResult{
		Score:                score,
		Passed:               score >= threshold,
		Issues:               issues,
		Critique:             critique,
		RegenerationGuidance: guidance,
		Breakdown:            breakdown,
	}
}

// IterationStatus tags one attempt of the self-correction loop.
type IterationStatus string

const (
	IterationFailed IterationStatus = "failed"
	IterationPassed IterationStatus = "passed"
	IterationFinal  IterationStatus = "final"
)

// AssetIteration records one attempt. Image is nil when generation failed.
type AssetIteration struct {
	Number     int              `json:"iteration_number"`
	Image      *Image           `json:"image,omitempty"`
	Prompt     string           `json:"prompt"`
	Validation ValidationResult `json:"validation"`
	Status     IterationStatus  `json:"status"`
}

// GeneratedAsset is the finalized record for one logical asset.
type GeneratedAsset struct {
	Type             AssetType         `json:"asset_type"`
	Name             string            `json:"asset_name"`
	Image            *Image            `json:"image"`
	Description      string            `json:"description,omitempty"`
	ConsistencyScore *ConsistencyScore `json:"consistency_score,omitempty"`
	IterationCount   int               `json:"iteration_count"`
	IterationHistory []AssetIteration  `json:"iteration_history"`
	SelfCorrected    bool              `json:"self_corrected"`
}

// FinalIteration returns the iteration marked final, if any.
func (a GeneratedAsset) FinalIteration() (AssetIteration, bool) {
	for _, it := range a.IterationHistory {
		if it.Status == IterationFinal {
			return it, true
		}
	}
	return AssetIteration{}, false
}

// BatchConsistencyScore aggregates per-asset scores across a package.
type BatchConsistencyScore struct {
	OverallScore         int      `json:"overall_score"`
	ColorAdherence       int      `json:"color_adherence"`
	TypographyCompliance int      `json:"typography_compliance"`
	ToneAlignment        int      `json:"tone_alignment"`
	LayoutQuality        int      `json:"layout_quality"`
	BrandRecognition     int      `json:"brand_recognition"`
	Summary              string   `json:"summary"`
	TopPerformers        []string `json:"top_performers"`
	NeedsAttention       []string `json:"needs_attention"`
	ScoredAssets         int      `json:"scored_assets"`
}

// CampaignContext ties the generated assets together under one campaign.
type CampaignContext struct {
	CampaignName        string   `json:"campaign_name"`
	CampaignGoal        string   `json:"campaign_goal"`
	CampaignMessage     string   `json:"campaign_message"`
	UnifiedTheme        string   `json:"unified_theme"`
	DeploymentChecklist []string `json:"deployment_checklist"`
}

// AssetFailure names an asset dropped because no attempt produced an image.
type AssetFailure struct {
	Type     AssetType `json:"asset_type"`
	Name     string    `json:"asset_name"`
	Attempts int       `json:"attempts"`
	Reason   string    `json:"reason"`
}

// AssetPackage is the terminal artifact of one orchestration run.
type AssetPackage struct {
	ID              string                 `json:"id"`
	BrandName       string                 `json:"brand_name"`
	Assets          []GeneratedAsset       `json:"assets"`
	BrandAnalysis   string                 `json:"brand_analysis"`
	GenerationNotes string                 `json:"generation_notes,omitempty"`
	BatchScore      *BatchConsistencyScore `json:"batch_score,omitempty"`
	Campaign        *CampaignContext       `json:"campaign,omitempty"`
	Failures        []AssetFailure         `json:"failures,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}
