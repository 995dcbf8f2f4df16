// Package correction runs the generate, validate, regenerate loop for a single
// asset.
package correction

import (
	"context"
	"errors"
	"fmt"

	"brandforge/internal/domain"
	"brandforge/internal/infra"
	"brandforge/internal/prompts"
	"brandforge/internal/providers/image"
	"brandforge/internal/providers/validator"
)

const validationUnavailableIssue = "validation unavailable"

// Options configures a Loop. Zero values fall back to the package defaults.
type Options struct {
	Generator     image.Generator
	Validator     validator.Validator
	PassThreshold int
	MaxAttempts   int
	Logger        *infra.Logger
}

// Loop is safe for concurrent use; each Run keeps its state on the stack.
type Loop struct {
	generator   image.Generator
	validator   validator.Validator
	threshold   int
	maxAttempts int
	logger      *infra.Logger
}

func New(opts Options) (*Loop, error) {
	if opts.Generator == nil {
		return nil, errors.New("correction: generator is required")
	}
	if opts.Validator == nil {
		return nil, errors.New("correction: validator is required")
	}
	threshold := opts.PassThreshold
	if threshold <= 0 || threshold > 100 {
		threshold = domain.DefaultPassThreshold
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = domain.DefaultMaxAttempts
	}
	return &Loop{
		generator:   opts.Generator,
		validator:   opts.Validator,
		threshold:   threshold,
		maxAttempts: attempts,
		logger:      infra.OrNop(opts.Logger),
	}, nil
}

// Threshold returns the effective pass threshold.
func (l *Loop) Threshold() int { return l.threshold }

// MaxAttempts returns the effective attempt budget.
func (l *Loop) MaxAttempts() int { return l.maxAttempts }

// Input is one asset to produce.
type Input struct {
	Guidelines domain.BrandGuidelines
	Spec       domain.AssetSpec
	Analysis   string
	RequestID  string
}

// Run drives the state machine for one asset. The returned asset always
// carries the full iteration history. The error is non-nil only when the
// context ends or when no attempt produced an image (wrapping
// domain.ErrAssetExhausted); an asset that exhausts attempts with an image is
// kept with its latest image marked final.
func (l *Loop) Run(ctx context.Context, in Input) (domain.GeneratedAsset, error) {
	spec := in.Spec
	asset := domain.GeneratedAsset{
		Type:        spec.Type,
		Name:        spec.Name,
		Description: spec.Description,
	}
	palette := palette(in.Guidelines)
	log := l.logger.With().Str("asset", spec.Name).Str("request_id", in.RequestID).Logger()

	var (
		history        []domain.AssetIteration
		correction     *prompts.Correction
		reference      *domain.Image
		previousIssues []string
		lastErr        error
	)

	finish := func() domain.GeneratedAsset {
		asset.IterationHistory = history
		asset.IterationCount = len(history)
		asset.SelfCorrected = len(history) > 1
		return asset
	}

	for n := 1; n <= l.maxAttempts; n++ {
		if err := ctx.Err(); err != nil {
			return finish(), err
		}

		prompt := prompts.Generation(in.Guidelines, spec, in.Analysis, correction)
		log.Debug().Int("attempt", n).Bool("corrected", correction != nil).Msg("correction: generating")

		img, err := l.generator.Generate(ctx, image.GenerateRequest{
			Prompt:    prompt,
			Reference: reference,
			Width:     spec.Width,
			Height:    spec.Height,
			Palette:   palette,
			RequestID: in.RequestID,
		})
		if err == nil && (img == nil || len(img.Data) == 0) {
			err = domain.ErrNoImage
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return finish(), ctxErr
			}
			lastErr = &domain.GenerationError{Attempt: n, Err: err}
			log.Warn().Err(err).Int("attempt", n).Msg("correction: generation failed")
			history = append(history, domain.AssetIteration{
				Number: n,
				Prompt: prompt,
				Validation: domain.ValidationResult{
					Issues:   []string{fmt.Sprintf("generation failed: %v", err)},
					Critique: "Asset generation failed.",
				},
				Status: domain.IterationFailed,
			})
			continue
		}

		result, err := l.validator.Validate(ctx, validator.Request{
			Image:          *img,
			Guidelines:     in.Guidelines,
			Spec:           spec,
			Threshold:      l.threshold,
			PreviousIssues: previousIssues,
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return finish(), ctxErr
			}
			lastErr = &domain.ValidationError{Attempt: n, Err: err}
			log.Warn().Err(err).Int("attempt", n).Msg("correction: validation unavailable")
			result = domain.ValidationResult{
				Issues:      []string{validationUnavailableIssue},
				Critique:    fmt.Sprintf("Could not be scored: %v", err),
				Unavailable: true,
			}
		} else {
			result.Passed = result.Score >= l.threshold
		}

		iteration := domain.AssetIteration{
			Number:     n,
			Image:      img,
			Prompt:     prompt,
			Validation: result,
			Status:     domain.IterationFailed,
		}
		log.Debug().Int("attempt", n).Int("score", result.Score).Bool("passed", result.Passed).Msg("correction: validated")

		if result.Passed {
			iteration.Status = domain.IterationFinal
			history = append(history, iteration)
			selectFinal(&asset, iteration)
			return finish(), nil
		}
		history = append(history, iteration)

		if result.Unavailable {
			// Nothing to learn from; the next attempt starts over.
			correction, reference, previousIssues = nil, nil, nil
			continue
		}
		correction = prompts.CorrectionFrom(result)
		reference = img
		previousIssues = append([]string(nil), result.Issues...)
		if result.RegenerationGuidance != "" {
			previousIssues = append(previousIssues, "Guidance: "+result.RegenerationGuidance)
		}
	}

	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Image != nil {
			history[i].Status = domain.IterationFinal
			selectFinal(&asset, history[i])
			log.Warn().Int("attempts", len(history)).Int("score", history[i].Validation.Score).Msg("correction: attempts exhausted, keeping best effort")
			return finish(), nil
		}
	}

	log.Warn().Err(lastErr).Int("attempts", len(history)).Msg("correction: no image produced")
	return finish(), fmt.Errorf("%w: %s after %d attempts: %w", domain.ErrAssetExhausted, spec.Name, len(history), lastErr)
}

func selectFinal(asset *domain.GeneratedAsset, it domain.AssetIteration) {
	asset.Image = it.Image
	asset.ConsistencyScore = consistencyFrom(it.Validation)
}

// consistencyFrom uses the validator's breakdown, or spreads the single score
// across every dimension when the validator gave none. Unscored iterations
// carry no consistency score.
func consistencyFrom(v domain.ValidationResult) *domain.ConsistencyScore {
	if v.Unavailable {
		return nil
	}
	if v.Breakdown != nil {
		cs := *v.Breakdown
		return &cs
	}
	return &domain.ConsistencyScore{
		OverallScore:         v.Score,
		ColorAdherence:       v.Score,
		TypographyCompliance: v.Score,
		ToneAlignment:        v.Score,
		LayoutQuality:        v.Score,
		BrandRecognition:     v.Score,
		Explanation:          v.Critique,
	}
}

func palette(g domain.BrandGuidelines) []string {
	out := []string{g.PrimaryColor, g.SecondaryColor}
	if g.AccentColor != "" {
		out = append(out, g.AccentColor)
	}
	return out
}
