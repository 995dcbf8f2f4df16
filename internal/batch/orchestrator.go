// Package batch expands a selection into asset specs, runs the
// self-correction loop for each under a concurrency bound and assembles the
// resulting package.
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"brandforge/internal/campaign"
	"brandforge/internal/correction"
	"brandforge/internal/domain"
	"brandforge/internal/infra"
	"brandforge/internal/progress"
	"brandforge/internal/providers/image"
	"brandforge/internal/providers/narrative"
	"brandforge/internal/providers/validator"
)

// DefaultMaxConcurrent bounds in-flight asset loops when Options leaves it
// unset.
const DefaultMaxConcurrent = 4

// Options wires the orchestrator. PassThreshold, MaxAttempts and
// MaxConcurrent fall back to the package defaults when zero.
type Options struct {
	Generator     image.Generator
	Validator     validator.Validator
	Analyst       narrative.Analyst
	PassThreshold int
	MaxAttempts   int
	MaxConcurrent int
	Logger        *infra.Logger
}

type Orchestrator struct {
	loop          *correction.Loop
	analyst       narrative.Analyst
	campaign      *campaign.Synthesizer
	maxConcurrent int
	logger        *infra.Logger
	now           func() time.Time
}

func New(opts Options) (*Orchestrator, error) {
	if opts.Analyst == nil {
		return nil, errors.New("batch: analyst is required")
	}
	logger := infra.OrNop(opts.Logger)
	loop, err := correction.New(correction.Options{
		Generator:     opts.Generator,
		Validator:     opts.Validator,
		PassThreshold: opts.PassThreshold,
		MaxAttempts:   opts.MaxAttempts,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}
	limit := opts.MaxConcurrent
	if limit <= 0 {
		limit = DefaultMaxConcurrent
	}
	return &Orchestrator{
		loop:          loop,
		analyst:       opts.Analyst,
		campaign:      campaign.NewSynthesizer(opts.Analyst, logger),
		maxConcurrent: limit,
		logger:        logger,
		now:           time.Now,
	}, nil
}

// Request is one orchestration run.
type Request struct {
	Guidelines domain.BrandGuidelines
	Selection  domain.Selection
	// RequestID tags log lines and provider calls; generated when empty.
	RequestID string
}

type outcome struct {
	asset domain.GeneratedAsset
	err   error
}

// Prepare normalizes and validates the request and expands it into specs.
// Errors are *domain.FatalError.
func (o *Orchestrator) Prepare(req Request) (domain.BrandGuidelines, []domain.AssetSpec, error) {
	g := req.Guidelines.Normalize()
	if err := g.Validate(); err != nil {
		return g, nil, &domain.FatalError{Stage: "guidelines", Err: err}
	}
	sel := req.Selection.WithDefaults()
	if err := sel.Validate(); err != nil {
		return g, nil, &domain.FatalError{Stage: "selection", Err: err}
	}
	return g, Expand(g, sel), nil
}

// Analyze runs the brand analysis on its own.
func (o *Orchestrator) Analyze(ctx context.Context, g domain.BrandGuidelines) (string, error) {
	g = g.Normalize()
	if err := g.Validate(); err != nil {
		return "", &domain.FatalError{Stage: "guidelines", Err: err}
	}
	analysis, err := o.analyst.AnalyzeBrand(ctx, g)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &domain.FatalError{Stage: "brand analysis", Err: err}
	}
	return analysis, nil
}

// Run produces one package. Individual asset failures never abort the run;
// they are reported in Failures and GenerationNotes. Invalid input and an
// unavailable brand analysis return a *domain.FatalError before any asset
// work starts. A cancelled context returns the context error.
//
// Synchronous sinks are queued so workers never wait on the consumer; every
// event has been delivered by the time Run returns.
func (o *Orchestrator) Run(ctx context.Context, req Request, sink progress.Sink) (*domain.AssetPackage, error) {
	sink, drain := progress.NonBlocking(sink)
	defer drain()
	g, specs, err := o.Prepare(req)
	if err != nil {
		return nil, err
	}
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := o.logger.With().Str("request_id", requestID).Str("brand", g.BrandName).Logger()

	totals := make(map[domain.AssetType]int)
	for _, s := range specs {
		totals[s.Type]++
	}
	tracker := progress.NewTracker(sink, domain.AssetTypes, totals)

	started := o.now()
	log.Info().Int("assets", len(specs)).Int("max_concurrent", o.maxConcurrent).Int("max_attempts", o.loop.MaxAttempts()).Msg("batch: run started")

	tracker.Analyzing()
	analysis, err := o.analyst.AnalyzeBrand(ctx, g)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &domain.FatalError{Stage: "brand analysis", Err: err}
	}

	results := make([]outcome, len(specs))
	var eg errgroup.Group
	eg.SetLimit(o.maxConcurrent)
	for i, spec := range specs {
		eg.Go(func() error {
			tracker.AssetStarted(spec.Type)
			asset, err := o.loop.Run(ctx, correction.Input{
				Guidelines: g,
				Spec:       spec,
				Analysis:   analysis,
				RequestID:  requestID,
			})
			results[i] = outcome{asset: asset, err: err}
			tracker.AssetFinished(spec.Type, spec.Name)
			return nil
		})
	}
	_ = eg.Wait()
	if err := ctx.Err(); err != nil {
		log.Warn().Err(err).Msg("batch: run cancelled")
		return nil, err
	}

	assets := make([]domain.GeneratedAsset, 0, len(specs))
	var failures []domain.AssetFailure
	for i, res := range results {
		if res.err != nil || res.asset.Image == nil {
			reason := "no attempt produced an image"
			if res.err != nil {
				reason = res.err.Error()
			}
			failures = append(failures, domain.AssetFailure{
				Type:     specs[i].Type,
				Name:     specs[i].Name,
				Attempts: res.asset.IterationCount,
				Reason:   reason,
			})
			log.Warn().Str("asset", specs[i].Name).Str("reason", reason).Msg("batch: asset dropped")
			continue
		}
		assets = append(assets, res.asset)
	}

	tracker.Scoring()
	score := Aggregate(assets, o.loop.Threshold())

	var campaignCtx *domain.CampaignContext
	if g.HasCampaign() {
		tracker.Campaign()
		c := o.campaign.Synthesize(ctx, g, assets)
		campaignCtx = &c
	}

	tracker.Finalizing()
	pkg := &domain.AssetPackage{
		ID:              uuid.NewString(),
		BrandName:       g.BrandName,
		Assets:          assets,
		BrandAnalysis:   analysis,
		GenerationNotes: generationNotes(len(specs), assets, failures, o.loop.Threshold()),
		BatchScore:      score,
		Campaign:        campaignCtx,
		Failures:        failures,
		CreatedAt:       o.now().UTC(),
	}
	tracker.Complete()

	log.Info().
		Int("generated", len(assets)).
		Int("failed", len(failures)).
		Dur("elapsed", o.now().Sub(started)).
		Msg("batch: run finished")
	return pkg, nil
}

// Threshold returns the effective pass threshold.
func (o *Orchestrator) Threshold() int { return o.loop.Threshold() }

func generationNotes(requested int, assets []domain.GeneratedAsset, failures []domain.AssetFailure, threshold int) string {
	var notes []string
	notes = append(notes, fmt.Sprintf("Generated %d of %d assets.", len(assets), requested))

	corrected := 0
	var below []string
	for _, a := range assets {
		if a.SelfCorrected {
			corrected++
		}
		if a.ConsistencyScore == nil || a.ConsistencyScore.OverallScore < threshold {
			below = append(below, a.Name)
		}
	}
	if corrected > 0 {
		notes = append(notes, fmt.Sprintf("%d assets were self-corrected after validation feedback.", corrected))
	}
	if len(below) > 0 {
		notes = append(notes, fmt.Sprintf("%d assets did not reach the pass threshold of %d: %s.", len(below), threshold, strings.Join(below, ", ")))
	}
	if len(failures) > 0 {
		names := make([]string, len(failures))
		for i, f := range failures {
			names[i] = f.Name
		}
		notes = append(notes, fmt.Sprintf("%d of %d assets failed: %s.", len(failures), requested, strings.Join(names, ", ")))
	}
	return strings.Join(notes, " ")
}
