package correction

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"brandforge/internal/domain"
	"brandforge/internal/providers/image"
	"brandforge/internal/providers/validator"
)

type recordingGenerator struct {
	mu       sync.Mutex
	requests []image.GenerateRequest
	fail     func(attempt int) error
}

func (g *recordingGenerator) Generate(ctx context.Context, req image.GenerateRequest) (*domain.Image, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	attempt := len(g.requests)
	g.mu.Unlock()
	if g.fail != nil {
		if err := g.fail(attempt); err != nil {
			return nil, err
		}
	}
	return &domain.Image{Data: []byte{byte(attempt)}, MIMEType: "image/png", Width: req.Width, Height: req.Height}, nil
}

func scripted(results ...domain.ValidationResult) (validator.Validator, *int) {
	calls := 0
	return validator.ValidatorFunc(func(ctx context.Context, req validator.Request) (domain.ValidationResult, error) {
		calls++
		if calls <= len(results) {
			return results[calls-1], nil
		}
		return results[len(results)-1], nil
	}), &calls
}

func score(v int, critique string) domain.ValidationResult {
	return domain.ValidationResult{Score: v, Critique: critique, Issues: []string{}}
}

func acmeInput() Input {
	return Input{
		Guidelines: domain.BrandGuidelines{
			BrandName:      "Acme",
			PrimaryColor:   "#112233",
			SecondaryColor: "#445566",
			PrimaryFont:    "Inter",
			BrandTone:      "Confident",
			TargetAudience: "Developers",
			Industry:       "Software",
		},
		Spec: domain.AssetSpec{
			Type:        domain.AssetTypeLogo,
			Name:        "logo_primary",
			Description: "Primary logo",
			Variant:     "primary",
			Width:       1024,
			Height:      1024,
		},
		Analysis: "Acme is confident.",
	}
}

func newLoop(t *testing.T, gen image.Generator, val validator.Validator) *Loop {
	t.Helper()
	loop, err := New(Options{Generator: gen, Validator: val})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return loop
}

func countFinal(asset domain.GeneratedAsset) int {
	n := 0
	for _, it := range asset.IterationHistory {
		if it.Status == domain.IterationFinal {
			n++
		}
	}
	return n
}

func TestLoopPassesFirstAttempt(t *testing.T) {
	gen := &recordingGenerator{}
	val, _ := scripted(score(85, "great"))
	asset, err := newLoop(t, gen, val).Run(context.Background(), acmeInput())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if asset.IterationCount != 1 || len(asset.IterationHistory) != 1 {
		t.Fatalf("IterationCount = %d, history = %d, want 1/1", asset.IterationCount, len(asset.IterationHistory))
	}
	if asset.SelfCorrected {
		t.Fatal("SelfCorrected = true, want false")
	}
	if asset.IterationHistory[0].Status != domain.IterationFinal {
		t.Fatalf("status = %q, want final", asset.IterationHistory[0].Status)
	}
	if asset.Image == nil || asset.ConsistencyScore == nil || asset.ConsistencyScore.OverallScore != 85 {
		t.Fatalf("unexpected final selection %#v", asset)
	}
}

func TestLoopCorrectsAfterCritique(t *testing.T) {
	gen := &recordingGenerator{}
	first := score(40, "color mismatch")
	first.Issues = []string{"primary color absent"}
	first.RegenerationGuidance = "use #112233"
	val, _ := scripted(first, score(90, "fixed"))

	asset, err := newLoop(t, gen, val).Run(context.Background(), acmeInput())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if asset.IterationCount != 2 || !asset.SelfCorrected {
		t.Fatalf("IterationCount/SelfCorrected = %d/%t, want 2/true", asset.IterationCount, asset.SelfCorrected)
	}
	it1, it2 := asset.IterationHistory[0], asset.IterationHistory[1]
	if it1.Status != domain.IterationFailed || it1.Validation.Critique != "color mismatch" {
		t.Fatalf("iteration 1 = %q/%q, want failed/color mismatch", it1.Status, it1.Validation.Critique)
	}
	if it2.Status != domain.IterationFinal {
		t.Fatalf("iteration 2 status = %q, want final", it2.Status)
	}
	if len(gen.requests) != 2 {
		t.Fatalf("generator calls = %d, want 2", len(gen.requests))
	}
	second := gen.requests[1]
	if second.Prompt == gen.requests[0].Prompt {
		t.Fatal("regeneration prompt must differ from the first prompt")
	}
	for _, want := range []string{"color mismatch", "primary color absent", "use #112233"} {
		if !strings.Contains(second.Prompt, want) {
			t.Fatalf("regeneration prompt missing %q", want)
		}
	}
	if second.Reference == nil || second.Reference.Data[0] != 1 {
		t.Fatal("regeneration should reference the previous image")
	}
}

func TestLoopKeepsBestEffortWhenExhausted(t *testing.T) {
	gen := &recordingGenerator{}
	val, _ := scripted(score(50, "meh"))
	asset, err := newLoop(t, gen, val).Run(context.Background(), acmeInput())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if asset.IterationCount != 3 {
		t.Fatalf("IterationCount = %d, want 3", asset.IterationCount)
	}
	if !asset.SelfCorrected {
		t.Fatal("SelfCorrected = false, want true")
	}
	for i, it := range asset.IterationHistory {
		if it.Status == domain.IterationPassed {
			t.Fatalf("iteration %d has status passed", i+1)
		}
	}
	if last := asset.IterationHistory[2]; last.Status != domain.IterationFinal {
		t.Fatalf("last status = %q, want final", last.Status)
	}
	if countFinal(asset) != 1 {
		t.Fatalf("final iterations = %d, want 1", countFinal(asset))
	}
	if asset.Image == nil || asset.Image.Data[0] != 3 {
		t.Fatal("expected the last image to be kept")
	}
}

func TestLoopNeverExceedsAttemptBudget(t *testing.T) {
	for _, attempts := range []int{1, 2, 3, 5} {
		gen := &recordingGenerator{}
		val, calls := scripted(score(0, "wrong"))
		loop, err := New(Options{Generator: gen, Validator: val, MaxAttempts: attempts})
		if err != nil {
			t.Fatalf("New returned error: %v", err)
		}
		if loop.MaxAttempts() != attempts {
			t.Fatalf("MaxAttempts() = %d, want %d", loop.MaxAttempts(), attempts)
		}
		asset, err := loop.Run(context.Background(), acmeInput())
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if len(gen.requests) != attempts || *calls != attempts || asset.IterationCount != attempts {
			t.Fatalf("attempts=%d: generator=%d validator=%d iterations=%d", attempts, len(gen.requests), *calls, asset.IterationCount)
		}
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	val, _ := scripted(score(90, ""))
	loop, err := New(Options{Generator: &recordingGenerator{}, Validator: val})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if loop.Threshold() != domain.DefaultPassThreshold || loop.MaxAttempts() != domain.DefaultMaxAttempts {
		t.Fatalf("Threshold() = %d, MaxAttempts() = %d, want defaults", loop.Threshold(), loop.MaxAttempts())
	}
	loop, err = New(Options{Generator: &recordingGenerator{}, Validator: val, PassThreshold: 1})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if loop.Threshold() != 1 {
		t.Fatalf("Threshold() = %d, want 1", loop.Threshold())
	}
}

func TestLoopRetriesGenerationFailureWithSamePrompt(t *testing.T) {
	gen := &recordingGenerator{fail: func(attempt int) error {
		if attempt == 1 {
			return errors.New("backend overloaded")
		}
		return nil
	}}
	val, calls := scripted(score(80, "ok"))
	asset, err := newLoop(t, gen, val).Run(context.Background(), acmeInput())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if *calls != 1 {
		t.Fatalf("validator calls = %d, want 1", *calls)
	}
	first := asset.IterationHistory[0]
	if first.Image != nil || first.Status != domain.IterationFailed {
		t.Fatalf("first iteration = %#v, want failed without image", first)
	}
	if !strings.Contains(first.Validation.Issues[0], "backend overloaded") {
		t.Fatalf("issues = %#v", first.Validation.Issues)
	}
	if gen.requests[0].Prompt != gen.requests[1].Prompt {
		t.Fatal("generation retry should reuse the same prompt")
	}
	if asset.IterationHistory[1].Status != domain.IterationFinal {
		t.Fatal("second iteration should be final")
	}
}

func TestLoopHardFailureWithoutImage(t *testing.T) {
	gen := &recordingGenerator{fail: func(int) error { return errors.New("down") }}
	val, calls := scripted(score(90, "never"))
	asset, err := newLoop(t, gen, val).Run(context.Background(), acmeInput())
	if !errors.Is(err, domain.ErrAssetExhausted) {
		t.Fatalf("err = %v, want ErrAssetExhausted", err)
	}
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("err = %v, want wrapped ErrGeneration", err)
	}
	if *calls != 0 {
		t.Fatalf("validator calls = %d, want 0", *calls)
	}
	if asset.Image != nil || countFinal(asset) != 0 {
		t.Fatal("asset without any image must have no final iteration")
	}
	if asset.IterationCount != 3 || asset.IterationCount != len(asset.IterationHistory) {
		t.Fatalf("IterationCount = %d, history = %d", asset.IterationCount, len(asset.IterationHistory))
	}
}

func TestLoopValidationErrorIsNotAPass(t *testing.T) {
	gen := &recordingGenerator{}
	calls := 0
	val := validator.ValidatorFunc(func(ctx context.Context, req validator.Request) (domain.ValidationResult, error) {
		calls++
		if calls == 1 {
			return domain.ValidationResult{}, errors.New("scoring backend down")
		}
		return score(75, "fine"), nil
	})
	asset, err := newLoop(t, gen, val).Run(context.Background(), acmeInput())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	first := asset.IterationHistory[0]
	if first.Validation.Passed || first.Status != domain.IterationFailed {
		t.Fatal("validation error must not count as a pass")
	}
	if len(first.Validation.Issues) != 1 || first.Validation.Issues[0] != validationUnavailableIssue {
		t.Fatalf("issues = %#v, want validation unavailable", first.Validation.Issues)
	}
	if !strings.Contains(first.Validation.Critique, "scoring backend down") {
		t.Fatalf("critique = %q", first.Validation.Critique)
	}
	if gen.requests[1].Prompt != gen.requests[0].Prompt || gen.requests[1].Reference != nil {
		t.Fatal("attempt after a validation error should restart from the base prompt")
	}
	if asset.IterationCount != 2 || asset.IterationHistory[1].Status != domain.IterationFinal {
		t.Fatalf("unexpected history %#v", asset.IterationHistory)
	}
}

func TestLoopExhaustedKeepsLatestImageWhenLastGenerationFails(t *testing.T) {
	gen := &recordingGenerator{fail: func(attempt int) error {
		if attempt == 3 {
			return errors.New("flaky")
		}
		return nil
	}}
	val, _ := scripted(score(30, "weak"))
	asset, err := newLoop(t, gen, val).Run(context.Background(), acmeInput())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if asset.IterationHistory[1].Status != domain.IterationFinal {
		t.Fatalf("iteration 2 should be final, got %q", asset.IterationHistory[1].Status)
	}
	if countFinal(asset) != 1 {
		t.Fatalf("final iterations = %d, want 1", countFinal(asset))
	}
}

func TestLoopStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &recordingGenerator{}
	val := validator.ValidatorFunc(func(context.Context, validator.Request) (domain.ValidationResult, error) {
		cancel()
		return score(10, "bad"), nil
	})
	_, err := newLoop(t, gen, val).Run(ctx, acmeInput())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(gen.requests) != 1 {
		t.Fatalf("generator calls = %d, want 1", len(gen.requests))
	}
}

func TestLoopAppliesCustomThreshold(t *testing.T) {
	gen := &recordingGenerator{}
	val, _ := scripted(score(85, "good"), score(95, "great"))
	loop, err := New(Options{Generator: gen, Validator: val, PassThreshold: 90})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	asset, err := loop.Run(context.Background(), acmeInput())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if asset.IterationCount != 2 {
		t.Fatalf("IterationCount = %d, want 2", asset.IterationCount)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error without generator")
	}
	if _, err := New(Options{Generator: &recordingGenerator{}}); err == nil {
		t.Fatal("expected error without validator")
	}
}
