package batch

import (
	"reflect"
	"strings"
	"testing"

	"brandforge/internal/domain"
)

func scoredAsset(name string, overall int) domain.GeneratedAsset {
	return domain.GeneratedAsset{
		Name: name,
		ConsistencyScore: &domain.ConsistencyScore{
			OverallScore:         overall,
			ColorAdherence:       overall,
			TypographyCompliance: overall - 1,
			ToneAlignment:        overall,
			LayoutQuality:        overall,
			BrandRecognition:     overall,
		},
	}
}

func TestAggregateFlooredMean(t *testing.T) {
	assets := []domain.GeneratedAsset{
		scoredAsset("a", 90),
		scoredAsset("b", 81),
		{Name: "unscored"},
	}
	got := Aggregate(assets, 70)
	if got == nil {
		t.Fatal("Aggregate returned nil")
	}
	if got.OverallScore != 85 {
		t.Fatalf("OverallScore = %d, want 85", got.OverallScore)
	}
	if got.TypographyCompliance != 84 {
		t.Fatalf("TypographyCompliance = %d, want 84", got.TypographyCompliance)
	}
	if got.ScoredAssets != 2 {
		t.Fatalf("ScoredAssets = %d, want 2", got.ScoredAssets)
	}
	if !strings.HasPrefix(got.Summary, "Excellent brand consistency across 2 assets") {
		t.Fatalf("Summary = %q", got.Summary)
	}
}

func TestAggregateListsAreDeterministic(t *testing.T) {
	assets := []domain.GeneratedAsset{
		scoredAsset("mid", 75),
		scoredAsset("top1", 95),
		scoredAsset("low1", 40),
		scoredAsset("top2", 88),
		scoredAsset("low2", 65),
		scoredAsset("top3", 95),
		scoredAsset("top4", 86),
		scoredAsset("low3", 50),
		scoredAsset("low4", 60),
	}
	got := Aggregate(assets, 70)
	if want := []string{"top1", "top3", "top2"}; !reflect.DeepEqual(got.TopPerformers, want) {
		t.Fatalf("TopPerformers = %v, want %v", got.TopPerformers, want)
	}
	if want := []string{"low1", "low3", "low4"}; !reflect.DeepEqual(got.NeedsAttention, want) {
		t.Fatalf("NeedsAttention = %v, want %v", got.NeedsAttention, want)
	}
	again := Aggregate(assets, 70)
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("Aggregate is not deterministic: %+v vs %+v", got, again)
	}
}

func TestAggregateSummaryBands(t *testing.T) {
	cases := []struct {
		score  int
		prefix string
	}{
		{85, "Excellent"},
		{75, "Good"},
		{65, "Moderate"},
		{64, "Brand consistency needs improvement"},
	}
	for _, tc := range cases {
		got := Aggregate([]domain.GeneratedAsset{scoredAsset("x", tc.score)}, 70)
		if !strings.HasPrefix(got.Summary, tc.prefix) {
			t.Fatalf("Summary(%d) = %q, want prefix %q", tc.score, got.Summary, tc.prefix)
		}
	}
}

func TestAggregateNothingScored(t *testing.T) {
	if got := Aggregate([]domain.GeneratedAsset{{Name: "x"}}, 70); got != nil {
		t.Fatalf("Aggregate = %+v, want nil", got)
	}
}
