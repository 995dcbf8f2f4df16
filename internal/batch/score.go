package batch

import (
	"fmt"
	"sort"

	"brandforge/internal/domain"
)

const (
	topPerformerScore = 85
	maxListed         = 3
)

// Aggregate computes the batch score over assets that carry a consistency
// score. Dimension means are floored. Nil is returned when nothing was
// scored.
func Aggregate(assets []domain.GeneratedAsset, threshold int) *domain.BatchConsistencyScore {
	type scored struct {
		name  string
		score domain.ConsistencyScore
	}
	var list []scored
	for _, a := range assets {
		if a.ConsistencyScore != nil {
			list = append(list, scored{name: a.Name, score: *a.ConsistencyScore})
		}
	}
	n := len(list)
	if n == 0 {
		return nil
	}

	var sum domain.ConsistencyScore
	for _, s := range list {
		sum.OverallScore += s.score.OverallScore
		sum.ColorAdherence += s.score.ColorAdherence
		sum.TypographyCompliance += s.score.TypographyCompliance
		sum.ToneAlignment += s.score.ToneAlignment
		sum.LayoutQuality += s.score.LayoutQuality
		sum.BrandRecognition += s.score.BrandRecognition
	}
	out := &domain.BatchConsistencyScore{
		OverallScore:         sum.OverallScore / n,
		ColorAdherence:       sum.ColorAdherence / n,
		TypographyCompliance: sum.TypographyCompliance / n,
		ToneAlignment:        sum.ToneAlignment / n,
		LayoutQuality:        sum.LayoutQuality / n,
		BrandRecognition:     sum.BrandRecognition / n,
		TopPerformers:        []string{},
		NeedsAttention:       []string{},
		ScoredAssets:         n,
	}
	out.Summary = summarize(out.OverallScore, n)

	byScore := make([]scored, n)
	copy(byScore, list)
	sort.SliceStable(byScore, func(i, j int) bool {
		return byScore[i].score.OverallScore > byScore[j].score.OverallScore
	})
	for _, s := range byScore {
		if len(out.TopPerformers) == maxListed || s.score.OverallScore < topPerformerScore {
			break
		}
		out.TopPerformers = append(out.TopPerformers, s.name)
	}
	sort.SliceStable(byScore, func(i, j int) bool {
		return byScore[i].score.OverallScore < byScore[j].score.OverallScore
	})
	for _, s := range byScore {
		if len(out.NeedsAttention) == maxListed || s.score.OverallScore >= threshold {
			break
		}
		out.NeedsAttention = append(out.NeedsAttention, s.name)
	}
	return out
}

func summarize(overall, n int) string {
	switch {
	case overall >= 85:
		return fmt.Sprintf("Excellent brand consistency across %d assets. The visual identity is strong and cohesive.", n)
	case overall >= 75:
		return fmt.Sprintf("Good brand consistency across %d assets. Minor refinements could enhance cohesion.", n)
	case overall >= 65:
		return fmt.Sprintf("Moderate brand consistency across %d assets. Some assets may benefit from revision.", n)
	default:
		return fmt.Sprintf("Brand consistency needs improvement across %d assets. Review recommended.", n)
	}
}
