// Package scoring turns collaborator output into dimension scores, an overall score
// and narrative feedback. Everything in this package is pure and deterministic.
package scoring

import (
	"fmt"
	"math"

	"github.com/jonathan/interview-coach/internal/bigo"
	"github.com/jonathan/interview-coach/internal/types"
)

// Efficiency weights.
const (
	timeWeight             = 0.7
	spaceWeight            = 0.3
	claimAlignmentWeight   = 0.5
	optimalAlignmentWeight = 0.5
)

// EfficiencyComponents compares claimed vs actual and actual vs optimal complexity
// for both time and space. Each similarity is scaled to [0,100] and rounded to one
// decimal. Every comparison short of a perfect match adds a feedback line; empty
// values are shown as N/A.
func EfficiencyComponents(claimTime, claimSpace, actualTime, actualSpace, optimalTime, optimalSpace string) (types.EfficiencyBreakdown, []string) {
	var fb []string

	cvaT := bigo.Similarity(claimTime, actualTime) * 100.0
	cvaS := bigo.Similarity(claimSpace, actualSpace) * 100.0
	if cvaT < 100 {
		fb = append(fb, fmt.Sprintf("Claim vs actual (time) differs: claimed %s vs actual %s.", orNA(claimTime), orNA(actualTime)))
	}
	if cvaS < 100 {
		fb = append(fb, fmt.Sprintf("Claim vs actual (space) differs: claimed %s vs actual %s.", orNA(claimSpace), orNA(actualSpace)))
	}

	avoT := bigo.Similarity(actualTime, optimalTime) * 100.0
	avoS := bigo.Similarity(actualSpace, optimalSpace) * 100.0
	if avoT < 100 {
		fb = append(fb, fmt.Sprintf("Actual vs optimal (time) gap: actual %s vs optimal %s.", orNA(actualTime), orNA(optimalTime)))
	}
	if avoS < 100 {
		fb = append(fb, fmt.Sprintf("Actual vs optimal (space) gap: actual %s vs optimal %s.", orNA(actualSpace), orNA(optimalSpace)))
	}

	return types.EfficiencyBreakdown{
		ClaimVsActual:   types.SimilarityPair{Time: round1(cvaT), Space: round1(cvaS)},
		ActualVsOptimal: types.SimilarityPair{Time: round1(avoT), Space: round1(avoS)},
	}, fb
}

// efficiencyScore folds a breakdown into a single score: time counts 70% and space
// 30% within each alignment, and the two alignments count equally.
func efficiencyScore(b types.EfficiencyBreakdown) float64 {
	claimAlignment := timeWeight*b.ClaimVsActual.Time + spaceWeight*b.ClaimVsActual.Space
	optimalAlignment := timeWeight*b.ActualVsOptimal.Time + spaceWeight*b.ActualVsOptimal.Space
	return round1(claimAlignmentWeight*claimAlignment + optimalAlignmentWeight*optimalAlignment)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// clamp bounds a dimension score to [0,100]. NaN becomes 0.
func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
