package scoring

import (
	"fmt"
	"sort"

	"github.com/jonathan/interview-coach/internal/types"
)

// WeakThreshold is the score below which a dimension needs practice.
const WeakThreshold = 50.0

// Dimension is one labelled score.
type Dimension struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Dimensions lists all eight dimensions in fixed order: the code dimensions first,
// then the conversation dimensions.
func Dimensions(code types.CodeScores, conv types.ConversationScores) []Dimension {
	return []Dimension{
		{Key: KeyCorrectness, Label: "Correctness", Score: code.Correctness},
		{Key: KeyEfficiency, Label: "Efficiency", Score: code.Efficiency},
		{Key: KeyRobustness, Label: "Robustness", Score: code.Robustness},
		{Key: KeyStyle, Label: "Style", Score: code.Style},
		{Key: KeyUnderstanding, Label: "Understanding", Score: conv.Understanding},
		{Key: KeyAwareness, Label: "Awareness", Score: conv.Awareness},
		{Key: KeyDefense, Label: "Defense", Score: conv.Defense},
		{Key: KeyClarity, Label: "Clarity", Score: conv.Clarity},
	}
}

// ComposeFeedback names the strongest and weakest dimensions. Ties go to the
// dimension listed first.
func ComposeFeedback(code types.CodeScores, conv types.ConversationScores) types.Summary {
	dims := Dimensions(code, conv)
	best, worst := dims[0], dims[0]
	for _, d := range dims[1:] {
		if d.Score > best.Score {
			best = d
		}
		if d.Score < worst.Score {
			worst = d
		}
	}

	return types.Summary{
		Strength:    fmt.Sprintf("Strongest area: %s (%.1f).", best.Label, best.Score),
		Opportunity: fmt.Sprintf("Biggest opportunity: %s (%.1f).", worst.Label, worst.Score),
	}
}

// WeakDimensions returns the dimensions scoring below threshold, lowest first, ties
// in fixed order. A limit <= 0 returns all of them.
func WeakDimensions(code types.CodeScores, conv types.ConversationScores, threshold float64, limit int) []Dimension {
	var weak []Dimension
	for _, d := range Dimensions(code, conv) {
		if d.Score < threshold {
			weak = append(weak, d)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool { return weak[i].Score < weak[j].Score })

	if limit > 0 && len(weak) > limit {
		weak = weak[:limit]
	}
	return weak
}
