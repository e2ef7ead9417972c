package scoring

import (
	"errors"
	"fmt"

	"github.com/jonathan/interview-coach/internal/types"
)

// Dimension keys, in the fixed order used for aggregation and feedback.
const (
	KeyCorrectness   = "correctness"
	KeyEfficiency    = "efficiency"
	KeyRobustness    = "robustness"
	KeyStyle         = "style"
	KeyUnderstanding = "understanding"
	KeyAwareness     = "awareness"
	KeyDefense       = "defense"
	KeyClarity       = "clarity"
)

const weightSumTolerance = 1e-9

// Weights are the per-dimension weights of the overall score.
type Weights struct {
	Correctness   float64 `json:"correctness" yaml:"correctness"`
	Efficiency    float64 `json:"efficiency" yaml:"efficiency"`
	Robustness    float64 `json:"robustness" yaml:"robustness"`
	Style         float64 `json:"style" yaml:"style"`
	Understanding float64 `json:"understanding" yaml:"understanding"`
	Awareness     float64 `json:"awareness" yaml:"awareness"`
	Defense       float64 `json:"defense" yaml:"defense"`
	Clarity       float64 `json:"clarity" yaml:"clarity"`
}

// DefaultWeights gives code 70% of the overall score and conversation 30%.
var DefaultWeights = Weights{
	Correctness:   0.35,
	Efficiency:    0.20,
	Robustness:    0.10,
	Style:         0.05,
	Understanding: 0.10,
	Awareness:     0.10,
	Defense:       0.05,
	Clarity:       0.05,
}

type weightedKey struct {
	key    string
	weight float64
}

func (w Weights) entries() []weightedKey {
	return []weightedKey{
		{KeyCorrectness, w.Correctness},
		{KeyEfficiency, w.Efficiency},
		{KeyRobustness, w.Robustness},
		{KeyStyle, w.Style},
		{KeyUnderstanding, w.Understanding},
		{KeyAwareness, w.Awareness},
		{KeyDefense, w.Defense},
		{KeyClarity, w.Clarity},
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	sum := 0.0
	for _, e := range w.entries() {
		sum += e.weight
	}
	return sum
}

// IsZero reports whether no weight is set.
func (w Weights) IsZero() bool {
	return w == Weights{}
}

// Validate rejects negative weights and weights summing to more than 1.
func (w Weights) Validate() error {
	var errs []error
	for _, e := range w.entries() {
		if e.weight < 0 {
			errs = append(errs, fmt.Errorf("weight %s must not be negative (got %g)", e.key, e.weight))
		}
	}
	if sum := w.Sum(); sum > 1+weightSumTolerance {
		errs = append(errs, fmt.Errorf("weights must sum to at most 1 (got %g)", sum))
	}
	return errors.Join(errs...)
}

// Aggregate computes the weighted overall score, rounded to one decimal.
func Aggregate(code types.CodeScores, conv types.ConversationScores, w Weights) float64 {
	return AggregateDimensions(DimensionMap(code, conv), w)
}

// AggregateDimensions sums weight*score over the dimensions present in scores and
// rounds to one decimal. Absent dimensions contribute nothing.
func AggregateDimensions(scores map[string]float64, w Weights) float64 {
	overall := 0.0
	for _, e := range w.entries() {
		if v, ok := scores[e.key]; ok {
			overall += e.weight * v
		}
	}
	return round1(overall)
}

// DimensionMap flattens code and conversation scores into a key -> score map.
func DimensionMap(code types.CodeScores, conv types.ConversationScores) map[string]float64 {
	m := make(map[string]float64, 8)
	for _, d := range Dimensions(code, conv) {
		m[d.Key] = d.Score
	}
	return m
}
