package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/interview-coach/internal/types"
)

// Defaults and thresholds used by ScoreCode.
const (
	NeutralRobustness = 50.0
	NeutralStyle      = 50.0

	penaltyMinTests  = 3
	penaltyFailRatio = 0.34
	penaltyFactor    = 0.4
	penaltyMax       = 20.0
)

// CodeInput is everything ScoreCode needs. StyleRating is the linter's 0-10 rating,
// nil when no rating could be produced.
type CodeInput struct {
	Reviewer    types.ReviewerResult
	Optimal     types.OptimalComplexity
	Candidate   types.CandidateComplexity
	Claims      types.Claims
	StyleRating *float64
}

// EfficiencyClaim assembles the claimed, actual and optimal complexity. The actual
// complexity comes from the candidate inference, falling back per field to the
// reviewer's estimate.
func (in CodeInput) EfficiencyClaim() types.EfficiencyClaim {
	t, s := actualComplexity(in.Candidate, in.Reviewer)
	return types.EfficiencyClaim{
		Claimed: types.Complexity{Time: in.Claims.Time, Space: in.Claims.Space},
		Actual:  types.Complexity{Time: t, Space: s},
		Optimal: types.Complexity{Time: in.Optimal.Time, Space: in.Optimal.Space},
	}
}

// ScoreCode computes correctness, efficiency, robustness and style, each clamped to
// [0,100], and the feedback explaining any deductions.
func ScoreCode(in CodeInput) (types.CodeScores, []string) {
	var fb []string

	// Correctness
	tests := in.Reviewer.Tests
	compiled := in.Reviewer.Compiled()
	passed := 0
	var correctness float64
	if !compiled {
		correctness = 0
		fb = append(fb, "Code did not compile/run; correctness is 0.")
	} else {
		passed = in.Reviewer.PassedCount()
		correctness = 100.0
		// A run that compiled but reported no tests counts as fully correct.
		if len(tests) > 0 {
			correctness = round1(100.0 * float64(passed) / float64(len(tests)))
		}
		if passed < len(tests) {
			fb = append(fb, "Failed tests: "+strings.Join(failedTestNames(tests), ", "))
		}
	}

	// Efficiency
	claim := in.EfficiencyClaim()
	breakdown, effFb := EfficiencyComponents(
		claim.Claimed.Time, claim.Claimed.Space,
		claim.Actual.Time, claim.Actual.Space,
		claim.Optimal.Time, claim.Optimal.Space,
	)
	fb = append(fb, effFb...)
	efficiency := efficiencyScore(breakdown)

	// A complexity claim is less credible when the code fails many tests.
	if compiled && len(tests) >= penaltyMinTests {
		failRatio := 1.0 - float64(passed)/float64(len(tests))
		if failRatio >= penaltyFailRatio {
			drop := math.Min(penaltyMax, 100.0*failRatio*penaltyFactor)
			efficiency = math.Max(0, round1(efficiency-drop))
			fb = append(fb, fmt.Sprintf("Efficiency confidence reduced due to failed tests (-%.0f).", drop))
		}
	}

	// Robustness
	robustness, robFb := robustnessScore(in.Candidate, tests)
	fb = append(fb, robFb...)

	// Style
	style := NeutralStyle
	if in.StyleRating != nil {
		style = round1(*in.StyleRating * 10)
	}

	return types.CodeScores{
		Correctness:         clamp(correctness),
		Efficiency:          clamp(efficiency),
		Robustness:          clamp(robustness),
		Style:               clamp(style),
		EfficiencyBreakdown: breakdown,
	}, fb
}

// actualComplexity prefers the candidate inference and falls back to the reviewer's estimate.
func actualComplexity(candidate types.CandidateComplexity, reviewer types.ReviewerResult) (string, string) {
	t, s := candidate.Time, candidate.Space
	if reviewer.Complexity != nil {
		if t == "" {
			t = reviewer.Complexity.EstimatedTime
		}
		if s == "" {
			s = reviewer.Complexity.EstimatedSpace
		}
	}
	return t, s
}

// robustnessScore uses, in order: the inferred covered/missing edge cases, the pass
// ratio of tests named edge*, and finally a neutral score.
func robustnessScore(candidate types.CandidateComplexity, tests []types.TestResult) (float64, []string) {
	covered, missing := len(candidate.EdgeCovered), len(candidate.EdgeMissing)
	if covered+missing > 0 {
		var fb []string
		if missing > 0 {
			fb = append(fb, "Missing edge cases: "+strings.Join(candidate.EdgeMissing, ", "))
		}
		return round1(100.0 * float64(covered) / float64(covered+missing)), fb
	}

	var edgeTests []types.TestResult
	for _, t := range tests {
		if strings.HasPrefix(strings.ToLower(t.Name), "edge") {
			edgeTests = append(edgeTests, t)
		}
	}
	if len(edgeTests) == 0 {
		return NeutralRobustness, []string{"Unable to determine edge coverage; assuming neutral robustness."}
	}

	var failed []string
	for _, t := range edgeTests {
		if !t.Passed() {
			failed = append(failed, t.Name)
		}
	}
	score := round1(100.0 * float64(len(edgeTests)-len(failed)) / float64(len(edgeTests)))
	if len(failed) > 0 {
		return score, []string{"Edge test failures: " + strings.Join(failed, ", ")}
	}
	return score, nil
}

// failedTestNames lists failing tests in order; unnamed tests are shown as test_<index>.
func failedTestNames(tests []types.TestResult) []string {
	var names []string
	for i, t := range tests {
		if t.Passed() {
			continue
		}
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("test_%d", i)
		}
		names = append(names, name)
	}
	return names
}
