//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// SimilarityPair holds time and space similarity scores in [0,100].
type SimilarityPair struct {
	Time  float64 `json:"time"`
	Space float64 `json:"space"`
}

// EfficiencyBreakdown is the four-way comparison behind the efficiency score.
type EfficiencyBreakdown struct {
	ClaimVsActual   SimilarityPair `json:"claim_vs_actual"`
	ActualVsOptimal SimilarityPair `json:"actual_vs_optimal"`
}

// CodeScores are the four code dimensions, each in [0,100].
type CodeScores struct {
	Correctness         float64             `json:"correctness"`
	Efficiency          float64             `json:"efficiency"`
	Robustness          float64             `json:"robustness"`
	Style               float64             `json:"style"`
	EfficiencyBreakdown EfficiencyBreakdown `json:"efficiency_breakdown"`
}

// Scores groups the overall score with the per-dimension scores.
type Scores struct {
	Overall      float64            `json:"overall"`
	Code         CodeScores         `json:"code_score"`
	Conversation ConversationScores `json:"conversation_score"`
}

// Summary is the strongest/weakest narrative pair.
type Summary struct {
	Strength    string `json:"strength"`
	Opportunity string `json:"opportunity"`
}

// Feedback collects the human-readable output of a judging run.
type Feedback struct {
	Code         []string            `json:"code"`
	Conversation []string            `json:"conversation"`
	Strength     string              `json:"strength"`
	Opportunity  string              `json:"opportunity"`
	NextStep     map[string][]string `json:"next_step"`
}

// JudgingResult is the complete, immutable outcome of judging one session.
type JudgingResult struct {
	ProblemSlug       string            `json:"problem_slug"`
	Scores            Scores            `json:"scores"`
	Feedback          Feedback          `json:"feedback"`
	ReviewerResult    ReviewerResult    `json:"reviewer_result"`
	OptimalComplexity OptimalComplexity `json:"optimal_complexity"`
	Transcript        []TranscriptTurn  `json:"transcript"`
	JudgedAt          time.Time         `json:"judged_at"`
	Degraded          []string          `json:"degraded,omitempty"`
}

// IsDegraded reports whether any step fell back to a default.
func (r *JudgingResult) IsDegraded() bool {
	return len(r.Degraded) > 0
}

// CodingReview is a persisted judging result.
type CodingReview struct {
	UserID    string         `json:"user_id"`
	SessionID string         `json:"session_id"`
	Result    *JudgingResult `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}
