package judge

import (
	"context"
	"errors"

	"github.com/jonathan/interview-coach/internal/scoring"
	"github.com/jonathan/interview-coach/internal/types"
)

// Collaborator names used in logs, steps and JudgingResult.Degraded.
const (
	CollaboratorComplexity   = "complexity"
	CollaboratorReviewer     = "reviewer"
	CollaboratorStyle        = "style"
	CollaboratorConversation = "conversation"
	CollaboratorPractice     = "practice"
	CollaboratorStore        = "store"
)

// ErrMalformedResponse marks a collaborator response that could not be parsed.
// The practice step treats it differently from an unavailable collaborator.
var ErrMalformedResponse = errors.New("malformed collaborator response")

var errNotConfigured = errors.New("collaborator not configured")

// ComplexityRequest is the input to complexity inference and code review.
type ComplexityRequest struct {
	Problem           string
	ReferenceSolution string
	Language          string
	Code              string
}

// ConversationRequest is the input to conversation scoring.
type ConversationRequest struct {
	Problem      string
	Transcript   string
	Candidate    types.CandidateComplexity
	Optimal      types.OptimalComplexity
	CodeFeedback []string
}

// PracticeRequest is the input to practice recommendation.
type PracticeRequest struct {
	CodeScores           types.CodeScores
	ConversationScores   types.ConversationScores
	CodeFeedback         []string
	ConversationFeedback []string
	Weak                 []scoring.Dimension
}

// ComplexityInferer infers the optimal and candidate complexity of a solution.
type ComplexityInferer interface {
	InferComplexity(ctx context.Context, req ComplexityRequest) (*types.ComplexityInfo, error)
}

// CodeReviewer compiles and tests candidate code.
type CodeReviewer interface {
	ReviewCode(ctx context.Context, req ComplexityRequest) (*types.ReviewerResult, error)
}

// ConversationScorer scores the interview transcript.
type ConversationScorer interface {
	ScoreConversation(ctx context.Context, req ConversationRequest) (*types.ConversationResult, error)
}

// PracticeRecommender suggests practice grouped by category.
type PracticeRecommender interface {
	RecommendPractice(ctx context.Context, req PracticeRequest) (map[string][]string, error)
}

// StyleRater rates code quality on a 0-10 scale.
type StyleRater interface {
	Rate(ctx context.Context, code, language string) (float64, error)
}

// Store persists judging results and returns a confirmation message.
type Store interface {
	SaveCodingReview(ctx context.Context, userID, sessionID string, result *types.JudgingResult) (string, error)
}
