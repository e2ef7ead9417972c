package judge

import (
	"context"
	"sync"

	"github.com/jonathan/interview-coach/internal/types"
)

type complexityFunc func(context.Context, ComplexityRequest) (*types.ComplexityInfo, error)

func (f complexityFunc) InferComplexity(ctx context.Context, req ComplexityRequest) (*types.ComplexityInfo, error) {
	return f(ctx, req)
}

type reviewFunc func(context.Context, ComplexityRequest) (*types.ReviewerResult, error)

func (f reviewFunc) ReviewCode(ctx context.Context, req ComplexityRequest) (*types.ReviewerResult, error) {
	return f(ctx, req)
}

type conversationFunc func(context.Context, ConversationRequest) (*types.ConversationResult, error)

func (f conversationFunc) ScoreConversation(ctx context.Context, req ConversationRequest) (*types.ConversationResult, error) {
	return f(ctx, req)
}

type practiceFunc func(context.Context, PracticeRequest) (map[string][]string, error)

func (f practiceFunc) RecommendPractice(ctx context.Context, req PracticeRequest) (map[string][]string, error) {
	return f(ctx, req)
}

type styleFunc func(context.Context, string, string) (float64, error)

func (f styleFunc) Rate(ctx context.Context, code, language string) (float64, error) {
	return f(ctx, code, language)
}

type fakeStore struct {
	mu    sync.Mutex
	saved map[string]*types.JudgingResult
	err   error
}

func (s *fakeStore) SaveCodingReview(_ context.Context, userID, sessionID string, result *types.JudgingResult) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		s.saved = make(map[string]*types.JudgingResult)
	}
	s.saved[userID+"/"+sessionID] = result
	return "Coding review saved successfully for session " + sessionID, nil
}

func testSession() *types.Session {
	return &types.Session{
		UserID:    "user-1",
		SessionID: "session-1",
		Problem: types.Problem{
			Slug:      "two-sum",
			Statement: "Return indices of the two numbers that add up to target.",
			Solutions: map[string]string{
				"python": "def two_sum(nums, target): ...",
				"go":     "func twoSum(nums []int, target int) []int { return nil }",
			},
		},
		Code:         "def two_sum(nums, target):\n    seen = {}\n",
		Language:     "python",
		ClaimedTime:  "O(n)",
		ClaimedSpace: "O(n)",
		Transcript: []types.TranscriptTurn{
			{Speaker: "interviewer", Text: "What is the complexity?"},
			{Speaker: "candidate", Text: "Linear time, linear space."},
		},
	}
}

func goodComplexity() *types.ComplexityInfo {
	return &types.ComplexityInfo{
		Optimal: types.OptimalComplexity{Time: "O(n)", Space: "O(n)", EdgeKeywords: []string{"empty", "duplicates"}},
		Candidate: types.CandidateComplexity{
			Time:        "O(n)",
			Space:       "O(n)",
			EdgeCovered: []string{"empty", "duplicates"},
			EdgeMissing: []string{},
		},
	}
}

func goodReview() *types.ReviewerResult {
	return &types.ReviewerResult{
		CompileStatus: types.CompileStatusOK,
		Tests: []types.TestResult{
			{Name: "basic", Input: "[2,7,11,15], 9", Expected: "[0,1]", Output: "[0,1]", Status: types.TestStatusPass},
			{Name: "edge_duplicates", Input: "[3,3], 6", Expected: "[0,1]", Output: "[0,1]", Status: types.TestStatusPass},
		},
	}
}

func goodConversation() *types.ConversationResult {
	return &types.ConversationResult{
		ConversationScores: types.ConversationScores{Understanding: 90, Awareness: 80, Defense: 70, Clarity: 60},
		Feedback:           []string{"Clear explanation of the hash map approach."},
	}
}

// goodDeps returns collaborators for a strong session. Overall is 92.5.
func goodDeps(store Store) Deps {
	return Deps{
		Complexity: complexityFunc(func(context.Context, ComplexityRequest) (*types.ComplexityInfo, error) {
			return goodComplexity(), nil
		}),
		Reviewer: reviewFunc(func(context.Context, ComplexityRequest) (*types.ReviewerResult, error) {
			return goodReview(), nil
		}),
		Style: styleFunc(func(context.Context, string, string) (float64, error) { return 8, nil }),
		Conversation: conversationFunc(func(context.Context, ConversationRequest) (*types.ConversationResult, error) {
			return goodConversation(), nil
		}),
		Store: store,
	}
}
