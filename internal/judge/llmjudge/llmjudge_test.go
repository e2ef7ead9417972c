package llmjudge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/judge"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/schemas"
	"github.com/jonathan/interview-coach/internal/scoring"
	"github.com/jonathan/interview-coach/internal/types"
)

func codeRequest() judge.ComplexityRequest {
	return judge.ComplexityRequest{
		Problem:           "Two sum",
		ReferenceSolution: "def two_sum(nums, target): ...",
		Language:          "python",
		Code:              "def two_sum(nums, target):\n    return []",
	}
}

func TestInferComplexity(t *testing.T) {
	client := llm.NewMockClient(llm.MockResponse{Text: "Here is my analysis:\n```json\n" +
		`{"optimal":{"time":"O(n)","space":"O(n)","edge_keywords":["empty","duplicates"]},` +
		`"candidate":{"time":"O(n^2)","space":"O(1)","edge_covered":["empty"],"edge_missing":["duplicates"]}}` +
		"\n```"})

	info, err := New(client).InferComplexity(context.Background(), codeRequest())
	require.NoError(t, err)
	assert.Equal(t, "O(n)", info.Optimal.Time)
	assert.Equal(t, []string{"empty", "duplicates"}, info.Optimal.EdgeKeywords)
	assert.Equal(t, "O(n^2)", info.Candidate.Time)
	assert.Equal(t, []string{"duplicates"}, info.Candidate.EdgeMissing)

	require.Len(t, client.Calls, 1)
	call := client.Calls[0]
	assert.True(t, call.JSON)
	assert.Equal(t, llm.TierAdvanced, call.Tier)
	assert.Contains(t, call.Prompt, "Two sum")
	assert.Contains(t, call.Prompt, "def two_sum(nums, target): ...")
	assert.Contains(t, call.Prompt, "language: python")
	assert.NotContains(t, call.Prompt, "{{.")
}

func TestInferComplexity_EmptyFieldsRenderNotSpecified(t *testing.T) {
	client := llm.NewMockClient(llm.MockResponse{Text: `{"optimal":{"time":"O(1)","space":"O(1)"},"candidate":{"time":"O(1)","space":"O(1)"}}`})

	_, err := New(client).InferComplexity(context.Background(), judge.ComplexityRequest{Problem: "p"})
	require.NoError(t, err)
	assert.Contains(t, client.Calls[0].Prompt, "Not specified")
}

func TestReviewCode(t *testing.T) {
	client := llm.NewMockClient(llm.MockResponse{Text: `{"compile_status":"OK","tests":[` +
		`{"name":"basic","input":[2,7,11,15],"expected":[0,1],"output":[0,1],"status":"pass"},` +
		`{"name":"edge_empty","input":[],"expected":[],"output":null,"status":"FAIL"}],` +
		`"complexity":{"estimated_time":"O(n)","estimated_space":"O(n)"}}`})

	result, err := New(client).ReviewCode(context.Background(), codeRequest())
	require.NoError(t, err)
	assert.True(t, result.Compiled())
	require.Len(t, result.Tests, 2)
	assert.Equal(t, "[2,7,11,15]", result.Tests[0].Input)
	assert.False(t, result.Tests[1].Passed())
	require.NotNil(t, result.Complexity)
	assert.Equal(t, "O(n)", result.Complexity.EstimatedTime)
	assert.Equal(t, llm.TierStandard, client.Calls[0].Tier)
}

func TestReviewCode_SchemaViolation(t *testing.T) {
	client := llm.NewMockClient(llm.MockResponse{Text: `{"compile_status":"maybe","tests":[]}`})

	_, err := New(client).ReviewCode(context.Background(), codeRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, judge.ErrMalformedResponse)

	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, "review code", respErr.Op)

	var valErr *schemas.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.NotEmpty(t, valErr.Errors)
}

func TestScoreConversation(t *testing.T) {
	client := llm.NewMockClient(llm.MockResponse{Text: `{"understanding":120,"awareness":45.25,"defense":-3,"clarity":70,"feedback":["Explained the hash map well."]}`})

	req := judge.ConversationRequest{
		Problem:      "Two sum",
		Transcript:   "candidate: I use a hash map.\n",
		Candidate:    types.CandidateComplexity{Time: "O(n)", Space: "O(n)"},
		Optimal:      types.OptimalComplexity{Time: "O(n)", Space: "O(n)", EdgeKeywords: []string{"empty", "duplicates"}},
		CodeFeedback: []string{"Failed tests: edge_empty"},
	}
	result, err := New(client).ScoreConversation(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.ConversationScores{Understanding: 100, Awareness: 45.3, Defense: 0, Clarity: 70}, result.ConversationScores)
	assert.Equal(t, []string{"Explained the hash map well."}, result.Feedback)

	prompt := client.Calls[0].Prompt
	assert.Contains(t, prompt, "candidate: I use a hash map.")
	assert.Contains(t, prompt, "empty, duplicates")
	assert.Contains(t, prompt, "Failed tests: edge_empty")
}

func TestScoreConversation_MissingScore(t *testing.T) {
	client := llm.NewMockClient(llm.MockResponse{Text: `{"understanding":80,"awareness":70,"defense":60}`})

	_, err := New(client).ScoreConversation(context.Background(), judge.ConversationRequest{})
	assert.ErrorIs(t, err, judge.ErrMalformedResponse)
}

func TestRecommendPractice(t *testing.T) {
	client := llm.NewMockClient(llm.MockResponse{Text: `{"Awareness":["a1","a2","a3","a4","a5","a6"],"Correctness":["c1"],"Arrays":["x"],"Zebra":["z"]}`})

	req := judge.PracticeRequest{
		CodeScores:         types.CodeScores{Correctness: 33.3, Efficiency: 80, Robustness: 100, Style: 80},
		ConversationScores: types.ConversationScores{Understanding: 70, Awareness: 30, Defense: 60, Clarity: 60},
		CodeFeedback:       []string{"Failed tests: large"},
		Weak: []scoring.Dimension{
			{Key: scoring.KeyAwareness, Label: "Awareness", Score: 30},
			{Key: scoring.KeyCorrectness, Label: "Correctness", Score: 33.3},
		},
	}
	practice, err := New(client).RecommendPractice(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"Awareness":   {"a1", "a2", "a3", "a4", "a5"},
		"Correctness": {"c1"},
		"Arrays":      {"x"},
	}, practice)

	call := client.Calls[0]
	assert.Equal(t, llm.TierLite, call.Tier)
	assert.Contains(t, call.Prompt, "- Awareness (30.0)\n- Correctness (33.3)")
	assert.Contains(t, call.Prompt, "score below 50")
	assert.Contains(t, call.Prompt, "at most 3")
	assert.Contains(t, call.Prompt, "- Correctness: 33.3")
}

func TestRecommendPractice_NonArrayValues(t *testing.T) {
	client := llm.NewMockClient(llm.MockResponse{Text: `{"Awareness":"practice more"}`})

	_, err := New(client).RecommendPractice(context.Background(), judge.PracticeRequest{})
	assert.ErrorIs(t, err, judge.ErrMalformedResponse)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		resp      llm.MockResponse
		malformed bool
	}{
		{name: "provider error", resp: llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}},
		{name: "empty response", resp: llm.MockResponse{Text: "   "}},
		{name: "no json", resp: llm.MockResponse{Text: "I cannot answer that."}, malformed: true},
		{name: "truncated json", resp: llm.MockResponse{Text: `{"optimal": {"time": "O(n)"`}, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := llm.NewMockClient(tt.resp)
			_, err := New(client).InferComplexity(context.Background(), codeRequest())
			require.Error(t, err)
			assert.Equal(t, tt.malformed, errors.Is(err, judge.ErrMalformedResponse))
		})
	}
}

// blockingClient waits for the context to end.
type blockingClient struct{ llm.MockClient }

func (b *blockingClient) GenerateJSON(ctx context.Context, _ string, _ llm.ModelTier) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestGenerate_Timeout(t *testing.T) {
	c := New(&blockingClient{}, WithTimeout(10*time.Millisecond))

	start := time.Now()
	_, err := c.InferComplexity(context.Background(), codeRequest())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, errors.Is(err, judge.ErrMalformedResponse))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestCollaborators_WithJudge(t *testing.T) {
	client := llm.NewMockClient(
		llm.MockResponse{Text: `{"optimal":{"time":"O(n)","space":"O(n)","edge_keywords":["empty"]},"candidate":{"time":"O(n)","space":"O(n)","edge_covered":["empty"],"edge_missing":[]}}`},
		llm.MockResponse{Text: `{"compile_status":"ok","tests":[{"name":"basic","status":"pass"},{"name":"edge_empty","status":"pass"}]}`},
		llm.MockResponse{Text: `{"understanding":90,"awareness":80,"defense":70,"clarity":60,"feedback":[]}`},
	)
	c := New(client)

	j := judge.New(judge.Deps{Complexity: c, Reviewer: c, Conversation: c, Practice: c})
	out := j.Run(context.Background(), &types.Session{
		UserID:       "u",
		SessionID:    "s",
		Problem:      types.Problem{Slug: "two-sum", Statement: "Two sum"},
		Code:         "def f(): pass",
		Language:     "python",
		ClaimedTime:  "O(n)",
		ClaimedSpace: "O(n)",
	})

	assert.Empty(t, out.Result.Degraded)
	assert.Equal(t, 3, client.CallCount(), "practice is skipped when nothing is weak")
	assert.InDelta(t, 91.0, out.Result.Scores.Overall, 1e-9)
}
