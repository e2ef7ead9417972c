// Package llmjudge implements the judge collaborators on top of an LLM client.
// Every response is extracted, validated against its JSON Schema and decoded
// before it reaches the orchestrator.
package llmjudge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/interview-coach/internal/judge"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/schemas"
	"github.com/jonathan/interview-coach/internal/scoring"
	"github.com/jonathan/interview-coach/internal/types"
	schemafiles "github.com/jonathan/interview-coach/schemas"
)

// DefaultTimeout bounds a single collaborator call.
const DefaultTimeout = 60 * time.Second

const notSpecified = "Not specified"

// ResponseError reports an LLM response that could not be turned into the
// expected value. It matches judge.ErrMalformedResponse with errors.Is.
type ResponseError struct {
	Op      string
	Content string
	Err     error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: unusable LLM response: %v", e.Op, e.Err)
}

// Unwrap exposes both the cause and judge.ErrMalformedResponse.
func (e *ResponseError) Unwrap() []error {
	return []error{judge.ErrMalformedResponse, e.Err}
}

var errEmptyResponse = errors.New("empty response")

// Collaborators implements judge.ComplexityInferer, judge.CodeReviewer,
// judge.ConversationScorer and judge.PracticeRecommender.
type Collaborators struct {
	client  llm.Client
	timeout time.Duration
}

// Option configures Collaborators.
type Option func(*Collaborators)

// WithTimeout sets the per-call timeout. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Collaborators) { c.timeout = d }
}

// New creates collaborators backed by client.
func New(client llm.Client, opts ...Option) *Collaborators {
	c := &Collaborators{client: client, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ judge.ComplexityInferer   = (*Collaborators)(nil)
	_ judge.CodeReviewer        = (*Collaborators)(nil)
	_ judge.ConversationScorer  = (*Collaborators)(nil)
	_ judge.PracticeRecommender = (*Collaborators)(nil)
)

// InferComplexity asks for the optimal and candidate complexity and edge-case coverage.
func (c *Collaborators) InferComplexity(ctx context.Context, req judge.ComplexityRequest) (*types.ComplexityInfo, error) {
	var info types.ComplexityInfo
	err := c.generate(ctx, "infer complexity", prompts.KeyInferComplexity, codeData(req), llm.TierAdvanced, schemafiles.Complexity, &info)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// ReviewCode asks for a compile verdict and simulated test results.
func (c *Collaborators) ReviewCode(ctx context.Context, req judge.ComplexityRequest) (*types.ReviewerResult, error) {
	var result types.ReviewerResult
	err := c.generate(ctx, "review code", prompts.KeyReviewCode, codeData(req), llm.TierStandard, schemafiles.Review, &result)
	if err != nil {
		return nil, err
	}
	if result.Tests == nil {
		result.Tests = []types.TestResult{}
	}
	return &result, nil
}

// ScoreConversation scores the transcript on the four conversation dimensions.
func (c *Collaborators) ScoreConversation(ctx context.Context, req judge.ConversationRequest) (*types.ConversationResult, error) {
	data := map[string]string{
		"Problem":        orNotSpecified(req.Problem),
		"Transcript":     orNotSpecified(req.Transcript),
		"CandidateTime":  orNotSpecified(req.Candidate.Time),
		"CandidateSpace": orNotSpecified(req.Candidate.Space),
		"OptimalTime":    orNotSpecified(req.Optimal.Time),
		"OptimalSpace":   orNotSpecified(req.Optimal.Space),
		"EdgeKeywords":   joinOr(req.Optimal.EdgeKeywords, ", ", "none listed"),
		"CodeFeedback":   joinOr(req.CodeFeedback, "; ", "none"),
	}

	var result types.ConversationResult
	err := c.generate(ctx, "score conversation", prompts.KeyScoreConversation, data, llm.TierStandard, schemafiles.Conversation, &result)
	if err != nil {
		return nil, err
	}
	result.ConversationScores = scoring.ClampConversation(result.ConversationScores)
	return &result, nil
}

// RecommendPractice asks for practice suggestions for the weak dimensions.
func (c *Collaborators) RecommendPractice(ctx context.Context, req judge.PracticeRequest) (map[string][]string, error) {
	var performance strings.Builder
	for _, d := range scoring.Dimensions(req.CodeScores, req.ConversationScores) {
		fmt.Fprintf(&performance, "- %s: %.1f\n", d.Label, d.Score)
	}
	if len(req.CodeFeedback) > 0 {
		fmt.Fprintf(&performance, "Code feedback: %s\n", strings.Join(req.CodeFeedback, "; "))
	}
	if len(req.ConversationFeedback) > 0 {
		fmt.Fprintf(&performance, "Conversation feedback: %s\n", strings.Join(req.ConversationFeedback, "; "))
	}

	weak := make([]string, len(req.Weak))
	for i, d := range req.Weak {
		weak[i] = fmt.Sprintf("- %s (%.1f)", d.Label, d.Score)
	}

	data := map[string]string{
		"Performance":    strings.TrimRight(performance.String(), "\n"),
		"WeakCategories": joinOr(weak, "\n", "none"),
		"Threshold":      strconv.FormatFloat(scoring.WeakThreshold, 'f', -1, 64),
		"MaxCategories":  strconv.Itoa(judge.MaxPracticeCategories),
	}

	practice := map[string][]string{}
	err := c.generate(ctx, "recommend practice", prompts.KeyRecommendPractice, data, llm.TierLite, schemafiles.Practice, &practice)
	if err != nil {
		return nil, err
	}
	return judge.TrimPractice(practice, req.Weak), nil
}

// generate renders a prompt, calls the model and decodes the validated JSON into out.
func (c *Collaborators) generate(ctx context.Context, op, key string, data map[string]string, tier llm.ModelTier, schema string, out any) error {
	prompt, err := prompts.Render(prompts.CodingJudgeFile, key, data)
	if err != nil {
		return fmt.Errorf("failed to build %s prompt: %w", op, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	text, err := c.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return fmt.Errorf("%s: LLM generation failed: %w", op, err)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%s: %w", op, errEmptyResponse)
	}

	raw, err := llm.ExtractJSON(text)
	if err != nil {
		return &ResponseError{Op: op, Content: text, Err: err}
	}
	if err := schemas.Validate(schema, []byte(raw)); err != nil {
		return &ResponseError{Op: op, Content: raw, Err: err}
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &ResponseError{Op: op, Content: raw, Err: fmt.Errorf("failed to decode: %w", err)}
	}
	return nil
}

func codeData(req judge.ComplexityRequest) map[string]string {
	return map[string]string{
		"Problem":           orNotSpecified(req.Problem),
		"ReferenceSolution": orNotSpecified(req.ReferenceSolution),
		"Language":          orNotSpecified(req.Language),
		"Code":              orNotSpecified(req.Code),
	}
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}

func joinOr(items []string, sep, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, sep)
}
