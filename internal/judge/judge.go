// Package judge runs the coding-judge state machine: it gathers collaborator
// signals, scores them and persists the result. Collaborator failures never
// abort a run; each one degrades to a documented default.
package judge

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonathan/interview-coach/internal/scoring"
	"github.com/jonathan/interview-coach/internal/types"
)

// Deps are the collaborators a Judge calls. Any of them may be nil: a nil AI
// collaborator degrades to its default, a nil Style rates neutrally and a nil
// Store skips persistence.
type Deps struct {
	Complexity   ComplexityInferer
	Reviewer     CodeReviewer
	Style        StyleRater
	Conversation ConversationScorer
	Practice     PracticeRecommender
	Store        Store
}

// Judge scores interview sessions.
type Judge struct {
	deps     Deps
	weights  scoring.Weights
	logger   *slog.Logger
	progress func(StepEvent)
	now      func() time.Time
}

// Option configures a Judge.
type Option func(*Judge)

// WithWeights sets the aggregation weights. Zero weights keep the defaults.
func WithWeights(w scoring.Weights) Option {
	return func(j *Judge) {
		if !w.IsZero() {
			j.weights = w
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(j *Judge) {
		if l != nil {
			j.logger = l
		}
	}
}

// WithProgress registers a callback invoked after every step.
func WithProgress(fn func(StepEvent)) Option {
	return func(j *Judge) { j.progress = fn }
}

// WithClock sets the time source used for timestamps and step durations.
func WithClock(now func() time.Time) Option {
	return func(j *Judge) {
		if now != nil {
			j.now = now
		}
	}
}

// New creates a Judge.
func New(deps Deps, opts ...Option) *Judge {
	j := &Judge{
		deps:    deps,
		weights: scoring.DefaultWeights,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Weights returns the aggregation weights in use.
func (j *Judge) Weights() scoring.Weights {
	return j.weights
}

// Outcome is the result of a run together with its trace.
type Outcome struct {
	Result         *types.JudgingResult `json:"result"`
	Steps          []Step               `json:"steps"`
	Persisted      bool                 `json:"persisted"`
	PersistMessage string               `json:"persist_message,omitempty"`
}

// run carries the per-session trace.
type run struct {
	j        *Judge
	session  *types.Session
	logger   *slog.Logger
	steps    []Step
	degraded []string
	mark     time.Time
}

func (r *run) step(state State, collaborator string, err error) {
	now := r.j.now()
	st := Step{
		State:        state,
		Collaborator: collaborator,
		Duration:     now.Sub(r.mark),
	}
	r.mark = now
	if err != nil {
		st.Degraded = true
		st.Error = err.Error()
		if collaborator != CollaboratorStore {
			r.degraded = append(r.degraded, collaborator)
			r.logger.Warn("collaborator failed, using default",
				"state", string(state), "collaborator", collaborator, "error", err)
		}
	}
	r.steps = append(r.steps, st)
	r.logger.Debug("step complete", "state", string(state), "duration", st.Duration, "degraded", st.Degraded)

	if r.j.progress != nil {
		r.j.progress(StepEvent{
			SessionID: r.session.SessionID,
			Index:     len(r.steps),
			Total:     len(States),
			Step:      st,
		})
	}
}

// Run judges one session. It always returns an Outcome; collaborator failures
// are recorded in Outcome.Steps and Result.Degraded.
func (j *Judge) Run(ctx context.Context, session *types.Session) *Outcome {
	if session == nil {
		session = &types.Session{}
	}
	r := &run{
		j:       j,
		session: session,
		logger:  j.logger.With("user_id", session.UserID, "session_id", session.SessionID),
		mark:    j.now(),
	}
	r.step(StateInit, "", nil)

	req := ComplexityRequest{
		Problem:           session.Problem.Statement,
		ReferenceSolution: session.Problem.ReferenceSolution(session.Language),
		Language:          session.Language,
		Code:              session.Code,
	}

	// Complexity
	complexity := call(ctx, func(ctx context.Context) (types.ComplexityInfo, error) {
		if j.deps.Complexity == nil {
			return types.ComplexityInfo{}, errNotConfigured
		}
		return deref(j.deps.Complexity.InferComplexity(ctx, req))
	})
	info := complexity.or(types.DefaultComplexityInfo())
	r.step(StateComplexityInferred, CollaboratorComplexity, complexity.err)

	// Review
	review := call(ctx, func(ctx context.Context) (types.ReviewerResult, error) {
		if j.deps.Reviewer == nil {
			return types.ReviewerResult{}, errNotConfigured
		}
		return deref(j.deps.Reviewer.ReviewCode(ctx, req))
	})
	reviewer := review.or(types.DefaultReviewerResult())
	r.step(StateCodeReviewed, CollaboratorReviewer, review.err)

	// Style and code scoring
	var rating *float64
	var styleErr error
	if j.deps.Style != nil {
		rated := call(ctx, func(ctx context.Context) (float64, error) {
			return j.deps.Style.Rate(ctx, session.Code, session.Language)
		})
		if rated.ok() {
			v := rated.value
			rating = &v
		}
		styleErr = rated.err
	}
	codeScores, codeFeedback := scoring.ScoreCode(scoring.CodeInput{
		Reviewer:    reviewer,
		Optimal:     info.Optimal,
		Candidate:   info.Candidate,
		Claims:      session.Claims(),
		StyleRating: rating,
	})
	r.step(StateCodeScored, CollaboratorStyle, styleErr)

	// Conversation
	conversation := call(ctx, func(ctx context.Context) (types.ConversationResult, error) {
		if j.deps.Conversation == nil {
			return types.ConversationResult{}, errNotConfigured
		}
		return deref(j.deps.Conversation.ScoreConversation(ctx, ConversationRequest{
			Problem:      session.Problem.Statement,
			Transcript:   session.TranscriptText(),
			Candidate:    info.Candidate,
			Optimal:      info.Optimal,
			CodeFeedback: codeFeedback,
		}))
	})
	conv := conversation.or(types.DefaultConversationResult())
	conv.ConversationScores = scoring.ClampConversation(conv.ConversationScores)
	r.step(StateConversationScored, CollaboratorConversation, conversation.err)

	overall := scoring.Aggregate(codeScores, conv.ConversationScores, j.weights)
	r.step(StateAggregated, "", nil)

	summary := scoring.ComposeFeedback(codeScores, conv.ConversationScores)
	r.step(StateFeedbackComposed, "", nil)

	nextStep, practiceErr := j.recommend(ctx, PracticeRequest{
		CodeScores:           codeScores,
		ConversationScores:   conv.ConversationScores,
		CodeFeedback:         codeFeedback,
		ConversationFeedback: conv.Feedback,
		Weak:                 scoring.WeakDimensions(codeScores, conv.ConversationScores, scoring.WeakThreshold, MaxPracticeCategories),
	})
	r.step(StatePracticeRecommended, CollaboratorPractice, practiceErr)

	result := &types.JudgingResult{
		ProblemSlug: session.Problem.Slug,
		Scores: types.Scores{
			Overall:      overall,
			Code:         codeScores,
			Conversation: conv.ConversationScores,
		},
		Feedback: types.Feedback{
			Code:         nonNil(codeFeedback),
			Conversation: nonNil(conv.Feedback),
			Strength:     summary.Strength,
			Opportunity:  summary.Opportunity,
			NextStep:     nextStep,
		},
		ReviewerResult:    reviewer,
		OptimalComplexity: info.Optimal,
		Transcript:        append([]types.TranscriptTurn(nil), session.Transcript...),
		JudgedAt:          j.now().UTC(),
		Degraded:          r.degraded,
	}

	out := &Outcome{Result: result}
	var persistErr error
	if j.deps.Store != nil {
		saved := call(ctx, func(ctx context.Context) (string, error) {
			return j.deps.Store.SaveCodingReview(ctx, session.UserID, session.SessionID, result)
		})
		persistErr = saved.err
		if saved.ok() {
			out.Persisted = true
			out.PersistMessage = saved.value
		} else {
			r.logger.Error("failed to persist coding review",
				"state", string(StatePersisted), "collaborator", CollaboratorStore, "error", saved.err)
		}
	}
	r.step(StatePersisted, CollaboratorStore, persistErr)

	out.Steps = r.steps
	r.logger.Info("session judged", "overall", overall, "degraded", len(r.degraded), "persisted", out.Persisted)
	return out
}

// recommend asks for practice only when some dimension is weak. A failed call
// yields no recommendation; an unusable response yields GeneralPractice.
func (j *Judge) recommend(ctx context.Context, req PracticeRequest) (map[string][]string, error) {
	if len(req.Weak) == 0 {
		return map[string][]string{}, nil
	}
	practice := call(ctx, func(ctx context.Context) (map[string][]string, error) {
		if j.deps.Practice == nil {
			return nil, errNotConfigured
		}
		return j.deps.Practice.RecommendPractice(ctx, req)
	})
	if practice.err != nil {
		if errors.Is(practice.err, ErrMalformedResponse) {
			return GeneralPractice(), practice.err
		}
		return map[string][]string{}, practice.err
	}
	trimmed := TrimPractice(practice.value, req.Weak)
	if len(trimmed) == 0 {
		return GeneralPractice(), nil
	}
	return trimmed, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
