package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/judge"
	"github.com/jonathan/interview-coach/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a session offline from recorded collaborator outputs",
	Long: `Runs the judging pipeline without calling any LLM. Collaborator outputs are read
from a recorded JSON file with optional keys complexity, review, conversation, practice
and style_rating. Missing keys fall back to defaults exactly as a failing collaborator
would. Nothing is persisted unless --persist is set.`,
	RunE: runScore,
}

var (
	scoreSession  string
	scoreRecorded string
	scoreOutput   string
	scorePersist  bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreSession, "session", "s", "", "Path to session JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreRecorded, "recorded", "r", "", "Path to recorded collaborator outputs JSON (required)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Write the outcome JSON to this file instead of stdout")
	scoreCmd.Flags().BoolVar(&scorePersist, "persist", false, "Save the result to the configured store")

	for _, name := range []string{"session", "recorded"} {
		if err := scoreCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(scoreCmd)
}

var errNotRecorded = errors.New("no recorded output")

// Recorded replays stored collaborator outputs.
type Recorded struct {
	Complexity   *types.ComplexityInfo     `json:"complexity,omitempty"`
	Review       *types.ReviewerResult     `json:"review,omitempty"`
	Conversation *types.ConversationResult `json:"conversation,omitempty"`
	Practice     map[string][]string       `json:"practice,omitempty"`
	StyleRating  *float64                  `json:"style_rating,omitempty"`
}

// InferComplexity returns the recorded complexity.
func (r *Recorded) InferComplexity(context.Context, judge.ComplexityRequest) (*types.ComplexityInfo, error) {
	if r.Complexity == nil {
		return nil, errNotRecorded
	}
	return r.Complexity, nil
}

// ReviewCode returns the recorded review.
func (r *Recorded) ReviewCode(context.Context, judge.ComplexityRequest) (*types.ReviewerResult, error) {
	if r.Review == nil {
		return nil, errNotRecorded
	}
	return r.Review, nil
}

// ScoreConversation returns the recorded conversation scores.
func (r *Recorded) ScoreConversation(context.Context, judge.ConversationRequest) (*types.ConversationResult, error) {
	if r.Conversation == nil {
		return nil, errNotRecorded
	}
	return r.Conversation, nil
}

// RecommendPractice returns the recorded practice, trimmed to the weak categories.
func (r *Recorded) RecommendPractice(_ context.Context, req judge.PracticeRequest) (map[string][]string, error) {
	if r.Practice == nil {
		return nil, errNotRecorded
	}
	return judge.TrimPractice(r.Practice, req.Weak), nil
}

// Rate returns the recorded style rating.
func (r *Recorded) Rate(context.Context, string, string) (float64, error) {
	if r.StyleRating == nil {
		return 0, errNotRecorded
	}
	return *r.StyleRating, nil
}

// Deps wires the recording into judge dependencies. Without a recorded style
// rating the style dimension is neutral rather than degraded.
func (r *Recorded) Deps() judge.Deps {
	deps := judge.Deps{
		Complexity:   r,
		Reviewer:     r,
		Conversation: r,
		Practice:     r,
	}
	if r.StyleRating != nil {
		deps.Style = r
	}
	return deps
}

func readRecorded(path string) (*Recorded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recorded outputs %s: %w", path, err)
	}
	var rec Recorded
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse recorded outputs %s: %w", path, err)
	}
	return &rec, nil
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	session, err := readSession(scoreSession)
	if err != nil {
		return err
	}
	rec, err := readRecorded(scoreRecorded)
	if err != nil {
		return err
	}

	deps := rec.Deps()
	if scorePersist {
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		deps.Store = st
	}

	outcome := judge.New(deps, judge.WithWeights(cfg.EffectiveWeights()), judge.WithLogger(slog.Default())).Run(ctx, session)
	return reportOutcome(cmd, cfg.Verbose, scoreOutput, outcome)
}
