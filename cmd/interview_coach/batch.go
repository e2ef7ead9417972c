package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/judge"
	"github.com/jonathan/interview-coach/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Judge many sessions concurrently",
	Long: `Judges every session in a directory of *.json files, or in a file holding a JSON
array of sessions. At most --concurrency sessions are judged at once; outcomes keep
input order.`,
	RunE: runBatch,
}

var (
	batchSessions    string
	batchOutDir      string
	batchConcurrency int
)

// BatchSummary is one line of batch output.
type BatchSummary struct {
	UserID    string   `json:"user_id"`
	SessionID string   `json:"session_id"`
	Overall   float64  `json:"overall"`
	Degraded  []string `json:"degraded,omitempty"`
	Persisted bool     `json:"persisted"`
	Output    string   `json:"output,omitempty"`
}

func init() {
	batchCmd.Flags().StringVar(&batchSessions, "sessions", "", "Directory of session JSON files, or a JSON array file (required)")
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "", "Directory for per-session outcome JSON files")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "Sessions judged at once (default from config, 4)")

	if err := batchCmd.MarkFlagRequired("sessions"); err != nil {
		panic(fmt.Sprintf("failed to mark sessions flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = batchConcurrency
	}

	sessions, err := readSessions(batchSessions)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return fmt.Errorf("no sessions found in %s", batchSessions)
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	slog.Info("judging batch", "sessions", len(sessions), "concurrency", cfg.Concurrency)
	outcomes, err := judge.RunBatch(ctx, a.judge(), sessions, cfg.Concurrency)
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	summaries, err := summarize(sessions, outcomes, batchOutDir)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), "", summaries)
}

// summarize condenses outcomes, which are in session order, and when outDir
// is set writes each one to <outDir>/<session_id>.json.
func summarize(sessions []*types.Session, outcomes []*judge.Outcome, outDir string) ([]BatchSummary, error) {
	summaries := make([]BatchSummary, 0, len(outcomes))
	for i, out := range outcomes {
		if out == nil || out.Result == nil || i >= len(sessions) {
			continue
		}
		sum := BatchSummary{
			UserID:    sessions[i].UserID,
			SessionID: sessions[i].SessionID,
			Overall:   out.Result.Scores.Overall,
			Degraded:  out.Result.Degraded,
			Persisted: out.Persisted,
		}
		if outDir != "" {
			sum.Output = filepath.Join(outDir, safeName(sum.SessionID)+".json")
			if err := writeJSON(nil, sum.Output, out); err != nil {
				return nil, err
			}
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}
