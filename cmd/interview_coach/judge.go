package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/judge"
	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/jonathan/interview-coach/internal/schemas"
	schemafiles "github.com/jonathan/interview-coach/schemas"
)

var judgeCmd = &cobra.Command{
	Use:   "judge",
	Short: "Judge one interview session",
	Long: `Runs the full judging pipeline for a session file: complexity inference, code review,
style rating, conversation scoring, aggregation, feedback, practice recommendation and
persistence. Collaborator failures fall back to defaults and are reported, never fatal.`,
	RunE: runJudge,
}

var (
	judgeSession string
	judgeOutput  string
)

func init() {
	judgeCmd.Flags().StringVarP(&judgeSession, "session", "s", "", "Path to session JSON file (required)")
	judgeCmd.Flags().StringVarP(&judgeOutput, "out", "o", "", "Write the outcome JSON to this file instead of stdout")

	if err := judgeCmd.MarkFlagRequired("session"); err != nil {
		panic(fmt.Sprintf("failed to mark session flag as required: %v", err))
	}

	rootCmd.AddCommand(judgeCmd)
}

func runJudge(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	session, err := readSession(judgeSession)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	outcome := a.judge().Run(ctx, session)
	return reportOutcome(cmd, cfg.Verbose, judgeOutput, outcome)
}

// reportOutcome prints a human-readable report when verbose, otherwise JSON.
func reportOutcome(cmd *cobra.Command, verbose bool, path string, outcome *judge.Outcome) error {
	if err := schemas.ValidateValue(schemafiles.JudgingResult, outcome.Result); err != nil {
		slog.Warn("judging result does not match schema", "error", err)
	}

	if verbose {
		p := observability.NewPrinter(cmd.OutOrStdout())
		p.PrintJudgingResult(outcome.Result)
		p.PrintSteps(outcome.Steps)
		if outcome.PersistMessage != "" {
			fmt.Fprintln(cmd.OutOrStdout(), outcome.PersistMessage)
		}
		if path == "" {
			return nil
		}
	}
	return writeJSON(cmd.OutOrStdout(), path, outcome)
}
