package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/observability"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Read stored coding reviews",
}

var reviewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's reviews, newest first",
	RunE:  runReviewsList,
}

var reviewsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the review of one session",
	RunE:  runReviewsGet,
}

var (
	reviewsUser    string
	reviewsSession string
	reviewsLimit   int
)

func init() {
	reviewsCmd.PersistentFlags().StringVarP(&reviewsUser, "user", "u", "", "User ID (required)")
	if err := reviewsCmd.MarkPersistentFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}

	reviewsListCmd.Flags().IntVarP(&reviewsLimit, "limit", "n", 20, "Maximum reviews to list")
	reviewsGetCmd.Flags().StringVarP(&reviewsSession, "session", "s", "", "Session ID (required)")
	if err := reviewsGetCmd.MarkFlagRequired("session"); err != nil {
		panic(fmt.Sprintf("failed to mark session flag as required: %v", err))
	}

	reviewsCmd.AddCommand(reviewsListCmd, reviewsGetCmd)
	rootCmd.AddCommand(reviewsCmd)
}

func runReviewsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	reviews, err := st.ListCodingReviews(ctx, reviewsUser, reviewsLimit)
	if err != nil {
		return fmt.Errorf("failed to list reviews for %s: %w", reviewsUser, err)
	}
	if cfg.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintReviews(reviews)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), "", reviews)
}

func runReviewsGet(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	review, err := st.GetCodingReview(ctx, reviewsUser, reviewsSession)
	if err != nil {
		return fmt.Errorf("failed to get review %s/%s: %w", reviewsUser, reviewsSession, err)
	}
	if cfg.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintJudgingResult(review.Result)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), "", review)
}
