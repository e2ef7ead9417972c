// Package main provides the interview_coach CLI: coding-interview judging from the
// command line and as an HTTP API.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interview_coach",
	Short: "Coding interview judge",
	Long: `interview_coach scores a mock coding interview: correctness, efficiency, robustness
and style of the submitted code, plus the quality of the conversation, and recommends
what to practice next.

Configuration can be loaded from a JSON or YAML file using --config. Command-line
flags override config file values.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

var (
	rootConfigPath string
	rootVerbose    bool
	rootProvider   string
	rootAPIKey     string
	rootStore      string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootConfigPath, "config", "", "Path to config file (.json, .yaml or .yml)")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "Debug logging and human-readable output")
	flags.StringVar(&rootProvider, "provider", "", "LLM provider: gemini, openai or anthropic")
	flags.StringVar(&rootAPIKey, "api-key", "", "LLM API key (defaults to the provider's env var, e.g. GEMINI_API_KEY)")
	flags.StringVar(&rootStore, "store", "", "Review storage: memory, postgres or redis")
}

// setupLogging installs a text slog handler on stderr.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if rootVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
