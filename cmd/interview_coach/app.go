package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/config"
	"github.com/jonathan/interview-coach/internal/judge"
	"github.com/jonathan/interview-coach/internal/judge/llmjudge"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/store"
	"github.com/jonathan/interview-coach/internal/style"
	"github.com/jonathan/interview-coach/internal/types"
)

// loadConfig reads --config, applies flag overrides (only flags explicitly set),
// fills defaults and environment fallbacks, then validates.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		slog.Debug("loaded config", "path", rootConfigPath)
	}

	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Provider = rootProvider
	}
	if flags.Changed("api-key") {
		cfg.APIKey = rootAPIKey
	}
	if flags.Changed("store") {
		cfg.Store = rootStore
	}
	if flags.Changed("verbose") {
		cfg.Verbose = rootVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Default())
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLLMClient builds the provider client wrapped with retries.
func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s environment variable or --api-key flag is required", config.APIKeyEnvVar(cfg.Provider))
	}
	provider, err := llm.ParseProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	llmCfg := llm.DefaultConfigFor(provider)
	for tier, model := range map[llm.ModelTier]string{
		llm.TierLite:     cfg.Models.Lite,
		llm.TierStandard: cfg.Models.Standard,
		llm.TierAdvanced: cfg.Models.Advanced,
	} {
		if model != "" {
			llmCfg = llmCfg.WithModel(tier, model)
		}
	}
	llmCfg.BaseURL = cfg.BaseURL

	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	retry := llm.DefaultRetryConfig()
	retry.MaxAttempts = cfg.RetryAttempts
	return llm.WithRetry(client, retry), nil
}

// styleRater rates python with pylint and everything else neutrally.
func styleRater(cfg config.Config) judge.StyleRater {
	return style.ForLanguages(map[string]style.Rater{
		"python": style.NewPylint(cfg.PylintPath),
	})
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	st, err := store.Open(ctx, store.Options{
		Backend:     cfg.Store,
		DatabaseURL: cfg.DatabaseURL,
		RedisURL:    cfg.RedisURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	return st, nil
}

// app holds the wired collaborators for commands that call the LLM.
type app struct {
	cfg    config.Config
	client llm.Client
	store  store.Store
	deps   judge.Deps
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	collab := llmjudge.New(client, llmjudge.WithTimeout(cfg.Timeout()))
	return &app{
		cfg:    cfg,
		client: client,
		store:  st,
		deps: judge.Deps{
			Complexity:   collab,
			Reviewer:     collab,
			Style:        styleRater(cfg),
			Conversation: collab,
			Practice:     collab,
			Store:        st,
		},
	}, nil
}

func (a *app) judge(opts ...judge.Option) *judge.Judge {
	base := []judge.Option{judge.WithWeights(a.cfg.EffectiveWeights())}
	return judge.New(a.deps, append(base, opts...)...)
}

func (a *app) Close() error {
	return errors.Join(a.store.Close(), a.client.Close())
}

// readSession loads a session JSON file and validates it.
func readSession(path string) (*types.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file %s: %w", path, err)
	}
	var s types.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session %s: %w", path, err)
	}
	return &s, nil
}

// readSessions loads every *.json file of a directory, or a file holding a
// JSON array of sessions.
func readSessions(path string) ([]*types.Session, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions %s: %w", path, err)
	}

	if info.IsDir() {
		matches, err := filepath.Glob(filepath.Join(path, "*.json"))
		if err != nil {
			return nil, err
		}
		slices.Sort(matches)
		sessions := make([]*types.Session, 0, len(matches))
		for _, m := range matches {
			s, err := readSession(m)
			if err != nil {
				return nil, err
			}
			sessions = append(sessions, s)
		}
		return sessions, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions %s: %w", path, err)
	}
	var sessions []*types.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("failed to parse sessions %s (expected a JSON array): %w", path, err)
	}
	for i, s := range sessions {
		if s == nil {
			return nil, fmt.Errorf("session %d in %s is null", i, path)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid session %d in %s: %w", i, path, err)
		}
	}
	return sessions, nil
}

// writeJSON writes v indented to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// safeName turns a session id into a file name.
func safeName(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, id)
}
