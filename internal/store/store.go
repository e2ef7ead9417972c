// Package store persists judging results keyed by user and session.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/interview-coach/internal/types"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// ErrNotFound is returned when no review exists for a session.
var ErrNotFound = errors.New("coding review not found")

// Store saves and reads coding reviews.
type Store interface {
	SaveCodingReview(ctx context.Context, userID, sessionID string, result *types.JudgingResult) (string, error)
	GetCodingReview(ctx context.Context, userID, sessionID string) (*types.CodingReview, error)
	ListCodingReviews(ctx context.Context, userID string, limit int) ([]types.CodingReview, error)
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend     string
	DatabaseURL string
	RedisURL    string
}

// Open creates the configured backend. An empty backend means memory.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendPostgres:
		if opts.DatabaseURL == "" {
			return nil, errors.New("postgres store requires a database URL")
		}
		return OpenPostgres(ctx, opts.DatabaseURL)
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, errors.New("redis store requires a redis URL")
		}
		return OpenRedis(ctx, opts.RedisURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q (expected memory, postgres or redis)", opts.Backend)
	}
}

// Confirmation is the message returned after a successful save.
func Confirmation(sessionID string) string {
	return "Coding review saved successfully for session " + sessionID
}

func validateKey(userID, sessionID string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New("user id is required")
	}
	if strings.TrimSpace(sessionID) == "" {
		return errors.New("session id is required")
	}
	return nil
}
