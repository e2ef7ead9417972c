package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/interview-coach/internal/db"
	"github.com/jonathan/interview-coach/internal/types"
)

// Postgres stores reviews in the coding_reviews table.
type Postgres struct {
	db *db.DB
}

// OpenPostgres connects to PostgreSQL and ensures the schema exists.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return NewPostgres(database), nil
}

// NewPostgres wraps an open database.
func NewPostgres(database *db.DB) *Postgres {
	return &Postgres{db: database}
}

// SaveCodingReview upserts the result for the session.
func (p *Postgres) SaveCodingReview(ctx context.Context, userID, sessionID string, result *types.JudgingResult) (string, error) {
	if err := validateKey(userID, sessionID); err != nil {
		return "", fmt.Errorf("failed to save coding review: %w", err)
	}
	if _, err := p.db.UpsertCodingReview(ctx, userID, sessionID, result); err != nil {
		return "", err
	}
	return Confirmation(sessionID), nil
}

// GetCodingReview returns the review for a session.
func (p *Postgres) GetCodingReview(ctx context.Context, userID, sessionID string) (*types.CodingReview, error) {
	review, err := p.db.GetCodingReview(ctx, userID, sessionID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNotFound
	}
	return review, err
}

// ListCodingReviews returns a user's most recent reviews.
func (p *Postgres) ListCodingReviews(ctx context.Context, userID string, limit int) ([]types.CodingReview, error) {
	return p.db.ListCodingReviews(ctx, userID, limit)
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
