package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/interview-coach/internal/types"
)

// ErrNotFound is returned when a coding review does not exist.
var ErrNotFound = errors.New("coding review not found")

// UpsertCodingReview stores a judging result keyed by (user_id, session_id),
// replacing any earlier result for the same session.
func (db *DB) UpsertCodingReview(ctx context.Context, userID, sessionID string, result *types.JudgingResult) (*CodingReviewRow, error) {
	if result == nil {
		return nil, fmt.Errorf("failed to save coding review %s: nil result", sessionID)
	}
	content, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal coding review: %w", err)
	}

	row := CodingReviewRow{
		UserID:      userID,
		SessionID:   sessionID,
		ProblemSlug: result.ProblemSlug,
		Overall:     result.Scores.Overall,
		Degraded:    result.IsDegraded(),
		Result:      content,
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO coding_reviews (id, user_id, session_id, problem_slug, overall, degraded, result)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, session_id) DO UPDATE
		 SET problem_slug = $4, overall = $5, degraded = $6, result = $7, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		uuid.New(), userID, sessionID, row.ProblemSlug, row.Overall, row.Degraded, content,
	).Scan(&row.ID, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save coding review %s: %w", sessionID, err)
	}
	return &row, nil
}

// GetCodingReview retrieves the review for one session. Returns ErrNotFound if
// there is none.
func (db *DB) GetCodingReview(ctx context.Context, userID, sessionID string) (*types.CodingReview, error) {
	var row CodingReviewRow
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, session_id, problem_slug, overall, degraded, result, created_at, updated_at
		 FROM coding_reviews WHERE user_id = $1 AND session_id = $2`,
		userID, sessionID,
	).Scan(&row.ID, &row.UserID, &row.SessionID, &row.ProblemSlug, &row.Overall, &row.Degraded,
		&row.Result, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get coding review: %w", err)
	}
	return row.Review()
}

// ListCodingReviews retrieves a user's most recent reviews, newest first.
func (db *DB) ListCodingReviews(ctx context.Context, userID string, limit int) ([]types.CodingReview, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, session_id, problem_slug, overall, degraded, result, created_at, updated_at
		 FROM coding_reviews WHERE user_id = $1
		 ORDER BY created_at DESC, session_id ASC LIMIT $2`,
		userID, normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list coding reviews: %w", err)
	}
	defer rows.Close()

	reviews := []types.CodingReview{}
	for rows.Next() {
		var row CodingReviewRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.SessionID, &row.ProblemSlug, &row.Overall, &row.Degraded,
			&row.Result, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan coding review: %w", err)
		}
		review, err := row.Review()
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list coding reviews: %w", err)
	}
	return reviews, nil
}

// DeleteCodingReview removes the review for one session.
func (db *DB) DeleteCodingReview(ctx context.Context, userID, sessionID string) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM coding_reviews WHERE user_id = $1 AND session_id = $2`, userID, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete coding review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Review decodes the row into a CodingReview.
func (r *CodingReviewRow) Review() (*types.CodingReview, error) {
	var result types.JudgingResult
	if err := json.Unmarshal(r.Result, &result); err != nil {
		return nil, fmt.Errorf("failed to decode coding review %s: %w", r.SessionID, err)
	}
	return &types.CodingReview{
		UserID:    r.UserID,
		SessionID: r.SessionID,
		Result:    &result,
		CreatedAt: r.CreatedAt,
	}, nil
}
