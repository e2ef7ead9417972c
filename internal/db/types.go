package db

import (
	"time"

	"github.com/google/uuid"
)

// Listing limits for coding reviews.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// CodingReviewRow is a row of the coding_reviews table. Result holds the
// JSON-encoded judging result.
type CodingReviewRow struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"user_id"`
	SessionID   string    `json:"session_id"`
	ProblemSlug string    `json:"problem_slug"`
	Overall     float64   `json:"overall"`
	Degraded    bool      `json:"degraded"`
	Result      []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// normalizeLimit applies the default and maximum list limits.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
