package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/interview-coach/internal/types"
)

// Memory keeps reviews in process. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	reviews map[string]map[string]types.CodingReview
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		reviews: make(map[string]map[string]types.CodingReview),
		now:     time.Now,
	}
}

// SaveCodingReview stores the result, replacing any earlier one for the session.
func (m *Memory) SaveCodingReview(_ context.Context, userID, sessionID string, result *types.JudgingResult) (string, error) {
	if err := validateKey(userID, sessionID); err != nil {
		return "", fmt.Errorf("failed to save coding review: %w", err)
	}
	if result == nil {
		return "", fmt.Errorf("failed to save coding review %s: nil result", sessionID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	sessions, ok := m.reviews[userID]
	if !ok {
		sessions = make(map[string]types.CodingReview)
		m.reviews[userID] = sessions
	}
	created := m.now().UTC()
	if existing, ok := sessions[sessionID]; ok {
		created = existing.CreatedAt
	}
	r := *result
	sessions[sessionID] = types.CodingReview{UserID: userID, SessionID: sessionID, Result: &r, CreatedAt: created}
	return Confirmation(sessionID), nil
}

// GetCodingReview returns the review for a session.
func (m *Memory) GetCodingReview(_ context.Context, userID, sessionID string) (*types.CodingReview, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	review, ok := m.reviews[userID][sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return &review, nil
}

// ListCodingReviews returns a user's reviews, newest first. A limit <= 0 returns all.
func (m *Memory) ListCodingReviews(_ context.Context, userID string, limit int) ([]types.CodingReview, error) {
	m.mu.RLock()
	reviews := make([]types.CodingReview, 0, len(m.reviews[userID]))
	for _, r := range m.reviews[userID] {
		reviews = append(reviews, r)
	}
	m.mu.RUnlock()

	sort.Slice(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		}
		return reviews[i].SessionID < reviews[j].SessionID
	})
	if limit > 0 && len(reviews) > limit {
		reviews = reviews[:limit]
	}
	return reviews, nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
