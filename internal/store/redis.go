package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/interview-coach/internal/types"
)

const keyPrefix = "coding_review"

// Redis stores each review as a JSON string and indexes a user's sessions in a
// sorted set scored by creation time.
type Redis struct {
	client redis.UniversalClient
	now    func() time.Time
}

// OpenRedis connects using a redis:// URL.
func OpenRedis(ctx context.Context, redisURL string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedis(client), nil
}

// NewRedis wraps an existing client.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client, now: time.Now}
}

func reviewKey(userID, sessionID string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, sessionID)
}

func indexKey(userID string) string {
	return fmt.Sprintf("%s:%s:index", keyPrefix, userID)
}

// SaveCodingReview writes the review and its index entry in one transaction.
// Re-saving a session keeps its original creation time.
func (r *Redis) SaveCodingReview(ctx context.Context, userID, sessionID string, result *types.JudgingResult) (string, error) {
	if err := validateKey(userID, sessionID); err != nil {
		return "", fmt.Errorf("failed to save coding review: %w", err)
	}
	if result == nil {
		return "", fmt.Errorf("failed to save coding review %s: nil result", sessionID)
	}

	created := r.now().UTC()
	if existing, err := r.GetCodingReview(ctx, userID, sessionID); err == nil {
		created = existing.CreatedAt
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	content, err := json.Marshal(types.CodingReview{UserID: userID, SessionID: sessionID, Result: result, CreatedAt: created})
	if err != nil {
		return "", fmt.Errorf("failed to marshal coding review: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, reviewKey(userID, sessionID), content, 0)
		pipe.ZAdd(ctx, indexKey(userID), redis.Z{Score: float64(created.UnixMilli()), Member: sessionID})
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to save coding review %s: %w", sessionID, err)
	}
	return Confirmation(sessionID), nil
}

// GetCodingReview returns the review for a session.
func (r *Redis) GetCodingReview(ctx context.Context, userID, sessionID string) (*types.CodingReview, error) {
	content, err := r.client.Get(ctx, reviewKey(userID, sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get coding review: %w", err)
	}
	return decodeReview(content)
}

// ListCodingReviews returns a user's reviews, newest first. A limit <= 0 returns all.
func (r *Redis) ListCodingReviews(ctx context.Context, userID string, limit int) ([]types.CodingReview, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	sessions, err := r.client.ZRevRange(ctx, indexKey(userID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list coding reviews: %w", err)
	}
	if len(sessions) == 0 {
		return []types.CodingReview{}, nil
	}

	keys := make([]string, len(sessions))
	for i, s := range sessions {
		keys[i] = reviewKey(userID, s)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list coding reviews: %w", err)
	}

	reviews := make([]types.CodingReview, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// Index entry without a review; skip it.
			continue
		}
		review, err := decodeReview([]byte(s))
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	return reviews, nil
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.client.Close()
}

func decodeReview(content []byte) (*types.CodingReview, error) {
	var review types.CodingReview
	if err := json.Unmarshal(content, &review); err != nil {
		return nil, fmt.Errorf("failed to decode coding review: %w", err)
	}
	return &review, nil
}
