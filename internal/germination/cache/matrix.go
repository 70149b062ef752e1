// Package cache provides a redis read-through cache for assembled matrix
// summaries. The matrix is recomputed on every read otherwise; during live
// data entry many analysts poll the same test, so a short-TTL cache absorbs
// the hot reads. Cache failures degrade to direct assembly and are never
// surfaced to callers.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"seedlab/internal/germination/models"
)

const defaultTTL = 15 * time.Second

// MatrixCache stores serialized matrix summaries keyed by test ID.
type MatrixCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMatrixCache(client *redis.Client, ttl time.Duration) *MatrixCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MatrixCache{client: client, ttl: ttl}
}

func key(testID uuid.UUID) string {
	return "germinacion:matriz:" + testID.String()
}

// Get returns the cached summary, or (nil, nil) on a miss.
func (c *MatrixCache) Get(ctx context.Context, testID uuid.UUID) (*models.MatrixSummary, error) {
	raw, err := c.client.Get(ctx, key(testID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	summary := &models.MatrixSummary{}
	if err := json.Unmarshal(raw, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// Set stores the summary with the configured TTL.
func (c *MatrixCache) Set(ctx context.Context, summary *models.MatrixSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(summary.TestID), raw, c.ttl).Err()
}

// Invalidate drops the cached summary for a test. Called after every write.
func (c *MatrixCache) Invalidate(ctx context.Context, testID uuid.UUID) error {
	return c.client.Del(ctx, key(testID)).Err()
}
