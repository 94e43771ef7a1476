package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/tv-instance-generator/internal/models"
	appErrors "github.com/noah-isme/tv-instance-generator/pkg/errors"
)

const previewKeyPrefix = "tvgen:preview:"

// RedisPreviewRepository stores previews as JSON values with a Redis TTL so
// several API replicas can serve the same preview ids.
type RedisPreviewRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisPreviewRepository constructs a Redis backed preview store.
func NewRedisPreviewRepository(client *redis.Client, logger *zap.Logger) *RedisPreviewRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPreviewRepository{client: client, logger: logger}
}

func previewKey(id string) string {
	return previewKeyPrefix + id
}

// Save marshals the preview and stores it with ttl.
func (r *RedisPreviewRepository) Save(ctx context.Context, preview *models.Preview, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis preview store not configured")
	}
	if ttl > 0 {
		preview.ExpiresAt = time.Now().UTC().Add(ttl)
	}

	payload, err := json.Marshal(preview)
	if err != nil {
		return fmt.Errorf("marshal preview %s: %w", preview.ID, err)
	}

	if err := r.client.Set(ctx, previewKey(preview.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", previewKey(preview.ID), err)
	}
	return nil
}

// Get loads a preview. Missing keys map to ErrNotFound.
func (r *RedisPreviewRepository) Get(ctx context.Context, id string) (*models.Preview, error) {
	if r.client == nil {
		return nil, appErrors.ErrNotFound
	}

	raw, err := r.client.Get(ctx, previewKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", previewKey(id), err)
	}

	var preview models.Preview
	if err := json.Unmarshal(raw, &preview); err != nil {
		r.logger.Warn("dropping unreadable preview", zap.String("preview_id", id), zap.Error(err))
		_ = r.client.Del(ctx, previewKey(id)).Err()
		return nil, appErrors.ErrNotFound
	}
	return &preview, nil
}

// Delete removes the preview key.
func (r *RedisPreviewRepository) Delete(ctx context.Context, id string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, previewKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", previewKey(id), err)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (r *RedisPreviewRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
