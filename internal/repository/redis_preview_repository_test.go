package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tv-instance-generator/internal/models"
	appErrors "github.com/noah-isme/tv-instance-generator/pkg/errors"
)

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisPreviewRepositoryWithoutClient(t *testing.T) {
	repo := NewRedisPreviewRepository(nil, nil)
	ctx := context.Background()

	require.Error(t, repo.Save(ctx, &models.Preview{ID: "p-1"}, time.Minute))
	_, err := repo.Get(ctx, "p-1")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.NoError(t, repo.Delete(ctx, "p-1"))
	assert.NoError(t, repo.Close())
}

func TestRedisPreviewRepositorySurfacesConnectionErrors(t *testing.T) {
	repo := NewRedisPreviewRepository(unreachableClient(), nil)
	defer repo.Close()
	ctx := context.Background()

	err := repo.Save(ctx, &models.Preview{ID: "p-1"}, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), previewKey("p-1"))

	_, err = repo.Get(ctx, "p-1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, appErrors.ErrNotFound))
}
