package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	categoryRepo "ecommerce-backend/internal/domains/category/repository"
	infraCache "ecommerce-backend/internal/infrastructure/cache"
)

func TestInvalidateCategories(t *testing.T) {
	mr := miniredis.RunT(t)
	redisCache := infraCache.NewRedisCache(infraCache.NewRedisClient(mr.Addr(), "", 0))
	t.Cleanup(func() { _ = redisCache.Close() })

	r := &postgresRepository{cache: redisCache}
	ctx := context.Background()

	detached := []uuid.UUID{uuid.New(), uuid.New()}
	untouched := uuid.New()
	for _, id := range append(detached, untouched) {
		require.NoError(t, redisCache.Set(ctx, categoryRepo.CacheKey(id), map[string]string{"id": id.String()}, time.Minute))
	}

	r.invalidateCategories(ctx, detached)

	for _, id := range detached {
		assert.False(t, mr.Exists(categoryRepo.CacheKey(id)))
	}
	assert.True(t, mr.Exists(categoryRepo.CacheKey(untouched)))

	// không có category nào bị gỡ thì không đụng cache
	r.invalidateCategories(ctx, nil)
	assert.True(t, mr.Exists(categoryRepo.CacheKey(untouched)))
}
