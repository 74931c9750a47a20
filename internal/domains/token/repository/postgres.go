package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ecommerce-backend/internal/domains/token"
	"ecommerce-backend/pkg/cache"
	"ecommerce-backend/pkg/logger"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
	now   func() time.Time
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) token.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
		now:   time.Now,
	}
}

// Revoke - idempotent, revoke cùng jti hai lần không lỗi
func (r *postgresRepository) Revoke(ctx context.Context, rt token.RevokedToken) error {
	const query = `
		INSERT INTO revoked_tokens (jti, expires_at, created_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (jti) DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, rt.JTI, rt.ExpiresAt, rt.CreatedBy); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	// Mirror lên Redis, key tự hết hạn cùng lúc với record
	if ttl := rt.ExpiresAt.Sub(r.now()); ttl > 0 {
		if err := r.cache.Set(ctx, token.RevokedCacheKey(rt.JTI.String()), true, ttl); err != nil {
			logger.Warn("revoked token mirror failed", map[string]interface{}{
				"jti":   rt.JTI.String(),
				"error": err.Error(),
			})
		}
	}
	return nil
}

func (r *postgresRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	// STEP 1: REDIS
	found, err := r.cache.Exists(ctx, token.RevokedCacheKey(jti))
	if err == nil && found {
		return true, nil
	}

	// STEP 2: TABLE - Redis lỗi hoặc miss vẫn phải check DB
	var exists bool
	err = r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = $1::uuid)`, jti,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired revoked tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
