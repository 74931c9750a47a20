package token

import (
	"context"
	"time"
)

// Repository - revoked_tokens (PostgreSQL) + mirror trên Redis
type Repository interface {
	// Revoke insert record và set revoked:{jti} với TTL tới ExpiresAt
	Revoke(ctx context.Context, rt RevokedToken) error

	// IsRevoked check Redis trước, miss thì query bảng
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// DeleteExpired xoá record có expires_at < now, trả về số dòng đã xoá
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
