package token

import (
	"context"
	"time"

	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/pkg/jwt"
)

// Service - issuer/verifier của login credentials
type Service interface {
	IssueLoginCredentials(u *user.User) (*Credentials, error)

	// Decode verify "<Scheme> <token>" và trả về user đang đăng nhập
	// Mọi lỗi đều là Unauthorized
	Decode(ctx context.Context, authorization string, typ jwt.TokenType) (*user.User, *jwt.Claims, error)

	// Revoke thu hồi jti, expires_at = iat + refresh lifetime
	Revoke(ctx context.Context, claims *jwt.Claims) error

	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}
