package auth

import (
	"context"
	"time"

	"ecommerce-backend/internal/domains/token"
	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/pkg/jwt"
)

// Service - business logic của /auth
type Service interface {
	Signup(ctx context.Context, req SignupRequest) error
	ResendConfirmEmail(ctx context.Context, req EmailRequest) error
	ConfirmEmail(ctx context.Context, req ConfirmEmailRequest) error
	Login(ctx context.Context, req LoginRequest) (*token.Credentials, error)

	// Refresh thu hồi jti của refresh token đang dùng rồi cấp credentials mới
	Refresh(ctx context.Context, u *user.User, claims *jwt.Claims) (*token.Credentials, error)
	Logout(ctx context.Context, claims *jwt.Claims) error

	ForgotPassword(ctx context.Context, req EmailRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	SweepExpiredOtps(ctx context.Context, now time.Time) (int64, error)
}
