package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ecommerce-backend/internal/shared"
)

// OtpRepository - bảng otps
type OtpRepository interface {
	Create(ctx context.Context, otp *Otp) error

	// FindActive trả về OTP chưa hết hạn mới nhất của user theo type, nil nếu không có
	FindActive(ctx context.Context, userID uuid.UUID, typ shared.OtpType, now time.Time) (*Otp, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired - dùng cho sweep job
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
