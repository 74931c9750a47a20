package auth

import (
	"time"

	"github.com/google/uuid"

	"ecommerce-backend/internal/shared"
)

// Otp - mã 6 số đã bcrypt, hết hạn sau OTP_TTL (mặc định 2 phút)
type Otp struct {
	ID        uuid.UUID      `json:"id"`
	Code      string         `json:"-"`
	Type      shared.OtpType `json:"type"`
	CreatedBy uuid.UUID      `json:"createdBy"`
	ExpiresAt time.Time      `json:"expiresAt"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (o *Otp) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// OtpLength - số chữ số của OTP
const OtpLength = 6
