package token

import (
	"time"

	"github.com/google/uuid"

	"ecommerce-backend/pkg/jwt"
)

// RevokedToken - một record trong revoked_tokens
// Token có jti trùng sẽ bị từ chối dù signature vẫn hợp lệ
type RevokedToken struct {
	JTI       uuid.UUID `json:"jti"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedBy uuid.UUID `json:"createdBy"`
}

// Credentials - kết quả login/refresh trả về client
type Credentials struct {
	Scheme       jwt.Scheme `json:"scheme"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

// RevokedCacheKey - mirror của revoked_tokens trên Redis
func RevokedCacheKey(jti string) string {
	return "revoked:" + jti
}
