package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"

	"ecommerce-backend/internal/domains/token"
	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/internal/shared/apperror"
	"ecommerce-backend/internal/shared/response"
	"ecommerce-backend/pkg/jwt"
)

// Context keys set bởi Authenticate
const (
	ContextUserKey   = "user"
	ContextClaimsKey = "claims"
)

// ErrNotAuthorized - role không nằm trong danh sách cho phép
var ErrNotAuthorized = apperror.New(apperror.KindForbidden, "NOT_AUTHORIZED", "Not authorized account")

// Authenticate decode Authorization header ("Bearer|System <token>") với token type cho trước
// Thành công → set user + claims vào context
func Authenticate(decoder token.Service, typ jwt.TokenType) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Decode: verify signature, type, revoked jti, user, change_credentials_time
		u, claims, err := decoder.Decode(c.Request.Context(), c.GetHeader("Authorization"), typ)
		if err != nil {
			response.Error(c, err)
			return
		}

		// 2. Set vào context cho handler phía sau
		c.Set(ContextUserKey, u)
		c.Set(ContextClaimsKey, claims)

		c.Next()
	}
}

// RequireRoles - phải đứng sau Authenticate
func RequireRoles(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			response.Error(c, apperror.Unauthorized("Missing authentication"))
			return
		}
		if !slices.Contains(roles, u.Role) {
			response.Error(c, ErrNotAuthorized)
			return
		}
		c.Next()
	}
}

// CurrentUser lấy user đã authenticate
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok && u != nil
}

// CurrentClaims lấy claims của token đang dùng
func CurrentClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok && claims != nil
}

// MustCurrentUser - ghi 401 nếu chưa authenticate, handler return khi ok == false
func MustCurrentUser(c *gin.Context) (*user.User, bool) {
	u, ok := CurrentUser(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Missing authentication"))
		return nil, false
	}
	return u, true
}
