package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"ecommerce-backend/internal/shared/utils"
)

type clientIPKey struct{}

const ContextClientIPKey = "client_ip"

// ClientIP extract IP thật của client (X-Forwarded-For, X-Real-IP, RemoteAddr)
// và inject vào gin context lẫn request context cho service dùng
//
//	router.Use(middleware.ClientIP())
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.ExtractClientIP(c)

		c.Set(ContextClientIPKey, clientIP)
		ctx := context.WithValue(c.Request.Context(), clientIPKey{}, clientIP)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ClientIPFromContext - rỗng nếu middleware chưa chạy
func ClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}
