package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"ecommerce-backend/internal/shared/apperror"
	"ecommerce-backend/internal/shared/response"
)

// Timeout gắn deadline vào request context
// Handler chạy quá hạn mà chưa ghi response → 408 REQUEST_TIMEOUT
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if c.Writer.Written() {
			return
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			response.Error(c, apperror.ErrRequestTimeout)
		}
	}
}
