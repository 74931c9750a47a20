package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ecommerce-backend/internal/shared/apperror"
	"ecommerce-backend/internal/shared/response"
)

// Recovery bắt panic, log stack và trả 500 theo error envelope chung
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("request_id", c.GetString(ContextRequestIDKey)).
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("🔥 Panic recovered")

				if c.Writer.Written() {
					c.Abort()
					return
				}
				response.Error(c, apperror.Internal(fmt.Errorf("panic: %v", rec)))
			}
		}()

		c.Next()
	}
}
