package middleware

import (
	"github.com/gin-gonic/gin"
)

const ContextLanguageKey = "lang"

// PreferredLanguage ghi đè Accept-Language bằng preferred_language của user
// Phải đứng sau Authenticate, không có user thì giữ nguyên header
func PreferredLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")
		if u, ok := CurrentUser(c); ok && u.PreferredLanguage != "" {
			lang = string(u.PreferredLanguage)
			c.Request.Header.Set("Accept-Language", lang)
		}
		c.Set(ContextLanguageKey, lang)
		c.Next()
	}
}
