package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// quietPaths - probe/scrape, chỉ log ở debug (so khớp suffix vì có API_PREFIX)
var quietPaths = []string{"/health", "/metrics"}

// Logger log mỗi request, level theo status code
// 5xx → error, 4xx → warn, còn lại → info
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()

		var event *zerolog.Event
		switch {
		case isQuiet(c) && status < 400:
			event = log.Debug()
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}

		if u, ok := CurrentUser(c); ok {
			event = event.Str("user_id", u.ID.String())
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.ByType(gin.ErrorTypePrivate).String())
		}

		event.
			Str("request_id", c.GetString(ContextRequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency_ms", time.Since(start)).
			Str("ip", c.GetString(ContextClientIPKey)).
			Int("size", c.Writer.Size()).
			Msg("HTTP Request")
	}
}

func isQuiet(c *gin.Context) bool {
	route := c.FullPath()
	for _, p := range quietPaths {
		if strings.HasSuffix(route, p) {
			return true
		}
	}
	return false
}
