package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"ecommerce-backend/internal/shared/apperror"
	"ecommerce-backend/internal/shared/response"
)

const (
	// sweepThreshold - số visitor tối thiểu trước khi bắt đầu dọn
	sweepThreshold = 1024
	sweepInterval  = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter - token bucket riêng cho từng IP
type IPRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rps       rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

// Allow - đồng thời dọn các visitor idle quá idleTTL, tối đa một lần mỗi sweepInterval
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	if len(l.visitors) > sweepThreshold && now.Sub(l.lastSweep) >= sweepInterval {
		l.sweep(now)
	}

	return v.limiter.AllowN(now, 1)
}

func (l *IPRateLimiter) sweep(now time.Time) {
	l.lastSweep = now
	for key, other := range l.visitors {
		if now.Sub(other.lastSeen) > l.idleTTL {
			delete(l.visitors, key)
		}
	}
}

// Middleware - 429 khi IP vượt quota
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.GetString(ContextClientIPKey)
		if ip == "" {
			ip = c.ClientIP()
		}

		if !l.Allow(ip) {
			response.Error(c, apperror.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
