package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-backend/internal/domains/token"
	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/internal/infrastructure/metrics"
	"ecommerce-backend/pkg/jwt"
)

type fakeDecoder struct {
	token.Service
	user *user.User
	err  error
	typ  jwt.TokenType
}

func (f *fakeDecoder) Decode(_ context.Context, authorization string, typ jwt.TokenType) (*user.User, *jwt.Claims, error) {
	f.typ = typ
	if f.err != nil {
		return nil, nil, f.err
	}
	if authorization == "" {
		return nil, nil, token.ErrMissingAuthorization
	}
	return f.user, &jwt.Claims{UserID: f.user.ID.String(), Role: string(f.user.Role), Type: typ}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	code, _ := body["code"].(string)
	return code
}

// ========================================
// AUTH
// ========================================

func TestAuthenticate(t *testing.T) {
	u := &user.User{ID: uuid.New(), Role: user.RoleUser, PreferredLanguage: user.LanguageAR}
	decoder := &fakeDecoder{user: u}

	r := gin.New()
	r.GET("/me", Authenticate(decoder, jwt.TokenAccess), PreferredLanguage(), func(c *gin.Context) {
		got, ok := CurrentUser(c)
		require.True(t, ok)
		claims, ok := CurrentClaims(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{
			"id":   got.ID.String(),
			"type": string(claims.Type),
			"lang": c.GetHeader("Accept-Language"),
		})
	})

	t.Run("missing header", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("authenticated", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/me", map[string]string{
			"Authorization":   "Bearer x",
			"Accept-Language": "EN",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), u.ID.String())
		assert.Contains(t, w.Body.String(), `"lang":"AR"`)
		assert.Equal(t, jwt.TokenAccess, decoder.typ)
	})

	t.Run("decoder error", func(t *testing.T) {
		decoder.err = token.ErrRevokedToken
		defer func() { decoder.err = nil }()

		w := perform(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	admin := &user.User{ID: uuid.New(), Role: user.RoleAdmin}
	customer := &user.User{ID: uuid.New(), Role: user.RoleUser}

	build := func(u *user.User) *gin.Engine {
		r := gin.New()
		r.POST("/brand",
			Authenticate(&fakeDecoder{user: u}, jwt.TokenAccess),
			RequireRoles(user.RoleAdmin),
			func(c *gin.Context) { c.Status(http.StatusCreated) },
		)
		return r
	}

	w := perform(build(admin), http.MethodPost, "/brand", map[string]string{"Authorization": "System x"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = perform(build(customer), http.MethodPost, "/brand", map[string]string{"Authorization": "Bearer x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "NOT_AUTHORIZED", errorCode(t, w))
}

func TestRequireRoles_WithoutAuthenticate(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireRoles(user.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ========================================
// REQUEST ID / CLIENT IP
// ========================================

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestIDKey)) })

	w := perform(r, http.MethodGet, "/", nil)
	generated := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	w = perform(r, http.MethodGet, "/", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestClientIP(t *testing.T) {
	r := gin.New()
	r.Use(ClientIP())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, ClientIPFromContext(c.Request.Context()))
	})

	w := perform(r, http.MethodGet, "/", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"})
	assert.Equal(t, "203.0.113.7", w.Body.String())
}

// ========================================
// RECOVERY / TIMEOUT
// ========================================

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := perform(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", errorCode(t, w))
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(20 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	r.GET("/fast", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/slow", nil)
	assert.Equal(t, http.StatusRequestTimeout, w.Code)
	assert.Equal(t, "REQUEST_TIMEOUT", errorCode(t, w))

	w = perform(r, http.MethodGet, "/fast", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// ========================================
// CORS
// ========================================

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://shop.test"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodOptions, "/", map[string]string{"Origin": "https://shop.test"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "Authorization"))

	w = perform(r, http.MethodOptions, "/", map[string]string{"Origin": "https://evil.test"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(r, http.MethodGet, "/", map[string]string{"Origin": "https://evil.test"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_AllowAll(t *testing.T) {
	r := gin.New()
	r.Use(CORS(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/", map[string]string{"Origin": "https://any.test"})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

// ========================================
// RATE LIMIT / METRICS
// ========================================

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2)

	r := gin.New()
	r.Use(limiter.Middleware())
	r.POST("/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := perform(r, http.MethodPost, "/auth/login", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := perform(r, http.MethodPost, "/auth/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// IP khác có bucket riêng
	assert.True(t, limiter.Allow("198.51.100.9"))
}

func TestIPRateLimiter_SweepsIdleVisitorsOncePerInterval(t *testing.T) {
	limiter := NewIPRateLimiter(10, 1)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	limiter.now = func() time.Time { return now }

	for i := 0; i < sweepThreshold; i++ {
		limiter.Allow(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	require.Len(t, limiter.visitors, sweepThreshold)

	// vượt ngưỡng → quét, nhưng chưa ai idle
	now = start.Add(limiter.idleTTL - 10*time.Second)
	limiter.Allow("198.51.100.1")
	require.Len(t, limiter.visitors, sweepThreshold+1)
	assert.Equal(t, now, limiter.lastSweep)

	// visitor cũ đã idle nhưng chưa hết sweepInterval → không quét
	now = start.Add(limiter.idleTTL + 20*time.Second)
	limiter.Allow("198.51.100.2")
	assert.Len(t, limiter.visitors, sweepThreshold+2)

	// hết interval → quét một lần, chỉ còn các visitor mới
	now = now.Add(sweepInterval)
	limiter.Allow("198.51.100.3")
	assert.Len(t, limiter.visitors, 3)
	assert.Equal(t, now, limiter.lastSweep)
}

func TestMetrics(t *testing.T) {
	m := metrics.New("test")

	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/product/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	perform(r, http.MethodGet, "/product/"+uuid.NewString(), nil)
	perform(r, http.MethodGet, "/product/"+uuid.NewString(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/product/:id", "200")))
}
