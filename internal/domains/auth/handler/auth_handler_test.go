package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-backend/internal/domains/auth"
	"ecommerce-backend/internal/domains/token"
	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/internal/shared/middleware"
	"ecommerce-backend/pkg/jwt"
)

type stubService struct {
	auth.Service
	signupErr error
	loginErr  error
	signups   []auth.SignupRequest
	refreshed *jwt.Claims
	loggedOut *jwt.Claims
}

func (s *stubService) Signup(_ context.Context, req auth.SignupRequest) error {
	s.signups = append(s.signups, req)
	return s.signupErr
}

func (s *stubService) Login(_ context.Context, _ auth.LoginRequest) (*token.Credentials, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &token.Credentials{Scheme: jwt.SchemeBearer, AccessToken: "a", RefreshToken: "r"}, nil
}

func (s *stubService) Refresh(_ context.Context, _ *user.User, claims *jwt.Claims) (*token.Credentials, error) {
	s.refreshed = claims
	return &token.Credentials{Scheme: jwt.SchemeBearer, AccessToken: "a2", RefreshToken: "r2"}, nil
}

func (s *stubService) Logout(_ context.Context, claims *jwt.Claims) error {
	s.loggedOut = claims
	return nil
}

type stubDecoder struct {
	token.Service
	user *user.User
}

func (d *stubDecoder) Decode(_ context.Context, header string, typ jwt.TokenType) (*user.User, *jwt.Claims, error) {
	if header == "" {
		return nil, nil, token.ErrMissingAuthorization
	}
	claims := &jwt.Claims{UserID: d.user.ID.String(), Type: typ}
	claims.ID = uuid.NewString()
	return d.user, claims, nil
}

func setup(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc)
	decoder := &stubDecoder{user: &user.User{ID: uuid.New(), Role: user.RoleUser}}

	r := gin.New()
	g := r.Group("/auth")
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.POST("/refresh-token", middleware.Authenticate(decoder, jwt.TokenRefresh), h.RefreshToken)
	g.POST("/logout", middleware.Authenticate(decoder, jwt.TokenAccess), h.Logout)
	return r
}

func postJSON(r http.Handler, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignup(t *testing.T) {
	svc := &stubService{}
	r := setup(svc)

	w := postJSON(r, "/auth/signup", `{"username":"Sara Ali","email":"sara@shop.test","password":"Str0ng!pass","confirmPassword":"Str0ng!pass"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.signups, 1)
	assert.Equal(t, "sara@shop.test", svc.signups[0].Email)
}

func TestSignup_ValidationFailure(t *testing.T) {
	svc := &stubService{}
	r := setup(svc)

	w := postJSON(r, "/auth/signup", `{"username":"S","email":"nope","password":"weak","confirmPassword":"other"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.signups)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "username")
}

func TestSignup_Conflict(t *testing.T) {
	svc := &stubService{signupErr: auth.ErrEmailExists}
	r := setup(svc)

	w := postJSON(r, "/auth/signup", `{"username":"Sara Ali","email":"sara@shop.test","password":"Str0ng!pass","confirmPassword":"Str0ng!pass"}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	r := setup(&stubService{})

	w := postJSON(r, "/auth/login", `{"email":"sara@shop.test","password":"Str0ng!pass"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"credentials"`)
	assert.Contains(t, w.Body.String(), `"accessToken":"a"`)

	r = setup(&stubService{loginErr: auth.ErrAccountNotFound})
	w = postJSON(r, "/auth/login", `{"email":"sara@shop.test","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Fail to find matching account")
}

func TestRefreshAndLogout(t *testing.T) {
	svc := &stubService{}
	r := setup(svc)

	w := postJSON(r, "/auth/refresh-token", ``, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/auth/refresh-token", ``, map[string]string{"Authorization": "Bearer refresh"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.refreshed)
	assert.Equal(t, jwt.TokenRefresh, svc.refreshed.Type)

	w = postJSON(r, "/auth/logout", ``, map[string]string{"Authorization": "Bearer access"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.loggedOut)
	assert.Equal(t, jwt.TokenAccess, svc.loggedOut.Type)
}
