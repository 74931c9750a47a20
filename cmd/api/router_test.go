package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"ecommerce-backend/internal/domains/token"
	"ecommerce-backend/internal/domains/user"
	userHandler "ecommerce-backend/internal/domains/user/handler"
	userService "ecommerce-backend/internal/domains/user/service"
	"ecommerce-backend/internal/domains/user/usertest"
	"ecommerce-backend/internal/infrastructure/storage"
	"ecommerce-backend/internal/infrastructure/storage/storagetest"
	"ecommerce-backend/pkg/container"
	"ecommerce-backend/pkg/jwt"
)

// staticDecoder - mọi token đều thuộc về một user cố định
type staticDecoder struct {
	token.Service
	user *user.User
}

func (d staticDecoder) Decode(context.Context, string, jwt.TokenType) (*user.User, *jwt.Claims, error) {
	return d.user, &jwt.Claims{UserID: d.user.ID.String(), Role: string(d.user.Role)}, nil
}

func userRouter(u *user.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := userService.NewUserService(usertest.NewMemory(u), storagetest.NewMemory(),
		storage.NewImageValidator(5<<20, 0), 2<<20, nil)
	c := &container.Container{
		TokenService: staticDecoder{user: u},
		UserHandler:  userHandler.NewUserHandler(svc, 5<<20, 2<<20),
	}

	r := gin.New()
	setupUserRoutes(r.Group(""), c)
	return r
}

func TestUserRoutes_ProfileImageIsUserOnly(t *testing.T) {
	tests := []struct {
		name string
		role user.Role
		want int
	}{
		// user qua được role check, dừng ở validate file
		{name: "user", role: user.RoleUser, want: http.StatusBadRequest},
		{name: "admin", role: user.RoleAdmin, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := userRouter(&user.User{ID: uuid.New(), Role: tt.role})

			req := httptest.NewRequest(http.MethodPatch, "/user/profile-image", nil)
			req.Header.Set("Authorization", "Bearer token")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestUserRoutes_ProfileReadableByAdmin(t *testing.T) {
	r := userRouter(&user.User{ID: uuid.New(), Role: user.RoleAdmin, FirstName: "Root"})

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
