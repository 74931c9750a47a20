package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecommerce-backend/internal/domains/auth"
	"ecommerce-backend/internal/shared/apperror"
	"ecommerce-backend/internal/shared/middleware"
	"ecommerce-backend/internal/shared/request"
	"ecommerce-backend/internal/shared/response"
)

// AuthHandler xử lý HTTP requests cho /auth
type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// ========================================
// SIGNUP & EMAIL CONFIRMATION
// ========================================

// Signup xử lý POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	// STEP 1: PARSE + VALIDATE
	var req auth.SignupRequest
	if !request.BindJSON(c, &req) {
		return
	}

	// STEP 2: CALL SERVICE (tạo user + OTP + enqueue email)
	if err := h.service.Signup(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	// STEP 3: 201
	response.Success(c, http.StatusCreated, "Done", nil)
}

// ResendConfirmEmail xử lý POST /auth/resend-confirm-email
func (h *AuthHandler) ResendConfirmEmail(c *gin.Context) {
	var req auth.EmailRequest
	if !request.BindJSON(c, &req) {
		return
	}

	if err := h.service.ResendConfirmEmail(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Done(c)
}

// ConfirmEmail xử lý PATCH /auth/confirm-email
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	var req auth.ConfirmEmailRequest
	if !request.BindJSON(c, &req) {
		return
	}

	if err := h.service.ConfirmEmail(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Done(c)
}

// ========================================
// LOGIN / REFRESH / LOGOUT
// ========================================

// Login xử lý POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if !request.BindJSON(c, &req) {
		return
	}

	creds, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", auth.LoginResponse{Credentials: creds})
}

// RefreshToken xử lý POST /auth/refresh-token
// Route phải đi qua middleware.Authenticate với refresh token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	u, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Missing authentication"))
		return
	}

	creds, err := h.service.Refresh(c.Request.Context(), u, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", auth.LoginResponse{Credentials: creds})
}

// Logout xử lý POST /auth/logout, thu hồi jti của access token hiện tại
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Missing authentication"))
		return
	}

	if err := h.service.Logout(c.Request.Context(), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.Done(c)
}

// ========================================
// PASSWORD RESET
// ========================================

// ForgotPassword xử lý POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req auth.EmailRequest
	if !request.BindJSON(c, &req) {
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Done(c)
}

// ResetPassword xử lý PATCH /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req auth.ResetPasswordRequest
	if !request.BindJSON(c, &req) {
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Done(c)
}
