package auth

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"ecommerce-backend/internal/domains/token"
	"ecommerce-backend/internal/domains/user"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// ========================================
// REQUEST DTOs
// ========================================

// SignupRequest - POST /auth/signup
type SignupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required,
			validation.RuneLength(2, 52).Error("username min length is 2 char and max length is 52 char"),
		),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, user.StrongPasswordRules()...),
		validation.Field(&r.ConfirmPassword,
			validation.When(r.Password != "", validation.Required, user.MatchPassword(r.Password)),
		),
	)
}

// SplitUsername tách "first last" thành first_name / last_name
// Username một từ thì last_name = first_name
func (r SignupRequest) SplitUsername() (first, last string) {
	parts := strings.Fields(r.Username)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], parts[0]
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// EmailRequest - resend-confirm-email, forgot-password
type EmailRequest struct {
	Email string `json:"email"`
}

func (r EmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

// ConfirmEmailRequest - PATCH /auth/confirm-email
type ConfirmEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (r ConfirmEmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Code, validation.Required, validation.Match(otpPattern).Error("code must be 6 digits")),
	)
}

// LoginRequest - POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

// ResetPasswordRequest - PATCH /auth/reset-password
type ResetPasswordRequest struct {
	Email           string `json:"email"`
	Code            string `json:"code"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Code, validation.Required, validation.Match(otpPattern).Error("code must be 6 digits")),
		validation.Field(&r.Password, user.StrongPasswordRules()...),
		validation.Field(&r.ConfirmPassword, validation.Required, user.MatchPassword(r.Password)),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

// LoginResponse - data của /auth/login và /auth/refresh-token
type LoginResponse struct {
	Credentials *token.Credentials `json:"credentials"`
}
