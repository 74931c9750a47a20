package user

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// PASSWORD RULES (dùng chung với auth)
// ========================================

var (
	hasUpper  = regexp.MustCompile(`[A-Z]`)
	hasLower  = regexp.MustCompile(`[a-z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
	hasSymbol = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// StrongPasswordRules - min 8, có chữ hoa, chữ thường, số và ký tự đặc biệt
func StrongPasswordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("password is required"),
		validation.Length(8, 128).Error("password must be 8-128 characters"),
		validation.Match(hasUpper).Error("password must contain at least one uppercase letter"),
		validation.Match(hasLower).Error("password must contain at least one lowercase letter"),
		validation.Match(hasDigit).Error("password must contain at least one number"),
		validation.Match(hasSymbol).Error("password must contain at least one symbol"),
	}
}

// MatchPassword - confirmPassword phải giống password
func MatchPassword(password string) validation.Rule {
	return validation.By(func(value interface{}) error {
		confirm, _ := value.(string)
		if confirm != password {
			return validation.NewError("validation_password_mismatch", "confirm password not identical with password")
		}
		return nil
	})
}

// ========================================
// REQUEST DTOs
// ========================================

// ChangePasswordRequest - PATCH /user/change-password
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.Password, StrongPasswordRules()...),
		validation.Field(&r.ConfirmPassword, validation.Required, MatchPassword(r.Password)),
	)
}

// PresignedUploadRequest - POST /user/profile-image/pre-signed
type PresignedUploadRequest struct {
	OriginalName string `json:"originalname"`
	ContentType  string `json:"contentType"`
}

var imageContentType = regexp.MustCompile(`^image/(jpeg|png|gif|webp)$`)

func (r PresignedUploadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OriginalName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.ContentType,
			validation.Required,
			validation.Match(imageContentType).Error("only jpeg, png, gif and webp images are allowed"),
		),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

// ProfileResponse - không expose password / change_credentials_time
type ProfileResponse struct {
	ID                uuid.UUID  `json:"id"`
	Username          string     `json:"username"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Email             string     `json:"email"`
	Role              Role       `json:"role"`
	Provider          Provider   `json:"provider"`
	PreferredLanguage Language   `json:"preferredLanguage"`
	Gender            Gender     `json:"gender"`
	ProfileImage      *string    `json:"profileImage,omitempty"`
	CoverImages       []string   `json:"coverImages"`
	ConfirmedAt       *time.Time `json:"confirmedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// PresignedUploadResponse - client PUT file trực tiếp lên url
type PresignedUploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// ToProfile map entity sang response
func (u *User) ToProfile() *ProfileResponse {
	covers := u.CoverImages
	if covers == nil {
		covers = []string{}
	}
	return &ProfileResponse{
		ID:                u.ID,
		Username:          u.Username(),
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Email:             u.Email,
		Role:              u.Role,
		Provider:          u.Provider,
		PreferredLanguage: u.PreferredLanguage,
		Gender:            u.Gender,
		ProfileImage:      u.ProfileImage,
		CoverImages:       covers,
		ConfirmedAt:       u.ConfirmedAt,
		CreatedAt:         u.CreatedAt,
	}
}
