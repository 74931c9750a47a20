package user

import (
	"time"

	"github.com/google/uuid"
)

// User là domain entity - ánh xạ 1:1 với bảng users
type User struct {
	// Identity
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`

	// Authentication - nil với provider GOOGLE
	Password *string `json:"-"`

	Role              Role     `json:"role"`
	Provider          Provider `json:"provider"`
	PreferredLanguage Language `json:"preferredLanguage"`
	Gender            Gender   `json:"gender"`

	// Assets (object keys)
	ProfileImage *string  `json:"profileImage,omitempty"`
	CoverImages  []string `json:"coverImages"`

	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`

	// Token nào có iat trước mốc này đều bị từ chối
	ChangeCredentialsTime *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Username = first + " " + last
func (u *User) Username() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsConfirmed() bool {
	return u.ConfirmedAt != nil
}

// HasPassword - user đăng nhập qua GOOGLE không có password
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

// IssuedBeforeCredentialChange kiểm tra token iat có trước lần đổi credentials cuối
func (u *User) IssuedBeforeCredentialChange(iat time.Time) bool {
	if u.ChangeCredentialsTime == nil {
		return false
	}
	// iat của JWT chỉ có độ chính xác tới giây
	return iat.Before(u.ChangeCredentialsTime.Truncate(time.Second))
}

// Role enum
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

type Provider string

const (
	ProviderSystem Provider = "SYSTEM"
	ProviderGoogle Provider = "GOOGLE"
)

type Language string

const (
	LanguageEN Language = "EN"
	LanguageAR Language = "AR"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// MaxCoverImages - giới hạn số ảnh cover
const MaxCoverImages = 5
