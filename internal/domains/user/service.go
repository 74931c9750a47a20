package user

import (
	"context"

	"ecommerce-backend/internal/infrastructure/storage"
)

// Service định nghĩa business logic cho /user
type Service interface {
	GetProfile(ctx context.Context, u *User) *ProfileResponse
	UpdateProfileImage(ctx context.Context, u *User, file storage.File) (*ProfileResponse, error)
	UpdateCoverImages(ctx context.Context, u *User, files []storage.File) (*ProfileResponse, error)
	PresignProfileImage(ctx context.Context, u *User, req PresignedUploadRequest) (*PresignedUploadResponse, error)
	ChangePassword(ctx context.Context, u *User, req ChangePasswordRequest) error
}
