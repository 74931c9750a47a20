package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository định nghĩa contract cho data access layer
// Dùng chung bởi user, auth và token service
type Repository interface {
	// Create tạo user mới, trả về ErrEmailExists nếu email trùng
	Create(ctx context.Context, u *User) error

	// FindByID có cache-aside (user:{id}), trả về ErrUserNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail so khớp không phân biệt hoa thường
	FindByEmail(ctx context.Context, email string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// MarkConfirmed set confirmed_at = now
	MarkConfirmed(ctx context.Context, id uuid.UUID) error

	// UpdatePassword cập nhật hash và change_credentials_time
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string, changedAt time.Time) error

	// UpdateProfileImage trả về key cũ (nếu có) để xoá sau khi commit
	UpdateProfileImage(ctx context.Context, id uuid.UUID, key string) (old *string, err error)

	// UpdateCoverImages thay toàn bộ cover images, trả về keys cũ
	UpdateCoverImages(ctx context.Context, id uuid.UUID, keys []string) (old []string, err error)
}
