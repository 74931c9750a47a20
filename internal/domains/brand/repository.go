package brand

import (
	"context"

	"github.com/google/uuid"

	"ecommerce-backend/internal/shared/softdelete"
)

// Repository - mọi read nhận softdelete.Mode
type Repository interface {
	Create(ctx context.Context, b *Brand) error
	FindByID(ctx context.Context, id uuid.UUID, mode softdelete.Mode) (*Brand, error)
	// FindByName dùng cho check trùng tên, thường gọi với softdelete.All
	FindByName(ctx context.Context, name string, mode softdelete.Mode) (*Brand, error)
	List(ctx context.Context, q softdelete.PageQuery, mode softdelete.Mode) ([]Brand, int64, error)
	// CountByIDs đếm số brand active trong ids
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error)

	// Update ghi name/slug/slogan của brand active
	Update(ctx context.Context, b *Brand) error
	// UpdateImage swap ảnh, trả về key ảnh cũ
	UpdateImage(ctx context.Context, id uuid.UUID, image string, updatedBy uuid.UUID) (old string, updated *Brand, err error)

	Freeze(ctx context.Context, id, updatedBy uuid.UUID) error
	Restore(ctx context.Context, id, updatedBy uuid.UUID) (*Brand, error)
	// HardDelete chỉ xoá brand đã freeze, gỡ brand khỏi categories.brand_ids
	HardDelete(ctx context.Context, id uuid.UUID) (*Brand, error)
}
