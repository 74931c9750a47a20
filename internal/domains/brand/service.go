package brand

import (
	"context"

	"github.com/google/uuid"

	"ecommerce-backend/internal/infrastructure/storage"
	"ecommerce-backend/internal/shared/softdelete"
)

// Service - business logic cho /brand, actor là admin đang đăng nhập
type Service interface {
	Create(ctx context.Context, actor uuid.UUID, req CreateBrandRequest, file storage.File) (*Brand, error)
	List(ctx context.Context, q softdelete.PageQuery, mode softdelete.Mode) (softdelete.Page[Brand], error)
	FindOne(ctx context.Context, id uuid.UUID, mode softdelete.Mode) (*Brand, error)
	Update(ctx context.Context, actor, id uuid.UUID, req UpdateBrandRequest) (*Brand, error)
	UpdateAttachment(ctx context.Context, actor, id uuid.UUID, file storage.File) (*Brand, error)
	Freeze(ctx context.Context, actor, id uuid.UUID) error
	Restore(ctx context.Context, actor, id uuid.UUID) (*Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
