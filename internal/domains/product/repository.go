package product

import (
	"context"

	"github.com/google/uuid"

	"ecommerce-backend/internal/shared/softdelete"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uuid.UUID, mode softdelete.Mode) (*Product, error)
	FindByName(ctx context.Context, name string, mode softdelete.Mode) (*Product, error)
	// FindManyByIDs chỉ trả product active, bỏ qua id không tồn tại
	FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	List(ctx context.Context, q softdelete.PageQuery, mode softdelete.Mode) ([]Product, int64, error)

	Update(ctx context.Context, p *Product) error
	// UpdateImages áp dụng (images - remove) + add trong một transaction
	// removed là các key thật sự bị gỡ khỏi product
	UpdateImages(ctx context.Context, id uuid.UUID, remove, add []string, updatedBy uuid.UUID) (removed []string, updated *Product, err error)

	Freeze(ctx context.Context, id, updatedBy uuid.UUID) error
	Restore(ctx context.Context, id, updatedBy uuid.UUID) (*Product, error)
	HardDelete(ctx context.Context, id uuid.UUID) (*Product, error)
}
