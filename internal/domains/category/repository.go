package category

import (
	"context"

	"github.com/google/uuid"

	"ecommerce-backend/internal/shared/softdelete"
)

type Repository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id uuid.UUID, mode softdelete.Mode) (*Category, error)
	FindByName(ctx context.Context, name string, mode softdelete.Mode) (*Category, error)
	List(ctx context.Context, q softdelete.PageQuery, mode softdelete.Mode) ([]Category, int64, error)

	// Update ghi name/slug/description của category active
	// brand_ids chỉ ghi khi replaceBrands
	Update(ctx context.Context, c *Category, replaceBrands bool) error
	UpdateImage(ctx context.Context, id uuid.UUID, image string, updatedBy uuid.UUID) (old string, updated *Category, err error)

	Freeze(ctx context.Context, id, updatedBy uuid.UUID) error
	Restore(ctx context.Context, id, updatedBy uuid.UUID) (*Category, error)
	HardDelete(ctx context.Context, id uuid.UUID) (*Category, error)
}
