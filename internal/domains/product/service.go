package product

import (
	"context"

	"github.com/google/uuid"

	"ecommerce-backend/internal/infrastructure/storage"
	"ecommerce-backend/internal/shared/softdelete"
)

// Service - business logic cho /product
type Service interface {
	Create(ctx context.Context, actor uuid.UUID, req CreateProductRequest, files []storage.File) (*Product, error)
	List(ctx context.Context, q softdelete.PageQuery, mode softdelete.Mode) (softdelete.Page[Product], error)
	FindOne(ctx context.Context, id uuid.UUID, mode softdelete.Mode) (*Product, error)
	Update(ctx context.Context, actor, id uuid.UUID, req UpdateProductRequest) (*Product, error)
	UpdateAttachment(ctx context.Context, actor, id uuid.UUID, req UpdateAttachmentRequest, files []storage.File) (*Product, error)
	Freeze(ctx context.Context, actor, id uuid.UUID) error
	Restore(ctx context.Context, actor, id uuid.UUID) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
