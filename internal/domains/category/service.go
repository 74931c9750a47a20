package category

import (
	"context"

	"github.com/google/uuid"

	"ecommerce-backend/internal/infrastructure/storage"
	"ecommerce-backend/internal/shared/softdelete"
)

// Service - business logic cho /category
type Service interface {
	Create(ctx context.Context, actor uuid.UUID, req CreateCategoryRequest, file storage.File) (*Category, error)
	List(ctx context.Context, q softdelete.PageQuery, mode softdelete.Mode) (softdelete.Page[Category], error)
	FindOne(ctx context.Context, id uuid.UUID, mode softdelete.Mode) (*Category, error)
	Update(ctx context.Context, actor, id uuid.UUID, req UpdateCategoryRequest) (*Category, error)
	UpdateAttachment(ctx context.Context, actor, id uuid.UUID, file storage.File) (*Category, error)
	Freeze(ctx context.Context, actor, id uuid.UUID) error
	Restore(ctx context.Context, actor, id uuid.UUID) (*Category, error)
	// Delete hard delete rồi xoá toàn bộ asset folder
	Delete(ctx context.Context, id uuid.UUID) error
}
