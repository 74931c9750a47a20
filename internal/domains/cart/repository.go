package cart

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// FindByOwner trả về cart kèm items, ErrCartNotFound nếu user chưa có cart
	FindByOwner(ctx context.Context, userID uuid.UUID) (*Cart, error)
	// UpsertItem tạo cart nếu chưa có rồi set quantity cho product
	// created = true khi cart vừa được tạo
	UpsertItem(ctx context.Context, userID uuid.UUID, item Item) (c *Cart, created bool, err error)
	RemoveItems(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (*Cart, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}
