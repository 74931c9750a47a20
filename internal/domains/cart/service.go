package cart

import (
	"context"

	"github.com/google/uuid"
)

// Service - cart của user đang đăng nhập
type Service interface {
	AddToCart(ctx context.Context, userID uuid.UUID, req AddToCartRequest) (c *Cart, created bool, err error)
	FindOne(ctx context.Context, userID uuid.UUID) (*Cart, error)
	RemoveItems(ctx context.Context, userID uuid.UUID, req RemoveItemsRequest) (*Cart, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}
