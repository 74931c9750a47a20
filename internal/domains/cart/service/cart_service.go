package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"ecommerce-backend/internal/domains/cart"
	"ecommerce-backend/internal/domains/product"
	"ecommerce-backend/internal/shared/softdelete"
	"ecommerce-backend/internal/shared/utils"
	"ecommerce-backend/pkg/logger"
)

type cartService struct {
	repo     cart.Repository
	products product.Repository
}

func NewCartService(repo cart.Repository, products product.Repository) cart.Service {
	return &cartService{
		repo:     repo,
		products: products,
	}
}

// AddToCart - product phải active và đủ stock
// Chưa có cart → tạo mới (created = true), có rồi → set quantity hoặc thêm dòng
func (s *cartService) AddToCart(ctx context.Context, userID uuid.UUID, req cart.AddToCartRequest) (*cart.Cart, bool, error) {
	// ========== STEP 1: Product available ==========
	p, err := s.products.FindByID(ctx, req.ProductID, softdelete.Active)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, false, cart.ErrProductUnavailable
		}
		return nil, false, err
	}
	if !p.InStock(req.Quantity) {
		return nil, false, cart.ErrProductUnavailable
	}

	// ========== STEP 2: Upsert ==========
	c, created, err := s.repo.UpsertItem(ctx, userID, cart.Item{ProductID: p.ID, Quantity: req.Quantity})
	if err != nil {
		return nil, false, err
	}

	if created {
		logger.Info("Cart created", map[string]interface{}{"user_id": userID.String(), "cart_id": c.ID.String()})
	}
	return c, created, nil
}

// FindOne trả về cart đã populate product summary
func (s *cartService) FindOne(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	c, err := s.repo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.products.FindManyByIDs(ctx, c.ProductIDs())
	if err != nil {
		return nil, err
	}
	c.Populate(products)
	return c, nil
}

func (s *cartService) RemoveItems(ctx context.Context, userID uuid.UUID, req cart.RemoveItemsRequest) (*cart.Cart, error) {
	return s.repo.RemoveItems(ctx, userID, utils.UniqueUUIDs(req.ProductIDs))
}

func (s *cartService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Delete(ctx, userID)
}
