package cart

import (
	"time"

	"github.com/google/uuid"

	"ecommerce-backend/internal/domains/product"
)

// Cart - mỗi user tối đa một cart (unique created_by)
type Cart struct {
	ID        uuid.UUID `json:"id"`
	CreatedBy uuid.UUID `json:"createdBy"`
	Items     []Item    `json:"products"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Item - một dòng trong cart, khoá (cart_id, product_id)
type Item struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	// Product chỉ có khi GET /cart, nil nếu product đã bị freeze
	Product *product.Summary `json:"product,omitempty"`
}

func (c *Cart) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

// Populate gắn product summary vào từng dòng
func (c *Cart) Populate(products []product.Product) {
	byID := make(map[uuid.UUID]*product.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range c.Items {
		if p, ok := byID[c.Items[i].ProductID]; ok {
			summary := p.Summary()
			c.Items[i].Product = &summary
		}
	}
}
