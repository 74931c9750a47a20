package cart

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var notNilUUID = validation.By(func(value interface{}) error {
	if id, ok := value.(uuid.UUID); ok && id == uuid.Nil {
		return errors.New("cannot be blank")
	}
	return nil
})

// AddToCartRequest - POST /cart
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

func (r AddToCartRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, notNilUUID),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

// RemoveItemsRequest - PATCH /cart/remove-from-cart
type RemoveItemsRequest struct {
	ProductIDs []uuid.UUID `json:"productIds"`
}

func (r RemoveItemsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductIDs, validation.Required, validation.Each(notNilUUID)),
	)
}

type CartResponse struct {
	Cart *Cart `json:"cart"`
}
