package product

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ecommerce-backend/internal/shared/softdelete"
)

// ========================================
// VALIDATION RULES
// ========================================

// priceRule - giá gốc phải > 0
var priceRule = validation.By(func(value interface{}) error {
	d, ok := asDecimal(value)
	if !ok {
		return nil
	}
	if !d.IsPositive() {
		return errors.New("must be greater than 0")
	}
	return nil
})

// discountRule - [0, 100)
var discountRule = validation.By(func(value interface{}) error {
	d, ok := asDecimal(value)
	if !ok {
		return nil
	}
	if d.IsNegative() || d.GreaterThanOrEqual(hundred) {
		return errors.New("must be between 0 and 100 (exclusive)")
	}
	return nil
})

func asDecimal(value interface{}) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(v)
		return d, err == nil
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Decimal{}, false
		}
		return *v, true
	}
	return decimal.Decimal{}, false
}

// ========================================
// REQUEST DTOs
// ========================================

// CreateProductRequest - POST /product (multipart, ảnh ở field attachments)
type CreateProductRequest struct {
	Name            string `form:"name"`
	Description     string `form:"description"`
	OriginalPrice   string `form:"originalPrice"`
	DiscountPercent string `form:"discountPercent"`
	Stock           int    `form:"stock"`
	Category        string `form:"category"`
	Brand           string `form:"brand"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(2, 2000)),
		validation.Field(&r.Description, validation.RuneLength(2, 50000)),
		validation.Field(&r.OriginalPrice, validation.Required, is.Float, priceRule),
		validation.Field(&r.DiscountPercent, is.Float, discountRule),
		validation.Field(&r.Stock, validation.Min(0)),
		validation.Field(&r.Category, validation.Required, is.UUID),
		validation.Field(&r.Brand, validation.Required, is.UUID),
	)
}

// Prices parse price fields, gọi sau Validate
func (r CreateProductRequest) Prices() (original, discount decimal.Decimal) {
	original, _ = decimal.NewFromString(r.OriginalPrice)
	if r.DiscountPercent != "" {
		discount, _ = decimal.NewFromString(r.DiscountPercent)
	}
	return original, discount
}

func (r CreateProductRequest) CategoryID() uuid.UUID {
	return uuid.MustParse(r.Category)
}

func (r CreateProductRequest) BrandID() uuid.UUID {
	return uuid.MustParse(r.Brand)
}

// UpdateProductRequest - PATCH /product/:productId
// Giá nhận cả number lẫn string JSON
type UpdateProductRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	OriginalPrice   *decimal.Decimal `json:"originalPrice"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	Stock           *int             `json:"stock"`
	Category        *uuid.UUID       `json:"category"`
	Brand           *uuid.UUID       `json:"brand"`
}

func (r UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.OriginalPrice == nil &&
		r.DiscountPercent == nil && r.Stock == nil && r.Category == nil && r.Brand == nil
}

func (r UpdateProductRequest) Validate() error {
	if r.IsEmpty() {
		return ErrEmptyUpdate
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(2, 2000)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.RuneLength(2, 50000)),
		validation.Field(&r.OriginalPrice, priceRule),
		validation.Field(&r.DiscountPercent, discountRule),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

// TouchesPrice - cần tính lại sale_price
func (r UpdateProductRequest) TouchesPrice() bool {
	return r.OriginalPrice != nil || r.DiscountPercent != nil
}

// UpdateAttachmentRequest - PATCH /product/:productId/attachment
// removeAttachments là các key hiện có cần gỡ
type UpdateAttachmentRequest struct {
	RemoveAttachments []string
}

func (r UpdateAttachmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RemoveAttachments, validation.Each(validation.Required)),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

type ProductResponse struct {
	Product *Product `json:"product"`
}

type ListResponse struct {
	Result softdelete.Page[Product] `json:"result"`
}
