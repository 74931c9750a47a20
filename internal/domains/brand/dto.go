package brand

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"ecommerce-backend/internal/shared/softdelete"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreateBrandRequest - POST /brand (multipart, file ở field attachment)
type CreateBrandRequest struct {
	Name   string `form:"name"`
	Slogan string `form:"slogan"`
}

func (r CreateBrandRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(2, 25)),
		validation.Field(&r.Slogan, validation.Required, validation.RuneLength(2, 25)),
	)
}

// UpdateBrandRequest - PATCH /brand/:brandId, phải có ít nhất một field
type UpdateBrandRequest struct {
	Name   *string `json:"name"`
	Slogan *string `json:"slogan"`
}

func (r UpdateBrandRequest) Validate() error {
	if r.Name == nil && r.Slogan == nil {
		return ErrEmptyUpdate
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(2, 25)),
		validation.Field(&r.Slogan, validation.NilOrNotEmpty, validation.RuneLength(2, 25)),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

type BrandResponse struct {
	Brand *Brand `json:"brand"`
}

type ListResponse struct {
	Result softdelete.Page[Brand] `json:"result"`
}
