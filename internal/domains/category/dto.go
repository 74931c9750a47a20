package category

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"ecommerce-backend/internal/shared/softdelete"
	"ecommerce-backend/internal/shared/utils"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreateCategoryRequest - POST /category (multipart, file ở field attachment)
// brands gửi dạng brands=<id>&brands=<id>
type CreateCategoryRequest struct {
	Name        string   `form:"name"`
	Description string   `form:"description"`
	Brands      []string `form:"brands"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(2, 25)),
		validation.Field(&r.Description, validation.RuneLength(2, 5000)),
		validation.Field(&r.Brands, validation.Each(is.UUID)),
	)
}

// BrandIDs parse + bỏ trùng, gọi sau Validate
func (r CreateCategoryRequest) BrandIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Brands))
	for _, raw := range r.Brands {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	return utils.UniqueUUIDs(ids)
}

// UpdateCategoryRequest - PATCH /category/:categoryId
type UpdateCategoryRequest struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Brands      *[]uuid.UUID `json:"brands"`
}

func (r UpdateCategoryRequest) Validate() error {
	if r.Name == nil && r.Description == nil && r.Brands == nil {
		return ErrEmptyUpdate
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(2, 25)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.RuneLength(2, 5000)),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

type CategoryResponse struct {
	Category *Category `json:"category"`
}

type ListResponse struct {
	Result softdelete.Page[Category] `json:"result"`
}
