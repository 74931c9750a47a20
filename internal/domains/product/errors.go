package product

import "ecommerce-backend/internal/shared/apperror"

var (
	ErrProductNotFound    = apperror.New(apperror.KindNotFound, "PRODUCT_NOT_FOUND", "Fail to find matching product instance")
	ErrDuplicatedName     = apperror.New(apperror.KindConflict, "DUPLICATED_PRODUCT_NAME", "Duplicated product name")
	ErrDuplicatedArchived = apperror.New(apperror.KindConflict, "DUPLICATED_ARCHIVED_PRODUCT", "Duplicated with archived product")
	ErrCategoryNotFound   = apperror.New(apperror.KindNotFound, "CATEGORY_NOT_FOUND", "fail to find matching category instance")
	ErrBrandNotFound      = apperror.New(apperror.KindNotFound, "BRAND_NOT_FOUND", "fail to find matching brand instance")
	ErrTooManyImages      = apperror.New(apperror.KindValidation, "TOO_MANY_IMAGES", "maximum 5 images allowed per product")
	ErrEmptyUpdate        = apperror.New(apperror.KindValidation, "EMPTY_UPDATE", "All update fields are empty")
)
