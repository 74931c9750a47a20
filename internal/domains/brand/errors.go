package brand

import "ecommerce-backend/internal/shared/apperror"

var (
	ErrBrandNotFound      = apperror.New(apperror.KindNotFound, "BRAND_NOT_FOUND", "Fail to find matching brand instance")
	ErrDuplicatedName     = apperror.New(apperror.KindConflict, "DUPLICATED_BRAND_NAME", "Duplicated brand name")
	ErrDuplicatedArchived = apperror.New(apperror.KindConflict, "DUPLICATED_ARCHIVED_BRAND", "Duplicated with archived brand")
	ErrBrandInUse         = apperror.New(apperror.KindConflict, "BRAND_IN_USE", "Brand is still referenced by products")
	ErrEmptyUpdate        = apperror.New(apperror.KindValidation, "EMPTY_UPDATE", "All update fields are empty")
)
