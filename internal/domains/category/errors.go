package category

import "ecommerce-backend/internal/shared/apperror"

var (
	ErrCategoryNotFound   = apperror.New(apperror.KindNotFound, "CATEGORY_NOT_FOUND", "Fail to find matching Category instance")
	ErrDuplicatedName     = apperror.New(apperror.KindConflict, "DUPLICATED_CATEGORY_NAME", "Duplicated Category name")
	ErrDuplicatedArchived = apperror.New(apperror.KindConflict, "DUPLICATED_ARCHIVED_CATEGORY", "Duplicated with archived Category")
	ErrBrandsNotFound     = apperror.New(apperror.KindNotFound, "BRANDS_NOT_FOUND", "some of mentioned brands does not exist")
	ErrCategoryInUse      = apperror.New(apperror.KindConflict, "CATEGORY_IN_USE", "Category is still referenced by products")
	ErrEmptyUpdate        = apperror.New(apperror.KindValidation, "EMPTY_UPDATE", "All update fields are empty")
)
