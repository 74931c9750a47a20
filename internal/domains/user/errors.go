package user

import "ecommerce-backend/internal/shared/apperror"

// Repository-level errors
var (
	ErrUserNotFound = apperror.New(apperror.KindNotFound, "USER_NOT_FOUND", "Fail to find matching account")
	ErrEmailExists  = apperror.New(apperror.KindConflict, "EMAIL_EXISTS", "Email exist")
)

// Service-level errors
var (
	ErrInvalidOldPassword = apperror.New(apperror.KindValidation, "INVALID_OLD_PASSWORD", "In-valid old password")
	ErrPasswordNotSet     = apperror.New(apperror.KindValidation, "PASSWORD_NOT_SET", "Account signed up with a social provider has no password")
	ErrTooManyCovers      = apperror.New(apperror.KindValidation, "TOO_MANY_COVER_IMAGES", "Maximum 5 cover images are allowed")
	ErrMissingImage       = apperror.New(apperror.KindValidation, "MISSING_IMAGE", "Missing image file")
)
