package auth

import "ecommerce-backend/internal/shared/apperror"

var (
	ErrEmailExists     = apperror.New(apperror.KindConflict, "EMAIL_EXISTS", "Email already exist")
	ErrAccountNotFound = apperror.New(apperror.KindNotFound, "ACCOUNT_NOT_FOUND", "Fail to find matching account")
	ErrInvalidOtp      = apperror.New(apperror.KindValidation, "INVALID_OTP", "invalid otp")
	ErrOtpStillActive  = apperror.New(apperror.KindConflict, "OTP_STILL_ACTIVE", "Sorry we cannot grant you new OTP until the existing on become expired")
)
