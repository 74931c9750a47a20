package token

import "ecommerce-backend/internal/shared/apperror"

var (
	ErrMissingAuthorization = apperror.New(apperror.KindUnauthorized, "MISSING_AUTHORIZATION", "Missing authorization key")
	ErrInvalidToken         = apperror.New(apperror.KindUnauthorized, "INVALID_TOKEN", "In-valid token")
	ErrRevokedToken         = apperror.New(apperror.KindUnauthorized, "REVOKED_TOKEN", "Invalid or old login credentials")
	ErrUnregisteredAccount  = apperror.New(apperror.KindUnauthorized, "UNREGISTERED_ACCOUNT", "Not register account")
)
