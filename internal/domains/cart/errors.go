package cart

import "ecommerce-backend/internal/shared/apperror"

var (
	ErrCartNotFound       = apperror.New(apperror.KindNotFound, "CART_NOT_FOUND", "Fail to find matching user cart")
	ErrProductUnavailable = apperror.New(apperror.KindNotFound, "PRODUCT_UNAVAILABLE", "Fail to find matching product instance or product is out of stock")
)
