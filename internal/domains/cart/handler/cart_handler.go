package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecommerce-backend/internal/domains/cart"
	"ecommerce-backend/internal/shared/middleware"
	"ecommerce-backend/internal/shared/request"
	"ecommerce-backend/internal/shared/response"
)

// CartHandler xử lý HTTP requests cho /cart (role user)
type CartHandler struct {
	service cart.Service
}

func NewCartHandler(service cart.Service) *CartHandler {
	return &CartHandler{service: service}
}

// AddToCart xử lý POST /cart
// 201 khi cart vừa được tạo, 200 khi cập nhật cart có sẵn
func (h *CartHandler) AddToCart(c *gin.Context) {
	u, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	var req cart.AddToCartRequest
	if !request.BindJSON(c, &req) {
		return
	}

	result, created, err := h.service.AddToCart(c.Request.Context(), u.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, "Done", cart.CartResponse{Cart: result})
}

// GetCart xử lý GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	u, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	result, err := h.service.FindOne(c.Request.Context(), u.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", cart.CartResponse{Cart: result})
}

// RemoveItems xử lý PATCH /cart/remove-from-cart
func (h *CartHandler) RemoveItems(c *gin.Context) {
	u, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	var req cart.RemoveItemsRequest
	if !request.BindJSON(c, &req) {
		return
	}

	result, err := h.service.RemoveItems(c.Request.Context(), u.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", cart.CartResponse{Cart: result})
}

// DeleteCart xử lý DELETE /cart
func (h *CartHandler) DeleteCart(c *gin.Context) {
	u, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), u.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.Done(c)
}
