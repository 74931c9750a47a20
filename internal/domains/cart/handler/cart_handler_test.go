package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-backend/internal/domains/cart/carttest"
	"ecommerce-backend/internal/domains/cart/service"
	"ecommerce-backend/internal/domains/product"
	"ecommerce-backend/internal/domains/product/producttest"
	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/internal/shared/middleware"
)

func setup(t *testing.T) (*gin.Engine, *product.Product) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	shoe := &product.Product{ID: uuid.New(), Name: "Air Max", Stock: 5}
	h := NewCartHandler(service.NewCartService(carttest.NewMemory(), producttest.NewMemory(shoe)))

	buyer := &user.User{ID: uuid.New(), Role: user.RoleUser}
	asUser := func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, buyer)
		c.Next()
	}

	r := gin.New()
	g := r.Group("/cart", asUser)
	g.POST("", h.AddToCart)
	g.GET("", h.GetCart)
	g.PATCH("/remove-from-cart", h.RemoveItems)
	g.DELETE("", h.DeleteCart)
	return r, shoe
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddToCart_StatusCodes(t *testing.T) {
	r, shoe := setup(t)
	body := `{"productId":"` + shoe.ID.String() + `","quantity":2}`

	w := send(r, http.MethodPost, "/cart", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = send(r, http.MethodPost, "/cart", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = send(r, http.MethodPost, "/cart", `{"productId":"`+shoe.ID.String()+`","quantity":9}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "out of stock")

	w = send(r, http.MethodPost, "/cart", `{"productId":"bad","quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartLifecycle(t *testing.T) {
	r, shoe := setup(t)

	w := send(r, http.MethodGet, "/cart", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = send(r, http.MethodPost, "/cart", `{"productId":"`+shoe.ID.String()+`","quantity":1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = send(r, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Air Max"`)

	w = send(r, http.MethodPatch, "/cart/remove-from-cart", `{"productIds":["`+shoe.ID.String()+`"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"products":[]`)

	w = send(r, http.MethodDelete, "/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = send(r, http.MethodDelete, "/cart", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
