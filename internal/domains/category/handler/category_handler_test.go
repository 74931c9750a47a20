package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-backend/internal/domains/brand"
	"ecommerce-backend/internal/domains/brand/brandtest"
	"ecommerce-backend/internal/domains/category"
	"ecommerce-backend/internal/domains/category/categorytest"
	"ecommerce-backend/internal/domains/category/service"
	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/internal/infrastructure/storage"
	"ecommerce-backend/internal/infrastructure/storage/storagetest"
	"ecommerce-backend/internal/shared/middleware"
)

func setup(t *testing.T) (*gin.Engine, *categorytest.Memory, *brand.Brand) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	nike := &brand.Brand{ID: uuid.New(), Name: "Nike", Slug: "nike"}
	repo := categorytest.NewMemory()
	svc := service.NewCategoryService(repo, brandtest.NewMemory(nike), storagetest.NewMemory(), storage.NewImageValidator(5<<20, 0), nil)
	h := NewCategoryHandler(svc, 5<<20)

	admin := &user.User{ID: uuid.New(), Role: user.RoleAdmin}
	asAdmin := func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, admin)
		c.Next()
	}

	r := gin.New()
	g := r.Group("/category")
	g.GET("", h.List)
	g.GET("/:categoryId", h.FindOne)
	g.POST("", asAdmin, h.Create)
	g.PATCH("/:categoryId", asAdmin, h.Update)
	g.DELETE("/:categoryId/freeze", asAdmin, h.Freeze)
	g.PATCH("/:categoryId/restore", asAdmin, h.Restore)
	g.DELETE("/:categoryId", asAdmin, h.Delete)
	return r, repo, nike
}

func multipartCreate(t *testing.T, name string, brands ...string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("name", name))
	for _, b := range brands {
		require.NoError(t, mw.WriteField("brands", b))
	}
	fw, err := mw.CreateFormFile("attachment", "cover.png")
	require.NoError(t, err)
	_, err = fw.Write(storagetest.PNG(t, 4, 4))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate_WithBrands(t *testing.T) {
	r, _, nike := setup(t)

	body, contentType := multipartCreate(t, "Shoes", nike.ID.String())
	req := httptest.NewRequest(http.MethodPost, "/category", body)
	req.Header.Set("Content-Type", contentType)
	w := serve(r, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data category.CategoryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, []uuid.UUID{nike.ID}, created.Data.Category.BrandIDs)
	assert.NotEqual(t, uuid.Nil, created.Data.Category.AssetFolderID)
}

func TestCreate_InvalidBrandID(t *testing.T) {
	r, repo, _ := setup(t)

	body, contentType := multipartCreate(t, "Shoes", "not-a-uuid")
	req := httptest.NewRequest(http.MethodPost, "/category", body)
	req.Header.Set("Content-Type", contentType)
	w := serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.Categories)
}

func TestCreate_MissingBrand(t *testing.T) {
	r, _, _ := setup(t)

	body, contentType := multipartCreate(t, "Shoes", uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, "/category", body)
	req.Header.Set("Content-Type", contentType)
	w := serve(r, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "some of mentioned brands does not exist")
}

func TestFreezeRestoreDelete(t *testing.T) {
	r, repo, _ := setup(t)
	c := &category.Category{Name: "Shoes", Slug: "shoes", Image: "k"}
	require.NoError(t, repo.Create(t.Context(), c))
	path := "/category/" + c.ID.String()

	// chưa freeze thì không hard delete được
	w := serve(r, httptest.NewRequest(http.MethodDelete, path, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodDelete, path+"/freeze", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodPatch, path+"/restore", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"restoredAt"`)

	w = serve(r, httptest.NewRequest(http.MethodDelete, path+"/freeze", nil))
	require.Equal(t, http.StatusOK, w.Code)
	w = serve(r, httptest.NewRequest(http.MethodDelete, path, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.Categories)
}

func TestUpdate_BrandsJSON(t *testing.T) {
	r, repo, nike := setup(t)
	c := &category.Category{Name: "Shoes", Slug: "shoes", Image: "k"}
	require.NoError(t, repo.Create(t.Context(), c))

	req := httptest.NewRequest(http.MethodPatch, "/category/"+c.ID.String(),
		strings.NewReader(`{"brands":["`+nike.ID.String()+`"]}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []uuid.UUID{nike.ID}, repo.Categories[c.ID].BrandIDs)
}
