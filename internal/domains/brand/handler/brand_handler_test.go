package handler

import (
	"bytes"
	"context"
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
	"ecommerce-backend/internal/domains/brand/service"
	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/internal/infrastructure/storage"
	"ecommerce-backend/internal/infrastructure/storage/storagetest"
	"ecommerce-backend/internal/shared/middleware"
)

const maxFileBytes = 64 << 10

func setup(t *testing.T) (*gin.Engine, *brandtest.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := brandtest.NewMemory()
	svc := service.NewBrandService(repo, storagetest.NewMemory(), storage.NewImageValidator(5<<20, 0), nil)
	h := NewBrandHandler(svc, maxFileBytes)

	admin := &user.User{ID: uuid.New(), Role: user.RoleAdmin}
	asAdmin := func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, admin)
		c.Next()
	}

	r := gin.New()
	g := r.Group("/brand")
	g.GET("", h.List)
	g.GET("/:brandId", h.FindOne)
	g.POST("", asAdmin, h.Create)
	g.PATCH("/:brandId", asAdmin, h.Update)
	g.DELETE("/:brandId/freeze", asAdmin, h.Freeze)
	g.GET("/:brandId/archive", asAdmin, h.FindOneArchive)
	return r, repo
}

func multipartCreate(t *testing.T, name, slogan string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("name", name))
	require.NoError(t, mw.WriteField("slogan", slogan))
	fw, err := mw.CreateFormFile("attachment", "logo.png")
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

func TestCreateAndRead(t *testing.T) {
	r, _ := setup(t)

	body, contentType := multipartCreate(t, "Nike", "Just do it")
	req := httptest.NewRequest(http.MethodPost, "/brand", body)
	req.Header.Set("Content-Type", contentType)
	w := serve(r, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data brand.BrandResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "nike", created.Data.Brand.Slug)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/brand/"+created.Data.Brand.ID.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/brand?page=1&size=5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"docsCount":1`)
}

func TestCreate_MissingAttachment(t *testing.T) {
	r, repo := setup(t)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("name", "Nike"))
	require.NoError(t, mw.WriteField("slogan", "Just do it"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/brand", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.Brands)
}

func TestCreate_AttachmentTooLarge(t *testing.T) {
	r, repo := setup(t)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("name", "Nike"))
	require.NoError(t, mw.WriteField("slogan", "Just do it"))
	fw, err := mw.CreateFormFile("attachment", "logo.png")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte{0xff}, 2*maxFileBytes))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/brand", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"FILE_TOO_LARGE"`)
	assert.Empty(t, repo.Brands)
}

func TestUpdate_EmptyBody(t *testing.T) {
	r, _ := setup(t)

	req := httptest.NewRequest(http.MethodPatch, "/brand/"+uuid.NewString(), strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFreezeAndArchive(t *testing.T) {
	r, repo := setup(t)
	b := &brand.Brand{Name: "Nike", Slug: "nike", Slogan: "x", Image: "k"}
	require.NoError(t, repo.Create(context.Background(), b))

	w := serve(r, httptest.NewRequest(http.MethodDelete, "/brand/"+b.ID.String()+"/freeze", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/brand/"+b.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/brand/"+b.ID.String()+"/archive", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/brand/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
