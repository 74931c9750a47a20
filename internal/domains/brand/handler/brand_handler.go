package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ecommerce-backend/internal/domains/brand"
	"ecommerce-backend/internal/shared/middleware"
	"ecommerce-backend/internal/shared/request"
	"ecommerce-backend/internal/shared/response"
	"ecommerce-backend/internal/shared/softdelete"
)

const paramBrandID = "brandId"

// BrandHandler xử lý HTTP requests cho /brand
// Mutations và archive reads đều admin-only (gắn ở router)
type BrandHandler struct {
	service      brand.Service
	maxFileBytes int64
}

func NewBrandHandler(service brand.Service, maxFileBytes int64) *BrandHandler {
	return &BrandHandler{service: service, maxFileBytes: maxFileBytes}
}

// Create xử lý POST /brand (multipart: attachment, name, slogan)
func (h *BrandHandler) Create(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	// STEP 1: BIND FORM FIELDS
	request.LimitUpload(c, h.maxFileBytes, 1)
	var req brand.CreateBrandRequest
	if !request.BindForm(c, &req) {
		return
	}

	// STEP 2: READ FILE
	file, err := request.File(c, "attachment", h.maxFileBytes, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	// STEP 3: CREATE
	b, err := h.service.Create(c.Request.Context(), actor, req, *file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Done", brand.BrandResponse{Brand: b})
}

// List xử lý GET /brand
func (h *BrandHandler) List(c *gin.Context) {
	h.list(c, softdelete.Active)
}

// ListArchive xử lý GET /brand/archive
func (h *BrandHandler) ListArchive(c *gin.Context) {
	h.list(c, softdelete.Archived)
}

func (h *BrandHandler) list(c *gin.Context, mode softdelete.Mode) {
	q, ok := request.PageQuery(c)
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), q, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", brand.ListResponse{Result: page})
}

// FindOne xử lý GET /brand/:brandId
func (h *BrandHandler) FindOne(c *gin.Context) {
	h.findOne(c, softdelete.Active)
}

// FindOneArchive xử lý GET /brand/:brandId/archive
func (h *BrandHandler) FindOneArchive(c *gin.Context) {
	h.findOne(c, softdelete.Archived)
}

func (h *BrandHandler) findOne(c *gin.Context, mode softdelete.Mode) {
	id, ok := request.UUIDParam(c, paramBrandID)
	if !ok {
		return
	}

	b, err := h.service.FindOne(c.Request.Context(), id, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", brand.BrandResponse{Brand: b})
}

// Update xử lý PATCH /brand/:brandId
func (h *BrandHandler) Update(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := request.UUIDParam(c, paramBrandID)
	if !ok {
		return
	}

	var req brand.UpdateBrandRequest
	if !request.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", brand.BrandResponse{Brand: b})
}

// UpdateAttachment xử lý PATCH /brand/:brandId/attachment
func (h *BrandHandler) UpdateAttachment(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := request.UUIDParam(c, paramBrandID)
	if !ok {
		return
	}

	request.LimitUpload(c, h.maxFileBytes, 1)
	file, err := request.File(c, "attachment", h.maxFileBytes, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.UpdateAttachment(c.Request.Context(), actor, id, *file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", brand.BrandResponse{Brand: b})
}

// Restore xử lý PATCH /brand/:brandId/restore
func (h *BrandHandler) Restore(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := request.UUIDParam(c, paramBrandID)
	if !ok {
		return
	}

	b, err := h.service.Restore(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", brand.BrandResponse{Brand: b})
}

// Freeze xử lý DELETE /brand/:brandId/freeze
func (h *BrandHandler) Freeze(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := request.UUIDParam(c, paramBrandID)
	if !ok {
		return
	}

	if err := h.service.Freeze(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Done(c)
}

// Delete xử lý DELETE /brand/:brandId (chỉ brand đã freeze)
func (h *BrandHandler) Delete(c *gin.Context) {
	id, ok := request.UUIDParam(c, paramBrandID)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Done(c)
}

func actorID(c *gin.Context) (uuid.UUID, bool) {
	u, ok := middleware.MustCurrentUser(c)
	if !ok {
		return uuid.Nil, false
	}
	return u.ID, true
}
