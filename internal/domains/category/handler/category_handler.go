package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ecommerce-backend/internal/domains/category"
	"ecommerce-backend/internal/shared/middleware"
	"ecommerce-backend/internal/shared/request"
	"ecommerce-backend/internal/shared/response"
	"ecommerce-backend/internal/shared/softdelete"
)

const paramCategoryID = "categoryId"

// CategoryHandler xử lý HTTP requests cho /category
// Mutations và archive reads đều admin-only (gắn ở router)
type CategoryHandler struct {
	service      category.Service
	maxFileBytes int64
}

func NewCategoryHandler(service category.Service, maxFileBytes int64) *CategoryHandler {
	return &CategoryHandler{service: service, maxFileBytes: maxFileBytes}
}

// Create xử lý POST /category (multipart: attachment, name, description, brands)
func (h *CategoryHandler) Create(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	// STEP 1: BIND FORM FIELDS
	request.LimitUpload(c, h.maxFileBytes, 1)
	var req category.CreateCategoryRequest
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
	cat, err := h.service.Create(c.Request.Context(), actor, req, *file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Done", category.CategoryResponse{Category: cat})
}

// List xử lý GET /category
func (h *CategoryHandler) List(c *gin.Context) {
	h.list(c, softdelete.Active)
}

// ListArchive xử lý GET /category/archive
func (h *CategoryHandler) ListArchive(c *gin.Context) {
	h.list(c, softdelete.Archived)
}

func (h *CategoryHandler) list(c *gin.Context, mode softdelete.Mode) {
	q, ok := request.PageQuery(c)
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), q, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", category.ListResponse{Result: page})
}

// FindOne xử lý GET /category/:categoryId
func (h *CategoryHandler) FindOne(c *gin.Context) {
	h.findOne(c, softdelete.Active)
}

// FindOneArchive xử lý GET /category/:categoryId/archive
func (h *CategoryHandler) FindOneArchive(c *gin.Context) {
	h.findOne(c, softdelete.Archived)
}

func (h *CategoryHandler) findOne(c *gin.Context, mode softdelete.Mode) {
	id, ok := request.UUIDParam(c, paramCategoryID)
	if !ok {
		return
	}

	cat, err := h.service.FindOne(c.Request.Context(), id, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", category.CategoryResponse{Category: cat})
}

// Update xử lý PATCH /category/:categoryId
func (h *CategoryHandler) Update(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := request.UUIDParam(c, paramCategoryID)
	if !ok {
		return
	}

	var req category.UpdateCategoryRequest
	if !request.BindJSON(c, &req) {
		return
	}

	cat, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", category.CategoryResponse{Category: cat})
}

// UpdateAttachment xử lý PATCH /category/:categoryId/attachment
func (h *CategoryHandler) UpdateAttachment(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := request.UUIDParam(c, paramCategoryID)
	if !ok {
		return
	}

	request.LimitUpload(c, h.maxFileBytes, 1)
	file, err := request.File(c, "attachment", h.maxFileBytes, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	cat, err := h.service.UpdateAttachment(c.Request.Context(), actor, id, *file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", category.CategoryResponse{Category: cat})
}

// Restore xử lý PATCH /category/:categoryId/restore
func (h *CategoryHandler) Restore(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := request.UUIDParam(c, paramCategoryID)
	if !ok {
		return
	}

	cat, err := h.service.Restore(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", category.CategoryResponse{Category: cat})
}

// Freeze xử lý DELETE /category/:categoryId/freeze
func (h *CategoryHandler) Freeze(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := request.UUIDParam(c, paramCategoryID)
	if !ok {
		return
	}

	if err := h.service.Freeze(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Done(c)
}

// Delete xử lý DELETE /category/:categoryId (chỉ category đã freeze)
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := request.UUIDParam(c, paramCategoryID)
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
