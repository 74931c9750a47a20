package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ecommerce-backend/internal/domains/product"
	"ecommerce-backend/internal/shared/middleware"
	"ecommerce-backend/internal/shared/request"
	"ecommerce-backend/internal/shared/response"
	"ecommerce-backend/internal/shared/softdelete"
)

const (
	paramProductID   = "productId"
	fieldAttachments = "attachments"
)

// ProductHandler xử lý HTTP requests cho /product
type ProductHandler struct {
	service      product.Service
	maxFileBytes int64
}

func NewProductHandler(service product.Service, maxFileBytes int64) *ProductHandler {
	return &ProductHandler{service: service, maxFileBytes: maxFileBytes}
}

// Create xử lý POST /product
// multipart: attachments (1..5), name, description, originalPrice, discountPercent, stock, category, brand
func (h *ProductHandler) Create(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	// STEP 1: BIND FORM FIELDS
	request.LimitUpload(c, h.maxFileBytes, product.MaxImages)
	var req product.CreateProductRequest
	if !request.BindForm(c, &req) {
		return
	}

	// STEP 2: READ FILES
	files, err := request.Files(c, fieldAttachments, product.MaxImages, h.maxFileBytes, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	// STEP 3: CREATE
	p, err := h.service.Create(c.Request.Context(), actor, req, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Done", product.ProductResponse{Product: p})
}

// List xử lý GET /product
func (h *ProductHandler) List(c *gin.Context) {
	h.list(c, softdelete.Active)
}

// ListArchive xử lý GET /product/archive
func (h *ProductHandler) ListArchive(c *gin.Context) {
	h.list(c, softdelete.Archived)
}

func (h *ProductHandler) list(c *gin.Context, mode softdelete.Mode) {
	q, ok := request.PageQuery(c)
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), q, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", product.ListResponse{Result: page})
}

// FindOne xử lý GET /product/:productId
func (h *ProductHandler) FindOne(c *gin.Context) {
	h.findOne(c, softdelete.Active)
}

// FindOneArchive xử lý GET /product/:productId/archive
func (h *ProductHandler) FindOneArchive(c *gin.Context) {
	h.findOne(c, softdelete.Archived)
}

func (h *ProductHandler) findOne(c *gin.Context, mode softdelete.Mode) {
	id, ok := request.UUIDParam(c, paramProductID)
	if !ok {
		return
	}

	p, err := h.service.FindOne(c.Request.Context(), id, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", product.ProductResponse{Product: p})
}

// Update xử lý PATCH /product/:productId
func (h *ProductHandler) Update(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := request.UUIDParam(c, paramProductID)
	if !ok {
		return
	}

	var req product.UpdateProductRequest
	if !request.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", product.ProductResponse{Product: p})
}

// UpdateAttachment xử lý PATCH /product/:productId/attachment
// attachments (optional) được thêm, removeAttachments[] bị gỡ
func (h *ProductHandler) UpdateAttachment(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := request.UUIDParam(c, paramProductID)
	if !ok {
		return
	}

	request.LimitUpload(c, h.maxFileBytes, product.MaxImages)
	files, err := request.Files(c, fieldAttachments, product.MaxImages, h.maxFileBytes, false)
	if err != nil {
		response.Error(c, err)
		return
	}

	req := product.UpdateAttachmentRequest{
		RemoveAttachments: append(c.PostFormArray("removeAttachments[]"), c.PostFormArray("removeAttachments")...),
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	p, err := h.service.UpdateAttachment(c.Request.Context(), actor, id, req, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", product.ProductResponse{Product: p})
}

// Restore xử lý PATCH /product/:productId/restore
func (h *ProductHandler) Restore(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := request.UUIDParam(c, paramProductID)
	if !ok {
		return
	}

	p, err := h.service.Restore(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", product.ProductResponse{Product: p})
}

// Freeze xử lý DELETE /product/:productId/freeze
func (h *ProductHandler) Freeze(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := request.UUIDParam(c, paramProductID)
	if !ok {
		return
	}

	if err := h.service.Freeze(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Done(c)
}

// Delete xử lý DELETE /product/:productId (chỉ product đã freeze)
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := request.UUIDParam(c, paramProductID)
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
