package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/internal/shared/middleware"
	"ecommerce-backend/internal/shared/request"
	"ecommerce-backend/internal/shared/response"
)

// UserHandler xử lý HTTP requests cho /user
// Mọi route đều đi sau middleware.Authenticate
type UserHandler struct {
	service         user.Service
	maxImageBytes   int64
	maxProfileBytes int64
}

func NewUserHandler(service user.Service, maxImageBytes, maxProfileBytes int64) *UserHandler {
	return &UserHandler{service: service, maxImageBytes: maxImageBytes, maxProfileBytes: maxProfileBytes}
}

// GetProfile xử lý GET /user
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, "Done", h.service.GetProfile(c.Request.Context(), u))
}

// UpdateProfileImage xử lý PATCH /user/profile-image (multipart profileImage)
func (h *UserHandler) UpdateProfileImage(c *gin.Context) {
	u, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	// STEP 1: READ FILE
	request.LimitUpload(c, h.maxProfileBytes, 1)
	file, err := request.File(c, "profileImage", h.maxProfileBytes, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	// STEP 2: UPLOAD + SWAP
	profile, err := h.service.UpdateProfileImage(c.Request.Context(), u, *file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", profile)
}

// UpdateCoverImages xử lý PATCH /user/cover-images (multipart attachments ≤ 5)
func (h *UserHandler) UpdateCoverImages(c *gin.Context) {
	u, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	request.LimitUpload(c, h.maxImageBytes, user.MaxCoverImages)
	files, err := request.Files(c, "attachments", user.MaxCoverImages, h.maxImageBytes, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.service.UpdateCoverImages(c.Request.Context(), u, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", profile)
}

// PresignProfileImage xử lý POST /user/profile-image/pre-signed
func (h *UserHandler) PresignProfileImage(c *gin.Context) {
	u, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	var req user.PresignedUploadRequest
	if !request.BindJSON(c, &req) {
		return
	}

	result, err := h.service.PresignProfileImage(c.Request.Context(), u, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", result)
}

// ChangePassword xử lý PATCH /user/change-password
// Thành công → change_credentials_time cập nhật, mọi token cũ hết hiệu lực
func (h *UserHandler) ChangePassword(c *gin.Context) {
	u, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	var req user.ChangePasswordRequest
	if !request.BindJSON(c, &req) {
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), u, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Done(c)
}
