package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecommerce-backend/internal/domains/asset"
	"ecommerce-backend/internal/infrastructure/metrics"
	"ecommerce-backend/internal/infrastructure/storage"
	"ecommerce-backend/internal/shared/response"
)

// AssetHandler phục vụ GET /upload/*path, public
type AssetHandler struct {
	storage storage.Storage
	metrics *metrics.Metrics
}

func NewAssetHandler(store storage.Storage, m *metrics.Metrics) *AssetHandler {
	return &AssetHandler{storage: store, metrics: m}
}

// Serve dispatch theo prefix: pre-signed/ → link ký sẵn, còn lại stream object
func (h *AssetHandler) Serve(c *gin.Context) {
	key, presigned, err := asset.ParsePath(c.Param("path"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var q asset.DownloadQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	if presigned {
		h.presign(c, key, q)
		return
	}
	h.stream(c, key, q)
}

func (h *AssetHandler) stream(c *gin.Context, key string, q asset.DownloadQuery) {
	obj, err := h.storage.Get(c.Request.Context(), key)
	h.metrics.RecordAsset("get", err)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer obj.Body.Close()

	headers := map[string]string{
		"Cross-Origin-Resource-Policy": "cross-origin",
	}
	if q.Download {
		headers["Content-Disposition"] = storage.AttachmentDisposition(key, q.Filename)
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, obj.Size, contentType, obj.Body, headers)
}

func (h *AssetHandler) presign(c *gin.Context, key string, q asset.DownloadQuery) {
	url, err := h.storage.PresignGet(c.Request.Context(), key, storage.PresignGetOptions{
		Download: q.Download,
		Filename: q.Filename,
	})
	h.metrics.RecordAsset("presign_get", err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Done", asset.PresignedURLResponse{URL: url})
}
