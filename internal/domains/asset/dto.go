package asset

import (
	"strings"

	"ecommerce-backend/internal/shared/apperror"
)

// PresignedPrefix - /upload/pre-signed/{key} trả về link ký sẵn thay vì stream
const PresignedPrefix = "pre-signed/"

var ErrInvalidKey = apperror.New(apperror.KindValidation, "INVALID_ASSET_KEY", "Asset key is required")

// DownloadQuery - ?download=true&filename=
type DownloadQuery struct {
	Download bool   `form:"download"`
	Filename string `form:"filename"`
}

// PresignedURLResponse - data của GET /upload/pre-signed/*path
type PresignedURLResponse struct {
	URL string `json:"url"`
}

// ParsePath tách catch-all path thành key và cờ pre-signed
func ParsePath(raw string) (key string, presigned bool, err error) {
	key = strings.TrimPrefix(raw, "/")
	if rest, ok := strings.CutPrefix(key, PresignedPrefix); ok {
		key, presigned = rest, true
	}
	if key == "" || strings.Contains(key, "..") {
		return "", false, ErrInvalidKey
	}
	return key, presigned, nil
}
