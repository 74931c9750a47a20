package request

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ecommerce-backend/internal/infrastructure/storage"
	"ecommerce-backend/internal/shared/apperror"
	"ecommerce-backend/internal/shared/response"
	"ecommerce-backend/internal/shared/softdelete"
)

// Validatable - DTO tự validate bằng ozzo-validation
type Validatable interface {
	Validate() error
}

// MaxMultipartMemory - phần vượt quá sẽ spill ra temp file
const MaxMultipartMemory = 32 << 20

// multipartOverhead - chừa chỗ cho text fields + boundary ngoài phần file
const multipartOverhead = 1 << 20

// ========================================
// BODY BINDING
// ========================================

// BindJSON bind + validate JSON body, tự ghi response lỗi
// Trả về false nếu handler cần return ngay
func BindJSON(c *gin.Context, dst Validatable) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BindError(c, err)
		return false
	}
	return validate(c, dst)
}

// BindForm bind + validate multipart/urlencoded form (tag `form`)
func BindForm(c *gin.Context, dst Validatable) bool {
	if err := c.ShouldBind(dst); err != nil {
		if isBodyTooLarge(err) {
			response.Error(c, storage.ErrFileTooLarge)
			return false
		}
		response.BindError(c, err)
		return false
	}
	return validate(c, dst)
}

func validate(c *gin.Context, dst Validatable) bool {
	if err := dst.Validate(); err != nil {
		response.ValidationError(c, err)
		return false
	}
	return true
}

// ========================================
// PARAMS & QUERY
// ========================================

// UUIDParam parse path param dạng uuid
func UUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperror.Validation(fmt.Sprintf("In-valid %s", name), nil))
		return uuid.Nil, false
	}
	return id, true
}

// PageQuery bind ?page&size&search&sort
func PageQuery(c *gin.Context) (softdelete.PageQuery, bool) {
	var q softdelete.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return q, false
	}
	if q.Page < 0 || q.Size < 0 {
		response.Error(c, apperror.Validation("page and size must be positive numbers", nil))
		return q, false
	}
	return q, true
}

// ========================================
// MULTIPART FILES
// ========================================

// LimitUpload giới hạn body cho upload route, phải gọi trước khi parse form
// Vượt quá: parse multipart trả lỗi FILE_TOO_LARGE thay vì đọc hết body
func LimitUpload(c *gin.Context, maxFileBytes int64, maxFiles int) {
	if maxFileBytes <= 0 {
		return
	}
	if maxFiles < 1 {
		maxFiles = 1
	}
	limit := maxFileBytes*int64(maxFiles) + multipartOverhead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// File đọc một file từ field, tối đa maxBytes
// nil nếu không gửi và không bắt buộc
func File(c *gin.Context, field string, maxBytes int64, required bool) (*storage.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if isBodyTooLarge(err) {
			return nil, storage.ErrFileTooLarge
		}
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			if required {
				return nil, apperror.Validation(fmt.Sprintf("%s is required", field), nil)
			}
			return nil, nil
		}
		return nil, apperror.Validation("Invalid multipart body", err.Error())
	}

	file, err := storage.ReadFileHeader(fh, maxBytes)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// Files đọc tối đa max file từ field, mỗi file tối đa maxBytes
func Files(c *gin.Context, field string, max int, maxBytes int64, required bool) ([]storage.File, error) {
	form, err := c.MultipartForm()
	if isBodyTooLarge(err) {
		return nil, storage.ErrFileTooLarge
	}
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, apperror.Validation("Invalid multipart body", err.Error())
	}

	var headers []*multipart.FileHeader
	if form != nil {
		headers = form.File[field]
	}

	if len(headers) == 0 {
		if required {
			return nil, apperror.Validation(fmt.Sprintf("%s is required", field), nil)
		}
		return nil, nil
	}
	if max > 0 && len(headers) > max {
		return nil, apperror.Validation(fmt.Sprintf("maximum %d files allowed for %s", max, field), nil)
	}

	files := make([]storage.File, 0, len(headers))
	for _, fh := range headers {
		file, err := storage.ReadFileHeader(fh, maxBytes)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}
