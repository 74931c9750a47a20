package response

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ecommerce-backend/internal/shared/apperror"
)

// SuccessBody - envelope cho response thành công
type SuccessBody struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody - envelope cho response lỗi
type ErrorBody struct {
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// Success ghi response thành công
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessBody{
		Message: message,
		Data:    data,
	})
}

// Done - response mặc định cho các mutation không trả data
func Done(c *gin.Context) {
	Success(c, http.StatusOK, "Done", nil)
}

// Error map bất kỳ error nào sang error envelope qua apperror.From
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)
	status := appErr.Status()

	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("❌ Unhandled error")
	}

	c.AbortWithStatusJSON(status, ErrorBody{
		Message: appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// BindError - lỗi parse body/query/form
func BindError(c *gin.Context, err error) {
	Error(c, apperror.Validation("Invalid request body", err.Error()))
}

// ValidationError chuyển validation.Errors của ozzo sang details {field: message}
func ValidationError(c *gin.Context, err error) {
	// DTO có thể trả thẳng sentinel (VD: EMPTY_UPDATE)
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		Error(c, appErr)
		return
	}

	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		details := make(map[string]string, len(vErrs))
		for field, fieldErr := range vErrs {
			details[field] = fieldErr.Error()
		}
		Error(c, apperror.Validation("Validation failed", details))
		return
	}

	// Internal error của validator (VD: rule sai) không phải lỗi của client
	var internal validation.InternalError
	if errors.As(err, &internal) {
		Error(c, apperror.Internal(err))
		return
	}

	Error(c, apperror.Validation(err.Error(), nil))
}
