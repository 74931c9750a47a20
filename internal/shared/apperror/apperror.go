package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind phân loại lỗi, mỗi Kind map sang đúng một HTTP status
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindTimeout
	KindConflict
	KindTooManyRequests
)

// HTTPStatus trả về status code tương ứng với Kind
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindTimeout:
		return http.StatusRequestTimeout
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// AppError là error chuẩn của toàn bộ ứng dụng
type AppError struct {
	Kind    Kind
	Code    string      // Error code duy nhất (VD: "BRAND_NOT_FOUND")
	Message string      // Human-readable message
	Details interface{} // Validation details, optional
	Err     error       // Underlying error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is so sánh theo Code để sentinel error vẫn match sau khi Wrap/WithMessage
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Status trả về HTTP status
func (e *AppError) Status() int {
	return e.Kind.HTTPStatus()
}

// Wrap tạo bản copy có gắn underlying error, sentinel gốc không bị thay đổi
func (e *AppError) Wrap(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// WithMessage tạo bản copy với message khác
func (e *AppError) WithMessage(format string, args ...interface{}) *AppError {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// WithDetails tạo bản copy có details
func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// ============================================
// CONSTRUCTORS
// ============================================

func New(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

func Validation(message string, details interface{}) *AppError {
	return &AppError{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: message, Details: details}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Code: "FORBIDDEN", Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: "NOT_FOUND", Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Code: "CONFLICT", Message: message}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Code: "INTERNAL_SERVER_ERROR", Message: "Internal server error", Err: err}
}

// ErrRequestTimeout - request vượt quá deadline của context
var ErrRequestTimeout = &AppError{
	Kind:    KindTimeout,
	Code:    "REQUEST_TIMEOUT",
	Message: "Request timeout",
}

// ErrTooManyRequests - vượt rate limit
var ErrTooManyRequests = &AppError{
	Kind:    KindTooManyRequests,
	Code:    "TOO_MANY_REQUESTS",
	Message: "Too many requests, please try again later",
}

// From chuyển bất kỳ error nào thành *AppError
//   - *AppError trong chain → giữ nguyên
//   - context.DeadlineExceeded → 408 REQUEST_TIMEOUT
//   - unique_violation (23505) → 409
//   - còn lại → 500
func From(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrRequestTimeout.Wrap(err)
	}

	if IsUniqueViolation(err) {
		return Conflict("Duplicated record").Wrap(err)
	}

	return Internal(err)
}

// IsUniqueViolation kiểm tra PostgreSQL error code 23505
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation kiểm tra PostgreSQL error code 23503
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
