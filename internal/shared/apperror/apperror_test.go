package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:      http.StatusBadRequest,
		KindUnauthorized:    http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindTimeout:         http.StatusRequestTimeout,
		KindConflict:        http.StatusConflict,
		KindTooManyRequests: http.StatusTooManyRequests,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.HTTPStatus())
	}
}

func TestFrom(t *testing.T) {
	t.Run("keeps app error", func(t *testing.T) {
		sentinel := New(KindNotFound, "BRAND_NOT_FOUND", "Brand not found")
		got := From(fmt.Errorf("find brand: %w", sentinel))
		assert.Same(t, sentinel, got)
	})

	t.Run("deadline exceeded becomes 408", func(t *testing.T) {
		got := From(fmt.Errorf("query: %w", context.DeadlineExceeded))
		assert.Equal(t, "REQUEST_TIMEOUT", got.Code)
		assert.Equal(t, http.StatusRequestTimeout, got.Status())
		assert.ErrorIs(t, got, context.DeadlineExceeded)
	})

	t.Run("unique violation becomes conflict", func(t *testing.T) {
		got := From(&pgconn.PgError{Code: "23505"})
		assert.Equal(t, http.StatusConflict, got.Status())
	})

	t.Run("unknown becomes internal", func(t *testing.T) {
		got := From(errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, got.Status())
		assert.Equal(t, "Internal server error", got.Message)
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, From(nil))
	})
}

func TestWrapKeepsIdentity(t *testing.T) {
	sentinel := New(KindConflict, "DUPLICATED_NAME", "Duplicated brand name")

	wrapped := sentinel.Wrap(errors.New("db"))
	assert.ErrorIs(t, wrapped, sentinel)
	assert.Nil(t, sentinel.Err)

	msg := sentinel.WithMessage("Duplicated with %s", "archived brand")
	assert.ErrorIs(t, msg, sentinel)
	assert.Equal(t, "Duplicated brand name", sentinel.Message)
	assert.Equal(t, "Duplicated with archived brand", msg.Message)
}
