package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Validation(nil), http.StatusUnprocessableEntity},
		{Forbidden("stock.adjust"), http.StatusForbidden},
		{NotFound("order"), http.StatusNotFound},
		{StateConflict("already received"), http.StatusConflict},
		{InsufficientStock("p1", decimal.NewFromInt(2), decimal.NewFromInt(5)), http.StatusConflict},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.HTTPStatus(), tc.err.Kind)
	}
}

func TestAsUnwrapsChains(t *testing.T) {
	base := NotFound("warehouse")
	wrapped := fmt.Errorf("loading context: %w", base)

	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, e.Kind)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsKind(t *testing.T) {
	err := StateConflict("pending expected")
	assert.True(t, IsKind(err, KindStateConflict))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(nil, KindStateConflict))
}

func TestInsufficientStockCarriesQuantities(t *testing.T) {
	err := InsufficientStock("prod-1", decimal.NewFromInt(2), decimal.NewFromInt(5))

	assert.Equal(t, "prod-1", err.Fields["product_id"])
	assert.Equal(t, "2", err.Fields["available"])
	assert.Equal(t, "5", err.Fields["requested"])
	assert.Contains(t, err.Message, "2 available, 5 requested")
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal(cause)

	assert.Equal(t, "internal error", err.Message)
	assert.ErrorIs(t, err, cause)
}
