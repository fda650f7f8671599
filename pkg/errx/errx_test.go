package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_New(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "Widget not found")

	assert.Equal(t, Code("WIDGET_NOT_FOUND"), code)

	err := reg.New(code).WithDetail("id", "w-1")
	assert.Equal(t, TypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "w-1", err.Details["id"])

	resp := err.ToHTTPResponse()
	assert.Equal(t, "Not Found", resp.Error)
	assert.Equal(t, code, resp.Code)
}

func TestRegistry_UnknownCode(t *testing.T) {
	reg := NewRegistry("WIDGET")
	err := reg.New(Code("WIDGET_MISSING"))
	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
}

func TestIsCode_WalksChain(t *testing.T) {
	reg := NewRegistry("WIDGET")
	code := reg.Register("BROKEN", TypeBusiness, http.StatusConflict, "broken")

	inner := reg.New(code)
	outer := Wrap(fmt.Errorf("step: %w", inner), "cascade failed", TypeInternal)

	assert.True(t, IsCode(outer, code))
	assert.True(t, IsType(outer, TypeInternal))
	assert.False(t, IsType(outer, TypeBusiness))
	assert.False(t, IsCode(errors.New("plain"), code))
}

func TestWrap_DefaultStatus(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, "failed to load", TypeInternal)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPropagate(t *testing.T) {
	reg := NewRegistry("PROP")
	code := reg.Register("GONE", TypeNotFound, http.StatusNotFound, "gone")

	typed := fmt.Errorf("lookup: %w", reg.New(code))
	assert.Equal(t, code, Propagate(typed, "failed", TypeInternal).Code)

	plain := errors.New("connection reset")
	wrapped := Propagate(plain, "failed to load", TypeInternal)
	assert.Equal(t, TypeInternal, wrapped.Type)
	assert.ErrorIs(t, wrapped, plain)
}
