package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusByKind(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation("bad").Status())
	assert.Equal(t, http.StatusNotFound, NotFound("missing").Status())
	assert.Equal(t, http.StatusInternalServerError, Unexpected(errors.New("boom")).Status())
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("report: %w", NotFound("User not found"))

	got := As(wrapped)
	assert.Equal(t, KindNotFound, got.Kind)
	assert.Equal(t, "User not found", got.Error())
	assert.True(t, IsKind(wrapped, KindNotFound))
}

func TestAsHidesUntypedCause(t *testing.T) {
	cause := errors.New("connection reset")

	got := As(cause)
	assert.Equal(t, KindUnexpected, got.Kind)
	assert.Equal(t, "an unexpected error occurred", got.Error())
	assert.ErrorIs(t, got, cause)
}
