package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"bad request", BadRequest("Invalid user"), http.StatusBadRequest},
		{"conflict", Conflict("User already registered"), http.StatusConflict},
		{"forbidden", Forbidden("Request forbidden"), http.StatusForbidden},
		{"internal", Internal("User update failed", errors.New("db down")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Status())
		})
	}
}

func TestAs_UnwrapsWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", Conflict("User already registered"))

	got := As(wrapped)

	assert.Equal(t, KindConflict, got.Kind)
	assert.Equal(t, "User already registered", got.Message)
	assert.True(t, IsKind(wrapped, KindConflict))
}

func TestAs_ForeignErrorIsInternal(t *testing.T) {
	cause := errors.New("boom")

	got := As(cause)

	assert.Equal(t, KindInternal, got.Kind)
	assert.ErrorIs(t, got, cause)
	assert.False(t, IsKind(cause, KindBadRequest))
}
