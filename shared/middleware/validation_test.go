package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carrental/user-service/shared/apperror"
	"github.com/carrental/user-service/shared/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=5"`
}

func TestValidateRequest(t *testing.T) {
	assert.Nil(t, ValidateRequest(sampleRequest{Email: "a@example.com"}))

	errs := ValidateRequest(sampleRequest{Name: "toolong"})
	require.Len(t, errs, 2)
	assert.Equal(t, "Email", errs[0].Field)
	assert.Equal(t, "required", errs[0].Type)
	assert.Equal(t, "Value is too long", errs[1].Message)
}

func TestRespondWithAppError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{"bad request", apperror.BadRequest("Invalid user"), http.StatusBadRequest, "Invalid user"},
		{"conflict", apperror.Conflict("User already registered"), http.StatusConflict, "User already registered"},
		{"forbidden", apperror.Forbidden("Request forbidden"), http.StatusForbidden, "Request forbidden"},
		{"untyped", errors.New("dial tcp: refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondWithAppError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var resp models.GenericResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedStatus, resp.Status)
			assert.Equal(t, tt.expectedMsg, resp.Message)
			assert.NotContains(t, w.Body.String(), "refused")
		})
	}
}
