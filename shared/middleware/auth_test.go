package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(email string) Claims {
	return Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		email, ok := GetCallerEmail(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, email)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	expired := validClaims("alice@example.com")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "valid token",
			header:         "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, validClaims("alice@example.com")),
			expectedStatus: http.StatusOK,
			expectedBody:   "alice@example.com",
		},
		{
			name:           "missing header",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			header:         "Basic abc",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong secret",
			header:         "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims("alice@example.com")),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired",
			header:         "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, expired),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong algorithm",
			header:         "Bearer " + signToken(t, jwt.SigningMethodHS512, testSecret, validClaims("alice@example.com")),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no email claim",
			header:         "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, validClaims("")),
			expectedStatus: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestGetCallerEmailUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetCallerEmail(c)
	assert.False(t, ok)

	SetCallerEmail(c, "bob@example.com")
	email, ok := GetCallerEmail(c)
	assert.True(t, ok)
	assert.Equal(t, "bob@example.com", email)
}
