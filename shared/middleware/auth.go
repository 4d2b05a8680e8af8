package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const callerEmailKey = "email"

// Claims is the token payload issued by the auth service. Only the email is
// used here; it identifies the caller's account.
type Claims struct {
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies an HS256 bearer token and stores the caller's email
// in the request context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			RespondWithError(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			RespondWithError(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := parser.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
			return secret, nil
		})
		if err != nil || !token.Valid || claims.Email == "" {
			RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(callerEmailKey, claims.Email)
		c.Next()
	}
}

// GetCallerEmail returns the authenticated caller's email.
func GetCallerEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(callerEmailKey)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}

// SetCallerEmail stores the caller's email; used by tests and trusted upstreams.
func SetCallerEmail(c *gin.Context, email string) {
	c.Set(callerEmailKey, email)
}
