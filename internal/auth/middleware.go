package auth

import (
	"strings"

	"github.com/Aidin1998/apiexercises/common/apiutil"
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/gin-gonic/gin"
)

const subjectContextKey = "auth_subject"

// ErrNotAuthenticated is returned when no bearer credentials are sent
var ErrNotAuthenticated = errors.Unauthorized.Explain("Not authenticated")

// BearerToken extracts the token from an "Authorization: Bearer" header
func BearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", ErrNotAuthenticated
	}
	return strings.TrimSpace(token), nil
}

// Middleware rejects requests without a valid bearer token and stores the
// token subject for the handlers.
func Middleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer, err := BearerToken(c)
		if err != nil {
			apiutil.Abort(c, err)
			return
		}
		claims, err := tokens.ValidateToken(bearer)
		if err != nil {
			apiutil.Abort(c, err)
			return
		}
		c.Set(subjectContextKey, claims.Subject)
		c.Next()
	}
}

// Subject returns the authenticated subject or an empty string
func Subject(c *gin.Context) string {
	return c.GetString(subjectContextKey)
}
