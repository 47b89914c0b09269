package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rideshare/internal/auth"
)

const (
	claimsKey = "authClaims"
	bearer    = "Bearer "
)

// Authenticator verifies a raw bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*auth.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the verified claims on the context. All failures share one response.
func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearer) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, err := authn.Authenticate(c.Request.Context(), strings.TrimSpace(header[len(bearer):]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified claims set by AuthMiddleware, or nil.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// Identity returns the authenticated subject, or "" if none.
func Identity(c *gin.Context) string {
	if claims := ClaimsFrom(c); claims != nil {
		return claims.Subject
	}
	return ""
}
