package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"auction_backend/internal/platform/identity"
)

// AccessTokenCookie is the cookie the access token is mirrored into for browser clients.
const AccessTokenCookie = "access_token"

// TokenParser verifies an access token.
type TokenParser interface {
	Parse(tokenStr string) (uint, string, error)
}

// Authenticate returns a Gin middleware that resolves the caller's identity.
// A valid token from the Authorization header (preferred) or the access token
// cookie yields an authenticated identity; a missing or invalid token yields
// identity.Anonymous. The request is never rejected here.
func Authenticate(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := identity.Anonymous
		if tokenStr := tokenFromRequest(c); tokenStr != "" {
			if userID, username, err := parser.Parse(tokenStr); err == nil {
				id = identity.New(userID, username)
			}
		}
		identity.Set(c, id)
		c.Next()
	}
}

// RequireAuth rejects requests whose identity is anonymous.
// It must run after Authenticate.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !identity.FromGin(c).IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}
