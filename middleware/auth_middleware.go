package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/uwrite-api/dto"
	"github.com/uwrite-api/lib/resputil"
)

const (
	// AccessTokenCookie carries the token for browser clients
	AccessTokenCookie = "access_token"

	userIDKey = "userId"
	emailKey  = "email"
)

// TokenValidator verifies an access token
type TokenValidator interface {
	Validate(token string) (*dto.TokenClaims, error)
}

// AuthMiddleware requires a valid token from the Authorization header or the
// access_token cookie and stores the caller's identity on the context
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !resolveIdentity(c, tokens) {
			resputil.HTTPError(c, http.StatusUnauthorized, resputil.Unauthenticated, "Authentication required", nil)
			return
		}
		c.Next()
	}
}

// OptionalAuth resolves the caller when a valid token is present and lets
// anonymous requests through
func OptionalAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolveIdentity(c, tokens)
		c.Next()
	}
}

// CurrentUserID returns the caller resolved by the auth middleware, or ""
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func resolveIdentity(c *gin.Context, tokens TokenValidator) bool {
	raw := bearerToken(c.GetHeader("Authorization"))
	if raw == "" {
		if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
			raw = cookie
		}
	}
	if raw == "" {
		return false
	}

	claims, err := tokens.Validate(raw)
	if err != nil {
		return false
	}
	c.Set(userIDKey, claims.UserID)
	c.Set(emailKey, claims.Email)
	return true
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
