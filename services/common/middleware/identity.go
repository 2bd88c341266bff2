package middleware

import (
	"net/http"
	"strings"

	"github.com/corexathletics/storefront/services/common/auth"
	"github.com/gin-gonic/gin"
)

const (
	UserIDKey     = "userID"
	ClaimsKey     = "claims"
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
	CartIDHeader  = "X-Cart-ID"
)

// TokenParser verifies access tokens.
type TokenParser interface {
	Parse(tokenStr, expectedType string) (*auth.Claims, error)
}

// BearerToken reads the token from the Authorization header, falling back to
// the access_token cookie.
func BearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if v, err := c.Cookie(AccessCookie); err == nil {
		return v
	}
	return ""
}

// Authenticate attaches the signed-in user when a valid access token is
// present. Requests without one continue anonymously.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := BearerToken(c); raw != "" {
			if claims, err := tokens.Parse(raw, auth.TypeAccess); err == nil {
				c.Set(UserIDKey, claims.UserID())
				c.Set(ClaimsKey, claims)
			}
		}
		c.Next()
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(UserIDKey)
	return id, id != ""
}

func Claims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
