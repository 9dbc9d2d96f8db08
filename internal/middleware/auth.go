package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"devconnect/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CurrentUserKey 是 gin context 中保存当前用户 ID 的键
const CurrentUserKey = "user_id"

// TokenVerifier resolves a bearer token to a user ID.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// bearerToken reads "Authorization: Bearer <t>", falling back to the
// x-auth-token header the web client sends. malformed is true when an
// Authorization header was sent but carried no usable bearer token and no
// fallback was given either.
func bearerToken(c *gin.Context) (token string, malformed bool) {
	h := c.GetHeader("Authorization")
	if scheme, t, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
		if t = strings.TrimSpace(t); t != "" {
			return t, false
		}
	}
	if t := strings.TrimSpace(c.GetHeader("x-auth-token")); t != "" {
		return t, false
	}
	return "", h != ""
}

// AuthRequired rejects the request with 401 unless it carries a valid token.
func AuthRequired(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, malformed := bearerToken(c)
		if malformed {
			log.Printf("auth: malformed Authorization header on %s %s", c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			return
		}

		userID, err := tokens.Verify(token)
		switch {
		case err == nil:
			c.Set(CurrentUserKey, userID)
			c.Next()
		case errors.Is(err, services.ErrTokenMissing):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		default:
			log.Printf("auth: rejected token on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		}
	}
}

// CurrentUserID returns the ID set by AuthRequired.
func CurrentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(CurrentUserKey).(uuid.UUID)
}
