package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"quickrent/internal/domain/models"
)

const sessionKey = "session"

// RequireAuth validates the bearer token and stores an explicit Session in
// the context. Handlers never reach for ambient user state.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		sess := models.Session{}
		if v, ok := claims["user_id"].(float64); ok {
			sess.UserID = int64(v)
		}
		if v, ok := claims["email"].(string); ok {
			sess.Email = v
		}
		if v, ok := claims["role"].(string); ok {
			sess.Role = v
		}
		if sess.UserID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RequireRole gates a route group to one role; admin passes everywhere.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if sess.Role != role && sess.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// GetSession returns the authenticated session, when present.
func GetSession(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return models.Session{}, false
	}
	sess, ok := v.(models.Session)
	return sess, ok
}

// SetSession injects a session directly; used by handler tests.
func SetSession(c *gin.Context, sess models.Session) {
	c.Set(sessionKey, sess)
}
