package middleware

import (
	"net/http"
	"strings"

	"hotelbooking/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	userRoleKey   = "userRole"
	userIDKey     = "userID"
	requestCtxKey = "requestContext"
)

// TokenVerifier turns a bearer token into the staff identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (domain.RequestContext, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's role for RequireRoles.
func RequireAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "unauthorized: token tidak ditemukan",
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		who, err := v.Verify(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "unauthorized: token tidak valid",
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Set(userIDKey, who.UserID)
		c.Set(userRoleKey, who.Role)
		c.Set(requestCtxKey, who)
		c.Next()
	}
}

// CurrentUser returns the identity set by RequireAuth.
func CurrentUser(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(requestCtxKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	who, ok := v.(domain.RequestContext)
	return who, ok
}
