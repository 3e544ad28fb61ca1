package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const callbackTokenHeader = "X-Callback-Token"

// CallbackToken guards the payment gateway webhook with a shared secret.
// An empty secret disables the check (local development).
func CallbackToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		got := c.GetHeader(callbackTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "unauthorized: callback token tidak valid",
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}
