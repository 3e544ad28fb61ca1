package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "hotel booking engine berjalan", "backend": a.Backend})
}

func (a *API) DBCheck(c *gin.Context) {
	if a.Storage == nil {
		c.JSON(http.StatusOK, gin.H{"message": "storage in-memory, tidak ada database", "backend": a.Backend})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := a.Storage.PingContext(ctx); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "db_unavailable", "gagal terhubung ke database", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "koneksi database OK", "backend": a.Backend})
}

// Routes lists the registered routes of r.
func Routes(r *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		routes := r.Routes()
		out := make([]gin.H, 0, len(routes))
		for _, rt := range routes {
			out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
		}
		c.JSON(http.StatusOK, gin.H{"routes": out})
	}
}
