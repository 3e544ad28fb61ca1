package handlers

import (
	"errors"
	"net/http"

	"hotelbooking/internal/http/middleware"
	"hotelbooking/internal/services"
	"hotelbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	token, who, err := a.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.LogEvent(middleware.GetRequestID(c), "auth", "login_failed", "email="+req.Email)
			RespondError(c, http.StatusUnauthorized, "invalid_credentials", err.Error(), nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"user_id": who.UserID,
		"role":    who.Role,
	})
}
