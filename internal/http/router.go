package api

import (
	"log"
	stdhttp "net/http"

	intconfig "hotelbooking/internal/config"
	h "hotelbooking/internal/http/handlers"
	"hotelbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var staffRoles = []string{"admin", "staff"}

func NewRouter(env intconfig.Env, a *h.API) *gin.Engine {
	if err := h.RegisterValidators(); err != nil {
		log.Printf("warning: failed to register validators: %v", err)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		h.RespondError(c, stdhttp.StatusNotFound, "not_found", "route tidak ditemukan", gin.H{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", a.Health)
		api.GET("/db-check", a.DBCheck)
		api.GET("/routes", h.Routes(r))

		api.POST("/auth/login", a.Login)

		api.GET("/quotes", a.GetQuote)
		api.GET("/rooms/:id/availability", a.GetAvailability)

		reservations := api.Group("/reservations")
		reservations.POST("", a.CreateReservation)
		reservations.GET("/:id", a.GetReservation)
		reservations.GET("/:id/invoice", a.GetReservationInvoicePDF)

		staff := reservations.Group("", middleware.RequireAuth(a.Auth), middleware.RequireRoles(staffRoles...))
		staff.PUT("/:id/status", a.ChangeReservationStatus)
		staff.POST("/:id/confirm-payment", a.ConfirmReservationPayment)
		staff.POST("/:id/refund", a.RefundReservation)

		api.POST("/payments/callback", middleware.CallbackToken(env.CallbackToken), a.PaymentCallback)
	}

	return r
}
