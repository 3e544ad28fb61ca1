package handlers

import (
	"context"

	"hotelbooking/internal/http/middleware"
	"hotelbooking/internal/services"

	"github.com/gin-gonic/gin"
)

// Pinger is the storage health check behind /api/db-check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a plain function such as config.Ping to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// API holds the services every handler works with. Services are value types;
// each handler copies the one it needs and stamps the request id on it.
type API struct {
	Quotes       services.QuoteService
	Rooms        services.RoomDirectory
	Reservations services.ReservationService
	Invoices     services.InvoiceService
	Auth         services.AuthService
	Storage      Pinger
	Backend      string
}

func (a *API) reservations(c *gin.Context) services.ReservationService {
	svc := a.Reservations
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

func (a *API) invoices(c *gin.Context) services.InvoiceService {
	svc := a.Invoices
	svc.Reservations = a.reservations(c)
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}
