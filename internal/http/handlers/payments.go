package handlers

import (
	"fmt"
	"net/http"

	"hotelbooking/internal/http/middleware"
	"hotelbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

type paymentCallbackRequest struct {
	ReservationID    string `json:"reservation_id" binding:"required"`
	PaymentReference string `json:"payment_reference" binding:"required,max=128"`
	Status           string `json:"status" binding:"required,oneof=success pending failure"`
}

// POST /api/payments/callback
// Only "success" confirms; the other statuses are acknowledged so the gateway stops retrying.
func (a *API) PaymentCallback(c *gin.Context) {
	var req paymentCallbackRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	rid := middleware.GetRequestID(c)

	if req.Status != "success" {
		utils.LogEvent(rid, "payment_callback", req.Status, fmt.Sprintf("reservation_id=%s payment_reference=%s", req.ReservationID, req.PaymentReference))
		c.JSON(http.StatusAccepted, gin.H{"reservation_id": req.ReservationID, "status": req.Status, "acknowledged": true})
		return
	}

	res, err := a.reservations(c).ConfirmPayment(c.Request.Context(), req.ReservationID, req.PaymentReference)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(res))
}
