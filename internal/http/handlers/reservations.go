package handlers

import (
	"fmt"
	"net/http"

	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/http/middleware"
	"hotelbooking/internal/services"
	"hotelbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

type createReservationRequest struct {
	RoomID     int64  `json:"room_id" binding:"required,gt=0"`
	CheckIn    string `json:"check_in_date" binding:"required,isodate"`
	CheckOut   string `json:"check_out_date" binding:"required,isodate"`
	GuestName  string `json:"guest_name" binding:"required,max=120"`
	GuestPhone string `json:"guest_phone" binding:"required,max=32"`
	GuestEmail string `json:"guest_email" binding:"omitempty,email,max=160"`
}

// POST /api/reservations
func (a *API) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	checkIn, _ := utils.ParseDate(req.CheckIn)
	checkOut, _ := utils.ParseDate(req.CheckOut)

	res, err := a.reservations(c).Create(c.Request.Context(), services.CreateReservationInput{
		RoomID:   req.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guest: models.Guest{
			Name:  req.GuestName,
			Phone: req.GuestPhone,
			Email: req.GuestEmail,
		},
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Location", "/api/reservations/"+res.ID)
	c.JSON(http.StatusCreated, toReservationResponse(res))
}

// GET /api/reservations/:id
func (a *API) GetReservation(c *gin.Context) {
	res, err := a.reservations(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(res))
}

// GET /api/reservations/:id/invoice
func (a *API) GetReservationInvoicePDF(c *gin.Context) {
	pdfBytes, filename, err := a.invoices(c).Generate(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/reservations/:id/status  (staff)
func (a *API) ChangeReservationStatus(c *gin.Context) {
	var req changeStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	logStaffAction(c, "change_status", "status="+req.Status)
	res, err := a.reservations(c).ChangeStatus(c.Request.Context(), c.Param("id"), models.ReservationStatus(req.Status))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(res))
}

type confirmPaymentRequest struct {
	PaymentReference string `json:"payment_reference" binding:"required,max=128"`
}

// POST /api/reservations/:id/confirm-payment  (staff, manual transfer)
func (a *API) ConfirmReservationPayment(c *gin.Context) {
	var req confirmPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	logStaffAction(c, "confirm_payment", "payment_reference="+req.PaymentReference)
	res, err := a.reservations(c).ConfirmPayment(c.Request.Context(), c.Param("id"), req.PaymentReference)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(res))
}

// POST /api/reservations/:id/refund  (staff)
func (a *API) RefundReservation(c *gin.Context) {
	logStaffAction(c, "refund", "")
	res, err := a.reservations(c).Refund(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(res))
}

// logStaffAction records which staff account requested a reservation change.
func logStaffAction(c *gin.Context, action, detail string) {
	who, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "staff", action,
		fmt.Sprintf("user_id=%d role=%s reservation_id=%s %s", who.UserID, who.Role, c.Param("id"), detail))
}
