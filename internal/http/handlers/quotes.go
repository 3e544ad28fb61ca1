package handlers

import (
	"net/http"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

type quoteQuery struct {
	RoomTypeID int64  `form:"room_type_id"`
	RoomID     int64  `form:"room_id"`
	CheckIn    string `form:"check_in" binding:"required,isodate"`
	CheckOut   string `form:"check_out" binding:"required,isodate"`
}

// GET /api/quotes?room_type_id=&check_in=&check_out=
// room_id may be given instead of room_type_id.
func (a *API) GetQuote(c *gin.Context) {
	var q quoteQuery
	if !BindQueryOrError(c, &q) {
		return
	}
	ctx := c.Request.Context()

	roomTypeID := q.RoomTypeID
	if roomTypeID <= 0 && q.RoomID > 0 {
		id, err := a.Rooms.RoomTypeOf(ctx, q.RoomID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		roomTypeID = id
	}
	if roomTypeID <= 0 {
		RespondError(c, http.StatusBadRequest, "validation_error", "room_type_id atau room_id wajib diisi", nil)
		return
	}

	checkIn, _ := utils.ParseDate(q.CheckIn)
	checkOut, _ := utils.ParseDate(q.CheckOut)
	stay, err := domain.NewStay(checkIn, checkOut)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	quote, err := a.Quotes.Quote(ctx, roomTypeID, stay)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

type availabilityQuery struct {
	CheckIn  string `form:"check_in" binding:"required,isodate"`
	CheckOut string `form:"check_out" binding:"required,isodate"`
}

// GET /api/rooms/:id/availability?check_in=&check_out=
func (a *API) GetAvailability(c *gin.Context) {
	roomID, ok := paramInt64(c, "id")
	if !ok {
		return
	}
	var q availabilityQuery
	if !BindQueryOrError(c, &q) {
		return
	}
	checkIn, _ := utils.ParseDate(q.CheckIn)
	checkOut, _ := utils.ParseDate(q.CheckOut)

	if _, err := a.Rooms.RoomTypeOf(c.Request.Context(), roomID); err != nil {
		RespondDomainError(c, err)
		return
	}
	free, err := a.reservations(c).IsAvailable(c.Request.Context(), roomID, checkIn, checkOut)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room_id":   roomID,
		"check_in":  q.CheckIn,
		"check_out": q.CheckOut,
		"available": free,
	})
}
