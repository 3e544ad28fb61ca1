package handlers

import (
	"errors"
	"net/http"

	"hotelbooking/internal/domain"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyStay):
		RespondError(c, http.StatusBadRequest, "empty_stay", err.Error(), nil)
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, domain.ErrNoRateForDate):
		var nr domain.NoRateForDateError
		var details any
		if errors.As(err, &nr) {
			details = gin.H{"room_type_id": nr.RoomTypeID, "date": nr.Date}
		}
		RespondError(c, http.StatusUnprocessableEntity, "no_rate_for_date", err.Error(), details)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, domain.ErrRoomUnavailable):
		RespondError(c, http.StatusConflict, "room_unavailable", "kamar tidak tersedia untuk tanggal tersebut", nil)
	case errors.Is(err, domain.ErrLatePaymentAfterCancellation):
		RespondError(c, http.StatusConflict, "late_payment_after_cancellation", "reservasi sudah dibatalkan sebelum pembayaran diterima", nil)
	case errors.Is(err, domain.ErrInvalidTransition):
		RespondError(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
	case errors.Is(err, domain.ErrStaleState):
		RespondError(c, http.StatusConflict, "stale_state", "reservasi diubah oleh proses lain, silakan ulangi", nil)
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}
