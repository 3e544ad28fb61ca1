package handlers

import (
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/utils"
)

type nightResponse struct {
	Date          string `json:"date"`
	Weekend       bool   `json:"weekend"`
	PeriodID      int64  `json:"period_id"`
	Price         string `json:"price"`
	PriceMinor    int64  `json:"price_minor"`
	DiscountBasis int64  `json:"discount_basis_points"`
}

type quoteResponse struct {
	RoomTypeID      int64           `json:"room_type_id"`
	CheckIn         string          `json:"check_in"`
	CheckOut        string          `json:"check_out"`
	Nights          int             `json:"nights"`
	WeekdayNights   int             `json:"weekday_nights"`
	WeekendNights   int             `json:"weekend_nights"`
	Currency        string          `json:"currency"`
	Subtotal        string          `json:"subtotal"`
	Discount        string          `json:"discount_amount"`
	GrandTotal      string          `json:"grand_total"`
	SubtotalMinor   int64           `json:"subtotal_minor"`
	DiscountMinor   int64           `json:"discount_amount_minor"`
	GrandTotalMinor int64           `json:"grand_total_minor"`
	NightlyRates    []nightResponse `json:"nightly_rates"`
}

func toQuoteResponse(q models.Quote) quoteResponse {
	digits := utils.MinorDigits(q.Currency)
	nights := make([]nightResponse, 0, len(q.Rates))
	for _, r := range q.Rates {
		weekend := domain.IsWeekend(r.Date)
		price := r.WeekdayPriceMinor
		if weekend {
			price = r.WeekendPriceMinor
		}
		nights = append(nights, nightResponse{
			Date:          utils.FormatDate(r.Date),
			Weekend:       weekend,
			PeriodID:      r.PeriodID,
			Price:         utils.FormatMinor(price, digits),
			PriceMinor:    price,
			DiscountBasis: r.DiscountBasisPoints,
		})
	}
	return quoteResponse{
		RoomTypeID:      q.RoomTypeID,
		CheckIn:         utils.FormatDate(q.Stay.CheckIn),
		CheckOut:        utils.FormatDate(q.Stay.CheckOut),
		Nights:          q.Nights,
		WeekdayNights:   q.WeekdayNights,
		WeekendNights:   q.WeekendNights,
		Currency:        q.Currency,
		Subtotal:        utils.FormatMinor(q.SubtotalMinor, digits),
		Discount:        utils.FormatMinor(q.DiscountMinor, digits),
		GrandTotal:      utils.FormatMinor(q.GrandTotalMinor, digits),
		SubtotalMinor:   q.SubtotalMinor,
		DiscountMinor:   q.DiscountMinor,
		GrandTotalMinor: q.GrandTotalMinor,
		NightlyRates:    nights,
	}
}

type reservationResponse struct {
	ID               string  `json:"id"`
	RoomID           int64   `json:"room_id"`
	RoomTypeID       int64   `json:"room_type_id"`
	GuestName        string  `json:"guest_name"`
	GuestPhone       string  `json:"guest_phone"`
	GuestEmail       string  `json:"guest_email,omitempty"`
	CheckIn          string  `json:"check_in_date"`
	CheckOut         string  `json:"check_out_date"`
	Nights           int     `json:"nights"`
	Currency         string  `json:"currency"`
	Subtotal         string  `json:"subtotal"`
	Discount         string  `json:"discount_amount"`
	GrandTotal       string  `json:"grand_total"`
	GrandTotalMinor  int64   `json:"grand_total_minor"`
	Status           string  `json:"reservation_status"`
	Payment          string  `json:"payment_status"`
	PaymentDeadline  *string `json:"payment_deadline"`
	PaymentReference string  `json:"payment_reference,omitempty"`
	Version          int64   `json:"version"`
	CreatedAt        string  `json:"created_at"`
}

func toReservationResponse(r models.Reservation) reservationResponse {
	digits := utils.MinorDigits(r.Currency)
	var deadline *string
	if r.PaymentDeadline != nil {
		s := r.PaymentDeadline.UTC().Format(time.RFC3339)
		deadline = &s
	}
	return reservationResponse{
		ID:               r.ID,
		RoomID:           r.RoomID,
		RoomTypeID:       r.RoomTypeID,
		GuestName:        r.Guest.Name,
		GuestPhone:       r.Guest.Phone,
		GuestEmail:       r.Guest.Email,
		CheckIn:          utils.FormatDate(r.Stay.CheckIn),
		CheckOut:         utils.FormatDate(r.Stay.CheckOut),
		Nights:           r.Nights,
		Currency:         r.Currency,
		Subtotal:         utils.FormatMinor(r.SubtotalMinor, digits),
		Discount:         utils.FormatMinor(r.DiscountMinor, digits),
		GrandTotal:       utils.FormatMinor(r.TotalMinor, digits),
		GrandTotalMinor:  r.TotalMinor,
		Status:           string(r.Status),
		Payment:          string(r.Payment),
		PaymentDeadline:  deadline,
		PaymentReference: r.PaymentReference,
		Version:          r.Version,
		CreatedAt:        r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
