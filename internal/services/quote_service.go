package services

import (
	"context"
	"errors"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
)

// QuoteService prices a stay without touching the ledger.
type QuoteService struct {
	Rates RateSource
}

func (s QuoteService) Quote(ctx context.Context, roomTypeID int64, stay models.Stay) (models.Quote, error) {
	if roomTypeID <= 0 {
		return models.Quote{}, domain.ValidationError{Field: "room_type_id", Msg: "id tidak valid"}
	}
	if stay.Nights() == 0 {
		return models.Quote{}, domain.ErrEmptyStay
	}
	periods, err := s.Rates.ListForStay(ctx, roomTypeID, stay)
	if err != nil {
		return models.Quote{}, domain.InternalError{Msg: "gagal membaca rate period", Err: err}
	}
	rates, err := domain.ResolveNightlyRates(roomTypeID, periods, stay)
	if err != nil {
		return models.Quote{}, err
	}
	q, err := domain.ComputeQuote(rates)
	if err != nil {
		if errors.Is(err, domain.ErrMixedCurrency) {
			return models.Quote{}, domain.ValidationError{Field: "currency", Msg: "rate period memakai mata uang berbeda", Err: err}
		}
		return models.Quote{}, err
	}
	q.RoomTypeID = roomTypeID
	return q, nil
}
