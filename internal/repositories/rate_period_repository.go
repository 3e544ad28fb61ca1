package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "hotelbooking/internal/config"
	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/utils"
)

// RatePeriodRepository reads rate_periods. The booking flow never writes them.
type RatePeriodRepository struct {
	DB              *sql.DB
	DefaultCurrency string
}

func (r RatePeriodRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListForStay returns every period of the room type that touches at least one night of the stay.
func (r RatePeriodRepository) ListForStay(ctx context.Context, roomTypeID int64, stay models.Stay) ([]models.RatePeriod, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("db tidak tersedia")
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, room_type_id, start_date, end_date,
		       weekday_price, weekend_price, discount_percent, COALESCE(currency, '')
		FROM rate_periods
		WHERE room_type_id = ?
		  AND start_date < ?
		  AND end_date >= ?
		ORDER BY start_date ASC, id ASC
	`, roomTypeID, utils.FormatDate(stay.CheckOut), utils.FormatDate(stay.CheckIn))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RatePeriod{}
	for rows.Next() {
		var (
			p                         models.RatePeriod
			weekday, weekend, percent string
		)
		if err := rows.Scan(&p.ID, &p.RoomTypeID, &p.StartDate, &p.EndDate, &weekday, &weekend, &percent, &p.Currency); err != nil {
			return nil, err
		}
		p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
		if p.Currency == "" {
			p.Currency = r.currency()
		}
		digits := utils.MinorDigits(p.Currency)
		if p.WeekdayPriceMinor, err = utils.ParseDecimalMinor(weekday, digits); err != nil {
			return nil, fmt.Errorf("rate period %d weekday_price: %w", p.ID, err)
		}
		if p.WeekendPriceMinor, err = utils.ParseDecimalMinor(weekend, digits); err != nil {
			return nil, fmt.Errorf("rate period %d weekend_price: %w", p.ID, err)
		}
		// percent with two decimals == basis points
		if p.DiscountBasisPoints, err = utils.ParseDecimalMinor(percent, 2); err != nil {
			return nil, fmt.Errorf("rate period %d discount_percent: %w", p.ID, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r RatePeriodRepository) currency() string {
	if c := strings.TrimSpace(r.DefaultCurrency); c != "" {
		return strings.ToUpper(c)
	}
	return "IDR"
}
