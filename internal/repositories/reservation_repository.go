package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "hotelbooking/internal/config"
	intdb "hotelbooking/internal/db"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/utils"
)

type ReservationRepository struct {
	DB *sql.DB
}

func (r ReservationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const reservationColumns = `
	id, room_id, room_type_id, guest_name, guest_phone, COALESCE(guest_email, ''),
	check_in, check_out, nights, subtotal_minor, discount_minor, total_minor, currency,
	reservation_status, payment_status, payment_deadline, COALESCE(payment_reference, ''),
	version, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(s rowScanner) (models.Reservation, error) {
	var (
		r        models.Reservation
		status   string
		payment  string
		deadline sql.NullTime
	)
	err := s.Scan(
		&r.ID, &r.RoomID, &r.RoomTypeID, &r.Guest.Name, &r.Guest.Phone, &r.Guest.Email,
		&r.Stay.CheckIn, &r.Stay.CheckOut, &r.Nights, &r.SubtotalMinor, &r.DiscountMinor, &r.TotalMinor, &r.Currency,
		&status, &payment, &deadline, &r.PaymentReference,
		&r.Version, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return models.Reservation{}, err
	}
	r.Status = models.ReservationStatus(status)
	r.Payment = models.PaymentStatus(payment)
	if deadline.Valid {
		d := deadline.Time.UTC()
		r.PaymentDeadline = &d
	}
	return r, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func (r ReservationRepository) Insert(ctx context.Context, res models.Reservation) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db tidak tersedia")
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO reservations (
			id, room_id, room_type_id, guest_name, guest_phone, guest_email,
			check_in, check_out, nights, subtotal_minor, discount_minor, total_minor, currency,
			reservation_status, payment_status, payment_deadline, payment_reference,
			version, created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		res.ID, res.RoomID, res.RoomTypeID, res.Guest.Name, res.Guest.Phone, intdb.NullIfEmpty(res.Guest.Email),
		utils.FormatDate(res.Stay.CheckIn), utils.FormatDate(res.Stay.CheckOut), res.Nights,
		res.SubtotalMinor, res.DiscountMinor, res.TotalMinor, res.Currency,
		string(res.Status), string(res.Payment), nullTime(res.PaymentDeadline), intdb.NullIfEmpty(res.PaymentReference),
		res.Version, res.CreatedAt.UTC(), res.UpdatedAt.UTC(),
	)
	return err
}

func (r ReservationRepository) GetByID(ctx context.Context, id string) (models.Reservation, error) {
	db := r.db()
	if db == nil {
		return models.Reservation{}, fmt.Errorf("db tidak tersedia")
	}
	res, err := scanReservation(db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Reservation{}, domain.NotFoundError{Resource: "reservation", Err: err}
		}
		return models.Reservation{}, err
	}
	return res, nil
}

// Update writes the mutable lifecycle columns only if nobody else changed the row
// since expectedVersion was read.
func (r ReservationRepository) Update(ctx context.Context, res models.Reservation, expectedVersion int64) (models.Reservation, error) {
	db := r.db()
	if db == nil {
		return models.Reservation{}, fmt.Errorf("db tidak tersedia")
	}
	out, err := db.ExecContext(ctx, `
		UPDATE reservations
		SET reservation_status=?, payment_status=?, payment_deadline=?, payment_reference=?,
		    version=version+1, updated_at=?
		WHERE id=? AND version=?
	`,
		string(res.Status), string(res.Payment), nullTime(res.PaymentDeadline), intdb.NullIfEmpty(res.PaymentReference),
		res.UpdatedAt.UTC(), res.ID, expectedVersion,
	)
	if err != nil {
		return models.Reservation{}, err
	}
	n, err := out.RowsAffected()
	if err != nil {
		return models.Reservation{}, err
	}
	if n == 0 {
		return models.Reservation{}, domain.ErrStaleState
	}
	res.Version = expectedVersion + 1
	return res, nil
}

// ListExpiredPending returns unpaid bookings whose payment deadline is before now.
func (r ReservationRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]models.Reservation, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("db tidak tersedia")
	}
	rows, err := db.QueryContext(ctx, `SELECT `+reservationColumns+`
		FROM reservations
		WHERE reservation_status = ?
		  AND payment_status = ?
		  AND payment_deadline IS NOT NULL
		  AND payment_deadline < ?
		ORDER BY payment_deadline ASC
		LIMIT ?
	`, string(models.StatusBooked), string(models.PaymentPending), now.UTC(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
