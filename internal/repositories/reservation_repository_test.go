package repositories

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var reservationCols = []string{
	"id", "room_id", "room_type_id", "guest_name", "guest_phone", "guest_email",
	"check_in", "check_out", "nights", "subtotal_minor", "discount_minor", "total_minor", "currency",
	"reservation_status", "payment_status", "payment_deadline", "payment_reference",
	"version", "created_at", "updated_at",
}

func reservationRow(id string, deadline driver.Value) []driver.Value {
	created := time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, int64(3), int64(7), "Tester", "0800", "",
		time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		int64(2), int64(25000), int64(2500), int64(22500), "IDR",
		"booked", "pending", deadline, "",
		int64(1), created, created,
	}
}

func TestReservationInsertStoresOptionalFieldsAsNull(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	created := time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC)
	deadline := created.Add(15 * time.Minute)
	res := models.Reservation{
		ID: "r-1", RoomID: 3, RoomTypeID: 7,
		Guest: models.Guest{Name: "Tester", Phone: "0800"},
		Stay: models.Stay{
			CheckIn:  time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		Nights: 2, SubtotalMinor: 25000, DiscountMinor: 2500, TotalMinor: 22500, Currency: "IDR",
		Status: models.StatusBooked, Payment: models.PaymentPending, PaymentDeadline: &deadline,
		Version: 1, CreatedAt: created, UpdatedAt: created,
	}

	mock.ExpectExec("INSERT INTO reservations").
		WithArgs("r-1", int64(3), int64(7), "Tester", "0800", nil,
			"2025-01-03", "2025-01-05", int64(2),
			int64(25000), int64(2500), int64(22500), "IDR",
			"booked", "pending", deadline, nil,
			int64(1), created, created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	paid := res
	paid.ID = "r-2"
	paid.Guest.Email = "tester@example.com"
	paid.Payment = models.PaymentPaid
	paid.PaymentDeadline = nil
	paid.PaymentReference = "PAY-1"
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs("r-2", int64(3), int64(7), "Tester", "0800", "tester@example.com",
			"2025-01-03", "2025-01-05", int64(2),
			int64(25000), int64(2500), int64(22500), "IDR",
			"booked", "paid", nil, "PAY-1",
			int64(1), created, created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := ReservationRepository{DB: db}
	if err := repo.Insert(context.Background(), res); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Insert(context.Background(), paid); err != nil {
		t.Fatalf("insert paid: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReservationGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	deadline := time.Date(2025, 1, 3, 10, 15, 0, 0, time.UTC)
	mock.ExpectQuery("FROM reservations WHERE id=\\?").WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows(reservationCols).AddRow(reservationRow("r-1", deadline)...))
	mock.ExpectQuery("FROM reservations WHERE id=\\?").WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(reservationCols))

	repo := ReservationRepository{DB: db}
	r, err := repo.GetByID(context.Background(), "r-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if r.Status != models.StatusBooked || r.Payment != models.PaymentPending || r.Stay.Nights() != 2 {
		t.Fatalf("unexpected reservation: %+v", r)
	}
	if r.PaymentDeadline == nil || !r.PaymentDeadline.Equal(deadline) {
		t.Fatalf("deadline not mapped: %v", r.PaymentDeadline)
	}

	if _, err := repo.GetByID(context.Background(), "missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReservationUpdateOptimistic(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE reservations").
		WithArgs("cancelled", "pending", sqlmock.AnyArg(), nil, sqlmock.AnyArg(), "r-1", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE reservations").
		WithArgs("booked", "paid", nil, "PAY-1", sqlmock.AnyArg(), "r-1", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := ReservationRepository{DB: db}
	deadline := time.Now()
	cancelled := models.Reservation{ID: "r-1", Status: models.StatusCancelled, Payment: models.PaymentPending, PaymentDeadline: &deadline, UpdatedAt: time.Now()}
	out, err := repo.Update(context.Background(), cancelled, 1)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	if out.Version != 2 {
		t.Fatalf("version not bumped: %d", out.Version)
	}

	paid := models.Reservation{ID: "r-1", Status: models.StatusBooked, Payment: models.PaymentPaid, PaymentReference: "PAY-1", UpdatedAt: time.Now()}
	if _, err := repo.Update(context.Background(), paid, 1); !errors.Is(err, domain.ErrStaleState) {
		t.Fatalf("expected ErrStaleState for the losing writer, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReservationListExpiredPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2025, 1, 3, 10, 20, 0, 0, time.UTC)
	mock.ExpectQuery("payment_deadline < \\?").
		WithArgs("booked", "pending", now, 50).
		WillReturnRows(sqlmock.NewRows(reservationCols).
			AddRow(reservationRow("r-1", now.Add(-5*time.Minute))...).
			AddRow(reservationRow("r-2", now.Add(-time.Minute))...))

	list, err := ReservationRepository{DB: db}.ListExpiredPending(context.Background(), now, 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "r-1" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
