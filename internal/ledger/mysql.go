package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "hotelbooking/internal/config"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/utils"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY, raised by the (room_id, night_date) unique key.
const mysqlDuplicateEntry = 1062

// MySQL stores one room_nights row per held night. The unique key on
// (room_id, night_date) makes overlapping claims fail across processes.
type MySQL struct {
	DB *sql.DB
}

func (l MySQL) db() *sql.DB {
	if l.DB != nil {
		return l.DB
	}
	return intconfig.DB
}

func (l MySQL) TryClaim(ctx context.Context, roomID int64, stay models.Stay, reservationID string) error {
	nights := stay.EachNight()
	if len(nights) == 0 {
		return domain.ErrEmptyStay
	}
	db := l.db()
	if db == nil {
		return fmt.Errorf("db tidak tersedia")
	}

	ph := make([]string, 0, len(nights))
	args := make([]any, 0, len(nights)*3)
	for _, n := range nights {
		ph = append(ph, "(?, ?, ?, UTC_TIMESTAMP())")
		args = append(args, roomID, utils.FormatDate(n), reservationID)
	}

	// A single multi-row INSERT is atomic: on duplicate key no row of the claim survives.
	_, err := db.ExecContext(ctx, `
		INSERT INTO room_nights (room_id, night_date, reservation_id, created_at)
		VALUES `+strings.Join(ph, ","), args...)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return domain.ErrRoomUnavailable
		}
		return err
	}
	return nil
}

func (l MySQL) Release(ctx context.Context, roomID int64, reservationID string) error {
	db := l.db()
	if db == nil {
		return fmt.Errorf("db tidak tersedia")
	}
	_, err := db.ExecContext(ctx, `DELETE FROM room_nights WHERE room_id=? AND reservation_id=?`, roomID, reservationID)
	return err
}

func (l MySQL) IsAvailable(ctx context.Context, roomID int64, stay models.Stay) (bool, error) {
	db := l.db()
	if db == nil {
		return false, fmt.Errorf("db tidak tersedia")
	}
	var held int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM room_nights
		WHERE room_id = ?
		  AND night_date >= ?
		  AND night_date < ?
	`, roomID, utils.FormatDate(stay.CheckIn), utils.FormatDate(stay.CheckOut)).Scan(&held)
	if err != nil {
		return false, err
	}
	return held == 0, nil
}

// ListHolds groups held nights by reservation and returns those first claimed
// before the cutoff, keyset-paged on (claimed_at, reservation_id) after the cursor.
func (l MySQL) ListHolds(ctx context.Context, claimedBefore time.Time, after models.Hold, limit int) ([]models.Hold, error) {
	rows, err := l.db().QueryContext(ctx, `
		SELECT room_id, reservation_id, MIN(created_at) AS claimed_at
		FROM room_nights
		WHERE created_at < ?
		GROUP BY room_id, reservation_id
		HAVING (claimed_at, reservation_id) > (?, ?)
		ORDER BY claimed_at, reservation_id
		LIMIT ?
	`, claimedBefore.UTC(), after.ClaimedAt.UTC(), after.ReservationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Hold{}
	for rows.Next() {
		var h models.Hold
		if err := rows.Scan(&h.RoomID, &h.ReservationID, &h.ClaimedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
