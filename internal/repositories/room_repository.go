package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "hotelbooking/internal/config"
	"hotelbooking/internal/domain"
)

type RoomRepository struct {
	DB *sql.DB
}

func (r RoomRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// RoomTypeOf resolves which room type (and so which rate periods) a room is priced by.
func (r RoomRepository) RoomTypeOf(ctx context.Context, roomID int64) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("db tidak tersedia")
	}
	var roomTypeID int64
	err := db.QueryRowContext(ctx, `SELECT room_type_id FROM rooms WHERE id=? LIMIT 1`, roomID).Scan(&roomTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "room", Err: err}
		}
		return 0, err
	}
	return roomTypeID, nil
}
