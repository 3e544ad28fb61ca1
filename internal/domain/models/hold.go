package models

import "time"

// Hold is one reservation's claim on a room as the ledger sees it.
type Hold struct {
	RoomID        int64
	ReservationID string
	ClaimedAt     time.Time
}
