package repositories

import (
	"database/sql"
	"fmt"
	"log"

	intdb "hotelbooking/internal/db"
)

// tableDDL is applied in order; rooms and rate_periods are owned by room management
// and only created here so a fresh database can boot.
var tableDDL = []struct {
	name string
	ddl  string
}{
	{"rooms", `
CREATE TABLE IF NOT EXISTS rooms (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	room_type_id BIGINT NOT NULL,
	name VARCHAR(100) NOT NULL,
	KEY idx_room_type (room_type_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`},
	{"rate_periods", `
CREATE TABLE IF NOT EXISTS rate_periods (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	room_type_id BIGINT NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	weekday_price DECIMAL(14,2) NOT NULL,
	weekend_price DECIMAL(14,2) NOT NULL,
	discount_percent DECIMAL(5,2) NOT NULL DEFAULT 0,
	currency CHAR(3) NULL,
	KEY idx_room_type_dates (room_type_id, start_date, end_date)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`},
	{"reservations", `
CREATE TABLE IF NOT EXISTS reservations (
	id CHAR(36) PRIMARY KEY,
	room_id BIGINT NOT NULL,
	room_type_id BIGINT NOT NULL,
	guest_name VARCHAR(255) NOT NULL,
	guest_phone VARCHAR(50) NOT NULL,
	guest_email VARCHAR(255) NULL,
	check_in DATE NOT NULL,
	check_out DATE NOT NULL,
	nights INT NOT NULL,
	subtotal_minor BIGINT NOT NULL,
	discount_minor BIGINT NOT NULL,
	total_minor BIGINT NOT NULL,
	currency CHAR(3) NOT NULL,
	reservation_status VARCHAR(20) NOT NULL,
	payment_status VARCHAR(20) NOT NULL,
	payment_deadline DATETIME NULL,
	payment_reference VARCHAR(100) NULL,
	version BIGINT NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	KEY idx_payment_deadline (payment_status, payment_deadline),
	KEY idx_room (room_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`},
	{"room_nights", `
CREATE TABLE IF NOT EXISTS room_nights (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	room_id BIGINT NOT NULL,
	night_date DATE NOT NULL,
	reservation_id CHAR(36) NOT NULL,
	created_at DATETIME NOT NULL,
	UNIQUE KEY uniq_room_night (room_id, night_date),
	KEY idx_reservation (reservation_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`},
	{"staff_users", `
CREATE TABLE IF NOT EXISTS staff_users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(30) NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`},
}

// EnsureSchema creates the engine tables that do not exist yet.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db tidak tersedia")
	}
	for _, t := range tableDDL {
		if intdb.HasTable(db, t.name) {
			continue
		}
		if _, err := db.Exec(t.ddl); err != nil {
			return fmt.Errorf("create %s: %w", t.name, err)
		}
		log.Printf("[SCHEMA] tabel %s dibuat", t.name)
	}
	return nil
}
