package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "hotelbooking/internal/config"
	"hotelbooking/internal/domain"
)

// StaffUser is a hotel staff account allowed to drive reservation status changes.
type StaffUser struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	Status       string
}

type StaffRepository struct {
	DB *sql.DB
}

func (r StaffRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r StaffRepository) FindByEmail(ctx context.Context, email string) (StaffUser, error) {
	db := r.db()
	if db == nil {
		return StaffUser{}, fmt.Errorf("db tidak tersedia")
	}
	var u StaffUser
	err := db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, role, status
		FROM staff_users
		WHERE email = ?
		LIMIT 1
	`, strings.ToLower(strings.TrimSpace(email))).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StaffUser{}, domain.NotFoundError{Resource: "staff user", Err: err}
		}
		return StaffUser{}, err
	}
	return u, nil
}
