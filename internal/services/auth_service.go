package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelbooking/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("email atau password salah")

// AuthService issues and verifies staff tokens.
type AuthService struct {
	Staff  StaffDirectory
	Secret []byte
	TTL    time.Duration
	Clock  Clock
}

type StaffClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (s AuthService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}

// Login checks the bcrypt hash and returns a signed HS256 token.
func (s AuthService) Login(ctx context.Context, email, password string) (string, domain.RequestContext, error) {
	u, err := s.Staff.FindByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.RequestContext{}, ErrInvalidCredentials
		}
		return "", domain.RequestContext{}, err
	}
	if !strings.EqualFold(u.Status, "active") {
		return "", domain.RequestContext{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", domain.RequestContext{}, ErrInvalidCredentials
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	now := s.now()
	claims := StaffClaims{
		UserID: u.ID,
		Role:   strings.ToLower(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", domain.RequestContext{}, fmt.Errorf("gagal membuat token: %w", err)
	}
	return signed, domain.RequestContext{UserID: u.ID, Role: claims.Role}, nil
}

// Verify parses a bearer token and returns the staff identity it carries.
func (s AuthService) Verify(token string) (domain.RequestContext, error) {
	claims := &StaffClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return domain.RequestContext{}, fmt.Errorf("token tidak valid: %w", err)
	}
	return domain.RequestContext{UserID: claims.UserID, Role: claims.Role}, nil
}
