package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	StoreBackend string
	DBDSN        string
	RedisURL     string

	PaymentWindow time.Duration
	SweepInterval time.Duration
	SweepBatch    int

	JWTSecret       string
	CallbackToken   string
	CORSOrigins     []string
	DefaultCurrency string

	// memory backend only: seeded staff account
	AdminEmail    string
	AdminPassword string
}

const (
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// ErrMissingJWTSecret stops a database-backed deployment from signing staff
// tokens with the development fallback.
var ErrMissingJWTSecret = errors.New("JWT_SECRET wajib diisi untuk backend mysql")

// devJWTSecret is only accepted with the memory backend.
const devJWTSecret = "dev-secret-change-me"

func LoadEnv() (Env, error) {
	// .env is optional; real deployments set the variables directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[CONFIG] .env tidak terbaca: %v", err)
	}

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND")))
	if backend != BackendMemory {
		backend = BackendMySQL
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/hotel_booking?parseTime=true&loc=UTC&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	currency := strings.ToUpper(strings.TrimSpace(os.Getenv("DEFAULT_CURRENCY")))
	if currency == "" {
		currency = "IDR"
	}

	secret := os.Getenv("JWT_SECRET")
	if strings.TrimSpace(secret) == "" {
		if backend != BackendMemory {
			return Env{}, ErrMissingJWTSecret
		}
		log.Println("[CONFIG] JWT_SECRET kosong, memakai secret development (hanya backend memory)")
		secret = devJWTSecret
	}

	return Env{
		AppAddr:         appAddr,
		GinMode:         strings.TrimSpace(os.Getenv("GIN_MODE")),
		StoreBackend:    backend,
		DBDSN:           dsn,
		RedisURL:        strings.TrimSpace(os.Getenv("REDIS_URL")),
		PaymentWindow:   durationEnv("PAYMENT_WINDOW", 15*time.Minute),
		SweepInterval:   durationEnv("SWEEP_INTERVAL", 30*time.Second),
		SweepBatch:      intEnv("SWEEP_BATCH", 200),
		JWTSecret:       secret,
		CallbackToken:   strings.TrimSpace(os.Getenv("CALLBACK_TOKEN")),
		CORSOrigins:     splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		DefaultCurrency: currency,
		AdminEmail:      strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
	}, nil
}

func durationEnv(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("[CONFIG] %s=%q tidak valid, pakai default %s", key, raw, def)
		return def
	}
	return d
}

func intEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("[CONFIG] %s=%q tidak valid, pakai default %d", key, raw, def)
		return def
	}
	return n
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
