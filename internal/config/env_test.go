package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadEnvRequiresJWTSecretForMySQL(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mysql")
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadEnv(); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}

	t.Setenv("STORE_BACKEND", "")
	if _, err := LoadEnv(); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("mysql is the default backend and needs a secret too, got %v", err)
	}
}

func TestLoadEnvMemoryBackendFallsBackToDevSecret(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("JWT_SECRET", "")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if env.JWTSecret != devJWTSecret {
		t.Fatalf("expected dev secret, got %q", env.JWTSecret)
	}
}

func TestLoadEnvReadsSettings(t *testing.T) {
	t.Setenv("STORE_BACKEND", "MySQL")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PAYMENT_WINDOW", "20m")
	t.Setenv("SWEEP_BATCH", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DEFAULT_CURRENCY", "usd")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if env.StoreBackend != BackendMySQL || env.JWTSecret != "s3cret" {
		t.Fatalf("unexpected backend/secret: %q %q", env.StoreBackend, env.JWTSecret)
	}
	if env.PaymentWindow != 20*time.Minute || env.SweepBatch != 200 {
		t.Fatalf("unexpected durations: window=%s batch=%d", env.PaymentWindow, env.SweepBatch)
	}
	if len(env.CORSOrigins) != 2 || env.DefaultCurrency != "USD" {
		t.Fatalf("unexpected origins/currency: %v %q", env.CORSOrigins, env.DefaultCurrency)
	}
}
