package config_test

import (
	"testing"

	"cashops/backend/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ALLOWED_ORIGIN", "DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD",
		"REDIS_DB", "DASHBOARD_TTL_SECONDS", "AUTH_SECRET", "ACCESS_TOKEN_TTL_MINUTES",
	} {
		t.Setenv(key, "")
	}

	cfg := config.Load()
	if cfg.Port != "8080" {
		t.Fatalf("default port = %q, want 8080", cfg.Port)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("address = %q, want :8080", cfg.Address())
	}
	if cfg.AllowedOrigin != "http://127.0.0.1:3000" {
		t.Fatalf("default origin = %q", cfg.AllowedOrigin)
	}
	if cfg.DashboardTTLSeconds != 5 {
		t.Fatalf("default dashboard TTL = %d, want 5", cfg.DashboardTTLSeconds)
	}
	if cfg.AccessTokenTTLMinutes != 10080 {
		t.Fatalf("default token TTL = %d, want 10080", cfg.AccessTokenTTLMinutes)
	}
	if cfg.DatabaseURL != "" || cfg.RedisAddr != "" {
		t.Fatalf("database/redis should default to empty, got %q / %q", cfg.DatabaseURL, cfg.RedisAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGIN", "https://ops.example.com")
	t.Setenv("DATABASE_URL", "postgres://localhost/cashops")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DASHBOARD_TTL_SECONDS", "30")
	t.Setenv("AUTH_SECRET", "  trimmed-secret  ")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "60")

	cfg := config.Load()
	if cfg.Port != "9000" {
		t.Fatalf("port = %q, want 9000", cfg.Port)
	}
	if cfg.AllowedOrigin != "https://ops.example.com" {
		t.Fatalf("origin = %q", cfg.AllowedOrigin)
	}
	if cfg.RedisDB != 3 {
		t.Fatalf("redis db = %d, want 3", cfg.RedisDB)
	}
	if cfg.DashboardTTLSeconds != 30 {
		t.Fatalf("dashboard TTL = %d, want 30", cfg.DashboardTTLSeconds)
	}
	if cfg.AuthSecret != "trimmed-secret" {
		t.Fatalf("auth secret = %q, want trimmed", cfg.AuthSecret)
	}
	if cfg.AccessTokenTTLMinutes != 60 {
		t.Fatalf("token TTL = %d, want 60", cfg.AccessTokenTTLMinutes)
	}
}

func TestLoadRejectsBadDurations(t *testing.T) {
	t.Setenv("DASHBOARD_TTL_SECONDS", "not-a-number")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "-5")

	cfg := config.Load()
	if cfg.DashboardTTLSeconds != 5 {
		t.Fatalf("dashboard TTL fallback = %d, want 5", cfg.DashboardTTLSeconds)
	}
	if cfg.AccessTokenTTLMinutes != 10080 {
		t.Fatalf("token TTL fallback = %d, want 10080", cfg.AccessTokenTTLMinutes)
	}
}
