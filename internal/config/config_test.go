package config

import (
	"errors"
	"testing"
	"time"
)

// TestLoadDefaults verifies defaults are applied when only the token is set.
func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StationsAPIURL != DefaultStationsAPIURL {
		t.Fatalf("expected default stations url, got %q", cfg.StationsAPIURL)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Fatalf("expected 15s fetch timeout, got %v", cfg.FetchTimeout)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Session.IdleTTL != 24*time.Hour {
		t.Fatalf("expected 24h idle ttl, got %v", cfg.Session.IdleTTL)
	}
	if cfg.DB.Enabled() {
		t.Fatalf("expected database to be disabled without DATABASE_URL")
	}
}

// TestLoadFromEnvironment verifies env variables override defaults.
func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("STATIONS_API_URL", "http://localhost:9000/stations")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/ekimei")
	t.Setenv("SESSION_IDLE_TTL", "2h")
	t.Setenv("HTTP_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StationsAPIURL != "http://localhost:9000/stations" {
		t.Fatalf("unexpected stations url %q", cfg.StationsAPIURL)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected production env, got %q", cfg.Env)
	}
	if cfg.Session.IdleTTL != 2*time.Hour {
		t.Fatalf("expected 2h idle ttl, got %v", cfg.Session.IdleTTL)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.HTTP.Addr)
	}
	dsn, err := cfg.DB.DSN()
	if err != nil || dsn != "postgres://localhost:5432/ekimei" {
		t.Fatalf("unexpected dsn %q (%v)", dsn, err)
	}
}

// TestLoadRequiresToken verifies the Telegram token is mandatory.
func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("expected missing env error, got %v", err)
	}
}

// TestLoadRejectsInvalidStationsURL verifies the endpoint must be an absolute http url.
func TestLoadRejectsInvalidStationsURL(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("STATIONS_API_URL", "stations.json")

	_, err := Load()
	if !errors.Is(err, ErrInvalidStationsURL) {
		t.Fatalf("expected invalid url error, got %v", err)
	}
}
