package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadRequiresDSNAndSecret(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("CHARGEBAY_POSTGRES_DSN", "")
	t.Setenv("CHARGEBAY_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("config loaded without dsn and secret")
	}

	t.Setenv("CHARGEBAY_POSTGRES_DSN", "postgres://localhost/chargebay")
	if _, err := Load(); err == nil {
		t.Fatal("config loaded without jwt secret")
	}

	t.Setenv("CHARGEBAY_JWT_SECRET", "secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddress() != ":8080" {
		t.Errorf("address = %q, want default :8080", cfg.HTTPAddress())
	}
	if cfg.TokenTTL() != 24*time.Hour {
		t.Errorf("token ttl = %v, want 24h default", cfg.TokenTTL())
	}
	if cfg.OTPTTL() != 5*time.Minute {
		t.Errorf("otp ttl = %v, want 5m default", cfg.OTPTTL())
	}
	if cfg.Booking.AllowOverbook {
		t.Error("overbooking enabled by default")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("http:\n  port: \"9000\"\ndatabase:\n  dsn: postgres://file/db\nauth:\n  jwtSecret: file-secret\n  tokenTtlMinutes: 30\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("CHARGEBAY_HTTP_PORT", "9100")
	t.Setenv("CHARGEBAY_ALLOW_OVERBOOK", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddress() != ":9100" {
		t.Errorf("address = %q, env should win over file", cfg.HTTPAddress())
	}
	if cfg.Database.DSN != "postgres://file/db" {
		t.Errorf("dsn = %q, want file value", cfg.Database.DSN)
	}
	if cfg.TokenTTL() != 30*time.Minute {
		t.Errorf("token ttl = %v, want 30m from file", cfg.TokenTTL())
	}
	if !cfg.Booking.AllowOverbook {
		t.Error("allow_overbook env override ignored")
	}
}
