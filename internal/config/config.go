package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config defines the chargebay API configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"CHARGEBAY_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"CHARGEBAY_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"CHARGEBAY_REDIS_ADDR"`
		Password string `yaml:"password" env:"CHARGEBAY_REDIS_PASSWORD"`
	} `yaml:"redis"`
	Auth struct {
		JWTSecret       string `yaml:"jwtSecret" env:"CHARGEBAY_JWT_SECRET"`
		TokenTTLMinutes int    `yaml:"tokenTtlMinutes" env:"CHARGEBAY_TOKEN_TTL_MINUTES"`
		BcryptCost      int    `yaml:"bcryptCost" env:"CHARGEBAY_BCRYPT_COST"`
		OTPTTLSeconds   int    `yaml:"otpTtlSeconds" env:"CHARGEBAY_OTP_TTL_SECONDS"`
	} `yaml:"auth"`
	Booking struct {
		// AllowOverbook keeps the legacy behavior of accepting bookings when
		// a station has no free slots. Off by default.
		AllowOverbook bool `yaml:"allowOverbook" env:"CHARGEBAY_ALLOW_OVERBOOK"`
	} `yaml:"booking"`
	Payment struct {
		BaseURL   string `yaml:"baseUrl" env:"CHARGEBAY_PAYMENT_BASE_URL"`
		KeyID     string `yaml:"keyId" env:"CHARGEBAY_PAYMENT_KEY_ID"`
		KeySecret string `yaml:"keySecret" env:"CHARGEBAY_PAYMENT_KEY_SECRET"`
	} `yaml:"payment"`
	SMTP struct {
		Addr     string `yaml:"addr" env:"CHARGEBAY_SMTP_ADDR"`
		From     string `yaml:"from" env:"CHARGEBAY_SMTP_FROM"`
		Username string `yaml:"username" env:"CHARGEBAY_SMTP_USERNAME"`
		Password string `yaml:"password" env:"CHARGEBAY_SMTP_PASSWORD"`
	} `yaml:"smtp"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Auth.TokenTTLMinutes = 24 * 60
	cfg.Auth.OTPTTLSeconds = 300

	if err := load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	return cfg, nil
}

// HTTPAddress returns the listen address in :port form.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// TokenTTL returns the JWT lifetime.
func (c *Config) TokenTTL() time.Duration {
	if c.Auth.TokenTTLMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

// OTPTTL returns how long a mailed login code stays valid.
func (c *Config) OTPTTL() time.Duration {
	if c.Auth.OTPTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Auth.OTPTTLSeconds) * time.Second
}
