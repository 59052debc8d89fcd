package config

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newTestLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port: got %q, want 8080", cfg.Port)
	}
	if cfg.GatewayTimeout != 10*time.Second {
		t.Errorf("GatewayTimeout: got %v, want 10s", cfg.GatewayTimeout)
	}
	if cfg.KeepAliveInterval != 2*time.Minute {
		t.Errorf("KeepAliveInterval: got %v, want 2m", cfg.KeepAliveInterval)
	}
	if !cfg.KeepAliveEnabled {
		t.Error("KeepAliveEnabled should default to true")
	}
	if cfg.PingURL() != "http://localhost:8080/health" {
		t.Errorf("PingURL: got %q", cfg.PingURL())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GATEWAY_TIMEOUT", "3s")
	t.Setenv("KEEPALIVE_ENABLED", "false")
	t.Setenv("APP_URL", "https://portfolio.example.com")
	t.Setenv("CRYPTO_API_URL", "http://localhost:1234")

	cfg, err := Load(newTestLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port: got %q, want 9090", cfg.Port)
	}
	if cfg.GatewayTimeout != 3*time.Second {
		t.Errorf("GatewayTimeout: got %v, want 3s", cfg.GatewayTimeout)
	}
	if cfg.KeepAliveEnabled {
		t.Error("KeepAliveEnabled should be false")
	}
	if cfg.PingURL() != "https://portfolio.example.com" {
		t.Errorf("PingURL: got %q", cfg.PingURL())
	}
	if cfg.CryptoAPIURL != "http://localhost:1234" {
		t.Errorf("CryptoAPIURL: got %q", cfg.CryptoAPIURL)
	}
}

func TestLoadRejectsNonPositiveDuration(t *testing.T) {
	t.Setenv("KEEPALIVE_INTERVAL", "0s")

	if _, err := Load(newTestLogger()); err == nil {
		t.Error("expected error for zero KEEPALIVE_INTERVAL")
	}
}

func TestLoadRejectsUnknownGinMode(t *testing.T) {
	t.Setenv("GIN_MODE", "production")

	if _, err := Load(newTestLogger()); err == nil {
		t.Error("expected error for unknown GIN_MODE")
	}
}
