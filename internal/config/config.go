package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port     string `mapstructure:"PORT"`
	GinMode  string `mapstructure:"GIN_MODE"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// AppURL is the keep-alive ping target. Empty means this process's own /health.
	AppURL            string        `mapstructure:"APP_URL"`
	KeepAliveEnabled  bool          `mapstructure:"KEEPALIVE_ENABLED"`
	KeepAliveInterval time.Duration `mapstructure:"KEEPALIVE_INTERVAL"`
	KeepAliveTimeout  time.Duration `mapstructure:"KEEPALIVE_TIMEOUT"`

	GatewayTimeout time.Duration `mapstructure:"GATEWAY_TIMEOUT"`
	CryptoAPIURL   string        `mapstructure:"CRYPTO_API_URL"`
	ExchangeAPIURL string        `mapstructure:"EXCHANGE_API_URL"`
	UserAgent      string        `mapstructure:"USER_AGENT"`

	FetchLogPath      string        `mapstructure:"FETCH_LOG_PATH"`
	FetchLogRetention time.Duration `mapstructure:"FETCH_LOG_RETENTION"`
}

var defaults = map[string]any{
	"PORT":      "8080",
	"GIN_MODE":  "release",
	"LOG_LEVEL": "info",

	"APP_URL":            "",
	"KEEPALIVE_ENABLED":  true,
	"KEEPALIVE_INTERVAL": "120s",
	"KEEPALIVE_TIMEOUT":  "10s",

	"GATEWAY_TIMEOUT":  "10s",
	"CRYPTO_API_URL":   "https://api.coingecko.com/api/v3",
	"EXCHANGE_API_URL": "https://api.exchangerate-api.com/v4",
	"USER_AGENT":       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",

	"FETCH_LOG_PATH":      "fetchlog.db",
	"FETCH_LOG_RETENTION": "720h",
}

// Load reads the .env file if present, then environment variables, over the defaults.
func Load(logger logrus.FieldLogger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, falling back to system env vars")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	// AutomaticEnv overrides every key registered through SetDefault.
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: PORT must not be empty")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return errors.Errorf("config: GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}
	durations := map[string]time.Duration{
		"KEEPALIVE_INTERVAL":  c.KeepAliveInterval,
		"KEEPALIVE_TIMEOUT":   c.KeepAliveTimeout,
		"GATEWAY_TIMEOUT":     c.GatewayTimeout,
		"FETCH_LOG_RETENTION": c.FetchLogRetention,
	}
	for key, d := range durations {
		if d <= 0 {
			return errors.Errorf("config: %s must be positive, got %s", key, d)
		}
	}
	return nil
}

// PingURL returns the keep-alive target.
func (c *Config) PingURL() string {
	if c.AppURL != "" {
		return c.AppURL
	}
	return "http://localhost:" + c.Port + "/health"
}
