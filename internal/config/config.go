package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// Per-connection inbound frame budget.
	RatePerSecond float64 `mapstructure:"rate_per_second" yaml:"rate_per_second"`
	RateBurst     int     `mapstructure:"rate_burst" yaml:"rate_burst"`

	// AI responder settings. The API key is only read from the environment.
	AIModel   string        `mapstructure:"ai_model" yaml:"ai_model"`
	AITimeout time.Duration `mapstructure:"ai_timeout" yaml:"ai_timeout"`
	AIAPIKey  string        `mapstructure:"ai_api_key" yaml:"-"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		RatePerSecond:     20,
		RateBurst:         40,
		AIModel:           "gpt-3.5-turbo",
		AITimeout:         15 * time.Second,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.RatePerSecond != 0 {
		c.RatePerSecond = other.RatePerSecond
	}
	if other.RateBurst != 0 {
		c.RateBurst = other.RateBurst
	}
	if other.AIModel != "" {
		c.AIModel = other.AIModel
	}
	if other.AITimeout != 0 {
		c.AITimeout = other.AITimeout
	}
	if other.AIAPIKey != "" {
		c.AIAPIKey = other.AIAPIKey
	}
}
