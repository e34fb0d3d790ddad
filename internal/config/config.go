// Package config loads client configuration (cluster id, replica
// addresses, timeouts, logging) via viper, adapted from the teacher's
// configuration loader and trimmed to what a ledger client needs: no
// database, middleware, executor, or monitor sections.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"ledgerclient/internal/logger"
)

// Config is the client's full runtime configuration.
type Config struct {
	ClusterLo uint64
	ClusterHi uint64
	Addresses []string

	ConnectTimeout    time.Duration
	RequestTimeout    time.Duration
	RequestTimeoutMax time.Duration

	Log LogConfig
}

// LogConfig mirrors logger.Config's fields so it can be loaded from the
// same file/env source as the rest of Config.
type LogConfig struct {
	Level  string
	Format string
	Output string
}

func defaults() *Config {
	return &Config{
		Addresses:         []string{"127.0.0.1:3000"},
		ConnectTimeout:    5 * time.Second,
		RequestTimeout:    500 * time.Millisecond,
		RequestTimeoutMax: 30 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Loader wraps a viper.Viper configured with the client's env-var prefix
// and defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader builds a Loader bound to environment variables prefixed
// LEDGERCLIENT_ (e.g. LEDGERCLIENT_ADDRESSES, LEDGERCLIENT_REQUEST_TIMEOUT).
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix("LEDGERCLIENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := defaults()
	v.SetDefault("cluster_lo", d.ClusterLo)
	v.SetDefault("cluster_hi", d.ClusterHi)
	v.SetDefault("addresses", d.Addresses)
	v.SetDefault("connect_timeout", d.ConnectTimeout.String())
	v.SetDefault("request_timeout", d.RequestTimeout.String())
	v.SetDefault("request_timeout_max", d.RequestTimeoutMax.String())
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)

	return &Loader{v: v}
}

// LoadFile merges a config file (toml/yaml/json, detected by extension)
// into the loader before Load is called. Missing files are not an error:
// the client falls back to defaults and environment variables.
func (l *Loader) LoadFile(path string) error {
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}

// Load materializes and validates the final Config.
func (l *Loader) Load() (*Config, error) {
	cfg := &Config{
		ClusterLo:         l.v.GetUint64("cluster_lo"),
		ClusterHi:         l.v.GetUint64("cluster_hi"),
		Addresses:         l.v.GetStringSlice("addresses"),
		ConnectTimeout:    l.v.GetDuration("connect_timeout"),
		RequestTimeout:    l.v.GetDuration("request_timeout"),
		RequestTimeoutMax: l.v.GetDuration("request_timeout_max"),
		Log: LogConfig{
			Level:  l.v.GetString("log.level"),
			Format: l.v.GetString("log.format"),
			Output: l.v.GetString("log.output"),
		},
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.Addresses) == 0 {
		return fmt.Errorf("config: at least one replica address is required")
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be positive")
	}
	if cfg.RequestTimeoutMax < cfg.RequestTimeout {
		return fmt.Errorf("config: request_timeout_max must be >= request_timeout")
	}
	if cfg.ConnectTimeout <= 0 {
		return fmt.Errorf("config: connect_timeout must be positive")
	}
	return nil
}

// ToLoggerConfig adapts the client's log section into logger.Config.
func (c *Config) ToLoggerConfig() *logger.Config {
	return &logger.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		Output: c.Log.Output,
	}
}

// AddressList returns the addresses joined the way the transport driver
// expects (comma-separated, matching its NewDriver signature).
func (c *Config) AddressList() string {
	return strings.Join(c.Addresses, ",")
}
