// Package config loads server configuration from an optional config file
// and BITMAP_MCP_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the tunable settings of the server. Every field has a
// working default; a config file is never required.
type Config struct {
	// LogLevel gates debug logging on stderr ("debug" or "info").
	LogLevel string `mapstructure:"log_level"`

	// DefaultTolerance is applied when a search request omits tolerance.
	DefaultTolerance float64 `mapstructure:"default_tolerance"`

	// CaptureScale is the physical-pixels-per-logical-unit factor assumed
	// for screen captures (2.0 on a typical high-DPI display).
	CaptureScale float64 `mapstructure:"capture_scale"`

	// CacheBitmaps keeps decoded images in memory across tool calls.
	CacheBitmaps bool `mapstructure:"cache_bitmaps"`
}

// Load reads configuration from the file at path (optional; "" skips the
// file) and from the environment. Environment variables use the
// BITMAP_MCP prefix, e.g. BITMAP_MCP_LOG_LEVEL=debug.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("default_tolerance", 0.0)
	v.SetDefault("capture_scale", 1.0)
	v.SetDefault("cache_bitmaps", true)

	v.SetEnvPrefix("BITMAP_MCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.DefaultTolerance < 0 || cfg.DefaultTolerance > 1 {
		return nil, fmt.Errorf("default_tolerance %g outside [0, 1]", cfg.DefaultTolerance)
	}
	if cfg.CaptureScale <= 0 {
		return nil, fmt.Errorf("capture_scale %g must be positive", cfg.CaptureScale)
	}

	return &cfg, nil
}
