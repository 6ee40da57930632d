package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/papapumpkin/justify/internal/justify"
	"github.com/papapumpkin/justify/internal/watch"
)

// MaxWidth is the widest line a run accepts. Together with
// textio.MaxWordLen it keeps every line's badness far inside int64 range.
const MaxWidth = 10_000

var (
	// ErrInvalidWidth indicates a line width outside [1, MaxWidth].
	ErrInvalidWidth = errors.New("line width out of range")
	// ErrInvalidLogLevel indicates an unrecognized log level.
	ErrInvalidLogLevel = errors.New("unknown log level")
	// ErrInvalidDebounce indicates a negative watch debounce.
	ErrInvalidDebounce = errors.New("debounce must not be negative")
)

// Config holds all runtime configuration for a justify run.
// Values are populated from .justify.yaml, JUSTIFY_* env vars, and CLI flags.
type Config struct {
	Width      int    `mapstructure:"width"`
	Input      string `mapstructure:"input"`
	Output     string `mapstructure:"output"`
	Report     string `mapstructure:"report"`
	Telemetry  string `mapstructure:"telemetry"`
	Verbose    bool   `mapstructure:"verbose"`
	LogLevel   string `mapstructure:"log_level"`
	LogJSON    bool   `mapstructure:"log_json"`
	DebounceMS int    `mapstructure:"debounce_ms"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("width", justify.DefaultWidth)
	viper.SetDefault("input", "input.txt")
	viper.SetDefault("output", "output.txt")
	viper.SetDefault("report", "")
	viper.SetDefault("telemetry", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_json", false)
	viper.SetDefault("debounce_ms", int(watch.DefaultDebounce/time.Millisecond))

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Width > MaxWidth {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidWidth, c.Width, MaxWidth)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDebounce, c.DebounceMS)
	}
	return nil
}
