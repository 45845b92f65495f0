// Package config loads the settings shared by the suntrack commands.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/errors"
	"gopkg.in/yaml.v3"

	"github.com/thurmanmarka/suntrack"
	"github.com/thurmanmarka/suntrack/internal/export"
)

// EnvConfigPath names the environment variable holding a config file path.
const EnvConfigPath = "SUNTRACK_CONFIG"

// Config aggregates the defaults used by the commands; flags override them.
type Config struct {
	Location LocationConfig `yaml:"location"`
	Window   WindowConfig   `yaml:"window"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
}

// LocationConfig is the observer and the time zone days are counted in.
type LocationConfig struct {
	Lat      float64 `yaml:"lat"`
	Lon      float64 `yaml:"lon"`
	TimeZone string  `yaml:"timezone"`
}

// WindowConfig is the default span around today when no range is given.
type WindowConfig struct {
	Days int `yaml:"days"`
}

// OutputConfig selects how results are written.
type OutputConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the built-in configuration: Raleigh, NC, a 15 day window
// either side of today, text output and info logging.
func Default() *Config {
	return &Config{
		Location: LocationConfig{Lat: 35.835, Lon: -78.783, TimeZone: "America/New_York"},
		Window:   WindowConfig{Days: 15},
		Output:   OutputConfig{Format: string(export.FormatText)},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (or $SUNTRACK_CONFIG when path is empty), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	errs := &errors.M{}
	floatEnv := func(key string, dst *float64) {
		if v := os.Getenv(key); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs.Append(fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = parsed
		}
	}
	floatEnv("SUNTRACK_LAT", &cfg.Location.Lat)
	floatEnv("SUNTRACK_LON", &cfg.Location.Lon)
	if v := os.Getenv("SUNTRACK_TZ"); v != "" {
		cfg.Location.TimeZone = v
	}
	if v := os.Getenv("SUNTRACK_WINDOW_DAYS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			errs.Append(fmt.Errorf("SUNTRACK_WINDOW_DAYS: %w", err))
		} else {
			cfg.Window.Days = parsed
		}
	}
	if v := os.Getenv("SUNTRACK_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("SUNTRACK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SUNTRACK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return errs.Err()
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	errs := &errors.M{}
	errs.Append(c.Coordinates().Validate())
	if _, err := time.LoadLocation(c.Location.TimeZone); err != nil {
		errs.Append(fmt.Errorf("location.timezone: %w", err))
	}
	if c.Window.Days < 0 {
		errs.Append(fmt.Errorf("window.days must not be negative, got %d", c.Window.Days))
	}
	if _, err := export.ParseFormat(c.Output.Format); err != nil {
		errs.Append(fmt.Errorf("output.format: %w", err))
	}
	if _, err := c.LogLevel(); err != nil {
		errs.Append(err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs.Append(fmt.Errorf("log.format: unknown format %q (use text or json)", c.Log.Format))
	}
	return errs.Err()
}

// Coordinates returns the configured observer.
func (c *Config) Coordinates() suntrack.Coordinates {
	return suntrack.Coordinates{Lat: c.Location.Lat, Lon: c.Location.Lon}
}

// TimeLocation loads the configured time zone.
func (c *Config) TimeLocation() (*time.Location, error) {
	return time.LoadLocation(c.Location.TimeZone)
}

// LogLevel parses the configured level name.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return lvl, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// NewLogger builds the slog logger described by the Log section.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, _ := c.LogLevel()
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
