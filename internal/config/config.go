// Package config loads shardhunt settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/shardhunt/internal/geo"
	"github.com/abhisek/shardhunt/internal/quest"
)

// Config holds all shardhunt configuration.
type Config struct {
	// Hunt tunes the tasks.
	Hunt HuntConfig `yaml:"hunt"`

	// Server configures the HTTP API.
	Server ServerConfig `yaml:"server"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// HuntConfig configures the three tasks. Durations are Go duration strings.
type HuntConfig struct {
	TargetLat      float64 `yaml:"target_lat"`
	TargetLon      float64 `yaml:"target_lon"`
	RadiusMeters   float64 `yaml:"radius_meters"`
	SimulateOffset float64 `yaml:"simulate_offset"`
	Cooldown       string  `yaml:"cooldown"`
	VideoThreshold string  `yaml:"video_threshold"`
	VideoLength    string  `yaml:"video_length"`
	SecretLength   int     `yaml:"secret_length"`
}

// ServerConfig configures `shardhunt serve`.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // TUI log file; empty means next to the database
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	q := quest.DefaultConfig()
	return &Config{
		Hunt: HuntConfig{
			TargetLat:      q.Target.Lat,
			TargetLon:      q.Target.Lon,
			RadiusMeters:   q.RadiusMeters,
			SimulateOffset: q.SimulateOffset,
			Cooldown:       "60s",
			VideoThreshold: "15s",
			VideoLength:    "30s",
			SecretLength:   q.SecretLength,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: "5s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath resolves the config file path in priority order:
// 1. SHARDHUNT_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/shardhunt/config.yaml
// 3. ~/.config/shardhunt/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("SHARDHUNT_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "shardhunt", "config.yaml"), nil
}

// Load reads configuration from a YAML file over the defaults, then
// applies environment overrides. A missing file yields the defaults. The
// result is validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("SHARDHUNT_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("SHARDHUNT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// ValidLevels lists the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate checks ranges and parses every duration.
func (c *Config) Validate() error {
	var errs []error

	h := c.Hunt
	if h.TargetLat < -90 || h.TargetLat > 90 {
		errs = append(errs, fmt.Errorf("hunt.target_lat %v out of range", h.TargetLat))
	}
	if h.TargetLon < -180 || h.TargetLon > 180 {
		errs = append(errs, fmt.Errorf("hunt.target_lon %v out of range", h.TargetLon))
	}
	if h.RadiusMeters <= 0 {
		errs = append(errs, errors.New("hunt.radius_meters must be positive"))
	}
	if h.SecretLength < 4 || h.SecretLength > 32 {
		errs = append(errs, fmt.Errorf("hunt.secret_length %d not in [4, 32]", h.SecretLength))
	}

	if _, err := parsePositive("hunt.cooldown", h.Cooldown); err != nil {
		errs = append(errs, err)
	}
	threshold, err := parsePositive("hunt.video_threshold", h.VideoThreshold)
	if err != nil {
		errs = append(errs, err)
	}
	length, err := parsePositive("hunt.video_length", h.VideoLength)
	if err != nil {
		errs = append(errs, err)
	}
	if threshold > 0 && length > 0 && threshold > length {
		errs = append(errs, fmt.Errorf("hunt.video_threshold %s exceeds hunt.video_length %s", h.VideoThreshold, h.VideoLength))
	}

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if _, err := parsePositive("server.shutdown_timeout", c.Server.ShutdownTimeout); err != nil {
		errs = append(errs, err)
	}

	validLevel := false
	for _, l := range ValidLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		errs = append(errs, fmt.Errorf("logging.level %q (valid: %v)", c.Logging.Level, ValidLevels))
	}

	return errors.Join(errs...)
}

// Quest converts the hunt settings for the quest package. Call it on a
// validated config.
func (c *Config) Quest() quest.Config {
	return quest.Config{
		Target:         geo.Coord{Lat: c.Hunt.TargetLat, Lon: c.Hunt.TargetLon},
		RadiusMeters:   c.Hunt.RadiusMeters,
		SimulateOffset: c.Hunt.SimulateOffset,
		Cooldown:       mustDuration(c.Hunt.Cooldown, 60*time.Second),
		VideoThreshold: mustDuration(c.Hunt.VideoThreshold, 15*time.Second),
		VideoLength:    mustDuration(c.Hunt.VideoLength, 30*time.Second),
		SecretLength:   c.Hunt.SecretLength,
	}
}

// ShutdownTimeout returns the server drain timeout.
func (c *Config) ShutdownTimeout() time.Duration {
	return mustDuration(c.Server.ShutdownTimeout, 5*time.Second)
}

func parsePositive(field, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", field, s)
	}
	return d, nil
}

func mustDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
