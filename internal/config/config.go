// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: CLI flags > environment variables > config file > embedded > defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vitalis-app/cputray/internal/models"
	"github.com/vitalis-app/cputray/internal/window"
)

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "1s", "500ms", "2s".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds all application configuration.
type Config struct {
	Settings models.AppSettings `yaml:"settings"`
	Sampling SamplingConfig     `yaml:"sampling"`
	Windows  WindowsConfig      `yaml:"windows"`
	Logging  LoggingConfig      `yaml:"logging"`
}

// SamplingConfig holds process sampling settings.
type SamplingConfig struct {
	StartupDelay Duration `yaml:"startup_delay"`
	SettleDelay  Duration `yaml:"settle_delay"`
	TopProcesses int      `yaml:"top_processes"`
}

// WindowsConfig holds popup window dimensions in logical pixels.
type WindowsConfig struct {
	PopupWidth  float64 `yaml:"popup_width"`
	PopupHeight float64 `yaml:"popup_height"`
	AlertWidth  float64 `yaml:"alert_width"`
	AlertHeight float64 `yaml:"alert_height"`
	AlertOffset float64 `yaml:"alert_offset"`
	MainWidth   float64 `yaml:"main_width"`
	MainHeight  float64 `yaml:"main_height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	sizes := window.DefaultSizes()
	return &Config{
		Settings: models.DefaultSettings(),
		Sampling: SamplingConfig{
			StartupDelay: Duration{2 * time.Second},
			SettleDelay:  Duration{1 * time.Second},
			TopProcesses: models.MaxRanked,
		},
		Windows: WindowsConfig{
			PopupWidth:  sizes.Popup.W,
			PopupHeight: sizes.Popup.H,
			AlertWidth:  sizes.Alert.W,
			AlertHeight: sizes.Alert.H,
			AlertOffset: sizes.AlertOffset,
			MainWidth:   sizes.Main.W,
			MainHeight:  sizes.Main.H,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// WindowSizes converts the window section into window.Sizes.
func (c *Config) WindowSizes() window.Sizes {
	s := window.DefaultSizes()
	s.Popup.W, s.Popup.H = c.Windows.PopupWidth, c.Windows.PopupHeight
	s.Alert.W, s.Alert.H = c.Windows.AlertWidth, c.Windows.AlertHeight
	s.Main.W, s.Main.H = c.Windows.MainWidth, c.Windows.MainHeight
	s.AlertOffset = c.Windows.AlertOffset
	return s
}

// LoadFromBytes parses YAML configuration from a byte slice and merges with defaults.
// Environment variables take highest precedence and override values from the byte slice.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config data: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// Load reads configuration from a YAML file and merges with defaults.
// If path is empty or the file does not exist, only defaults and environment
// variables are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromBytes(nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return LoadFromBytes(nil)
	}

	return LoadFromBytes(data)
}

// CLIOverrides holds values from command-line flags.
// Empty strings are treated as "not set" and skipped.
type CLIOverrides struct {
	LogLevel string
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > external YAML file > embedded bytes > defaults.
//
// An optional configPath argument controls external-file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value  → use that path ("" means no external file)
func LoadLayered(cli CLIOverrides, embedded []byte, configPath ...string) (*Config, error) {
	cfg := DefaultConfig()

	if len(embedded) > 0 {
		if err := yaml.Unmarshal(embedded, cfg); err != nil {
			return nil, fmt.Errorf("parsing embedded config: %w", err)
		}
	}

	var filePath string
	if len(configPath) > 0 {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}

	return cfg, nil
}

// Marshal serializes the config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Malformed numeric values are ignored.
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv("CPUTRAY_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if v := os.Getenv("CPUTRAY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Settings.HighCPUThreshold = f
		}
	}
	if v := os.Getenv("CPUTRAY_REFRESH_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Settings.RefreshInterval = n
		}
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Settings.RefreshInterval <= 0 {
		return fmt.Errorf("settings.refresh_interval must be positive (got %d)", c.Settings.RefreshInterval)
	}
	if !c.Settings.TrayDisplayMode.Valid() {
		return fmt.Errorf("settings.tray_display_mode must be %q or %q (got %q)",
			models.DisplayAlways, models.DisplayWarningOnly, c.Settings.TrayDisplayMode)
	}
	if c.Settings.HighCPUDuration < 0 {
		return fmt.Errorf("settings.high_cpu_duration must not be negative")
	}
	if c.Sampling.SettleDelay.Duration <= 0 {
		return fmt.Errorf("sampling.settle_delay must be positive")
	}
	if c.Sampling.StartupDelay.Duration < 0 {
		return fmt.Errorf("sampling.startup_delay must not be negative")
	}
	if c.Sampling.TopProcesses <= 0 || c.Sampling.TopProcesses > models.MaxRanked {
		return fmt.Errorf("sampling.top_processes must be between 1 and %d", models.MaxRanked)
	}
	for name, v := range map[string]float64{
		"popup_width": c.Windows.PopupWidth, "popup_height": c.Windows.PopupHeight,
		"alert_width": c.Windows.AlertWidth, "alert_height": c.Windows.AlertHeight,
		"main_width": c.Windows.MainWidth, "main_height": c.Windows.MainHeight,
	} {
		if v <= 0 {
			return fmt.Errorf("windows.%s must be positive", name)
		}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error (got %q)", c.Logging.Level)
	}
	return nil
}
