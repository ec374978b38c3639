package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vitalis-app/cputray/internal/models"
)

func TestLoadLayered_CLIOverridesEverything(t *testing.T) {
	embedded := []byte("logging:\n  level: \"warn\"")
	t.Setenv("CPUTRAY_LOG_LEVEL", "error")
	cli := CLIOverrides{LogLevel: "debug"}

	cfg, err := LoadLayered(cli, embedded, "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadLayered_EnvOverridesEmbed(t *testing.T) {
	embedded := []byte("settings:\n  high_cpu_threshold: 75\n  refresh_interval: 5")
	t.Setenv("CPUTRAY_THRESHOLD", "90.5")

	cfg, err := LoadLayered(CLIOverrides{}, embedded, "")
	require.NoError(t, err)
	assert.Equal(t, 90.5, cfg.Settings.HighCPUThreshold)
	assert.Equal(t, 5, cfg.Settings.RefreshInterval)
}

func TestLoadLayered_FileOverridesEmbed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings:\n  tray_display_mode: warning-only\n"), 0o600))
	embedded := []byte("settings:\n  tray_display_mode: always\n  enable_high_cpu_popup: true")

	cfg, err := LoadLayered(CLIOverrides{}, embedded, path)
	require.NoError(t, err)
	assert.Equal(t, models.DisplayWarningOnly, cfg.Settings.TrayDisplayMode)
	assert.True(t, cfg.Settings.EnableHighCPUPopup)
}

func TestLoadLayered_DefaultsWhenEmpty(t *testing.T) {
	cfg, err := LoadLayered(CLIOverrides{}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Sampling.StartupDelay.Duration)
	assert.Equal(t, time.Second, cfg.Sampling.SettleDelay.Duration)
	assert.Equal(t, models.DefaultSettings(), cfg.Settings)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromBytes_Durations(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("sampling:\n  startup_delay: 500ms\n  settle_delay: 2s\n"))
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Sampling.StartupDelay.Duration)
	assert.Equal(t, 2*time.Second, cfg.Sampling.SettleDelay.Duration)

	_, err = LoadFromBytes([]byte("sampling:\n  settle_delay: soon\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Settings, cfg.Settings)
}

func TestEnvOverrides_IgnoreMalformed(t *testing.T) {
	t.Setenv("CPUTRAY_REFRESH_INTERVAL", "often")
	cfg, err := LoadFromBytes(nil)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Settings.RefreshInterval)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"interval", func(c *Config) { c.Settings.RefreshInterval = 0 }},
		{"mode", func(c *Config) { c.Settings.TrayDisplayMode = "never" }},
		{"duration", func(c *Config) { c.Settings.HighCPUDuration = -1 }},
		{"settle", func(c *Config) { c.Sampling.SettleDelay.Duration = 0 }},
		{"top", func(c *Config) { c.Sampling.TopProcesses = 11 }},
		{"popup", func(c *Config) { c.Windows.PopupWidth = 0 }},
		{"level", func(c *Config) { c.Logging.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMarshal_RoundTripsThroughLoad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.HighCPUThreshold = 65
	cfg.Sampling.StartupDelay = Duration{3 * time.Second}

	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "startup_delay: 3s")

	back, err := LoadFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestWindowSizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Windows.AlertOffset = 14
	cfg.Windows.PopupHeight = 500

	sz := cfg.WindowSizes()
	assert.Equal(t, 14.0, sz.AlertOffset)
	assert.Equal(t, 500.0, sz.Popup.H)
	assert.Equal(t, 420.0, sz.Popup.W)
}

func TestWatch_DeliversChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings:\n  refresh_interval: 3\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zap.NewNop(), func(c *Config) {
			select {
			case changes <- c:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("settings:\n  refresh_interval: 9\n"), 0o600))

	// A write can surface as a truncate followed by the new content, so
	// wait for the final value rather than the first event.
	deadline := time.After(5 * time.Second)
	for seen := false; !seen; {
		select {
		case c := <-changes:
			seen = c.Settings.RefreshInterval == 9
		case <-deadline:
			t.Fatal("no config change delivered")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
