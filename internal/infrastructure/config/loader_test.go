package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDockingDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.False(t, mgr.viper.GetBool("docking.config_docking_with_shift"))
	assert.True(t, mgr.viper.GetBool("docking.ghost_tear_off"))
	assert.InDelta(t, 8.0, mgr.viper.GetFloat64("docking.ghost_tear_off_threshold"), 1e-9)
	assert.Equal(t, 200, mgr.viper.GetInt("docking.debug_event_log_capacity"))
	assert.InDelta(t, 0.22, mgr.viper.GetFloat64("overlay.outer_band_frac"), 1e-9)
}

func TestLoad_CreatesDefaultFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	mgr, err := NewManagerAt(dir)
	require.NoError(t, err)

	// Act
	require.NoError(t, mgr.Load())

	// Assert
	assert.FileExists(t, filepath.Join(dir, "config.toml"))
	cfg := mgr.Get()
	assert.Equal(t, DefaultConfig().Docking, cfg.Docking)
	assert.Equal(t, DefaultConfig().Overlay, cfg.Overlay)
	assert.Equal(t, filepath.Join(dir, databaseName), cfg.Database.Path)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	body := `
[docking]
config_docking_with_shift = true
ghost_tear_off = false
debug_event_log_capacity = 50000

[layout]
tab_bar_height = 30

[logging]
level = "DEBUG"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o644))
	mgr, err := NewManagerAt(dir)
	require.NoError(t, err)

	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.True(t, cfg.Docking.ConfigDockingWithShift)
	assert.False(t, cfg.Docking.GhostTearOff)
	assert.True(t, cfg.Docking.ShowOuterOverlayTargets, "unset keys keep their defaults")
	assert.Equal(t, maxEventLogCapacity, cfg.Docking.DebugEventLogCapacity)
	assert.InDelta(t, 30.0, cfg.Layout.Style().TabBarHeight, 1e-9)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("DOCKYARD_DOCKING_GHOST_TEAR_OFF_THRESHOLD", "12.5")
	t.Setenv("DOCKYARD_LOG_FORMAT", "json")
	mgr, err := NewManagerAt(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.InDelta(t, 12.5, cfg.Docking.GhostTearOffThreshold, 1e-9)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[layout]\nmax_tab_width = 0\n"), 0o644))
	mgr, err := NewManagerAt(dir)
	require.NoError(t, err)

	err = mgr.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout.max_tab_width")
}

func TestReload_KeepsPreviousOnInvalidFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(file, []byte("[layout]\ngap_width = 2\n"), 0o644))
	mgr, err := NewManagerAt(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	var seen []float64
	mgr.OnConfigChange(func(c *Config) { seen = append(seen, c.Layout.GapWidth) })

	require.NoError(t, os.WriteFile(file, []byte("[layout]\ngap_width = 4\n"), 0o644))
	require.NoError(t, mgr.Reload())

	require.NoError(t, os.WriteFile(file, []byte("[layout]\ngap_width = -1\n"), 0o644))
	require.Error(t, mgr.Reload())

	assert.Equal(t, []float64{4}, seen)
	assert.InDelta(t, 4.0, mgr.Get().Layout.GapWidth, 1e-9)
}

func TestNormalizeConfig(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		want     int
	}{
		{name: "zero", capacity: 0, want: 1},
		{name: "in range", capacity: 300, want: 300},
		{name: "too large", capacity: 20000, want: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Docking.DebugEventLogCapacity = tt.capacity
			cfg.Logging.Level = " WARN "

			normalizeConfig(cfg)

			assert.Equal(t, tt.want, cfg.Docking.DebugEventLogCapacity)
			assert.Equal(t, "warn", cfg.Logging.Level)
		})
	}
}
