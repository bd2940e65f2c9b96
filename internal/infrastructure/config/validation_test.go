package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "negative threshold", mutate: func(c *Config) { c.Docking.GhostTearOffThreshold = -1 }, wantErr: "docking.ghost_tear_off_threshold"},
		{name: "inverted clamp", mutate: func(c *Config) { c.Overlay.InnerSizeMin = 80 }, wantErr: "overlay.inner_size_min"},
		{name: "zero fraction", mutate: func(c *Config) { c.Overlay.OuterBandFrac = 0 }, wantErr: "overlay.outer_band_frac"},
		{name: "side inside center", mutate: func(c *Config) { c.Overlay.SideRadius = 1 }, wantErr: "overlay.side_radius"},
		{name: "negative gap", mutate: func(c *Config) { c.Layout.GapWidth = -2 }, wantErr: "layout.gap_width"},
		{name: "unknown level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "unknown format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfig_AccumulatesErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.TabBarHeight = -1
	cfg.Logging.MaxSizeMB = 0

	err := validateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout.tab_bar_height")
	assert.Contains(t, err.Error(), "logging.max_size_mb")
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Dockyard Configuration", doc["title"])
	assert.Contains(t, string(data), "ghost_tear_off_threshold")
	assert.Contains(t, string(data), "outer_band_frac")
}

func TestWriteSchemaFile(t *testing.T) {
	mgr, err := NewManagerAt(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	path, err := mgr.WriteSchemaFile()

	require.NoError(t, err)
	assert.FileExists(t, path)
}
