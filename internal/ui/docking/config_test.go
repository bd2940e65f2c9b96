package docking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/dockyard/internal/infrastructure/config"
	"github.com/bnema/dockyard/internal/ui/docking"
)

func TestOptionsFromConfig(t *testing.T) {
	t.Run("defaults match the stock profile", func(t *testing.T) {
		assert.Equal(t, docking.DefaultOptions(), docking.OptionsFromConfig(config.DefaultConfig()))
	})

	t.Run("nil config", func(t *testing.T) {
		assert.Equal(t, docking.DefaultOptions(), docking.OptionsFromConfig(nil))
	})

	t.Run("overrides are carried", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Docking.ConfigDockingWithShift = true
		cfg.Docking.GhostTearOff = false
		cfg.Docking.DebugEventLogCapacity = 12
		cfg.Overlay.OuterBandMax = 120

		opts := docking.OptionsFromConfig(cfg)

		assert.True(t, opts.ConfigDockingWithShift)
		assert.False(t, opts.GhostTearOff)
		assert.Equal(t, 12, opts.DebugEventLogCapacity)
		assert.Equal(t, 120.0, opts.Overlay.OuterBandMax)
	})
}
