package config

import (
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/overlay"
)

const (
	defaultGhostTearOffThreshold = 8.0
	defaultEventLogCapacity      = 200
	minEventLogCapacity          = 1
	maxEventLogCapacity          = 10000

	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 5
	defaultLogMaxAgeDays = 7
)

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() *Config {
	style := entity.DefaultLayoutStyle()
	return &Config{
		Docking: DockingConfig{
			DetachParentTabsOnShift:                 true,
			DetachOnAltReleaseAnywhere:              true,
			WindowMoveTabDockRequiresExplicitTarget: true,
			FocusDetachedOnCustomTitleDrag:          true,
			ShowOverlayForInternalDrags:             true,
			ShowOuterOverlayTargets:                 true,
			TearOffToFloatingOnCtrl:                 true,
			GhostTearOff:                            true,
			GhostTearOffThreshold:                   defaultGhostTearOffThreshold,
			GhostSpawnNativeOnLeaveDock:             true,
			GhostUpgradeToNativeOnLeaveViewport:     true,
			DebugEventLogCapacity:                   defaultEventLogCapacity,
		},
		Overlay: overlay.DefaultMetrics(),
		Layout: LayoutConfig{
			TabBarHeight: style.TabBarHeight,
			GapWidth:     style.GapWidth,
			MaxTabWidth:  style.MaxTabWidth,
		},
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "console",
			TimeFormat:    "15:04:05",
			EnableFileLog: false,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			MaxAge:        defaultLogMaxAgeDays,
			Compress:      true,
		},
	}
}
