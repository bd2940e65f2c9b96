package docking

import "github.com/bnema/dockyard/internal/infrastructure/config"

// OptionsFromConfig maps the docking and overlay sections onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	d := cfg.Docking
	opts := DefaultOptions()
	opts.ConfigDockingWithShift = d.ConfigDockingWithShift
	opts.DetachParentTabsOnShift = d.DetachParentTabsOnShift
	opts.DetachOnAltReleaseAnywhere = d.DetachOnAltReleaseAnywhere
	opts.WindowMoveTabDockRequiresExplicitTarget = d.WindowMoveTabDockRequiresExplicitTarget
	opts.FocusDetachedOnCustomTitleDrag = d.FocusDetachedOnCustomTitleDrag
	opts.ShowOverlayForInternalDrags = d.ShowOverlayForInternalDrags
	opts.ShowOuterOverlayTargets = d.ShowOuterOverlayTargets
	opts.TearOffToFloatingOnCtrl = d.TearOffToFloatingOnCtrl
	opts.GhostTearOff = d.GhostTearOff
	opts.GhostTearOffThreshold = d.GhostTearOffThreshold
	opts.GhostSpawnNativeOnLeaveDock = d.GhostSpawnNativeOnLeaveDock
	opts.GhostUpgradeToNativeOnLeaveViewport = d.GhostUpgradeToNativeOnLeaveViewport
	opts.DebugDropTargets = d.DebugDropTargets
	opts.DebugEventLog = d.DebugEventLog
	opts.DebugEventLogCapacity = d.DebugEventLogCapacity
	opts.DebugIntegrity = d.DebugIntegrity
	opts.DebugIntegrityPanic = d.DebugIntegrityPanic
	opts.Overlay = cfg.Overlay
	return opts
}
