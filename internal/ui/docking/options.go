package docking

import (
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/overlay"
)

const (
	minEventLogCapacity = 1
	maxEventLogCapacity = 10000
)

// Options tunes the orchestrator. The zero value disables every optional
// behaviour; use DefaultOptions for the stock profile.
type Options struct {
	// ConfigDockingWithShift inverts the Shift gate of window-move
	// docking: when false a window docks unless Shift is held.
	ConfigDockingWithShift bool
	// DetachParentTabsOnShift tears off the whole Tabs group of a dragged
	// pane when Shift is held on release.
	DetachParentTabsOnShift bool
	// DetachOnAltReleaseAnywhere tears off on an Alt release even above
	// the dock.
	DetachOnAltReleaseAnywhere bool
	// WindowMoveTabDockRequiresExplicitTarget limits window moves to
	// explicit targets and title bands, with no heuristic zone.
	WindowMoveTabDockRequiresExplicitTarget bool
	FocusDetachedOnCustomTitleDrag          bool
	ShowOverlayForInternalDrags             bool
	ShowOuterOverlayTargets                 bool
	TearOffToFloatingOnCtrl                 bool

	GhostTearOff bool
	// GhostTearOffThreshold is how far past the dock rect the pointer
	// must travel before a ghost spawns.
	GhostTearOffThreshold               float64
	GhostSpawnNativeOnLeaveDock         bool
	GhostUpgradeToNativeOnLeaveViewport bool

	DebugDropTargets      bool
	DebugEventLog         bool
	DebugEventLogCapacity int
	DebugIntegrity        bool
	DebugIntegrityPanic   bool

	// DefaultDetachedInnerSize sizes torn-off windows whose tile had no
	// rect yet.
	DefaultDetachedInnerSize entity.Vec
	Overlay                  overlay.Metrics
}

// DefaultOptions returns the stock profile.
func DefaultOptions() Options {
	return Options{
		DetachParentTabsOnShift:                 true,
		DetachOnAltReleaseAnywhere:              true,
		WindowMoveTabDockRequiresExplicitTarget: true,
		FocusDetachedOnCustomTitleDrag:          true,
		ShowOverlayForInternalDrags:             true,
		ShowOuterOverlayTargets:                 true,
		TearOffToFloatingOnCtrl:                 true,
		GhostTearOff:                            true,
		GhostTearOffThreshold:                   8,
		GhostSpawnNativeOnLeaveDock:             true,
		GhostUpgradeToNativeOnLeaveViewport:     true,
		DebugEventLogCapacity:                   200,
		DefaultDetachedInnerSize:                entity.Vec{X: 480, Y: 360},
		Overlay:                                 overlay.DefaultMetrics(),
	}
}

// WindowMoveDockingEnabled reports whether a window move may dock given
// the current Shift state.
func (o Options) WindowMoveDockingEnabled(shiftHeld bool) bool {
	return o.ConfigDockingWithShift == shiftHeld
}

func (o Options) eventLogCapacity() int {
	return min(max(o.DebugEventLogCapacity, minEventLogCapacity), maxEventLogCapacity)
}

func (o Options) detachedSize() entity.Vec {
	if o.DefaultDetachedInnerSize.X <= 0 || o.DefaultDetachedInnerSize.Y <= 0 {
		return entity.Vec{X: 480, Y: 360}
	}
	return o.DefaultDetachedInnerSize
}
