package docking

import (
	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/overlay"
)

// FrameInput is everything the host toolkit observed during one frame.
type FrameInput struct {
	// Viewports holds one entry per viewport that ran this frame. A
	// viewport missing from the map is skipped.
	Viewports map[port.ViewportID]ViewportInput
	// Monitors are the outer rects of every monitor in screen space. Empty
	// disables monitor clamping.
	Monitors []entity.Rect
}

// ViewportInput is the per-viewport part of FrameInput.
type ViewportInput struct {
	// InnerRect is the viewport's client area in screen space.
	InnerRect entity.Rect
	// DockRect is where the dock tree is laid out, in viewport-local
	// coordinates. The zero rect means the whole client area.
	DockRect  entity.Rect
	Pointer   PointerInput
	Modifiers Modifiers
	// Escape is set when the cancel key was pressed this frame.
	Escape bool
	// CloseRequested is set when the user closed a detached viewport.
	CloseRequested bool
	// Drags lists tiles the toolkit's own hit-testing reports as being
	// dragged inside surfaces of this viewport.
	Drags []DragReport
	// TitleDrag is set while a window title band is being dragged.
	TitleDrag *TitleDrag
}

// PointerInput is one viewport's pointer state.
type PointerInput struct {
	// Pos is the interact position in viewport-local coordinates, nil
	// when the viewport has no fresh position.
	Pos *entity.Pos
	// Global is a backend-provided screen position, authoritative when
	// set.
	Global *entity.Pos
	Delta  entity.Vec
	// Motion is raw device motion in points, nil when unavailable.
	Motion   *entity.Vec
	Down     bool
	Released bool
}

// DragReport says tile is being dragged inside surface.
type DragReport struct {
	Surface DockSurface
	Tile    entity.TileID
}

// TitleDrag says the title band of surface is being dragged. The dock
// surface of a detached viewport moves the native window; a floating
// surface moves the floating window.
type TitleDrag struct {
	Surface DockSurface
}

// FrameOutput is what the host should draw and do after a frame.
type FrameOutput struct {
	Frame    uint64
	Overlays []SurfaceOverlay
	Ghost    *GhostState
	Commands []port.ViewportCommand
	// Payload is the drag in flight after the frame, nil when idle.
	Payload *DockPayload
}

// SurfaceOverlay is the drop feedback to paint on one surface.
type SurfaceOverlay struct {
	Surface DockSurface
	Kind    overlay.DragKind
	Paint   *overlay.Overlay
	// Preview is the rect a release now would fill.
	Preview *entity.Rect
	Final   *entity.InsertionPoint
	// DisableTilesPreview suppresses the toolkit's own drag preview.
	DisableTilesPreview bool
}

// GhostState describes a live ghost drag.
type GhostState struct {
	Native     bool
	Viewport   port.ViewportID
	Floating   FloatingID
	GrabOffset entity.Vec
}
