package docking

import (
	"fmt"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
)

// FloatingID identifies a floating window. Zero means "no floating
// window": the dock tree of the viewport.
type FloatingID uint64

const NoFloating FloatingID = 0

// HostKind is the kind of container a tree lives in.
type HostKind int

const (
	// HostDockTree is the dock tree of a viewport.
	HostDockTree HostKind = iota
	// HostFloating is a floating window inside a viewport.
	HostFloating
	// HostNative is a whole detached native window.
	HostNative
)

func (k HostKind) String() string {
	switch k {
	case HostDockTree:
		return "dock"
	case HostFloating:
		return "floating"
	case HostNative:
		return "native"
	default:
		return "unknown"
	}
}

// WindowHost names where a dragged subtree or window comes from.
type WindowHost struct {
	Kind     HostKind
	Viewport port.ViewportID
	Floating FloatingID
}

func (h WindowHost) String() string {
	if h.Kind == HostFloating {
		return fmt.Sprintf("%s/%s-%d", h.Viewport, h.Kind, h.Floating)
	}
	return fmt.Sprintf("%s/%s", h.Viewport, h.Kind)
}

// DockSurface is one tree that can be dropped on: the dock tree of a
// viewport, or a floating window inside it.
type DockSurface struct {
	Viewport port.ViewportID
	Floating FloatingID
}

// DockTreeOf returns the dock surface of a viewport.
func DockTreeOf(vp port.ViewportID) DockSurface {
	return DockSurface{Viewport: vp}
}

// FloatingOf returns a floating window surface.
func FloatingOf(vp port.ViewportID, id FloatingID) DockSurface {
	return DockSurface{Viewport: vp, Floating: id}
}

// IsFloating reports whether s is a floating window.
func (s DockSurface) IsFloating() bool {
	return s.Floating != NoFloating
}

func (s DockSurface) String() string {
	if s.IsFloating() {
		return fmt.Sprintf("%s/floating-%d", s.Viewport, s.Floating)
	}
	return fmt.Sprintf("%s/dock", s.Viewport)
}

// DockPayload is what is being dragged. A NoTile Tile means the whole
// window (detached viewport or floating window) is being moved.
type DockPayload struct {
	SourceViewport port.ViewportID
	SourceFloating FloatingID
	Tile           entity.TileID
}

// IsWindowMove reports whether the payload drags a whole window.
func (p DockPayload) IsWindowMove() bool {
	return p.Tile == entity.NoTile
}

// SourceSurface is the tree the payload was picked up from.
func (p DockPayload) SourceSurface() DockSurface {
	return DockSurface{Viewport: p.SourceViewport, Floating: p.SourceFloating}
}

// SourceHost classifies the payload source.
func (p DockPayload) SourceHost() WindowHost {
	switch {
	case p.SourceFloating != NoFloating:
		return WindowHost{Kind: HostFloating, Viewport: p.SourceViewport, Floating: p.SourceFloating}
	case p.Tile == entity.NoTile && p.SourceViewport != port.RootViewport:
		return WindowHost{Kind: HostNative, Viewport: p.SourceViewport}
	default:
		return WindowHost{Kind: HostDockTree, Viewport: p.SourceViewport}
	}
}

func (p DockPayload) String() string {
	if p.IsWindowMove() {
		return fmt.Sprintf("window %s", p.SourceHost())
	}
	return fmt.Sprintf("tile %s from %s", p.Tile, p.SourceSurface())
}

// Modifiers is the keyboard modifier state of a frame.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// PendingDrop is a release over a different viewport than the source.
type PendingDrop struct {
	Payload       DockPayload
	PointerGlobal entity.Pos
	Modifiers     Modifiers
}

// PendingInternalDrop is a reorder within the tree the tile lives in.
type PendingInternalDrop struct {
	Surface   DockSurface
	Tile      entity.TileID
	Insertion entity.InsertionPoint
}

// PendingLocalDrop is a release over another surface of the source
// viewport: dock to floating, floating to dock, floating to floating.
type PendingLocalDrop struct {
	Payload      DockPayload
	Target       DockSurface
	PointerLocal entity.Pos
	Modifiers    Modifiers
}

// pendingTearOff is a release outside any surface.
type pendingTearOff struct {
	surface       DockSurface
	tile          entity.TileID
	pointerGlobal *entity.Pos
	pointerLocal  *entity.Pos
	mods          Modifiers
}

// pendingGhost is a drag that left the dock rect past the threshold.
type pendingGhost struct {
	surface       DockSurface
	tile          entity.TileID
	pointerGlobal entity.Pos
	pointerLocal  entity.Pos
	mods          Modifiers
}
