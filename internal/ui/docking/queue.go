package docking

import (
	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/overlay"
)

// queueReleaseActions converts a release into at most one pending
// record. Each path asks the session for the frame's release action, so
// a second observer of the same release gets nothing.
func (m *Manager) queueReleaseActions(vp port.ViewportID, vin ViewportInput) {
	m.queueCrossViewportDrop(vin)
	m.queueTearOff(vp, vin)
	m.queueInternalDrop(vp, vin)
	m.queueLocalDrop(vp, vin)
}

// queueCrossViewportDrop handles a release over a different viewport
// than the payload source.
func (m *Manager) queueCrossViewportDrop(vin ViewportInput) {
	p := m.payload
	if p == nil {
		return
	}
	g, ok := m.drag.pointerGlobal()
	if !ok {
		return
	}
	wholeWindow := p.IsWindowMove() && p.SourceFloating == NoFloating
	target, ok := m.viewportUnder(g, p.SourceViewport, wholeWindow)
	if !ok || target == p.SourceViewport {
		return
	}
	if !m.takeRelease("cross-viewport") {
		return
	}
	m.pendingDrop = &PendingDrop{Payload: *p, PointerGlobal: g, Modifiers: vin.Modifiers}
	m.logEvent("drop QUEUE %s -> %s at (%.1f,%.1f)", p, target, g.X, g.Y)
	m.payload = nil
}

// queueTearOff handles a tile released outside every surface, or
// anywhere with Alt.
func (m *Manager) queueTearOff(vp port.ViewportID, vin ViewportInput) {
	p := m.payload
	if p == nil || p.IsWindowMove() || p.SourceViewport != vp {
		return
	}
	alt := vin.Modifiers.Alt && m.opts.DetachOnAltReleaseAnywhere
	pl, hasLocal := m.pointerLocal(vp, vin)
	outside := !hasLocal || (!m.dockRects[vp].Contains(pl) && !m.overFloating(vp, pl))
	if !alt && !outside {
		return
	}
	tree := m.treeFor(p.SourceSurface())
	if tree == nil || !tree.Tiles.Has(p.Tile) {
		return
	}
	if !m.takeRelease("tear-off") {
		return
	}
	pt := &pendingTearOff{surface: p.SourceSurface(), tile: p.Tile, mods: vin.Modifiers}
	if g, ok := m.drag.pointerGlobal(); ok {
		pt.pointerGlobal = &g
	}
	if hasLocal {
		pt.pointerLocal = &pl
	}
	m.pendingTearOff = pt
	m.logEvent("tear-off QUEUE %s alt=%t", p, alt)
	m.payload = nil
}

// queueInternalDrop handles a release over the tree the tile came from.
func (m *Manager) queueInternalDrop(vp port.ViewportID, vin ViewportInput) {
	p := m.payload
	if p == nil || p.IsWindowMove() || p.SourceViewport != vp {
		return
	}
	if vin.Modifiers.Alt && m.opts.DetachOnAltReleaseAnywhere {
		return
	}
	pl, ok := m.pointerLocal(vp, vin)
	if !ok {
		return
	}
	src := p.SourceSurface()
	if target, ok := m.surfaceAt(vp, pl, NoFloating); !ok || target != src {
		return
	}
	tree := m.treeFor(src)
	ins := m.internalInsertion(src, tree, pl, p.Tile)
	if ins == nil {
		return
	}
	if !m.takeRelease("internal") {
		return
	}
	m.pendingInternal = &PendingInternalDrop{Surface: src, Tile: p.Tile, Insertion: *ins}
	m.logEvent("internal QUEUE %s at %s", p, ins)
	m.payload = nil
}

// internalInsertion prefers an explicit overlay target and falls back to
// the tree's own nearest drop zone. Targets on the tile itself or inside
// it are refused.
func (m *Manager) internalInsertion(s DockSurface, tree *entity.Tree, p entity.Pos, tile entity.TileID) *entity.InsertionPoint {
	if tree == nil {
		return nil
	}
	var ins *entity.InsertionPoint
	if m.opts.ShowOverlayForInternalDrags {
		if d, ok := m.decide(s, tree, p, overlay.DragInternal, tile); ok {
			ins = d.Final
		}
	}
	if ins == nil {
		if z, ok := tree.DockZoneAt(p, m.style(tree)); ok {
			zi := z.Insertion
			ins = &zi
		}
	}
	if ins == nil || ins.Parent == tile || tree.ContainsDescendant(tile, ins.Parent) {
		return nil
	}
	if !tree.InsertionAllowed(ins) || !m.behavior.AllowInsertion(tree, *ins) {
		return nil
	}
	return ins
}

// queueLocalDrop handles a release over another surface of the source
// viewport.
func (m *Manager) queueLocalDrop(vp port.ViewportID, vin ViewportInput) {
	p := m.payload
	if p == nil || p.SourceViewport != vp {
		return
	}
	pl, ok := m.pointerLocal(vp, vin)
	if !ok {
		return
	}
	movingFloating := p.IsWindowMove() && p.SourceFloating != NoFloating
	exclude := NoFloating
	if movingFloating {
		exclude = p.SourceFloating
	}
	target, ok := m.surfaceAt(vp, pl, exclude)
	if !ok {
		return
	}
	src := p.SourceSurface()
	switch {
	case target == src:
		return
	case p.IsWindowMove() && !src.IsFloating():
		return
	case !p.IsWindowMove() && !src.IsFloating() && !target.IsFloating():
		return
	}
	if !m.takeRelease("local") {
		return
	}
	m.pendingLocal = &PendingLocalDrop{Payload: *p, Target: target, PointerLocal: pl, Modifiers: vin.Modifiers}
	m.logEvent("local QUEUE %s -> %s", p, target)
	m.payload = nil
}

// queueGhostStart spawns a ghost once a held tile drag leaves the dock
// rect by more than the threshold.
func (m *Manager) queueGhostStart(vp port.ViewportID, vin ViewportInput) {
	p := m.payload
	if !m.opts.GhostTearOff || m.ghost != nil || m.pendingGhost != nil {
		return
	}
	if p == nil || p.IsWindowMove() || p.SourceViewport != vp || !vin.Pointer.Down {
		return
	}
	pl, ok := m.pointerLocal(vp, vin)
	if !ok {
		return
	}
	if m.dockRects[vp].Expand(m.opts.GhostTearOffThreshold).Contains(pl) || m.overFloating(vp, pl) {
		return
	}
	g, ok := m.drag.pointerGlobal()
	if !ok {
		g = m.toGlobal(vp, pl)
	}
	m.pendingGhost = &pendingGhost{
		surface:       p.SourceSurface(),
		tile:          p.Tile,
		pointerGlobal: g,
		pointerLocal:  pl,
		mods:          vin.Modifiers,
	}
}
