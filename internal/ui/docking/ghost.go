package docking

import (
	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
)

// ghostDrag is a subtree extracted mid-drag that follows the pointer in
// its own window. Contained ghosts are floating windows of viewport;
// native ghosts are detached viewports.
type ghostDrag struct {
	native   bool
	viewport port.ViewportID
	floating FloatingID
	grab     entity.Vec
}

func (m *Manager) ghostState() *GhostState {
	if m.ghost == nil {
		return nil
	}
	return &GhostState{
		Native:     m.ghost.native,
		Viewport:   m.ghost.viewport,
		Floating:   m.ghost.floating,
		GrabOffset: m.ghost.grab,
	}
}

// applyPendingGhost extracts the dragged tile into a ghost window and
// turns the payload into a move of that window.
func (m *Manager) applyPendingGhost() {
	pg := m.pendingGhost
	if pg == nil {
		return
	}
	m.pendingGhost = nil
	if m.payload == nil || m.payload.Tile != pg.tile {
		return
	}

	tree := m.treeFor(pg.surface)
	if tree == nil || !tree.CanExtract(pg.tile) {
		return
	}
	vp := pg.surface.Viewport
	dock := m.dockRects[vp]
	oldRect, hasRect := tree.Tiles.Rect(pg.tile)
	size := m.opts.detachedSize()
	if hasRect {
		size = oldRect.Size().Max(entity.Vec{X: ghostMinWidth, Y: ghostMinHeight})
	}

	sub, ok := tree.ExtractSubtree(pg.tile)
	if !ok {
		return
	}

	if m.opts.GhostSpawnNativeOnLeaveDock && !pg.mods.Ctrl {
		w := m.spawnDetached(sub, pg.pointerGlobal.Minus(tearOffGrab), size)
		m.payload = &DockPayload{SourceViewport: w.Viewport}
		m.ghost = &ghostDrag{native: true, viewport: w.Viewport, grab: tearOffGrab}
		m.logEvent("ghost START native %s tile=%s", w.Viewport, pg.tile)
	} else {
		offset := clampFloatingOffset(pg.pointerLocal.Minus(tearOffGrab).Sub(dock.Min), size, dock)
		w := m.addFloating(vp, m.newFloatingTree(sub), offset, size)
		m.payload = &DockPayload{SourceViewport: vp, SourceFloating: w.ID}
		m.ghost = &ghostDrag{viewport: vp, floating: w.ID, grab: tearOffGrab}
		m.moveGrab = tearOffGrab
		m.logEvent("ghost START contained %s tile=%s", FloatingOf(vp, w.ID), pg.tile)
	}
	m.afterTreeChanged(pg.surface)
	m.observe("ghost")
}

// updateWindowMoves makes moved windows follow the pointer: native
// ghosts by Move commands, floating windows by offset. A contained
// ghost leaving its viewport is upgraded to a native window.
func (m *Manager) updateWindowMoves() {
	p := m.payload
	if p == nil || !p.IsWindowMove() || m.drag.anyReleased {
		return
	}
	global, ok := m.drag.pointerGlobal()
	if !ok {
		return
	}

	if g := m.ghost; g != nil && g.native {
		w, ok := m.detached[g.viewport]
		if !ok {
			m.ghost = nil
			return
		}
		pos := global.Minus(g.grab)
		if pos != w.InnerRect.Min {
			rect := entity.RectFromMinSize(pos, w.InnerRect.Size())
			w.InnerRect = rect
			m.viewportRects[w.Viewport] = rect
			m.emit(port.ViewportCommand{Kind: port.CommandMove, Viewport: w.Viewport, Title: w.Title, InnerRect: rect})
		}
		return
	}

	if p.SourceFloating == NoFloating {
		return
	}
	s := p.SourceSurface()
	w, ok := m.floatingWindow(s)
	if !ok {
		return
	}
	if m.ghost != nil && m.opts.GhostUpgradeToNativeOnLeaveViewport {
		if vr, ok := m.viewportRects[s.Viewport]; ok && !vr.Contains(global) {
			m.upgradeGhost(s, w, global)
			return
		}
	}
	local := m.toLocal(s.Viewport, global)
	w.Offset = local.Minus(m.moveGrab).Sub(m.dockRects[s.Viewport].Min)
	m.BringToFront(s)
}

// upgradeGhost turns a contained ghost into a native one.
func (m *Manager) upgradeGhost(s DockSurface, w *FloatingWindow, global entity.Pos) {
	grab := m.ghost.grab
	if fm, ok := m.floating[s.Viewport]; ok {
		fm.remove(w.ID)
	}
	nw := m.spawnDetached(entity.NewSubTree(w.Tree.Root, w.Tree.Tiles), global.Minus(grab), w.Size)
	m.payload = &DockPayload{SourceViewport: nw.Viewport}
	m.ghost = &ghostDrag{native: true, viewport: nw.Viewport, grab: grab}
	m.afterTreeChanged(DockTreeOf(s.Viewport))
	m.logEvent("ghost UPGRADE %s -> %s", s, nw.Viewport)
}

// finishGhost ends the ghost once its payload is gone and re-docks it
// into the root when the drag is cancelled.
func (m *Manager) finishGhost() {
	g := m.ghost
	if g == nil {
		return
	}
	if m.payload == nil {
		m.ghost = nil
		m.logEvent("ghost END")
		return
	}
	if !m.anyEscape() {
		return
	}

	if g.native {
		if w, ok := m.detached[g.viewport]; ok {
			for _, fw := range m.Floating(g.viewport) {
				m.redock(fw.Tree, m.root)
			}
			delete(m.floating, g.viewport)
			m.redock(w.Tree, m.root)
			m.removeDetached(g.viewport)
		}
	} else if fm, ok := m.floating[g.viewport]; ok {
		if w, ok := fm.remove(g.floating); ok {
			m.redock(w.Tree, m.root)
			m.afterTreeChanged(DockTreeOf(g.viewport))
		}
	}
	m.root.EnsureActiveTabs()
	m.logEvent("ghost CANCEL re-docked into root")
	m.payload = nil
	m.ghost = nil
}

func (m *Manager) anyEscape() bool {
	for _, vin := range m.inputs {
		if vin.Escape {
			return true
		}
	}
	return false
}
