package docking

import (
	"context"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/overlay"
)

// RunFrame runs one frame: a hit-testing pass per viewport (root first,
// then detached viewports in order), then every queued edit, then the
// end-of-frame checks. Commands issued during the frame are sent to the
// commander and returned.
func (m *Manager) RunFrame(ctx context.Context, in FrameInput) FrameOutput {
	m.beginFrame(in)

	for _, vp := range m.viewportOrder() {
		vin, ok := in.Viewports[vp]
		if !ok {
			continue
		}
		m.runViewport(vp, vin)
	}

	if m.drag.anyReleased && m.payload != nil {
		m.logEvent("payload CLEAR on release (%s)", m.payload)
		m.payload = nil
	}

	m.applyPendingActions()
	m.finishGhost()
	m.endFrame()
	m.flushCommands(ctx)

	m.out.Ghost = m.ghostState()
	if m.payload != nil {
		p := *m.payload
		m.out.Payload = &p
	}
	return m.out
}

func (m *Manager) beginFrame(in FrameInput) {
	m.frame++
	m.drag.beginFrame()
	m.out = FrameOutput{Frame: m.frame}
	m.inputs = in.Viewports
	if len(in.Monitors) > 0 {
		m.monitors = in.Monitors
	}
	for vp, vin := range in.Viewports {
		if !m.viewportExists(vp) {
			continue
		}
		m.viewportRects[vp] = vin.InnerRect
		if w, ok := m.detached[vp]; ok {
			w.InnerRect = vin.InnerRect
		}
	}
}

func (m *Manager) endFrame() {
	if ended, line := m.drag.endFrame(m.frame); ended {
		m.logEvent("%s", line)
		if m.payload != nil {
			m.logEvent("payload CLEAR stale (%s)", m.payload)
			m.payload = nil
		}
		m.ghost = nil
	}
	if m.opts.DebugIntegrity {
		m.auditIntegrity()
	}
}

func (m *Manager) viewportOrder() []port.ViewportID {
	return append([]port.ViewportID{port.RootViewport}, m.detachedOrder()...)
}

func (m *Manager) runViewport(vp port.ViewportID, vin ViewportInput) {
	dock := vin.DockRect
	if dock.Area() <= 0 {
		dock = entity.RectFromMinSize(entity.Pos{}, vin.InnerRect.Size())
	}
	m.dockRects[vp] = dock
	m.layoutViewport(vp, dock)

	movingSelf := m.payload != nil && m.payload.IsWindowMove() &&
		m.payload.SourceFloating == NoFloating && m.payload.SourceViewport == vp
	m.drag.updatePointer(m.frame, vp, vin, !movingSelf)
	if m.payload != nil && m.payload.SourceViewport == vp {
		m.drag.lastModifiers = vin.Modifiers
	}

	m.observeDrags(vp, vin)

	switch {
	case vin.Pointer.Released:
		m.queueReleaseActions(vp, vin)
	case m.payload != nil:
		m.queueGhostStart(vp, vin)
		m.paintOverlay(vp, vin)
	}

	if vin.CloseRequested && vp != port.RootViewport {
		m.pendingCloses = append(m.pendingCloses, vp)
	}
}

// layoutViewport lays out the dock tree and every floating tree of vp in
// viewport-local coordinates.
func (m *Manager) layoutViewport(vp port.ViewportID, dock entity.Rect) {
	if tree := m.treeFor(DockTreeOf(vp)); tree != nil {
		tree.Layout(dock, m.style(tree))
	}
	th := m.titleHeight(vp)
	for _, w := range m.Floating(vp) {
		if r, ok := w.ContentRect(dock, th); ok {
			w.Tree.Layout(r, m.style(w.Tree))
		} else {
			w.Tree.Tiles.ClearRects()
		}
	}
}

// observeDrags turns toolkit drag reports and title drags into the
// payload and keeps the session alive.
func (m *Manager) observeDrags(vp port.ViewportID, vin ViewportInput) {
	for _, r := range vin.Drags {
		if r.Surface.Viewport != vp {
			m.logger.Debug().Str("surface", r.Surface.String()).Str("viewport", vp.String()).Msg("drag report for another viewport ignored")
			continue
		}
		tree := m.treeFor(r.Surface)
		if tree == nil || !tree.Tiles.Has(r.Tile) {
			m.logger.Debug().Str("surface", r.Surface.String()).Str("tile", r.Tile.String()).Msg("drag report: tile not found")
			continue
		}
		if m.payload == nil {
			if !tree.CanExtract(r.Tile) {
				continue
			}
			m.payload = &DockPayload{SourceViewport: vp, SourceFloating: r.Surface.Floating, Tile: r.Tile}
			m.behavior.OnEdit(tree, port.EditTileDragged)
			m.logEvent("payload SET %s", m.payload)
		}
		m.observe("tiles")
	}

	if td := vin.TitleDrag; td != nil {
		m.observeTitleDrag(vp, vin, td.Surface)
	}

	if m.payload != nil && vin.Pointer.Down {
		m.observe("pointer")
	}
}

func (m *Manager) observeTitleDrag(vp port.ViewportID, vin ViewportInput, s DockSurface) {
	switch {
	case s.IsFloating():
		w, ok := m.floatingWindow(s)
		if !ok || s.Viewport != vp {
			return
		}
		if m.payload == nil {
			m.payload = &DockPayload{SourceViewport: vp, SourceFloating: s.Floating}
			m.moveGrab = entity.Vec{}
			if pl, ok := m.pointerLocal(vp, vin); ok {
				m.moveGrab = pl.Sub(m.dockRects[vp].Min.Add(w.Offset))
			}
			m.BringToFront(s)
			m.logEvent("payload SET %s", m.payload)
		}
		m.observe("floating-title")
	case vp != port.RootViewport && s.Viewport == vp:
		if m.payload == nil {
			m.payload = &DockPayload{SourceViewport: vp}
			if m.opts.FocusDetachedOnCustomTitleDrag {
				m.emit(port.ViewportCommand{Kind: port.CommandFocus, Viewport: vp})
			}
			m.logEvent("payload SET %s", m.payload)
		}
		m.observe("detached-title")
	}
}

func (m *Manager) observe(source string) {
	if line := m.drag.observe(m.frame, source); line != "" {
		m.logEvent("%s", line)
	}
}

func (m *Manager) takeRelease(kind string) bool {
	ok, line := m.drag.takeReleaseAction(m.frame, kind)
	m.logEvent("%s", line)
	return ok
}

// pointerLocal is the pointer in vp's local coordinates: the interact
// position when fresh, otherwise the global estimate mapped into vp.
func (m *Manager) pointerLocal(vp port.ViewportID, vin ViewportInput) (entity.Pos, bool) {
	if vin.Pointer.Pos != nil {
		return *vin.Pointer.Pos, true
	}
	g, ok := m.drag.pointerGlobal()
	if !ok {
		return entity.Pos{}, false
	}
	return m.toLocal(vp, g), true
}

func (m *Manager) toLocal(vp port.ViewportID, g entity.Pos) entity.Pos {
	r := m.viewportRects[vp]
	return entity.Pos{X: g.X - r.Min.X, Y: g.Y - r.Min.Y}
}

func (m *Manager) toGlobal(vp port.ViewportID, p entity.Pos) entity.Pos {
	r := m.viewportRects[vp]
	return entity.Pos{X: p.X + r.Min.X, Y: p.Y + r.Min.Y}
}

// viewportUnder returns the smallest known viewport containing the
// global point, optionally skipping one.
func (m *Manager) viewportUnder(g entity.Pos, skip port.ViewportID, skipping bool) (port.ViewportID, bool) {
	var (
		best     port.ViewportID
		bestArea float64
		found    bool
	)
	for _, vp := range m.viewportOrder() {
		if skipping && vp == skip {
			continue
		}
		r, ok := m.viewportRects[vp]
		if !ok || !r.Contains(g) {
			continue
		}
		if a := r.Area(); !found || a < bestArea {
			best, bestArea, found = vp, a, true
		}
	}
	return best, found
}

// surfaceAt returns the front-most surface of vp under the local point:
// floating windows by z, then the dock rect.
func (m *Manager) surfaceAt(vp port.ViewportID, p entity.Pos, exclude FloatingID) (DockSurface, bool) {
	dock, ok := m.dockRects[vp]
	if !ok {
		return DockSurface{}, false
	}
	if fm, ok := m.floating[vp]; ok {
		if w, ok := fm.topmostAt(dock, m.titleHeight(vp), p, exclude); ok {
			return FloatingOf(vp, w.ID), true
		}
	}
	if dock.Contains(p) && m.treeFor(DockTreeOf(vp)) != nil {
		return DockTreeOf(vp), true
	}
	return DockSurface{}, false
}

func (m *Manager) overFloating(vp port.ViewportID, p entity.Pos) bool {
	fm, ok := m.floating[vp]
	if !ok {
		return false
	}
	_, ok = fm.topmostAt(m.dockRects[vp], m.titleHeight(vp), p, NoFloating)
	return ok
}

// surfaceRect is the rect a surface's tree was laid out in.
func (m *Manager) surfaceRect(s DockSurface) (entity.Rect, bool) {
	dock, ok := m.dockRects[s.Viewport]
	if !ok {
		return entity.Rect{}, false
	}
	if !s.IsFloating() {
		return dock, true
	}
	w, ok := m.floatingWindow(s)
	if !ok {
		return entity.Rect{}, false
	}
	return w.ContentRect(dock, m.titleHeight(s.Viewport))
}

func (m *Manager) decide(s DockSurface, tree *entity.Tree, p entity.Pos, kind overlay.DragKind, dragged entity.TileID) (overlay.Decision, bool) {
	rect, ok := m.surfaceRect(s)
	if !ok || tree == nil {
		return overlay.Decision{}, false
	}
	return m.opts.Overlay.Decide(overlay.Request{
		Tree:      tree,
		Style:     m.style(tree),
		DockRect:  rect,
		Pointer:   p,
		ShowOuter: m.opts.ShowOuterOverlayTargets,
		Kind:      kind,
		Dragged:   dragged,
	}), true
}

// dragKindFor classifies a hover of payload over target.
func dragKindFor(p DockPayload, target DockSurface) overlay.DragKind {
	switch {
	case p.IsWindowMove():
		return overlay.DragWindowMove
	case target == p.SourceSurface():
		return overlay.DragInternal
	default:
		return overlay.DragExternal
	}
}

// paintOverlay records the drop feedback of the payload hovering vp.
func (m *Manager) paintOverlay(vp port.ViewportID, vin ViewportInput) {
	p := *m.payload
	pl, ok := m.pointerLocal(vp, vin)
	if !ok {
		return
	}
	exclude := NoFloating
	if p.IsWindowMove() && p.SourceViewport == vp {
		if p.SourceFloating == NoFloating {
			return
		}
		exclude = p.SourceFloating
	}
	target, ok := m.surfaceAt(vp, pl, exclude)
	if !ok {
		return
	}

	kind := dragKindFor(p, target)
	if kind == overlay.DragWindowMove && !m.opts.WindowMoveDockingEnabled(vin.Modifiers.Shift) {
		return
	}
	tree := m.treeFor(target)
	dragged := entity.NoTile
	if kind == overlay.DragInternal {
		dragged = p.Tile
	}
	d, ok := m.decide(target, tree, pl, kind, dragged)
	if !ok {
		return
	}

	so := SurfaceOverlay{Surface: target, Kind: kind, Paint: d.Paint, Final: d.Final, DisableTilesPreview: d.DisableTilesPreview}
	if kind == overlay.DragWindowMove {
		so.Final = m.windowMoveInsertion(tree, d, pl)
	}
	if d.Paint != nil {
		if r, ok := d.Paint.Preview(); ok {
			so.Preview = &r
		}
	}
	if so.Preview == nil && so.Final != nil && d.Fallback != nil {
		r := d.Fallback.Preview
		so.Preview = &r
	}
	m.out.Overlays = append(m.out.Overlays, so)

	if m.opts.DebugDropTargets {
		final := "none"
		if so.Final != nil {
			final = so.Final.String()
		}
		m.logEvent("hover %s kind=%s pointer=(%.1f,%.1f) final=%s", target, kind, pl.X, pl.Y, final)
	}
}

// windowMoveInsertion applies the explicit-target requirement of window
// moves on top of a decision.
func (m *Manager) windowMoveInsertion(tree *entity.Tree, d overlay.Decision, p entity.Pos) *entity.InsertionPoint {
	if d.Final != nil || m.opts.WindowMoveTabDockRequiresExplicitTarget {
		return d.Final
	}
	if z, ok := tree.DockZoneAt(p, m.style(tree)); ok {
		ins := z.Insertion
		return &ins
	}
	return nil
}

// dropInsertion resolves where payload lands on target. Window moves go
// through the explicit-target gate; every other drop uses the radial hit
// test, then the dock zone heuristic. ok is false when the drop must be
// cancelled.
func (m *Manager) dropInsertion(target DockSurface, p entity.Pos, payload DockPayload, mods Modifiers) (*entity.InsertionPoint, bool) {
	tree := m.treeFor(target)
	if tree == nil {
		return nil, false
	}
	kind := dragKindFor(payload, target)
	if kind == overlay.DragWindowMove {
		if !m.opts.WindowMoveDockingEnabled(mods.Shift) {
			return nil, false
		}
		if tree.IsEmpty() {
			return nil, true
		}
		d, _ := m.decide(target, tree, p, kind, entity.NoTile)
		ins := m.windowMoveInsertion(tree, d, p)
		return ins, ins != nil
	}
	if tree.IsEmpty() {
		return nil, true
	}
	rect, ok := m.surfaceRect(target)
	if !ok {
		return nil, true
	}
	ins := m.opts.Overlay.DropInsertion(tree, rect, p, m.opts.ShowOuterOverlayTargets)
	if ins == nil {
		if z, ok := tree.DockZoneAt(p, m.style(tree)); ok {
			zi := z.Insertion
			ins = &zi
		}
	}
	if ins != nil && payload.SourceSurface() == target &&
		(ins.Parent == payload.Tile || tree.ContainsDescendant(payload.Tile, ins.Parent)) {
		ins = nil
	}
	return ins, true
}
