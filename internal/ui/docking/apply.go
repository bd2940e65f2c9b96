package docking

import (
	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
)

// applyPendingActions applies queued edits in a fixed order once every
// viewport has been hit-tested.
func (m *Manager) applyPendingActions() {
	m.applyPendingDrop()
	m.applyPendingInternalDrop()
	m.applyPendingLocalDrop()
	m.applyPendingTearOff()
	m.applyPendingGhost()
	m.updateWindowMoves()
	m.applyPendingCloses()
}

func (m *Manager) applyPendingDrop() {
	pd := m.pendingDrop
	if pd == nil {
		return
	}
	m.pendingDrop = nil
	p := pd.Payload

	vp, ok := m.viewportUnder(pd.PointerGlobal, p.SourceViewport, p.IsWindowMove() && p.SourceFloating == NoFloating)
	if !ok {
		m.logEvent("drop CANCEL %s: no viewport under pointer", p)
		return
	}
	pl := m.toLocal(vp, pd.PointerGlobal)
	target, ok := m.surfaceAt(vp, pl, NoFloating)
	if !ok {
		m.logEvent("drop CANCEL %s: no surface under pointer in %s", p, vp)
		return
	}
	ins, ok := m.dropInsertion(target, pl, p, pd.Modifiers)
	if !ok {
		m.logEvent("drop CANCEL %s: no target on %s", p, target)
		return
	}
	m.moveToSurface(p, target, ins)
}

func (m *Manager) applyPendingInternalDrop() {
	pi := m.pendingInternal
	if pi == nil {
		return
	}
	m.pendingInternal = nil

	tree := m.treeFor(pi.Surface)
	if tree == nil || !tree.Tiles.Has(pi.Tile) {
		m.logger.Debug().Str("surface", pi.Surface.String()).Str("tile", pi.Tile.String()).Msg("internal drop: tile not found")
		return
	}
	sub, ok := tree.ExtractSubtreeNoReserve(pi.Tile)
	if !ok {
		return
	}
	ins := &pi.Insertion
	if !tree.Tiles.Has(ins.Parent) {
		ins = nil
	}
	m.behavior.OnEdit(tree, port.EditTileDropped)
	tree.InsertSubtreeAt(sub, ins)
	tree.ForceSubtreeVisible(pi.Tile)
	tree.MakeActive(pi.Tile)
	m.afterTreeChanged(pi.Surface)
	m.logEvent("internal APPLY %s in %s", pi.Tile, pi.Surface)
}

func (m *Manager) applyPendingLocalDrop() {
	pl := m.pendingLocal
	if pl == nil {
		return
	}
	m.pendingLocal = nil

	target := pl.Target
	if m.treeFor(target) == nil {
		target = DockTreeOf(target.Viewport)
	}
	ins, ok := m.dropInsertion(target, pl.PointerLocal, pl.Payload, pl.Modifiers)
	if !ok {
		m.logEvent("local CANCEL %s: no target on %s", pl.Payload, target)
		return
	}
	m.moveToSurface(pl.Payload, target, ins)
}

func (m *Manager) applyPendingCloses() {
	for _, vp := range m.pendingCloses {
		if err := m.CloseDetached(vp); err != nil {
			m.logger.Debug().Err(err).Msg("close request ignored")
		}
	}
	m.pendingCloses = nil
}

// moveToSurface takes the payload out of its source and splices it into
// target. ins is sanitized against the fragment; nil merges at the root.
func (m *Manager) moveToSurface(p DockPayload, target DockSurface, ins *entity.InsertionPoint) {
	dst := m.treeFor(target)
	if dst == nil {
		return
	}
	if ins != nil && (!dst.InsertionAllowed(ins) || !m.behavior.AllowInsertion(dst, *ins)) {
		ins = nil
	}

	sub, ok := m.takeFromSource(p)
	if !ok {
		m.logEvent("drop CANCEL %s: source gone", p)
		return
	}

	if dst = m.treeFor(target); dst == nil {
		target = DockTreeOf(target.Viewport)
		if dst = m.treeFor(target); dst == nil {
			target, dst = DockTreeOf(port.RootViewport), m.root
		}
		ins = nil
	}
	m.insertInto(target, dst, sub, ins)
}

func (m *Manager) insertInto(target DockSurface, dst *entity.Tree, sub *entity.SubTree, ins *entity.InsertionPoint) {
	root := sub.Root
	dst.InsertSubtreeAt(sub, ins)
	dst.ForceSubtreeVisible(root)
	dst.MakeActive(root)
	m.afterTreeChanged(target)
	if target.IsFloating() {
		m.BringToFront(target)
	}
	m.behavior.OnEdit(dst, port.EditTileDropped)

	at := "root"
	if ins != nil {
		at = ins.String()
	}
	m.logEvent("drop APPLY %s into %s at %s", root, target, at)
}

// takeFromSource removes what the payload drags from its host: the
// dragged subtree, or the whole tree of a moved window. The root dock
// cannot be moved as a whole.
func (m *Manager) takeFromSource(p DockPayload) (*entity.SubTree, bool) {
	src := p.SourceSurface()
	if !p.IsWindowMove() {
		tree := m.treeFor(src)
		if tree == nil || !tree.CanExtract(p.Tile) {
			return nil, false
		}
		sub, ok := tree.ExtractSubtree(p.Tile)
		if !ok {
			return nil, false
		}
		m.afterTreeChanged(src)
		return sub, true
	}

	switch host := p.SourceHost(); host.Kind {
	case HostFloating:
		fm, ok := m.floating[host.Viewport]
		if !ok {
			return nil, false
		}
		w, ok := fm.remove(host.Floating)
		if !ok || w.Tree.IsEmpty() {
			return nil, false
		}
		m.logEvent("floating TAKE %s", src)
		m.afterTreeChanged(DockTreeOf(host.Viewport))
		return entity.NewSubTree(w.Tree.Root, w.Tree.Tiles), true
	case HostNative:
		w, ok := m.detached[host.Viewport]
		if !ok {
			return nil, false
		}
		for _, fw := range m.Floating(host.Viewport) {
			w.Tree.InsertSubtreeAt(entity.NewSubTree(fw.Tree.Root, fw.Tree.Tiles), nil)
		}
		delete(m.floating, host.Viewport)
		m.removeDetached(host.Viewport)
		if w.Tree.IsEmpty() {
			return nil, false
		}
		return entity.NewSubTree(w.Tree.Root, w.Tree.Tiles), true
	default:
		m.logger.Debug().Str("payload", p.String()).Msg("root dock cannot be moved")
		return nil, false
	}
}
