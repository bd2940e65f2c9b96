package docking

import (
	"fmt"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
)

func (m *Manager) applyPendingTearOff() {
	pt := m.pendingTearOff
	if pt == nil {
		return
	}
	m.pendingTearOff = nil

	tree := m.treeFor(pt.surface)
	if tree == nil || !tree.Tiles.Has(pt.tile) {
		m.logger.Debug().Str("surface", pt.surface.String()).Str("tile", pt.tile.String()).Msg("tear-off: tile not found")
		return
	}
	tile := m.tearOffTile(tree, pt.tile, pt.mods.Shift)
	if !tree.CanExtract(tile) {
		m.logEvent("tear-off CANCEL %s: locked", tile)
		return
	}

	vp := pt.surface.Viewport
	viewportRect := m.viewportRects[vp]
	dock := m.dockRects[vp]
	oldRect, hasRect := tree.Tiles.Rect(tile)

	sub, ok := tree.ExtractSubtree(tile)
	if !ok {
		return
	}

	size := m.opts.detachedSize()
	if hasRect {
		size = oldRect.Size().Max(entity.Vec{X: tearOffMinWidth, Y: tearOffMinHeight})
	}

	if pt.mods.Ctrl && m.opts.TearOffToFloatingOnCtrl {
		size = size.Min(dock.Size())
		local := dock.Min.Add(tearOffGrab)
		switch {
		case pt.pointerLocal != nil:
			local = *pt.pointerLocal
		case hasRect:
			local = oldRect.Min.Add(tearOffGrab)
		}
		offset := clampFloatingOffset(local.Minus(tearOffGrab).Sub(dock.Min), size, dock)
		w := m.addFloating(vp, m.newFloatingTree(sub), offset, size)
		m.afterTreeChanged(pt.surface)
		m.behavior.OnEdit(w.Tree, port.EditTileDropped)
		m.logEvent("tear-off APPLY %s -> %s", tile, FloatingOf(vp, w.ID))
		return
	}

	var pos entity.Pos
	switch {
	case pt.pointerGlobal != nil:
		pos = pt.pointerGlobal.Minus(tearOffGrab)
	case hasRect:
		pos = viewportRect.Min.Add(entity.Vec{X: oldRect.Min.X, Y: oldRect.Min.Y})
	default:
		pos = fallbackSpawnPos
	}
	w := m.spawnDetached(sub, pos, size)
	m.afterTreeChanged(pt.surface)
	m.behavior.OnEdit(w.Tree, port.EditTileDropped)
	m.logEvent("tear-off APPLY %s -> %s", tile, w.Viewport)
}

// tearOffTile widens a pane to its parent Tabs group when Shift asks for
// the whole group.
func (m *Manager) tearOffTile(tree *entity.Tree, tile entity.TileID, shift bool) entity.TileID {
	if !shift || !m.opts.DetachParentTabsOnShift {
		return tile
	}
	t, ok := tree.Get(tile)
	if !ok || !t.IsPane() {
		return tile
	}
	parent, ok := tree.ParentOf(tile)
	if !ok {
		return tile
	}
	if c, ok := tree.Tiles.Container(parent); ok && c.Kind() == entity.KindTabs {
		return parent
	}
	return tile
}

func (m *Manager) newFloatingTree(sub *entity.SubTree) *entity.Tree {
	tree := entity.EmptyTree(fmt.Sprintf("floating-%d", m.nextFloatingID))
	tree.InsertSubtreeAt(sub, nil)
	tree.EnsureActiveTabs()
	return tree
}
