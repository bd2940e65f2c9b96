package docking

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
)

var _ port.LayoutHost = (*Manager)(nil)

// SnapshotLayout captures every host of the session.
func (m *Manager) SnapshotLayout(registry port.PaneRegistry) entity.LayoutSnapshot {
	snap := entity.LayoutSnapshot{
		Version:            entity.LayoutSnapshotVersion,
		Root:               entity.SnapshotTree(m.root, registry.PaneID),
		NextDetachedSerial: m.nextDetachedSerial,
		NextFloatingID:     m.nextFloatingID,
	}
	for _, w := range m.Detached() {
		r := w.InnerRect
		snap.Detached = append(snap.Detached, entity.DetachedSnapshot{
			Serial:    w.Serial,
			Title:     w.Title,
			InnerRect: &r,
			Tree:      entity.SnapshotTree(w.Tree, registry.PaneID),
		})
	}
	for _, vp := range m.viewportOrder() {
		var host *uint64
		if w, ok := m.detached[vp]; ok {
			serial := w.Serial
			host = &serial
		}
		for z, fw := range m.Floating(vp) {
			snap.Floating = append(snap.Floating, entity.FloatingSnapshot{
				ID:           uint64(fw.ID),
				HostDetached: host,
				OffsetInDock: fw.Offset,
				Size:         fw.Size,
				Collapsed:    fw.Collapsed,
				Z:            z,
				Tree:         entity.SnapshotTree(fw.Tree, registry.PaneID),
			})
		}
	}
	return snap
}

// RestoreLayout replaces every host with the snapshot. Every tree is
// rebuilt before anything is swapped, so on error the live session is
// unchanged. Viewport commands for the new windows go out with the next
// frame.
func (m *Manager) RestoreLayout(_ context.Context, snap entity.LayoutSnapshot, registry port.PaneRegistry) error {
	if err := snap.CheckVersion(); err != nil {
		return err
	}

	root, err := entity.RestoreTree(snap.Root, registry.Pane)
	if err != nil {
		return fmt.Errorf("restore root tree: %w", err)
	}

	type restoredDetached struct {
		snap entity.DetachedSnapshot
		tree *entity.Tree
	}
	detached := make([]restoredDetached, 0, len(snap.Detached))
	serials := make(map[uint64]bool, len(snap.Detached))
	maxSerial := uint64(0)
	for _, d := range snap.Detached {
		if d.Serial == 0 || serials[d.Serial] {
			return fmt.Errorf("detached serial %d: %w", d.Serial, entity.ErrMalformedSnapshot)
		}
		serials[d.Serial] = true
		maxSerial = max(maxSerial, d.Serial)
		tree, err := entity.RestoreTree(d.Tree, registry.Pane)
		if err != nil {
			return fmt.Errorf("restore detached %d: %w", d.Serial, err)
		}
		detached = append(detached, restoredDetached{snap: d, tree: tree})
	}

	type restoredFloating struct {
		snap entity.FloatingSnapshot
		tree *entity.Tree
	}
	floating := make([]restoredFloating, 0, len(snap.Floating))
	ids := make(map[uint64]bool, len(snap.Floating))
	maxFloating := uint64(0)
	for _, f := range snap.Floating {
		if f.ID == 0 || ids[f.ID] {
			return fmt.Errorf("floating id %d: %w", f.ID, entity.ErrMalformedSnapshot)
		}
		if f.HostDetached != nil && !serials[*f.HostDetached] {
			return fmt.Errorf("floating %d hosted by unknown detached %d: %w", f.ID, *f.HostDetached, entity.ErrMalformedSnapshot)
		}
		ids[f.ID] = true
		maxFloating = max(maxFloating, f.ID)
		tree, err := entity.RestoreTree(f.Tree, registry.Pane)
		if err != nil {
			return fmt.Errorf("restore floating %d: %w", f.ID, err)
		}
		floating = append(floating, restoredFloating{snap: f, tree: tree})
	}

	for _, vp := range m.detachedOrder() {
		m.removeDetached(vp)
	}
	m.resetDrag()
	m.root = root
	m.floating = make(map[port.ViewportID]*floatingManager)
	m.nextDetachedSerial = max(snap.NextDetachedSerial, maxSerial+1)
	m.nextFloatingID = max(snap.NextFloatingID, maxFloating+1)

	for _, d := range detached {
		rect := entity.RectFromMinSize(fallbackSpawnPos, m.opts.detachedSize())
		if d.snap.InnerRect != nil {
			rect = *d.snap.InnerRect
		}
		rect = entity.RectFromMinSize(clampToMonitors(rect.Min, rect.Size(), m.monitors), rect.Size())
		w := &DetachedWindow{
			Viewport:  port.ViewportID(d.snap.Serial),
			Serial:    d.snap.Serial,
			Tree:      d.tree,
			Title:     d.snap.Title,
			InnerRect: rect,
		}
		if w.Title == "" {
			w.Title = titleForTree(d.tree, m.behavior)
		}
		m.detached[w.Viewport] = w
		m.viewportRects[w.Viewport] = rect
		m.emit(port.ViewportCommand{Kind: port.CommandCreate, Viewport: w.Viewport, Title: w.Title, InnerRect: rect})
	}

	slices.SortStableFunc(floating, func(a, b restoredFloating) int { return cmp.Compare(a.snap.Z, b.snap.Z) })
	for _, f := range floating {
		vp := port.RootViewport
		if f.snap.HostDetached != nil {
			vp = port.ViewportID(*f.snap.HostDetached)
		}
		fm, ok := m.floating[vp]
		if !ok {
			fm = newFloatingManager()
			m.floating[vp] = fm
		}
		fm.add(&FloatingWindow{
			ID:        FloatingID(f.snap.ID),
			Tree:      f.tree,
			Offset:    f.snap.OffsetInDock,
			Size:      f.snap.Size,
			Collapsed: f.snap.Collapsed,
		})
	}

	m.logger.Info().
		Int("panes", root.PaneCount()).
		Int("detached", len(detached)).
		Int("floating", len(floating)).
		Msg("layout restored")
	return nil
}

func (m *Manager) resetDrag() {
	m.payload = nil
	m.ghost = nil
	m.pendingDrop = nil
	m.pendingInternal = nil
	m.pendingLocal = nil
	m.pendingTearOff = nil
	m.pendingGhost = nil
	m.pendingCloses = nil
	m.moveGrab = entity.Vec{}
	m.drag = newDragState()
}
