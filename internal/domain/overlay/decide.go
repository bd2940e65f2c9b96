package overlay

import (
	"github.com/bnema/dockyard/internal/domain/entity"
)

// DragKind selects the docking policy of a hover.
type DragKind int

const (
	// DragWindowMove is a whole detached or floating window being moved.
	DragWindowMove DragKind = iota
	// DragInternal is a subtree dragged within the tree it belongs to.
	DragInternal
	// DragExternal is a subtree dragged in from another surface.
	DragExternal
)

func (k DragKind) String() string {
	switch k {
	case DragWindowMove:
		return "window-move"
	case DragInternal:
		return "internal"
	case DragExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Overlay is one set of painted targets.
type Overlay struct {
	// Outer is true for the dock edge buttons.
	Outer bool
	// Tile is the hovered tile for inner overlays, NoTile for outer ones.
	Tile entity.TileID
	// Rect is the tile rect (inner) or dock rect (outer).
	Rect    entity.Rect
	Targets Targets
	Hovered *TargetRect
}

// Preview is the rect a drop on the hovered target would fill.
func (o Overlay) Preview() (entity.Rect, bool) {
	if o.Hovered == nil {
		return entity.Rect{}, false
	}
	return PreviewRect(o.Rect, o.Hovered.Target), true
}

// HoveredTarget returns the hovered target, if any.
func (o Overlay) HoveredTarget() (Target, bool) {
	if o.Hovered == nil {
		return 0, false
	}
	return o.Hovered.Target, true
}

// Request is the input of Decide. Tree must be laid out in the same
// coordinate space as DockRect and Pointer.
type Request struct {
	Tree      *entity.Tree
	Style     entity.LayoutStyle
	DockRect  entity.Rect
	Pointer   entity.Pos
	ShowOuter bool
	Kind      DragKind
	// Dragged is the dragged tile of an internal drag, NoTile if unknown.
	Dragged entity.TileID
}

// Decision is what a hover resolves to.
type Decision struct {
	// Paint is the overlay to draw, nil when nothing should be drawn.
	Paint *Overlay
	// Explicit is set when a target button is under the pointer.
	Explicit *entity.InsertionPoint
	// Fallback is the heuristic zone used when no button is hit.
	Fallback *entity.DockZone
	// Final is what a release right now would commit to.
	Final *entity.InsertionPoint
	// DisableTilesPreview suppresses the tree's own drag preview.
	DisableTilesPreview bool
}

// FallbackInsertion returns the fallback zone's insertion, if any.
func (d Decision) FallbackInsertion() *entity.InsertionPoint {
	if d.Fallback == nil {
		return nil
	}
	ins := d.Fallback.Insertion
	return &ins
}

// BestTileUnderPointer returns the smallest active tile containing p.
// The first tile in layout order wins ties.
func BestTileUnderPointer(tree *entity.Tree, p entity.Pos) (entity.TileID, entity.Rect, bool) {
	var (
		best     entity.TileID
		bestRect entity.Rect
		bestArea float64
		found    bool
	)
	for _, id := range tree.ActiveTiles() {
		r, ok := tree.Tiles.Rect(id)
		if !ok || !r.Contains(p) {
			continue
		}
		if a := r.Area(); !found || a < bestArea {
			best, bestRect, bestArea, found = id, r, a, true
		}
	}
	return best, bestRect, found
}

// bestTileConsideringDragged widens the hover to the dragged tile's
// parent (or the root) so a tile never offers targets onto itself.
func bestTileConsideringDragged(tree *entity.Tree, p entity.Pos, dragged entity.TileID) (entity.TileID, entity.Rect, bool) {
	id, r, ok := BestTileUnderPointer(tree, p)
	if !ok || dragged == entity.NoTile || id != dragged {
		return id, r, ok
	}
	if parent, ok := tree.ParentOf(dragged); ok {
		if pr, ok := tree.Tiles.Rect(parent); ok {
			return parent, pr, true
		}
	}
	if tree.Root != entity.NoTile {
		if rr, ok := tree.Tiles.Rect(tree.Root); ok {
			return tree.Root, rr, true
		}
	}
	return id, r, true
}

// WindowMoveTitleZone is the explicit target for window moves: the tab
// bar of the hovered Tabs group, or the title band on top of a bare
// tile. Returns false outside any such band.
func WindowMoveTitleZone(tree *entity.Tree, style entity.LayoutStyle, p entity.Pos) (entity.DockZone, bool) {
	tile, _, ok := BestTileUnderPointer(tree, p)
	if !ok {
		return entity.DockZone{}, false
	}

	header := tile
	if parent, ok := tree.ParentOf(tile); ok && isTabs(tree, parent) {
		header = parent
	}
	hr, ok := tree.Tiles.Rect(header)
	if !ok {
		return entity.DockZone{}, false
	}
	band := entity.Rect{
		Min: hr.Min,
		Max: entity.Pos{X: hr.Max.X, Y: min(hr.Max.Y, hr.Min.Y+style.TabBarHeight)},
	}
	if !band.Contains(p) {
		return entity.DockZone{}, false
	}

	if isTabs(tree, header) {
		if zone, ok := tree.DockZoneAt(p, style); ok &&
			zone.Insertion.Insertion.Kind == entity.KindTabs && zone.Insertion.Parent == header {
			return zone, true
		}
	}
	return entity.DockZone{
		Insertion: entity.InsertionPoint{Parent: header, Insertion: entity.TabsAt(entity.Append)},
		Preview:   band,
	}, true
}

func isTabs(tree *entity.Tree, id entity.TileID) bool {
	c, ok := tree.Tiles.Container(id)
	return ok && c.Kind() == entity.KindTabs
}

// InnerOverlay builds the inner overlay for tile, or nil when nothing
// is under p. The hovered target uses the plain box test.
func (m Metrics) InnerOverlay(tree *entity.Tree, p entity.Pos, dragged entity.TileID) *Overlay {
	return m.innerOverlay(tree, p, dragged, false)
}

// RadialOverlay is InnerOverlay with the hovered target picked by
// HitTest around the tile center.
func (m Metrics) RadialOverlay(tree *entity.Tree, p entity.Pos) *Overlay {
	return m.innerOverlay(tree, p, entity.NoTile, true)
}

func (m Metrics) innerOverlay(tree *entity.Tree, p entity.Pos, dragged entity.TileID, radial bool) *Overlay {
	var (
		tile entity.TileID
		r    entity.Rect
		ok   bool
	)
	if dragged != entity.NoTile {
		tile, r, ok = bestTileConsideringDragged(tree, p, dragged)
	} else {
		tile, r, ok = BestTileUnderPointer(tree, p)
	}
	if !ok {
		return nil
	}

	allowLR, allowTB := true, true
	if c, ok := tree.Tiles.Container(tile); ok {
		allowLR = c.Kind() != entity.KindHorizontal
		allowTB = c.Kind() != entity.KindVertical
	}
	o := &Overlay{Tile: tile, Rect: r, Targets: m.InnerTargets(r, allowLR, allowTB)}
	hit, ok := m.HitTestBoxes(o.Targets, p)
	if radial {
		hit, ok = m.HitTest(o.Targets, p, r.Center())
	}
	if ok {
		o.Hovered = &hit
	}
	return o
}

// DropInsertion resolves a release at p: the outer edge targets when
// showOuter is set and p is in the outer band, otherwise the radial hit
// of the inner overlay under p. Returns nil when no target is hit.
func (m Metrics) DropInsertion(tree *entity.Tree, dock entity.Rect, p entity.Pos, showOuter bool) *entity.InsertionPoint {
	if tree == nil || tree.Root == entity.NoTile {
		return nil
	}
	if showOuter && m.InOuterBand(dock, p) {
		o := m.OuterOverlay(dock, p)
		if o == nil || o.Hovered == nil {
			return nil
		}
		return InsertionFor(tree.Root, o.Hovered.Target)
	}
	o := m.RadialOverlay(tree, p)
	if o == nil || o.Hovered == nil {
		return nil
	}
	return InsertionFor(o.Tile, o.Hovered.Target)
}

// OuterOverlay builds the dock edge overlay, or nil when the dock rect
// is too small to hold it.
func (m Metrics) OuterOverlay(dock entity.Rect, p entity.Pos) *Overlay {
	ts, ok := m.OuterTargets(dock)
	if !ok {
		return nil
	}
	o := &Overlay{Outer: true, Tile: entity.NoTile, Rect: dock, Targets: ts}
	if hit, ok := m.HitTestBoxes(ts, p); ok {
		o.Hovered = &hit
	}
	return o
}

// Decide resolves a hover into paint and insertion decisions following
// the policy of req.Kind.
func (m Metrics) Decide(req Request) Decision {
	tree := req.Tree
	internal := req.Kind == DragInternal

	// A hovered tab bar or title band beats the outer band for every
	// kind, so tabs near the dock edge still accept a tab drop.
	var wmZone *entity.DockZone
	if z, ok := WindowMoveTitleZone(tree, req.Style, req.Pointer); ok {
		wmZone = &z
	}

	outerMode := req.ShowOuter && wmZone == nil && m.InOuterBand(req.DockRect, req.Pointer)

	var candidate *Overlay
	var explicit *entity.InsertionPoint
	if outerMode {
		candidate = m.OuterOverlay(req.DockRect, req.Pointer)
		if candidate != nil && candidate.Hovered != nil && tree.Root != entity.NoTile {
			explicit = InsertionFor(tree.Root, candidate.Hovered.Target)
		}
	} else {
		dragged := entity.NoTile
		if internal {
			dragged = req.Dragged
		}
		candidate = m.InnerOverlay(tree, req.Pointer, dragged)
		if candidate != nil && candidate.Hovered != nil {
			explicit = InsertionFor(candidate.Tile, candidate.Hovered.Target)
		}
	}

	if internal && explicit != nil && req.Dragged != entity.NoTile &&
		(explicit.Parent == req.Dragged || tree.ContainsDescendant(req.Dragged, explicit.Parent)) {
		explicit = nil
	}

	d := Decision{Explicit: explicit}
	if !internal || explicit != nil {
		d.Paint = candidate
	}

	switch req.Kind {
	case DragExternal:
		if z, ok := tree.DockZoneAt(req.Pointer, req.Style); ok {
			d.Fallback = &z
		}
	case DragWindowMove:
		d.Fallback = wmZone
	}

	switch {
	case explicit != nil:
		d.Final = explicit
	case !internal:
		d.Final = d.FallbackInsertion()
	}
	d.DisableTilesPreview = internal && explicit != nil
	return d
}
