package entity

// DockZone is a candidate drop location with the rect to highlight.
type DockZone struct {
	Insertion InsertionPoint
	Preview   Rect
}

// DockZoneAt proposes where a tile dropped at p would go, using the
// layout from the last Layout call. Over a tab bar it picks a tab index;
// over a tile it picks the center or one of the four halves, whichever
// preview center is nearest to p. Container flags are honoured.
func (t *Tree) DockZoneAt(p Pos, style LayoutStyle) (DockZone, bool) {
	if zone, ok := t.tabBarZoneAt(p, style); ok {
		return zone, true
	}

	tile, ok := t.TileAt(p)
	if !ok {
		return DockZone{}, false
	}
	r, _ := t.Tiles.Rect(tile)

	var candidates []DockZone
	add := func(ins InsertionPoint, preview Rect) {
		if t.InsertionAllowed(&ins) {
			candidates = append(candidates, DockZone{Insertion: ins, Preview: preview})
		}
	}

	center := InsertionPoint{Parent: tile, Insertion: TabsAt(Append)}
	if parent, ok := t.ParentOf(tile); ok && t.isPane(tile) {
		if pc, ok := t.Tiles.Container(parent); ok && pc.Kind() == KindTabs {
			center = InsertionPoint{Parent: parent, Insertion: TabsAt(Append)}
		}
	}
	add(center, r)

	left, right := r.SplitLeftRight(0.5)
	top, bottom := r.SplitTopBottom(0.5)
	add(InsertionPoint{Parent: tile, Insertion: HorizontalAt(0)}, left)
	add(InsertionPoint{Parent: tile, Insertion: HorizontalAt(Append)}, right)
	add(InsertionPoint{Parent: tile, Insertion: VerticalAt(0)}, top)
	add(InsertionPoint{Parent: tile, Insertion: VerticalAt(Append)}, bottom)

	if len(candidates) == 0 {
		return DockZone{}, false
	}
	best := candidates[0]
	bestDist := best.Preview.Center().DistanceSq(p)
	for _, c := range candidates[1:] {
		if d := c.Preview.Center().DistanceSq(p); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}

func (t *Tree) tabBarZoneAt(p Pos, style LayoutStyle) (DockZone, bool) {
	for _, id := range t.ActiveTiles() {
		c, ok := t.Tiles.Container(id)
		if !ok || c.Kind() != KindTabs {
			continue
		}
		bar, ok := t.TabBarRect(id, style)
		if !ok || !bar.Contains(p) {
			continue
		}
		ins := InsertionPoint{Parent: id, Insertion: TabsAt(t.tabIndexAt(id, p, style))}
		if !t.InsertionAllowed(&ins) {
			return DockZone{}, false
		}
		return DockZone{Insertion: ins, Preview: bar}, true
	}
	return DockZone{}, false
}

// tabIndexAt maps a pointer over a tab bar to a child index of tabs.
func (t *Tree) tabIndexAt(tabs TileID, p Pos, style LayoutStyle) int {
	ids, rects := t.TabRects(tabs, style)
	c, _ := t.Tiles.Container(tabs)
	for i, r := range rects {
		if p.X < r.Center().X {
			return c.(*Tabs).indexOf(ids[i])
		}
	}
	return Append
}
