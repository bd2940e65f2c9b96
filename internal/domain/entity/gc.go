package entity

// GC removes panes rejected by retain, then every container left empty,
// then any tile no longer reachable from the root. The root is cleared
// when nothing survives. Returns the number of tiles removed.
func (t *Tree) GC(retain func(TileID, Pane) bool) int {
	before := t.Tiles.Len()

	if !t.IsEmpty() && !t.gcTile(t.Root, retain) {
		t.Root = NoTile
	}

	reachable := make(map[TileID]struct{})
	t.walk(t.Root, func(id TileID, _ *Tile) {
		reachable[id] = struct{}{}
	})
	for _, id := range t.Tiles.IDs() {
		if _, ok := reachable[id]; !ok {
			t.Tiles.Remove(id)
		}
	}

	return before - t.Tiles.Len()
}

// gcTile reports whether id survives.
func (t *Tree) gcTile(id TileID, retain func(TileID, Pane) bool) bool {
	tile, ok := t.Tiles.Get(id)
	if !ok {
		return false
	}
	if tile.IsPane() {
		return retain == nil || retain(id, tile.Pane)
	}
	c := tile.Container
	for _, child := range append([]TileID(nil), c.Children()...) {
		if !t.gcTile(child, retain) {
			c.RemoveChild(child)
		}
	}
	if tabs, ok := c.(*Tabs); ok {
		tabs.EnsureActive(t.Tiles.IsVisible)
	}
	return len(c.Children()) > 0
}
