package entity

import "slices"

// Tiles is the insertion-ordered arena owning every tile of one tree.
// Parents reference children by id only.
type Tiles struct {
	order  []TileID
	tiles  map[TileID]*Tile
	hidden map[TileID]struct{}
	rects  map[TileID]Rect
}

// NewTiles returns an empty arena.
func NewTiles() *Tiles {
	return &Tiles{
		tiles:  make(map[TileID]*Tile),
		hidden: make(map[TileID]struct{}),
		rects:  make(map[TileID]Rect),
	}
}

// Insert stores a tile under a fresh id.
func (ts *Tiles) Insert(t *Tile) TileID {
	id := NewTileID()
	ts.InsertWithID(id, t)
	return id
}

// InsertWithID stores a tile under a known id, replacing any previous
// tile with that id in place.
func (ts *Tiles) InsertWithID(id TileID, t *Tile) {
	reserveTileID(id)
	if _, ok := ts.tiles[id]; !ok {
		ts.order = append(ts.order, id)
	}
	ts.tiles[id] = t
}

// InsertPane stores a leaf.
func (ts *Tiles) InsertPane(p Pane) TileID {
	return ts.Insert(NewPaneTile(p))
}

// InsertContainer stores a container.
func (ts *Tiles) InsertContainer(c Container) TileID {
	return ts.Insert(NewContainerTile(c))
}

// InsertTabTile stores a new Tabs container over children.
func (ts *Tiles) InsertTabTile(children []TileID) TileID {
	return ts.InsertContainer(NewTabs(children))
}

// InsertHorizontalTile stores a new horizontal Linear container.
func (ts *Tiles) InsertHorizontalTile(children []TileID) TileID {
	return ts.InsertContainer(NewLinear(DirHorizontal, children))
}

// InsertVerticalTile stores a new vertical Linear container.
func (ts *Tiles) InsertVerticalTile(children []TileID) TileID {
	return ts.InsertContainer(NewLinear(DirVertical, children))
}

// InsertGridTile stores a new auto-layout Grid container.
func (ts *Tiles) InsertGridTile(children []TileID) TileID {
	return ts.InsertContainer(NewGrid(children))
}

// Get looks a tile up. A missing id is a normal outcome.
func (ts *Tiles) Get(id TileID) (*Tile, bool) {
	t, ok := ts.tiles[id]
	return t, ok
}

// Has reports whether id is stored.
func (ts *Tiles) Has(id TileID) bool {
	_, ok := ts.tiles[id]
	return ok
}

// Container returns the container stored under id, if any.
func (ts *Tiles) Container(id TileID) (Container, bool) {
	t, ok := ts.tiles[id]
	if !ok || t.Container == nil {
		return nil, false
	}
	return t.Container, true
}

// PaneOf returns the pane stored under id, if it is a leaf.
func (ts *Tiles) PaneOf(id TileID) (Pane, bool) {
	t, ok := ts.tiles[id]
	if !ok || t.Container != nil {
		return nil, false
	}
	return t.Pane, true
}

// Remove deletes a tile and its visibility and rect state.
// Children are left in place.
func (ts *Tiles) Remove(id TileID) (*Tile, bool) {
	t, ok := ts.tiles[id]
	if !ok {
		return nil, false
	}
	delete(ts.tiles, id)
	delete(ts.hidden, id)
	delete(ts.rects, id)
	if idx := slices.Index(ts.order, id); idx >= 0 {
		ts.order = slices.Delete(ts.order, idx, idx+1)
	}
	return t, true
}

// Len returns the number of stored tiles.
func (ts *Tiles) Len() int { return len(ts.tiles) }

// IDs returns every id in insertion order.
func (ts *Tiles) IDs() []TileID { return slices.Clone(ts.order) }

// IsVisible reports the visibility flag; missing tiles are invisible.
func (ts *Tiles) IsVisible(id TileID) bool {
	if !ts.Has(id) {
		return false
	}
	_, hidden := ts.hidden[id]
	return !hidden
}

// SetVisible toggles the visibility flag.
func (ts *Tiles) SetVisible(id TileID, visible bool) {
	if visible {
		delete(ts.hidden, id)
		return
	}
	if ts.Has(id) {
		ts.hidden[id] = struct{}{}
	}
}

// Rect returns the rect computed by the last layout pass.
func (ts *Tiles) Rect(id TileID) (Rect, bool) {
	r, ok := ts.rects[id]
	return r, ok
}

// SetRect records a layout result.
func (ts *Tiles) SetRect(id TileID, r Rect) {
	ts.rects[id] = r
}

// ClearRects forgets every layout result.
func (ts *Tiles) ClearRects() {
	clear(ts.rects)
}

// ParentOf finds the container that lists id as a child.
func (ts *Tiles) ParentOf(id TileID) (TileID, bool) {
	for _, pid := range ts.order {
		t := ts.tiles[pid]
		if t.Container != nil && slices.Contains(t.Container.Children(), id) {
			return pid, true
		}
	}
	return NoTile, false
}

// merge moves every tile of other into ts, keeping ids and visibility.
func (ts *Tiles) merge(other *Tiles) {
	for _, id := range other.order {
		ts.InsertWithID(id, other.tiles[id])
		if _, hidden := other.hidden[id]; hidden {
			ts.hidden[id] = struct{}{}
		}
	}
}
