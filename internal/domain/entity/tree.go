package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTileNotFound is returned when an id does not resolve in the tree.
	ErrTileNotFound = errors.New("tile not found")
	// ErrNotContainer is returned when a container was expected.
	ErrNotContainer = errors.New("tile is not a container")
	// ErrLayoutLocked is returned when an edit targets a locked container.
	ErrLayoutLocked = errors.New("container layout is locked")
	// ErrCycle is returned when an edit would put a tile inside itself.
	ErrCycle = errors.New("tile would become its own descendant")
	// ErrNoParent is returned when a tile has no parent to detach from.
	ErrNoParent = errors.New("tile has no parent")
)

// Tree is one arena plus a root. A tree without a root holds no tiles.
type Tree struct {
	ID    string
	Root  TileID
	Tiles *Tiles
}

// NewTree builds a tree over an existing arena.
func NewTree(id string, root TileID, tiles *Tiles) *Tree {
	if tiles == nil {
		tiles = NewTiles()
	}
	return &Tree{ID: id, Root: root, Tiles: tiles}
}

// EmptyTree returns a tree with no root and no tiles.
func EmptyTree(id string) *Tree {
	return &Tree{ID: id, Tiles: NewTiles()}
}

// NewTabsTree builds a tree whose root is a Tabs over the given panes.
func NewTabsTree(id string, panes []Pane) *Tree {
	tiles := NewTiles()
	children := make([]TileID, 0, len(panes))
	for _, p := range panes {
		children = append(children, tiles.InsertPane(p))
	}
	root := tiles.InsertTabTile(children)
	return NewTree(id, root, tiles)
}

// IsEmpty reports whether the tree has no root.
func (t *Tree) IsEmpty() bool {
	return t.Root == NoTile
}

// Get looks a tile up.
func (t *Tree) Get(id TileID) (*Tile, bool) {
	return t.Tiles.Get(id)
}

// IsVisible reports the visibility flag of a tile.
func (t *Tree) IsVisible(id TileID) bool {
	return t.Tiles.IsVisible(id)
}

// SetVisible toggles a tile's visibility and re-picks the active tab of
// its parent when needed.
func (t *Tree) SetVisible(id TileID, visible bool) {
	t.Tiles.SetVisible(id, visible)
	if parent, ok := t.ParentOf(id); ok {
		t.ensureActiveAt(parent)
	}
}

// ForceSubtreeVisible marks a tile and all of its descendants visible.
func (t *Tree) ForceSubtreeVisible(id TileID) {
	t.walk(id, func(cur TileID, _ *Tile) {
		t.Tiles.SetVisible(cur, true)
	})
}

// ParentOf finds the parent container of id.
func (t *Tree) ParentOf(id TileID) (TileID, bool) {
	return t.Tiles.ParentOf(id)
}

// ContainsDescendant reports whether candidate is root or lies below it.
func (t *Tree) ContainsDescendant(root, candidate TileID) bool {
	return tilesContainDescendant(t.Tiles, root, candidate)
}

func tilesContainDescendant(tiles *Tiles, root, candidate TileID) bool {
	seen := make(map[TileID]struct{})
	stack := []TileID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == candidate {
			return true
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if tile, ok := tiles.Get(id); ok {
			stack = append(stack, tile.Children()...)
		}
	}
	return false
}

// SetActiveTab selects child inside the Tabs container tabs.
func (t *Tree) SetActiveTab(tabs, child TileID) error {
	c, ok := t.Tiles.Container(tabs)
	if !ok {
		return fmt.Errorf("set active tab %s: %w", tabs, ErrNotContainer)
	}
	tc, ok := c.(*Tabs)
	if !ok {
		return fmt.Errorf("set active tab %s: %w", tabs, ErrNotContainer)
	}
	if !tc.SetActive(child) {
		return fmt.Errorf("set active tab %s child %s: %w", tabs, child, ErrTileNotFound)
	}
	return nil
}

// MakeActive walks up from id selecting each Tabs ancestor's branch so
// that id ends up on screen.
func (t *Tree) MakeActive(id TileID) {
	cur := id
	for {
		parent, ok := t.ParentOf(cur)
		if !ok {
			return
		}
		if c, ok := t.Tiles.Container(parent); ok {
			if tabs, ok := c.(*Tabs); ok {
				tabs.SetActive(cur)
			}
		}
		cur = parent
	}
}

func (t *Tree) ensureActiveAt(id TileID) {
	c, ok := t.Tiles.Container(id)
	if !ok {
		return
	}
	if tabs, ok := c.(*Tabs); ok {
		tabs.EnsureActive(t.Tiles.IsVisible)
	}
}

// EnsureActiveTabs runs EnsureActive on every Tabs container.
func (t *Tree) EnsureActiveTabs() {
	for _, id := range t.Tiles.IDs() {
		t.ensureActiveAt(id)
	}
}

// ActiveTiles returns the visible tiles reachable from the root through
// the active branch of every Tabs container, in depth-first order.
func (t *Tree) ActiveTiles() []TileID {
	if t.IsEmpty() {
		return nil
	}
	var out []TileID
	var visit func(id TileID)
	visit = func(id TileID) {
		tile, ok := t.Tiles.Get(id)
		if !ok || !t.Tiles.IsVisible(id) {
			return
		}
		out = append(out, id)
		if tile.IsPane() {
			return
		}
		if tabs, ok := tile.Container.(*Tabs); ok {
			if tabs.Active != NoTile {
				visit(tabs.Active)
			}
			return
		}
		for _, c := range tile.Children() {
			visit(c)
		}
	}
	visit(t.Root)
	return out
}

// PaneCount counts the panes reachable from the root.
func (t *Tree) PaneCount() int {
	n := 0
	t.walk(t.Root, func(_ TileID, tile *Tile) {
		if tile.IsPane() {
			n++
		}
	})
	return n
}

// PaneIDs lists reachable pane tiles depth-first.
func (t *Tree) PaneIDs() []TileID {
	if t.IsEmpty() {
		return nil
	}
	return collectPanes(t.Tiles, t.Root, nil)
}

// FirstPane returns the first reachable pane depth-first.
func (t *Tree) FirstPane() (TileID, Pane, bool) {
	if t.IsEmpty() {
		return NoTile, nil, false
	}
	return firstPane(t.Tiles, t.Root)
}

// FindPane returns the tile holding a pane that matches pred.
func (t *Tree) FindPane(pred func(Pane) bool) (TileID, bool) {
	for _, id := range t.PaneIDs() {
		if p, ok := t.Tiles.PaneOf(id); ok && pred(p) {
			return id, true
		}
	}
	return NoTile, false
}

// walk visits id and its descendants once each, pre-order.
func (t *Tree) walk(id TileID, fn func(TileID, *Tile)) {
	if id == NoTile {
		return
	}
	seen := make(map[TileID]struct{})
	var visit func(cur TileID)
	visit = func(cur TileID) {
		if _, dup := seen[cur]; dup {
			return
		}
		seen[cur] = struct{}{}
		tile, ok := t.Tiles.Get(cur)
		if !ok {
			return
		}
		fn(cur, tile)
		for _, c := range tile.Children() {
			visit(c)
		}
	}
	visit(id)
}

// DebugSummary renders up to maxNodes reachable tiles, one per line.
func (t *Tree) DebugSummary(maxNodes int) string {
	if t.IsEmpty() {
		return "root=None"
	}
	seen := make(map[TileID]struct{})
	stack := []TileID{t.Root}
	var lines []string
	for len(stack) > 0 && len(lines) < maxNodes {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		visible := t.Tiles.IsVisible(id)
		tile, ok := t.Tiles.Get(id)
		switch {
		case !ok:
			lines = append(lines, fmt.Sprintf("%s MISSING visible=%t", id, visible))
		case tile.IsPane():
			lines = append(lines, fmt.Sprintf("%s Pane visible=%t", id, visible))
		default:
			children := tile.Children()
			lines = append(lines, fmt.Sprintf("%s Container(%s) visible=%t children=%v",
				id, tile.Kind(), visible, children))
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
	return fmt.Sprintf("root=%s reachable=%d total=%d\n%s",
		t.Root, len(seen), t.Tiles.Len(), strings.Join(lines, "\n"))
}

// Clone deep-copies the structure. Pane payloads are shared.
func (t *Tree) Clone() *Tree {
	tiles := NewTiles()
	for _, id := range t.Tiles.IDs() {
		tile, _ := t.Tiles.Get(id)
		tiles.InsertWithID(id, tile.Clone())
		if !t.Tiles.IsVisible(id) {
			tiles.SetVisible(id, false)
		}
		if r, ok := t.Tiles.Rect(id); ok {
			tiles.SetRect(id, r)
		}
	}
	return &Tree{ID: t.ID, Root: t.Root, Tiles: tiles}
}
