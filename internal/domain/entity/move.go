package entity

import "fmt"

// MoveTileToContainer relocates a tile already in the tree into
// newParent at index. Moving within the same parent reorders it. With
// reflowGrid false a grid keeps the other cells in place.
// Moves into the tile itself or one of its descendants are refused.
func (t *Tree) MoveTileToContainer(tile, newParent TileID, index int, reflowGrid bool) error {
	if !t.Tiles.Has(tile) {
		return fmt.Errorf("move %s: %w", tile, ErrTileNotFound)
	}
	dst, ok := t.Tiles.Container(newParent)
	if !ok {
		return fmt.Errorf("move %s into %s: %w", tile, newParent, ErrNotContainer)
	}
	if t.ContainsDescendant(tile, newParent) {
		return fmt.Errorf("move %s into its own subtree %s: %w", tile, newParent, ErrCycle)
	}
	if dst.Flags().Has(FlagLockLayout) || !t.CanExtract(tile) {
		return fmt.Errorf("move %s: %w", tile, ErrLayoutLocked)
	}

	oldParent, hasParent := t.ParentOf(tile)
	if !hasParent {
		// The root (or an orphan) has no parent to leave.
		return fmt.Errorf("move %s: %w", tile, ErrNoParent)
	}

	if oldParent == newParent {
		t.reorderWithin(dst, tile, index, reflowGrid)
		return nil
	}

	src, _ := t.Tiles.Container(oldParent)
	src.RemoveChild(tile)
	t.ensureActiveAt(oldParent)

	switch c := dst.(type) {
	case *Linear:
		c.InsertChild(index, tile)
	case *Tabs:
		c.InsertChild(index, tile)
		c.SetActive(tile)
		c.EnsureActive(t.Tiles.IsVisible)
	case *Grid:
		if reflowGrid {
			c.InsertChild(index, tile)
		} else {
			c.PlaceChild(index, tile)
		}
	}
	return nil
}

func (t *Tree) reorderWithin(c Container, tile TileID, index int, reflowGrid bool) {
	switch c := c.(type) {
	case *Linear:
		share := c.Share(tile)
		from := c.RemoveChild(tile)
		c.InsertChildWithShare(adjustIndex(from, index), tile, share)
	case *Tabs:
		active := c.Active
		from := c.RemoveChild(tile)
		c.InsertChild(adjustIndex(from, index), tile)
		if active != NoTile {
			c.SetActive(active)
		}
	case *Grid:
		from := c.indexOf(tile)
		if !reflowGrid && index >= 0 && index < len(c.children) {
			c.children[from], c.children[index] = c.children[index], c.children[from]
			return
		}
		c.RemoveChild(tile)
		c.InsertChild(adjustIndex(from, index), tile)
	}
}

// adjustIndex maps an index expressed before removal onto the list after
// the element at from was removed.
func adjustIndex(from, index int) int {
	if index == Append || from < 0 {
		return index
	}
	if index > from {
		return index - 1
	}
	return index
}
