package entity

import "fmt"

// SplitDirection says where the new side tile goes relative to the
// existing one.
type SplitDirection int

const (
	SplitLeft SplitDirection = iota
	SplitRight
	SplitUp
	SplitDown
)

func (d SplitDirection) String() string {
	switch d {
	case SplitLeft:
		return "left"
	case SplitRight:
		return "right"
	case SplitUp:
		return "up"
	case SplitDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseSplitDirection maps "left", "right", "up"/"top" and
// "down"/"bottom" onto a direction.
func ParseSplitDirection(s string) (SplitDirection, error) {
	switch s {
	case "left":
		return SplitLeft, nil
	case "right":
		return SplitRight, nil
	case "up", "top":
		return SplitUp, nil
	case "down", "bottom":
		return SplitDown, nil
	default:
		return 0, fmt.Errorf("unknown split direction %q", s)
	}
}

// Axis returns the Linear direction the split produces.
func (d SplitDirection) Axis() LinearDir {
	if d == SplitUp || d == SplitDown {
		return DirVertical
	}
	return DirHorizontal
}

// sideFirst reports whether the side tile precedes the target.
func (d SplitDirection) sideFirst() bool {
	return d == SplitLeft || d == SplitUp
}

// SplitTile inserts pane next to target, giving it fraction of the
// target's space. Returns the new pane's id.
func (t *Tree) SplitTile(target TileID, dir SplitDirection, pane Pane, fraction float64) (TileID, error) {
	if !t.Tiles.Has(target) {
		return NoTile, fmt.Errorf("split %s: %w", target, ErrTileNotFound)
	}
	side := t.Tiles.InsertPane(pane)
	if err := t.SplitTileWith(target, dir, side, fraction); err != nil {
		t.Tiles.Remove(side)
		return NoTile, err
	}
	return side, nil
}

// SplitTileWith places an existing detached tile next to target.
func (t *Tree) SplitTileWith(target TileID, dir SplitDirection, side TileID, fraction float64) error {
	if !t.Tiles.Has(target) {
		return fmt.Errorf("split %s: %w", target, ErrTileNotFound)
	}
	fraction = clamp01(fraction)
	axis := dir.Axis()

	parent, hasParent := t.ParentOf(target)
	if hasParent {
		pc, _ := t.Tiles.Container(parent)
		if pc.Flags().Has(FlagLockLayout) {
			return fmt.Errorf("split %s: %w", target, ErrLayoutLocked)
		}
		if lin, ok := pc.(*Linear); ok && lin.Dir == axis {
			if lin.Flags().Has(FlagNoSplit) {
				return fmt.Errorf("split %s: %w", target, ErrLayoutLocked)
			}
			share := lin.Share(target)
			idx := lin.indexOf(target)
			lin.SetShare(target, share*(1-fraction))
			if !dir.sideFirst() {
				idx++
			}
			lin.InsertChildWithShare(idx, side, share*fraction)
			return nil
		}
	}

	pair := [2]TileID{target, side}
	first := 1 - fraction
	if dir.sideFirst() {
		pair = [2]TileID{side, target}
		first = fraction
	}
	split := t.Tiles.InsertContainer(NewLinearBinary(axis, pair, first))
	if !hasParent {
		t.Root = split
		return nil
	}
	pc, _ := t.Tiles.Container(parent)
	pc.ReplaceChild(target, split)
	return nil
}

// SetShare sets the weight of child inside a Linear container.
func (t *Tree) SetShare(linear, child TileID, share float64) error {
	lin, err := t.linear(linear)
	if err != nil {
		return err
	}
	if lin.indexOf(child) < 0 {
		return fmt.Errorf("set share %s in %s: %w", child, linear, ErrTileNotFound)
	}
	lin.SetShare(child, share)
	return nil
}

// EqualizeShares gives every visible child of a Linear the same weight.
func (t *Tree) EqualizeShares(linear TileID) error {
	lin, err := t.linear(linear)
	if err != nil {
		return err
	}
	lin.Equalize(t.Tiles.IsVisible)
	return nil
}

// NormalizeShares rescales a Linear's weights to sum to its child count.
func (t *Tree) NormalizeShares(linear TileID) error {
	lin, err := t.linear(linear)
	if err != nil {
		return err
	}
	lin.Normalize()
	return nil
}

func (t *Tree) linear(id TileID) (*Linear, error) {
	c, ok := t.Tiles.Container(id)
	if !ok {
		return nil, fmt.Errorf("linear %s: %w", id, ErrNotContainer)
	}
	lin, ok := c.(*Linear)
	if !ok {
		return nil, fmt.Errorf("linear %s is %s: %w", id, c.Kind(), ErrNotContainer)
	}
	return lin, nil
}
