package entity

import "fmt"

// ContainerInsertion addresses a slot in a container of a given kind.
// Index may be Append.
type ContainerInsertion struct {
	Kind  ContainerKind
	Index int
}

// TabsAt inserts as a tab at index.
func TabsAt(index int) ContainerInsertion {
	return ContainerInsertion{Kind: KindTabs, Index: index}
}

// HorizontalAt inserts into a left-to-right split at index.
func HorizontalAt(index int) ContainerInsertion {
	return ContainerInsertion{Kind: KindHorizontal, Index: index}
}

// VerticalAt inserts into a top-to-bottom split at index.
func VerticalAt(index int) ContainerInsertion {
	return ContainerInsertion{Kind: KindVertical, Index: index}
}

// GridAt inserts into a grid cell at index.
func GridAt(index int) ContainerInsertion {
	return ContainerInsertion{Kind: KindGrid, Index: index}
}

func (c ContainerInsertion) String() string {
	if c.Index == Append {
		return fmt.Sprintf("%s(append)", c.Kind)
	}
	return fmt.Sprintf("%s(%d)", c.Kind, c.Index)
}

// InsertionPoint is the only vocabulary for where a subtree goes.
// A nil *InsertionPoint means "no explicit target".
type InsertionPoint struct {
	Parent    TileID
	Insertion ContainerInsertion
}

// NewInsertionPoint is a convenience constructor returning a pointer.
func NewInsertionPoint(parent TileID, ins ContainerInsertion) *InsertionPoint {
	return &InsertionPoint{Parent: parent, Insertion: ins}
}

func (p *InsertionPoint) String() string {
	if p == nil {
		return "none"
	}
	return fmt.Sprintf("%s@%s", p.Insertion, p.Parent)
}

// subtreeOrigin remembers where a fragment was cut from. scale is the
// factor the siblings' shares were renormalized by.
type subtreeOrigin struct {
	parent TileID
	index  int
	share  float64
	scale  float64
	linear bool
}

// SubTree is a detached fragment with its own arena, the unit of transfer
// between trees.
type SubTree struct {
	Root   TileID
	Tiles  *Tiles
	origin subtreeOrigin
}

// NewSubTree wraps a freshly built fragment.
func NewSubTree(root TileID, tiles *Tiles) *SubTree {
	return &SubTree{Root: root, Tiles: tiles}
}

// OriginParent returns the parent the fragment was extracted from and
// its index there.
func (s *SubTree) OriginParent() (TileID, int, bool) {
	if s.origin.parent == NoTile {
		return NoTile, -1, false
	}
	return s.origin.parent, s.origin.index, true
}

// Contains reports whether id belongs to the fragment.
func (s *SubTree) Contains(id TileID) bool {
	return s.Tiles.Has(id)
}

// FirstPane returns the first pane reached depth-first.
func (s *SubTree) FirstPane() (TileID, Pane, bool) {
	return firstPane(s.Tiles, s.Root)
}

// PaneIDs lists pane tiles in depth-first order.
func (s *SubTree) PaneIDs() []TileID {
	return collectPanes(s.Tiles, s.Root, nil)
}

func firstPane(tiles *Tiles, root TileID) (TileID, Pane, bool) {
	stack := []TileID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t, ok := tiles.Get(id)
		if !ok {
			continue
		}
		if t.IsPane() {
			return id, t.Pane, true
		}
		children := t.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return NoTile, nil, false
}

func collectPanes(tiles *Tiles, id TileID, out []TileID) []TileID {
	t, ok := tiles.Get(id)
	if !ok {
		return out
	}
	if t.IsPane() {
		return append(out, id)
	}
	for _, c := range t.Children() {
		out = collectPanes(tiles, c, out)
	}
	return out
}
