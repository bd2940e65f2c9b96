package entity

import (
	"errors"
	"fmt"
)

// ErrNotLeafNode is returned when docking into a node that was split.
var ErrNotLeafNode = errors.New("dock node is not a leaf")

// DockNodeID names a node of a DockBuilder.
type DockNodeID uint64

type dockNode struct {
	panes []Pane

	split    bool
	dir      SplitDirection
	fraction float64
	main     DockNodeID
	side     DockNodeID
}

// DockBuilder builds a tree the way scripted editor layouts are usually
// written: create a node, split it, dock panes into the leaves.
// Leaves become Tabs containers and may stay empty.
type DockBuilder struct {
	id    string
	next  DockNodeID
	nodes map[DockNodeID]*dockNode
}

// NewDockBuilder starts an empty builder for a tree named id.
func NewDockBuilder(id string) *DockBuilder {
	return &DockBuilder{id: id, next: 1, nodes: make(map[DockNodeID]*dockNode)}
}

// AddNode creates an empty leaf.
func (b *DockBuilder) AddNode() DockNodeID {
	id := b.next
	b.next++
	b.nodes[id] = &dockNode{}
	return id
}

// SplitNode turns node into a split. Its previous content moves into the
// returned main node; side receives fraction of the space on dir.
func (b *DockBuilder) SplitNode(node DockNodeID, dir SplitDirection, fraction float64) (side, main DockNodeID) {
	old, ok := b.nodes[node]
	if !ok {
		old = &dockNode{}
	}
	main = b.AddNode()
	b.nodes[main] = old
	side = b.AddNode()
	b.nodes[node] = &dockNode{
		split:    true,
		dir:      dir,
		fraction: clamp01(fraction),
		main:     main,
		side:     side,
	}
	return side, main
}

// DockPane appends pane to the leaf node.
func (b *DockBuilder) DockPane(pane Pane, node DockNodeID) error {
	n, ok := b.nodes[node]
	if !ok {
		return fmt.Errorf("dock node %d: %w", node, ErrTileNotFound)
	}
	if n.split {
		return fmt.Errorf("dock node %d: %w", node, ErrNotLeafNode)
	}
	n.panes = append(n.panes, pane)
	return nil
}

// DockPanes docks several panes as tabs of one leaf.
func (b *DockBuilder) DockPanes(panes []Pane, node DockNodeID) error {
	for _, p := range panes {
		if err := b.DockPane(p, node); err != nil {
			return err
		}
	}
	return nil
}

// Finish produces the tree rooted at root.
func (b *DockBuilder) Finish(root DockNodeID) (*Tree, error) {
	return b.FinishMap(root, func(p Pane) (Pane, bool) { return p, true })
}

// FinishMap is Finish with a per-pane mapping; rejected panes are dropped.
func (b *DockBuilder) FinishMap(root DockNodeID, mapPane func(Pane) (Pane, bool)) (*Tree, error) {
	tiles := NewTiles()
	id, err := b.build(root, tiles, mapPane)
	if err != nil {
		return nil, err
	}
	return NewTree(b.id, id, tiles), nil
}

func (b *DockBuilder) build(node DockNodeID, tiles *Tiles, mapPane func(Pane) (Pane, bool)) (TileID, error) {
	n, ok := b.nodes[node]
	if !ok {
		return NoTile, fmt.Errorf("dock node %d: %w", node, ErrTileNotFound)
	}
	if !n.split {
		var children []TileID
		for _, p := range n.panes {
			if mapped, ok := mapPane(p); ok {
				children = append(children, tiles.InsertPane(mapped))
			}
		}
		return tiles.InsertTabTile(children), nil
	}

	mainID, err := b.build(n.main, tiles, mapPane)
	if err != nil {
		return NoTile, err
	}
	sideID, err := b.build(n.side, tiles, mapPane)
	if err != nil {
		return NoTile, err
	}
	pair := [2]TileID{mainID, sideID}
	first := 1 - n.fraction
	if n.dir.sideFirst() {
		pair = [2]TileID{sideID, mainID}
		first = n.fraction
	}
	return tiles.InsertContainer(NewLinearBinary(n.dir.Axis(), pair, first)), nil
}
