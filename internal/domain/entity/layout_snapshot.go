package entity

import (
	"errors"
	"fmt"
	"math"
)

// LayoutSnapshotVersion is the current schema version of layout snapshots.
// Increment when making breaking changes to the serialization format.
const LayoutSnapshotVersion = 2

// ErrMalformedSnapshot is returned when node references do not resolve.
var ErrMalformedSnapshot = errors.New("malformed layout snapshot")

// UnsupportedVersionError reports a snapshot written by another schema.
type UnsupportedVersionError struct {
	Found    int
	Expected int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported layout snapshot version: %d (expected %d)", e.Found, e.Expected)
}

// Node kinds used in NodeSnapshot.Kind.
const (
	NodePane   = "pane"
	NodeTabs   = "tabs"
	NodeLinear = "linear"
	NodeGrid   = "grid"
)

// LayoutSnapshot captures every host of a docking session. Panes are
// stored by application-defined id only.
type LayoutSnapshot struct {
	Version            int                `json:"version"`
	Root               TreeSnapshot       `json:"root"`
	Detached           []DetachedSnapshot `json:"detached,omitempty"`
	Floating           []FloatingSnapshot `json:"floating,omitempty"`
	NextDetachedSerial uint64             `json:"next_detached_serial"`
	NextFloatingID     uint64             `json:"next_floating_id"`
}

// DetachedSnapshot is one native window hosting a tree.
type DetachedSnapshot struct {
	Serial    uint64       `json:"serial"`
	Title     string       `json:"title,omitempty"`
	InnerRect *Rect        `json:"inner_rect,omitempty"`
	Tree      TreeSnapshot `json:"tree"`
}

// FloatingSnapshot is one contained floating window. Host is "root" or
// the detached serial it lives in.
type FloatingSnapshot struct {
	ID           uint64       `json:"id"`
	HostDetached *uint64      `json:"host_detached,omitempty"`
	OffsetInDock Vec          `json:"offset_in_dock"`
	Size         Vec          `json:"size"`
	Collapsed    bool         `json:"collapsed,omitempty"`
	Z            int          `json:"z"`
	Tree         TreeSnapshot `json:"tree"`
}

// TreeSnapshot is an ordered node list; children reference nodes by index.
type TreeSnapshot struct {
	ID    string         `json:"id,omitempty"`
	Root  *int           `json:"root"`
	Nodes []NodeSnapshot `json:"nodes"`
}

// NodeSnapshot is one tile. Only the fields of its Kind are set.
type NodeSnapshot struct {
	Kind      string         `json:"kind"`
	Visible   bool           `json:"visible"`
	Flags     ContainerFlags `json:"flags,omitempty"`
	PaneID    string         `json:"pane_id,omitempty"`
	Children  []int          `json:"children,omitempty"`
	Active    *int           `json:"active,omitempty"`
	Dir       string         `json:"dir,omitempty"`
	Shares    []float64      `json:"shares,omitempty"`
	Columns   int            `json:"columns,omitempty"`
	ColShares []float64      `json:"col_shares,omitempty"`
	RowShares []float64      `json:"row_shares,omitempty"`
}

// CheckVersion returns an *UnsupportedVersionError for foreign schemas.
func (s *LayoutSnapshot) CheckVersion() error {
	if s.Version != LayoutSnapshotVersion {
		return &UnsupportedVersionError{Found: s.Version, Expected: LayoutSnapshotVersion}
	}
	return nil
}

// SnapshotTree converts a tree into its node list form.
func SnapshotTree(tree *Tree, paneID func(Pane) string) TreeSnapshot {
	snap := TreeSnapshot{ID: tree.ID, Nodes: []NodeSnapshot{}}
	if tree.IsEmpty() || !tree.Tiles.Has(tree.Root) {
		return snap
	}
	index := make(map[TileID]int)

	var visit func(id TileID) int
	visit = func(id TileID) int {
		if idx, ok := index[id]; ok {
			return idx
		}
		// Reserve the slot before recursing so indices stay stable.
		idx := len(snap.Nodes)
		index[id] = idx
		snap.Nodes = append(snap.Nodes, NodeSnapshot{})

		tile, _ := tree.Tiles.Get(id)
		node := NodeSnapshot{Visible: tree.Tiles.IsVisible(id)}
		if tile.IsPane() {
			node.Kind = NodePane
			node.PaneID = paneID(tile.Pane)
			snap.Nodes[idx] = node
			return idx
		}

		var children []int
		for _, c := range tile.Children() {
			if tree.Tiles.Has(c) {
				children = append(children, visit(c))
			}
		}
		node.Children = children
		node.Flags = tile.Container.Flags()

		switch c := tile.Container.(type) {
		case *Tabs:
			node.Kind = NodeTabs
			if ai := c.ActiveIndex(); ai >= 0 {
				node.Active = &ai
			}
		case *Linear:
			node.Kind = NodeLinear
			node.Dir = c.Dir.String()
			for _, child := range c.Children() {
				if tree.Tiles.Has(child) {
					node.Shares = append(node.Shares, c.Share(child))
				}
			}
		case *Grid:
			node.Kind = NodeGrid
			node.Columns = c.Layout.Columns
			node.ColShares = append([]float64(nil), c.ColShares...)
			node.RowShares = append([]float64(nil), c.RowShares...)
		}
		snap.Nodes[idx] = node
		return idx
	}

	root := visit(tree.Root)
	snap.Root = &root
	return snap
}

// RestoreTree rebuilds a tree with fresh tile ids. fromID must resolve
// every pane; an unresolved pane fails the restore.
func RestoreTree(snap TreeSnapshot, fromID func(string) (Pane, bool)) (*Tree, error) {
	return restoreTree(snap, fromID, true)
}

// TryRestoreTree rebuilds a tree, dropping panes fromID cannot resolve
// and any container left empty by that.
func TryRestoreTree(snap TreeSnapshot, fromID func(string) (Pane, bool)) (*Tree, error) {
	return restoreTree(snap, fromID, false)
}

func restoreTree(snap TreeSnapshot, fromID func(string) (Pane, bool), strict bool) (*Tree, error) {
	tree := EmptyTree(snap.ID)
	if snap.Root == nil {
		return tree, nil
	}
	if *snap.Root < 0 || *snap.Root >= len(snap.Nodes) {
		return nil, fmt.Errorf("root index %d of %d nodes: %w", *snap.Root, len(snap.Nodes), ErrMalformedSnapshot)
	}

	built := make([]TileID, len(snap.Nodes))
	building := make([]bool, len(snap.Nodes))

	var build func(idx int) (TileID, error)
	build = func(idx int) (TileID, error) {
		if idx < 0 || idx >= len(snap.Nodes) {
			return NoTile, fmt.Errorf("node index %d of %d: %w", idx, len(snap.Nodes), ErrMalformedSnapshot)
		}
		if built[idx] != NoTile {
			return NoTile, fmt.Errorf("node %d referenced twice: %w", idx, ErrMalformedSnapshot)
		}
		if building[idx] {
			return NoTile, fmt.Errorf("node %d is its own ancestor: %w", idx, ErrMalformedSnapshot)
		}
		building[idx] = true
		node := snap.Nodes[idx]

		if node.Kind == NodePane {
			pane, ok := fromID(node.PaneID)
			if !ok {
				if strict {
					return NoTile, fmt.Errorf("pane %q: %w", node.PaneID, ErrTileNotFound)
				}
				building[idx] = false
				return NoTile, nil
			}
			id := tree.Tiles.InsertPane(pane)
			tree.Tiles.SetVisible(id, node.Visible)
			built[idx] = id
			return id, nil
		}

		var children []TileID
		var kept []int
		for pos, ci := range node.Children {
			cid, err := build(ci)
			if err != nil {
				return NoTile, err
			}
			if cid != NoTile {
				children = append(children, cid)
				kept = append(kept, pos)
			}
		}
		if !strict && len(children) == 0 && len(node.Children) > 0 {
			building[idx] = false
			return NoTile, nil
		}

		var c Container
		switch node.Kind {
		case NodeTabs:
			tabs := NewTabs(children)
			if node.Active != nil {
				for i, pos := range kept {
					if pos == *node.Active {
						tabs.Active = children[i]
					}
				}
			}
			c = tabs
		case NodeLinear:
			dir := DirHorizontal
			if node.Dir == DirVertical.String() {
				dir = DirVertical
			}
			lin := NewLinear(dir, children)
			for i, pos := range kept {
				if pos < len(node.Shares) {
					if s := node.Shares[pos]; !math.IsNaN(s) && !math.IsInf(s, 0) {
						lin.SetShare(children[i], s)
					}
				}
			}
			c = lin
		case NodeGrid:
			g := NewGrid(children)
			g.Layout = GridLayout{Columns: node.Columns}
			g.ColShares = append([]float64(nil), node.ColShares...)
			g.RowShares = append([]float64(nil), node.RowShares...)
			c = g
		default:
			return NoTile, fmt.Errorf("node %d kind %q: %w", idx, node.Kind, ErrMalformedSnapshot)
		}
		c.SetFlags(node.Flags)
		id := tree.Tiles.InsertContainer(c)
		tree.Tiles.SetVisible(id, node.Visible)
		built[idx] = id
		return id, nil
	}

	root, err := build(*snap.Root)
	if err != nil {
		return nil, err
	}
	tree.Root = root
	tree.EnsureActiveTabs()
	return tree, nil
}
