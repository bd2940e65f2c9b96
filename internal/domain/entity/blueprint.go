package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Blueprint kinds.
const (
	BlueprintPane  = "pane"
	BlueprintTabs  = "tabs"
	BlueprintSplit = "split"
	BlueprintGrid  = "grid"
)

// ErrInvalidBlueprint is returned for blueprints that cannot be built.
var ErrInvalidBlueprint = errors.New("invalid blueprint")

// Blueprint is a declarative layout description, typically written by
// hand in TOML. Panes are named by application-defined ids.
type Blueprint struct {
	Kind     string      `toml:"kind,omitempty" json:"kind,omitempty"`
	Pane     string      `toml:"pane,omitempty" json:"pane,omitempty"`
	Dir      string      `toml:"dir,omitempty" json:"dir,omitempty"`
	Children []Blueprint `toml:"children,omitempty" json:"children,omitempty"`
	Shares   []float64   `toml:"shares,omitempty" json:"shares,omitempty"`
	Active   *int        `toml:"active,omitempty" json:"active,omitempty"`
	Columns  int         `toml:"columns,omitempty" json:"columns,omitempty"`
	Flags    []string    `toml:"flags,omitempty" json:"flags,omitempty"`
}

// kind resolves an omitted Kind from the other fields.
func (b Blueprint) kind() string {
	if b.Kind != "" {
		return b.Kind
	}
	if b.Pane != "" {
		return BlueprintPane
	}
	if b.Dir != "" {
		return BlueprintSplit
	}
	return BlueprintTabs
}

// NewTreeFromBlueprint builds a whole tree.
func NewTreeFromBlueprint(id string, b Blueprint, makePane func(string) (Pane, bool)) (*Tree, error) {
	tiles := NewTiles()
	root, err := b.Build(tiles, makePane)
	if err != nil {
		return nil, err
	}
	return NewTree(id, root, tiles), nil
}

// Build inserts the blueprint's tiles into tiles and returns the root.
// Panes makePane rejects are skipped.
func (b Blueprint) Build(tiles *Tiles, makePane func(string) (Pane, bool)) (TileID, error) {
	switch b.kind() {
	case BlueprintPane:
		pane, ok := makePane(b.Pane)
		if !ok {
			return NoTile, nil
		}
		return tiles.InsertPane(pane), nil
	}

	children := make([]TileID, 0, len(b.Children))
	var kept []int
	for i, child := range b.Children {
		id, err := child.Build(tiles, makePane)
		if err != nil {
			return NoTile, err
		}
		if id != NoTile {
			children = append(children, id)
			kept = append(kept, i)
		}
	}

	flags, err := ParseContainerFlags(b.Flags)
	if err != nil {
		return NoTile, err
	}

	var c Container
	switch b.kind() {
	case BlueprintTabs:
		tabs := NewTabs(children)
		if b.Active != nil {
			for i, pos := range kept {
				if pos == *b.Active {
					tabs.Active = children[i]
				}
			}
		}
		c = tabs
	case BlueprintSplit:
		var dir LinearDir
		switch strings.ToLower(b.Dir) {
		case "", "horizontal":
			dir = DirHorizontal
		case "vertical":
			dir = DirVertical
		default:
			return NoTile, fmt.Errorf("split dir %q: %w", b.Dir, ErrInvalidBlueprint)
		}
		lin := NewLinear(dir, children)
		for i, pos := range kept {
			if pos < len(b.Shares) {
				lin.SetShare(children[i], b.Shares[pos])
			}
		}
		c = lin
	case BlueprintGrid:
		g := NewGrid(children)
		if b.Columns > 0 {
			g.Layout = GridColumns(b.Columns)
		}
		c = g
	default:
		return NoTile, fmt.Errorf("kind %q: %w", b.Kind, ErrInvalidBlueprint)
	}
	c.SetFlags(flags)
	return tiles.InsertContainer(c), nil
}

// ExportBlueprint describes the reachable part of tree. Invisible
// children are left out.
func ExportBlueprint(tree *Tree, paneID func(Pane) string) Blueprint {
	if tree.IsEmpty() {
		return Blueprint{Kind: BlueprintTabs}
	}
	return exportTile(tree, tree.Root, paneID)
}

func exportTile(tree *Tree, id TileID, paneID func(Pane) string) Blueprint {
	tile, ok := tree.Tiles.Get(id)
	if !ok {
		return Blueprint{Kind: BlueprintTabs}
	}
	if tile.IsPane() {
		return Blueprint{Kind: BlueprintPane, Pane: paneID(tile.Pane)}
	}

	b := Blueprint{Flags: FormatContainerFlags(tile.Container.Flags())}
	var visible []TileID
	for _, c := range tile.Children() {
		if tree.Tiles.IsVisible(c) {
			visible = append(visible, c)
			b.Children = append(b.Children, exportTile(tree, c, paneID))
		}
	}

	switch c := tile.Container.(type) {
	case *Tabs:
		b.Kind = BlueprintTabs
		for i, v := range visible {
			if v == c.Active {
				idx := i
				b.Active = &idx
			}
		}
	case *Linear:
		b.Kind = BlueprintSplit
		b.Dir = strings.ToLower(c.Dir.String())
		for _, v := range visible {
			b.Shares = append(b.Shares, c.Share(v))
		}
	case *Grid:
		b.Kind = BlueprintGrid
		b.Columns = c.Layout.Columns
	}
	return b
}

// String renders the structure compactly, e.g. "Horizontal[a, Tabs[b, c]]".
func (b Blueprint) String() string {
	var sb strings.Builder
	b.writeShape(&sb)
	return sb.String()
}

func (b Blueprint) writeShape(sb *strings.Builder) {
	switch b.kind() {
	case BlueprintPane:
		sb.WriteString(b.Pane)
		return
	case BlueprintTabs:
		sb.WriteString("Tabs")
	case BlueprintSplit:
		if strings.EqualFold(b.Dir, "vertical") {
			sb.WriteString("Vertical")
		} else {
			sb.WriteString("Horizontal")
		}
	case BlueprintGrid:
		sb.WriteString("Grid")
	}
	sb.WriteByte('[')
	for i, c := range b.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		c.writeShape(sb)
	}
	sb.WriteByte(']')
}

// TreeShape is a shortcut for ExportBlueprint(tree, paneID).String().
func TreeShape(tree *Tree, paneID func(Pane) string) string {
	if tree.IsEmpty() {
		return "<empty>"
	}
	return ExportBlueprint(tree, paneID).String()
}

// ParseContainerFlags reads "no_split", "no_tabs" and "lock_layout".
func ParseContainerFlags(names []string) (ContainerFlags, error) {
	var f ContainerFlags
	for _, n := range names {
		switch n {
		case "no_split":
			f |= FlagNoSplit
		case "no_tabs":
			f |= FlagNoTabs
		case "lock_layout":
			f |= FlagLockLayout
		default:
			return 0, fmt.Errorf("container flag %q: %w", n, ErrInvalidBlueprint)
		}
	}
	return f, nil
}

// FormatContainerFlags is the inverse of ParseContainerFlags.
func FormatContainerFlags(f ContainerFlags) []string {
	var out []string
	if f.Has(FlagNoSplit) {
		out = append(out, "no_split")
	}
	if f.Has(FlagNoTabs) {
		out = append(out, "no_tabs")
	}
	if f.Has(FlagLockLayout) {
		out = append(out, "lock_layout")
	}
	return out
}
