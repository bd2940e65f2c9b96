package docking_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/ui/docking"
)

var rootInner = entity.Rect{Max: entity.Pos{X: 800, Y: 600}}

// fakeBehavior names panes by their string value and records edits.
type fakeBehavior struct {
	drop  map[string]bool
	edits []port.EditAction
}

func (b *fakeBehavior) TabTitle(p entity.Pane) string { return fmt.Sprint(p) }
func (b *fakeBehavior) Style(string) entity.LayoutStyle {
	return entity.DefaultLayoutStyle()
}
func (b *fakeBehavior) AllowInsertion(*entity.Tree, entity.InsertionPoint) bool { return true }
func (b *fakeBehavior) IsTabClosable(*entity.Tree, entity.TileID) bool         { return true }
func (b *fakeBehavior) RetainPane(p entity.Pane) bool                            { return !b.drop[fmt.Sprint(p)] }
func (b *fakeBehavior) OnEdit(_ *entity.Tree, action port.EditAction) {
	b.edits = append(b.edits, action)
}

func (b *fakeBehavior) count(action port.EditAction) int {
	n := 0
	for _, a := range b.edits {
		if a == action {
			n++
		}
	}
	return n
}

// stringRegistry maps string panes to themselves, refusing names in
// missing.
type stringRegistry struct {
	missing map[string]bool
}

func (r stringRegistry) PaneID(p entity.Pane) string { return fmt.Sprint(p) }
func (r stringRegistry) Pane(id string) (entity.Pane, bool) {
	if r.missing[id] {
		return nil, false
	}
	return id, true
}

func shape(tree *entity.Tree) string {
	return entity.TreeShape(tree, func(p entity.Pane) string { return fmt.Sprint(p) })
}

func pane(name string) entity.Blueprint { return entity.Blueprint{Pane: name} }

func tabs(children ...entity.Blueprint) entity.Blueprint {
	return entity.Blueprint{Kind: entity.BlueprintTabs, Children: children}
}

func hsplit(children ...entity.Blueprint) entity.Blueprint {
	return entity.Blueprint{Dir: "horizontal", Children: children}
}

func mustTree(t *testing.T, id string, b entity.Blueprint) *entity.Tree {
	t.Helper()
	tree, err := entity.NewTreeFromBlueprint(id, b, func(id string) (entity.Pane, bool) { return id, true })
	require.NoError(t, err)
	return tree
}

func paneTile(t *testing.T, tree *entity.Tree, name string) entity.TileID {
	t.Helper()
	id, ok := tree.FindPane(func(p entity.Pane) bool { return p == name })
	require.True(t, ok, "pane %q not found", name)
	return id
}

func newManager(root *entity.Tree, behavior *fakeBehavior, opts docking.Options) *docking.Manager {
	return docking.New(root, behavior, nil, opts, zerolog.Nop())
}

func pos(x, y float64) *entity.Pos { return &entity.Pos{X: x, Y: y} }

// held is a pointer pressed at a local position that moved by delta.
func held(x, y float64, delta entity.Vec) docking.PointerInput {
	return docking.PointerInput{Pos: pos(x, y), Delta: delta, Down: true}
}

func released(x, y float64, delta entity.Vec) docking.PointerInput {
	return docking.PointerInput{Pos: pos(x, y), Delta: delta, Released: true}
}

func rootOnly(vin docking.ViewportInput) docking.FrameInput {
	if vin.InnerRect == (entity.Rect{}) {
		vin.InnerRect = rootInner
	}
	return docking.FrameInput{Viewports: map[port.ViewportID]docking.ViewportInput{port.RootViewport: vin}}
}

func run(m *docking.Manager, in docking.FrameInput) docking.FrameOutput {
	return m.RunFrame(context.Background(), in)
}

// startDrag reports name as dragged in the root dock with the pointer
// held at the dock center.
func startDrag(t *testing.T, m *docking.Manager, name string) entity.TileID {
	t.Helper()
	tile := paneTile(t, m.Root(), name)
	out := run(m, rootOnly(docking.ViewportInput{
		Pointer: held(400, 300, entity.Vec{}),
		Drags:   []docking.DragReport{{Surface: docking.DockTreeOf(port.RootViewport), Tile: tile}},
	}))
	require.NotNil(t, out.Payload)
	require.Equal(t, tile, out.Payload.Tile)
	return tile
}

func commandKinds(cmds []port.ViewportCommand) []port.CommandKind {
	out := make([]port.CommandKind, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Kind)
	}
	return out
}
