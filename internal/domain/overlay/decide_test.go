package overlay_test

import (
	"testing"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dock = entity.Rect{Max: entity.Pos{X: 800, Y: 600}}

// twoTabs returns Tabs[a, b] with b active, laid out over dock.
func twoTabs(t *testing.T) (*entity.Tree, entity.TileID, entity.TileID) {
	t.Helper()
	tree := entity.NewTabsTree("tree", []entity.Pane{"a", "b"})
	ids := tree.PaneIDs()
	require.Len(t, ids, 2)
	require.NoError(t, tree.SetActiveTab(tree.Root, ids[1]))
	tree.Layout(dock, entity.DefaultLayoutStyle())
	return tree, ids[0], ids[1]
}

func tileRect(t *testing.T, tree *entity.Tree, id entity.TileID) entity.Rect {
	t.Helper()
	r, ok := tree.Tiles.Rect(id)
	require.True(t, ok, "tile %d has no rect", id)
	return r
}

func decide(tree *entity.Tree, p entity.Pos, kind overlay.DragKind, dragged entity.TileID) overlay.Decision {
	return overlay.DefaultMetrics().Decide(overlay.Request{
		Tree:      tree,
		Style:     entity.DefaultLayoutStyle(),
		DockRect:  dock,
		Pointer:   p,
		ShowOuter: true,
		Kind:      kind,
		Dragged:   dragged,
	})
}

// awayFromTargets is inside r on the horizontal center line but clear
// of every inner button.
func awayFromTargets(r entity.Rect) entity.Pos {
	return r.Center().Add(entity.Vec{X: min(r.Width()*0.35, 240)})
}

func TestDecide_InternalPaintsOnlyOnExplicitHit(t *testing.T) {
	tree, dragged, other := twoTabs(t)
	r := tileRect(t, tree, other)

	miss := decide(tree, r.Min.Add(entity.Vec{X: 2, Y: 2}), overlay.DragInternal, dragged)
	assert.Nil(t, miss.Paint)
	assert.Nil(t, miss.Final)
	assert.False(t, miss.DisableTilesPreview)

	hit := decide(tree, r.Center(), overlay.DragInternal, dragged)
	require.NotNil(t, hit.Paint)
	assert.False(t, hit.Paint.Outer)
	require.NotNil(t, hit.Final)
	assert.Equal(t, entity.InsertionPoint{Parent: other, Insertion: entity.TabsAt(entity.Append)}, *hit.Final)
	assert.True(t, hit.DisableTilesPreview)
}

func TestDecide_InternalRejectsTargetsInsideDragged(t *testing.T) {
	// Horizontal[a, Tabs[b]]: dragging the Tabs group over b must not
	// offer b, which lives inside it.
	tree := entity.EmptyTree("tree")
	tiles := entity.NewTiles()
	b := tiles.InsertPane("b")
	group := tiles.InsertTabTile([]entity.TileID{b})
	tree.InsertSubtreeAt(entity.NewSubTree(group, tiles), nil)
	a := entity.NewTiles()
	aRoot := a.InsertPane("a")
	tree.InsertSubtreeAt(entity.NewSubTree(aRoot, a), entity.NewInsertionPoint(group, entity.HorizontalAt(0)))
	tree.Layout(dock, entity.DefaultLayoutStyle())

	d := decide(tree, tileRect(t, tree, b).Center(), overlay.DragInternal, group)

	assert.Nil(t, d.Explicit)
	assert.Nil(t, d.Paint)
	assert.Nil(t, d.Final)
}

func TestDecide_WindowMoveNeedsExplicitTarget(t *testing.T) {
	tree, _, b := twoTabs(t)
	r := tileRect(t, tree, b)

	content := decide(tree, awayFromTargets(r), overlay.DragWindowMove, entity.NoTile)
	assert.NotNil(t, content.Paint)
	assert.Nil(t, content.Explicit)
	assert.Nil(t, content.Fallback)
	assert.Nil(t, content.Final)

	center := decide(tree, r.Center(), overlay.DragWindowMove, entity.NoTile)
	assert.NotNil(t, center.Final)
}

func TestDecide_WindowMoveOverTabBar(t *testing.T) {
	tree, _, _ := twoTabs(t)
	style := entity.DefaultLayoutStyle()
	root := tileRect(t, tree, tree.Root)

	d := decide(tree, entity.Pos{X: root.Min.X + 20, Y: root.Min.Y + style.TabBarHeight*0.5}, overlay.DragWindowMove, entity.NoTile)

	require.NotNil(t, d.Paint)
	assert.False(t, d.Paint.Outer)
	assert.Nil(t, d.Explicit)
	require.NotNil(t, d.Fallback)
	require.NotNil(t, d.Final)
	assert.Equal(t, tree.Root, d.Final.Parent)
	assert.Equal(t, entity.KindTabs, d.Final.Insertion.Kind)
}

func TestDecide_WindowMoveOverTitleBandOfBarePane(t *testing.T) {
	tiles := entity.NewTiles()
	root := tiles.InsertPane("solo")
	tree := entity.NewTree("single", root, tiles)
	style := entity.DefaultLayoutStyle()
	tree.Layout(dock, style)
	r := tileRect(t, tree, root)

	band := decide(tree, entity.Pos{X: r.Center().X, Y: r.Min.Y + style.TabBarHeight*0.5}, overlay.DragWindowMove, entity.NoTile)
	require.NotNil(t, band.Fallback)
	require.NotNil(t, band.Final)
	assert.Equal(t, entity.InsertionPoint{Parent: root, Insertion: entity.TabsAt(entity.Append)}, *band.Final)

	content := decide(tree, awayFromTargets(r), overlay.DragWindowMove, entity.NoTile)
	assert.Nil(t, content.Explicit)
	assert.Nil(t, content.Fallback)
	assert.Nil(t, content.Final)
}

func TestDecide_WindowMoveInOuterBandWithoutTarget(t *testing.T) {
	tree, _, b := twoTabs(t)
	style := entity.DefaultLayoutStyle()
	r := tileRect(t, tree, b)

	p := entity.Pos{X: dock.Min.X + 6, Y: min(dock.Min.Y+style.TabBarHeight+12, r.Max.Y-2)}
	d := decide(tree, p, overlay.DragWindowMove, entity.NoTile)

	require.NotNil(t, d.Paint)
	assert.True(t, d.Paint.Outer)
	assert.Nil(t, d.Explicit)
	assert.Nil(t, d.Fallback)
	assert.Nil(t, d.Final)
}

func TestDecide_ExternalFallsBackToDockZone(t *testing.T) {
	tree, _, b := twoTabs(t)
	r := tileRect(t, tree, b)

	d := decide(tree, r.Min.Add(entity.Vec{X: 2, Y: 2}), overlay.DragExternal, entity.NoTile)

	assert.NotNil(t, d.Paint)
	assert.Nil(t, d.Explicit)
	require.NotNil(t, d.Fallback)
	assert.Equal(t, d.FallbackInsertion(), d.Final)
}

func TestDecide_OuterBandRespectsInternalPolicy(t *testing.T) {
	tree, dragged, _ := twoTabs(t)
	p := entity.Pos{X: dock.Min.X + 2, Y: dock.Center().Y}

	internal := decide(tree, p, overlay.DragInternal, dragged)
	assert.Nil(t, internal.Paint)

	external := decide(tree, p, overlay.DragExternal, entity.NoTile)
	require.NotNil(t, external.Paint)
	assert.True(t, external.Paint.Outer)
}

func TestDecide_OuterTargetSplitsRoot(t *testing.T) {
	tree, _, _ := twoTabs(t)
	ts, ok := overlay.DefaultMetrics().OuterTargets(dock)
	require.True(t, ok)

	tests := []struct {
		target overlay.Target
		want   entity.ContainerInsertion
	}{
		{overlay.TargetLeft, entity.HorizontalAt(0)},
		{overlay.TargetRight, entity.HorizontalAt(entity.Append)},
		{overlay.TargetTop, entity.VerticalAt(0)},
		{overlay.TargetBottom, entity.VerticalAt(entity.Append)},
	}

	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			r, ok := ts.Rect(tt.target)
			require.True(t, ok)

			d := decide(tree, r.Center(), overlay.DragExternal, entity.NoTile)

			require.NotNil(t, d.Paint)
			require.NotNil(t, d.Paint.Hovered)
			assert.Equal(t, tt.target, d.Paint.Hovered.Target)
			require.NotNil(t, d.Final)
			assert.Equal(t, entity.InsertionPoint{Parent: tree.Root, Insertion: tt.want}, *d.Final)
		})
	}
}

func TestDecide_TabBarBeatsOuterBandForTabDrags(t *testing.T) {
	// Arrange: (400, 12) is over the root tab bar and also inside the
	// expanded outer top button.
	tree, _, _ := twoTabs(t)
	p := entity.Pos{X: 400, Y: 12}
	require.True(t, overlay.DefaultMetrics().InOuterBand(dock, p))

	// Act
	d := decide(tree, p, overlay.DragExternal, entity.NoTile)

	// Assert
	require.NotNil(t, d.Paint)
	assert.False(t, d.Paint.Outer)
	require.NotNil(t, d.Final)
	assert.Equal(t, tree.Root, d.Final.Parent)
	assert.Equal(t, entity.KindTabs, d.Final.Insertion.Kind)
}

func TestDropInsertion(t *testing.T) {
	tree, a, _ := twoTabs(t)
	require.NoError(t, tree.SetActiveTab(tree.Root, a))
	tree.Layout(dock, entity.DefaultLayoutStyle())
	c := tileRect(t, tree, a).Center()
	hs := 28.0

	tests := []struct {
		name string
		p    entity.Pos
		want *entity.InsertionPoint
	}{
		{
			name: "center disc",
			p:    c.Add(entity.Vec{X: hs, Y: hs * 0.5}),
			want: &entity.InsertionPoint{Parent: a, Insertion: entity.TabsAt(entity.Append)},
		},
		{
			name: "side band outside every box",
			p:    c.Add(entity.Vec{X: 1.6 * hs, Y: 1.5 * hs}),
			want: &entity.InsertionPoint{Parent: a, Insertion: entity.HorizontalAt(entity.Append)},
		},
		{
			name: "side band above center",
			p:    c.Add(entity.Vec{X: -hs * 0.5, Y: -2 * hs}),
			want: &entity.InsertionPoint{Parent: a, Insertion: entity.VerticalAt(0)},
		},
		{
			name: "outer band",
			p:    entity.Pos{X: 46, Y: 300},
			want: &entity.InsertionPoint{Parent: tree.Root, Insertion: entity.HorizontalAt(0)},
		},
		{
			name: "away from every target",
			p:    awayFromTargets(tileRect(t, tree, a)),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overlay.DefaultMetrics().DropInsertion(tree, dock, tt.p, true)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDropInsertion_OuterBandIgnoredWhenHidden(t *testing.T) {
	tree, _, _ := twoTabs(t)

	got := overlay.DefaultMetrics().DropInsertion(tree, dock, entity.Pos{X: 46, Y: 300}, false)

	assert.Nil(t, got)
}
