package entity_test

import (
	"testing"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveTileToContainer_ReorderWithinTabs(t *testing.T) {
	tree := entity.NewTabsTree("root", []entity.Pane{"A", "B", "C"})
	a := paneTile(t, tree, "A")

	err := tree.MoveTileToContainer(paneTile(t, tree, "C"), tree.Root, 0, false)

	require.NoError(t, err)
	assert.Equal(t, "Tabs[C, A, B]", shape(tree))
	assert.Equal(t, a, tabsOf(t, tree, tree.Root).Active)
	requireSound(t, tree)
}

func TestMoveTileToContainer_ReorderWithinLinearKeepsShare(t *testing.T) {
	bp := hsplit(pane("A"), pane("B"), pane("C"))
	bp.Shares = []float64{1, 2, 3}
	tree := mustBlueprint(t, bp)

	err := tree.MoveTileToContainer(paneTile(t, tree, "A"), tree.Root, entity.Append, false)

	require.NoError(t, err)
	assert.Equal(t, "Horizontal[B, C, A]", shape(tree))
	assert.Equal(t, []float64{2, 3, 1}, linearOf(t, tree, tree.Root).OrderedShares())
}

func TestMoveTileToContainer_AcrossParents(t *testing.T) {
	// Arrange
	tree := mustBlueprint(t, hsplit(tabs(pane("A"), pane("B")), tabs(pane("C"))))
	a := paneTile(t, tree, "A")
	b := paneTile(t, tree, "B")
	c := paneTile(t, tree, "C")
	src := parentOf(t, tree, a)
	dst := parentOf(t, tree, c)
	require.NoError(t, tree.SetActiveTab(src, b))

	// Act
	err := tree.MoveTileToContainer(b, dst, entity.Append, false)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Horizontal[Tabs[A], Tabs[C, B]]", shape(tree))
	assert.Equal(t, a, tabsOf(t, tree, src).Active)
	assert.Equal(t, b, tabsOf(t, tree, dst).Active)
	requireSound(t, tree)
}

func TestMoveTileToContainer_Grid(t *testing.T) {
	tests := []struct {
		name   string
		reflow bool
		want   string
	}{
		{name: "swap cells", reflow: false, want: "Grid[C, B, A]"},
		{name: "reflow", reflow: true, want: "Grid[B, A, C]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustBlueprint(t, entity.Blueprint{
				Kind:     entity.BlueprintGrid,
				Children: []entity.Blueprint{pane("A"), pane("B"), pane("C")},
			})

			err := tree.MoveTileToContainer(paneTile(t, tree, "A"), tree.Root, 2, tt.reflow)

			require.NoError(t, err)
			assert.Equal(t, tt.want, shape(tree))
		})
	}
}

func TestMoveTileToContainer_Refusals(t *testing.T) {
	lockedTabs := tabs(pane("C"))
	lockedTabs.Flags = []string{"lock_layout"}

	tests := []struct {
		name    string
		tile    func(*testing.T, *entity.Tree) entity.TileID
		parent  func(*testing.T, *entity.Tree) entity.TileID
		wantErr error
	}{
		{
			name:    "missing tile",
			tile:    func(*testing.T, *entity.Tree) entity.TileID { return entity.TileID(1 << 60) },
			parent:  func(t *testing.T, tr *entity.Tree) entity.TileID { return tr.Root },
			wantErr: entity.ErrTileNotFound,
		},
		{
			name:    "pane as parent",
			tile:    func(t *testing.T, tr *entity.Tree) entity.TileID { return paneTile(t, tr, "C") },
			parent:  func(t *testing.T, tr *entity.Tree) entity.TileID { return paneTile(t, tr, "A") },
			wantErr: entity.ErrNotContainer,
		},
		{
			name:    "into own descendant",
			tile:    func(t *testing.T, tr *entity.Tree) entity.TileID { return parentOf(t, tr, paneTile(t, tr, "A")) },
			parent:  func(t *testing.T, tr *entity.Tree) entity.TileID { return parentOf(t, tr, paneTile(t, tr, "A")) },
			wantErr: entity.ErrCycle,
		},
		{
			name:    "root into its child",
			tile:    func(t *testing.T, tr *entity.Tree) entity.TileID { return tr.Root },
			parent:  func(t *testing.T, tr *entity.Tree) entity.TileID { return parentOf(t, tr, paneTile(t, tr, "A")) },
			wantErr: entity.ErrCycle,
		},
		{
			name:    "locked destination",
			tile:    func(t *testing.T, tr *entity.Tree) entity.TileID { return paneTile(t, tr, "A") },
			parent:  func(t *testing.T, tr *entity.Tree) entity.TileID { return parentOf(t, tr, paneTile(t, tr, "C")) },
			wantErr: entity.ErrLayoutLocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			tree := mustBlueprint(t, hsplit(tabs(pane("A"), pane("B")), lockedTabs))
			before := shape(tree)

			// Act
			err := tree.MoveTileToContainer(tt.tile(t, tree), tt.parent(t, tree), 0, false)

			// Assert
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, shape(tree))
			requireSound(t, tree)
		})
	}
}

func TestMoveTileToContainer_RootWithoutParent(t *testing.T) {
	tree := mustBlueprint(t, tabs(pane("A")))
	other := tree.Tiles.InsertTabTile(nil)

	err := tree.MoveTileToContainer(tree.Root, other, 0, false)

	assert.ErrorIs(t, err, entity.ErrNoParent)
}

func TestSplitTile_RightOfRootPane(t *testing.T) {
	// Arrange
	tiles := entity.NewTiles()
	a := tiles.InsertPane("A")
	tree := entity.NewTree("root", a, tiles)

	// Act
	d, err := tree.SplitTile(a, entity.SplitRight, "D", 0.3)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Horizontal[A, D]", shape(tree))
	lin := linearOf(t, tree, tree.Root)
	assert.InDelta(t, 0.7, lin.Share(a), 1e-9)
	assert.InDelta(t, 0.3, lin.Share(d), 1e-9)
	requireSound(t, tree)
}

func TestSplitTile_Directions(t *testing.T) {
	tests := []struct {
		dir  entity.SplitDirection
		want string
	}{
		{dir: entity.SplitLeft, want: "Tabs[Horizontal[X, A]]"},
		{dir: entity.SplitRight, want: "Tabs[Horizontal[A, X]]"},
		{dir: entity.SplitUp, want: "Tabs[Vertical[X, A]]"},
		{dir: entity.SplitDown, want: "Tabs[Vertical[A, X]]"},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			tree := entity.NewTabsTree("root", []entity.Pane{"A"})

			_, err := tree.SplitTile(paneTile(t, tree, "A"), tt.dir, "X", 0.5)

			require.NoError(t, err)
			assert.Equal(t, tt.want, shape(tree))
			requireSound(t, tree)
		})
	}
}

func TestSplitTile_InPlaceDividesShare(t *testing.T) {
	tree := mustBlueprint(t, hsplit(pane("A"), pane("B")))
	b := paneTile(t, tree, "B")

	c, err := tree.SplitTile(b, entity.SplitRight, "C", 0.25)

	require.NoError(t, err)
	assert.Equal(t, "Horizontal[A, B, C]", shape(tree))
	lin := linearOf(t, tree, tree.Root)
	assert.InDelta(t, 0.75, lin.Share(b), 1e-9)
	assert.InDelta(t, 0.25, lin.Share(c), 1e-9)
}

func TestSplitTile_LockedParent(t *testing.T) {
	bp := hsplit(pane("A"), pane("B"))
	bp.Flags = []string{"lock_layout"}
	tree := mustBlueprint(t, bp)
	before := tree.Tiles.Len()

	_, err := tree.SplitTile(paneTile(t, tree, "A"), entity.SplitDown, "C", 0.5)

	assert.ErrorIs(t, err, entity.ErrLayoutLocked)
	assert.Equal(t, before, tree.Tiles.Len())
}

func TestParseSplitDirection(t *testing.T) {
	for in, want := range map[string]entity.SplitDirection{
		"left": entity.SplitLeft, "right": entity.SplitRight,
		"top": entity.SplitUp, "bottom": entity.SplitDown,
	} {
		got, err := entity.ParseSplitDirection(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := entity.ParseSplitDirection("diagonal")
	assert.Error(t, err)
}

func TestEqualizeAndNormalizeShares(t *testing.T) {
	bp := hsplit(pane("A"), pane("B"), pane("C"))
	bp.Shares = []float64{1, 2, 6}
	tree := mustBlueprint(t, bp)

	require.NoError(t, tree.NormalizeShares(tree.Root))
	assert.InDeltaSlice(t, []float64{1.0 / 3, 2.0 / 3, 2}, linearOf(t, tree, tree.Root).OrderedShares(), 1e-9)

	require.NoError(t, tree.EqualizeShares(tree.Root))
	for _, s := range linearOf(t, tree, tree.Root).OrderedShares() {
		assert.InDelta(t, 1.0, s, 1e-9)
	}

	assert.ErrorIs(t, tree.EqualizeShares(paneTile(t, tree, "A")), entity.ErrNotContainer)
	assert.ErrorIs(t, tree.SetShare(tree.Root, entity.TileID(1<<60), 1), entity.ErrTileNotFound)
}
