package entity_test

import (
	"testing"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/stretchr/testify/require"
)

func paneName(p entity.Pane) string {
	s, _ := p.(string)
	return s
}

func shape(tree *entity.Tree) string {
	return entity.TreeShape(tree, paneName)
}

func anyPane(id string) (entity.Pane, bool) {
	return id, true
}

func mustBlueprint(t *testing.T, b entity.Blueprint) *entity.Tree {
	t.Helper()
	tree, err := entity.NewTreeFromBlueprint("test", b, anyPane)
	require.NoError(t, err)
	return tree
}

func paneTile(t *testing.T, tree *entity.Tree, name string) entity.TileID {
	t.Helper()
	id, ok := tree.FindPane(func(p entity.Pane) bool { return p == name })
	require.True(t, ok, "pane %q not found", name)
	return id
}

func parentOf(t *testing.T, tree *entity.Tree, id entity.TileID) entity.TileID {
	t.Helper()
	parent, ok := tree.ParentOf(id)
	require.True(t, ok, "tile %s has no parent", id)
	return parent
}

func requireSound(t *testing.T, tree *entity.Tree) {
	t.Helper()
	require.Empty(t, tree.IntegrityIssues())
}

func pane(name string) entity.Blueprint { return entity.Blueprint{Pane: name} }

func tabs(children ...entity.Blueprint) entity.Blueprint {
	return entity.Blueprint{Kind: entity.BlueprintTabs, Children: children}
}

func hsplit(children ...entity.Blueprint) entity.Blueprint {
	return entity.Blueprint{Dir: "horizontal", Children: children}
}

func vsplit(children ...entity.Blueprint) entity.Blueprint {
	return entity.Blueprint{Dir: "vertical", Children: children}
}

func linearOf(t *testing.T, tree *entity.Tree, id entity.TileID) *entity.Linear {
	t.Helper()
	c, ok := tree.Tiles.Container(id)
	require.True(t, ok)
	lin, ok := c.(*entity.Linear)
	require.True(t, ok, "tile %s is %s", id, c.Kind())
	return lin
}

func tabsOf(t *testing.T, tree *entity.Tree, id entity.TileID) *entity.Tabs {
	t.Helper()
	c, ok := tree.Tiles.Container(id)
	require.True(t, ok)
	tc, ok := c.(*entity.Tabs)
	require.True(t, ok, "tile %s is %s", id, c.Kind())
	return tc
}
