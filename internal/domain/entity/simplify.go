package entity

// SimplificationOptions toggles the rules applied by Tree.Simplify.
type SimplificationOptions struct {
	PruneEmptyTabs             bool
	PruneEmptyContainers       bool
	PruneSingleChildTabs       bool
	PruneSingleChildContainers bool
	AllPanesMustHaveTabs       bool
	JoinNestedLinearContainers bool
}

// DefaultSimplificationOptions enables every rule except forcing a Tabs
// parent on every pane.
func DefaultSimplificationOptions() SimplificationOptions {
	return SimplificationOptions{
		PruneEmptyTabs:             true,
		PruneEmptyContainers:       true,
		PruneSingleChildTabs:       true,
		PruneSingleChildContainers: true,
		JoinNestedLinearContainers: true,
	}
}

type simplifyAction int

const (
	simplifyKeep simplifyAction = iota
	simplifyRemove
	simplifyReplace
)

type simplifyResult struct {
	action      simplifyAction
	replacement TileID
}

// Simplify runs one post-order pass over the reachable tiles.
func (t *Tree) Simplify(opts SimplificationOptions) {
	if t.IsEmpty() {
		return
	}
	res := t.simplifyTile(t.Root, opts, KindPane)
	switch res.action {
	case simplifyRemove:
		t.removeRecursive(t.Root)
		t.Root = NoTile
	case simplifyReplace:
		t.Tiles.Remove(t.Root)
		t.Root = res.replacement
	}

	if opts.AllPanesMustHaveTabs && !t.IsEmpty() {
		if tile, ok := t.Tiles.Get(t.Root); ok && tile.IsPane() {
			t.Root = t.Tiles.InsertTabTile([]TileID{t.Root})
			t.ensureActiveAt(t.Root)
		}
	}
}

func (t *Tree) simplifyTile(id TileID, opts SimplificationOptions, parentKind ContainerKind) simplifyResult {
	tile, ok := t.Tiles.Get(id)
	if !ok {
		return simplifyResult{action: simplifyRemove}
	}
	if tile.IsPane() {
		return simplifyResult{action: simplifyKeep}
	}

	c := tile.Container
	locked := c.Flags().Has(FlagLockLayout)

	for _, child := range append([]TileID(nil), c.Children()...) {
		res := t.simplifyTile(child, opts, c.Kind())
		switch res.action {
		case simplifyRemove:
			c.RemoveChild(child)
			t.removeRecursive(child)
		case simplifyReplace:
			c.ReplaceChild(child, res.replacement)
			t.Tiles.Remove(child)
		}
	}

	if lin, ok := c.(*Linear); ok && opts.JoinNestedLinearContainers && !locked {
		t.joinNestedLinear(lin)
	}

	if opts.AllPanesMustHaveTabs && c.Kind() != KindTabs && !locked {
		for _, child := range append([]TileID(nil), c.Children()...) {
			if ct, ok := t.Tiles.Get(child); ok && ct.IsPane() {
				wrapper := t.Tiles.InsertTabTile([]TileID{child})
				t.ensureActiveAt(wrapper)
				c.ReplaceChild(child, wrapper)
			}
		}
	}

	if tabs, ok := c.(*Tabs); ok {
		tabs.EnsureActive(t.Tiles.IsVisible)
	}

	if locked {
		return simplifyResult{action: simplifyKeep}
	}

	children := c.Children()
	isTabs := c.Kind() == KindTabs
	switch len(children) {
	case 0:
		if (isTabs && opts.PruneEmptyTabs) || (!isTabs && opts.PruneEmptyContainers) {
			return simplifyResult{action: simplifyRemove}
		}
	case 1:
		only := children[0]
		if isTabs && opts.PruneSingleChildTabs {
			if opts.AllPanesMustHaveTabs && t.isPane(only) && parentKind != KindTabs {
				return simplifyResult{action: simplifyKeep}
			}
			return simplifyResult{action: simplifyReplace, replacement: only}
		}
		if !isTabs && opts.PruneSingleChildContainers {
			return simplifyResult{action: simplifyReplace, replacement: only}
		}
	}
	return simplifyResult{action: simplifyKeep}
}

// joinNestedLinear splices same-direction Linear children into lin,
// splitting each child's share among its own children.
func (t *Tree) joinNestedLinear(lin *Linear) {
	for _, child := range append([]TileID(nil), lin.Children()...) {
		inner, ok := t.Tiles.Container(child)
		if !ok {
			continue
		}
		il, ok := inner.(*Linear)
		if !ok || il.Dir != lin.Dir || il.Flags().Has(FlagLockLayout) {
			continue
		}
		outerShare := lin.Share(child)
		var total float64
		for _, gc := range il.Children() {
			total += il.Share(gc)
		}
		idx := lin.RemoveChild(child)
		for i, gc := range il.Children() {
			share := outerShare / float64(len(il.Children()))
			if total > 0 {
				share = outerShare * il.Share(gc) / total
			}
			lin.InsertChildWithShare(idx+i, gc, share)
		}
		t.Tiles.Remove(child)
	}
}

func (t *Tree) isPane(id TileID) bool {
	tile, ok := t.Tiles.Get(id)
	return ok && tile.IsPane()
}

// removeRecursive deletes id and every descendant from the arena.
func (t *Tree) removeRecursive(id TileID) {
	tile, ok := t.Tiles.Remove(id)
	if !ok {
		return
	}
	for _, c := range tile.Children() {
		t.removeRecursive(c)
	}
}
