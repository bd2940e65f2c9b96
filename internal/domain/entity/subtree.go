package entity

// ExtractSubtree removes id and its descendants from the tree and returns
// them as a fragment. Sibling shares in a Linear parent are renormalized.
// Returns false if id does not exist.
func (t *Tree) ExtractSubtree(id TileID) (*SubTree, bool) {
	return t.extract(id, true)
}

// ExtractSubtreeNoReserve is ExtractSubtree without touching sibling
// shares, for fragments that are reinserted in the same frame.
func (t *Tree) ExtractSubtreeNoReserve(id TileID) (*SubTree, bool) {
	return t.extract(id, false)
}

func (t *Tree) extract(id TileID, renormalize bool) (*SubTree, bool) {
	if !t.Tiles.Has(id) {
		return nil, false
	}

	origin := subtreeOrigin{index: -1, scale: 1}
	if parent, ok := t.ParentOf(id); ok {
		pc, _ := t.Tiles.Container(parent)
		origin.parent = parent
		if lin, ok := pc.(*Linear); ok {
			origin.linear = true
			origin.share = lin.Share(id)
		}
		origin.index = pc.RemoveChild(id)
		if lin, ok := pc.(*Linear); ok && renormalize {
			origin.scale = lin.normalizeScale()
			lin.Normalize()
		}
		t.ensureActiveAt(parent)
	}
	if t.Root == id {
		t.Root = NoTile
	}

	sub := NewTiles()
	var move func(cur TileID)
	move = func(cur TileID) {
		visible := t.Tiles.IsVisible(cur)
		tile, ok := t.Tiles.Remove(cur)
		if !ok {
			return
		}
		sub.InsertWithID(cur, tile)
		if !visible {
			sub.SetVisible(cur, false)
		}
		for _, c := range tile.Children() {
			move(c)
		}
	}
	move(id)

	return &SubTree{Root: id, Tiles: sub, origin: origin}, true
}

// SanitizeInsertion drops an insertion point that cannot be applied for
// this fragment: a parent missing from the tree, or a parent inside the
// fragment itself.
func (t *Tree) SanitizeInsertion(sub *SubTree, ins *InsertionPoint) *InsertionPoint {
	if ins == nil || sub == nil {
		return ins
	}
	if ins.Parent == sub.Root || sub.Tiles.Has(ins.Parent) {
		return nil
	}
	if !t.Tiles.Has(ins.Parent) {
		return nil
	}
	if ins.Insertion.Kind == KindPane {
		return nil
	}
	return ins
}

// InsertionAllowed reports whether the container flags along the way
// accept an insertion at ins.
func (t *Tree) InsertionAllowed(ins *InsertionPoint) bool {
	if ins == nil {
		return true
	}
	tile, ok := t.Tiles.Get(ins.Parent)
	if !ok {
		return false
	}
	kind := ins.Insertion.Kind
	if tile.IsContainer() {
		flags := tile.Container.Flags()
		if flags.Has(FlagLockLayout) {
			return false
		}
		if tile.Kind() == kind {
			if kind == KindTabs && flags.Has(FlagNoTabs) {
				return false
			}
			if kind != KindTabs && flags.Has(FlagNoSplit) {
				return false
			}
			return true
		}
	}
	// The parent gets wrapped, so its own parent is edited too.
	if gp, ok := t.ParentOf(ins.Parent); ok {
		if c, ok := t.Tiles.Container(gp); ok && c.Flags().Has(FlagLockLayout) {
			return false
		}
	}
	return true
}

// CanExtract reports whether id may be removed from its parent.
func (t *Tree) CanExtract(id TileID) bool {
	if !t.Tiles.Has(id) {
		return false
	}
	parent, ok := t.ParentOf(id)
	if !ok {
		return true
	}
	c, _ := t.Tiles.Container(parent)
	return !c.Flags().Has(FlagLockLayout)
}

// InsertSubtreeAt splices a fragment into the tree. With a usable
// insertion point the fragment root becomes a child of ins.Parent; if the
// parent's kind differs from the requested one, the parent is first
// wrapped in a new container of that kind. Without one, the fragment
// becomes the root or is merged with the existing root.
func (t *Tree) InsertSubtreeAt(sub *SubTree, ins *InsertionPoint) {
	if sub == nil || !sub.Tiles.Has(sub.Root) {
		return
	}
	ins = t.SanitizeInsertion(sub, ins)
	t.Tiles.merge(sub.Tiles)
	if ins != nil {
		t.insertChildAt(sub.Root, *ins, sub.origin)
		return
	}
	t.mergeAtRoot(sub.Root)
}

func (t *Tree) insertChildAt(child TileID, ins InsertionPoint, origin subtreeOrigin) {
	parent, ok := t.Tiles.Get(ins.Parent)
	if !ok {
		t.mergeAtRoot(child)
		return
	}

	if parent.IsContainer() && parent.Kind() == ins.Insertion.Kind {
		switch c := parent.Container.(type) {
		case *Linear:
			share := 1.0
			if origin.linear && origin.parent == ins.Parent {
				share = origin.share * origin.scale
			}
			c.InsertChildWithShare(ins.Insertion.Index, child, share)
		case *Tabs:
			c.InsertChild(ins.Insertion.Index, child)
			c.SetActive(child)
			c.EnsureActive(t.Tiles.IsVisible)
		default:
			c.InsertChild(ins.Insertion.Index, child)
		}
		return
	}

	wrapper := NewContainerOfKind(ins.Insertion.Kind, []TileID{ins.Parent})
	if wrapper == nil {
		t.mergeAtRoot(child)
		return
	}
	wrapperID := t.Tiles.InsertContainer(wrapper)
	t.replaceInParent(ins.Parent, wrapperID)
	t.insertChildAt(child, InsertionPoint{Parent: wrapperID, Insertion: ins.Insertion}, subtreeOrigin{})
}

// replaceInParent makes replacement take old's place in its parent, or
// at the root.
func (t *Tree) replaceInParent(old, replacement TileID) {
	if t.Root == old {
		t.Root = replacement
		return
	}
	if parent, ok := t.ParentOf(old); ok && parent != replacement {
		c, _ := t.Tiles.Container(parent)
		c.ReplaceChild(old, replacement)
	}
}

func (t *Tree) mergeAtRoot(child TileID) {
	if t.Root == NoTile || !t.Tiles.Has(t.Root) {
		t.Root = child
		return
	}

	root, _ := t.Tiles.Get(t.Root)
	incoming, _ := t.Tiles.Get(child)

	switch rc := root.Container.(type) {
	case *Tabs:
		if ic, ok := incoming.Container.(*Tabs); ok {
			active := ic.Active
			for _, c := range ic.Children() {
				rc.AddChild(c)
			}
			if active == NoTile && len(ic.Children()) > 0 {
				active = ic.Children()[0]
			}
			t.Tiles.Remove(child)
			if active != NoTile {
				rc.SetActive(active)
			}
			rc.EnsureActive(t.Tiles.IsVisible)
			return
		}
		rc.AddChild(child)
		rc.SetActive(child)
		rc.EnsureActive(t.Tiles.IsVisible)
		return
	case *Linear:
		if ic, ok := incoming.Container.(*Linear); ok && ic.Dir == rc.Dir {
			for _, c := range ic.Children() {
				rc.InsertChildWithShare(Append, c, ic.Share(c))
			}
			t.Tiles.Remove(child)
			return
		}
	}

	wrapper := NewTabs([]TileID{t.Root, child})
	wrapper.SetActive(child)
	wrapper.EnsureActive(t.Tiles.IsVisible)
	t.Root = t.Tiles.InsertContainer(wrapper)
}
