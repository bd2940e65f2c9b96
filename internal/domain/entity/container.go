package entity

import "slices"

// ContainerKind names the layout behaviour of a tile.
type ContainerKind int

const (
	KindPane       ContainerKind = iota // Leaf, no children
	KindTabs                            // One visible child at a time
	KindHorizontal                      // Linear, left to right
	KindVertical                        // Linear, top to bottom
	KindGrid                            // Rows and columns
)

func (k ContainerKind) String() string {
	switch k {
	case KindPane:
		return "Pane"
	case KindTabs:
		return "Tabs"
	case KindHorizontal:
		return "Horizontal"
	case KindVertical:
		return "Vertical"
	case KindGrid:
		return "Grid"
	default:
		return "Unknown"
	}
}

// LinearDir is the axis of a Linear container.
type LinearDir int

const (
	DirHorizontal LinearDir = iota
	DirVertical
)

// Kind maps the direction onto its container kind.
func (d LinearDir) Kind() ContainerKind {
	if d == DirVertical {
		return KindVertical
	}
	return KindHorizontal
}

func (d LinearDir) String() string {
	if d == DirVertical {
		return "Vertical"
	}
	return "Horizontal"
}

// ContainerFlags restrict what edits a container accepts.
type ContainerFlags uint8

const (
	FlagNoSplit    ContainerFlags = 1 << iota // no directional splits onto this container
	FlagNoTabs                                // no center/tab merge
	FlagLockLayout                            // no structural change at all
)

// Has reports whether every bit of x is set.
func (f ContainerFlags) Has(x ContainerFlags) bool {
	return f&x == x
}

// Append as an index means "after the last child".
const Append = -1

// Container is the shared shape of Tabs, Linear and Grid.
// Children returns the backing slice; callers must not modify it.
type Container interface {
	Kind() ContainerKind
	Children() []TileID
	Flags() ContainerFlags
	SetFlags(ContainerFlags)
	// AddChild appends a child.
	AddChild(id TileID)
	// InsertChild places id at index (Append or out of range appends) and
	// returns the index it landed at.
	InsertChild(index int, id TileID) int
	// RemoveChild drops id and returns its former index, or -1.
	RemoveChild(id TileID) int
	// ReplaceChild swaps old for new in place.
	ReplaceChild(old, new TileID) bool
	Clone() Container
}

type childList struct {
	children []TileID
	flags    ContainerFlags
}

func (c *childList) Children() []TileID { return c.children }
func (c *childList) Flags() ContainerFlags { return c.flags }
func (c *childList) SetFlags(f ContainerFlags) { c.flags = f }

func (c *childList) indexOf(id TileID) int {
	return slices.Index(c.children, id)
}

func (c *childList) insertAt(index int, id TileID) int {
	if index < 0 || index > len(c.children) {
		index = len(c.children)
	}
	c.children = slices.Insert(c.children, index, id)
	return index
}

func (c *childList) removeID(id TileID) int {
	idx := c.indexOf(id)
	if idx >= 0 {
		c.children = slices.Delete(c.children, idx, idx+1)
	}
	return idx
}

func (c *childList) replaceID(old, new TileID) bool {
	idx := c.indexOf(old)
	if idx < 0 {
		return false
	}
	c.children[idx] = new
	return true
}

func (c childList) clone() childList {
	return childList{children: slices.Clone(c.children), flags: c.flags}
}

// Tabs shows one child at a time.
type Tabs struct {
	childList
	Active TileID
}

// NewTabs creates a tab group; the first child starts active.
func NewTabs(children []TileID) *Tabs {
	t := &Tabs{childList: childList{children: slices.Clone(children)}}
	if len(children) > 0 {
		t.Active = children[0]
	}
	return t
}

func (t *Tabs) Kind() ContainerKind { return KindTabs }

func (t *Tabs) AddChild(id TileID) { t.insertAt(Append, id) }

func (t *Tabs) InsertChild(index int, id TileID) int { return t.insertAt(index, id) }

// RemoveChild drops id. Removing the active child selects the next
// sibling, or the previous one when it was last.
func (t *Tabs) RemoveChild(id TileID) int {
	idx := t.removeID(id)
	if idx >= 0 && t.Active == id {
		t.Active = NoTile
		if n := len(t.children); n > 0 {
			t.Active = t.children[min(idx, n-1)]
		}
	}
	return idx
}

func (t *Tabs) ReplaceChild(old, new TileID) bool {
	if !t.replaceID(old, new) {
		return false
	}
	if t.Active == old {
		t.Active = new
	}
	return true
}

// SetActive selects a child. Returns false if id is not a child.
func (t *Tabs) SetActive(id TileID) bool {
	if t.indexOf(id) < 0 {
		return false
	}
	t.Active = id
	return true
}

// ActiveIndex returns the position of the active child, or -1.
func (t *Tabs) ActiveIndex() int {
	if t.Active == NoTile {
		return -1
	}
	return t.indexOf(t.Active)
}

// EnsureActive keeps Active pointing at a visible child, re-picking the
// first visible child in order when it does not.
func (t *Tabs) EnsureActive(visible func(TileID) bool) {
	if t.Active != NoTile && t.indexOf(t.Active) >= 0 && visible(t.Active) {
		return
	}
	t.Active = NoTile
	for _, c := range t.children {
		if visible(c) {
			t.Active = c
			return
		}
	}
}

func (t *Tabs) Clone() Container {
	return &Tabs{childList: t.childList.clone(), Active: t.Active}
}

// Linear lays children out along one axis, sized by relative shares.
type Linear struct {
	childList
	Dir    LinearDir
	Shares map[TileID]float64
}

// NewLinear creates a split where every child has share 1.0.
func NewLinear(dir LinearDir, children []TileID) *Linear {
	l := &Linear{Dir: dir, Shares: make(map[TileID]float64, len(children))}
	for _, c := range children {
		l.AddChild(c)
	}
	return l
}

// NewLinearBinary creates a two-child split where the first child gets
// fraction of the space.
func NewLinearBinary(dir LinearDir, children [2]TileID, fraction float64) *Linear {
	l := NewLinear(dir, children[:])
	fraction = clamp01(fraction)
	l.Shares[children[0]] = fraction
	l.Shares[children[1]] = 1 - fraction
	return l
}

func (l *Linear) Kind() ContainerKind { return l.Dir.Kind() }

// Share returns the weight of a child; unknown children weigh 1.0.
func (l *Linear) Share(id TileID) float64 {
	if s, ok := l.Shares[id]; ok {
		return s
	}
	return 1.0
}

// SetShare overrides the weight of a child.
func (l *Linear) SetShare(id TileID, share float64) {
	if l.Shares == nil {
		l.Shares = make(map[TileID]float64)
	}
	l.Shares[id] = share
}

// OrderedShares returns shares in child order.
func (l *Linear) OrderedShares() []float64 {
	out := make([]float64, len(l.children))
	for i, c := range l.children {
		out[i] = l.Share(c)
	}
	return out
}

func (l *Linear) AddChild(id TileID) { l.InsertChild(Append, id) }

func (l *Linear) InsertChild(index int, id TileID) int {
	return l.InsertChildWithShare(index, id, 1.0)
}

// InsertChildWithShare inserts id with an explicit weight.
func (l *Linear) InsertChildWithShare(index int, id TileID, share float64) int {
	l.SetShare(id, share)
	return l.insertAt(index, id)
}

func (l *Linear) RemoveChild(id TileID) int {
	idx := l.removeID(id)
	if idx >= 0 {
		delete(l.Shares, id)
	}
	return idx
}

func (l *Linear) ReplaceChild(old, new TileID) bool {
	if !l.replaceID(old, new) {
		return false
	}
	share := l.Share(old)
	delete(l.Shares, old)
	l.SetShare(new, share)
	return true
}

// Normalize rescales shares to sum to the number of children.
// Ratios are unchanged.
func (l *Linear) Normalize() {
	if len(l.children) == 0 {
		return
	}
	var sum float64
	for _, c := range l.children {
		sum += l.Share(c)
	}
	if sum <= 0 {
		for _, c := range l.children {
			l.SetShare(c, 1.0)
		}
		return
	}
	scale := float64(len(l.children)) / sum
	for _, c := range l.children {
		l.SetShare(c, l.Share(c)*scale)
	}
}

// normalizeScale returns the factor Normalize would multiply shares by.
func (l *Linear) normalizeScale() float64 {
	var sum float64
	for _, c := range l.children {
		sum += l.Share(c)
	}
	if len(l.children) == 0 || sum <= 0 {
		return 1
	}
	return float64(len(l.children)) / sum
}

// Equalize gives every visible child the same share, keeping the total
// of the visible group.
func (l *Linear) Equalize(visible func(TileID) bool) {
	var sum float64
	var n int
	for _, c := range l.children {
		if visible(c) {
			sum += l.Share(c)
			n++
		}
	}
	if n == 0 {
		return
	}
	each := sum / float64(n)
	if each <= 0 {
		each = 1.0
	}
	for _, c := range l.children {
		if visible(c) {
			l.SetShare(c, each)
		}
	}
}

func (l *Linear) Clone() Container {
	shares := make(map[TileID]float64, len(l.Shares))
	for k, v := range l.Shares {
		shares[k] = v
	}
	return &Linear{childList: l.childList.clone(), Dir: l.Dir, Shares: shares}
}

// GridLayout selects how a grid picks its column count.
// Columns == 0 means the count is computed from the aspect ratio.
type GridLayout struct {
	Columns int
}

// GridAuto lets the layout pass choose the column count.
var GridAuto = GridLayout{}

// GridColumns fixes the column count.
func GridColumns(n int) GridLayout {
	if n < 1 {
		n = 1
	}
	return GridLayout{Columns: n}
}

// IsAuto reports whether the column count is computed.
func (g GridLayout) IsAuto() bool { return g.Columns <= 0 }

// Grid arranges children in row-major cells.
type Grid struct {
	childList
	Layout    GridLayout
	ColShares []float64
	RowShares []float64
}

// NewGrid creates an auto-layout grid.
func NewGrid(children []TileID) *Grid {
	return &Grid{childList: childList{children: slices.Clone(children)}}
}

func (g *Grid) Kind() ContainerKind { return KindGrid }

func (g *Grid) AddChild(id TileID) { g.insertAt(Append, id) }

// InsertChild inserts and shifts the following cells.
func (g *Grid) InsertChild(index int, id TileID) int { return g.insertAt(index, id) }

// PlaceChild puts id in the cell at index without shifting the other
// cells. The former occupant moves to the end.
func (g *Grid) PlaceChild(index int, id TileID) int {
	if index < 0 || index >= len(g.children) {
		return g.insertAt(Append, id)
	}
	prev := g.children[index]
	g.children[index] = id
	g.children = append(g.children, prev)
	return index
}

func (g *Grid) RemoveChild(id TileID) int { return g.removeID(id) }

func (g *Grid) ReplaceChild(old, new TileID) bool { return g.replaceID(old, new) }

func (g *Grid) Clone() Container {
	return &Grid{
		childList: g.childList.clone(),
		Layout:    g.Layout,
		ColShares: slices.Clone(g.ColShares),
		RowShares: slices.Clone(g.RowShares),
	}
}

// NewContainerOfKind builds an empty container of the given kind.
// KindPane yields nil.
func NewContainerOfKind(kind ContainerKind, children []TileID) Container {
	switch kind {
	case KindTabs:
		return NewTabs(children)
	case KindHorizontal:
		return NewLinear(DirHorizontal, children)
	case KindVertical:
		return NewLinear(DirVertical, children)
	case KindGrid:
		return NewGrid(children)
	default:
		return nil
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
