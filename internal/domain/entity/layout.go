package entity

import "math"

// IdealGridCellAspect is the width/height ratio the auto grid aims for.
const IdealGridCellAspect = 4.0 / 3.0

// LayoutStyle carries the chrome sizes the layout pass needs.
type LayoutStyle struct {
	TabBarHeight float64
	GapWidth     float64
	// MaxTabWidth caps the width of one tab header slot.
	MaxTabWidth float64
	// GridColumns overrides the auto column heuristic when set.
	GridColumns func(visible int, rect Rect, gap float64) int
}

// DefaultLayoutStyle returns the stock chrome sizes.
func DefaultLayoutStyle() LayoutStyle {
	return LayoutStyle{
		TabBarHeight: 24,
		GapWidth:     1,
		MaxTabWidth:  160,
	}
}

// Layout assigns a rect to every visible tile reachable through active
// tabs. Active tabs are re-validated first.
func (t *Tree) Layout(rect Rect, style LayoutStyle) {
	t.Tiles.ClearRects()
	t.EnsureActiveTabs()
	if t.IsEmpty() {
		return
	}
	t.layoutTile(t.Root, rect, style)
}

func (t *Tree) layoutTile(id TileID, r Rect, style LayoutStyle) {
	tile, ok := t.Tiles.Get(id)
	if !ok || !t.Tiles.IsVisible(id) {
		return
	}
	t.Tiles.SetRect(id, r)
	if tile.IsPane() {
		return
	}

	switch c := tile.Container.(type) {
	case *Tabs:
		if c.Active == NoTile {
			return
		}
		content := r
		content.Min.Y = math.Min(r.Min.Y+style.TabBarHeight, r.Max.Y)
		t.layoutTile(c.Active, content, style)
	case *Linear:
		t.layoutLinear(c, r, style)
	case *Grid:
		t.layoutGrid(c, r, style)
	}
}

func (t *Tree) visibleChildren(c Container) []TileID {
	var out []TileID
	for _, id := range c.Children() {
		if t.Tiles.IsVisible(id) {
			out = append(out, id)
		}
	}
	return out
}

func (t *Tree) layoutLinear(l *Linear, r Rect, style LayoutStyle) {
	children := t.visibleChildren(l)
	if len(children) == 0 {
		return
	}
	var total float64
	for _, c := range children {
		total += l.Share(c)
	}
	gaps := style.GapWidth * float64(len(children)-1)

	if l.Dir == DirHorizontal {
		avail := math.Max(r.Width()-gaps, 0)
		x := r.Min.X
		for _, c := range children {
			w := shareOf(avail, l.Share(c), total, len(children))
			t.layoutTile(c, Rect{Min: Pos{X: x, Y: r.Min.Y}, Max: Pos{X: x + w, Y: r.Max.Y}}, style)
			x += w + style.GapWidth
		}
		return
	}

	avail := math.Max(r.Height()-gaps, 0)
	y := r.Min.Y
	for _, c := range children {
		h := shareOf(avail, l.Share(c), total, len(children))
		t.layoutTile(c, Rect{Min: Pos{X: r.Min.X, Y: y}, Max: Pos{X: r.Max.X, Y: y + h}}, style)
		y += h + style.GapWidth
	}
}

func shareOf(avail, share, total float64, n int) float64 {
	if total <= 0 {
		return avail / float64(n)
	}
	return avail * share / total
}

func (t *Tree) layoutGrid(g *Grid, r Rect, style LayoutStyle) {
	children := t.visibleChildren(g)
	n := len(children)
	if n == 0 {
		return
	}

	ncols := g.Layout.Columns
	if g.Layout.IsAuto() {
		if style.GridColumns != nil {
			ncols = style.GridColumns(n, r, style.GapWidth)
		} else {
			ncols = AutoGridColumns(n, r.Size(), style.GapWidth)
		}
	}
	ncols = max(min(ncols, n), 1)
	nrows := (n + ncols - 1) / ncols

	g.ColShares = resizeShares(g.ColShares, ncols)
	g.RowShares = resizeShares(g.RowShares, nrows)

	xs := spans(r.Min.X, r.Width(), style.GapWidth, g.ColShares)
	ys := spans(r.Min.Y, r.Height(), style.GapWidth, g.RowShares)

	for i, c := range children {
		col, row := i%ncols, i/ncols
		t.layoutTile(c, Rect{
			Min: Pos{X: xs[col][0], Y: ys[row][0]},
			Max: Pos{X: xs[col][1], Y: ys[row][1]},
		}, style)
	}
}

func resizeShares(shares []float64, n int) []float64 {
	for len(shares) < n {
		shares = append(shares, 1.0)
	}
	return shares[:n]
}

func spans(start, length, gap float64, shares []float64) [][2]float64 {
	var total float64
	for _, s := range shares {
		total += s
	}
	avail := math.Max(length-gap*float64(len(shares)-1), 0)
	out := make([][2]float64, len(shares))
	pos := start
	for i, s := range shares {
		w := shareOf(avail, s, total, len(shares))
		out[i] = [2]float64{pos, pos + w}
		pos += w + gap
	}
	return out
}

// AutoGridColumns picks the column count whose cells come closest to
// IdealGridCellAspect while penalising empty cells.
func AutoGridColumns(n int, size Vec, gap float64) int {
	if n <= 1 {
		return 1
	}
	best, bestLoss := 1, math.Inf(1)
	for ncols := 1; ncols <= n; ncols++ {
		nrows := (n + ncols - 1) / ncols
		cellW := (size.X - gap*float64(ncols-1)) / float64(ncols)
		cellH := (size.Y - gap*float64(nrows-1)) / float64(nrows)
		if cellW <= 0 || cellH <= 0 {
			continue
		}
		empty := ncols*nrows - n
		loss := math.Abs(IdealGridCellAspect-cellW/cellH)*float64(n) + 2*float64(empty)
		if loss < bestLoss {
			best, bestLoss = ncols, loss
		}
	}
	return best
}

// TabBarRect returns the header band of a laid-out Tabs container.
func (t *Tree) TabBarRect(tabs TileID, style LayoutStyle) (Rect, bool) {
	c, ok := t.Tiles.Container(tabs)
	if !ok || c.Kind() != KindTabs {
		return Rect{}, false
	}
	r, ok := t.Tiles.Rect(tabs)
	if !ok {
		return Rect{}, false
	}
	r.Max.Y = math.Min(r.Min.Y+style.TabBarHeight, r.Max.Y)
	return r, true
}

// TabRects returns one header slot per visible tab, left to right.
func (t *Tree) TabRects(tabs TileID, style LayoutStyle) ([]TileID, []Rect) {
	bar, ok := t.TabBarRect(tabs, style)
	if !ok {
		return nil, nil
	}
	c, _ := t.Tiles.Container(tabs)
	children := t.visibleChildren(c)
	if len(children) == 0 {
		return nil, nil
	}
	w := bar.Width() / float64(len(children))
	if style.MaxTabWidth > 0 {
		w = math.Min(w, style.MaxTabWidth)
	}
	rects := make([]Rect, len(children))
	for i := range children {
		x := bar.Min.X + w*float64(i)
		rects[i] = Rect{Min: Pos{X: x, Y: bar.Min.Y}, Max: Pos{X: x + w, Y: bar.Max.Y}}
	}
	return children, rects
}

// TileAt returns the smallest laid-out active tile containing p.
func (t *Tree) TileAt(p Pos) (TileID, bool) {
	best, bestArea := NoTile, math.Inf(1)
	for _, id := range t.ActiveTiles() {
		r, ok := t.Tiles.Rect(id)
		if !ok || !r.Contains(p) {
			continue
		}
		if a := r.Area(); a <= bestArea {
			best, bestArea = id, a
		}
	}
	return best, best != NoTile
}
