// Package overlay computes docking target overlays and decides which
// insertion point a drag would commit to. Everything here is a pure
// function of a laid-out tree and a pointer position.
package overlay

import (
	"math"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// Target is one docking button of an overlay.
type Target int

const (
	TargetCenter Target = iota // merge as a tab
	TargetLeft
	TargetRight
	TargetTop
	TargetBottom
)

func (t Target) String() string {
	switch t {
	case TargetCenter:
		return "center"
	case TargetLeft:
		return "left"
	case TargetRight:
		return "right"
	case TargetTop:
		return "top"
	case TargetBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Metrics holds the tuned pixel constants of both overlay systems.
// Each size is frac*minDim clamped to [min, max].
type Metrics struct {
	OuterBandFrac float64 `mapstructure:"outer_band_frac" toml:"outer_band_frac" json:"outer_band_frac"`
	OuterBandMin  float64 `mapstructure:"outer_band_min" toml:"outer_band_min" json:"outer_band_min"`
	OuterBandMax  float64 `mapstructure:"outer_band_max" toml:"outer_band_max" json:"outer_band_max"`

	OuterSizeFrac float64 `mapstructure:"outer_size_frac" toml:"outer_size_frac" json:"outer_size_frac"`
	OuterSizeMin  float64 `mapstructure:"outer_size_min" toml:"outer_size_min" json:"outer_size_min"`
	OuterSizeMax  float64 `mapstructure:"outer_size_max" toml:"outer_size_max" json:"outer_size_max"`

	// Outer margins are relative to the outer target size.
	OuterMarginFrac float64 `mapstructure:"outer_margin_frac" toml:"outer_margin_frac" json:"outer_margin_frac"`
	OuterMarginMin  float64 `mapstructure:"outer_margin_min" toml:"outer_margin_min" json:"outer_margin_min"`
	OuterMarginMax  float64 `mapstructure:"outer_margin_max" toml:"outer_margin_max" json:"outer_margin_max"`

	InnerSizeFrac float64 `mapstructure:"inner_size_frac" toml:"inner_size_frac" json:"inner_size_frac"`
	InnerSizeMin  float64 `mapstructure:"inner_size_min" toml:"inner_size_min" json:"inner_size_min"`
	InnerSizeMax  float64 `mapstructure:"inner_size_max" toml:"inner_size_max" json:"inner_size_max"`

	// Inner gaps are relative to the inner target size.
	InnerGapFrac float64 `mapstructure:"inner_gap_frac" toml:"inner_gap_frac" json:"inner_gap_frac"`
	InnerGapMin  float64 `mapstructure:"inner_gap_min" toml:"inner_gap_min" json:"inner_gap_min"`
	InnerGapMax  float64 `mapstructure:"inner_gap_max" toml:"inner_gap_max" json:"inner_gap_max"`

	// Radial hit thresholds in multiples of half the target size.
	CenterRadius float64 `mapstructure:"center_radius" toml:"center_radius" json:"center_radius"`
	SideRadius   float64 `mapstructure:"side_radius" toml:"side_radius" json:"side_radius"`
	// HitExpandFrac grows every box by round(half*frac) before testing.
	HitExpandFrac float64 `mapstructure:"hit_expand_frac" toml:"hit_expand_frac" json:"hit_expand_frac"`
}

// DefaultMetrics returns the empirically tuned defaults.
func DefaultMetrics() Metrics {
	return Metrics{
		OuterBandFrac: 0.22, OuterBandMin: 32, OuterBandMax: 80,
		OuterSizeFrac: 0.12, OuterSizeMin: 22, OuterSizeMax: 56,
		OuterMarginFrac: 0.35, OuterMarginMin: 6, OuterMarginMax: 18,
		InnerSizeFrac: 0.16, InnerSizeMin: 24, InnerSizeMax: 56,
		InnerGapFrac: 0.25, InnerGapMin: 6, InnerGapMax: 18,
		CenterRadius:  1.4,
		SideRadius:    2.6,
		HitExpandFrac: 0.30,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func minDim(r entity.Rect) float64 {
	return math.Min(r.Width(), r.Height())
}

// TargetRect is a target with its on-screen box.
type TargetRect struct {
	Target Target
	Rect   entity.Rect
}

// Targets lists the available boxes in hit-test priority order.
type Targets []TargetRect

// Rect returns the box of target t.
func (ts Targets) Rect(t Target) (entity.Rect, bool) {
	for _, tr := range ts {
		if tr.Target == t {
			return tr.Rect, true
		}
	}
	return entity.Rect{}, false
}

func (ts Targets) halfSize() float64 {
	if len(ts) == 0 {
		return 0
	}
	return ts[0].Rect.Width() * 0.5
}

// InOuterBand reports whether p lies inside dock and within the edge
// band where the outer overlay takes over.
func (m Metrics) InOuterBand(dock entity.Rect, p entity.Pos) bool {
	if !dock.Contains(p) {
		return false
	}
	md := minDim(dock)
	if md <= 0 {
		return false
	}
	band := clamp(md*m.OuterBandFrac, m.OuterBandMin, m.OuterBandMax)
	return dock.DistanceToEdge(p) <= band
}

// OuterTargets lays out the four edge buttons of a dock rect. Returns
// false when the rect is too small to fit them without overlap.
func (m Metrics) OuterTargets(dock entity.Rect) (Targets, bool) {
	md := minDim(dock)
	if md <= 0 {
		return nil, false
	}
	size := clamp(md*m.OuterSizeFrac, m.OuterSizeMin, m.OuterSizeMax)
	hs := size * 0.5
	margin := clamp(size*m.OuterMarginFrac, m.OuterMarginMin, m.OuterMarginMax)

	c := dock.Center()
	left := entity.Pos{X: dock.Min.X + margin + hs, Y: c.Y}
	right := entity.Pos{X: dock.Max.X - margin - hs, Y: c.Y}
	top := entity.Pos{X: c.X, Y: dock.Min.Y + margin + hs}
	bottom := entity.Pos{X: c.X, Y: dock.Max.Y - margin - hs}
	if left.X+hs >= right.X-hs || top.Y+hs >= bottom.Y-hs {
		return nil, false
	}

	sq := entity.Vec{X: size, Y: size}
	ts := Targets{
		{Target: TargetLeft, Rect: entity.RectFromCenterSize(left, sq).Intersect(dock)},
		{Target: TargetRight, Rect: entity.RectFromCenterSize(right, sq).Intersect(dock)},
		{Target: TargetTop, Rect: entity.RectFromCenterSize(top, sq).Intersect(dock)},
		{Target: TargetBottom, Rect: entity.RectFromCenterSize(bottom, sq).Intersect(dock)},
	}
	for _, tr := range ts {
		if !tr.Rect.IsPositive() {
			return nil, false
		}
	}
	return ts, true
}

// InnerTargets lays out the 5-zone buttons centered on a tile. Side
// pairs are omitted when disallowed or clipped away by the tile rect.
func (m Metrics) InnerTargets(tile entity.Rect, allowLR, allowTB bool) Targets {
	size := clamp(minDim(tile)*m.InnerSizeFrac, m.InnerSizeMin, m.InnerSizeMax)
	gap := clamp(size*m.InnerGapFrac, m.InnerGapMin, m.InnerGapMax)
	sq := entity.Vec{X: size, Y: size}
	c := tile.Center()
	step := size + gap

	ts := Targets{{Target: TargetCenter, Rect: entity.RectFromCenterSize(c, sq).Intersect(tile)}}
	add := func(t Target, at entity.Pos) {
		r := entity.RectFromCenterSize(at, sq).Intersect(tile)
		if r.IsPositive() {
			ts = append(ts, TargetRect{Target: t, Rect: r})
		}
	}
	if allowLR {
		add(TargetLeft, entity.Pos{X: c.X - step, Y: c.Y})
		add(TargetRight, entity.Pos{X: c.X + step, Y: c.Y})
	}
	if allowTB {
		add(TargetTop, entity.Pos{X: c.X, Y: c.Y - step})
		add(TargetBottom, entity.Pos{X: c.X, Y: c.Y + step})
	}
	return ts
}

// HitTestBoxes returns the first box containing p after growing every
// box by the hit expansion.
func (m Metrics) HitTestBoxes(ts Targets, p entity.Pos) (TargetRect, bool) {
	expand := 0.0
	if hs := ts.halfSize(); hs > 0 {
		expand = math.Round(hs * m.HitExpandFrac)
	}
	for _, tr := range ts {
		if tr.Rect.Expand(expand).Contains(p) {
			return tr, true
		}
	}
	return TargetRect{}, false
}

// HitTest is the radial variant: a disc around center picks the center
// target, a wider disc picks the side on the dominant axis, then the
// expanded and plain boxes are tried.
func (m Metrics) HitTest(ts Targets, p, center entity.Pos) (TargetRect, bool) {
	hs := ts.halfSize()
	if hs > 0 {
		d := p.Sub(center)
		len2 := d.X*d.X + d.Y*d.Y
		rc := hs * m.CenterRadius
		rs := hs * m.SideRadius

		if r, ok := ts.Rect(TargetCenter); ok && len2 < rc*rc {
			return TargetRect{Target: TargetCenter, Rect: r}, true
		}
		if len2 < rs*rs {
			var want Target
			switch {
			case math.Abs(d.X) >= math.Abs(d.Y) && d.X < 0:
				want = TargetLeft
			case math.Abs(d.X) >= math.Abs(d.Y):
				want = TargetRight
			case d.Y < 0:
				want = TargetTop
			default:
				want = TargetBottom
			}
			if r, ok := ts.Rect(want); ok {
				return TargetRect{Target: want, Rect: r}, true
			}
		}
		if tr, ok := m.HitTestBoxes(ts, p); ok {
			return tr, true
		}
	}
	for _, tr := range ts {
		if tr.Rect.Contains(p) {
			return tr, true
		}
	}
	return TargetRect{}, false
}

// InsertionFor maps a hovered target onto an insertion into parent.
func InsertionFor(parent entity.TileID, t Target) *entity.InsertionPoint {
	switch t {
	case TargetLeft:
		return entity.NewInsertionPoint(parent, entity.HorizontalAt(0))
	case TargetRight:
		return entity.NewInsertionPoint(parent, entity.HorizontalAt(entity.Append))
	case TargetTop:
		return entity.NewInsertionPoint(parent, entity.VerticalAt(0))
	case TargetBottom:
		return entity.NewInsertionPoint(parent, entity.VerticalAt(entity.Append))
	default:
		return entity.NewInsertionPoint(parent, entity.TabsAt(entity.Append))
	}
}

// PreviewRect is the half (or whole, for center) of r a drop on t would
// occupy, inset by one point.
func PreviewRect(r entity.Rect, t Target) entity.Rect {
	switch t {
	case TargetLeft:
		left, _ := r.SplitLeftRight(0.5)
		return left.Shrink(1)
	case TargetRight:
		_, right := r.SplitLeftRight(0.5)
		return right.Shrink(1)
	case TargetTop:
		top, _ := r.SplitTopBottom(0.5)
		return top.Shrink(1)
	case TargetBottom:
		_, bottom := r.SplitTopBottom(0.5)
		return bottom.Shrink(1)
	default:
		return r.Shrink(1)
	}
}
