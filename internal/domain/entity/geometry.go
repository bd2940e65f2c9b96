// Package entity defines the domain entities of the docking engine.
package entity

import "math"

// Pos is a point in screen or surface-local space, in points.
type Pos struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Add offsets p by v.
func (p Pos) Add(v Vec) Pos {
	return Pos{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from o to p.
func (p Pos) Sub(o Pos) Vec {
	return Vec{X: p.X - o.X, Y: p.Y - o.Y}
}

// Minus offsets p by -v.
func (p Pos) Minus(v Vec) Pos {
	return Pos{X: p.X - v.X, Y: p.Y - v.Y}
}

// DistanceSq returns the squared distance between p and o.
func (p Pos) DistanceSq(o Pos) float64 {
	d := p.Sub(o)
	return d.X*d.X + d.Y*d.Y
}

// Vec is a 2D displacement or size.
type Vec struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// IsZero reports whether both components are zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Max returns the component-wise maximum.
func (v Vec) Max(o Vec) Vec {
	return Vec{X: math.Max(v.X, o.X), Y: math.Max(v.Y, o.Y)}
}

// Min returns the component-wise minimum.
func (v Vec) Min(o Vec) Vec {
	return Vec{X: math.Min(v.X, o.X), Y: math.Min(v.Y, o.Y)}
}

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	Min Pos `json:"min" toml:"min"`
	Max Pos `json:"max" toml:"max"`
}

// RectFromMinSize builds a rect from its top-left corner and size.
func RectFromMinSize(min Pos, size Vec) Rect {
	return Rect{Min: min, Max: min.Add(size)}
}

// RectFromCenterSize builds a rect centered on c.
func RectFromCenterSize(c Pos, size Vec) Rect {
	half := Vec{X: size.X / 2, Y: size.Y / 2}
	return Rect{Min: c.Minus(half), Max: c.Add(half)}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Size returns the rect extent as a vector.
func (r Rect) Size() Vec { return Vec{X: r.Width(), Y: r.Height()} }

// Area returns width*height, zero for inverted rects.
func (r Rect) Area() float64 {
	if !r.IsPositive() {
		return 0
	}
	return r.Width() * r.Height()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Pos {
	return Pos{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// IsPositive reports whether the rect has strictly positive width and height.
func (r Rect) IsPositive() bool {
	return r.Width() > 0 && r.Height() > 0
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Pos) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Expand grows the rect by amount on every side.
func (r Rect) Expand(amount float64) Rect {
	return Rect{
		Min: Pos{X: r.Min.X - amount, Y: r.Min.Y - amount},
		Max: Pos{X: r.Max.X + amount, Y: r.Max.Y + amount},
	}
}

// Shrink is Expand with a negated amount.
func (r Rect) Shrink(amount float64) Rect {
	return r.Expand(-amount)
}

// Intersect returns the overlap of r and o. The result may be non-positive.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		Min: Pos{X: math.Max(r.Min.X, o.Min.X), Y: math.Max(r.Min.Y, o.Min.Y)},
		Max: Pos{X: math.Min(r.Max.X, o.Max.X), Y: math.Min(r.Max.Y, o.Max.Y)},
	}
}

// Intersects reports whether r and o overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.Intersect(o).IsPositive()
}

// Translate moves the rect by v.
func (r Rect) Translate(v Vec) Rect {
	return Rect{Min: r.Min.Add(v), Max: r.Max.Add(v)}
}

// SplitLeftRight splits r at the fraction f of its width.
func (r Rect) SplitLeftRight(f float64) (left, right Rect) {
	x := r.Min.X + r.Width()*f
	left = Rect{Min: r.Min, Max: Pos{X: x, Y: r.Max.Y}}
	right = Rect{Min: Pos{X: x, Y: r.Min.Y}, Max: r.Max}
	return left, right
}

// SplitTopBottom splits r at the fraction f of its height.
func (r Rect) SplitTopBottom(f float64) (top, bottom Rect) {
	y := r.Min.Y + r.Height()*f
	top = Rect{Min: r.Min, Max: Pos{X: r.Max.X, Y: y}}
	bottom = Rect{Min: Pos{X: r.Min.X, Y: y}, Max: r.Max}
	return top, bottom
}

// DistanceToEdge returns the distance from p to the closest edge of r.
// Points outside r yield a negative value.
func (r Rect) DistanceToEdge(p Pos) float64 {
	return math.Min(
		math.Min(p.X-r.Min.X, r.Max.X-p.X),
		math.Min(p.Y-r.Min.Y, r.Max.Y-p.Y),
	)
}

// DistanceSqTo returns the squared distance from p to r, zero inside.
func (r Rect) DistanceSqTo(p Pos) float64 {
	dx := math.Max(math.Max(r.Min.X-p.X, 0), p.X-r.Max.X)
	dy := math.Max(math.Max(r.Min.Y-p.Y, 0), p.Y-r.Max.Y)
	return dx*dx + dy*dy
}
