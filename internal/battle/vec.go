package battle

import "math"

// Vec2 is a 2D world-space vector in pixels.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) SqrLen() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64 { return math.Sqrt(v.SqrLen()) }
func (v Vec2) Dist2(o Vec2) float64 { return v.Sub(o).SqrLen() }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalized returns the unit vector in the direction of v, or the zero vector
// when v has no length.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// ClampLen scales v down so its length does not exceed limit.
func (v Vec2) ClampLen(limit float64) Vec2 {
	l2 := v.SqrLen()
	if l2 <= limit*limit || l2 == 0 {
		return v
	}
	return v.Scale(limit / math.Sqrt(l2))
}

// Rect is an axis-aligned rectangle with inclusive Min and exclusive Max.
type Rect struct {
	Min, Max Vec2
}

// Contains reports whether p lies strictly inside r.
func (r Rect) Contains(p Vec2) bool {
	return p.X > r.Min.X && p.X < r.Max.X && p.Y > r.Min.Y && p.Y < r.Max.Y
}

// IntersectsCircle reports whether a circle at c with radius rad overlaps r.
func (r Rect) IntersectsCircle(c Vec2, rad float64) bool {
	nx := math.Max(r.Min.X, math.Min(c.X, r.Max.X))
	ny := math.Max(r.Min.Y, math.Min(c.Y, r.Max.Y))
	dx, dy := c.X-nx, c.Y-ny
	return dx*dx+dy*dy <= rad*rad
}

// Clamp returns p moved to the nearest point inside r. Max is treated as
// exclusive by backing off one ulp.
func (r Rect) Clamp(p Vec2) Vec2 {
	maxX := math.Nextafter(r.Max.X, r.Min.X)
	maxY := math.Nextafter(r.Max.Y, r.Min.Y)
	return Vec2{
		X: math.Max(r.Min.X, math.Min(p.X, maxX)),
		Y: math.Max(r.Min.Y, math.Min(p.Y, maxY)),
	}
}

// W and H return the rectangle's dimensions.
func (r Rect) W() float64 { return r.Max.X - r.Min.X }
func (r Rect) H() float64 { return r.Max.Y - r.Min.Y }
