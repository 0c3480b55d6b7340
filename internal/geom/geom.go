package geom

import "math"

// Vec is a position in logical canvas units.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dir is a direction vector — a relative offset with no fixed origin.
// Affine transforms apply only their linear part to a Dir: it rotates and
// scales but never translates. Bezier control handles are Dirs.
type Dir struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add offsets the position by a direction.
func (v Vec) Add(d Dir) Vec {
	return Vec{v.X + d.X, v.Y + d.Y}
}

// Sub returns the direction from other to v.
func (v Vec) Sub(other Vec) Dir {
	return Dir{v.X - other.X, v.Y - other.Y}
}

// DistanceTo returns the Euclidean distance between two positions.
func (v Vec) DistanceTo(other Vec) float64 {
	return v.Sub(other).Length()
}

// Lerp interpolates between v and other by t in [0, 1].
func (v Vec) Lerp(other Vec, t float64) Vec {
	return Vec{v.X + (other.X-v.X)*t, v.Y + (other.Y-v.Y)*t}
}

// Mid returns the midpoint of v and other.
func (v Vec) Mid(other Vec) Vec {
	return v.Lerp(other, 0.5)
}

func (d Dir) Add(other Dir) Dir {
	return Dir{d.X + other.X, d.Y + other.Y}
}

func (d Dir) Scale(s float64) Dir {
	return Dir{d.X * s, d.Y * s}
}

// ScaleXY scales the components independently.
func (d Dir) ScaleXY(sx, sy float64) Dir {
	return Dir{d.X * sx, d.Y * sy}
}

func (d Dir) Length() float64 {
	return math.Hypot(d.X, d.Y)
}

// Normalize returns a unit-length direction, or the zero direction for a
// zero-length input.
func (d Dir) Normalize() Dir {
	l := d.Length()
	if l == 0 {
		return Dir{}
	}
	return Dir{d.X / l, d.Y / l}
}

// Rotate rotates the direction by the given angle in radians.
func (d Dir) Rotate(radians float64) Dir {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return Dir{d.X*cos - d.Y*sin, d.X*sin + d.Y*cos}
}

func (d Dir) Dot(other Dir) float64 {
	return d.X*other.X + d.Y*other.Y
}

// Perp returns the direction rotated 90° counter-clockwise.
func (d Dir) Perp() Dir {
	return Dir{-d.Y, d.X}
}

// Angle returns the angle of the direction in radians.
func (d Dir) Angle() float64 {
	return math.Atan2(d.Y, d.X)
}

// DistanceToSegment returns the distance from p to the segment [a, b].
// A zero-length segment degenerates to the distance to its endpoint.
func DistanceToSegment(p, a, b Vec) float64 {
	return p.DistanceTo(ProjectOnSegment(p, a, b))
}

// ProjectOnSegment returns the point on segment [a, b] closest to p.
func ProjectOnSegment(p, a, b Vec) Vec {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Scale(t))
}

// SegmentParam returns the clamped parameter t in [0, 1] of the projection of
// p onto segment [a, b]. Zero for a zero-length segment.
func SegmentParam(p, a, b Vec) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return 0
	}
	t := p.Sub(a).Dot(ab) / lenSq
	return math.Max(0, math.Min(1, t))
}

// SegmentIntersection returns the intersection point of segments [a1, a2] and
// [b1, b2], if any. The second return is the parameter along [a1, a2] and the
// last reports whether the segments intersect. Parallel and degenerate
// segments never intersect.
func SegmentIntersection(a1, a2, b1, b2 Vec) (Vec, float64, bool) {
	da := a2.Sub(a1)
	db := b2.Sub(b1)
	denom := da.X*db.Y - da.Y*db.X
	if denom == 0 {
		return Vec{}, 0, false
	}
	d := b1.Sub(a1)
	t := (d.X*db.Y - d.Y*db.X) / denom
	u := (d.X*da.Y - d.Y*da.X) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec{}, 0, false
	}
	return a1.Add(da.Scale(t)), t, true
}

// QuadBezier evaluates the quadratic Bezier (p0, ctrl, p1) at t.
func QuadBezier(p0, ctrl, p1 Vec, t float64) Vec {
	mt := 1 - t
	return Vec{
		X: mt*mt*p0.X + 2*mt*t*ctrl.X + t*t*p1.X,
		Y: mt*mt*p0.Y + 2*mt*t*ctrl.Y + t*t*p1.Y,
	}
}

// CubicBezier evaluates the cubic Bezier (p0, c1, c2, p1) at t.
func CubicBezier(p0, c1, c2, p1 Vec, t float64) Vec {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Vec{
		X: a*p0.X + b*c1.X + c*c2.X + d*p1.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
	}
}

// SplitCubic splits the cubic Bezier (p0, c1, c2, p1) at t by de Casteljau
// subdivision. It returns the two halves as (p0, l1, l2, m) and (m, r1, r2, p1).
func SplitCubic(p0, c1, c2, p1 Vec, t float64) (l1, l2, m, r1, r2 Vec) {
	q0 := p0.Lerp(c1, t)
	q1 := c1.Lerp(c2, t)
	q2 := c2.Lerp(p1, t)
	r0 := q0.Lerp(q1, t)
	s0 := q1.Lerp(q2, t)
	m = r0.Lerp(s0, t)
	return q0, r0, m, s0, q2
}

// PolylineLength returns the total length of the polyline.
func PolylineLength(points []Vec) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i].DistanceTo(points[i-1])
	}
	return total
}
