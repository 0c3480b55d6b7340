package geom

import "math"

// Rect represents an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromCorners builds the rect spanning two arbitrary corner points.
func RectFromCorners(a, b Vec) Rect {
	minX := math.Min(a.X, b.X)
	minY := math.Min(a.Y, b.Y)
	return Rect{
		X:      minX,
		Y:      minY,
		Width:  math.Max(a.X, b.X) - minX,
		Height: math.Max(a.Y, b.Y) - minY,
	}
}

// RectFromPoints returns the bounding box of the points, or an empty rect for
// an empty slice.
func RectFromPoints(points []Vec) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether the two rects overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width && other.X <= r.X+r.Width &&
		r.Y <= other.Y+other.Height && other.Y <= r.Y+r.Height
}

// Union returns the smallest rect containing both rects. A rect with no
// extent in either axis is treated as absent; a degenerate-but-positioned
// rect (a horizontal or vertical span) still contributes its extent.
func (r Rect) Union(other Rect) Rect {
	if r.Width <= 0 && r.Height <= 0 {
		return other
	}
	if other.Width <= 0 && other.Height <= 0 {
		return r
	}

	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.X+r.Width, other.X+other.Width)
	maxY := math.Max(r.Y+r.Height, other.Y+other.Height)

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Center returns the center point of the rect.
func (r Rect) Center() Vec {
	return Vec{r.X + r.Width/2, r.Y + r.Height/2}
}
