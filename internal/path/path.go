// Package path holds the vector outline model that glyph editing tools
// operate on: freehand point paths, cubic-Bezier compound outlines, and the
// store that tools commit new path collections through.
package path

import (
	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
)

// Kind discriminates the two path representations.
type Kind string

const (
	KindFreehand Kind = "freehand"
	KindOutline  Kind = "outline"
)

// Subtype describes how a freehand path's point list is interpreted.
type Subtype string

const (
	SubtypePen         Subtype = "pen"         // smoothed polyline of raw samples
	SubtypeLine        Subtype = "line"        // two endpoints
	SubtypeCurve       Subtype = "curve"       // exactly 3 points: start, control, end (quadratic)
	SubtypeCircle      Subtype = "circle"      // explicit boundary samples
	SubtypeEllipse     Subtype = "ellipse"     // explicit boundary samples
	SubtypeDot         Subtype = "dot"         // single point
	SubtypeCalligraphy Subtype = "calligraphy" // pressure-style polyline of raw samples
)

// Segment is a cubic-Bezier anchor. HandleIn and HandleOut are offsets
// relative to Point: they rotate and scale under transforms but never
// translate.
type Segment struct {
	Point     geom.Vec `json:"point"`
	HandleIn  geom.Dir `json:"handleIn"`
	HandleOut geom.Dir `json:"handleOut"`
}

// In returns the absolute position of the incoming handle.
func (s Segment) In() geom.Vec { return s.Point.Add(s.HandleIn) }

// Out returns the absolute position of the outgoing handle.
func (s Segment) Out() geom.Vec { return s.Point.Add(s.HandleOut) }

// MinContourSegments is the smallest anchor count a closed contour can hold.
// A contour below this no longer encloses area and invalidates its path.
const MinContourSegments = 3

// MinFreehandPoints is the smallest point count a freehand path can hold.
const MinFreehandPoints = 2

// Path is one editable vector path. Exactly one of Points (freehand) or
// Contours (outline) is populated, according to Kind. Paths sharing a
// non-empty GroupID form a rigid group for selection and transforms.
type Path struct {
	ID       string      `json:"id"`
	Kind     Kind        `json:"kind"`
	Subtype  Subtype     `json:"subtype,omitempty"`
	Points   []geom.Vec  `json:"points,omitempty"`
	Contours [][]Segment `json:"contours,omitempty"`
	GroupID  string      `json:"groupId,omitempty"`
}

// Clone returns a deep copy sharing no backing arrays with p.
func (p Path) Clone() Path {
	out := p
	if p.Points != nil {
		out.Points = make([]geom.Vec, len(p.Points))
		copy(out.Points, p.Points)
	}
	if p.Contours != nil {
		out.Contours = make([][]Segment, len(p.Contours))
		for i, c := range p.Contours {
			out.Contours[i] = make([]Segment, len(c))
			copy(out.Contours[i], c)
		}
	}
	return out
}

// ClonePaths deep-copies a path collection.
func ClonePaths(paths []Path) []Path {
	out := make([]Path, len(paths))
	for i, p := range paths {
		out[i] = p.Clone()
	}
	return out
}

// Valid reports whether the path still satisfies its minimum topology: every
// outline contour keeps at least 3 anchors, a freehand path at least 2 points
// (1 for dots).
func (p Path) Valid() bool {
	switch p.Kind {
	case KindOutline:
		if len(p.Contours) == 0 {
			return false
		}
		for _, c := range p.Contours {
			if len(c) < MinContourSegments {
				return false
			}
		}
		return true
	case KindFreehand:
		if p.Subtype == SubtypeDot {
			return len(p.Points) >= 1
		}
		return len(p.Points) >= MinFreehandPoints
	default:
		return false
	}
}

// IsClosed reports whether the path is treated as a closed shape: outlines
// and shape subtypes always, other freehand paths only when their endpoints
// visually coincide.
func (p Path) IsClosed() bool {
	if p.Kind == KindOutline {
		return true
	}
	switch p.Subtype {
	case SubtypeCircle, SubtypeEllipse, SubtypeDot:
		return true
	}
	const closeEps = 2.0
	if len(p.Points) >= 3 {
		return p.Points[0].DistanceTo(p.Points[len(p.Points)-1]) <= closeEps
	}
	return false
}

// flattenSteps is the fixed sample count used when a curved span is
// approximated by line segments.
const flattenSteps = 16

// Flatten approximates the path as one polyline per contour. Freehand paths
// yield a single polyline; curved subtypes are sampled at a fixed step count.
func (p Path) Flatten() [][]geom.Vec {
	switch p.Kind {
	case KindOutline:
		out := make([][]geom.Vec, 0, len(p.Contours))
		for _, c := range p.Contours {
			out = append(out, FlattenContour(c))
		}
		return out
	case KindFreehand:
		return [][]geom.Vec{p.flattenFreehand()}
	}
	return nil
}

func (p Path) flattenFreehand() []geom.Vec {
	switch p.Subtype {
	case SubtypeCurve:
		if len(p.Points) != 3 {
			return append([]geom.Vec(nil), p.Points...)
		}
		out := make([]geom.Vec, 0, flattenSteps+1)
		for i := 0; i <= flattenSteps; i++ {
			t := float64(i) / flattenSteps
			out = append(out, geom.QuadBezier(p.Points[0], p.Points[1], p.Points[2], t))
		}
		return out
	case SubtypePen, SubtypeCalligraphy:
		return smoothSamples(p.Points)
	default:
		return append([]geom.Vec(nil), p.Points...)
	}
}

// smoothSamples approximates the renderer's curve smoothing of pen strokes:
// each consecutive point pair becomes a quadratic span through the segment
// midpoints with the shared point as control.
func smoothSamples(points []geom.Vec) []geom.Vec {
	if len(points) < 3 {
		return append([]geom.Vec(nil), points...)
	}
	const steps = 4
	out := []geom.Vec{points[0]}
	prev := points[0].Mid(points[1])
	out = append(out, prev)
	for i := 1; i < len(points)-1; i++ {
		next := points[i].Mid(points[i+1])
		for s := 1; s <= steps; s++ {
			t := float64(s) / steps
			out = append(out, geom.QuadBezier(prev, points[i], next, t))
		}
		prev = next
	}
	out = append(out, points[len(points)-1])
	return out
}

// FlattenContour samples the closed cubic-Bezier contour into a polygon.
// The wrap-around span from the last anchor back to the first is included;
// the polygon is not explicitly re-closed.
func FlattenContour(contour []Segment) []geom.Vec {
	if len(contour) == 0 {
		return nil
	}
	out := make([]geom.Vec, 0, len(contour)*flattenSteps)
	for i := range contour {
		a := contour[i]
		b := contour[(i+1)%len(contour)]
		for s := 0; s < flattenSteps; s++ {
			t := float64(s) / flattenSteps
			out = append(out, geom.CubicBezier(a.Point, a.Out(), b.In(), b.Point, t))
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the flattened path.
func (p Path) Bounds() geom.Rect {
	var all []geom.Vec
	for _, poly := range p.Flatten() {
		all = append(all, poly...)
	}
	return geom.RectFromPoints(all)
}

// BoundsOf returns the bounding box of several paths. It accumulates the
// flattened points directly so degenerate paths (a dot, a purely horizontal
// stroke) keep their position instead of vanishing from a rect union.
func BoundsOf(paths []Path) geom.Rect {
	var all []geom.Vec
	for _, p := range paths {
		for _, poly := range p.Flatten() {
			all = append(all, poly...)
		}
	}
	return geom.RectFromPoints(all)
}

// Translate moves every anchor and raw point by d. Handle vectors are
// relative and stay untouched.
func (p Path) Translate(d geom.Dir) Path {
	return p.Transform(geom.Translate(d.X, d.Y))
}

// Transform applies an affine matrix: positions transform fully, handle
// vectors by the linear part only.
func (p Path) Transform(m geom.Matrix2D) Path {
	out := p.Clone()
	for i, pt := range out.Points {
		out.Points[i] = m.Apply(pt)
	}
	for ci, c := range out.Contours {
		for si, s := range c {
			out.Contours[ci][si] = Segment{
				Point:     m.Apply(s.Point),
				HandleIn:  m.ApplyDir(s.HandleIn),
				HandleOut: m.ApplyDir(s.HandleOut),
			}
		}
	}
	return out
}

// GroupMembers returns the IDs of every path sharing the group of the path
// with the given ID. A path without a group maps to just itself.
func GroupMembers(paths []Path, id string) []string {
	var groupID string
	for _, p := range paths {
		if p.ID == id {
			groupID = p.GroupID
			break
		}
	}
	if groupID == "" {
		return []string{id}
	}
	var out []string
	for _, p := range paths {
		if p.GroupID == groupID {
			out = append(out, p.ID)
		}
	}
	return out
}
