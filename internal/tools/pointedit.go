package tools

import (
	"math"

	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
	"github.com/glyphforge/glyphforge/backend-go/internal/hittest"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
)

// pointGrabPx is the screen-space radius for grabbing an editable point.
const pointGrabPx = 10.0

// Part discriminates which editable position a PointRef addresses.
type Part int

const (
	PartAnchor Part = iota
	PartHandleIn
	PartHandleOut
	PartPoint // raw freehand point
)

// PointRef addresses one editable point: an outline anchor or handle, or a
// raw freehand point.
type PointRef struct {
	PathID  string
	Contour int
	Segment int
	Part    Part
	Index   int // freehand point index
}

// LocatePoint finds the editable point under pt within tolerance, searching
// topmost paths first. Outline anchors win over their handles at equal
// distance.
func LocatePoint(paths []path.Path, pt geom.Vec, tolerance float64) (PointRef, bool) {
	best := PointRef{}
	bestDist := tolerance
	found := false

	consider := func(ref PointRef, pos geom.Vec) {
		d := pt.DistanceTo(pos)
		if d <= bestDist {
			best = ref
			bestDist = d
			found = true
		}
	}

	for i := len(paths) - 1; i >= 0; i-- {
		p := paths[i]
		switch p.Kind {
		case path.KindOutline:
			for ci, c := range p.Contours {
				for si, s := range c {
					consider(PointRef{PathID: p.ID, Contour: ci, Segment: si, Part: PartHandleIn}, s.In())
					consider(PointRef{PathID: p.ID, Contour: ci, Segment: si, Part: PartHandleOut}, s.Out())
					consider(PointRef{PathID: p.ID, Contour: ci, Segment: si, Part: PartAnchor}, s.Point)
				}
			}
		case path.KindFreehand:
			for pi, pos := range p.Points {
				consider(PointRef{PathID: p.ID, Part: PartPoint, Index: pi}, pos)
			}
		}
		if found {
			return best, true
		}
	}
	return best, found
}

// PointEditTool drags Bezier anchors and handles, inserts points at the
// nearest path location on double-click, and deletes points with minimum-
// topology guards.
type PointEditTool struct {
	dragging bool
	ref      PointRef
	working  []path.Path
	changed  bool

	// selected is the point a delete key acts on: the last dragged or
	// inserted point.
	selected    PointRef
	hasSelected bool
}

// Selected returns the currently selected point reference.
func (t *PointEditTool) Selected() (PointRef, bool) {
	return t.selected, t.hasSelected
}

// Start grabs the editable point under pt, if any.
func (t *PointEditTool) Start(env *Env, pt geom.Vec, mod Modifiers) {
	t.dragging = false
	t.changed = false
	zoom := env.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	ref, ok := LocatePoint(env.Paths, pt, pointGrabPx/zoom)
	if !ok {
		t.hasSelected = false
		return
	}
	t.dragging = true
	t.ref = ref
	t.selected = ref
	t.hasSelected = true
	t.working = path.ClonePaths(env.Paths)
}

// Move drags the grabbed point. Anchors and raw points translate; handles
// recompute their relative offset from the cursor.
func (t *PointEditTool) Move(env *Env, pt geom.Vec, mod Modifiers) {
	if !t.dragging {
		return
	}
	for i := range t.working {
		p := &t.working[i]
		if p.ID != t.ref.PathID {
			continue
		}
		switch t.ref.Part {
		case PartPoint:
			if t.ref.Index < len(p.Points) {
				p.Points[t.ref.Index] = pt
			}
		case PartAnchor:
			if seg := segmentAt(p, t.ref); seg != nil {
				seg.Point = pt
			}
		case PartHandleIn:
			if seg := segmentAt(p, t.ref); seg != nil {
				seg.HandleIn = pt.Sub(seg.Point)
			}
		case PartHandleOut:
			if seg := segmentAt(p, t.ref); seg != nil {
				seg.HandleOut = pt.Sub(seg.Point)
			}
		}
	}
	env.Paths = path.ClonePaths(t.working)
	t.changed = true
}

// segmentAt resolves a PointRef to its outline segment in place, or nil when
// the address is out of range for the path.
func segmentAt(p *path.Path, ref PointRef) *path.Segment {
	if ref.Contour < 0 || ref.Contour >= len(p.Contours) {
		return nil
	}
	c := p.Contours[ref.Contour]
	if ref.Segment < 0 || ref.Segment >= len(c) {
		return nil
	}
	return &c[ref.Segment]
}

// End commits the drag if the point actually moved.
func (t *PointEditTool) End(env *Env, pt geom.Vec, mod Modifiers) {
	if t.dragging && t.changed {
		env.Commit(t.working)
	}
	t.dragging = false
	t.working = nil
}

// DoubleClick deletes an existing point under pt, or inserts a new point at
// the nearest location on the path under pt.
func (t *PointEditTool) DoubleClick(env *Env, pt geom.Vec, mod Modifiers) {
	zoom := env.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	if ref, ok := LocatePoint(env.Paths, pt, pointGrabPx/zoom); ok {
		// Handles cannot be deleted, only anchors and raw points.
		if ref.Part == PartAnchor || ref.Part == PartPoint {
			t.deletePoint(env, ref)
		}
		return
	}

	id, ok := hittest.HitPath(env.Paths, pt, hittest.Options{Zoom: zoom, StrokeWidth: env.StrokeWidth})
	if !ok {
		return
	}
	t.insertPoint(env, id, pt)
}

// DeleteSelected removes the currently selected point, honoring the
// minimum-topology guards. Bound to Delete/Backspace.
func (t *PointEditTool) DeleteSelected(env *Env) {
	if !t.hasSelected {
		return
	}
	ref := t.selected
	if ref.Part != PartAnchor && ref.Part != PartPoint {
		return
	}
	t.deletePoint(env, ref)
}

// deletePoint removes the addressed point. A freehand path left with fewer
// than 2 points, or a contour dropping below 3 anchors, escalates to whole-
// path deletion rather than producing an invalid topology.
func (t *PointEditTool) deletePoint(env *Env, ref PointRef) {
	working := path.ClonePaths(env.Paths)
	out := working[:0]
	for _, p := range working {
		if p.ID != ref.PathID {
			out = append(out, p)
			continue
		}
		switch ref.Part {
		case PartPoint:
			if ref.Index >= len(p.Points) {
				out = append(out, p)
				continue
			}
			if len(p.Points) <= path.MinFreehandPoints {
				continue // drop whole path
			}
			p.Points = append(p.Points[:ref.Index], p.Points[ref.Index+1:]...)
			out = append(out, p)
		case PartAnchor:
			if ref.Contour >= len(p.Contours) || ref.Segment >= len(p.Contours[ref.Contour]) {
				out = append(out, p)
				continue
			}
			if len(p.Contours[ref.Contour]) <= path.MinContourSegments {
				continue // drop whole path
			}
			c := p.Contours[ref.Contour]
			p.Contours[ref.Contour] = append(c[:ref.Segment], c[ref.Segment+1:]...)
			out = append(out, p)
		default:
			out = append(out, p)
		}
	}
	t.hasSelected = false
	delete(env.Selection, ref.PathID)
	env.Paths = path.ClonePaths(out)
	env.Commit(out)
}

// insertPoint splices a new point at the location on the path nearest to pt.
// Outline spans are split by de Casteljau subdivision so the curve shape is
// preserved; freehand points are inserted at the nearest segment projection.
func (t *PointEditTool) insertPoint(env *Env, id string, pt geom.Vec) {
	working := path.ClonePaths(env.Paths)
	for i := range working {
		p := &working[i]
		if p.ID != id {
			continue
		}
		switch p.Kind {
		case path.KindOutline:
			ci, si, tt, ok := nearestContourLocation(*p, pt)
			if !ok {
				return
			}
			splitSpan(p, ci, si, tt)
			t.selected = PointRef{PathID: id, Contour: ci, Segment: si + 1, Part: PartAnchor}
			t.hasSelected = true
		case path.KindFreehand:
			idx, proj, ok := nearestPolylineLocation(p.Points, pt, p.IsClosed())
			if !ok {
				return
			}
			p.Points = append(p.Points, geom.Vec{})
			copy(p.Points[idx+2:], p.Points[idx+1:])
			p.Points[idx+1] = proj
			t.selected = PointRef{PathID: id, Part: PartPoint, Index: idx + 1}
			t.hasSelected = true
		}
		env.Paths = path.ClonePaths(working)
		env.Commit(working)
		return
	}
}

// nearestContourLocation finds the contour span and parameter closest to pt
// by sampling each cubic span.
func nearestContourLocation(p path.Path, pt geom.Vec) (contour, segment int, t float64, ok bool) {
	const samples = 32
	bestDist := math.Inf(1)
	for ci, c := range p.Contours {
		for si := range c {
			a := c[si]
			b := c[(si+1)%len(c)]
			for s := 0; s <= samples; s++ {
				tt := float64(s) / samples
				pos := geom.CubicBezier(a.Point, a.Out(), b.In(), b.Point, tt)
				if d := pt.DistanceTo(pos); d < bestDist {
					bestDist = d
					contour, segment, t = ci, si, tt
					ok = true
				}
			}
		}
	}
	return contour, segment, t, ok
}

// splitSpan subdivides the cubic span starting at segment si of contour ci
// at parameter t, splicing the new anchor in between.
func splitSpan(p *path.Path, ci, si int, t float64) {
	c := p.Contours[ci]
	a := c[si]
	bIdx := (si + 1) % len(c)
	b := c[bIdx]

	l1, l2, m, r1, r2 := geom.SplitCubic(a.Point, a.Out(), b.In(), b.Point, t)

	c[si].HandleOut = l1.Sub(a.Point)
	mid := path.Segment{
		Point:     m,
		HandleIn:  l2.Sub(m),
		HandleOut: r1.Sub(m),
	}
	c[bIdx].HandleIn = r2.Sub(b.Point)

	out := make([]path.Segment, 0, len(c)+1)
	out = append(out, c[:si+1]...)
	out = append(out, mid)
	out = append(out, c[si+1:]...)
	p.Contours[ci] = out
}

// nearestPolylineLocation returns the segment index and projected point on
// the polyline closest to pt.
func nearestPolylineLocation(points []geom.Vec, pt geom.Vec, closed bool) (int, geom.Vec, bool) {
	if len(points) < 2 {
		return 0, geom.Vec{}, false
	}
	bestDist := math.Inf(1)
	bestIdx := -1
	var bestProj geom.Vec
	n := len(points)
	last := n - 1
	if closed {
		last = n
	}
	for i := 0; i < last; i++ {
		a := points[i]
		b := points[(i+1)%n]
		proj := geom.ProjectOnSegment(pt, a, b)
		if d := pt.DistanceTo(proj); d < bestDist {
			bestDist = d
			bestIdx = i
			bestProj = proj
		}
	}
	if bestIdx < 0 {
		return 0, geom.Vec{}, false
	}
	return bestIdx, bestProj, true
}
