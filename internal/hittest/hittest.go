// Package hittest answers which path, if any, lies under a pointer position.
package hittest

import (
	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
)

// GrabSlopPx is the constant screen-space slack added to stroke hit testing
// so strokes stay grabbable at any zoom.
const GrabSlopPx = 5.0

// Options tunes a hit test query.
type Options struct {
	// Zoom divides the screen-space tolerance into logical units.
	Zoom float64
	// StrokeWidth is the rendered stroke width of freehand paths, in logical
	// units. Half of it extends the grab region on each side.
	StrokeWidth float64
}

// HitPath returns the ID of the topmost path under the logical point, testing
// in reverse insertion order. Outline paths hit by filled-region membership
// (even-odd rule, zoom independent); freehand paths by distance to their
// flattened stroke within a zoom-scaled tolerance.
func HitPath(paths []path.Path, pt geom.Vec, opts Options) (string, bool) {
	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	tolerance := (opts.StrokeWidth/2 + GrabSlopPx) / zoom

	for i := len(paths) - 1; i >= 0; i-- {
		p := paths[i]
		switch p.Kind {
		case path.KindOutline:
			if InFill(p, pt) {
				return p.ID, true
			}
		case path.KindFreehand:
			if NearStroke(p, pt, tolerance) {
				return p.ID, true
			}
		}
	}
	return "", false
}

// InFill reports whether the point lies inside the outline path's filled
// region using the even-odd rule over all flattened contours. Compound
// contours (a counter inside a bowl) therefore produce holes.
func InFill(p path.Path, pt geom.Vec) bool {
	if p.Kind != path.KindOutline {
		return false
	}
	inside := false
	for _, poly := range p.Flatten() {
		if pointInPolygon(pt, poly) {
			inside = !inside
		}
	}
	return inside
}

// NearStroke reports whether the point lies within tolerance of the path's
// flattened stroke.
func NearStroke(p path.Path, pt geom.Vec, tolerance float64) bool {
	for _, poly := range p.Flatten() {
		if len(poly) == 1 {
			if pt.DistanceTo(poly[0]) <= tolerance {
				return true
			}
			continue
		}
		n := len(poly)
		closed := p.IsClosed()
		for i := 0; i < n-1; i++ {
			if geom.DistanceToSegment(pt, poly[i], poly[i+1]) <= tolerance {
				return true
			}
		}
		if closed && n > 2 {
			if geom.DistanceToSegment(pt, poly[n-1], poly[0]) <= tolerance {
				return true
			}
		}
	}
	return false
}

// pointInPolygon is a standard even-odd ray crossing test.
func pointInPolygon(pt geom.Vec, poly []geom.Vec) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		pi, pj := poly[i], poly[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) {
			x := pi.X + (pt.Y-pi.Y)/(pj.Y-pi.Y)*(pj.X-pi.X)
			if pt.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
