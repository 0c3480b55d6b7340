package hittest

import (
	"testing"

	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
)

func squareOutline(id string, x, y, size float64) path.Path {
	return path.Path{
		ID:   id,
		Kind: path.KindOutline,
		Contours: [][]path.Segment{{
			{Point: geom.Vec{X: x, Y: y}},
			{Point: geom.Vec{X: x + size, Y: y}},
			{Point: geom.Vec{X: x + size, Y: y + size}},
			{Point: geom.Vec{X: x, Y: y + size}},
		}},
	}
}

func stroke(id string, pts ...geom.Vec) path.Path {
	return path.Path{ID: id, Kind: path.KindFreehand, Subtype: path.SubtypeLine, Points: pts}
}

func TestHitOutlineFill(t *testing.T) {
	paths := []path.Path{squareOutline("sq", 0, 0, 100)}
	opts := Options{Zoom: 1, StrokeWidth: 2}

	if id, ok := HitPath(paths, geom.Vec{X: 50, Y: 50}, opts); !ok || id != "sq" {
		t.Errorf("interior hit = %q, %v", id, ok)
	}
	if _, ok := HitPath(paths, geom.Vec{X: 150, Y: 50}, opts); ok {
		t.Error("exterior point hit the fill")
	}
}

// A compound outline with an inner contour has a hole: points inside the
// inner ring must miss.
func TestHitCompoundOutlineHole(t *testing.T) {
	p := squareOutline("ring", 0, 0, 100)
	inner := squareOutline("", 25, 25, 50)
	p.Contours = append(p.Contours, inner.Contours[0])

	opts := Options{Zoom: 1, StrokeWidth: 2}
	if _, ok := HitPath([]path.Path{p}, geom.Vec{X: 50, Y: 50}, opts); ok {
		t.Error("point inside the counter hit the fill")
	}
	if id, ok := HitPath([]path.Path{p}, geom.Vec{X: 10, Y: 50}, opts); !ok || id != "ring" {
		t.Errorf("point in the ring body = %q, %v", id, ok)
	}
}

// Fill membership is geometric, so the answer cannot depend on zoom.
func TestOutlineHitZoomIndependent(t *testing.T) {
	paths := []path.Path{squareOutline("sq", 0, 0, 100)}
	pt := geom.Vec{X: 99.9, Y: 50}
	for _, zoom := range []float64{0.1, 0.5, 1, 2, 5, 10} {
		if _, ok := HitPath(paths, pt, Options{Zoom: zoom, StrokeWidth: 2}); !ok {
			t.Errorf("zoom %v: interior point missed", zoom)
		}
	}
}

// Stroke tolerance shrinks in logical units as zoom grows, keeping the
// screen-space grab region constant.
func TestStrokeToleranceScalesWithZoom(t *testing.T) {
	paths := []path.Path{stroke("ln", geom.Vec{X: 0, Y: 0}, geom.Vec{X: 100, Y: 0})}

	// 3 logical units off the line, strokeWidth 2: tolerance is 6/zoom.
	pt := geom.Vec{X: 50, Y: 3}
	if _, ok := HitPath(paths, pt, Options{Zoom: 1, StrokeWidth: 2}); !ok {
		t.Error("zoom 1: point within tolerance missed")
	}
	if _, ok := HitPath(paths, pt, Options{Zoom: 5, StrokeWidth: 2}); ok {
		t.Error("zoom 5: point outside the shrunken tolerance hit")
	}

	// At low zoom the logical tolerance grows.
	far := geom.Vec{X: 50, Y: 11}
	if _, ok := HitPath(paths, far, Options{Zoom: 0.5, StrokeWidth: 2}); !ok {
		t.Error("zoom 0.5: point within the grown tolerance missed")
	}
}

func TestWiderStrokeEasierToGrab(t *testing.T) {
	paths := []path.Path{stroke("ln", geom.Vec{X: 0, Y: 0}, geom.Vec{X: 100, Y: 0})}
	pt := geom.Vec{X: 50, Y: 9}

	if _, ok := HitPath(paths, pt, Options{Zoom: 1, StrokeWidth: 2}); ok {
		t.Error("thin stroke grabbed outside its tolerance")
	}
	if _, ok := HitPath(paths, pt, Options{Zoom: 1, StrokeWidth: 12}); !ok {
		t.Error("wide stroke missed inside its tolerance")
	}
}

// Topmost means last inserted: the later path wins where paths overlap.
func TestTopmostWins(t *testing.T) {
	paths := []path.Path{
		squareOutline("below", 0, 0, 100),
		squareOutline("above", 50, 50, 100),
	}
	opts := Options{Zoom: 1, StrokeWidth: 2}

	if id, _ := HitPath(paths, geom.Vec{X: 75, Y: 75}, opts); id != "above" {
		t.Errorf("overlap hit = %q, want above", id)
	}
	if id, _ := HitPath(paths, geom.Vec{X: 25, Y: 25}, opts); id != "below" {
		t.Errorf("uncovered region hit = %q, want below", id)
	}
}

func TestDotHit(t *testing.T) {
	dot := path.Path{ID: "dot", Kind: path.KindFreehand, Subtype: path.SubtypeDot, Points: []geom.Vec{{X: 10, Y: 10}}}
	opts := Options{Zoom: 1, StrokeWidth: 2}

	if _, ok := HitPath([]path.Path{dot}, geom.Vec{X: 12, Y: 12}, opts); !ok {
		t.Error("near point missed the dot")
	}
	if _, ok := HitPath([]path.Path{dot}, geom.Vec{X: 30, Y: 30}, opts); ok {
		t.Error("far point hit the dot")
	}
}

func TestClosedStrokeClosingEdge(t *testing.T) {
	// Circle subtypes are closed even when the samples do not repeat the
	// first point: the wrap-around edge must count for stroke hits.
	p := path.Path{
		ID:      "c",
		Kind:    path.KindFreehand,
		Subtype: path.SubtypeCircle,
		Points:  []geom.Vec{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}},
	}
	// (-2, 50) is near only the wrap-around edge from (0,100) back to (0,0).
	if !NearStroke(p, geom.Vec{X: -2, Y: 50}, 3) {
		t.Error("point near the wrap-around edge missed")
	}
	if NearStroke(p, geom.Vec{X: 50, Y: 50}, 3) {
		t.Error("center point hit the stroke")
	}
}

func TestZeroZoomDefaultsToOne(t *testing.T) {
	paths := []path.Path{stroke("ln", geom.Vec{X: 0, Y: 0}, geom.Vec{X: 100, Y: 0})}
	if _, ok := HitPath(paths, geom.Vec{X: 50, Y: 3}, Options{StrokeWidth: 2}); !ok {
		t.Error("zero zoom did not fall back to 1")
	}
}
