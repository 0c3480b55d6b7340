package tools

import (
	"math"

	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
	"github.com/glyphforge/glyphforge/backend-go/internal/hittest"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
)

const (
	// penSampleSpacing skips pointer samples closer than this, in logical units.
	penSampleSpacing = 1.0
	// circleSamples / ellipseSamples are the explicit boundary point counts.
	circleSamples  = 32
	ellipseSamples = 48
	// eraserBrushPx is the eraser radius in screen pixels.
	eraserBrushPx = 12.0
)

// PenTool accumulates raw pointer samples into a freehand path. The same
// machine drives the calligraphy tool via its subtype.
type PenTool struct {
	Subtype path.Subtype // SubtypePen or SubtypeCalligraphy

	active  bool
	samples []geom.Vec
}

func (t *PenTool) Start(env *Env, pt geom.Vec, mod Modifiers) {
	t.active = true
	t.samples = []geom.Vec{pt}
}

func (t *PenTool) Move(env *Env, pt geom.Vec, mod Modifiers) {
	if !t.active {
		return
	}
	if pt.DistanceTo(t.samples[len(t.samples)-1]) >= penSampleSpacing {
		t.samples = append(t.samples, pt)
	}
}

func (t *PenTool) End(env *Env, pt geom.Vec, mod Modifiers) {
	if !t.active {
		return
	}
	t.active = false
	if pt.DistanceTo(t.samples[len(t.samples)-1]) > 0 {
		t.samples = append(t.samples, pt)
	}
	if len(t.samples) < path.MinFreehandPoints {
		return
	}
	subtype := t.Subtype
	if subtype == "" {
		subtype = path.SubtypePen
	}
	out := append(path.ClonePaths(env.Paths), path.Path{
		ID:      env.NewID(),
		Kind:    path.KindFreehand,
		Subtype: subtype,
		Points:  smoothStroke(t.samples),
	})
	env.Paths = path.ClonePaths(out)
	env.Commit(out)
	t.samples = nil
}

// smoothStroke knocks pointer jitter out of a raw sample run with a simple
// neighbor average, keeping the endpoints fixed.
func smoothStroke(samples []geom.Vec) []geom.Vec {
	if len(samples) < 3 {
		return append([]geom.Vec(nil), samples...)
	}
	out := make([]geom.Vec, len(samples))
	out[0] = samples[0]
	out[len(samples)-1] = samples[len(samples)-1]
	for i := 1; i < len(samples)-1; i++ {
		out[i] = geom.Vec{
			X: (samples[i-1].X + samples[i].X + samples[i+1].X) / 3,
			Y: (samples[i-1].Y + samples[i].Y + samples[i+1].Y) / 3,
		}
	}
	return out
}

// ShapeTool produces line, circle, ellipse, and dot paths from the two
// endpoints of a drag.
type ShapeTool struct {
	Subtype path.Subtype // SubtypeLine, SubtypeCircle, SubtypeEllipse, SubtypeDot

	active bool
	start  geom.Vec
	cur    geom.Vec
}

// Preview returns the shape's point set as drawn so far.
func (t *ShapeTool) Preview() ([]geom.Vec, bool) {
	if !t.active {
		return nil, false
	}
	return shapePoints(t.Subtype, t.start, t.cur), true
}

func (t *ShapeTool) Start(env *Env, pt geom.Vec, mod Modifiers) {
	t.active = true
	t.start = pt
	t.cur = pt
}

func (t *ShapeTool) Move(env *Env, pt geom.Vec, mod Modifiers) {
	if t.active {
		t.cur = pt
	}
}

func (t *ShapeTool) End(env *Env, pt geom.Vec, mod Modifiers) {
	if !t.active {
		return
	}
	t.active = false
	t.cur = pt

	points := shapePoints(t.Subtype, t.start, t.cur)
	if len(points) == 0 {
		return
	}
	out := append(path.ClonePaths(env.Paths), path.Path{
		ID:      env.NewID(),
		Kind:    path.KindFreehand,
		Subtype: t.Subtype,
		Points:  points,
	})
	env.Paths = path.ClonePaths(out)
	env.Commit(out)
}

// shapePoints computes the explicit point set for a shape from the drag
// endpoints. Degenerate drags (zero extent) yield no points, except dots,
// which are a single click.
func shapePoints(subtype path.Subtype, start, end geom.Vec) []geom.Vec {
	switch subtype {
	case path.SubtypeLine:
		if start.DistanceTo(end) == 0 {
			return nil
		}
		return []geom.Vec{start, end}

	case path.SubtypeCircle:
		radius := start.DistanceTo(end) / 2
		if radius == 0 {
			return nil
		}
		center := start.Mid(end)
		out := make([]geom.Vec, circleSamples)
		for i := range out {
			a := 2 * math.Pi * float64(i) / circleSamples
			out[i] = geom.Vec{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
		}
		return out

	case path.SubtypeEllipse:
		rect := geom.RectFromCorners(start, end)
		if rect.IsEmpty() {
			return nil
		}
		center := rect.Center()
		rx, ry := rect.Width/2, rect.Height/2
		out := make([]geom.Vec, ellipseSamples)
		for i := range out {
			a := 2 * math.Pi * float64(i) / ellipseSamples
			out[i] = geom.Vec{X: center.X + rx*math.Cos(a), Y: center.Y + ry*math.Sin(a)}
		}
		return out

	case path.SubtypeDot:
		return []geom.Vec{end}
	}
	return nil
}

type curveStage int

const (
	curveIdle curveStage = iota
	curveDragEnd
	curvePlaceControl
)

// CurveTool is the three-click quadratic curve: press at the start point,
// drag to the end point, release, then a final click places the control
// point. The committed path is exactly 3 points: start, control, end.
type CurveTool struct {
	stage curveStage
	p0    geom.Vec
	p1    geom.Vec
	ctrl  geom.Vec
}

// Preview returns the in-progress (start, control, end) triple.
func (t *CurveTool) Preview() (p0, ctrl, p1 geom.Vec, ok bool) {
	if t.stage == curveIdle {
		return geom.Vec{}, geom.Vec{}, geom.Vec{}, false
	}
	return t.p0, t.ctrl, t.p1, true
}

func (t *CurveTool) Start(env *Env, pt geom.Vec, mod Modifiers) {
	switch t.stage {
	case curveIdle:
		t.stage = curveDragEnd
		t.p0 = pt
		t.p1 = pt
		t.ctrl = pt
	case curvePlaceControl:
		t.ctrl = pt
		t.commit(env)
	}
}

func (t *CurveTool) Move(env *Env, pt geom.Vec, mod Modifiers) {
	switch t.stage {
	case curveDragEnd:
		t.p1 = pt
		t.ctrl = t.p0.Mid(pt)
	case curvePlaceControl:
		t.ctrl = pt
	}
}

func (t *CurveTool) End(env *Env, pt geom.Vec, mod Modifiers) {
	if t.stage != curveDragEnd {
		return
	}
	t.p1 = pt
	if t.p0.DistanceTo(t.p1) == 0 {
		t.stage = curveIdle
		return
	}
	t.ctrl = t.p0.Mid(t.p1)
	t.stage = curvePlaceControl
}

func (t *CurveTool) commit(env *Env) {
	t.stage = curveIdle
	out := append(path.ClonePaths(env.Paths), path.Path{
		ID:      env.NewID(),
		Kind:    path.KindFreehand,
		Subtype: path.SubtypeCurve,
		Points:  []geom.Vec{t.p0, t.ctrl, t.p1},
	})
	env.Paths = path.ClonePaths(out)
	env.Commit(out)
}

// EraserTool removes freehand points under a zoom-scaled brush, splitting the
// survivors into separate runs, and deletes outline paths touched by the
// brush.
type EraserTool struct {
	active  bool
	working []path.Path
	changed bool
}

func (t *EraserTool) Start(env *Env, pt geom.Vec, mod Modifiers) {
	t.active = true
	t.changed = false
	t.working = path.ClonePaths(env.Paths)
	t.erase(env, pt)
}

func (t *EraserTool) Move(env *Env, pt geom.Vec, mod Modifiers) {
	if t.active {
		t.erase(env, pt)
	}
}

func (t *EraserTool) End(env *Env, pt geom.Vec, mod Modifiers) {
	if !t.active {
		return
	}
	t.active = false
	if t.changed {
		env.Commit(t.working)
	}
	t.working = nil
}

func (t *EraserTool) erase(env *Env, pt geom.Vec) {
	zoom := env.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	radius := eraserBrushPx / zoom

	out := make([]path.Path, 0, len(t.working))
	changed := false
	for _, p := range t.working {
		switch p.Kind {
		case path.KindOutline:
			if hittest.InFill(p, pt) || hittest.NearStroke(p, pt, radius) {
				changed = true
				delete(env.Selection, p.ID)
				continue
			}
			out = append(out, p)
		case path.KindFreehand:
			runs, touched := eraseFromPoints(p.Points, pt, radius)
			if !touched {
				out = append(out, p)
				continue
			}
			changed = true
			delete(env.Selection, p.ID)
			for i, run := range runs {
				piece := p.Clone()
				piece.Points = run
				if i > 0 {
					piece.ID = env.NewID()
				}
				// Sampled shapes lose their subtype meaning once punctured.
				if piece.Subtype != path.SubtypePen && piece.Subtype != path.SubtypeCalligraphy {
					piece.Subtype = path.SubtypePen
				}
				out = append(out, piece)
			}
		}
	}
	if changed {
		t.working = out
		env.Paths = path.ClonePaths(out)
		t.changed = true
	}
}

// eraseFromPoints drops points within radius of pt and returns the surviving
// consecutive runs that are still long enough to stand as paths.
func eraseFromPoints(points []geom.Vec, pt geom.Vec, radius float64) ([][]geom.Vec, bool) {
	var runs [][]geom.Vec
	var cur []geom.Vec
	touched := false
	for _, p := range points {
		if pt.DistanceTo(p) <= radius {
			touched = true
			if len(cur) >= path.MinFreehandPoints {
				runs = append(runs, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, p)
	}
	if len(cur) >= path.MinFreehandPoints {
		runs = append(runs, cur)
	}
	return runs, touched
}
