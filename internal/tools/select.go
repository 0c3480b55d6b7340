package tools

import (
	"math"

	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
	"github.com/glyphforge/glyphforge/backend-go/internal/hittest"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
)

// Handle hit radii and the rotate handle's stand-off, all in screen pixels so
// handles keep a constant on-screen size across zoom levels.
const (
	handleSizePx   = 8.0
	rotateSizePx   = 12.0
	rotateOffsetPx = 24.0
	minScaleExtent = 1e-9
)

// HandleKind identifies a selection-bbox handle.
type HandleKind int

const (
	HandleNone HandleKind = iota
	HandleNW
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
	HandleRotate
)

// Handle is one on-canvas control point derived from the selection bbox.
type Handle struct {
	Kind HandleKind
	Pos  geom.Vec
}

// Handles derives the scale and rotate handle positions for a selection
// bounding box. Callers guard the zero-selection case, which has no bbox and
// no handles.
func Handles(bounds geom.Rect, zoom float64) []Handle {
	x0, y0 := bounds.X, bounds.Y
	x1, y1 := bounds.X+bounds.Width, bounds.Y+bounds.Height
	cx, cy := bounds.Center().X, bounds.Center().Y
	return []Handle{
		{HandleNW, geom.Vec{X: x0, Y: y0}},
		{HandleN, geom.Vec{X: cx, Y: y0}},
		{HandleNE, geom.Vec{X: x1, Y: y0}},
		{HandleE, geom.Vec{X: x1, Y: cy}},
		{HandleSE, geom.Vec{X: x1, Y: y1}},
		{HandleS, geom.Vec{X: cx, Y: y1}},
		{HandleSW, geom.Vec{X: x0, Y: y1}},
		{HandleW, geom.Vec{X: x0, Y: cy}},
		{HandleRotate, geom.Vec{X: cx, Y: y0 - rotateOffsetPx/zoom}},
	}
}

// scaleOrigin returns the fixed point for a scale gesture: the bbox corner or
// edge midpoint opposite the grabbed handle.
func scaleOrigin(h HandleKind, bounds geom.Rect) geom.Vec {
	x0, y0 := bounds.X, bounds.Y
	x1, y1 := bounds.X+bounds.Width, bounds.Y+bounds.Height
	c := bounds.Center()
	switch h {
	case HandleNW:
		return geom.Vec{X: x1, Y: y1}
	case HandleNE:
		return geom.Vec{X: x0, Y: y1}
	case HandleSE:
		return geom.Vec{X: x0, Y: y0}
	case HandleSW:
		return geom.Vec{X: x1, Y: y0}
	case HandleN:
		return geom.Vec{X: c.X, Y: y1}
	case HandleS:
		return geom.Vec{X: c.X, Y: y0}
	case HandleE:
		return geom.Vec{X: x0, Y: c.Y}
	case HandleW:
		return geom.Vec{X: x1, Y: c.Y}
	}
	return c
}

type selectMode int

const (
	selectIdle selectMode = iota
	selectMarquee
	selectHandle
	selectMove
)

// SelectTool implements marquee selection, group-aware path picking, and
// move/scale/rotate transforms driven by selection-bbox handles.
type SelectTool struct {
	// MoveOnly suppresses scale/rotate handles and forces group-atomic
	// selection, for callers that want translation only (e.g. positioning a
	// mark relative to a base glyph).
	MoveOnly bool
	// Constraint zeroes a move delta axis.
	Constraint Constraint

	mode        selectMode
	start       geom.Vec
	handle      HandleKind
	handleStart geom.Vec
	startPaths  []path.Path
	startBounds geom.Rect
	working     []path.Path
	changed     bool

	marqueeBase map[string]bool
	marquee     geom.Rect
	hasMarquee  bool
}

// Marquee returns the live marquee rectangle while one is being dragged.
func (t *SelectTool) Marquee() (geom.Rect, bool) {
	return t.marquee, t.hasMarquee && t.mode == selectMarquee
}

// Start begins a gesture at the logical point pt. Resolution order: bbox
// handle, then inside-bbox move, then path pick, then marquee.
func (t *SelectTool) Start(env *Env, pt geom.Vec, mod Modifiers) {
	t.mode = selectIdle
	t.start = pt
	t.changed = false
	t.hasMarquee = false

	selected := env.SelectedPaths()
	if len(selected) > 0 {
		bounds := path.BoundsOf(selected)
		if !t.MoveOnly {
			if h, ok := t.hitHandle(bounds, pt, env.Zoom); ok {
				t.mode = selectHandle
				t.handle = h.Kind
				t.handleStart = h.Pos
				t.startBounds = bounds
				t.startPaths = path.ClonePaths(env.Paths)
				t.working = path.ClonePaths(env.Paths)
				return
			}
		}
		if bounds.Contains(pt) {
			t.beginMove(env)
			return
		}
	}

	id, hit := hittest.HitPath(env.Paths, pt, hittest.Options{
		Zoom:        env.Zoom,
		StrokeWidth: env.StrokeWidth,
	})
	if hit {
		members := path.GroupMembers(env.Paths, id)
		if mod.Shift && !t.MoveOnly {
			toggle(env.Selection, members)
			return
		}
		if !env.Selection[id] {
			env.SelectOnly(members...)
		}
		t.beginMove(env)
		return
	}

	// Empty canvas: marquee. Shift keeps the existing selection as a base.
	t.mode = selectMarquee
	t.hasMarquee = true
	t.marquee = geom.RectFromCorners(pt, pt)
	t.marqueeBase = make(map[string]bool)
	if mod.Shift {
		for id := range env.Selection {
			t.marqueeBase[id] = true
		}
	}
	clear(env.Selection)
	for id := range t.marqueeBase {
		env.Selection[id] = true
	}
}

func (t *SelectTool) beginMove(env *Env) {
	t.mode = selectMove
	t.startPaths = path.ClonePaths(env.Paths)
	t.working = path.ClonePaths(env.Paths)
	t.startBounds = path.BoundsOf(env.SelectedPaths())
}

func (t *SelectTool) hitHandle(bounds geom.Rect, pt geom.Vec, zoom float64) (Handle, bool) {
	if zoom <= 0 {
		zoom = 1
	}
	all := Handles(bounds, zoom)
	// Rotate handle first: it sits outside the bbox with a larger radius.
	rotate := all[len(all)-1]
	if pt.DistanceTo(rotate.Pos) <= rotateSizePx/zoom {
		return rotate, true
	}
	for _, h := range all[:len(all)-1] {
		if pt.DistanceTo(h.Pos) <= handleSizePx/zoom {
			return h, true
		}
	}
	return Handle{}, false
}

// Move advances the gesture to the logical point pt.
func (t *SelectTool) Move(env *Env, pt geom.Vec, mod Modifiers) {
	switch t.mode {
	case selectMove:
		delta := pt.Sub(t.start)
		switch t.Constraint {
		case ConstraintHorizontal:
			delta.Y = 0
		case ConstraintVertical:
			delta.X = 0
		}
		t.applyToSelected(env, geom.Translate(delta.X, delta.Y))

	case selectHandle:
		if t.handle == HandleRotate {
			center := t.startBounds.Center()
			a0 := t.start.Sub(center).Angle()
			a1 := pt.Sub(center).Angle()
			t.applyToSelected(env, geom.RotateAbout(a1-a0, center))
			return
		}
		origin := scaleOrigin(t.handle, t.startBounds)
		sx, sy := scaleFactors(t.handle, t.handleStart, pt, origin)
		t.applyToSelected(env, geom.ScaleAbout(sx, sy, origin))

	case selectMarquee:
		t.marquee = geom.RectFromCorners(t.start, pt)
		clear(env.Selection)
		for id := range t.marqueeBase {
			env.Selection[id] = true
		}
		for _, p := range env.Paths {
			if p.Bounds().Intersects(t.marquee) {
				for _, id := range path.GroupMembers(env.Paths, p.ID) {
					env.Selection[id] = true
				}
			}
		}
	}
}

// scaleFactors derives independent x/y factors from the pointer position
// relative to the fixed origin and the grabbed handle's start position. Edge
// handles scale a single axis; degenerate extents leave the axis untouched.
func scaleFactors(h HandleKind, handleStart, cur, origin geom.Vec) (sx, sy float64) {
	sx, sy = 1, 1
	dx := handleStart.X - origin.X
	dy := handleStart.Y - origin.Y
	if math.Abs(dx) > minScaleExtent {
		sx = (cur.X - origin.X) / dx
	}
	if math.Abs(dy) > minScaleExtent {
		sy = (cur.Y - origin.Y) / dy
	}
	switch h {
	case HandleN, HandleS:
		sx = 1
	case HandleE, HandleW:
		sy = 1
	}
	return sx, sy
}

func (t *SelectTool) applyToSelected(env *Env, m geom.Matrix2D) {
	for i, p := range t.startPaths {
		if env.Selection[p.ID] {
			t.working[i] = p.Transform(m)
		} else {
			t.working[i] = p
		}
	}
	env.Paths = path.ClonePaths(t.working)
	t.changed = true
}

// End finishes the gesture, committing any transform.
func (t *SelectTool) End(env *Env, pt geom.Vec, mod Modifiers) {
	if (t.mode == selectMove || t.mode == selectHandle) && t.changed {
		env.Commit(t.working)
	}
	t.mode = selectIdle
	t.hasMarquee = false
	t.startPaths = nil
	t.working = nil
}

// toggle flips membership of the whole member set: if any member is
// selected, all are removed, otherwise all are added.
func toggle(sel map[string]bool, members []string) {
	any := false
	for _, id := range members {
		if sel[id] {
			any = true
			break
		}
	}
	for _, id := range members {
		if any {
			delete(sel, id)
		} else {
			sel[id] = true
		}
	}
}
