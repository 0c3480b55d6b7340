package tools

import (
	"math"
	"testing"

	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
)

func TestPenStrokeCommits(t *testing.T) {
	te := newTestEnv()
	tool := &PenTool{Subtype: path.SubtypePen}

	tool.Start(te.Env, geom.Vec{X: 0, Y: 0}, Modifiers{})
	for x := 2.0; x <= 40; x += 2 {
		tool.Move(te.Env, geom.Vec{X: x, Y: math.Sin(x/10) * 5}, Modifiers{})
	}
	tool.End(te.Env, geom.Vec{X: 42, Y: 0}, Modifiers{})

	got := te.lastCommit()
	if got == nil {
		t.Fatal("stroke did not commit")
	}
	p := got[0]
	if p.Kind != path.KindFreehand || p.Subtype != path.SubtypePen {
		t.Errorf("kind/subtype = %v/%v", p.Kind, p.Subtype)
	}
	if len(p.Points) < path.MinFreehandPoints {
		t.Fatalf("points = %d", len(p.Points))
	}
	if p.Points[0] != (geom.Vec{}) || p.Points[len(p.Points)-1] != (geom.Vec{X: 42, Y: 0}) {
		t.Errorf("smoothing moved stroke endpoints")
	}
	if p.ID == "" {
		t.Error("missing path ID")
	}
}

func TestPenSkipsDenseSamples(t *testing.T) {
	te := newTestEnv()
	tool := &PenTool{Subtype: path.SubtypePen}

	tool.Start(te.Env, geom.Vec{X: 0, Y: 0}, Modifiers{})
	// Jittering below the sample spacing adds nothing.
	tool.Move(te.Env, geom.Vec{X: 0.3, Y: 0}, Modifiers{})
	tool.Move(te.Env, geom.Vec{X: 0.6, Y: 0}, Modifiers{})
	tool.Move(te.Env, geom.Vec{X: 5, Y: 0}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 5, Y: 0}, Modifiers{})

	got := te.lastCommit()
	if len(got[0].Points) != 2 {
		t.Errorf("points = %d, want 2 (jitter skipped)", len(got[0].Points))
	}
}

func TestPenSingleClickNoCommit(t *testing.T) {
	te := newTestEnv()
	tool := &PenTool{Subtype: path.SubtypePen}

	tool.Start(te.Env, geom.Vec{X: 10, Y: 10}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 10, Y: 10}, Modifiers{})

	if len(te.committed) != 0 {
		t.Error("degenerate stroke committed")
	}
}

func TestCalligraphySubtype(t *testing.T) {
	te := newTestEnv()
	tool := &PenTool{Subtype: path.SubtypeCalligraphy}

	tool.Start(te.Env, geom.Vec{}, Modifiers{})
	tool.Move(te.Env, geom.Vec{X: 20, Y: 0}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 40, Y: 0}, Modifiers{})

	if got := te.lastCommit(); got[0].Subtype != path.SubtypeCalligraphy {
		t.Errorf("subtype = %v", got[0].Subtype)
	}
}

func TestLineTool(t *testing.T) {
	te := newTestEnv()
	tool := &ShapeTool{Subtype: path.SubtypeLine}

	tool.Start(te.Env, geom.Vec{X: 10, Y: 10}, Modifiers{})
	tool.Move(te.Env, geom.Vec{X: 50, Y: 50}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 80, Y: 20}, Modifiers{})

	got := te.lastCommit()
	want := []geom.Vec{{X: 10, Y: 10}, {X: 80, Y: 20}}
	if len(got[0].Points) != 2 || got[0].Points[0] != want[0] || got[0].Points[1] != want[1] {
		t.Errorf("line points = %v, want %v", got[0].Points, want)
	}
}

func TestLineDegenerateDragNoCommit(t *testing.T) {
	te := newTestEnv()
	tool := &ShapeTool{Subtype: path.SubtypeLine}

	tool.Start(te.Env, geom.Vec{X: 10, Y: 10}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 10, Y: 10}, Modifiers{})

	if len(te.committed) != 0 {
		t.Error("zero-extent line committed")
	}
}

func TestCircleToolSamplesBoundary(t *testing.T) {
	te := newTestEnv()
	tool := &ShapeTool{Subtype: path.SubtypeCircle}

	tool.Start(te.Env, geom.Vec{X: 0, Y: 50}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 100, Y: 50}, Modifiers{})

	got := te.lastCommit()[0]
	if len(got.Points) != 32 {
		t.Fatalf("samples = %d, want 32", len(got.Points))
	}
	center := geom.Vec{X: 50, Y: 50}
	for i, p := range got.Points {
		if r := p.DistanceTo(center); math.Abs(r-50) > 1e-9 {
			t.Fatalf("sample %d radius = %v, want 50", i, r)
		}
	}
	if !got.IsClosed() {
		t.Error("circle not closed")
	}
}

func TestEllipseToolFitsRect(t *testing.T) {
	te := newTestEnv()
	tool := &ShapeTool{Subtype: path.SubtypeEllipse}

	tool.Start(te.Env, geom.Vec{X: 0, Y: 0}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 200, Y: 100}, Modifiers{})

	got := te.lastCommit()[0]
	if len(got.Points) != 48 {
		t.Fatalf("samples = %d, want 48", len(got.Points))
	}
	for _, p := range got.Points {
		// Implicit ellipse equation for center (100,50), rx 100, ry 50.
		v := math.Pow((p.X-100)/100, 2) + math.Pow((p.Y-50)/50, 2)
		if math.Abs(v-1) > 1e-9 {
			t.Fatalf("sample %v off the ellipse (%v)", p, v)
		}
	}
}

func TestDotToolSingleClick(t *testing.T) {
	te := newTestEnv()
	tool := &ShapeTool{Subtype: path.SubtypeDot}

	tool.Start(te.Env, geom.Vec{X: 30, Y: 40}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 30, Y: 40}, Modifiers{})

	got := te.lastCommit()
	if got == nil {
		t.Fatal("dot did not commit")
	}
	if len(got[0].Points) != 1 || got[0].Points[0] != (geom.Vec{X: 30, Y: 40}) {
		t.Errorf("dot points = %v", got[0].Points)
	}
	if !got[0].Valid() {
		t.Error("single-point dot reported invalid")
	}
}

func TestCurveToolThreeClickFlow(t *testing.T) {
	te := newTestEnv()
	tool := &CurveTool{}

	// Press, drag to the end point, release.
	tool.Start(te.Env, geom.Vec{X: 0, Y: 0}, Modifiers{})
	tool.Move(te.Env, geom.Vec{X: 60, Y: 0}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 100, Y: 0}, Modifiers{})
	if len(te.committed) != 0 {
		t.Fatal("curve committed before the control click")
	}

	// The control point follows the pointer until the final click.
	tool.Move(te.Env, geom.Vec{X: 50, Y: 80}, Modifiers{})
	tool.Start(te.Env, geom.Vec{X: 50, Y: 80}, Modifiers{})

	got := te.lastCommit()
	if got == nil {
		t.Fatal("curve did not commit")
	}
	p := got[0]
	if p.Subtype != path.SubtypeCurve {
		t.Errorf("subtype = %v", p.Subtype)
	}
	want := []geom.Vec{{X: 0, Y: 0}, {X: 50, Y: 80}, {X: 100, Y: 0}}
	if len(p.Points) != 3 || p.Points[0] != want[0] || p.Points[1] != want[1] || p.Points[2] != want[2] {
		t.Errorf("points = %v, want %v", p.Points, want)
	}
}

func TestCurveToolZeroDragResets(t *testing.T) {
	te := newTestEnv()
	tool := &CurveTool{}

	tool.Start(te.Env, geom.Vec{X: 10, Y: 10}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 10, Y: 10}, Modifiers{})

	if _, _, _, ok := tool.Preview(); ok {
		t.Error("zero drag left the curve pending")
	}
}

func TestEraserSplitsStroke(t *testing.T) {
	pts := make([]geom.Vec, 9)
	for i := range pts {
		pts[i] = geom.Vec{X: float64(i) * 30, Y: 0}
	}
	te := newTestEnv(penStroke("s", pts...))
	tool := &EraserTool{}

	// Erase the middle point at x=120 (index 4).
	tool.Start(te.Env, geom.Vec{X: 120, Y: 0}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 120, Y: 0}, Modifiers{})

	got := te.lastCommit()
	if len(got) != 2 {
		t.Fatalf("paths = %d, want 2 runs", len(got))
	}
	if got[0].ID != "s" {
		t.Errorf("first run ID = %s, want original kept", got[0].ID)
	}
	if got[1].ID == "s" || got[1].ID == "" {
		t.Errorf("second run ID = %q, want fresh", got[1].ID)
	}
	for _, p := range got {
		if !p.Valid() {
			t.Errorf("run %s invalid: %v", p.ID, p.Points)
		}
	}
}

func TestEraserDropsShortRuns(t *testing.T) {
	te := newTestEnv(penStroke("s",
		geom.Vec{X: 0, Y: 0}, geom.Vec{X: 30, Y: 0}, geom.Vec{X: 60, Y: 0}))
	tool := &EraserTool{}

	// Erasing the middle point leaves two single-point runs: both too short.
	tool.Start(te.Env, geom.Vec{X: 30, Y: 0}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 30, Y: 0}, Modifiers{})

	if got := te.lastCommit(); len(got) != 0 {
		t.Errorf("paths = %d, want stroke fully erased", len(got))
	}
}

func TestEraserDeletesOutlineWhole(t *testing.T) {
	te := newTestEnv(squareOutline("sq", 0, 0, 100), penStroke("keep", geom.Vec{X: 300, Y: 0}, geom.Vec{X: 400, Y: 0}))
	te.Selection["sq"] = true
	tool := &EraserTool{}

	tool.Start(te.Env, geom.Vec{X: 50, Y: 50}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 50, Y: 50}, Modifiers{})

	got := te.lastCommit()
	if len(got) != 1 || got[0].ID != "keep" {
		t.Errorf("paths after erase = %v", got)
	}
	if te.Selection["sq"] {
		t.Error("erased outline still selected")
	}
}

func TestEraserMissIsNoOp(t *testing.T) {
	te := newTestEnv(penStroke("s", geom.Vec{X: 0, Y: 0}, geom.Vec{X: 100, Y: 0}))
	tool := &EraserTool{}

	tool.Start(te.Env, geom.Vec{X: 500, Y: 500}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 500, Y: 500}, Modifiers{})

	if len(te.committed) != 0 {
		t.Error("miss committed a change")
	}
}

func TestEraserBrushScalesWithZoom(t *testing.T) {
	te := newTestEnv(penStroke("s", geom.Vec{X: 0, Y: 0}, geom.Vec{X: 100, Y: 0}))
	te.Zoom = 10
	tool := &EraserTool{}

	// 12px brush at zoom 10 is 1.2 logical units: a point 5 units away stays.
	tool.Start(te.Env, geom.Vec{X: 0, Y: 5}, Modifiers{})
	tool.End(te.Env, geom.Vec{X: 0, Y: 5}, Modifiers{})
	if len(te.committed) != 0 {
		t.Error("brush reached beyond its zoomed radius")
	}
}
