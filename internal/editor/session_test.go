package editor

import (
	"testing"

	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
	"github.com/glyphforge/glyphforge/backend-go/internal/tools"
)

type applyLog struct {
	commits [][]path.Path
}

func (l *applyLog) apply(p []path.Path) {
	l.commits = append(l.commits, path.ClonePaths(p))
}

func stroke(id string, pts ...geom.Vec) path.Path {
	return path.Path{ID: id, Kind: path.KindFreehand, Subtype: path.SubtypePen, Points: pts}
}

func square(id string, x, y, size float64) path.Path {
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

func TestPenGestureCommitsThroughSession(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)
	s.SetTool(tools.KindPen)

	s.PointerDown(1, geom.Vec{X: 0, Y: 0}, tools.Modifiers{})
	s.PointerMove(1, geom.Vec{X: 10, Y: 0}, tools.Modifiers{})
	s.PointerUp(1, geom.Vec{X: 20, Y: 0}, tools.Modifiers{})

	if len(log.commits) != 1 {
		t.Fatalf("commits = %d, want 1", len(log.commits))
	}
	got := s.Paths()
	if len(got) != 1 || got[0].Subtype != path.SubtypePen {
		t.Fatalf("paths = %v", got)
	}
	pts := got[0].Points
	if pts[0] != (geom.Vec{}) || pts[len(pts)-1] != (geom.Vec{X: 20, Y: 0}) {
		t.Errorf("stroke endpoints = %v .. %v", pts[0], pts[len(pts)-1])
	}
}

func TestPointerEventsMapThroughViewport(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)
	s.SetTool(tools.KindLine)
	s.SetViewport(2, geom.Vec{X: 10, Y: 10})

	// Device (10,10) is logical (0,0); device (50,10) is logical (20,0).
	s.PointerDown(1, geom.Vec{X: 10, Y: 10}, tools.Modifiers{})
	s.PointerUp(1, geom.Vec{X: 50, Y: 10}, tools.Modifiers{})

	got := s.Paths()
	if len(got) != 1 {
		t.Fatal("line not committed")
	}
	want := []geom.Vec{{X: 0, Y: 0}, {X: 20, Y: 0}}
	if got[0].Points[0] != want[0] || got[0].Points[1] != want[1] {
		t.Errorf("points = %v, want %v", got[0].Points, want)
	}
}

func TestSecondPointerStartsPinch(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)
	s.SetTool(tools.KindPen)

	s.PointerDown(1, geom.Vec{X: 100, Y: 100}, tools.Modifiers{})
	s.PointerDown(2, geom.Vec{X: 200, Y: 100}, tools.Modifiers{})
	// Doubling the pointer distance doubles the zoom.
	s.PointerMove(2, geom.Vec{X: 300, Y: 100}, tools.Modifiers{})

	if got := s.Viewport().Zoom; got != 2 {
		t.Errorf("zoom = %v, want 2", got)
	}

	// The suspended pen gesture must not commit on release.
	s.PointerUp(2, geom.Vec{X: 300, Y: 100}, tools.Modifiers{})
	s.PointerUp(1, geom.Vec{X: 100, Y: 100}, tools.Modifiers{})
	if len(log.commits) != 0 {
		t.Errorf("commits = %d, want 0 after pinch", len(log.commits))
	}
	if len(s.Paths()) != 0 {
		t.Errorf("pinch left a stray path")
	}
}

func TestPinchEndsWhenOnePointerLifts(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)
	s.SetTool(tools.KindPen)

	s.PointerDown(1, geom.Vec{X: 0, Y: 0}, tools.Modifiers{})
	s.PointerDown(2, geom.Vec{X: 100, Y: 0}, tools.Modifiers{})
	s.PointerUp(2, geom.Vec{X: 100, Y: 0}, tools.Modifiers{})

	// A fresh single-pointer gesture works again after the pinch.
	s.PointerUp(1, geom.Vec{X: 0, Y: 0}, tools.Modifiers{})
	s.PointerDown(3, geom.Vec{X: 0, Y: 0}, tools.Modifiers{})
	s.PointerMove(3, geom.Vec{X: 30, Y: 0}, tools.Modifiers{})
	s.PointerUp(3, geom.Vec{X: 60, Y: 0}, tools.Modifiers{})

	if len(s.Paths()) != 1 {
		t.Errorf("paths = %d, want 1 from the post-pinch stroke", len(s.Paths()))
	}
}

func TestPanToolDragsViewport(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)
	s.SetTool(tools.KindPan)

	s.PointerDown(1, geom.Vec{X: 100, Y: 100}, tools.Modifiers{})
	s.PointerMove(1, geom.Vec{X: 130, Y: 80}, tools.Modifiers{})
	s.PointerUp(1, geom.Vec{X: 130, Y: 80}, tools.Modifiers{})

	if got := s.Viewport().Pan; got != (geom.Vec{X: 30, Y: -20}) {
		t.Errorf("pan = %v, want (30,-20)", got)
	}
	if len(log.commits) != 0 {
		t.Error("pan committed paths")
	}
}

func TestWheelZoomDirection(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)

	s.Wheel(-500, geom.Vec{})
	if s.Viewport().Zoom <= 1 {
		t.Errorf("scroll up zoom = %v, want > 1", s.Viewport().Zoom)
	}
	zoomedIn := s.Viewport().Zoom
	s.Wheel(500, geom.Vec{})
	if s.Viewport().Zoom >= zoomedIn {
		t.Errorf("scroll down did not zoom out (%v)", s.Viewport().Zoom)
	}
}

func TestDeleteKeyRemovesSelectedPaths(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)
	s.LoadPaths([]path.Path{square("a", 0, 0, 10), square("b", 100, 0, 10)})
	s.SetTool(tools.KindSelect)
	s.SetSelection([]string{"a"})

	s.DeleteKey()

	got := s.Paths()
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("paths = %v, want only b", got)
	}
	if len(s.Selection()) != 0 {
		t.Error("selection not cleared")
	}
	if len(log.commits) != 1 {
		t.Errorf("commits = %d, want 1", len(log.commits))
	}
}

func TestDeleteKeyEmptySelectionNoOp(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)
	s.LoadPaths([]path.Path{square("a", 0, 0, 10)})
	s.SetTool(tools.KindSelect)

	s.DeleteKey()

	if len(log.commits) != 0 {
		t.Error("empty delete committed")
	}
}

func TestSetToolCancelsGesture(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)
	s.SetTool(tools.KindPen)

	s.PointerDown(1, geom.Vec{X: 0, Y: 0}, tools.Modifiers{})
	s.PointerMove(1, geom.Vec{X: 50, Y: 0}, tools.Modifiers{})
	s.SetTool(tools.KindSelect)
	s.PointerUp(1, geom.Vec{X: 100, Y: 0}, tools.Modifiers{})

	if len(log.commits) != 0 {
		t.Error("abandoned gesture committed")
	}
}

func TestLoadPathsSkipsCallbackAndClearsSelection(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)
	s.SetSelection([]string{"old"})

	s.LoadPaths([]path.Path{stroke("s", geom.Vec{}, geom.Vec{X: 10, Y: 0})})

	if len(log.commits) != 0 {
		t.Error("load fired the commit callback")
	}
	if len(s.Selection()) != 0 {
		t.Error("selection survived a load")
	}
	if len(s.Paths()) != 1 {
		t.Error("loaded paths missing")
	}
}

func TestApplyPathsFiresCallback(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)

	s.ApplyPaths([]path.Path{stroke("s", geom.Vec{}, geom.Vec{X: 10, Y: 0})})

	if len(log.commits) != 1 {
		t.Errorf("commits = %d, want 1", len(log.commits))
	}
}

func TestDoubleClickDeletesAnchor(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)
	s.LoadPaths([]path.Path{stroke("s",
		geom.Vec{X: 0, Y: 0}, geom.Vec{X: 10, Y: 0}, geom.Vec{X: 20, Y: 0}, geom.Vec{X: 30, Y: 0})})
	s.SetTool(tools.KindPointEdit)

	s.DoubleClick(geom.Vec{X: 10, Y: 0}, tools.Modifiers{})

	got := s.Paths()
	if len(got) != 1 || len(got[0].Points) != 3 {
		t.Fatalf("paths after delete = %v", got)
	}
	if got[0].Points[1] != (geom.Vec{X: 20, Y: 0}) {
		t.Errorf("wrong anchor removed: %v", got[0].Points)
	}
}

func TestDoubleClickIgnoredForOtherTools(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)
	s.LoadPaths([]path.Path{stroke("s",
		geom.Vec{X: 0, Y: 0}, geom.Vec{X: 10, Y: 0}, geom.Vec{X: 20, Y: 0})})
	s.SetTool(tools.KindSelect)

	s.DoubleClick(geom.Vec{X: 10, Y: 0}, tools.Modifiers{})

	if len(log.commits) != 0 {
		t.Error("double click outside point edit committed")
	}
}

func TestSnapshotSelectionArtifacts(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)
	s.LoadPaths([]path.Path{square("a", 0, 0, 100)})
	s.SetTool(tools.KindSelect)
	s.SetSelection([]string{"a"})

	state := s.Snapshot()
	if state.Bounds == nil {
		t.Fatal("no selection bounds")
	}
	if got := *state.Bounds; got.X != 0 || got.Y != 0 || got.Width != 100 || got.Height != 100 {
		t.Errorf("bounds = %+v", got)
	}
	if len(state.Handles) != 9 {
		t.Errorf("handles = %d, want 8 scale + 1 rotate", len(state.Handles))
	}

	s.SetMoveOnly(true)
	if state = s.Snapshot(); len(state.Handles) != 0 {
		t.Error("move-only still renders handles")
	}
	s.SetMoveOnly(false)

	s.SetTool(tools.KindPointEdit)
	s.SetSelection([]string{"a"})
	if state = s.Snapshot(); len(state.Handles) != 0 {
		t.Error("non-select tool renders transform handles")
	}
}

func TestSnapshotEchoesViewport(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)
	s.SetViewport(2.5, geom.Vec{X: -40, Y: 15})

	state := s.Snapshot()
	if state.Zoom != 2.5 || state.Pan != (geom.Vec{X: -40, Y: 15}) {
		t.Errorf("zoom/pan = %v/%v", state.Zoom, state.Pan)
	}
}

func TestFitContentFramesDrawing(t *testing.T) {
	var log applyLog
	s := NewSession(log.apply)
	s.LoadPaths([]path.Path{square("a", 0, 0, 100)})

	s.FitContent(800, 600, 40)
	for i := 0; i < 1000 && s.Tick(); i++ {
	}

	vp := s.Viewport()
	if vp.Zoom <= 1 {
		t.Errorf("zoom = %v, want framed zoom > 1", vp.Zoom)
	}
	// The content center lands on the surface center.
	center := geom.Vec{X: 50*vp.Zoom + vp.Pan.X, Y: 50*vp.Zoom + vp.Pan.Y}
	if d := center.DistanceTo(geom.Vec{X: 400, Y: 300}); d > 1e-6 {
		t.Errorf("content center = %v, want (400,300)", center)
	}
}
