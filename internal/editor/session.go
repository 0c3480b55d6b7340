// Package editor wires the path store, viewport, and tools into one editing
// session. A session processes one pointer/wheel event fully before the next
// is accepted; tools read a snapshot taken at gesture start and commit whole
// replacement collections through the store.
package editor

import (
	"math"

	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
	"github.com/glyphforge/glyphforge/backend-go/internal/tools"
	"github.com/glyphforge/glyphforge/backend-go/internal/typeid"
	"github.com/glyphforge/glyphforge/backend-go/internal/viewport"
)

// wheelZoomRate converts wheel delta units into a zoom factor exponent.
const wheelZoomRate = 0.001

// Session is one glyph editing surface: it owns the path store, the
// viewport, the selection, and the active tool, and dispatches pointer
// events to exactly one tool by the active kind.
type Session struct {
	store       *path.Store
	vp          *viewport.Viewport
	selection   map[string]bool
	tool        tools.Kind
	strokeWidth float64

	selectTool  tools.SelectTool
	pointEdit   tools.PointEditTool
	sliceTool   tools.SliceTool
	pen         tools.PenTool
	calligraphy tools.PenTool
	line        tools.ShapeTool
	circle      tools.ShapeTool
	ellipse     tools.ShapeTool
	dot         tools.ShapeTool
	curve       tools.CurveTool
	eraser      tools.EraserTool

	// pointers tracks active pointer device positions; two of them switch
	// the session into pinch mode, suspending tool dispatch.
	pointers map[int]geom.Vec
	pinching bool

	gestureActive bool
	env           *tools.Env

	panActive bool
	panLast   geom.Vec
}

// NewSession creates a session. onApply receives every committed path
// collection; the caller owns versioning and persistence.
func NewSession(onApply func([]path.Path)) *Session {
	s := &Session{
		store:       path.NewStore(onApply),
		vp:          viewport.New(),
		selection:   make(map[string]bool),
		strokeWidth: 2,
		pointers:    make(map[int]geom.Vec),
	}
	s.pen.Subtype = path.SubtypePen
	s.calligraphy.Subtype = path.SubtypeCalligraphy
	s.line.Subtype = path.SubtypeLine
	s.circle.Subtype = path.SubtypeCircle
	s.ellipse.Subtype = path.SubtypeEllipse
	s.dot.Subtype = path.SubtypeDot
	return s
}

// --- External interface ---

// Paths returns the current immutable path snapshot.
func (s *Session) Paths() []path.Path {
	return s.store.Snapshot()
}

// ApplyPaths commits a new collection, e.g. from an undo layer.
func (s *Session) ApplyPaths(paths []path.Path) {
	s.store.Apply(paths)
}

// LoadPaths replaces the collection without firing the commit callback, for
// document loads and remote syncs.
func (s *Session) LoadPaths(paths []path.Path) {
	s.store.Replace(paths)
	clear(s.selection)
}

// Selection returns the selected path IDs.
func (s *Session) Selection() []string {
	out := make([]string, 0, len(s.selection))
	for id := range s.selection {
		out = append(out, id)
	}
	return out
}

// SetSelection replaces the selection.
func (s *Session) SetSelection(ids []string) {
	clear(s.selection)
	for _, id := range ids {
		s.selection[id] = true
	}
}

// Viewport exposes the session's viewport controller.
func (s *Session) Viewport() *viewport.Viewport {
	return s.vp
}

// SetViewport jumps the viewport to the given zoom and pan.
func (s *Session) SetViewport(zoom float64, pan geom.Vec) {
	s.vp.Set(zoom, pan)
}

// Tool returns the active tool kind.
func (s *Session) Tool() tools.Kind {
	return s.tool
}

// SetTool switches the active tool, abandoning any in-flight gesture.
func (s *Session) SetTool(kind tools.Kind) {
	s.cancelGesture()
	s.tool = kind
}

// SetStrokeWidth sets the rendered stroke width used for bbox and hit
// tolerance computation.
func (s *Session) SetStrokeWidth(w float64) {
	s.strokeWidth = w
}

// SetMoveOnly toggles move-only transform mode: all handles except moving
// are suppressed and selection is group-atomic.
func (s *Session) SetMoveOnly(on bool) {
	s.selectTool.MoveOnly = on
}

// SetConstraint restricts selection moves to one axis.
func (s *Session) SetConstraint(c tools.Constraint) {
	s.selectTool.Constraint = c
}

// Tick advances the viewport animation one frame; the host render loop
// drives it. Returns true while more ticks are needed.
func (s *Session) Tick() bool {
	return s.vp.Tick()
}

// FitContent animates the viewport to frame the whole drawing.
func (s *Session) FitContent(surfaceW, surfaceH, margin float64) {
	s.vp.FitContent(path.BoundsOf(s.store.Snapshot()), surfaceW, surfaceH, margin)
}

// --- Pointer event entry points (device coordinates) ---

// PointerDown begins or extends a gesture. A second simultaneous pointer
// switches to pinch zooming and suspends tool dispatch until the pointer
// count drops below two again.
func (s *Session) PointerDown(pointerID int, device geom.Vec, mod tools.Modifiers) {
	s.pointers[pointerID] = device

	if len(s.pointers) == 2 {
		s.cancelGesture()
		p1, p2 := s.twoPointers()
		s.vp.StartPinch(p1, p2)
		s.pinching = true
		return
	}
	if s.pinching || len(s.pointers) > 2 {
		return
	}

	if s.tool == tools.KindPan {
		s.panActive = true
		s.panLast = device
		return
	}

	s.beginEnv()
	pt := s.vp.ToLogical(device)
	switch s.tool {
	case tools.KindSelect:
		s.selectTool.Start(s.env, pt, mod)
	case tools.KindPointEdit:
		s.pointEdit.Start(s.env, pt, mod)
	case tools.KindSlice:
		s.sliceTool.Start(s.env, pt, mod)
	case tools.KindPen:
		s.pen.Start(s.env, pt, mod)
	case tools.KindCalligraphy:
		s.calligraphy.Start(s.env, pt, mod)
	case tools.KindLine:
		s.line.Start(s.env, pt, mod)
	case tools.KindCircle:
		s.circle.Start(s.env, pt, mod)
	case tools.KindEllipse:
		s.ellipse.Start(s.env, pt, mod)
	case tools.KindDot:
		s.dot.Start(s.env, pt, mod)
	case tools.KindCurve:
		s.curve.Start(s.env, pt, mod)
	case tools.KindEraser:
		s.eraser.Start(s.env, pt, mod)
	}
}

// PointerMove advances the active gesture or pinch.
func (s *Session) PointerMove(pointerID int, device geom.Vec, mod tools.Modifiers) {
	if _, ok := s.pointers[pointerID]; ok {
		s.pointers[pointerID] = device
	}

	if s.pinching {
		if len(s.pointers) >= 2 {
			p1, p2 := s.twoPointers()
			s.vp.MovePinch(p1, p2)
		}
		return
	}

	if s.panActive {
		s.vp.PanBy(device.Sub(s.panLast))
		s.panLast = device
		return
	}

	if !s.gestureActive {
		return
	}
	pt := s.vp.ToLogical(device)
	switch s.tool {
	case tools.KindSelect:
		s.selectTool.Move(s.env, pt, mod)
	case tools.KindPointEdit:
		s.pointEdit.Move(s.env, pt, mod)
	case tools.KindSlice:
		s.sliceTool.Move(s.env, pt, mod)
	case tools.KindPen:
		s.pen.Move(s.env, pt, mod)
	case tools.KindCalligraphy:
		s.calligraphy.Move(s.env, pt, mod)
	case tools.KindLine:
		s.line.Move(s.env, pt, mod)
	case tools.KindCircle:
		s.circle.Move(s.env, pt, mod)
	case tools.KindEllipse:
		s.ellipse.Move(s.env, pt, mod)
	case tools.KindDot:
		s.dot.Move(s.env, pt, mod)
	case tools.KindCurve:
		s.curve.Move(s.env, pt, mod)
	case tools.KindEraser:
		s.eraser.Move(s.env, pt, mod)
	}
}

// PointerUp ends a gesture or leaves pinch mode once fewer than two pointers
// remain.
func (s *Session) PointerUp(pointerID int, device geom.Vec, mod tools.Modifiers) {
	delete(s.pointers, pointerID)

	if s.pinching {
		if len(s.pointers) < 2 {
			s.vp.EndPinch()
			s.pinching = false
		}
		return
	}

	if s.panActive {
		s.panActive = false
		return
	}

	if !s.gestureActive {
		return
	}
	pt := s.vp.ToLogical(device)
	switch s.tool {
	case tools.KindSelect:
		s.selectTool.End(s.env, pt, mod)
	case tools.KindPointEdit:
		s.pointEdit.End(s.env, pt, mod)
	case tools.KindSlice:
		s.sliceTool.End(s.env, pt, mod)
	case tools.KindPen:
		s.pen.End(s.env, pt, mod)
	case tools.KindCalligraphy:
		s.calligraphy.End(s.env, pt, mod)
	case tools.KindLine:
		s.line.End(s.env, pt, mod)
	case tools.KindCircle:
		s.circle.End(s.env, pt, mod)
	case tools.KindEllipse:
		s.ellipse.End(s.env, pt, mod)
	case tools.KindDot:
		s.dot.End(s.env, pt, mod)
	case tools.KindCurve:
		s.curve.End(s.env, pt, mod)
	case tools.KindEraser:
		s.eraser.End(s.env, pt, mod)
	}
	s.endEnv()
}

// DoubleClick routes a double click; only the point-edit tool reacts, with
// point insertion and deletion.
func (s *Session) DoubleClick(device geom.Vec, mod tools.Modifiers) {
	if s.pinching {
		return
	}
	if s.tool != tools.KindPointEdit {
		return
	}
	s.beginEnv()
	s.pointEdit.DoubleClick(s.env, s.vp.ToLogical(device), mod)
	s.endEnv()
}

// DeleteKey handles Delete/Backspace: the point-edit tool removes its
// selected point, the select tool removes the selected paths.
func (s *Session) DeleteKey() {
	switch s.tool {
	case tools.KindPointEdit:
		s.beginEnv()
		s.pointEdit.DeleteSelected(s.env)
		s.endEnv()
	case tools.KindSelect:
		if len(s.selection) == 0 {
			return
		}
		var out []path.Path
		for _, p := range s.store.Snapshot() {
			if !s.selection[p.ID] {
				out = append(out, p)
			}
		}
		clear(s.selection)
		s.store.Apply(out)
	}
}

// Wheel applies a small anchored zoom increment from a scroll event.
func (s *Session) Wheel(deltaY float64, device geom.Vec) {
	s.vp.ZoomBy(math.Exp(-deltaY*wheelZoomRate), device)
}

// --- Gesture plumbing ---

func (s *Session) beginEnv() {
	s.env = &tools.Env{
		Paths:       s.store.Snapshot(),
		Selection:   s.selection,
		Zoom:        s.vp.Zoom,
		StrokeWidth: s.strokeWidth,
		NewID:       typeid.NewPathID,
		Commit:      s.store.Apply,
	}
	s.gestureActive = true
}

func (s *Session) endEnv() {
	s.gestureActive = false
	s.env = nil
}

// cancelGesture abandons an in-flight gesture without committing.
func (s *Session) cancelGesture() {
	s.gestureActive = false
	s.env = nil
	s.panActive = false
}

func (s *Session) twoPointers() (geom.Vec, geom.Vec) {
	pts := make([]geom.Vec, 0, 2)
	for _, p := range s.pointers {
		pts = append(pts, p)
		if len(pts) == 2 {
			break
		}
	}
	return pts[0], pts[1]
}
