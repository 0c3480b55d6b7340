package editor

import (
	"encoding/json"

	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
	"github.com/glyphforge/glyphforge/backend-go/internal/tools"
)

// HandleState is one selection handle position for the host renderer.
type HandleState struct {
	Kind int      `json:"kind"`
	Pos  geom.Vec `json:"pos"`
}

// RenderState is the full drawable state of a session: paths in logical
// units plus the derived selection artifacts, recomputed on every query and
// never persisted. The host renderer applies the viewport transform.
type RenderState struct {
	Paths     []path.Path   `json:"paths"`
	Selection []string      `json:"selection"`
	Bounds    *geom.Rect    `json:"bounds,omitempty"`
	Handles   []HandleState `json:"handles,omitempty"`
	Marquee   *geom.Rect    `json:"marquee,omitempty"`
	CutLine   []geom.Vec    `json:"cutLine,omitempty"`
	CutTarget string        `json:"cutTarget,omitempty"`
	Zoom      float64       `json:"zoom"`
	Pan       geom.Vec      `json:"pan"`
}

// Snapshot derives the current render state.
func (s *Session) Snapshot() RenderState {
	state := RenderState{
		Paths:     s.store.Snapshot(),
		Selection: s.Selection(),
		Zoom:      s.vp.Zoom,
		Pan:       s.vp.Pan,
	}

	if len(state.Selection) > 0 {
		var selected []path.Path
		for _, p := range state.Paths {
			if s.selection[p.ID] {
				selected = append(selected, p)
			}
		}
		if len(selected) > 0 {
			bounds := path.BoundsOf(selected)
			state.Bounds = &bounds
			if s.tool == tools.KindSelect && !s.selectTool.MoveOnly {
				for _, h := range tools.Handles(bounds, s.vp.Zoom) {
					state.Handles = append(state.Handles, HandleState{Kind: int(h.Kind), Pos: h.Pos})
				}
			}
		}
	}

	if r, ok := s.selectTool.Marquee(); ok {
		state.Marquee = &r
	}
	if p1, p2, ok := s.sliceTool.CutLine(); ok {
		state.CutLine = []geom.Vec{p1, p2}
		if id, ok := s.sliceTool.Target(); ok {
			state.CutTarget = id
		}
	}
	return state
}

// SnapshotJSON serializes the render state for a JS host.
func (s *Session) SnapshotJSON() string {
	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		return "{}"
	}
	return string(data)
}
