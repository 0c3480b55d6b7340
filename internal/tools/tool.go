// Package tools implements the geometric editing tools that mutate the path
// model in response to pointer input: select/transform, point edit, slice,
// pen, shapes, curve and eraser. Each tool is a small state machine driven by
// start/move/end events in logical canvas coordinates; the session dispatches
// events to exactly one tool by the active Kind.
package tools

import (
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
)

// Kind identifies the active tool. The session's dispatcher matches on it,
// so adding a tool is a compile-time-checked change.
type Kind int

const (
	KindSelect Kind = iota
	KindPointEdit
	KindSlice
	KindPen
	KindCalligraphy
	KindLine
	KindCurve
	KindCircle
	KindEllipse
	KindDot
	KindEraser
	KindPan
)

var kindNames = map[Kind]string{
	KindSelect:      "select",
	KindPointEdit:   "point-edit",
	KindSlice:       "slice",
	KindPen:         "pen",
	KindCalligraphy: "calligraphy",
	KindLine:        "line",
	KindCurve:       "curve",
	KindCircle:      "circle",
	KindEllipse:     "ellipse",
	KindDot:         "dot",
	KindEraser:      "eraser",
	KindPan:         "pan",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "select"
}

// ParseKind maps a tool name from the client to a Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindSelect, false
}

// Modifiers carries the keyboard state accompanying a pointer event.
type Modifiers struct {
	Shift bool
}

// Constraint restricts move deltas to one axis.
type Constraint int

const (
	ConstraintNone Constraint = iota
	ConstraintHorizontal
	ConstraintVertical
)

// Env is the slice of session state a tool reads and mutates during one
// gesture. Paths is a snapshot taken at gesture start; tools never observe a
// partially mutated model. Commit hands a full replacement collection to the
// store on gesture completion.
type Env struct {
	Paths       []path.Path
	Selection   map[string]bool
	Zoom        float64
	StrokeWidth float64

	// NewID mints a unique path ID for tools that create paths.
	NewID func() string
	// Commit replaces the path collection. Tools call it at most once per
	// gesture, on completion.
	Commit func([]path.Path)
}

// SelectOnly replaces the selection with the given IDs.
func (e *Env) SelectOnly(ids ...string) {
	clear(e.Selection)
	for _, id := range ids {
		e.Selection[id] = true
	}
}

// SelectedPaths returns the paths currently selected, in collection order.
func (e *Env) SelectedPaths() []path.Path {
	var out []path.Path
	for _, p := range e.Paths {
		if e.Selection[p.ID] {
			out = append(out, p)
		}
	}
	return out
}
