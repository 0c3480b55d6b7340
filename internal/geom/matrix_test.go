package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMatrixApplyTranslation(t *testing.T) {
	m := Translate(10, -5)
	if got := m.Apply(Vec{X: 1, Y: 2}); got != (Vec{X: 11, Y: -3}) {
		t.Errorf("Apply = %v", got)
	}
}

// A Dir must be immune to the translation part of a transform: control
// handles keep their shape when a path is moved.
func TestMatrixApplyDirIgnoresTranslation(t *testing.T) {
	m := Translate(100, 200)
	d := Dir{X: 3, Y: -4}
	if got := m.ApplyDir(d); got != d {
		t.Errorf("ApplyDir under translation = %v, want %v", got, d)
	}

	rot := RotateAbout(math.Pi/2, Vec{X: 50, Y: 50})
	got := rot.ApplyDir(Dir{X: 1, Y: 0})
	if diff := cmp.Diff(Dir{X: 0, Y: 1}, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("ApplyDir under rotation about a point (-want +got):\n%s", diff)
	}
}

func TestRotateAboutFixesCenter(t *testing.T) {
	center := Vec{X: 30, Y: 40}
	m := RotateAbout(1.234, center)
	got := m.Apply(center)
	if diff := cmp.Diff(center, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("center moved (-want +got):\n%s", diff)
	}
}

func TestScaleAboutFixesOrigin(t *testing.T) {
	origin := Vec{X: 10, Y: 10}
	m := ScaleAbout(2, 3, origin)
	if diff := cmp.Diff(origin, m.Apply(origin), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("origin moved (-want +got):\n%s", diff)
	}
	got := m.Apply(Vec{X: 11, Y: 11})
	if diff := cmp.Diff(Vec{X: 12, Y: 13}, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("scaled point (-want +got):\n%s", diff)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := Translate(5, 7).Multiply(Rotate(0.7)).Multiply(Scale(2, 0.5))
	id := m.Multiply(m.Invert())
	if !id.IsIdentity() {
		t.Errorf("m * m^-1 = %v, want identity", id)
	}
}

func TestInvertSingular(t *testing.T) {
	m := Scale(0, 0)
	if got := m.Invert(); !got.IsIdentity() {
		t.Errorf("singular Invert = %v, want identity fallback", got)
	}
}

func TestRectFromCorners(t *testing.T) {
	r := RectFromCorners(Vec{X: 10, Y: 20}, Vec{X: 2, Y: 5})
	want := Rect{X: 2, Y: 5, Width: 8, Height: 15}
	if r != want {
		t.Errorf("RectFromCorners = %v, want %v", r, want)
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"touching edge", Rect{X: 10, Y: 0, Width: 5, Height: 5}, true},
		{"disjoint", Rect{X: 20, Y: 20, Width: 5, Height: 5}, false},
		{"degenerate point inside", Rect{X: 3, Y: 3, Width: 0, Height: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 5, Height: 5}
	b := Rect{X: 10, Y: 10, Width: 5, Height: 5}
	want := Rect{X: 0, Y: 0, Width: 15, Height: 15}
	if got := a.Union(b); got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty Union = %v, want %v", got, b)
	}
}

func TestRectUnionKeepsDegenerateSpans(t *testing.T) {
	// A horizontal stroke's bounds have zero height but still carry extent.
	stroke := Rect{X: 0, Y: 0, Width: 100, Height: 0}
	box := Rect{X: 20, Y: 50, Width: 10, Height: 10}
	want := Rect{X: 0, Y: 0, Width: 100, Height: 60}
	if got := stroke.Union(box); got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
	if got := box.Union(stroke); got != want {
		t.Errorf("reversed Union = %v, want %v", got, want)
	}

	vertical := Rect{X: 40, Y: -30, Width: 0, Height: 30}
	want = Rect{X: 0, Y: -30, Width: 100, Height: 30}
	if got := stroke.Union(vertical); got != want {
		t.Errorf("span Union = %v, want %v", got, want)
	}
}
