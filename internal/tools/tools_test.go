package tools

import (
	"fmt"

	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
)

// testEnv builds an Env over a path collection and captures commits.
type testEnv struct {
	*Env
	committed [][]path.Path
	nextID    int
}

func newTestEnv(paths ...path.Path) *testEnv {
	te := &testEnv{}
	te.Env = &Env{
		Paths:       path.ClonePaths(paths),
		Selection:   make(map[string]bool),
		Zoom:        1,
		StrokeWidth: 2,
		NewID: func() string {
			te.nextID++
			return fmt.Sprintf("path_new%d", te.nextID)
		},
		Commit: func(p []path.Path) {
			te.committed = append(te.committed, path.ClonePaths(p))
		},
	}
	return te
}

func (te *testEnv) lastCommit() []path.Path {
	if len(te.committed) == 0 {
		return nil
	}
	return te.committed[len(te.committed)-1]
}

func (te *testEnv) find(id string) (path.Path, bool) {
	for _, p := range te.Paths {
		if p.ID == id {
			return p, true
		}
	}
	return path.Path{}, false
}

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

func penStroke(id string, pts ...geom.Vec) path.Path {
	return path.Path{ID: id, Kind: path.KindFreehand, Subtype: path.SubtypePen, Points: pts}
}
