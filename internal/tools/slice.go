package tools

import (
	"math"
	"sort"

	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
	"github.com/glyphforge/glyphforge/backend-go/internal/hittest"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
)

const (
	// densifySpacing is the maximum distance between consecutive points of an
	// emitted piece. Downstream rendering smooths pen paths; without dense
	// intermediate points the straight cut edge would bow.
	densifySpacing = 4.0
	// minPieceLength suppresses near-zero-length slice artifacts.
	minPieceLength = 6.0
	// cutMergeEps: intersections closer than this collapse into one, so a cut
	// passing exactly through a vertex does not double-count.
	cutMergeEps = 1e-6
)

// SliceTool cuts the single path under the drag line into open pieces,
// preserving every other path unchanged.
type SliceTool struct {
	active bool
	p1, p2 geom.Vec
	target string
}

// Target returns the ID of the path highlighted under the cut, for preview.
func (t *SliceTool) Target() (string, bool) {
	return t.target, t.active && t.target != ""
}

// CutLine returns the current cut line endpoints while dragging.
func (t *SliceTool) CutLine() (geom.Vec, geom.Vec, bool) {
	return t.p1, t.p2, t.active
}

// Start begins drawing the cut line.
func (t *SliceTool) Start(env *Env, pt geom.Vec, mod Modifiers) {
	t.active = true
	t.p1 = pt
	t.p2 = pt
	t.target = ""
	t.updateTarget(env, pt)
}

// Move extends the cut line and refreshes the highlighted path.
func (t *SliceTool) Move(env *Env, pt geom.Vec, mod Modifiers) {
	if !t.active {
		return
	}
	t.p2 = pt
	t.updateTarget(env, pt)
}

func (t *SliceTool) updateTarget(env *Env, pt geom.Vec) {
	if id, ok := hittest.HitPath(env.Paths, pt, hittest.Options{
		Zoom:        env.Zoom,
		StrokeWidth: env.StrokeWidth,
	}); ok {
		t.target = id
	}
}

// End commits the slice. The highlighted path is reconstructed into open
// pieces; a cut with no intersections is a no-op. The first produced piece
// becomes the selection.
func (t *SliceTool) End(env *Env, pt geom.Vec, mod Modifiers) {
	if !t.active {
		return
	}
	t.active = false
	t.p2 = pt

	if t.target == "" || t.p1.DistanceTo(t.p2) == 0 {
		return
	}

	out, newIDs := slicePath(env.Paths, t.target, t.p1, t.p2, env.NewID)
	if newIDs == nil {
		return
	}
	env.Paths = path.ClonePaths(out)
	env.SelectOnly(newIDs[0])
	env.Commit(out)
}

// slicePath replaces the target path with its cut pieces. It returns the new
// collection and the IDs of the produced pieces; a nil ID slice means the cut
// missed and nothing changed.
func slicePath(paths []path.Path, targetID string, p1, p2 geom.Vec, newID func() string) ([]path.Path, []string) {
	var target *path.Path
	for i := range paths {
		if paths[i].ID == targetID {
			target = &paths[i]
			break
		}
	}
	if target == nil {
		return paths, nil
	}

	closed := target.IsClosed()
	var pieces [][]geom.Vec
	cutCount := 0
	for _, poly := range target.Flatten() {
		polyPieces, cuts := cutPolyline(poly, closed, p1, p2)
		cutCount += cuts
		pieces = append(pieces, polyPieces...)
	}
	if cutCount == 0 {
		return paths, nil
	}

	var newIDs []string
	out := make([]path.Path, 0, len(paths)+len(pieces))
	for _, p := range paths {
		if p.ID != targetID {
			out = append(out, p)
			continue
		}
		for _, piece := range pieces {
			piece = densify(piece, densifySpacing)
			if geom.PolylineLength(piece) < minPieceLength {
				continue
			}
			id := newID()
			newIDs = append(newIDs, id)
			out = append(out, path.Path{
				ID:      id,
				Kind:    path.KindFreehand,
				Subtype: path.SubtypePen,
				Points:  piece,
			})
		}
	}
	if len(newIDs) == 0 {
		return paths, nil
	}
	return out, newIDs
}

// polyCut is one intersection of the cut line with a polyline, tagged with
// the edge it falls on.
type polyCut struct {
	pt   geom.Vec
	edge int
	t    float64 // parameter along the edge
}

// cutPolyline splits one polyline at its intersections with the cut segment
// (p1, p2). Closed polylines include the wrap-around edge and have their head
// and tail pieces merged, so a loop cut k times yields k open arcs — a slice
// through a closed shape never re-closes a piece into a loop. Open polylines
// split into N+1 pieces at N cuts. Zero cuts returns the polyline unchanged.
func cutPolyline(poly []geom.Vec, closed bool, p1, p2 geom.Vec) ([][]geom.Vec, int) {
	n := len(poly)
	if n < 2 {
		return [][]geom.Vec{poly}, 0
	}

	edgeCount := n - 1
	if closed && n > 2 {
		edgeCount = n
	}

	var cuts []polyCut
	for i := 0; i < edgeCount; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		pt, t, ok := geom.SegmentIntersection(a, b, p1, p2)
		if !ok {
			continue
		}
		if len(cuts) > 0 {
			last := cuts[len(cuts)-1]
			if last.pt.DistanceTo(pt) < cutMergeEps {
				continue
			}
		}
		cuts = append(cuts, polyCut{pt: pt, edge: i, t: t})
	}
	if len(cuts) == 0 {
		return [][]geom.Vec{poly}, 0
	}
	sort.Slice(cuts, func(i, j int) bool {
		if cuts[i].edge != cuts[j].edge {
			return cuts[i].edge < cuts[j].edge
		}
		return cuts[i].t < cuts[j].t
	})

	// Walk the vertex list inserting each intersection at its edge index,
	// starting a new piece at every cut.
	var pieces [][]geom.Vec
	cur := []geom.Vec{poly[0]}
	ci := 0
	for i := 0; i < edgeCount; i++ {
		for ci < len(cuts) && cuts[ci].edge == i {
			cur = append(cur, cuts[ci].pt)
			pieces = append(pieces, cur)
			cur = []geom.Vec{cuts[ci].pt}
			ci++
		}
		cur = append(cur, poly[(i+1)%n])
	}
	pieces = append(pieces, cur)

	if closed && len(pieces) > 1 {
		// The source was a loop: the tail piece continues into the head piece.
		tail := pieces[len(pieces)-1]
		head := pieces[0]
		merged := append(tail, head[1:]...)
		pieces = append([][]geom.Vec{merged}, pieces[1:len(pieces)-1]...)
	}
	return pieces, len(cuts)
}

// densify inserts intermediate points so no two consecutive points are
// farther apart than maxSpacing.
func densify(points []geom.Vec, maxSpacing float64) []geom.Vec {
	if len(points) < 2 {
		return points
	}
	out := []geom.Vec{points[0]}
	for i := 1; i < len(points); i++ {
		a := points[i-1]
		b := points[i]
		dist := a.DistanceTo(b)
		steps := int(math.Ceil(dist / maxSpacing))
		for s := 1; s < steps; s++ {
			out = append(out, a.Lerp(b, float64(s)/float64(steps)))
		}
		out = append(out, b)
	}
	return out
}
