package export

import (
	"fmt"
	"strings"

	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
)

// svgMargin pads the viewBox so stroked paths are not clipped at the edges.
const svgMargin = 4.0

// RenderSVG serializes a set of paths as a standalone SVG document. Outline
// paths become filled bezier contours; freehand paths become stroked
// polylines or curves, matching how the canvas renders them.
func RenderSVG(paths []path.Path, strokeWidth float64) string {
	bounds := path.BoundsOf(paths)
	margin := svgMargin + strokeWidth/2
	viewBox := fmt.Sprintf("%s %s %s %s",
		num(bounds.X-margin), num(bounds.Y-margin),
		num(bounds.Width+2*margin), num(bounds.Height+2*margin))

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s">`+"\n", viewBox)

	for _, p := range paths {
		d := PathData(p)
		if d == "" {
			continue
		}
		if p.Kind == path.KindOutline {
			fmt.Fprintf(&b, `  <path d="%s" fill="black" fill-rule="evenodd"/>`+"\n", d)
		} else {
			fmt.Fprintf(&b, `  <path d="%s" fill="none" stroke="black" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
				d, num(strokeWidth))
		}
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// PathData converts one path to SVG path data.
func PathData(p path.Path) string {
	if p.Kind == path.KindOutline {
		return outlineData(p)
	}
	return freehandData(p)
}

// outlineData emits each contour as M + cubic C spans + Z, one subpath per
// contour so the even-odd fill rule can carve counters.
func outlineData(p path.Path) string {
	var b strings.Builder
	for _, contour := range p.Contours {
		n := len(contour)
		if n < path.MinContourSegments {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "M %s %s", num(contour[0].Point.X), num(contour[0].Point.Y))
		for i := 0; i < n; i++ {
			from := contour[i]
			to := contour[(i+1)%n]
			c1 := from.Out()
			c2 := to.In()
			fmt.Fprintf(&b, " C %s %s %s %s %s %s",
				num(c1.X), num(c1.Y), num(c2.X), num(c2.Y), num(to.Point.X), num(to.Point.Y))
		}
		b.WriteString(" Z")
	}
	return b.String()
}

func freehandData(p path.Path) string {
	pts := p.Points
	if len(pts) == 0 {
		return ""
	}

	switch p.Subtype {
	case path.SubtypeDot:
		return dotData(pts[0])
	case path.SubtypeCurve:
		if len(pts) == 3 {
			return fmt.Sprintf("M %s %s Q %s %s %s %s",
				num(pts[0].X), num(pts[0].Y),
				num(pts[1].X), num(pts[1].Y),
				num(pts[2].X), num(pts[2].Y))
		}
	case path.SubtypePen, path.SubtypeCalligraphy:
		if len(pts) >= 3 {
			return smoothedData(pts, p.IsClosed())
		}
	}

	// Straight polyline for lines, sampled shapes, and short strokes.
	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s", num(pts[0].X), num(pts[0].Y))
	for _, pt := range pts[1:] {
		fmt.Fprintf(&b, " L %s %s", num(pt.X), num(pt.Y))
	}
	if p.IsClosed() {
		b.WriteString(" Z")
	}
	return b.String()
}

// smoothedData renders a stroke as quadratics through segment midpoints, the
// same smoothing the canvas applies to pen strokes.
func smoothedData(pts []geom.Vec, closed bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s", num(pts[0].X), num(pts[0].Y))

	m0 := pts[0].Mid(pts[1])
	fmt.Fprintf(&b, " L %s %s", num(m0.X), num(m0.Y))
	for i := 1; i < len(pts)-1; i++ {
		mid := pts[i].Mid(pts[i+1])
		fmt.Fprintf(&b, " Q %s %s %s %s",
			num(pts[i].X), num(pts[i].Y), num(mid.X), num(mid.Y))
	}
	last := pts[len(pts)-1]
	fmt.Fprintf(&b, " L %s %s", num(last.X), num(last.Y))
	if closed {
		b.WriteString(" Z")
	}
	return b.String()
}

// dotData draws a dot as two arcs forming a small filled circle.
func dotData(center geom.Vec) string {
	const r = 1.5
	return fmt.Sprintf("M %s %s a %s %s 0 1 0 %s 0 a %s %s 0 1 0 %s 0",
		num(center.X-r), num(center.Y),
		num(r), num(r), num(2*r),
		num(r), num(r), num(-2*r))
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
