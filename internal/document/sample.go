package document

import (
	"time"

	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
	"github.com/glyphforge/glyphforge/backend-go/internal/typeid"
)

// NewSampleDocument builds the built-in sample font: an "O" with a counter
// (a compound outline), a slashed "L" drawn with freehand lines, and a dot
// glyph, so every path variant shows up in a fresh workspace.
func NewSampleDocument(fontID string) *FontDocument {
	now := time.Now().UTC().Format(time.RFC3339)

	oID := typeid.NewGlyphID()
	lID := typeid.NewGlyphID()
	dotID := typeid.NewGlyphID()

	return &FontDocument{
		Font: Font{
			ID:         fontID,
			Name:       "Sample Sans",
			Version:    1,
			UnitsPerEm: 1000,
			Ascent:     800,
			Descent:    -200,
			CreatedAt:  now,
			UpdatedAt:  now,
			Glyphs:     []string{oID, lID, dotID},
		},
		Glyphs: map[string]Glyph{
			oID: {
				ID:      oID,
				Name:    "O",
				Unicode: "O",
				Advance: 640,
				Paths: []path.Path{
					{
						ID:   typeid.NewPathID(),
						Kind: path.KindOutline,
						Contours: [][]path.Segment{
							ovalContour(geom.Vec{X: 320, Y: 400}, 260, 360),
							ovalContour(geom.Vec{X: 320, Y: 400}, 170, 270),
						},
					},
				},
			},
			lID: {
				ID:      lID,
				Name:    "L",
				Unicode: "L",
				Advance: 520,
				Paths: []path.Path{
					{
						ID:      typeid.NewPathID(),
						Kind:    path.KindFreehand,
						Subtype: path.SubtypeLine,
						Points:  []geom.Vec{{X: 140, Y: 60}, {X: 140, Y: 740}},
					},
					{
						ID:      typeid.NewPathID(),
						Kind:    path.KindFreehand,
						Subtype: path.SubtypeLine,
						Points:  []geom.Vec{{X: 140, Y: 740}, {X: 440, Y: 740}},
					},
				},
			},
			dotID: {
				ID:      dotID,
				Name:    "period",
				Unicode: ".",
				Advance: 260,
				Paths: []path.Path{
					{
						ID:      typeid.NewPathID(),
						Kind:    path.KindFreehand,
						Subtype: path.SubtypeDot,
						Points:  []geom.Vec{{X: 130, Y: 700}},
					},
				},
			},
		},
	}
}

// ovalContour approximates an ellipse with four cubic segments. The handle
// length factor 0.5523 is the standard circle approximation constant.
func ovalContour(center geom.Vec, rx, ry float64) []path.Segment {
	const k = 0.5523
	return []path.Segment{
		{
			Point:     geom.Vec{X: center.X + rx, Y: center.Y},
			HandleIn:  geom.Dir{X: 0, Y: -ry * k},
			HandleOut: geom.Dir{X: 0, Y: ry * k},
		},
		{
			Point:     geom.Vec{X: center.X, Y: center.Y + ry},
			HandleIn:  geom.Dir{X: rx * k, Y: 0},
			HandleOut: geom.Dir{X: -rx * k, Y: 0},
		},
		{
			Point:     geom.Vec{X: center.X - rx, Y: center.Y},
			HandleIn:  geom.Dir{X: 0, Y: ry * k},
			HandleOut: geom.Dir{X: 0, Y: -ry * k},
		},
		{
			Point:     geom.Vec{X: center.X, Y: center.Y - ry},
			HandleIn:  geom.Dir{X: -rx * k, Y: 0},
			HandleOut: geom.Dir{X: rx * k, Y: 0},
		},
	}
}
