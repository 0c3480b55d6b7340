package document

// FontDocument is the full editable state of one font project: font-wide
// metadata plus every glyph's vector paths. It is the unit of snapshot
// persistence and of document sync over the collaboration channel.

import (
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
)

type FontDocument struct {
	Font   Font             `json:"font"`
	Glyphs map[string]Glyph `json:"glyphs"`
}

type Font struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Version    int      `json:"version"`
	UnitsPerEm int      `json:"unitsPerEm"`
	Ascent     float64  `json:"ascent"`
	Descent    float64  `json:"descent"`
	CreatedAt  string   `json:"createdAt"`
	UpdatedAt  string   `json:"updatedAt"`
	Glyphs     []string `json:"glyphs"`
}

// Glyph is one drawable character: its paths live in the fixed logical
// canvas space (0..UnitsPerEm).
type Glyph struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Unicode string      `json:"unicode,omitempty"`
	Advance float64     `json:"advance"`
	Paths   []path.Path `json:"paths"`
}

// NewEmptyDocument creates a document for a new font project with a single
// blank glyph.
func NewEmptyDocument(fontID, fontName, glyphID string) *FontDocument {
	return &FontDocument{
		Font: Font{
			ID:         fontID,
			Name:       fontName,
			Version:    1,
			UnitsPerEm: 1000,
			Ascent:     800,
			Descent:    -200,
			Glyphs:     []string{glyphID},
		},
		Glyphs: map[string]Glyph{
			glyphID: {
				ID:      glyphID,
				Name:    "A",
				Unicode: "A",
				Advance: 600,
				Paths:   []path.Path{},
			},
		},
	}
}
