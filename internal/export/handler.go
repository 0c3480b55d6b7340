package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/glyphforge/glyphforge/backend-go/internal/path"
)

const maxRequestSize = 20 << 20 // 20MB

// ExportRequest carries the paths of one glyph to serialize.
type ExportRequest struct {
	Name        string      `json:"name"`
	Paths       []path.Path `json:"paths"`
	StrokeWidth float64     `json:"strokeWidth"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ExportSVG handles POST /export/svg. The client posts the glyph's paths and
// receives the rendered SVG as a file download.
func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Paths) == 0 {
		http.Error(w, "no paths to export", http.StatusBadRequest)
		return
	}
	for i := range req.Paths {
		if !req.Paths[i].Valid() {
			http.Error(w, fmt.Sprintf("invalid path at index %d", i), http.StatusBadRequest)
			return
		}
	}

	if req.StrokeWidth <= 0 {
		req.StrokeWidth = 2
	}

	name := req.Name
	if name == "" {
		name = "glyph"
	}
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)

	svg := RenderSVG(req.Paths, req.StrokeWidth)

	slog.Info("export complete", "name", name, "paths", len(req.Paths), "size", len(svg))

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.svg"`, name))
	w.Header().Set("Content-Length", strconv.Itoa(len(svg)))
	w.Write([]byte(svg))
}
