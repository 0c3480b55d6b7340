package collab

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/glyphforge/glyphforge/backend-go/internal/document"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
)

// DocumentState holds the authoritative font document for a room.
type DocumentState struct {
	mu        sync.RWMutex
	doc       *document.FontDocument
	serverSeq int64
	opLog     []Operation
	dirty     bool
}

// NewDocumentState creates a new document state from an initial document.
func NewDocumentState(doc *document.FontDocument) *DocumentState {
	return &DocumentState{
		doc:   doc,
		opLog: make([]Operation, 0),
	}
}

// GetDocument returns the current document. Callers must not mutate it.
func (ds *DocumentState) GetDocument() *document.FontDocument {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.doc
}

// MarshalDocument serializes the current document under the read lock.
func (ds *DocumentState) MarshalDocument() (json.RawMessage, int64, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	data, err := json.Marshal(ds.doc)
	return data, ds.serverSeq, err
}

// Dirty reports whether the document changed since the last ClearDirty.
func (ds *DocumentState) Dirty() bool {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.dirty
}

// ClearDirty marks the document as persisted.
func (ds *DocumentState) ClearDirty() {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.dirty = false
}

// ApplyOperation applies an operation to the document and returns the server
// sequence.
func (ds *DocumentState) ApplyOperation(op Operation) (int64, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := ds.applyOperationLocked(op); err != nil {
		return 0, err
	}

	ds.serverSeq++
	ds.opLog = append(ds.opLog, op)
	ds.dirty = true

	return ds.serverSeq, nil
}

func (ds *DocumentState) applyOperationLocked(op Operation) error {
	switch op.Type {
	case OpGlyphPathsApply:
		return ds.applyPaths(op)
	case OpGlyphAdvance:
		return ds.applyAdvance(op)
	case OpGlyphCreate:
		return ds.applyGlyphCreate(op)
	case OpGlyphDelete:
		return ds.applyGlyphDelete(op)
	case OpFontRename:
		return ds.applyFontRename(op)
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

// applyPaths replaces a glyph's entire path collection. This is the commit a
// glyph editing session emits on every completed gesture.
func (ds *DocumentState) applyPaths(op Operation) error {
	glyph, ok := ds.doc.Glyphs[op.GlyphID]
	if !ok {
		return fmt.Errorf("glyph not found: %s", op.GlyphID)
	}

	var paths []path.Path
	if err := json.Unmarshal(op.Paths, &paths); err != nil {
		return fmt.Errorf("invalid paths: %w", err)
	}

	glyph.Paths = paths
	ds.doc.Glyphs[op.GlyphID] = glyph
	return nil
}

func (ds *DocumentState) applyAdvance(op Operation) error {
	glyph, ok := ds.doc.Glyphs[op.GlyphID]
	if !ok {
		return fmt.Errorf("glyph not found: %s", op.GlyphID)
	}
	if op.Advance == nil {
		return fmt.Errorf("missing advance value")
	}

	glyph.Advance = *op.Advance
	ds.doc.Glyphs[op.GlyphID] = glyph
	return nil
}

func (ds *DocumentState) applyGlyphCreate(op Operation) error {
	var glyph document.Glyph
	if err := json.Unmarshal(op.Glyph, &glyph); err != nil {
		return fmt.Errorf("invalid glyph: %w", err)
	}
	if glyph.ID == "" {
		return fmt.Errorf("glyph id is required")
	}

	ds.doc.Glyphs[glyph.ID] = glyph
	ds.doc.Font.Glyphs = append(ds.doc.Font.Glyphs, glyph.ID)
	return nil
}

func (ds *DocumentState) applyGlyphDelete(op Operation) error {
	if _, ok := ds.doc.Glyphs[op.GlyphID]; !ok {
		return fmt.Errorf("glyph not found: %s", op.GlyphID)
	}

	delete(ds.doc.Glyphs, op.GlyphID)
	order := make([]string, 0, len(ds.doc.Font.Glyphs))
	for _, id := range ds.doc.Font.Glyphs {
		if id != op.GlyphID {
			order = append(order, id)
		}
	}
	ds.doc.Font.Glyphs = order
	return nil
}

func (ds *DocumentState) applyFontRename(op Operation) error {
	ds.doc.Font.Name = op.Name
	return nil
}

// GetServerTimestamp returns the current server timestamp.
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
