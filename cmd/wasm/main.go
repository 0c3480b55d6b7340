//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/glyphforge/glyphforge/backend-go/internal/document"
	"github.com/glyphforge/glyphforge/backend-go/internal/editor"
	"github.com/glyphforge/glyphforge/backend-go/internal/geom"
	"github.com/glyphforge/glyphforge/backend-go/internal/path"
	"github.com/glyphforge/glyphforge/backend-go/internal/tools"
)

var (
	doc         *document.FontDocument
	activeGlyph string
	session     *editor.Session

	// commitSeq increments every time a gesture commits paths. The frontend
	// polls it to know when to read the document back and sync peers.
	commitSeq int
)

func main() {
	session = editor.NewSession(onCommit)

	engine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	engine.Set("loadDocument", js.FuncOf(loadDocument))
	engine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	engine.Set("setActiveGlyph", js.FuncOf(setActiveGlyph))
	engine.Set("applyRemotePaths", js.FuncOf(applyRemotePaths))
	engine.Set("setTool", js.FuncOf(setTool))
	engine.Set("setStrokeWidth", js.FuncOf(setStrokeWidth))
	engine.Set("setMoveOnly", js.FuncOf(setMoveOnly))
	engine.Set("setConstraint", js.FuncOf(setConstraint))
	engine.Set("setSelection", js.FuncOf(setSelection))
	engine.Set("setViewport", js.FuncOf(setViewport))
	engine.Set("fitContent", js.FuncOf(fitContent))
	engine.Set("pointerDown", js.FuncOf(pointerDown))
	engine.Set("pointerMove", js.FuncOf(pointerMove))
	engine.Set("pointerUp", js.FuncOf(pointerUp))
	engine.Set("doubleClick", js.FuncOf(doubleClick))
	engine.Set("deleteKey", js.FuncOf(deleteKey))
	engine.Set("wheel", js.FuncOf(wheel))
	engine.Set("tick", js.FuncOf(tick))

	// --- Queries (frontend ← backend) ---
	engine.Set("render", js.FuncOf(render))
	engine.Set("getDocument", js.FuncOf(getDocument))
	engine.Set("getGlyphPaths", js.FuncOf(getGlyphPaths))
	engine.Set("getActiveGlyph", js.FuncOf(getActiveGlyph))
	engine.Set("getSelection", js.FuncOf(getSelection))
	engine.Set("getTool", js.FuncOf(getTool))
	engine.Set("getCommitSeq", js.FuncOf(getCommitSeq))

	js.Global().Set("glyphforgeEngine", engine)
	js.Global().Set("glyphforgeWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// onCommit writes a finished gesture's paths back into the active glyph.
func onCommit(paths []path.Path) {
	if doc == nil || activeGlyph == "" {
		return
	}
	glyph, ok := doc.Glyphs[activeGlyph]
	if !ok {
		return
	}
	glyph.Paths = path.ClonePaths(paths)
	doc.Glyphs[activeGlyph] = glyph
	commitSeq++
}

func errResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": msg})
}

func okResult() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errResult("missing document JSON")
	}

	var loaded document.FontDocument
	if err := json.Unmarshal([]byte(args[0].String()), &loaded); err != nil {
		return errResult(err.Error())
	}
	if loaded.Glyphs == nil {
		loaded.Glyphs = make(map[string]document.Glyph)
	}

	doc = &loaded
	activeGlyph = ""
	if len(doc.Font.Glyphs) > 0 {
		selectGlyph(doc.Font.Glyphs[0])
	}
	return okResult()
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	fontID := "font_sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		fontID = args[0].String()
	}
	doc = document.NewSampleDocument(fontID)
	activeGlyph = ""
	if len(doc.Font.Glyphs) > 0 {
		selectGlyph(doc.Font.Glyphs[0])
	}
	return okResult()
}

func setActiveGlyph(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || doc == nil {
		return errResult("no document")
	}
	glyphID := args[0].String()
	if _, ok := doc.Glyphs[glyphID]; !ok {
		return errResult("glyph not found: " + glyphID)
	}
	selectGlyph(glyphID)
	return okResult()
}

func selectGlyph(glyphID string) {
	activeGlyph = glyphID
	session.LoadPaths(doc.Glyphs[glyphID].Paths)
}

// applyRemotePaths applies a collaborator's committed paths. The active glyph
// reloads without disturbing viewport or tool state.
func applyRemotePaths(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 || doc == nil {
		return errResult("missing arguments")
	}
	glyphID := args[0].String()
	glyph, ok := doc.Glyphs[glyphID]
	if !ok {
		return errResult("glyph not found: " + glyphID)
	}

	var paths []path.Path
	if err := json.Unmarshal([]byte(args[1].String()), &paths); err != nil {
		return errResult(err.Error())
	}

	glyph.Paths = paths
	doc.Glyphs[glyphID] = glyph
	if glyphID == activeGlyph {
		session.LoadPaths(paths)
	}
	return okResult()
}

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	kind, ok := tools.ParseKind(args[0].String())
	if !ok {
		return errResult("unknown tool: " + args[0].String())
	}
	session.SetTool(kind)
	return okResult()
}

func setStrokeWidth(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	session.SetStrokeWidth(args[0].Float())
	return nil
}

func setMoveOnly(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	session.SetMoveOnly(args[0].Bool())
	return nil
}

func setConstraint(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	switch args[0].String() {
	case "horizontal":
		session.SetConstraint(tools.ConstraintHorizontal)
	case "vertical":
		session.SetConstraint(tools.ConstraintVertical)
	default:
		session.SetConstraint(tools.ConstraintNone)
	}
	return nil
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		session.SetSelection(nil)
		return nil
	}

	arr := args[0]
	ids := make([]string, arr.Length())
	for i := 0; i < arr.Length(); i++ {
		ids[i] = arr.Index(i).String()
	}
	session.SetSelection(ids)
	return nil
}

func setViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	session.SetViewport(args[0].Float(), geom.Vec{X: args[1].Float(), Y: args[2].Float()})
	return nil
}

func fitContent(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	session.FitContent(args[0].Float(), args[1].Float(), args[2].Float())
	return nil
}

func modsFrom(args []js.Value, i int) tools.Modifiers {
	var mod tools.Modifiers
	if len(args) > i {
		mod.Shift = args[i].Bool()
	}
	return mod
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	session.PointerDown(args[0].Int(), geom.Vec{X: args[1].Float(), Y: args[2].Float()}, modsFrom(args, 3))
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	session.PointerMove(args[0].Int(), geom.Vec{X: args[1].Float(), Y: args[2].Float()}, modsFrom(args, 3))
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	session.PointerUp(args[0].Int(), geom.Vec{X: args[1].Float(), Y: args[2].Float()}, modsFrom(args, 3))
	return nil
}

func doubleClick(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	session.DoubleClick(geom.Vec{X: args[0].Float(), Y: args[1].Float()}, modsFrom(args, 2))
	return nil
}

func deleteKey(this js.Value, args []js.Value) interface{} {
	session.DeleteKey()
	return nil
}

func wheel(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	session.Wheel(args[0].Float(), geom.Vec{X: args[1].Float(), Y: args[2].Float()})
	return nil
}

func tick(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(session.Tick())
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(session.SnapshotJSON())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	if doc == nil {
		return js.ValueOf("null")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return js.ValueOf("null")
	}
	return js.ValueOf(string(data))
}

func getGlyphPaths(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(session.Paths())
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(string(data))
}

func getActiveGlyph(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(activeGlyph)
}

func getSelection(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(session.Selection())
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(string(data))
}

func getTool(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(session.Tool().String())
}

func getCommitSeq(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(commitSeq)
}
