//go:build js && wasm

package main

import (
	"log/slog"
	"os"
	"syscall/js"

	"github.com/vecedit/vecedit/internal/config"
	"github.com/vecedit/vecedit/internal/engine"
)

var eng *engine.Engine

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	setting, err := config.Load()
	if err != nil {
		slog.Warn("config not loaded, using defaults", "error", err)
		setting = config.Default()
	}
	eng = engine.NewEngine(setting, slog.Default())

	// Create the engine API object
	api := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	api.Set("loadDocument", js.FuncOf(loadDocument))
	api.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	api.Set("setTool", js.FuncOf(setTool))
	api.Set("setSelection", js.FuncOf(setSelection))
	api.Set("pointerDown", js.FuncOf(pointerDown))
	api.Set("pointerMove", js.FuncOf(pointerMove))
	api.Set("pointerUp", js.FuncOf(pointerUp))
	api.Set("keyDown", js.FuncOf(keyDown))
	api.Set("keyUp", js.FuncOf(keyUp))
	api.Set("contextMenu", js.FuncOf(contextMenu))
	api.Set("zoom", js.FuncOf(zoom))
	api.Set("pan", js.FuncOf(pan))
	api.Set("zoomToFit", js.FuncOf(zoomToFit))

	// --- Queries (frontend ← backend) ---
	api.Set("render", js.FuncOf(render))
	api.Set("hitTest", js.FuncOf(hitTest))
	api.Set("getTool", js.FuncOf(getTool))
	api.Set("getSelection", js.FuncOf(getSelection))
	api.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	api.Set("getMenuState", js.FuncOf(getMenuState))
	api.Set("getDocument", js.FuncOf(getDocument))
	api.Set("getViewport", js.FuncOf(getViewport))
	api.Set("getSessionId", js.FuncOf(getSessionID))

	js.Global().Set("vecedit", api)
	js.Global().Set("veceditWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func result(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func boolArg(args []js.Value, i int) bool {
	return len(args) > i && args[i].Type() == js.TypeBoolean && args[i].Bool()
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}
	return result(eng.LoadDocument(args[0].String()))
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	return result(eng.LoadSampleDocument())
}

func setTool(this js.Value, args []js.Value) interface{} {
	hotkey := ""
	if len(args) > 0 && args[0].Type() == js.TypeString {
		hotkey = args[0].String()
	}
	return result(eng.SetTool(hotkey))
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}
	arr := args[0]
	ids := make([]string, arr.Length())
	for i := range ids {
		ids[i] = arr.Index(i).String()
	}
	eng.SetSelection(ids)
	return nil
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerDown(args[0].Float(), args[1].Float(), boolArg(args, 2))
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("{}")
	}
	return js.ValueOf(eng.PointerMove(args[0].Float(), args[1].Float(), boolArg(args, 2)))
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	return result(eng.PointerUp(args[0].Float(), args[1].Float(), boolArg(args, 2)))
}

func keyEvent(args []js.Value) engine.KeyEvent {
	ev := engine.KeyEvent{Mod: boolArg(args, 1), Shift: boolArg(args, 2)}
	if len(args) > 0 {
		ev.Key = args[0].String()
	}
	return ev
}

func keyDown(this js.Value, args []js.Value) interface{} {
	handled, err := eng.KeyDown(keyEvent(args))
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"handled": handled})
}

func keyUp(this js.Value, args []js.Value) interface{} {
	eng.KeyUp(keyEvent(args))
	return nil
}

func contextMenu(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing action"})
	}
	return result(eng.ContextMenu(args[0].String()))
}

func zoom(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	eng.Zoom(args[0].Float(), args[1].Float(), args[2].Float())
	return nil
}

func pan(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.Pan(args[0].Float(), args[1].Float())
	return nil
}

func zoomToFit(this js.Value, args []js.Value) interface{} {
	eng.ZoomToFit()
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func getTool(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Tool())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelection())
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getMenuState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetMenuState())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}

func getViewport(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetViewport())
}

func getSessionID(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.SessionID())
}
