// internal/core/selection.go
package core

import (
	"github.com/wovenlab/loom/internal/types"
)

// HasSelection reports whether a non-empty selection is active.
func (e *Editor) HasSelection() bool {
	return e.selecting && e.selectionStart != e.selectionEnd
}

// GetSelection returns the normalized selection range (start before end),
// or ok=false when no selection is active.
func (e *Editor) GetSelection() (start, end types.Position, ok bool) {
	if !e.HasSelection() {
		invalid := types.Position{Line: -1, Col: -1}
		return invalid, invalid, false
	}

	start, end = e.selectionStart, e.selectionEnd
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, true
}

// ClearSelection deactivates the selection.
func (e *Editor) ClearSelection() {
	e.selecting = false
	e.selectionStart = types.Position{Line: -1, Col: -1}
	e.selectionEnd = types.Position{Line: -1, Col: -1}
}

// StartOrUpdateSelection anchors a new selection at the cursor, or extends
// the active one to it. Called before shift-modified movement.
func (e *Editor) StartOrUpdateSelection() {
	if !e.selecting {
		e.selectionStart = e.Cursor
		e.selecting = true
	}
	e.selectionEnd = e.Cursor
}

// selectionByteRange resolves the active selection to byte offsets.
func (e *Editor) selectionByteRange() (startByte, endByte int, ok bool) {
	start, end, ok := e.GetSelection()
	if !ok {
		return 0, 0, false
	}
	startByte, err := e.buffer.PosToByteOffset(start)
	if err != nil {
		return 0, 0, false
	}
	endByte, err = e.buffer.PosToByteOffset(end)
	if err != nil {
		return 0, 0, false
	}
	return startByte, endByte, true
}
