// internal/core/clipboard.go
package core

import (
	"github.com/atotto/clipboard"
	"github.com/wovenlab/loom/internal/logger"
)

// YankSelection copies the selected text to the clipboard and clears the
// selection. Returns false when nothing was selected.
func (e *Editor) YankSelection() (bool, error) {
	startByte, endByte, ok := e.selectionByteRange()
	if !ok {
		return false, nil
	}

	content := e.buffer.BytesRange(startByte, endByte)
	e.writeClipboard(content)
	e.ClearSelection()

	logger.Debugf("editor: yanked %d bytes", len(content))
	return true, nil
}

// CutSelection copies the selected text to the clipboard and removes it as
// a single revision. Returns false when nothing was selected.
func (e *Editor) CutSelection() (bool, error) {
	startByte, endByte, ok := e.selectionByteRange()
	if !ok {
		return false, nil
	}

	content := e.buffer.BytesRange(startByte, endByte)
	e.writeClipboard(content)
	if err := e.deleteSelection(); err != nil {
		return false, err
	}

	logger.Debugf("editor: cut %d bytes", len(content))
	return true, nil
}

// Paste inserts the clipboard contents at the cursor, replacing an active
// selection. Returns false when the clipboard is empty.
func (e *Editor) Paste() (bool, error) {
	content := e.readClipboard()
	if len(content) == 0 {
		return false, nil
	}

	if e.HasSelection() {
		if err := e.deleteSelection(); err != nil {
			return false, err
		}
	}

	if err := e.InsertText(content); err != nil {
		return false, err
	}
	logger.Debugf("editor: pasted %d bytes", len(content))
	return true, nil
}

// writeClipboard stores content in the internal register and, when
// enabled, mirrors it to the system clipboard. A system clipboard failure
// degrades to the register.
func (e *Editor) writeClipboard(content []byte) {
	e.register = append([]byte(nil), content...)
	if !e.systemClipboard {
		return
	}
	if err := clipboard.WriteAll(string(content)); err != nil {
		logger.Warnf("editor: system clipboard write failed: %v", err)
	}
}

// readClipboard prefers the system clipboard when enabled and non-empty,
// falling back to the internal register.
func (e *Editor) readClipboard() []byte {
	if e.systemClipboard {
		if s, err := clipboard.ReadAll(); err == nil && s != "" {
			return []byte(s)
		}
	}
	return e.register
}
