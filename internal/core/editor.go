// internal/core/editor.go
package core

import (
	"github.com/wovenlab/loom/internal/buffer"
	"github.com/wovenlab/loom/internal/config"
	"github.com/wovenlab/loom/internal/core/history"
	"github.com/wovenlab/loom/internal/event"
	"github.com/wovenlab/loom/internal/syntax"
	"github.com/wovenlab/loom/internal/types"
)

// Editor owns the buffer and everything positioned relative to it: cursor,
// viewport, selection, search matches, the revision tree, and the syntax
// manager. All methods run on the application's main goroutine.
type Editor struct {
	buffer     buffer.Buffer
	Cursor     types.Position
	ViewportY  int // top visible line index
	ViewportX  int // leftmost visible visual column
	viewWidth  int
	viewHeight int // excludes the status bar
	ScrollOff  int
	tabWidth   int

	// --- Selection State ---
	selecting      bool
	selectionStart types.Position // anchor
	selectionEnd   types.Position // follows the cursor while selecting

	// --- Clipboard State ---
	register        []byte // internal yank register
	systemClipboard bool   // mirror yanks to / paste from the OS clipboard

	// --- Search State ---
	searchMatches []types.Region

	// --- Collaborators, injected after construction ---
	eventManager  *event.Manager
	history       *history.Tree
	syntax        *syntax.Manager
	scheduleParse func() // debounced re-parse trigger; app-provided
}

// NewEditor creates an editor over buf. Collaborators are attached with
// the Set* methods; every one of them is optional, which keeps the core
// testable in isolation.
func NewEditor(buf buffer.Buffer) *Editor {
	return &Editor{
		buffer:         buf,
		Cursor:         types.Position{Line: 0, Col: 0},
		ScrollOff:      config.DefaultScrollOff,
		tabWidth:       config.DefaultTabWidth,
		selectionStart: types.Position{Line: -1, Col: -1},
		selectionEnd:   types.Position{Line: -1, Col: -1},
	}
}

// SetTabWidth sets the visual width of a tab stop.
func (e *Editor) SetTabWidth(width int) {
	if width <= 0 {
		width = 1
	}
	e.tabWidth = width
}

// TabWidth returns the visual width of a tab stop. The renderer and the
// cursor math must agree on this value.
func (e *Editor) TabWidth() int {
	return e.tabWidth
}

// SetEventManager attaches the event bus for dispatching change events.
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// SetHistory attaches the revision tree edits are committed to.
func (e *Editor) SetHistory(tree *history.Tree) {
	e.history = tree
}

// SetSyntax attaches the parse manager that tracks edits.
func (e *Editor) SetSyntax(mgr *syntax.Manager) {
	e.syntax = mgr
}

// SetParseScheduler installs the debounced re-parse trigger invoked after
// every committed edit.
func (e *Editor) SetParseScheduler(fn func()) {
	e.scheduleParse = fn
}

// SetSystemClipboard toggles mirroring yanks to the OS clipboard.
func (e *Editor) SetSystemClipboard(enabled bool) {
	e.systemClipboard = enabled
}

// commitEdit records one completed buffer mutation: a revision in the
// history tree, edit bookkeeping on the adopted syntax tree, a modified
// event, and a debounced re-parse. The buffer and cursor must already be
// in their post-edit state.
func (e *Editor) commitEdit(delta types.Delta) {
	if delta.IsEmpty() {
		return
	}
	if e.history != nil {
		idx := e.history.Commit(delta, e.buffer.Bytes(), e.Cursor)
		if e.eventManager != nil {
			e.eventManager.Dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
				HeadIndex: idx,
				Kind:      event.HistoryCommit,
			})
		}
	}
	if e.syntax != nil {
		e.syntax.ApplyEdit(delta)
	}
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Delta: delta})
	}
	if e.scheduleParse != nil {
		e.scheduleParse()
	}
}

// SetViewSize updates the cached view dimensions. Called on resize and
// before drawing.
func (e *Editor) SetViewSize(width, height int) {
	e.viewWidth = width
	if height > config.StatusBarHeight {
		e.viewHeight = height - config.StatusBarHeight
	} else {
		e.viewHeight = 0
	}

	// Scrolloff larger than half the view pins the cursor to the center.
	if e.ScrollOff*2 >= e.viewHeight && e.viewHeight > 0 {
		e.ScrollOff = (e.viewHeight - 1) / 2
	} else if e.viewHeight <= 0 {
		e.ScrollOff = 0
	}

	e.ScrollToCursor()
}

// ViewSize returns the cached text-area dimensions.
func (e *Editor) ViewSize() (width, height int) {
	return e.viewWidth, e.viewHeight
}

// GetBuffer returns the editor's buffer.
func (e *Editor) GetBuffer() buffer.Buffer {
	return e.buffer
}

// GetCursor returns the current cursor position.
func (e *Editor) GetCursor() types.Position {
	return e.Cursor
}

// SetCursor moves the cursor to pos, clamped to the buffer.
func (e *Editor) SetCursor(pos types.Position) {
	e.Cursor = pos
	e.MoveCursor(0, 0) // clamps and scrolls
}

// GetViewport returns the viewport origin (top line, leftmost visual col).
func (e *Editor) GetViewport() (int, int) {
	return e.ViewportY, e.ViewportX
}

// History returns the revision tree, or nil when none is attached.
func (e *Editor) History() *history.Tree {
	return e.history
}

// Syntax returns the parse manager, or nil when none is attached.
func (e *Editor) Syntax() *syntax.Manager {
	return e.syntax
}

// SaveBuffer writes the buffer to disk, at an override path when given.
func (e *Editor) SaveBuffer(filePath ...string) error {
	savePath := ""
	if len(filePath) > 0 {
		savePath = filePath[0]
	}
	if err := e.buffer.Save(savePath); err != nil {
		return err
	}
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{
			FilePath: e.buffer.FilePath(),
		})
	}
	return nil
}
