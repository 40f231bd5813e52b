// internal/event/event.go
package event

import (
	"github.com/gdamore/tcell/v2"

	"github.com/wovenlab/loom/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Core editor events
	TypeBufferModified // buffer content changed (insert/delete/undo/redo)
	TypeBufferLoaded   // a buffer finished loading
	TypeBufferSaved    // a buffer was written to disk
	TypeCursorMoved    // the cursor position changed
	TypeHistoryChanged // the revision tree head moved (commit/undo/redo)
	TypeSyntaxUpdated  // a background parse was adopted

	// Input events
	TypeKeyPressed // raw key press forwarded for plugins

	// Application lifecycle events
	TypeAppReady // application fully initialized
	TypeAppQuit  // termination beginning

	TypeThemeChanged // active theme switched
)

// Event is the structure passed through the bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData describes a buffer change. The delta is what the
// syntax manager and revision history consume.
type BufferModifiedData struct {
	Delta types.Delta
}

// BufferLoadedData announces a freshly loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData announces a completed save.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData carries the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

// HistoryChangedData reports a head move in the revision tree.
type HistoryChangedData struct {
	HeadIndex int
	Kind      HistoryChangeKind
}

// HistoryChangeKind distinguishes how the head moved.
type HistoryChangeKind int

const (
	HistoryCommit HistoryChangeKind = iota
	HistoryUndo
	HistoryRedo
	HistoryJump // head moved to an arbitrary revision via the history view
)

// SyntaxUpdatedData reports the buffer version a newly adopted tree
// corresponds to.
type SyntaxUpdatedData struct {
	Version uint64
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// AppQuitData is the (empty for now) quit payload.
type AppQuitData struct{}

// AppReadyData is the (empty for now) ready payload.
type AppReadyData struct{}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	Name string
}
