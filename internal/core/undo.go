// internal/core/undo.go
package core

import (
	"github.com/wovenlab/loom/internal/event"
	"github.com/wovenlab/loom/internal/types"
)

// CanUndo reports whether the history head has a parent to return to.
func (e *Editor) CanUndo() bool {
	return e.history != nil && e.history.CanUndo()
}

// CanRedo reports whether the history head has a child to advance into.
func (e *Editor) CanRedo() bool {
	return e.history != nil && e.history.CanRedo()
}

// Undo moves the history head to its parent and restores that revision.
// Returns false when there is nothing to undo.
func (e *Editor) Undo() bool {
	if e.history == nil {
		return false
	}
	snapshot, reversed, cursor, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.restoreRevision(snapshot, reversed, cursor, event.HistoryUndo)
	return true
}

// Redo advances the history head into its preferred child and restores
// that revision. Returns false when the head is a leaf.
func (e *Editor) Redo() bool {
	if e.history == nil {
		return false
	}
	snapshot, delta, cursor, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.restoreRevision(snapshot, delta, cursor, event.HistoryRedo)
	return true
}

// restoreRevision applies a one-step head move: the snapshot replaces the
// buffer, delta keeps the adopted syntax tree's ranges in step, and the
// revision's cursor comes back. A re-parse is scheduled to converge the
// tree on the restored text.
func (e *Editor) restoreRevision(snapshot []byte, delta types.Delta, cursor types.Position, kind event.HistoryChangeKind) {
	e.buffer.SetBytes(snapshot)
	if e.syntax != nil {
		e.syntax.ApplyEdit(delta)
	}

	e.ClearSelection()
	e.ClearSearchHighlights()
	e.SetCursor(cursor)

	e.dispatchHistoryChange(kind, delta)
}

// JumpToRevision moves the history head directly to revision idx, as
// selected in the history view. No single delta spans such a move, so the
// adopted tree is invalidated and the next parse starts from scratch.
func (e *Editor) JumpToRevision(idx int) bool {
	if e.history == nil {
		return false
	}
	snapshot, cursor, ok := e.history.JumpTo(idx)
	if !ok {
		return false
	}

	e.buffer.SetBytes(snapshot)
	if e.syntax != nil {
		e.syntax.Invalidate()
	}

	e.ClearSelection()
	e.ClearSearchHighlights()
	e.SetCursor(cursor)

	e.dispatchHistoryChange(event.HistoryJump, types.Delta{})
	return true
}

func (e *Editor) dispatchHistoryChange(kind event.HistoryChangeKind, delta types.Delta) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
			HeadIndex: e.history.HeadIndex(),
			Kind:      kind,
		})
		e.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Delta: delta})
	}
	if e.scheduleParse != nil {
		e.scheduleParse()
	}
}
