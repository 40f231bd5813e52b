package modehandler

import (
	"github.com/wovenlab/loom/internal/input"
	"github.com/wovenlab/loom/internal/logger"
)

// handleActionHistory handles actions while the history overlay is open.
// Arrows walk the revision graph, enter restores the selected revision,
// escape closes the overlay. Jumping keeps the overlay open so several
// revisions can be inspected in a row.
func (mh *ModeHandler) handleActionHistory(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionMoveUp:
		return mh.historyView.MoveSelection(0, -1)
	case input.ActionMoveDown:
		return mh.historyView.MoveSelection(0, 1)
	case input.ActionMoveLeft:
		return mh.historyView.MoveSelection(-1, 0)
	case input.ActionMoveRight:
		return mh.historyView.MoveSelection(1, 0)

	case input.ActionMoveHome:
		mh.historyView.SelectRoot()
		return true
	case input.ActionMoveEnd:
		mh.historyView.SelectHead()
		return true

	case input.ActionInsertNewLine:
		idx := mh.historyView.SelectedIndex()
		if mh.editor.JumpToRevision(idx) {
			mh.historyView.Refresh()
			mh.statusBar.SetTemporaryMessage("Jumped to revision %d", idx)
			logger.Debugf("modehandler: jumped to revision %d", idx)
		} else {
			mh.statusBar.SetTemporaryMessage("Cannot jump to revision %d", idx)
		}
		return true

	case input.ActionQuit, input.ActionToggleHistory:
		mh.closeHistoryView()
		return true

	default:
		return false
	}
}

// closeHistoryView hides the overlay and returns to normal mode.
func (mh *ModeHandler) closeHistoryView() {
	mh.historyView.Close()
	mh.currentMode = ModeNormal
	mh.statusBar.ResetTemporaryMessage()
	logger.Debugf("modehandler: closed history view")
}
