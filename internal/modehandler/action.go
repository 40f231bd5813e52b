package modehandler

import (
	"github.com/gdamore/tcell/v2"
	"github.com/wovenlab/loom/internal/event"
	"github.com/wovenlab/loom/internal/input"
	"github.com/wovenlab/loom/internal/logger"
)

// executeAction handles actions in normal mode.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent, ev *tcell.EventKey) bool {
	action := actionEvent.Action
	actionProcessed := true
	originalCursor := mh.editor.GetCursor()

	isShift := false
	if ev != nil {
		isShift = ev.Modifiers()&tcell.ModShift != 0
	}

	isMovementAction := false
	switch action {
	case input.ActionMoveUp, input.ActionMoveDown, input.ActionMoveLeft, input.ActionMoveRight,
		input.ActionMovePageUp, input.ActionMovePageDown, input.ActionMoveHome, input.ActionMoveEnd:
		isMovementAction = true
	}

	// Shift+movement anchors or extends the selection; plain movement
	// drops it before the cursor moves.
	if isMovementAction && isShift {
		mh.editor.StartOrUpdateSelection()
	}
	if isMovementAction && !isShift {
		mh.editor.ClearSelection()
	}

	switch action {
	// Mode switching
	case input.ActionEnterCommandMode:
		mh.editor.ClearSelection()
		mh.currentMode = ModeCommand
		mh.cmdBuffer = ""
		mh.statusBar.SetTemporaryMessage(":")
		logger.Debugf("modehandler: entering command mode")

	case input.ActionEnterFindMode:
		mh.editor.ClearSelection()
		mh.editor.ClearSearchHighlights()
		mh.currentMode = ModeFind
		mh.findBuffer = ""
		mh.statusBar.SetTemporaryMessage("/")
		logger.Debugf("modehandler: entering find mode")

	case input.ActionToggleHistory:
		if mh.editor.History() == nil {
			mh.statusBar.SetTemporaryMessage("No history available")
			break
		}
		mh.editor.ClearSelection()
		mh.historyView.Open(mh.editor.History())
		mh.currentMode = ModeHistory
		mh.statusBar.SetTemporaryMessage("History: arrows move, enter jumps, esc closes")
		logger.Debugf("modehandler: entering history mode")

	// Quit and save
	case input.ActionQuit:
		if mh.editor.HasSearchHighlights() {
			// First escape clears search highlights only.
			mh.editor.ClearSearchHighlights()
			mh.statusBar.SetTemporaryMessage("Highlights cleared")
		} else if mh.editor.GetBuffer().IsModified() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
		} else {
			mh.signalQuit()
			actionProcessed = false
		}
	case input.ActionForceQuit:
		mh.signalQuit()
		actionProcessed = false

	case input.ActionSave:
		mh.editor.ClearSelection()
		err := mh.editor.SaveBuffer()
		savedPath := mh.editor.GetBuffer().FilePath()
		if savedPath == "" {
			savedPath = "[No Name]"
		}
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Buffer saved to %s", savedPath)
		}

	// Search repeat
	case input.ActionFindNext:
		if mh.lastSearchTerm != "" {
			mh.executeFind(mh.lastSearchForward, true)
		} else {
			mh.statusBar.SetTemporaryMessage("No previous search term")
			actionProcessed = false
		}
	case input.ActionFindPrevious:
		if mh.lastSearchTerm != "" {
			mh.executeFind(!mh.lastSearchForward, true)
		} else {
			mh.statusBar.SetTemporaryMessage("No previous search term")
			actionProcessed = false
		}

	// Movement
	case input.ActionMoveUp:
		mh.editor.MoveCursor(-1, 0)
	case input.ActionMoveDown:
		mh.editor.MoveCursor(1, 0)
	case input.ActionMoveLeft:
		mh.editor.MoveCursor(0, -1)
	case input.ActionMoveRight:
		mh.editor.MoveCursor(0, 1)
	case input.ActionMovePageUp:
		mh.editor.PageMove(-1)
	case input.ActionMovePageDown:
		mh.editor.PageMove(1)
	case input.ActionMoveHome:
		mh.editor.Home()
	case input.ActionMoveEnd:
		mh.editor.End()

	// Clipboard
	case input.ActionYank:
		copied, err := mh.editor.YankSelection()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
			logger.Debugf("yank error: %v", err)
			actionProcessed = false
		} else if copied {
			mh.statusBar.SetTemporaryMessage("Selection copied")
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing selected to copy")
		}

	case input.ActionCut:
		cut, err := mh.editor.CutSelection()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Cut failed: %v", err)
			logger.Debugf("cut error: %v", err)
			actionProcessed = false
		} else if cut {
			mh.statusBar.SetTemporaryMessage("Selection cut")
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing selected to cut")
		}

	case input.ActionPaste:
		pasted, err := mh.editor.Paste()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
			logger.Debugf("paste error: %v", err)
			actionProcessed = false
		} else if !pasted {
			mh.statusBar.SetTemporaryMessage("Clipboard empty")
			actionProcessed = false
		}

	// History
	case input.ActionUndo:
		if mh.editor.Undo() {
			mh.statusBar.SetTemporaryMessage("Undo")
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
			actionProcessed = false
		}
	case input.ActionRedo:
		if mh.editor.Redo() {
			mh.statusBar.SetTemporaryMessage("Redo")
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
			actionProcessed = false
		}

	// Text modification. The editor dispatches modified and history
	// events itself.
	case input.ActionInsertRune:
		mh.editor.ClearSearchHighlights()
		if err := mh.editor.InsertRune(actionEvent.Rune); err != nil {
			logger.Debugf("insert rune: %v", err)
			actionProcessed = false
		}
	case input.ActionInsertNewLine:
		mh.editor.ClearSearchHighlights()
		if err := mh.editor.InsertNewLine(); err != nil {
			logger.Debugf("insert newline: %v", err)
			actionProcessed = false
		}
	case input.ActionInsertTab:
		mh.editor.ClearSearchHighlights()
		if err := mh.editor.InsertTab(); err != nil {
			logger.Debugf("insert tab: %v", err)
			actionProcessed = false
		}
	case input.ActionDeleteCharBackward:
		mh.editor.ClearSearchHighlights()
		if err := mh.editor.DeleteBackward(); err != nil {
			logger.Debugf("delete backward: %v", err)
			actionProcessed = false
		}
	case input.ActionDeleteCharForward:
		mh.editor.ClearSearchHighlights()
		if err := mh.editor.DeleteForward(); err != nil {
			logger.Debugf("delete forward: %v", err)
			actionProcessed = false
		}

	case input.ActionUnknown:
		actionProcessed = false
	default:
		actionProcessed = false
	}

	newCursor := mh.editor.GetCursor()
	if actionProcessed && newCursor != originalCursor {
		mh.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: newCursor})
	}

	// Any other completed action cancels a pending quit confirmation.
	if action != input.ActionQuit && action != input.ActionUnknown && actionProcessed {
		mh.forceQuitPending = false
	}

	return actionProcessed
}
