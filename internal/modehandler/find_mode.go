package modehandler

import (
	"unicode/utf8"

	"github.com/wovenlab/loom/internal/input"
	"github.com/wovenlab/loom/internal/logger"
	"github.com/wovenlab/loom/internal/types"
)

// handleActionFind handles actions while the '/' prompt is active.
func (mh *ModeHandler) handleActionFind(actionEvent input.ActionEvent) bool {
	actionProcessed := true
	needsUpdate := false

	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.findBuffer += string(actionEvent.Rune)
		needsUpdate = true

	case input.ActionDeleteCharBackward:
		if len(mh.findBuffer) > 0 {
			runes := []rune(mh.findBuffer)
			mh.findBuffer = string(runes[:len(runes)-1])
			needsUpdate = true
		} else {
			// Backspace on an empty prompt leaves find mode.
			mh.cancelFindMode()
		}

	case input.ActionInsertNewLine:
		if mh.findBuffer != "" {
			mh.lastSearchTerm = mh.findBuffer
			mh.lastSearchForward = true
			mh.executeFind(true, false)
		} else {
			mh.statusBar.ResetTemporaryMessage()
			mh.editor.ClearSearchHighlights()
		}
		mh.currentMode = ModeNormal
		mh.findBuffer = ""

	case input.ActionQuit:
		mh.cancelFindMode()

	default:
		// Movement and other actions are ignored while typing a pattern.
		actionProcessed = false
	}

	if needsUpdate && mh.currentMode == ModeFind {
		mh.statusBar.SetTemporaryMessage("/%s", mh.findBuffer)
	}

	return actionProcessed
}

// cancelFindMode exits find mode without searching.
func (mh *ModeHandler) cancelFindMode() {
	mh.currentMode = ModeNormal
	mh.findBuffer = ""
	mh.editor.ClearSearchHighlights()
	mh.statusBar.ResetTemporaryMessage()
	logger.Debugf("modehandler: canceled find mode")
}

// executeFind searches for the stored term and moves the cursor to the
// match. The initial search also highlights every match so repeats can
// step through them; when the buffer edge is hit the search wraps around
// once.
func (mh *ModeHandler) executeFind(forward bool, isSubsequent bool) {
	term := mh.lastSearchTerm
	if term == "" {
		mh.statusBar.SetTemporaryMessage("No search term")
		return
	}

	if !isSubsequent {
		if count := mh.editor.HighlightMatches(term); count == 0 {
			mh.statusBar.SetTemporaryMessage("Pattern not found: %s", term)
			return
		}
	}

	start := mh.editor.GetCursor()
	if isSubsequent && forward {
		// Step off the match under the cursor so the search advances.
		start.Col++
	}

	foundPos, found := mh.editor.Find(term, start, forward)
	wrapped := false
	if !found {
		if forward {
			foundPos, found = mh.editor.Find(term, types.Position{Line: 0, Col: 0}, true)
		} else {
			foundPos, found = mh.editor.Find(term, mh.bufferEndPos(), false)
		}
		wrapped = found
	}

	if !found {
		mh.statusBar.SetTemporaryMessage("Pattern not found: %s", term)
		logger.Debugf("find: no match for %q", term)
		return
	}

	mh.editor.SetCursor(foundPos)
	mh.lastSearchForward = forward
	if wrapped {
		mh.statusBar.SetTemporaryMessage("Search wrapped: %s", term)
	} else {
		mh.statusBar.SetTemporaryMessage("Found: %s", term)
	}
	logger.Debugf("find: %q at %v (wrapped=%v)", term, foundPos, wrapped)
}

// bufferEndPos returns the position just past the last rune of the buffer,
// the starting point for a wrapped backward search.
func (mh *ModeHandler) bufferEndPos() types.Position {
	buf := mh.editor.GetBuffer()
	lastLine := buf.LineCount() - 1
	if lastLine < 0 {
		return types.Position{}
	}
	lineBytes, err := buf.Line(lastLine)
	if err != nil {
		return types.Position{Line: lastLine, Col: 0}
	}
	return types.Position{Line: lastLine, Col: utf8.RuneCount(lineBytes)}
}
