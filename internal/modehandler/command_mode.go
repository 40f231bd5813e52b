package modehandler

import (
	"strings"

	"github.com/wovenlab/loom/internal/input"
	"github.com/wovenlab/loom/internal/logger"
)

// handleActionCommand handles actions while the ':' prompt is active.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	actionProcessed := true
	needsUpdate := false

	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.cmdBuffer += string(actionEvent.Rune)
		needsUpdate = true

	case input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) > 0 {
			runes := []rune(mh.cmdBuffer)
			mh.cmdBuffer = string(runes[:len(runes)-1])
			needsUpdate = true
		} else {
			// Backspace on an empty prompt leaves command mode.
			mh.currentMode = ModeNormal
			mh.statusBar.ResetTemporaryMessage()
		}

	case input.ActionInsertNewLine:
		mh.executeCommand()
		mh.currentMode = ModeNormal

	case input.ActionQuit:
		mh.currentMode = ModeNormal
		mh.cmdBuffer = ""
		mh.statusBar.ResetTemporaryMessage()
		logger.Debugf("modehandler: canceled command mode")

	default:
		actionProcessed = false
	}

	if needsUpdate && mh.currentMode == ModeCommand {
		mh.statusBar.SetTemporaryMessage(":%s", mh.cmdBuffer)
	}

	return actionProcessed
}

// executeCommand parses and runs the buffered command line.
func (mh *ModeHandler) executeCommand() {
	if mh.cmdBuffer == "" {
		mh.statusBar.ResetTemporaryMessage()
		return
	}
	cmdStr := mh.cmdBuffer
	mh.cmdBuffer = ""

	parts := strings.Fields(cmdStr)
	if len(parts) == 0 {
		mh.statusBar.ResetTemporaryMessage()
		return
	}
	cmdName := parts[0]
	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}

	cmdFunc, exists := mh.commands[cmdName]
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", cmdName)
		return
	}

	logger.Debugf("modehandler: executing command %q with args %v", cmdName, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Command %q failed: %v", cmdName, err)
	}
	// Success messages come from the command itself.
}
