// internal/modehandler/modehandler.go
package modehandler

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/wovenlab/loom/internal/core"
	"github.com/wovenlab/loom/internal/event"
	"github.com/wovenlab/loom/internal/input"
	"github.com/wovenlab/loom/internal/logger"
	"github.com/wovenlab/loom/internal/plugin"
	"github.com/wovenlab/loom/internal/statusbar"
	"github.com/wovenlab/loom/internal/tui"
)

// InputMode is the current interpretation of key presses.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
	ModeFind
	ModeHistory
)

// String returns the status bar label for the mode. Normal mode shows
// nothing.
func (m InputMode) String() string {
	switch m {
	case ModeCommand:
		return "COMMAND"
	case ModeFind:
		return "FIND"
	case ModeHistory:
		return "HISTORY"
	default:
		return ""
	}
}

// ModeHandler routes key events to the active mode and owns the command
// registry and search state. Text edits, undo and redo dispatch their own
// events from the editor, so this layer only emits key and cursor events.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	historyView    *tui.HistoryView
	quitSignal     chan<- struct{}
	quitOnce       sync.Once

	currentMode       InputMode
	cmdBuffer         string
	findBuffer        string
	lastSearchTerm    string
	lastSearchForward bool
	commands          map[string]plugin.CommandFunc
	forceQuitPending  bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	HistoryView    *tui.HistoryView
	QuitSignal     chan<- struct{}
}

// New creates a ModeHandler. All dependencies are required; a missing one
// is a wiring error in the caller.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil ||
		cfg.StatusBar == nil || cfg.HistoryView == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		historyView:    cfg.HistoryView,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// HandleKeyEvent translates the key event and runs it through the active
// mode. Returns true if the event changed anything that needs a redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	switch mh.currentMode {
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	case ModeFind:
		return mh.handleActionFind(actionEvent)
	case ModeHistory:
		return mh.handleActionHistory(actionEvent)
	default:
		return mh.executeAction(actionEvent, ev)
	}
}

// signalQuit tells the app to terminate. Safe to call more than once.
func (mh *ModeHandler) signalQuit() {
	mh.quitOnce.Do(func() { close(mh.quitSignal) })
}

// RequestQuit asks the editor to exit and reports whether the quit was
// signaled. Without force, unsaved changes block the request.
func (mh *ModeHandler) RequestQuit(force bool) bool {
	if !force && mh.editor.GetBuffer().IsModified() {
		return false
	}
	mh.signalQuit()
	return true
}

// RegisterCommand adds a named command to the ':' registry.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("modehandler: registered command %q", name)
	return nil
}

// CurrentMode returns the active input mode.
func (mh *ModeHandler) CurrentMode() InputMode {
	return mh.currentMode
}

// CommandBuffer returns the partial command line while in command mode.
func (mh *ModeHandler) CommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return mh.cmdBuffer
	}
	return ""
}

// FindBuffer returns the partial search term while in find mode.
func (mh *ModeHandler) FindBuffer() string {
	if mh.currentMode == ModeFind {
		return mh.findBuffer
	}
	return ""
}
