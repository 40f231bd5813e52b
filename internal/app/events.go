// internal/app/events.go
package app

import (
	"github.com/wovenlab/loom/internal/event"
)

// subscribeHandlers registers the app-level event subscriptions. None of
// them consume their events; plugins subscribed to the same types still
// see them.
func (a *App) subscribeHandlers() {
	a.eventManager.Subscribe(event.TypeCursorMoved, a.handleCursorMoved)
	a.eventManager.Subscribe(event.TypeHistoryChanged, a.handleHistoryChanged)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSaved)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
}

func (a *App) handleCursorMoved(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.statusBar.SetCursorInfo(data.NewPosition)
	}
	return false
}

// handleHistoryChanged keeps an open history panel in sync with the
// revision tree after commits, undo and redo.
func (a *App) handleHistoryChanged(e event.Event) bool {
	if a.historyView.Visible() {
		a.historyView.Refresh()
	}
	a.requestRedraw()
	return false
}

// handleBufferSaved repaints so the modified flag clears. Autosave runs
// off the main loop, so this is the only repaint path for its saves.
func (a *App) handleBufferSaved(e event.Event) bool {
	a.requestRedraw()
	return false
}

// handleThemeChanged reapplies the screen's base style so the background
// matches the new theme before the repaint.
func (a *App) handleThemeChanged(e event.Event) bool {
	a.tuiManager.SetStyle(a.themeManager.Current().GetStyle("Default"))
	a.requestRedraw()
	return false
}
