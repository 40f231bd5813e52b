// internal/app/ui.go
package app

import (
	"github.com/wovenlab/loom/internal/tui"
)

// draw repaints the whole screen from current state. Everything is
// pulled fresh on each frame so callers only need to request a redraw.
func (a *App) draw() {
	a.updateStatusBarContent()

	activeTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	a.tuiManager.Clear()
	tui.DrawBuffer(a.tuiManager, a.editor, activeTheme)
	a.statusBar.Draw(screen, width, height, activeTheme)

	if a.historyView.Visible() {
		// The panel overlays the right half of the text area, so the
		// text cursor is hidden while browsing revisions.
		a.historyView.Draw(screen, width, height, activeTheme)
		screen.HideCursor()
	} else {
		tui.DrawCursor(a.tuiManager, a.editor)
	}

	a.tuiManager.Show()
}

func (a *App) updateStatusBarContent() {
	buf := a.editor.GetBuffer()
	a.statusBar.SetFileInfo(buf.FilePath(), buf.IsModified())
	a.statusBar.SetCursorInfo(a.editor.GetCursor())
	a.statusBar.SetEditorMode(a.modeHandler.CurrentMode().String())
	a.statusBar.SetSyntaxInfo(a.syntax.Language(), a.syntax.Parsing())
	if tree := a.editor.History(); tree != nil {
		a.statusBar.SetHistoryInfo(tree.HeadIndex(), tree.Len())
	}
}

// requestRedraw schedules a repaint on the main loop. Duplicate requests
// coalesce into one frame; safe to call from any goroutine.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}
