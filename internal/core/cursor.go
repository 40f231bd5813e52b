// internal/core/cursor.go
package core

import (
	"unicode/utf8"

	"github.com/wovenlab/loom/internal/logger"
	"github.com/wovenlab/loom/internal/utils"
)

// MoveCursor moves the cursor by the given deltas, wrapping across line
// ends on horizontal movement, then clamps and scrolls. MoveCursor(0, 0)
// is the canonical "re-clamp whatever is in Cursor" call.
func (e *Editor) MoveCursor(deltaLine, deltaCol int) {
	lineCount := e.buffer.LineCount()

	// Horizontal wrap only applies to pure horizontal movement.
	if deltaLine == 0 && lineCount > 0 {
		if deltaCol > 0 {
			if lineBytes, err := e.buffer.Line(e.Cursor.Line); err == nil {
				maxCol := utf8.RuneCount(lineBytes)
				if e.Cursor.Col >= maxCol && e.Cursor.Line < lineCount-1 {
					e.Cursor.Line++
					e.Cursor.Col = 0
					e.afterCursorMove()
					return
				}
			}
		} else if deltaCol < 0 {
			if e.Cursor.Col <= 0 && e.Cursor.Line > 0 {
				e.Cursor.Line--
				if prevLine, err := e.buffer.Line(e.Cursor.Line); err == nil {
					e.Cursor.Col = utf8.RuneCount(prevLine)
				} else {
					e.Cursor.Col = 0
				}
				e.afterCursorMove()
				return
			}
		}
	}

	targetLine := e.Cursor.Line + deltaLine
	targetCol := e.Cursor.Col + deltaCol

	if targetLine < 0 {
		targetLine = 0
	}
	if lineCount == 0 {
		targetLine = 0
	} else if targetLine >= lineCount {
		targetLine = lineCount - 1
	}

	if targetCol < 0 {
		targetCol = 0
	}
	if lineCount > 0 {
		if lineBytes, err := e.buffer.Line(targetLine); err == nil {
			if maxCol := utf8.RuneCount(lineBytes); targetCol > maxCol {
				targetCol = maxCol
			}
		} else {
			targetCol = 0
		}
	} else {
		targetCol = 0
	}

	e.Cursor.Line = targetLine
	e.Cursor.Col = targetCol
	e.afterCursorMove()
}

// afterCursorMove extends an active selection to the new position and
// keeps the cursor on screen.
func (e *Editor) afterCursorMove() {
	if e.selecting {
		e.selectionEnd = e.Cursor
	}
	e.ScrollToCursor()
}

// ScrollToCursor adjusts the viewport so the cursor stays visible with
// ScrollOff lines of context, horizontally tracking the visual column.
func (e *Editor) ScrollToCursor() {
	if e.viewHeight <= 0 || e.viewWidth <= 0 {
		return
	}

	scrollOff := e.ScrollOff
	if scrollOff*2 >= e.viewHeight {
		scrollOff = (e.viewHeight - 1) / 2
	}

	if e.Cursor.Line < e.ViewportY+scrollOff {
		e.ViewportY = e.Cursor.Line - scrollOff
	} else if e.Cursor.Line >= e.ViewportY+e.viewHeight-scrollOff {
		e.ViewportY = e.Cursor.Line - e.viewHeight + 1 + scrollOff
	}

	visualCol := 0
	if lineBytes, err := e.buffer.Line(e.Cursor.Line); err == nil {
		visualCol = utils.VisualColumn(lineBytes, e.Cursor.Col, e.tabWidth)
	} else {
		logger.Debugf("ScrollToCursor: line %d unavailable: %v", e.Cursor.Line, err)
	}

	if visualCol < e.ViewportX {
		e.ViewportX = visualCol
	} else if visualCol >= e.ViewportX+e.viewWidth {
		e.ViewportX = visualCol - e.viewWidth + 1
	}

	if e.ViewportY < 0 {
		e.ViewportY = 0
	}
	if e.ViewportX < 0 {
		e.ViewportX = 0
	}
}

// PageMove shifts cursor and viewport by whole pages; deltaPages is +1 for
// page-down, -1 for page-up.
func (e *Editor) PageMove(deltaPages int) {
	if e.viewHeight <= 0 {
		return
	}

	lineCount := e.buffer.LineCount()
	targetLine := e.Cursor.Line + e.viewHeight*deltaPages
	if targetLine < 0 {
		targetLine = 0
	} else if targetLine >= lineCount {
		targetLine = lineCount - 1
	}
	e.Cursor.Line = targetLine
	e.MoveCursor(0, 0) // clamp Col against the new line

	// ScrollToCursor alone would only nudge by scrolloff; jump the
	// viewport a full page, then re-check visibility.
	e.ViewportY += e.viewHeight * deltaPages
	maxViewportY := lineCount - e.viewHeight
	if maxViewportY < 0 {
		maxViewportY = 0
	}
	if e.ViewportY > maxViewportY {
		e.ViewportY = maxViewportY
	}
	if e.ViewportY < 0 {
		e.ViewportY = 0
	}
	e.ScrollToCursor()
}

// Home moves the cursor to column zero of the current line.
func (e *Editor) Home() {
	e.Cursor.Col = 0
	e.afterCursorMove()
}

// End moves the cursor past the last rune of the current line.
func (e *Editor) End() {
	if lineBytes, err := e.buffer.Line(e.Cursor.Line); err == nil {
		e.Cursor.Col = utf8.RuneCount(lineBytes)
	} else {
		e.Cursor.Col = 0
	}
	e.afterCursorMove()
}
