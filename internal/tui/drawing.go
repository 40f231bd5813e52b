// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"github.com/wovenlab/loom/internal/config"
	"github.com/wovenlab/loom/internal/core"
	"github.com/wovenlab/loom/internal/logger"
	"github.com/wovenlab/loom/internal/theme"
	"github.com/wovenlab/loom/internal/types"
	"github.com/wovenlab/loom/internal/utils"
)

const gutterPadding = 1

// gutterWidth returns the width of the line number gutter, or 0 when the
// screen is too narrow to afford one.
func gutterWidth(lineCount, screenWidth int) int {
	if lineCount <= 0 {
		lineCount = 1
	}
	digits := int(math.Log10(float64(lineCount))) + 1
	gw := digits + gutterPadding
	if gw >= screenWidth {
		return 0
	}
	return gw
}

// lineSpan is a syntax capture projected onto one line, in rune columns.
type lineSpan struct {
	startCol int // inclusive
	endCol   int // exclusive
	style    tcell.Style
	byteLen  int // capture length; the narrowest covering span wins
}

func syntaxSpansForLine(editor *core.Editor, activeTheme *theme.Theme, lineIdx int, lineBytes []byte) []lineSpan {
	syn := editor.Syntax()
	if syn == nil {
		return nil
	}
	lineStart, err := editor.GetBuffer().LineStartByte(lineIdx)
	if err != nil {
		return nil
	}
	spans := syn.SpansBetween(lineStart, lineStart+len(lineBytes))
	if len(spans) == 0 {
		return nil
	}

	out := make([]lineSpan, 0, len(spans))
	for _, sp := range spans {
		startByte := sp.StartByte - lineStart
		endByte := sp.EndByte - lineStart
		if startByte < 0 {
			startByte = 0
		}
		if endByte > len(lineBytes) {
			endByte = len(lineBytes)
		}
		if startByte >= endByte {
			continue
		}
		out = append(out, lineSpan{
			startCol: utils.ByteOffsetToRuneIndex(lineBytes, startByte),
			endCol:   utils.ByteOffsetToRuneIndex(lineBytes, endByte),
			style:    activeTheme.GetStyle(sp.Capture),
			byteLen:  sp.EndByte - sp.StartByte,
		})
	}
	return out
}

// DrawBuffer renders the visible portion of the buffer with the gutter,
// syntax spans, search highlights and the selection. Style precedence per
// cell: selection over search over syntax over default.
func DrawBuffer(tuiManager *TUI, editor *core.Editor, activeTheme *theme.Theme) {
	if activeTheme == nil {
		logger.Warnf("DrawBuffer called with nil theme, using built-in default")
		activeTheme = &theme.DevComfortDark
	}

	defaultStyle := activeTheme.GetStyle("Default")
	lineNumberStyle := activeTheme.GetStyle("LineNumber")
	selectionStyle := activeTheme.GetStyle("Selection")
	searchStyle := activeTheme.GetStyle("SearchHighlight")

	width, height := tuiManager.Size()
	viewY, viewX := editor.GetViewport()
	selStart, selEnd, selectionActive := editor.GetSelection()
	selRegion := types.Region{Start: selStart, End: selEnd}
	tabWidth := editor.TabWidth()

	viewHeight := height - config.StatusBarHeight
	if viewHeight <= 0 || width <= 0 {
		return
	}

	lines := editor.GetBuffer().Lines()
	gutter := gutterWidth(len(lines), width)
	textAreaWidth := width - gutter

	// Bucket search regions by visible line.
	searchByLine := make(map[int][]types.Region)
	for _, region := range editor.SearchHighlights() {
		for lineIdx := region.Start.Line; lineIdx <= region.End.Line; lineIdx++ {
			if lineIdx >= viewY && lineIdx < viewY+viewHeight {
				searchByLine[lineIdx] = append(searchByLine[lineIdx], region)
			}
		}
	}

	for screenY := 0; screenY < viewHeight; screenY++ {
		bufferLineIdx := screenY + viewY

		for fillX := 0; fillX < width; fillX++ {
			tuiManager.screen.SetContent(fillX, screenY, ' ', nil, defaultStyle)
		}

		if bufferLineIdx < 0 || bufferLineIdx >= len(lines) {
			continue
		}

		if gutter > 0 {
			numStyle := lineNumberStyle
			if editor.GetCursor().Line == bufferLineIdx {
				numStyle = lineNumberStyle.Bold(true)
			}
			numStr := fmt.Sprintf("%*d", gutter-gutterPadding, bufferLineIdx+1)
			for i, r := range numStr {
				if i < gutter-gutterPadding {
					tuiManager.screen.SetContent(i, screenY, r, nil, numStyle)
				}
			}
		}

		lineBytes := lines[bufferLineIdx]
		lineSpans := syntaxSpansForLine(editor, activeTheme, bufferLineIdx, lineBytes)
		lineSearch := searchByLine[bufferLineIdx]

		currentVisualX := 0
		currentRuneIndex := 0
		gr := uniseg.NewGraphemes(string(lineBytes))

		for gr.Next() {
			clusterRunes := gr.Runes()
			mainRune := clusterRunes[0]

			clusterWidth := gr.Width()
			if mainRune == '\t' {
				// Tab stops are line-local, matching utils.VisualColumn.
				clusterWidth = tabWidth - (currentVisualX % tabWidth)
			}
			clusterVisualStart := currentVisualX
			clusterVisualEnd := currentVisualX + clusterWidth
			screenX := (clusterVisualStart - viewX) + gutter

			if clusterVisualEnd > viewX && clusterVisualStart < viewX+textAreaWidth {
				currentStyle := defaultStyle
				currentPos := types.Position{Line: bufferLineIdx, Col: currentRuneIndex}

				bestLen := -1
				for _, sp := range lineSpans {
					if currentRuneIndex >= sp.startCol && currentRuneIndex < sp.endCol {
						if bestLen == -1 || sp.byteLen < bestLen {
							currentStyle = sp.style
							bestLen = sp.byteLen
						}
					}
				}
				for _, region := range lineSearch {
					if region.Contains(currentPos) {
						currentStyle = searchStyle
						break
					}
				}
				if selectionActive && selRegion.Contains(currentPos) {
					currentStyle = selectionStyle
				}

				if screenX >= gutter && screenX < width {
					if mainRune == '\t' {
						for i := 0; i < clusterWidth && screenX+i < width; i++ {
							tuiManager.screen.SetContent(screenX+i, screenY, ' ', nil, currentStyle)
						}
					} else {
						var combining []rune
						if len(clusterRunes) > 1 {
							combining = clusterRunes[1:]
						}
						tuiManager.screen.SetContent(screenX, screenY, mainRune, combining, currentStyle)
						for cw := 1; cw < clusterWidth; cw++ {
							if screenX+cw < width {
								tuiManager.screen.SetContent(screenX+cw, screenY, ' ', nil, currentStyle)
							}
						}
					}
				}
			}

			currentVisualX += clusterWidth
			currentRuneIndex += len(clusterRunes)
			if currentVisualX >= viewX+textAreaWidth {
				break
			}
		}
	}
}

// DrawCursor positions the terminal cursor, hiding it when it falls
// outside the text area.
func DrawCursor(tuiManager *TUI, editor *core.Editor) {
	cursor := editor.GetCursor()
	viewY, viewX := editor.GetViewport()
	width, height := tuiManager.Size()
	gutter := gutterWidth(editor.GetBuffer().LineCount(), width)

	cursorVisualCol := 0
	if lineBytes, err := editor.GetBuffer().Line(cursor.Line); err == nil {
		cursorVisualCol = utils.VisualColumn(lineBytes, cursor.Col, editor.TabWidth())
	} else {
		logger.Debugf("DrawCursor: line %d unavailable: %v", cursor.Line, err)
	}

	screenX := (cursorVisualCol - viewX) + gutter
	screenY := cursor.Line - viewY
	viewHeight := height - config.StatusBarHeight

	if screenX < gutter || screenX >= width || screenY < 0 || screenY >= viewHeight {
		tuiManager.screen.HideCursor()
		return
	}
	tuiManager.screen.ShowCursor(screenX, screenY)
}
