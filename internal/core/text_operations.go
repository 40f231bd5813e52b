// internal/core/text_operations.go
package core

import (
	"fmt"
	"unicode/utf8"

	"github.com/wovenlab/loom/internal/types"
)

// InsertRune inserts one rune at the cursor. An active selection is
// replaced by the rune.
func (e *Editor) InsertRune(r rune) error {
	if e.HasSelection() {
		if err := e.deleteSelection(); err != nil {
			return err
		}
	}

	runeBytes := make([]byte, utf8.RuneLen(r))
	utf8.EncodeRune(runeBytes, r)

	delta, err := e.buffer.Insert(e.Cursor, runeBytes)
	if err != nil {
		return err
	}

	if r == '\n' {
		e.Cursor.Line++
		e.Cursor.Col = 0
	} else {
		e.Cursor.Col++
	}
	e.ScrollToCursor()

	e.commitEdit(delta)
	return nil
}

// InsertNewLine inserts a line break at the cursor.
func (e *Editor) InsertNewLine() error {
	return e.InsertRune('\n')
}

// InsertTab inserts a literal tab; the renderer expands it to the
// configured width.
func (e *Editor) InsertTab() error {
	return e.InsertRune('\t')
}

// InsertText inserts arbitrary text at the cursor, moving the cursor past
// it. Used by paste.
func (e *Editor) InsertText(text []byte) error {
	if len(text) == 0 {
		return nil
	}

	insertPos := e.Cursor
	delta, err := e.buffer.Insert(insertPos, text)
	if err != nil {
		return fmt.Errorf("buffer insert failed: %w", err)
	}

	e.Cursor = positionAfterInsert(insertPos, text)
	e.MoveCursor(0, 0) // clamp + scroll

	e.commitEdit(delta)
	return nil
}

// positionAfterInsert computes where the cursor lands after text is
// inserted at pos.
func positionAfterInsert(pos types.Position, text []byte) types.Position {
	lines := 0
	lastLineStart := 0
	for i, b := range text {
		if b == '\n' {
			lines++
			lastLineStart = i + 1
		}
	}
	lastLineRunes := utf8.RuneCount(text[lastLineStart:])

	if lines == 0 {
		return types.Position{Line: pos.Line, Col: pos.Col + lastLineRunes}
	}
	return types.Position{Line: pos.Line + lines, Col: lastLineRunes}
}

// DeleteBackward removes the selection if active, otherwise the rune
// before the cursor, joining lines at column zero.
func (e *Editor) DeleteBackward() error {
	if e.HasSelection() {
		return e.deleteSelection()
	}

	start := e.Cursor
	end := e.Cursor
	switch {
	case e.Cursor.Col > 0:
		start.Col--
	case e.Cursor.Line > 0:
		start.Line--
		prevLine, err := e.buffer.Line(start.Line)
		if err != nil {
			return fmt.Errorf("cannot get previous line %d: %w", start.Line, err)
		}
		start.Col = utf8.RuneCount(prevLine)
	default:
		return nil // at the very beginning
	}

	delta, err := e.buffer.Delete(start, end)
	if err != nil {
		return fmt.Errorf("buffer delete failed: %w", err)
	}

	e.Cursor = start
	e.ScrollToCursor()

	e.commitEdit(delta)
	return nil
}

// DeleteForward removes the selection if active, otherwise the rune under
// the cursor, joining with the next line at end of line.
func (e *Editor) DeleteForward() error {
	if e.HasSelection() {
		return e.deleteSelection()
	}

	lineBytes, err := e.buffer.Line(e.Cursor.Line)
	if err != nil {
		return fmt.Errorf("cannot get current line %d: %w", e.Cursor.Line, err)
	}

	start := e.Cursor
	end := e.Cursor
	switch {
	case e.Cursor.Col < utf8.RuneCount(lineBytes):
		end.Col++
	case e.Cursor.Line < e.buffer.LineCount()-1:
		end.Line++
		end.Col = 0
	default:
		return nil // at the very end
	}

	delta, err := e.buffer.Delete(start, end)
	if err != nil {
		return fmt.Errorf("buffer delete failed: %w", err)
	}

	e.Cursor = start
	e.ScrollToCursor()

	e.commitEdit(delta)
	return nil
}

// deleteSelection removes the active selection as one committed edit and
// leaves the cursor at its start.
func (e *Editor) deleteSelection() error {
	start, end, ok := e.GetSelection()
	if !ok {
		return nil
	}
	e.ClearSelection()

	delta, err := e.buffer.Delete(start, end)
	if err != nil {
		return fmt.Errorf("buffer delete failed: %w", err)
	}

	e.Cursor = start
	e.ScrollToCursor()

	e.commitEdit(delta)
	return nil
}
