// internal/buffer/slice_buffer.go
package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/wovenlab/loom/internal/types"
)

// SliceBuffer stores the text as a slice of lines without their trailing
// newlines. The joined form inserts '\n' between lines, so line i starts at
// sum(len(line_j)+1 for j < i) bytes into the document.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool
}

// NewSliceBuffer creates an empty buffer holding a single empty line.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		lines: [][]byte{[]byte("")},
	}
}

// Load reads a file into the buffer, replacing existing content. A missing
// file yields an empty buffer bound to that path.
func (sb *SliceBuffer) Load(filePath string) error {
	sb.modified = false

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{[]byte("")}
			sb.filePath = filePath
			return nil
		}
		return fmt.Errorf("failed to open file %q: %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	newLines := [][]byte{}
	for scanner.Scan() {
		line := scanner.Bytes()
		lineCopy := make([]byte, len(line))
		copy(lineCopy, line)
		newLines = append(newLines, lineCopy)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file %q: %w", filePath, err)
	}
	if len(newLines) == 0 {
		newLines = append(newLines, []byte(""))
	}
	sb.lines = newLines
	sb.filePath = filePath
	return nil
}

// Save writes the buffer to filePath, or to the stored path when empty.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	if err := os.WriteFile(path, sb.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	sb.filePath = path
	sb.modified = false
	return nil
}

// FilePath returns the path the buffer is bound to, if any.
func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// IsModified reports whether the buffer has unsaved changes.
func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

// Lines exposes the line slice for drawing. Callers must not mutate it.
func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

// LineCount returns the number of lines (always at least one).
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns one line without its newline.
func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// Bytes returns a fresh copy of the whole content, lines joined by '\n'.
// The copy is safe to hand to a background parse job.
func (sb *SliceBuffer) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(sb.ByteLen())
	for i, line := range sb.lines {
		buf.Write(line)
		if i < len(sb.lines)-1 {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// SetBytes replaces the whole content. Used by undo/redo restores.
func (sb *SliceBuffer) SetBytes(content []byte) {
	parts := bytes.Split(content, []byte("\n"))
	lines := make([][]byte, len(parts))
	for i, p := range parts {
		lineCopy := make([]byte, len(p))
		copy(lineCopy, p)
		lines[i] = lineCopy
	}
	if len(lines) == 0 {
		lines = [][]byte{[]byte("")}
	}
	sb.lines = lines
	sb.modified = true
}

// ByteLen is the total content length in bytes, newlines included.
func (sb *SliceBuffer) ByteLen() int {
	n := 0
	for _, line := range sb.lines {
		n += len(line) + 1
	}
	return n - 1 // no newline after the final line
}

// CharLen is the total content length in runes, newlines included.
func (sb *SliceBuffer) CharLen() int {
	n := 0
	for _, line := range sb.lines {
		n += utf8.RuneCount(line) + 1
	}
	return n - 1
}

// BytesRange extracts [startByte, endByte), walking only overlapping lines.
func (sb *SliceBuffer) BytesRange(startByte, endByte int) []byte {
	total := sb.ByteLen()
	if startByte < 0 {
		startByte = 0
	}
	if endByte > total {
		endByte = total
	}
	if startByte >= endByte {
		return nil
	}

	out := make([]byte, 0, endByte-startByte)
	lineStart := 0
	for i, line := range sb.lines {
		lineEnd := lineStart + len(line) // exclusive, before the newline
		if lineEnd > startByte && lineStart < endByte {
			from := maxInt(startByte-lineStart, 0)
			to := minInt(endByte-lineStart, len(line))
			out = append(out, line[from:to]...)
		}
		// The newline after this line, if in range.
		if i < len(sb.lines)-1 {
			nlPos := lineEnd
			if nlPos >= startByte && nlPos < endByte {
				out = append(out, '\n')
			}
		}
		lineStart = lineEnd + 1
		if lineStart >= endByte {
			break
		}
	}
	return out
}

// LineStartByte is the byte offset where a line begins.
func (sb *SliceBuffer) LineStartByte(line int) (int, error) {
	if line < 0 || line >= len(sb.lines) {
		return 0, fmt.Errorf("line index %d out of bounds (0-%d)", line, len(sb.lines)-1)
	}
	offset := 0
	for i := 0; i < line; i++ {
		offset += len(sb.lines[i]) + 1
	}
	return offset, nil
}

// --- Offset conversions ---

// CharToByte converts a rune offset into a byte offset, clamping past-end
// offsets to the end of the document.
func (sb *SliceBuffer) CharToByte(charOffset int) int {
	if charOffset <= 0 {
		return 0
	}
	byteOff := 0
	remaining := charOffset
	for i, line := range sb.lines {
		runes := utf8.RuneCount(line)
		if remaining <= runes {
			return byteOff + runeSliceBytes(line, remaining)
		}
		remaining -= runes
		byteOff += len(line)
		if i < len(sb.lines)-1 {
			remaining-- // the newline
			byteOff++
		}
	}
	return byteOff
}

// ByteToChar converts a byte offset into a rune offset, clamping.
func (sb *SliceBuffer) ByteToChar(byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	charOff := 0
	remaining := byteOffset
	for i, line := range sb.lines {
		if remaining <= len(line) {
			return charOff + utf8.RuneCount(line[:clampInt(remaining, 0, len(line))])
		}
		remaining -= len(line)
		charOff += utf8.RuneCount(line)
		if i < len(sb.lines)-1 {
			remaining--
			charOff++
		}
	}
	return charOff
}

// CharToLine returns the line index containing the given rune offset.
func (sb *SliceBuffer) CharToLine(charOffset int) int {
	if charOffset <= 0 {
		return 0
	}
	remaining := charOffset
	for i, line := range sb.lines {
		runes := utf8.RuneCount(line)
		if remaining <= runes {
			return i
		}
		remaining -= runes + 1 // line plus its newline
	}
	return len(sb.lines) - 1
}

// LineToChar returns the rune offset of the first character of a line.
func (sb *SliceBuffer) LineToChar(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= len(sb.lines) {
		line = len(sb.lines) - 1
	}
	offset := 0
	for i := 0; i < line; i++ {
		offset += utf8.RuneCount(sb.lines[i]) + 1
	}
	return offset
}

// PosToCharOffset converts a line/rune-column position to a document rune
// offset, clamping the column to the line length.
func (sb *SliceBuffer) PosToCharOffset(pos types.Position) (int, error) {
	if pos.Line < 0 || pos.Line >= len(sb.lines) {
		return 0, fmt.Errorf("line index %d out of bounds (0-%d)", pos.Line, len(sb.lines)-1)
	}
	col := clampInt(pos.Col, 0, utf8.RuneCount(sb.lines[pos.Line]))
	return sb.LineToChar(pos.Line) + col, nil
}

// PosToByteOffset converts a line/rune-column position to a document byte
// offset, clamping the column to the line length.
func (sb *SliceBuffer) PosToByteOffset(pos types.Position) (int, error) {
	if pos.Line < 0 || pos.Line >= len(sb.lines) {
		return 0, fmt.Errorf("line index %d out of bounds (0-%d)", pos.Line, len(sb.lines)-1)
	}
	lineStart, err := sb.LineStartByte(pos.Line)
	if err != nil {
		return 0, err
	}
	return lineStart + runeSliceBytes(sb.lines[pos.Line], pos.Col), nil
}

// ByteOffsetToPos resolves a byte offset to a line/rune-column position.
func (sb *SliceBuffer) ByteOffsetToPos(offset int) types.Position {
	line, byteCol := sb.ByteOffsetToLineCol(offset)
	return types.Position{
		Line: line,
		Col:  utf8.RuneCount(sb.lines[line][:byteCol]),
	}
}

// ByteOffsetToLineCol resolves a byte offset to a line index and byte
// column, the geometry tree-sitter points use.
func (sb *SliceBuffer) ByteOffsetToLineCol(offset int) (int, int) {
	if offset <= 0 {
		return 0, 0
	}
	lineStart := 0
	for i, line := range sb.lines {
		lineEnd := lineStart + len(line)
		if offset <= lineEnd {
			return i, offset - lineStart
		}
		lineStart = lineEnd + 1
	}
	last := len(sb.lines) - 1
	return last, len(sb.lines[last])
}

// --- Mutations ---

// Insert places text at pos, splitting lines at embedded newlines. The
// returned delta describes the insertion against the pre-edit document.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (types.Delta, error) {
	if len(text) == 0 {
		return types.Delta{}, nil
	}

	validPos, byteOffsetInLine, err := sb.validatePosition(pos)
	if err != nil {
		return types.Delta{}, fmt.Errorf("invalid insert position: %w", err)
	}

	lineStart, _ := sb.LineStartByte(validPos.Line)
	startByte := lineStart + byteOffsetInLine
	startChar := sb.LineToChar(validPos.Line) + validPos.Col

	delta := types.Delta{
		ByteOffset: startByte,
		NewByteLen: len(text),
		CharOffset: startChar,
		NewCharLen: utf8.RuneCount(text),
	}

	sb.modified = true

	currentLine := sb.lines[validPos.Line]
	insertLines := bytes.Split(text, []byte("\n"))

	tail := make([]byte, len(currentLine[byteOffsetInLine:]))
	copy(tail, currentLine[byteOffsetInLine:])

	sb.lines[validPos.Line] = append(currentLine[:byteOffsetInLine], insertLines[0]...)

	if len(insertLines) > 1 {
		newLines := make([][]byte, len(insertLines)-1)
		for i := 1; i < len(insertLines); i++ {
			lineCopy := make([]byte, len(insertLines[i]))
			copy(lineCopy, insertLines[i])
			newLines[i-1] = lineCopy
		}
		newLines[len(newLines)-1] = append(newLines[len(newLines)-1], tail...)
		if validPos.Line+1 > len(sb.lines) {
			sb.lines = append(sb.lines, newLines...)
		} else {
			rest := make([][]byte, len(sb.lines[validPos.Line+1:]))
			copy(rest, sb.lines[validPos.Line+1:])
			sb.lines = append(sb.lines[:validPos.Line+1], append(newLines, rest...)...)
		}
	} else {
		sb.lines[validPos.Line] = append(sb.lines[validPos.Line], tail...)
	}

	return delta, nil
}

// Delete removes [start, end) and returns the delta describing the removal
// against the pre-edit document. Positions are normalized and clamped.
func (sb *SliceBuffer) Delete(start, end types.Position) (types.Delta, error) {
	if start == end {
		return types.Delta{}, nil
	}
	if end.Before(start) {
		start, end = end, start
	}

	vStart, startOffsetInLine, err := sb.validatePosition(start)
	if err != nil {
		return types.Delta{}, fmt.Errorf("invalid delete range: %w", err)
	}
	vEnd, endOffsetInLine, err := sb.validatePosition(end)
	if err != nil {
		return types.Delta{}, fmt.Errorf("invalid delete range: %w", err)
	}
	if vStart == vEnd {
		return types.Delta{}, nil
	}

	startLineStart, _ := sb.LineStartByte(vStart.Line)
	endLineStart, _ := sb.LineStartByte(vEnd.Line)
	startByte := startLineStart + startOffsetInLine
	endByte := endLineStart + endOffsetInLine
	startChar := sb.LineToChar(vStart.Line) + vStart.Col
	endChar := sb.LineToChar(vEnd.Line) + vEnd.Col

	delta := types.Delta{
		ByteOffset: startByte,
		OldByteLen: endByte - startByte,
		CharOffset: startChar,
		OldCharLen: endChar - startChar,
	}

	sb.modified = true

	startLineBytes := sb.lines[vStart.Line]
	if vStart.Line == vEnd.Line {
		sb.lines[vStart.Line] = append(startLineBytes[:startOffsetInLine], startLineBytes[endOffsetInLine:]...)
	} else {
		endLineBytes := sb.lines[vEnd.Line]
		merged := append(startLineBytes[:startOffsetInLine], endLineBytes[endOffsetInLine:]...)
		sb.lines[vStart.Line] = merged

		firstRemoved := vStart.Line + 1
		lastRemoved := vEnd.Line
		if lastRemoved+1 >= len(sb.lines) {
			sb.lines = sb.lines[:firstRemoved]
		} else {
			sb.lines = append(sb.lines[:firstRemoved], sb.lines[lastRemoved+1:]...)
		}
	}

	if len(sb.lines) == 0 {
		sb.lines = [][]byte{[]byte("")}
	}
	return delta, nil
}

// validatePosition clamps pos onto the buffer and returns the byte offset
// of the column within its line.
func (sb *SliceBuffer) validatePosition(pos types.Position) (types.Position, int, error) {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
	}

	line := sb.lines[pos.Line]
	col := pos.Col
	if col < 0 {
		col = 0
	}
	byteOff := 0
	runeCount := 0
	for i := 0; i < len(line); {
		if runeCount == col {
			break
		}
		_, size := utf8.DecodeRune(line[i:])
		byteOff += size
		runeCount++
		i += size
	}
	if runeCount < col {
		col = runeCount
		byteOff = len(line)
	}
	return types.Position{Line: pos.Line, Col: col}, byteOff, nil
}

// runeSliceBytes returns the byte length of the first n runes of line,
// clamping n to the rune count.
func runeSliceBytes(line []byte, n int) int {
	if n <= 0 {
		return 0
	}
	byteOff := 0
	runeCount := 0
	for byteOff < len(line) && runeCount < n {
		_, size := utf8.DecodeRune(line[byteOff:])
		byteOff += size
		runeCount++
	}
	return byteOff
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Compile-time interface check.
var _ Buffer = (*SliceBuffer)(nil)
