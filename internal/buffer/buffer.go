// internal/buffer/buffer.go
package buffer

import "github.com/wovenlab/loom/internal/types"

// Buffer is the text storage contract the rest of the editor programs
// against. Columns in types.Position are rune indices; "char" in offset
// names means runes; newlines count as one char and one byte.
type Buffer interface {
	// File handling
	Load(filePath string) error
	Save(filePath string) error
	FilePath() string
	IsModified() bool

	// Content views
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Bytes() []byte
	// SetBytes replaces the whole content, as when the revision history
	// restores a snapshot.
	SetBytes(content []byte)

	// Geometry
	ByteLen() int
	CharLen() int
	// BytesRange extracts the bytes in [startByte, endByte) touching only
	// the lines that overlap the range.
	BytesRange(startByte, endByte int) []byte
	// LineStartByte is the byte offset of the first byte of a line.
	LineStartByte(line int) (int, error)

	// Offset conversions
	CharToByte(charOffset int) int
	ByteToChar(byteOffset int) int
	CharToLine(charOffset int) int
	LineToChar(line int) int
	PosToByteOffset(pos types.Position) (int, error)
	PosToCharOffset(pos types.Position) (int, error)
	ByteOffsetToPos(offset int) types.Position
	// ByteOffsetToLineCol resolves a byte offset to a line index and a
	// byte column within that line (tree-sitter point geometry, unlike
	// the rune columns in types.Position).
	ByteOffsetToLineCol(offset int) (line, col int)

	// Mutations. The returned delta describes the change in both byte and
	// rune geometry and feeds the revision history and the syntax manager.
	Insert(pos types.Position, text []byte) (types.Delta, error)
	Delete(start, end types.Position) (types.Delta, error)
}
