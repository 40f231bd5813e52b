// internal/types/position.go
package types

// Position is a cursor or text location within the buffer.
// Line is the 0-based line index; Col is the 0-based rune index within
// that line, so multi-byte characters count as one column.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p precedes q in document order.
func (p Position) Before(q Position) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Col < q.Col)
}
