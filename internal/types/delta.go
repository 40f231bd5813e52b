// internal/types/delta.go
package types

import "fmt"

// Delta describes the effect of a single text mutation in both byte and
// rune geometry. It is the value passed between the buffer, the revision
// history, and the syntax manager; offsets address the text *before* the
// edit, lengths describe the replaced and replacement spans.
//
// A Delta is immutable. Every consumer receives its own copy.
type Delta struct {
	ByteOffset int // byte index where the edit begins
	OldByteLen int // bytes removed
	NewByteLen int // bytes inserted
	CharOffset int // rune index where the edit begins
	OldCharLen int // runes removed
	NewCharLen int // runes inserted
}

// IsEmpty reports whether the delta changes nothing (all lengths zero).
func (d Delta) IsEmpty() bool {
	return d.OldByteLen == 0 && d.NewByteLen == 0 &&
		d.OldCharLen == 0 && d.NewCharLen == 0
}

// Reverse returns the delta that undoes d: old and new lengths swap while
// offsets stay fixed. Reversing twice yields the original delta.
func (d Delta) Reverse() Delta {
	return Delta{
		ByteOffset: d.ByteOffset,
		OldByteLen: d.NewByteLen,
		NewByteLen: d.OldByteLen,
		CharOffset: d.CharOffset,
		OldCharLen: d.NewCharLen,
		NewCharLen: d.OldCharLen,
	}
}

// String renders the delta compactly for logs and history summaries.
func (d Delta) String() string {
	return fmt.Sprintf("@%d -%d +%d", d.ByteOffset, d.OldByteLen, d.NewByteLen)
}
