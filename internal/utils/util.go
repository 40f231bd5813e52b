package utils

import (
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// VisualColumn computes the screen column of a rune index within a line,
// honoring grapheme clusters, wide glyphs and tab stops. Tab stops are
// relative to the line start, so the result is independent of scrolling.
func VisualColumn(line []byte, runeIndex, tabWidth int) int {
	if runeIndex <= 0 {
		return 0
	}
	if tabWidth <= 0 {
		tabWidth = 1
	}
	width := 0
	runesSeen := 0
	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() {
		if runesSeen >= runeIndex {
			break
		}
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' {
			width += tabWidth - (width % tabWidth)
		} else {
			width += gr.Width()
		}
		runesSeen += len(runes)
	}
	return width
}

// RuneIndexToByteOffset converts a rune index within line to a byte offset.
// An index one past the last rune maps to len(line); anything further
// returns -1.
func RuneIndexToByteOffset(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	byteOffset := 0
	currentRune := 0
	for byteOffset < len(line) {
		if currentRune == runeIndex {
			return byteOffset
		}
		_, size := utf8.DecodeRune(line[byteOffset:])
		byteOffset += size
		currentRune++
	}
	if currentRune == runeIndex {
		return len(line)
	}
	return -1
}

// ByteOffsetToRuneIndex converts a byte offset within line to a rune index.
// Offsets landing inside a multi-byte rune resolve to that rune's index;
// out-of-range offsets clamp.
func ByteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	runeIndex := 0
	currentOffset := 0
	for currentOffset < byteOffset {
		_, size := utf8.DecodeRune(line[currentOffset:])
		if currentOffset+size > byteOffset {
			break
		}
		currentOffset += size
		runeIndex++
	}
	return runeIndex
}

// Debouncer coalesces bursts of calls into one deferred invocation.
type Debouncer struct {
	mutex sync.Mutex
	timer *time.Timer
}

// Debounce schedules fn after duration, cancelling any pending call.
// fn runs on the timer goroutine.
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(duration, func() {
		d.mutex.Lock()
		d.timer = nil
		d.mutex.Unlock()
		fn()
	})
}

// Cancel stops any pending invocation.
func (d *Debouncer) Cancel() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
