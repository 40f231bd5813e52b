// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"github.com/wovenlab/loom/internal/config"
	"github.com/wovenlab/loom/internal/theme"
	"github.com/wovenlab/loom/internal/types"
)

// StatusBar renders the bottom status line: file and mode on the left,
// language, revision position and cursor on the right. Temporary messages
// replace the whole line until they expire.
type StatusBar struct {
	mu sync.Mutex

	filePath   string
	isModified bool
	editorMode string
	cursorPos  types.Position

	language string
	parsing  bool

	headIndex int
	revisions int

	tempMessage     string
	tempMessageTime time.Time
	messageTimeout  time.Duration
}

// New creates a status bar with the default message timeout.
func New() *StatusBar {
	return &StatusBar{
		messageTimeout: config.MessageTimeout,
	}
}

// SetFileInfo updates the displayed file path and dirty flag.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the displayed cursor position.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetEditorMode updates the displayed input mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetSyntaxInfo updates the language segment. While a parse is in flight
// the language name carries a trailing asterisk.
func (sb *StatusBar) SetSyntaxInfo(language string, parsing bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.language = language
	sb.parsing = parsing
}

// SetHistoryInfo updates the revision segment. head is the current
// revision index, revisions the total number of revisions in the history.
func (sb *StatusBar) SetHistoryInfo(head, revisions int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.headIndex = head
	sb.revisions = revisions
}

// SetTemporaryMessage displays a message until the timeout elapses.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// ResetTemporaryMessage clears any temporary message immediately.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

func (sb *StatusBar) leftDisplayText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	if sb.editorMode != "" {
		return fmt.Sprintf("%s -- %s", fPath, sb.editorMode)
	}
	return fPath
}

func (sb *StatusBar) rightDisplayText() string {
	parts := make([]string, 0, 3)
	if sb.language != "" {
		lang := sb.language
		if sb.parsing {
			lang += "*"
		}
		parts = append(parts, lang)
	}
	if sb.revisions > 1 {
		parts = append(parts, fmt.Sprintf("rev %d/%d", sb.headIndex, sb.revisions-1))
	}
	parts = append(parts, fmt.Sprintf("%d:%d", sb.cursorPos.Line+1, sb.cursorPos.Col+1))
	return strings.Join(parts, " | ")
}

// Draw renders the status bar on the last line of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, activeTheme *theme.Theme) {
	if height <= 0 || width <= 0 || activeTheme == nil {
		return
	}
	y := height - 1

	sb.mu.Lock()
	msgActive := !sb.tempMessageTime.IsZero() && time.Since(sb.tempMessageTime) <= sb.messageTimeout
	if !sb.tempMessageTime.IsZero() && !msgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	message := sb.tempMessage
	left := sb.leftDisplayText()
	right := sb.rightDisplayText()
	modified := sb.isModified
	sb.mu.Unlock()

	barStyle := activeTheme.GetStyle("StatusBar")
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, barStyle)
	}

	if msgActive {
		style := activeTheme.GetStyle("StatusBarMessage")
		// Prompt echo (":w", "/term") gets the input style.
		if strings.HasPrefix(message, ":") || strings.HasPrefix(message, "/") {
			style = activeTheme.GetStyle("StatusBarFind")
		}
		drawText(screen, 0, y, width, style, message)
		return
	}

	leftLimit := width
	rightWidth := uniseg.StringWidth(right)
	if rightWidth > 0 && rightWidth+1 < width {
		drawText(screen, width-rightWidth, y, width, barStyle, right)
		leftLimit = width - rightWidth - 1
	}

	x := drawText(screen, 0, y, leftLimit, barStyle, left)
	if modified {
		drawText(screen, x, y, leftLimit, activeTheme.GetStyle("StatusBarModified"), " [Modified]")
	}
}

// drawText renders s one grapheme cluster at a time starting at x,
// clipping at maxX. Returns the column after the last drawn cluster.
func drawText(screen tcell.Screen, x, y, maxX int, style tcell.Style, s string) int {
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > maxX {
			break
		}
		runes := gr.Runes()
		if len(runes) == 0 {
			continue
		}
		var combining []rune
		if len(runes) > 1 {
			combining = runes[1:]
		}
		screen.SetContent(x, y, runes[0], combining, style)
		x += clusterWidth
	}
	return x
}
