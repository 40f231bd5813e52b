// internal/statusbar/statusbar_test.go
package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/wovenlab/loom/internal/theme"
	"github.com/wovenlab/loom/internal/types"
)

const (
	testWidth  = 60
	testHeight = 10
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("initializing simulation screen: %v", err)
	}
	screen.SetSize(testWidth, testHeight)
	t.Cleanup(screen.Fini)
	return screen
}

func rowString(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteString(string(cells[y*w+x].Runes))
	}
	return b.String()
}

func cellStyle(screen tcell.SimulationScreen, x, y int) tcell.Style {
	cells, w, _ := screen.GetContents()
	return cells[y*w+x].Style
}

func TestDrawDefaultLine(t *testing.T) {
	screen := newTestScreen(t)
	sb := New()
	sb.SetFileInfo("main.go", true)
	sb.SetCursorInfo(types.Position{Line: 2, Col: 3})
	sb.SetHistoryInfo(2, 3)
	sb.SetSyntaxInfo("go", false)

	sb.Draw(screen, testWidth, testHeight, &theme.DevComfortDark)
	screen.Show()

	row := rowString(screen, testHeight-1)
	if !strings.HasPrefix(row, "main.go [Modified]") {
		t.Errorf("left segment = %q, want prefix %q", row, "main.go [Modified]")
	}
	if !strings.HasSuffix(row, "go | rev 2/2 | 3:4") {
		t.Errorf("right segment = %q, want suffix %q", row, "go | rev 2/2 | 3:4")
	}

	// The dirty marker is drawn in its own style.
	markerX := len("main.go ")
	want := theme.DevComfortDark.GetStyle("StatusBarModified")
	if got := cellStyle(screen, markerX, testHeight-1); got != want {
		t.Errorf("modified marker style = %v, want %v", got, want)
	}
}

func TestDrawParsingIndicator(t *testing.T) {
	screen := newTestScreen(t)
	sb := New()
	sb.SetFileInfo("main.go", false)
	sb.SetSyntaxInfo("go", true)

	sb.Draw(screen, testWidth, testHeight, &theme.DevComfortDark)
	screen.Show()

	row := rowString(screen, testHeight-1)
	if !strings.Contains(row, "go* | ") {
		t.Errorf("row = %q, want parsing marker %q", row, "go*")
	}
}

func TestDrawTemporaryMessage(t *testing.T) {
	screen := newTestScreen(t)
	sb := New()
	sb.SetFileInfo("main.go", false)
	sb.SetTemporaryMessage("Buffer saved to %s", "main.go")

	sb.Draw(screen, testWidth, testHeight, &theme.DevComfortDark)
	screen.Show()

	row := rowString(screen, testHeight-1)
	if !strings.HasPrefix(row, "Buffer saved to main.go") {
		t.Errorf("row = %q, want message", row)
	}
	want := theme.DevComfortDark.GetStyle("StatusBarMessage")
	if got := cellStyle(screen, 0, testHeight-1); got != want {
		t.Errorf("message style = %v, want %v", got, want)
	}
}

func TestDrawPromptEcho(t *testing.T) {
	screen := newTestScreen(t)
	sb := New()
	sb.SetTemporaryMessage(":wq")

	sb.Draw(screen, testWidth, testHeight, &theme.DevComfortDark)
	screen.Show()

	row := rowString(screen, testHeight-1)
	if !strings.HasPrefix(row, ":wq") {
		t.Errorf("row = %q, want prompt echo", row)
	}
	want := theme.DevComfortDark.GetStyle("StatusBarFind")
	if got := cellStyle(screen, 0, testHeight-1); got != want {
		t.Errorf("prompt style = %v, want %v", got, want)
	}
}

func TestTemporaryMessageExpires(t *testing.T) {
	screen := newTestScreen(t)
	sb := New()
	sb.SetFileInfo("main.go", false)
	sb.SetTemporaryMessage("fleeting")
	sb.tempMessageTime = time.Now().Add(-2 * sb.messageTimeout)

	sb.Draw(screen, testWidth, testHeight, &theme.DevComfortDark)
	screen.Show()

	row := rowString(screen, testHeight-1)
	if strings.Contains(row, "fleeting") {
		t.Errorf("expired message still drawn: %q", row)
	}
	if !strings.HasPrefix(row, "main.go") {
		t.Errorf("row = %q, want default line after expiry", row)
	}
	if sb.tempMessage != "" {
		t.Errorf("expired message not cleared from state")
	}
}

func TestResetTemporaryMessage(t *testing.T) {
	sb := New()
	sb.SetTemporaryMessage("hello")
	sb.ResetTemporaryMessage()
	if sb.tempMessage != "" || !sb.tempMessageTime.IsZero() {
		t.Errorf("ResetTemporaryMessage left state behind")
	}
}
