// internal/modehandler/modehandler_test.go
package modehandler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/wovenlab/loom/internal/buffer"
	"github.com/wovenlab/loom/internal/core"
	"github.com/wovenlab/loom/internal/core/history"
	"github.com/wovenlab/loom/internal/event"
	"github.com/wovenlab/loom/internal/input"
	"github.com/wovenlab/loom/internal/statusbar"
	"github.com/wovenlab/loom/internal/tui"
	"github.com/wovenlab/loom/internal/types"
)

// newTestHandler loads content through a real file so the buffer starts
// unmodified, the same state an opened file has.
func newTestHandler(t *testing.T, content string) (*ModeHandler, *core.Editor, chan struct{}) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "buffer.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	buf := buffer.NewSliceBuffer()
	if err := buf.Load(path); err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	ed := core.NewEditor(buf)
	ed.SetHistory(history.New(buf.Bytes()))
	ed.SetViewSize(80, 24)

	mgr := event.NewManager()
	ed.SetEventManager(mgr)

	quit := make(chan struct{})
	mh := New(Config{
		Editor:         ed,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   mgr,
		StatusBar:      statusbar.New(),
		HistoryView:    tui.NewHistoryView(),
		QuitSignal:     quit,
	})
	return mh, ed, quit
}

func press(mh *ModeHandler, key tcell.Key, mod tcell.ModMask) {
	mh.HandleKeyEvent(tcell.NewEventKey(key, 0, mod))
}

func typeText(mh *ModeHandler, s string) {
	for _, r := range s {
		mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func quitSignaled(quit chan struct{}) bool {
	select {
	case <-quit:
		return true
	default:
		return false
	}
}

func TestTypingInsertsText(t *testing.T) {
	mh, ed, _ := newTestHandler(t, "")

	typeText(mh, "hi")

	if got := string(ed.GetBuffer().Bytes()); got != "hi" {
		t.Fatalf("buffer = %q, want %q", got, "hi")
	}
	if got := ed.GetCursor(); got != (types.Position{Line: 0, Col: 2}) {
		t.Fatalf("cursor = %+v, want (0,2)", got)
	}
	if mh.CurrentMode() != ModeNormal {
		t.Fatalf("mode = %v, want ModeNormal", mh.CurrentMode())
	}
}

func TestShiftMovementExtendsSelection(t *testing.T) {
	mh, ed, _ := newTestHandler(t, "hello")

	press(mh, tcell.KeyRight, tcell.ModShift)
	press(mh, tcell.KeyRight, tcell.ModShift)

	start, end, ok := ed.GetSelection()
	if !ok {
		t.Fatal("shift+right did not start a selection")
	}
	if start != (types.Position{Line: 0, Col: 0}) || end != (types.Position{Line: 0, Col: 2}) {
		t.Fatalf("selection = %+v..%+v, want (0,0)..(0,2)", start, end)
	}

	// Plain movement drops the selection.
	press(mh, tcell.KeyRight, tcell.ModNone)
	if _, _, ok := ed.GetSelection(); ok {
		t.Fatal("plain movement kept the selection")
	}
}

func TestCutThroughKeys(t *testing.T) {
	mh, ed, _ := newTestHandler(t, "hello")

	for i := 0; i < 3; i++ {
		press(mh, tcell.KeyRight, tcell.ModShift)
	}
	press(mh, tcell.KeyCtrlX, tcell.ModCtrl)

	if got := string(ed.GetBuffer().Bytes()); got != "lo" {
		t.Fatalf("buffer after cut = %q, want %q", got, "lo")
	}
	if mh.CurrentMode() != ModeNormal {
		t.Fatalf("mode = %v, want ModeNormal", mh.CurrentMode())
	}
}

func TestCommandModeRoundTrip(t *testing.T) {
	mh, _, _ := newTestHandler(t, "")

	press(mh, tcell.KeyCtrlE, tcell.ModCtrl)
	if mh.CurrentMode() != ModeCommand {
		t.Fatalf("mode = %v, want ModeCommand", mh.CurrentMode())
	}

	typeText(mh, "wq")
	if got := mh.CommandBuffer(); got != "wq" {
		t.Fatalf("command buffer = %q, want %q", got, "wq")
	}

	press(mh, tcell.KeyBackspace2, tcell.ModNone)
	if got := mh.CommandBuffer(); got != "w" {
		t.Fatalf("command buffer after backspace = %q, want %q", got, "w")
	}

	press(mh, tcell.KeyEscape, tcell.ModNone)
	if mh.CurrentMode() != ModeNormal {
		t.Fatalf("escape did not cancel command mode, mode = %v", mh.CurrentMode())
	}
	if got := mh.CommandBuffer(); got != "" {
		t.Fatalf("command buffer survived cancel: %q", got)
	}
}

func TestCommandExecution(t *testing.T) {
	mh, _, _ := newTestHandler(t, "")

	var gotArgs []string
	err := mh.RegisterCommand("greet", func(args []string) error {
		gotArgs = append([]string{}, args...)
		return nil
	})
	if err != nil {
		t.Fatalf("RegisterCommand: %v", err)
	}
	if err := mh.RegisterCommand("greet", func([]string) error { return nil }); err == nil {
		t.Fatal("duplicate RegisterCommand succeeded")
	}

	press(mh, tcell.KeyCtrlE, tcell.ModCtrl)
	typeText(mh, "greet a b")
	press(mh, tcell.KeyEnter, tcell.ModNone)

	if len(gotArgs) != 2 || gotArgs[0] != "a" || gotArgs[1] != "b" {
		t.Fatalf("command args = %v, want [a b]", gotArgs)
	}
	if mh.CurrentMode() != ModeNormal {
		t.Fatalf("mode after execution = %v, want ModeNormal", mh.CurrentMode())
	}
}

func TestFindMovesCursorAndHighlights(t *testing.T) {
	mh, ed, _ := newTestHandler(t, "alpha beta\ngamma beta")

	press(mh, tcell.KeyCtrlF, tcell.ModCtrl)
	if mh.CurrentMode() != ModeFind {
		t.Fatalf("mode = %v, want ModeFind", mh.CurrentMode())
	}
	typeText(mh, "beta")
	press(mh, tcell.KeyEnter, tcell.ModNone)

	if mh.CurrentMode() != ModeNormal {
		t.Fatalf("mode after search = %v, want ModeNormal", mh.CurrentMode())
	}
	if got := ed.GetCursor(); got != (types.Position{Line: 0, Col: 6}) {
		t.Fatalf("cursor = %+v, want (0,6)", got)
	}
	if !ed.HasSearchHighlights() {
		t.Fatal("search did not highlight matches")
	}
}

func TestFindNextWrapsAround(t *testing.T) {
	mh, ed, _ := newTestHandler(t, "foo bar foo")

	press(mh, tcell.KeyCtrlF, tcell.ModCtrl)
	typeText(mh, "foo")
	press(mh, tcell.KeyEnter, tcell.ModNone)
	if got := ed.GetCursor(); got != (types.Position{Line: 0, Col: 0}) {
		t.Fatalf("initial match at %+v, want (0,0)", got)
	}

	press(mh, tcell.KeyCtrlN, tcell.ModCtrl)
	if got := ed.GetCursor(); got != (types.Position{Line: 0, Col: 8}) {
		t.Fatalf("next match at %+v, want (0,8)", got)
	}

	// Past the last match the search wraps to the first.
	press(mh, tcell.KeyCtrlN, tcell.ModCtrl)
	if got := ed.GetCursor(); got != (types.Position{Line: 0, Col: 0}) {
		t.Fatalf("wrapped match at %+v, want (0,0)", got)
	}

	// Reverse direction from the first match.
	press(mh, tcell.KeyCtrlP, tcell.ModCtrl)
	if got := ed.GetCursor(); got != (types.Position{Line: 0, Col: 8}) {
		t.Fatalf("previous match at %+v, want (0,8)", got)
	}
}

func TestEscapeClearsHighlightsThenQuits(t *testing.T) {
	mh, ed, quit := newTestHandler(t, "foo")

	press(mh, tcell.KeyCtrlF, tcell.ModCtrl)
	typeText(mh, "foo")
	press(mh, tcell.KeyEnter, tcell.ModNone)
	if !ed.HasSearchHighlights() {
		t.Fatal("search did not highlight matches")
	}

	press(mh, tcell.KeyEscape, tcell.ModNone)
	if ed.HasSearchHighlights() {
		t.Fatal("first escape did not clear highlights")
	}
	if quitSignaled(quit) {
		t.Fatal("first escape quit while highlights were active")
	}

	press(mh, tcell.KeyEscape, tcell.ModNone)
	if !quitSignaled(quit) {
		t.Fatal("second escape did not quit an unmodified buffer")
	}
}

func TestQuitPromptsOnUnsavedChanges(t *testing.T) {
	mh, _, quit := newTestHandler(t, "")
	typeText(mh, "x")

	press(mh, tcell.KeyEscape, tcell.ModNone)
	if quitSignaled(quit) {
		t.Fatal("escape quit despite unsaved changes")
	}
	if !mh.forceQuitPending {
		t.Fatal("escape did not arm the quit confirmation")
	}

	// Any other action cancels the confirmation.
	press(mh, tcell.KeyRight, tcell.ModNone)
	if mh.forceQuitPending {
		t.Fatal("movement did not cancel the quit confirmation")
	}

	press(mh, tcell.KeyEscape, tcell.ModNone)
	press(mh, tcell.KeyEscape, tcell.ModNone)
	if !quitSignaled(quit) {
		t.Fatal("second escape did not quit")
	}
}

func TestForceQuitBypassesPrompt(t *testing.T) {
	mh, _, quit := newTestHandler(t, "")
	typeText(mh, "x")

	press(mh, tcell.KeyCtrlQ, tcell.ModCtrl)
	if !quitSignaled(quit) {
		t.Fatal("ctrl+q did not quit a modified buffer")
	}
}

func TestHistoryModeJumpAndClose(t *testing.T) {
	mh, ed, _ := newTestHandler(t, "")
	typeText(mh, "ab") // revisions 0 (root), 1 ("a"), 2 ("ab")

	press(mh, tcell.KeyCtrlT, tcell.ModCtrl)
	if mh.CurrentMode() != ModeHistory {
		t.Fatalf("mode = %v, want ModeHistory", mh.CurrentMode())
	}
	hv := mh.historyView
	if !hv.Visible() {
		t.Fatal("history view not visible after toggle")
	}
	if got := hv.SelectedIndex(); got != 2 {
		t.Fatalf("selection = %d, want head 2", got)
	}

	press(mh, tcell.KeyUp, tcell.ModNone)
	if got := hv.SelectedIndex(); got != 1 {
		t.Fatalf("selection after up = %d, want 1", got)
	}

	press(mh, tcell.KeyEnter, tcell.ModNone)
	if got := string(ed.GetBuffer().Bytes()); got != "a" {
		t.Fatalf("buffer after jump = %q, want %q", got, "a")
	}
	if mh.CurrentMode() != ModeHistory {
		t.Fatal("jump closed the overlay; it should stay open")
	}

	press(mh, tcell.KeyEscape, tcell.ModNone)
	if mh.CurrentMode() != ModeNormal {
		t.Fatalf("escape did not close history mode, mode = %v", mh.CurrentMode())
	}
	if hv.Visible() {
		t.Fatal("history view still visible after close")
	}
}

func TestTypingWhileHistoryOpenIsIgnored(t *testing.T) {
	mh, ed, _ := newTestHandler(t, "")
	typeText(mh, "ab")

	press(mh, tcell.KeyCtrlT, tcell.ModCtrl)
	typeText(mh, "zz")

	if got := string(ed.GetBuffer().Bytes()); got != "ab" {
		t.Fatalf("buffer changed while history open: %q", got)
	}
}
