// internal/input/keymap_test.go
package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"plain rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: 'a'}},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), ActionEvent{Action: ActionInsertRune, Rune: 'A'}},
		{"multibyte rune", tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: 'é'}},
		{"alt rune ignored", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionEvent{Action: ActionMoveUp}},
		{"shift arrow still moves", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), ActionEvent{Action: ActionMoveUp}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModNone), ActionEvent{Action: ActionInsertNewLine}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, '\t', tcell.ModNone), ActionEvent{Action: ActionInsertTab}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), ActionEvent{Action: ActionDeleteCharBackward}},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), ActionEvent{Action: ActionDeleteCharForward}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionEvent{Action: ActionQuit}},
		{"ctrl-s save", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), ActionEvent{Action: ActionSave}},
		{"ctrl-z undo", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionEvent{Action: ActionUndo}},
		{"ctrl-y redo", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), ActionEvent{Action: ActionRedo}},
		{"ctrl-t history", tcell.NewEventKey(tcell.KeyCtrlT, 0, tcell.ModCtrl), ActionEvent{Action: ActionToggleHistory}},
		{"ctrl-e command mode", tcell.NewEventKey(tcell.KeyCtrlE, 0, tcell.ModCtrl), ActionEvent{Action: ActionEnterCommandMode}},
		{"ctrl-f find mode", tcell.NewEventKey(tcell.KeyCtrlF, 0, tcell.ModCtrl), ActionEvent{Action: ActionEnterFindMode}},
		{"ctrl-c yank", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), ActionEvent{Action: ActionYank}},
		{"ctrl-x cut", tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl), ActionEvent{Action: ActionCut}},
		{"ctrl-v paste", tcell.NewEventKey(tcell.KeyCtrlV, 0, tcell.ModCtrl), ActionEvent{Action: ActionPaste}},
		{"unbound function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ActionEvent{Action: ActionUnknown}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.ProcessEvent(tc.ev); got != tc.want {
				t.Errorf("ProcessEvent(%s) = %+v, want %+v", tc.name, got, tc.want)
			}
		})
	}
}

// A control chord must decode the same way regardless of the reported
// modifier mask; the key value alone identifies it.
func TestProcessEventCtrlWithoutModifier(t *testing.T) {
	p := NewInputProcessor()
	got := p.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModNone))
	if got.Action != ActionSave {
		t.Errorf("ProcessEvent(CtrlS, ModNone) = %+v, want ActionSave", got)
	}
}
