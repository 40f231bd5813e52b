// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action

// InputProcessor translates tcell key events into ActionEvents. Control
// chords live in their own map because tcell encodes the modifier in the
// key value itself (Ctrl+S arrives as KeyCtrlS, not 's' plus ModCtrl).
type InputProcessor struct {
	keymap     Keymap
	ctrlKeymap Keymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		ctrlKeymap: make(Keymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyTab] = ActionInsertTab
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyEscape] = ActionQuit

	p.ctrlKeymap[tcell.KeyCtrlQ] = ActionForceQuit
	p.ctrlKeymap[tcell.KeyCtrlS] = ActionSave
	p.ctrlKeymap[tcell.KeyCtrlE] = ActionEnterCommandMode
	p.ctrlKeymap[tcell.KeyCtrlF] = ActionEnterFindMode
	p.ctrlKeymap[tcell.KeyCtrlN] = ActionFindNext
	p.ctrlKeymap[tcell.KeyCtrlP] = ActionFindPrevious
	p.ctrlKeymap[tcell.KeyCtrlC] = ActionYank
	p.ctrlKeymap[tcell.KeyCtrlX] = ActionCut
	p.ctrlKeymap[tcell.KeyCtrlV] = ActionPaste
	p.ctrlKeymap[tcell.KeyCtrlZ] = ActionUndo
	p.ctrlKeymap[tcell.KeyCtrlY] = ActionRedo
	p.ctrlKeymap[tcell.KeyCtrlT] = ActionToggleHistory
}

// ProcessEvent decodes a tcell key event. Mode-specific interpretation of
// the returned action is the mode handler's job, not ours.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	if action, ok := p.ctrlKeymap[key]; ok {
		return ActionEvent{Action: action}
	}

	// Special keys ignore modifiers so Shift+arrow still moves; whether
	// that extends a selection is decided later from the raw event.
	if action, ok := p.keymap[key]; ok {
		return ActionEvent{Action: action}
	}

	if key == tcell.KeyRune && mod&^tcell.ModShift == tcell.ModNone {
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}

	return ActionEvent{Action: ActionUnknown}
}
