// internal/input/action.go
package input

// Action identifies an editor operation decoded from a key event.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit
	ActionSave

	// --- Cursor movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd

	// --- Text manipulation ---
	ActionInsertRune // carries the Rune payload
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteCharForward
	ActionDeleteCharBackward

	// --- Clipboard ---
	ActionYank
	ActionCut
	ActionPaste

	// --- History ---
	ActionUndo
	ActionRedo
	ActionToggleHistory

	// --- Modes / search ---
	ActionEnterCommandMode
	ActionEnterFindMode
	ActionFindNext
	ActionFindPrevious
)

// ActionEvent is a decoded input event plus any payload it carries.
type ActionEvent struct {
	Action Action
	Rune   rune // set for ActionInsertRune
}
