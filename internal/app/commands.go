// internal/app/commands.go
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wovenlab/loom/internal/event"
	"github.com/wovenlab/loom/internal/plugin"
)

// registerBuiltinCommands installs the ':' commands that ship with the
// editor. Plugins add their own through the editor API.
func (a *App) registerBuiltinCommands() error {
	builtins := map[string]plugin.CommandFunc{
		"w":      a.cmdWrite,
		"q":      a.cmdQuit,
		"q!":     a.cmdForceQuit,
		"wq":     a.cmdWriteQuit,
		"theme":  a.cmdTheme,
		"themes": a.cmdThemes,
		"undo":   a.cmdUndo,
		"redo":   a.cmdRedo,
	}
	for name, fn := range builtins {
		if err := a.modeHandler.RegisterCommand(name, fn); err != nil {
			return err
		}
	}
	return nil
}

// cmdWrite saves the buffer, at an override path when one is given.
func (a *App) cmdWrite(args []string) error {
	var err error
	if len(args) > 0 {
		err = a.editor.SaveBuffer(args[0])
	} else {
		err = a.editor.SaveBuffer()
	}
	if err != nil {
		return err
	}
	a.statusBar.SetTemporaryMessage("Written %s", a.editor.GetBuffer().FilePath())
	return nil
}

func (a *App) cmdQuit(args []string) error {
	if !a.modeHandler.RequestQuit(false) {
		return errors.New("no write since last change (use :q! or :wq)")
	}
	return nil
}

func (a *App) cmdForceQuit(args []string) error {
	a.modeHandler.RequestQuit(true)
	return nil
}

func (a *App) cmdWriteQuit(args []string) error {
	if err := a.cmdWrite(args); err != nil {
		return err
	}
	a.modeHandler.RequestQuit(true)
	return nil
}

// cmdTheme shows the active theme, or switches to the named one. Theme
// names may contain spaces, so the arguments are rejoined.
func (a *App) cmdTheme(args []string) error {
	if len(args) == 0 {
		a.statusBar.SetTemporaryMessage("Current theme: %s", a.themeManager.Current().Name)
		return nil
	}
	name := strings.Join(args, " ")
	if err := a.themeManager.SetTheme(name); err != nil {
		return fmt.Errorf("setting theme: %w", err)
	}
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: name})
	a.statusBar.SetTemporaryMessage("Theme set to %s", name)
	return nil
}

func (a *App) cmdThemes(args []string) error {
	names := a.themeManager.ListThemes()
	a.statusBar.SetTemporaryMessage("Themes: %s", strings.Join(names, ", "))
	return nil
}

func (a *App) cmdUndo(args []string) error {
	if !a.editor.Undo() {
		return errors.New("already at oldest revision")
	}
	a.statusBar.SetTemporaryMessage("Undo")
	return nil
}

func (a *App) cmdRedo(args []string) error {
	if !a.editor.Redo() {
		return errors.New("already at newest revision")
	}
	a.statusBar.SetTemporaryMessage("Redo")
	return nil
}
