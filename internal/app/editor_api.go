// internal/app/editor_api.go
package app

import (
	"fmt"

	"github.com/wovenlab/loom/internal/event"
	"github.com/wovenlab/loom/internal/plugin"
	"github.com/wovenlab/loom/internal/types"
)

var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI is the app-backed implementation of plugin.EditorAPI.
// Mutating calls request a redraw so plugins never touch the screen.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

func (api *appEditorAPI) GetBufferBytes() []byte {
	return api.app.editor.GetBuffer().Bytes()
}

func (api *appEditorAPI) GetBufferLine(line int) ([]byte, error) {
	return api.app.editor.GetBuffer().Line(line)
}

func (api *appEditorAPI) GetBufferLineCount() int {
	return api.app.editor.GetBuffer().LineCount()
}

func (api *appEditorAPI) GetBufferFilePath() string {
	return api.app.editor.GetBuffer().FilePath()
}

func (api *appEditorAPI) IsBufferModified() bool {
	return api.app.editor.GetBuffer().IsModified()
}

// InsertText inserts at the cursor and commits a revision, exactly as
// typed input would.
func (api *appEditorAPI) InsertText(text []byte) error {
	if err := api.app.editor.InsertText(text); err != nil {
		return fmt.Errorf("inserting text: %w", err)
	}
	api.app.requestRedraw()
	return nil
}

func (api *appEditorAPI) SaveBuffer() error {
	return api.app.editor.SaveBuffer()
}

func (api *appEditorAPI) GetCursor() types.Position {
	return api.app.editor.GetCursor()
}

func (api *appEditorAPI) SetCursor(pos types.Position) {
	api.app.editor.SetCursor(pos)
	api.app.requestRedraw()
}

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.modeHandler.RegisterCommand(name, cmdFunc)
}

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

func (api *appEditorAPI) SetTheme(name string) error {
	if err := api.app.themeManager.SetTheme(name); err != nil {
		return err
	}
	api.app.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: name})
	return nil
}

func (api *appEditorAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}
