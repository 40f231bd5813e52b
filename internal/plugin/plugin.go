// internal/plugin/plugin.go
package plugin

import (
	"github.com/wovenlab/loom/internal/event"
	"github.com/wovenlab/loom/internal/types"
)

// CommandFunc is the signature for ':' commands registered by plugins.
type CommandFunc func(args []string) error

// EditorAPI is the surface plugins interact with. It is implemented by the
// app layer and deliberately narrower than the editor itself.
type EditorAPI interface {
	// Buffer access
	GetBufferBytes() []byte
	GetBufferLine(line int) ([]byte, error)
	GetBufferLineCount() int
	GetBufferFilePath() string
	IsBufferModified() bool

	// Editing
	InsertText(text []byte) error
	SaveBuffer() error

	// Cursor
	GetCursor() types.Position
	SetCursor(pos types.Position)

	// Event bus
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// Commands and status bar
	RegisterCommand(name string, cmdFunc CommandFunc) error
	SetStatusMessage(format string, args ...interface{})

	// Themes
	SetTheme(name string) error
	ListThemes() []string
}

// Plugin is the interface every plugin implements.
type Plugin interface {
	// Name returns the unique identifier of the plugin.
	Name() string

	// Initialize is called once at startup with the editor API. Plugins
	// subscribe to events and register commands here.
	Initialize(api EditorAPI) error

	// Shutdown is called once while the editor exits.
	Shutdown() error
}
