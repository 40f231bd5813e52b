// plugins/autosave/autosave.go
package autosave

import (
	"time"

	"github.com/wovenlab/loom/internal/config"
	"github.com/wovenlab/loom/internal/event"
	"github.com/wovenlab/loom/internal/logger"
	"github.com/wovenlab/loom/internal/plugin"
	"github.com/wovenlab/loom/internal/utils"
)

var _ plugin.Plugin = (*AutoSave)(nil)

// saveDelay is how long edits must pause before the buffer is written.
const saveDelay = 2 * time.Second

// AutoSave writes a named, modified buffer to disk once edits settle. It
// listens for buffer modifications and debounces them, so a typing burst
// costs a single save. Disabled unless the config enables it.
type AutoSave struct {
	api       plugin.EditorAPI
	enabled   bool
	debouncer utils.Debouncer
}

// New creates the autosave plugin.
func New() plugin.Plugin {
	return &AutoSave{}
}

// Name returns the plugin identifier.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads the config toggle and subscribes to buffer changes.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	p.enabled = config.Get().Editor.Autosave
	if !p.enabled {
		logger.Debugf("autosave: disabled by config")
		return nil
	}

	api.SubscribeEvent(event.TypeBufferModified, func(event.Event) bool {
		p.debouncer.Debounce(saveDelay, p.saveIfModified)
		return false
	})
	logger.Infof("autosave: enabled, saving %v after changes settle", saveDelay)
	return nil
}

// Shutdown cancels any pending save.
func (p *AutoSave) Shutdown() error {
	p.debouncer.Cancel()
	return nil
}

func (p *AutoSave) saveIfModified() {
	if !p.api.IsBufferModified() {
		return
	}
	filePath := p.api.GetBufferFilePath()
	if filePath == "" {
		// A buffer that was never saved has no destination to write to.
		logger.Debugf("autosave: unnamed buffer, skipping")
		return
	}

	if err := p.api.SaveBuffer(); err != nil {
		logger.Errorf("autosave: saving %s failed: %v", filePath, err)
		return
	}
	p.api.SetStatusMessage("Auto-saved %s", filePath)
	logger.Debugf("autosave: saved %s", filePath)
}
