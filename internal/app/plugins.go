// internal/app/plugins.go
package app

import (
	"github.com/wovenlab/loom/internal/logger"
	"github.com/wovenlab/loom/internal/plugin"
	"github.com/wovenlab/loom/plugins/autosave"
	"github.com/wovenlab/loom/plugins/wordcount"
)

// registerPlugins registers the bundled plugins. A plugin that fails to
// register is logged and skipped; the others still load.
func (a *App) registerPlugins() {
	bundled := []plugin.Plugin{
		autosave.New(),
		wordcount.New(),
	}
	for _, p := range bundled {
		if err := a.pluginManager.Register(p); err != nil {
			logger.Errorf("app: registering plugin %q: %v", p.Name(), err)
		}
	}
}
