// internal/syntax/lang/registry.go
package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/wovenlab/loom/internal/logger"
)

var (
	registry struct {
		sync.RWMutex
		languages []*Language
		byExt     map[string]*Language
	}

	initOnce sync.Once
)

func initialize() {
	initOnce.Do(func() {
		registry.byExt = make(map[string]*Language)
	})
}

// Register adds a language to the registry, mapping each of its
// extensions. A later registration wins on extension conflicts.
func Register(language *Language) {
	initialize()

	registry.Lock()
	defer registry.Unlock()

	registry.languages = append(registry.languages, language)
	for _, ext := range language.Extensions {
		lowered := strings.ToLower(ext)
		if existing, ok := registry.byExt[lowered]; ok {
			logger.Warnf("lang: extension %s moves from %s to %s", lowered, existing.Name, language.Name)
		}
		registry.byExt[lowered] = language
	}

	logger.Debugf("lang: registered %s for %v", language.Name, language.Extensions)
}

// GetForFile returns the language registered for the file's extension, or
// nil when none matches.
func GetForFile(filePath string) *Language {
	initialize()

	registry.RLock()
	defer registry.RUnlock()

	return registry.byExt[strings.ToLower(filepath.Ext(filePath))]
}

// GetAll returns all registered languages.
func GetAll() []*Language {
	initialize()

	registry.RLock()
	defer registry.RUnlock()

	result := make([]*Language, len(registry.languages))
	copy(result, registry.languages)
	return result
}
