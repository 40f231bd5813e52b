// internal/syntax/languages.go
package syntax

import (
	"embed"
	"sync"

	"github.com/wovenlab/loom/internal/logger"
	"github.com/wovenlab/loom/internal/syntax/lang"

	// Grammar bindings.
	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"
)

//go:embed queries/*/*.scm
var embeddedQueries embed.FS

var registerLanguagesOnce sync.Once

// RegisterLanguages wires the built-in grammars and their highlight
// queries into the language registry. Safe to call more than once; only
// the first call registers.
func RegisterLanguages() {
	registerLanguagesOnce.Do(registerLanguages)
}

func registerLanguages() {
	lang.QueryFS = embeddedQueries

	lang.Register(&lang.Language{
		Name:       "Go",
		Grammar:    gosrc.GetLanguage(),
		Extensions: []string{".go"},
		QueryDir:   "go",
	})

	lang.Register(&lang.Language{
		Name:       "Python",
		Grammar:    pythonsrc.GetLanguage(),
		Extensions: []string{".py", ".pyw"},
		QueryDir:   "python",
	})

	lang.Register(&lang.Language{
		Name:       "JavaScript",
		Grammar:    jssrc.GetLanguage(),
		Extensions: []string{".js", ".mjs", ".cjs"},
		QueryDir:   "javascript",
	})

	// JSON rides the JavaScript grammar; the query only touches nodes
	// that survive the statement-block mismatch.
	lang.Register(&lang.Language{
		Name:       "JSON",
		Grammar:    jssrc.GetLanguage(),
		Extensions: []string{".json"},
		QueryDir:   "json",
	})

	lang.Register(&lang.Language{
		Name:       "Rust",
		Grammar:    rustsrc.GetLanguage(),
		Extensions: []string{".rs"},
		QueryDir:   "rust",
	})

	logger.Debugf("syntax: %d languages registered", len(lang.GetAll()))
}
