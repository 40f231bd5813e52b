// internal/syntax/lang/language.go
package lang

import (
	"fmt"
	"io/fs"

	"github.com/wovenlab/loom/internal/logger"
	sitter "github.com/smacker/go-tree-sitter"
)

// QueryFS serves the embedded highlight query files. The parent package
// sets it before registering languages.
var QueryFS fs.FS

// Language binds a tree-sitter grammar to the file extensions it covers
// and the highlight query shipped for it.
type Language struct {
	// Name is the display name of the language.
	Name string

	// Grammar is the tree-sitter language instance.
	Grammar *sitter.Language

	// Extensions lists the file extensions mapped to this language,
	// including the leading dot.
	Extensions []string

	// QueryDir is the directory name under queries/ holding this
	// language's highlights.scm.
	QueryDir string
}

// Query returns the raw highlight query source, or nil when none ships
// for this language.
func (l *Language) Query() []byte {
	if QueryFS == nil {
		logger.Warnf("lang: QueryFS not set, queries unavailable")
		return nil
	}
	if l.QueryDir == "" {
		return nil
	}

	path := fmt.Sprintf("queries/%s/highlights.scm", l.QueryDir)
	query, err := fs.ReadFile(QueryFS, path)
	if err != nil {
		logger.Warnf("lang: no highlight query for %s: %v", l.Name, err)
		return nil
	}
	return query
}
