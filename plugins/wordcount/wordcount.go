// plugins/wordcount/wordcount.go
package wordcount

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/wovenlab/loom/internal/plugin"
)

var _ plugin.Plugin = (*WordCount)(nil)

// WordCount registers a ':wc' command that reports line, word, char and
// byte counts for the buffer.
type WordCount struct {
	api plugin.EditorAPI
}

// New creates the wordcount plugin.
func New() *WordCount {
	return &WordCount{}
}

// Name returns the plugin identifier.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize registers the ':wc' command.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("wc", p.executeWordCount); err != nil {
		return fmt.Errorf("registering 'wc' command: %w", err)
	}
	return nil
}

// Shutdown has nothing to clean up.
func (p *WordCount) Shutdown() error {
	return nil
}

func (p *WordCount) executeWordCount([]string) error {
	content := p.api.GetBufferBytes()

	lines := p.api.GetBufferLineCount()
	words := len(bytes.Fields(content))
	chars := utf8.RuneCount(content)

	p.api.SetStatusMessage("Lines: %d  Words: %d  Chars: %d  Bytes: %d",
		lines, words, chars, len(content))
	return nil
}
