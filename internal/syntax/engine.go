// internal/syntax/engine.go
package syntax

import (
	"context"
	"errors"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrNoLanguage is returned by RequestParse when no grammar is registered
// for the current file. It is the only hard error the parse pipeline
// produces; everything downstream of a successful submission resolves to a
// tree or a noticed cancellation.
var ErrNoLanguage = errors.New("no language grammar for this file type")

// Engine is one reusable parser instance bound to a grammar. Engines are
// expensive to construct, so the manager keeps finished ones on a free
// list. An engine in flight is owned by its job; it must never be touched
// by two goroutines at once.
type Engine struct {
	parser  *sitter.Parser
	grammar *sitter.Language
}

// NewEngine constructs a parser for the grammar. A nil grammar is the
// construction failure case and surfaces as ErrNoLanguage.
func NewEngine(grammar *sitter.Language) (*Engine, error) {
	if grammar == nil {
		return nil, ErrNoLanguage
	}
	parser := sitter.NewParser()
	parser.SetLanguage(grammar)
	return &Engine{parser: parser, grammar: grammar}, nil
}

// Parse runs one parse. hint, when non-nil, is a previous tree whose edit
// bookkeeping matches text; tree-sitter then reuses unchanged subtrees.
// Cancelling ctx aborts the parse and returns the context's error.
func (e *Engine) Parse(ctx context.Context, hint *sitter.Tree, text []byte) (*sitter.Tree, error) {
	return e.parser.ParseCtx(ctx, hint, text)
}

// Reset clears parser state after an abandoned parse so the engine can be
// reused for an unrelated document.
func (e *Engine) Reset() {
	e.parser.Reset()
}

// Close releases the underlying parser.
func (e *Engine) Close() {
	e.parser.Close()
}
