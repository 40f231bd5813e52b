// internal/syntax/manager.go
//
// Package syntax keeps a tree-sitter parse tree in step with the buffer.
// Edits patch the adopted tree's byte ranges immediately; full accuracy is
// restored by cancellable background parses scheduled on the task pool. All
// Manager methods run on the owner (UI) thread; the only state shared with
// a running job is its CancelFlag.
package syntax

import (
	"github.com/wovenlab/loom/internal/buffer"
	"github.com/wovenlab/loom/internal/logger"
	"github.com/wovenlab/loom/internal/syntax/lang"
	"github.com/wovenlab/loom/internal/task"
	"github.com/wovenlab/loom/internal/types"
	sitter "github.com/smacker/go-tree-sitter"
)

// Spawner is the slice of the task pool the manager needs.
type Spawner interface {
	Spawn(fn func() any) (task.ID, error)
}

// ParseTree is an adopted syntax tree tagged with the buffer version it
// was parsed from. The tree belongs to the current buffer content, not to
// any history revision; undo and redo patch or replace it like any edit.
type ParseTree struct {
	Tree    *sitter.Tree
	Version uint64
}

// parseJob tracks the single in-flight background parse.
type parseJob struct {
	id      task.ID
	flag    *CancelFlag
	version uint64
}

// parseOutcome is what a parse closure returns through the pool. The
// engine always travels back so it can rejoin the free list; tree is nil
// when the job noticed its cancellation instead of finishing.
type parseOutcome struct {
	engine    *Engine
	tree      *sitter.Tree
	cancelled bool
}

// Manager owns the parse pipeline for one buffer.
type Manager struct {
	buf  buffer.Buffer
	pool Spawner

	language *lang.Language
	query    *sitter.Query

	engines []*Engine // free list, most recently returned last
	version uint64    // buffer content generation
	pending *parseJob
	tree    *ParseTree
	spans   *SpanSet
}

// NewManager creates a manager with no language; call DetectLanguage once
// the file path is known.
func NewManager(buf buffer.Buffer, pool Spawner) *Manager {
	return &Manager{buf: buf, pool: pool}
}

// DetectLanguage binds the manager to the grammar registered for the
// file's extension and reports whether one was found. Any previous tree,
// pending job, and pooled engines are dropped; they belong to the old
// grammar.
func (m *Manager) DetectLanguage(filePath string) bool {
	m.setLanguage(lang.GetForFile(filePath))
	return m.language != nil
}

func (m *Manager) setLanguage(language *lang.Language) {
	for _, engine := range m.engines {
		engine.Close()
	}
	m.engines = m.engines[:0]
	m.cancelPending()
	m.dropTree()
	if m.query != nil {
		m.query.Close()
		m.query = nil
	}
	m.language = nil

	if language == nil {
		return
	}
	m.language = language

	queryScm := language.Query()
	if queryScm == nil {
		return
	}
	query, err := sitter.NewQuery(queryScm, language.Grammar)
	if err != nil {
		// Parsing still works without a query; only colors are lost.
		logger.Errorf("syntax: highlight query for %s does not compile: %v", language.Name, err)
		return
	}
	m.query = query
}

// Active reports whether a grammar is bound, meaning parse requests can
// succeed.
func (m *Manager) Active() bool {
	return m.language != nil
}

// Language returns the bound grammar's name, or "" when none is bound.
func (m *Manager) Language() string {
	if m.language == nil {
		return ""
	}
	return m.language.Name
}

// RequestParse submits a background parse of text. When incremental is set
// and a tree has been adopted, a copy of that tree travels with the job as
// a reuse hint. A previously pending job is superseded: its cancel flag is
// set and its eventual result will be discarded by ID. The returned error
// is non-nil only for engine construction failure.
func (m *Manager) RequestParse(text []byte, incremental bool) error {
	if m.language == nil {
		return ErrNoLanguage
	}

	engine, err := m.popEngine()
	if err != nil {
		return err
	}

	var hint *sitter.Tree
	if incremental && m.tree != nil {
		hint = m.tree.Tree.Copy()
	}

	flag := NewCancelFlag()
	id, err := m.pool.Spawn(parseClosure(engine, flag, hint, text))
	if err != nil {
		// Transient scheduling failure. The pending job, if any, stays
		// current; the next edit retries with fresher text.
		if hint != nil {
			hint.Close()
		}
		flag.release()
		m.pushEngine(engine)
		logger.Warnf("syntax: parse not scheduled: %v", err)
		return nil
	}

	m.cancelPending()
	m.pending = &parseJob{id: id, flag: flag, version: m.version}
	logger.DebugTagf("syntax", "parse %d submitted (incremental=%v version=%d)", id, incremental, m.version)
	return nil
}

// parseClosure builds the function that runs on a worker. It owns engine
// and hint outright; flag is the sole link back to the owner.
func parseClosure(engine *Engine, flag *CancelFlag, hint *sitter.Tree, text []byte) func() any {
	return func() any {
		if hint != nil {
			defer hint.Close()
		}

		if flag.Cancelled() {
			flag.Acknowledge()
			return &parseOutcome{engine: engine, cancelled: true}
		}

		tree, err := engine.Parse(flag.Context(), hint, text)
		if err != nil {
			// Cancellation mid-parse lands here; grammar error recovery
			// means any other failure is equally tree-less and treated
			// the same way.
			flag.Acknowledge()
			engine.Reset()
			return &parseOutcome{engine: engine, cancelled: true}
		}
		return &parseOutcome{engine: engine, tree: tree}
	}
}

// ApplyEdit patches the adopted tree's ranges after one buffer edit. It
// must be called after the buffer mutated, in edit order. Empty deltas are
// ignored. This is bookkeeping, not parsing; nodes keep stale structure
// until the next re-parse lands.
func (m *Manager) ApplyEdit(delta types.Delta) {
	if delta.IsEmpty() {
		return
	}
	m.version++
	if m.tree == nil {
		return
	}
	m.tree.Tree.Edit(editInputForDelta(m.buf, delta))
}

// editInputForDelta converts a delta into tree-sitter's edit description.
// Byte indexes come straight from the delta. Row/column points for the
// start and new end are resolved against the live (post-edit) buffer; the
// old end's true point lived in the pre-edit text, so it is approximated
// on the start row and corrected by the next re-parse.
func editInputForDelta(buf buffer.Buffer, delta types.Delta) sitter.EditInput {
	startRow, startCol := buf.ByteOffsetToLineCol(delta.ByteOffset)
	newEndRow, newEndCol := buf.ByteOffsetToLineCol(delta.ByteOffset + delta.NewByteLen)

	return sitter.EditInput{
		StartIndex:  uint32(delta.ByteOffset),
		OldEndIndex: uint32(delta.ByteOffset + delta.OldByteLen),
		NewEndIndex: uint32(delta.ByteOffset + delta.NewByteLen),
		StartPoint:  sitter.Point{Row: uint32(startRow), Column: uint32(startCol)},
		OldEndPoint: sitter.Point{Row: uint32(startRow), Column: uint32(startCol + delta.OldByteLen)},
		NewEndPoint: sitter.Point{Row: uint32(newEndRow), Column: uint32(newEndCol)},
	}
}

// HandleResult consumes one drained pool result. The engine inside always
// rejoins the free list. A result whose ID is not the current pending ID
// was superseded and is dropped silently; a cancelled current job leaves
// the previous tree in place. Returns true when a new tree was adopted.
func (m *Manager) HandleResult(res task.Result) bool {
	outcome, ok := res.Value.(*parseOutcome)
	if !ok || outcome == nil {
		// A panicked closure delivers a nil value; its engine is gone.
		if m.pending != nil && res.ID == m.pending.id {
			m.pending.flag.release()
			m.pending = nil
		}
		logger.Warnf("syntax: parse %d returned no outcome", res.ID)
		return false
	}

	m.pushEngine(outcome.engine)

	if m.pending == nil || res.ID != m.pending.id {
		if outcome.tree != nil {
			outcome.tree.Close()
		}
		logger.DebugTagf("syntax", "parse %d superseded, result dropped", res.ID)
		return false
	}

	job := m.pending
	m.pending = nil
	job.flag.release()

	if outcome.tree == nil {
		logger.DebugTagf("syntax", "parse %d cancelled mid-flight", res.ID)
		return false
	}

	if m.tree != nil {
		m.tree.Tree.Close()
	}
	m.tree = &ParseTree{Tree: outcome.tree, Version: job.version}
	m.spans = extractSpans(outcome.tree, m.query)
	logger.DebugTagf("syntax", "parse %d adopted (version=%d, %d spans)", res.ID, job.version, m.spans.Len())
	return true
}

// CurrentTree returns the adopted tree, or nil before the first adoption.
// The tree stays valid until the next adoption, Invalidate, or language
// change.
func (m *Manager) CurrentTree() *ParseTree {
	return m.tree
}

// Version returns the current buffer content generation.
func (m *Manager) Version() uint64 {
	return m.version
}

// Parsing reports whether a background parse is in flight.
func (m *Manager) Parsing() bool {
	return m.pending != nil
}

// SpansBetween returns the highlight spans overlapping the byte range,
// computed from the most recently adopted tree. Offsets may trail the live
// buffer by the edits made since that parse.
func (m *Manager) SpansBetween(startByte, endByte int) []Span {
	return m.spans.Between(startByte, endByte)
}

// Invalidate discards the adopted tree, its spans, and any pending job
// after a wholesale text replacement that no single delta describes, such
// as a history jump or a file load. The caller follows up with a
// non-incremental RequestParse.
func (m *Manager) Invalidate() {
	m.version++
	m.cancelPending()
	m.dropTree()
}

// Shutdown cancels outstanding work and releases every native resource.
// Drain the pool before calling it so in-flight engines come home first.
func (m *Manager) Shutdown() {
	m.cancelPending()
	m.dropTree()
	for _, engine := range m.engines {
		engine.Close()
	}
	m.engines = nil
	if m.query != nil {
		m.query.Close()
		m.query = nil
	}
}

func (m *Manager) cancelPending() {
	if m.pending != nil {
		m.pending.flag.Cancel()
		m.pending = nil
	}
}

func (m *Manager) dropTree() {
	if m.tree != nil {
		m.tree.Tree.Close()
		m.tree = nil
	}
	m.spans = nil
}

func (m *Manager) popEngine() (*Engine, error) {
	if n := len(m.engines); n > 0 {
		engine := m.engines[n-1]
		m.engines = m.engines[:n-1]
		return engine, nil
	}
	return NewEngine(m.language.Grammar)
}

func (m *Manager) pushEngine(engine *Engine) {
	if engine == nil {
		return
	}
	// An engine built for a previous grammar cannot serve this one.
	if m.language == nil || engine.grammar != m.language.Grammar {
		engine.Close()
		return
	}
	m.engines = append(m.engines, engine)
}
