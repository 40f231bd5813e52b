// Package history keeps every buffer state the user has visited in a
// branching revision tree. Undoing and then editing starts a new branch
// instead of discarding the redo path, so no committed state is ever lost.
//
// The tree is owned by the editor's UI goroutine. Commit, Undo, and Redo
// are synchronous and must not be called concurrently.
package history

import (
	"github.com/wovenlab/loom/internal/logger"
	"github.com/wovenlab/loom/internal/types"
)

// Revision is one immutable point in the tree: the full buffer content
// after an edit, the cursor at that moment, and the delta linking it to
// its parent. Revisions are stored in a flat arena; all links are indices
// into it, so the structure has no cycles and stable identities.
type Revision struct {
	snapshot  []byte
	cursor    types.Position
	parent    int // -1 for the root
	delta     types.Delta // transforms parent's snapshot into this one
	children  []int // creation order; children[0] is the original timeline
	lastChild int // most recently visited child, -1 if never descended
}

// Tree is the revision arena plus the head index. Indices are assigned in
// creation order and never reused or reordered.
type Tree struct {
	revisions []Revision
	head      int
}

// New creates a tree whose root holds initialText. The root has no parent
// and an empty delta; head starts at the root.
func New(initialText []byte) *Tree {
	root := Revision{
		snapshot:  append([]byte(nil), initialText...),
		parent:    -1,
		lastChild: -1,
	}
	return &Tree{
		revisions: []Revision{root},
		head:      0,
	}
}

// Reset discards the tree and starts over from initialText. Called when a
// new file is loaded into the buffer.
func (t *Tree) Reset(initialText []byte) {
	*t = *New(initialText)
	logger.Debugf("history: reset, new root of %d bytes", len(initialText))
}

// Commit appends a revision under the current head and moves head to it.
// snapshot must be the buffer content after applying delta; the tree takes
// ownership of the slice. Returns the new revision's index.
func (t *Tree) Commit(delta types.Delta, snapshot []byte, cursor types.Position) int {
	parentIdx := t.head
	idx := len(t.revisions)
	t.revisions = append(t.revisions, Revision{
		snapshot:  snapshot,
		cursor:    cursor,
		parent:    parentIdx,
		delta:     delta,
		lastChild: -1,
	})

	parent := &t.revisions[parentIdx]
	parent.children = append(parent.children, idx)
	parent.lastChild = idx

	t.head = idx
	logger.Debugf("history: commit revision %d (parent %d, %s)", idx, parentIdx, delta)
	return idx
}

// Undo moves head to its parent. It returns the parent's snapshot, the
// reversed delta (apply it to the syntax tree to keep byte ranges in
// step), and the cursor recorded at the parent. ok is false at the root;
// running out of undo history is a normal terminal state, not an error.
//
// Callers must not modify the returned snapshot.
func (t *Tree) Undo() (snapshot []byte, reversed types.Delta, cursor types.Position, ok bool) {
	head := &t.revisions[t.head]
	if head.parent < 0 {
		return nil, types.Delta{}, types.Position{}, false
	}

	departed := t.head
	parent := &t.revisions[head.parent]
	parent.lastChild = departed // redo retraces this path by default
	t.head = head.parent

	logger.Debugf("history: undo to revision %d", t.head)
	return parent.snapshot, head.delta.Reverse(), parent.cursor, true
}

// Redo descends from head to its most recently visited child, falling
// back to the first-created child at branch points never descended from.
// It returns the child's snapshot, its stored forward delta, and its
// cursor. ok is false when head has no children.
//
// Callers must not modify the returned snapshot.
func (t *Tree) Redo() (snapshot []byte, delta types.Delta, cursor types.Position, ok bool) {
	head := &t.revisions[t.head]
	if len(head.children) == 0 {
		return nil, types.Delta{}, types.Position{}, false
	}

	next := head.lastChild
	if next < 0 {
		next = head.children[0]
	}
	head.lastChild = next
	t.head = next

	child := &t.revisions[next]
	logger.Debugf("history: redo to revision %d", next)
	return child.snapshot, child.delta, child.cursor, true
}

// JumpTo moves head directly to revision idx and returns its snapshot and
// cursor. The path from the root to idx becomes the preferred one, so a
// later undo/redo walk retraces it. ok is false for an out-of-range index.
//
// Callers must not modify the returned snapshot.
func (t *Tree) JumpTo(idx int) (snapshot []byte, cursor types.Position, ok bool) {
	if idx < 0 || idx >= len(t.revisions) {
		return nil, types.Position{}, false
	}
	for child := idx; ; {
		parent := t.revisions[child].parent
		if parent < 0 {
			break
		}
		t.revisions[parent].lastChild = child
		child = parent
	}
	t.head = idx

	rev := &t.revisions[idx]
	logger.Debugf("history: jump to revision %d", idx)
	return rev.snapshot, rev.cursor, true
}

// Head returns the snapshot of the current revision. Callers must not
// modify it.
func (t *Tree) Head() []byte {
	return t.revisions[t.head].snapshot
}

// HeadIndex returns the index of the current revision.
func (t *Tree) HeadIndex() int {
	return t.head
}

// Len returns the number of revisions.
func (t *Tree) Len() int {
	return len(t.revisions)
}

// CanUndo reports whether head has a parent.
func (t *Tree) CanUndo() bool {
	return t.revisions[t.head].parent >= 0
}

// CanRedo reports whether head has any child to descend into.
func (t *Tree) CanRedo() bool {
	return len(t.revisions[t.head].children) > 0
}

// Parent returns the parent index of revision i, -1 for the root.
func (t *Tree) Parent(i int) int {
	return t.revisions[i].parent
}

// Children returns revision i's child indices in creation order. Callers
// must not modify the returned slice.
func (t *Tree) Children(i int) []int {
	return t.revisions[i].children
}

// Delta returns the delta that produced revision i from its parent. The
// root's delta is the zero value.
func (t *Tree) Delta(i int) types.Delta {
	return t.revisions[i].delta
}

// Cursor returns the cursor recorded at revision i.
func (t *Tree) Cursor(i int) types.Position {
	return t.revisions[i].cursor
}

// Snapshot returns revision i's buffer content. Callers must not modify it.
func (t *Tree) Snapshot(i int) []byte {
	return t.revisions[i].snapshot
}
