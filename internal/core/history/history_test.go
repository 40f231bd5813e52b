package history

import (
	"testing"

	"github.com/wovenlab/loom/internal/types"
)

func insertDelta(byteOff, charOff int, text string) types.Delta {
	return types.Delta{
		ByteOffset: byteOff,
		NewByteLen: len(text),
		CharOffset: charOff,
		NewCharLen: len([]rune(text)),
	}
}

func TestCommitUndoRoundTrip(t *testing.T) {
	tree := New([]byte("abc"))

	// "abc" -> insert "X" at 1 -> "aXbc" -> insert "Y" at 4 -> "aXbcY"
	tree.Commit(insertDelta(1, 1, "X"), []byte("aXbc"), types.Position{Line: 0, Col: 2})
	tree.Commit(insertDelta(4, 4, "Y"), []byte("aXbcY"), types.Position{Line: 0, Col: 5})

	if got := string(tree.Head()); got != "aXbcY" {
		t.Fatalf("head snapshot = %q, want %q", got, "aXbcY")
	}
	if tree.HeadIndex() != 2 {
		t.Fatalf("head index = %d, want 2", tree.HeadIndex())
	}

	snap, reversed, _, ok := tree.Undo()
	if !ok {
		t.Fatal("first undo reported nothing to undo")
	}
	if string(snap) != "aXbc" || tree.HeadIndex() != 1 {
		t.Errorf("after first undo: snapshot %q head %d, want %q head 1", snap, tree.HeadIndex(), "aXbc")
	}
	// The reversed delta must remove what the commit inserted.
	want := types.Delta{ByteOffset: 4, OldByteLen: 1, CharOffset: 4, OldCharLen: 1}
	if reversed != want {
		t.Errorf("reversed delta = %+v, want %+v", reversed, want)
	}

	snap, _, _, ok = tree.Undo()
	if !ok || string(snap) != "abc" || tree.HeadIndex() != 0 {
		t.Errorf("after second undo: snapshot %q head %d ok %v, want %q head 0 true", snap, tree.HeadIndex(), ok, "abc")
	}

	// Undo at the root is a silent no-op.
	if _, _, _, ok := tree.Undo(); ok {
		t.Error("undo at root should report ok=false")
	}
	if got := string(tree.Head()); got != "abc" {
		t.Errorf("head after no-op undo = %q, want %q", got, "abc")
	}
}

func TestBranchIsolation(t *testing.T) {
	tree := New([]byte("abc"))
	first := tree.Commit(insertDelta(1, 1, "X"), []byte("aXbc"), types.Position{})
	tree.Undo()

	// Committing after an undo must branch, not overwrite.
	second := tree.Commit(insertDelta(1, 1, "Z"), []byte("aZbc"), types.Position{})

	if first == second {
		t.Fatal("branch commit reused an index")
	}
	if tree.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tree.Len())
	}
	if got := string(tree.Snapshot(first)); got != "aXbc" {
		t.Errorf("original branch snapshot = %q, want %q (must be untouched)", got, "aXbc")
	}
	if got := tree.Delta(first); got != insertDelta(1, 1, "X") {
		t.Errorf("original branch delta changed: %+v", got)
	}

	kids := tree.Children(0)
	if len(kids) != 2 || kids[0] != first || kids[1] != second {
		t.Errorf("root children = %v, want [%d %d] in creation order", kids, first, second)
	}
	if tree.Parent(second) != 0 {
		t.Errorf("new branch parent = %d, want 0", tree.Parent(second))
	}
}

func TestRedoFollowsMostRecentlyVisitedChild(t *testing.T) {
	tree := New([]byte(""))
	a := tree.Commit(insertDelta(0, 0, "a"), []byte("a"), types.Position{})
	tree.Undo()
	b := tree.Commit(insertDelta(0, 0, "b"), []byte("b"), types.Position{})
	tree.Undo()

	// b was visited last (committing visits), so redo picks it over a.
	snap, _, _, ok := tree.Redo()
	if !ok || string(snap) != "b" || tree.HeadIndex() != b {
		t.Fatalf("redo = %q head %d ok %v, want %q head %d", snap, tree.HeadIndex(), ok, "b", b)
	}

	// Visiting a (jump, then undo away) flips the preference.
	tree.Undo()
	tree.JumpTo(a)
	tree.Undo()
	snap, _, _, ok = tree.Redo()
	if !ok || string(snap) != "a" || tree.HeadIndex() != a {
		t.Fatalf("redo after visiting a = %q head %d ok %v, want %q head %d", snap, tree.HeadIndex(), ok, "a", a)
	}
}

func TestJumpTo(t *testing.T) {
	tree := New([]byte(""))
	tree.Commit(insertDelta(0, 0, "a"), []byte("a"), types.Position{})
	tree.Undo()
	b := tree.Commit(insertDelta(0, 0, "b"), []byte("b"), types.Position{})
	b2 := tree.Commit(insertDelta(1, 1, "2"), []byte("b2"), types.Position{Line: 0, Col: 2})
	tree.JumpTo(0)

	snap, cursor, ok := tree.JumpTo(b2)
	if !ok || string(snap) != "b2" || tree.HeadIndex() != b2 {
		t.Fatalf("jump = %q head %d ok %v, want %q head %d", snap, tree.HeadIndex(), ok, "b2", b2)
	}
	if cursor != (types.Position{Line: 0, Col: 2}) {
		t.Errorf("jump cursor = %+v, want the recorded one", cursor)
	}

	// The jumped-to path is now the preferred redo walk.
	tree.JumpTo(0)
	if snap, _, _, _ := tree.Redo(); string(snap) != "b" || tree.HeadIndex() != b {
		t.Errorf("redo after jump = %q head %d, want %q head %d", snap, tree.HeadIndex(), "b", b)
	}
	if snap, _, _, _ := tree.Redo(); string(snap) != "b2" {
		t.Errorf("second redo after jump = %q, want %q", snap, "b2")
	}

	if _, _, ok := tree.JumpTo(99); ok {
		t.Error("jump to an out-of-range index should report ok=false")
	}
}

func TestRedoAtLeafIsNoOp(t *testing.T) {
	tree := New([]byte("x"))
	if _, _, _, ok := tree.Redo(); ok {
		t.Error("redo on a childless head should report ok=false")
	}

	tree.Commit(insertDelta(1, 1, "y"), []byte("xy"), types.Position{})
	if _, _, _, ok := tree.Redo(); ok {
		t.Error("redo at a leaf should report ok=false")
	}
}

func TestRedoReturnsForwardDelta(t *testing.T) {
	tree := New([]byte("abc"))
	committed := insertDelta(1, 1, "X")
	tree.Commit(committed, []byte("aXbc"), types.Position{Line: 0, Col: 2})
	tree.Undo()

	_, delta, cursor, ok := tree.Redo()
	if !ok {
		t.Fatal("redo reported nothing to redo")
	}
	if delta != committed {
		t.Errorf("redo delta = %+v, want the stored forward delta %+v", delta, committed)
	}
	if cursor != (types.Position{Line: 0, Col: 2}) {
		t.Errorf("redo cursor = %+v, want the cursor recorded at commit", cursor)
	}
}

func TestParentIndicesNeverForward(t *testing.T) {
	tree := New([]byte(""))
	tree.Commit(insertDelta(0, 0, "1"), []byte("1"), types.Position{})
	tree.Undo()
	tree.Commit(insertDelta(0, 0, "2"), []byte("2"), types.Position{})
	tree.Commit(insertDelta(1, 1, "3"), []byte("23"), types.Position{})

	for i := 0; i < tree.Len(); i++ {
		p := tree.Parent(i)
		if i == 0 {
			if p != -1 {
				t.Errorf("root parent = %d, want -1", p)
			}
			continue
		}
		if p < 0 || p >= i {
			t.Errorf("revision %d has parent %d; parents must be earlier revisions", i, p)
		}
	}
}

func TestReset(t *testing.T) {
	tree := New([]byte("old"))
	tree.Commit(insertDelta(3, 3, "!"), []byte("old!"), types.Position{})

	tree.Reset([]byte("new"))
	if tree.Len() != 1 || tree.HeadIndex() != 0 {
		t.Errorf("after reset: Len=%d head=%d, want 1 and 0", tree.Len(), tree.HeadIndex())
	}
	if string(tree.Head()) != "new" {
		t.Errorf("after reset head = %q, want %q", tree.Head(), "new")
	}
	if tree.CanUndo() || tree.CanRedo() {
		t.Error("fresh tree should have nothing to undo or redo")
	}
}
