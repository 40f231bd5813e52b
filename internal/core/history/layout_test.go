package history

import (
	"testing"

	"github.com/wovenlab/loom/internal/types"
)

// buildTree commits one revision per parent entry. parents[i] is the parent
// index for revision i+1 (the root is implicit); a JumpTo repositions head
// before each commit so arbitrary shapes can be described.
func buildTree(t *testing.T, parents []int) *Tree {
	t.Helper()
	tree := New([]byte("root"))
	for i, p := range parents {
		if _, _, ok := tree.JumpTo(p); !ok {
			t.Fatalf("bad shape: parent %d does not exist yet", p)
		}
		tree.Commit(types.Delta{NewByteLen: 1, NewCharLen: 1}, []byte{byte('a' + i)}, types.Position{})
	}
	return tree
}

func TestLayoutKnownShapes(t *testing.T) {
	tests := []struct {
		name    string
		parents []int
		want    []Coord
	}{
		{
			name:    "single root",
			parents: nil,
			want:    []Coord{{X: 0, Y: 0, OnMainBranch: true}},
		},
		{
			name:    "linear chain",
			parents: []int{0, 1, 2},
			want: []Coord{
				{X: 0, Y: 0, OnMainBranch: true},
				{X: 0, Y: 1, OnMainBranch: true},
				{X: 0, Y: 2, OnMainBranch: true},
				{X: 0, Y: 3, OnMainBranch: true},
			},
		},
		{
			// The undo-then-commit shape: a two-deep main branch with a
			// sibling branched off revision 1's parent... here off the root's
			// first child.
			name:    "branch after undo",
			parents: []int{0, 1, 1},
			want: []Coord{
				{X: 0, Y: 0, OnMainBranch: true},
				{X: 0, Y: 1, OnMainBranch: true},
				{X: 0, Y: 2, OnMainBranch: true},
				{X: 1, Y: 2, OnMainBranch: false},
			},
		},
		{
			// Two leaves under the root: the root is centered over them with
			// the floor-average rounding toward the first child.
			name:    "fork at root",
			parents: []int{0, 0},
			want: []Coord{
				{X: 0, Y: 0, OnMainBranch: true},
				{X: 0, Y: 1, OnMainBranch: true},
				{X: 1, Y: 1, OnMainBranch: false},
			},
		},
		{
			// Three leaves: average of 0,1,2 is exactly 1.
			name:    "three-way fork",
			parents: []int{0, 0, 0},
			want: []Coord{
				{X: 1, Y: 0, OnMainBranch: true},
				{X: 0, Y: 1, OnMainBranch: true},
				{X: 1, Y: 1, OnMainBranch: false},
				{X: 2, Y: 1, OnMainBranch: false},
			},
		},
		{
			// First child is itself a fork, second is a leaf. The fork's
			// subtree takes slots 0 and 1 (parent centered at 0), so the
			// leaf sibling lands at 2.
			name:    "fork then sibling leaf",
			parents: []int{0, 1, 1, 0},
			want: []Coord{
				{X: 1, Y: 0, OnMainBranch: true},
				{X: 0, Y: 1, OnMainBranch: true},
				{X: 0, Y: 2, OnMainBranch: true},
				{X: 1, Y: 2, OnMainBranch: false},
				{X: 2, Y: 1, OnMainBranch: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := buildTree(t, tt.parents)
			got := Layout(tree)
			if len(got) != len(tt.want) {
				t.Fatalf("Layout returned %d coords, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("revision %d: coord %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLayoutDeterministic(t *testing.T) {
	tree := buildTree(t, []int{0, 1, 1, 0, 4, 4, 2, 0})
	first := Layout(tree)
	second := Layout(tree)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("revision %d: %+v vs %+v on repeated layout", i, first[i], second[i])
		}
	}
}

func TestLayoutNoCollisions(t *testing.T) {
	shapes := [][]int{
		{0, 1, 1, 0, 4, 4, 2, 0},
		{0, 0, 0, 1, 1, 2, 3, 3, 3},
		{0, 1, 2, 3, 0, 5, 6, 1, 8, 8},
	}
	for _, parents := range shapes {
		tree := buildTree(t, parents)
		coords := Layout(tree)

		seen := make(map[Coord]int)
		for i, c := range coords {
			key := Coord{X: c.X, Y: c.Y}
			if prev, dup := seen[key]; dup {
				t.Errorf("revisions %d and %d share cell (%d,%d)", prev, i, c.X, c.Y)
			}
			seen[key] = i
		}

		// Depth mirrors tree depth exactly.
		for i := range coords {
			p := tree.Parent(i)
			if i == 0 {
				if coords[i].Y != 0 {
					t.Errorf("root Y = %d, want 0", coords[i].Y)
				}
				continue
			}
			if coords[i].Y != coords[p].Y+1 {
				t.Errorf("revision %d: Y = %d, parent Y = %d", i, coords[i].Y, coords[p].Y)
			}
			if coords[i].X < 0 {
				t.Errorf("revision %d: negative X %d", i, coords[i].X)
			}
		}
	}
}

func TestLayoutMainBranchIsFirstChildLineage(t *testing.T) {
	tree := buildTree(t, []int{0, 0, 1, 1, 2})
	coords := Layout(tree)

	wantMain := map[int]bool{0: true, 1: true, 3: true}
	for i, c := range coords {
		if c.OnMainBranch != wantMain[i] {
			t.Errorf("revision %d: OnMainBranch = %v, want %v", i, c.OnMainBranch, wantMain[i])
		}
	}
}

func TestLayoutIgnoresHeadPosition(t *testing.T) {
	tree := buildTree(t, []int{0, 1, 1})
	base := Layout(tree)

	tree.JumpTo(3)
	moved := Layout(tree)
	for i := range base {
		if base[i] != moved[i] {
			t.Fatalf("revision %d: layout changed with head position: %+v vs %+v", i, base[i], moved[i])
		}
	}
}
