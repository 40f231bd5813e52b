// internal/tui/historyview_test.go
package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/wovenlab/loom/internal/core/history"
	"github.com/wovenlab/loom/internal/theme"
	"github.com/wovenlab/loom/internal/types"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func cellRune(t *testing.T, screen tcell.SimulationScreen, x, y int) rune {
	t.Helper()
	cells, w, _ := screen.GetContents()
	cell := cells[y*w+x]
	if len(cell.Runes) == 0 {
		return ' '
	}
	return cell.Runes[0]
}

func rowRunes(t *testing.T, screen tcell.SimulationScreen, y, fromX, toX int) string {
	t.Helper()
	var sb strings.Builder
	for x := fromX; x < toX; x++ {
		sb.WriteRune(cellRune(t, screen, x, y))
	}
	return sb.String()
}

func insertDelta(at int) types.Delta {
	return types.Delta{ByteOffset: at, NewByteLen: 1, CharOffset: at, NewCharLen: 1}
}

// branchedTree builds:
//
//	0 ── 1 ── 2   (main branch)
//	      ╰── 3   (head)
func branchedTree(t *testing.T) *history.Tree {
	t.Helper()
	tr := history.New([]byte(""))
	tr.Commit(insertDelta(0), []byte("a"), types.Position{Line: 0, Col: 1})
	tr.Commit(insertDelta(1), []byte("ab"), types.Position{Line: 0, Col: 2})
	if _, _, _, ok := tr.Undo(); !ok {
		t.Fatal("undo failed while building fixture")
	}
	tr.Commit(insertDelta(1), []byte("ax"), types.Position{Line: 0, Col: 2})
	return tr
}

func TestHistoryViewNavigation(t *testing.T) {
	hv := NewHistoryView()
	hv.Open(branchedTree(t))

	if got := hv.SelectedIndex(); got != 3 {
		t.Fatalf("Open selected rev %d, want head 3", got)
	}

	steps := []struct {
		name    string
		dx, dy  int
		want    int
		changed bool
	}{
		{"up to parent", 0, -1, 1, true},
		{"up to root", 0, -1, 0, true},
		{"up past root stays", 0, -1, 0, false},
		{"down to only child", 0, 1, 1, true},
		{"down prefers same column", 0, 1, 2, true},
		{"right to sibling", 1, 0, 3, true},
		{"right at edge stays", 1, 0, 3, false},
		{"left back to main branch", -1, 0, 2, true},
	}
	for _, step := range steps {
		changed := hv.MoveSelection(step.dx, step.dy)
		if changed != step.changed || hv.SelectedIndex() != step.want {
			t.Fatalf("%s: got rev %d changed=%v, want rev %d changed=%v",
				step.name, hv.SelectedIndex(), changed, step.want, step.changed)
		}
	}

	hv.SelectRoot()
	if hv.SelectedIndex() != 0 {
		t.Errorf("SelectRoot: selected rev %d, want 0", hv.SelectedIndex())
	}
	hv.SelectHead()
	if hv.SelectedIndex() != 3 {
		t.Errorf("SelectHead: selected rev %d, want 3", hv.SelectedIndex())
	}
}

func TestHistoryViewMoveWithoutTree(t *testing.T) {
	hv := NewHistoryView()
	if hv.MoveSelection(0, -1) {
		t.Error("MoveSelection on an unopened view reported a change")
	}
	if hv.Visible() {
		t.Error("new view is visible before Open")
	}
}

func TestHistoryViewDrawGraph(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	hv := NewHistoryView()
	hv.Open(branchedTree(t))

	hv.Draw(screen, 80, 24, &theme.DevComfortDark)
	screen.Show()

	// Panel occupies x >= 40; the graph area starts at x=42, y=1 with
	// nodes every second row and column.
	if got := cellRune(t, screen, 40, 3); got != '│' {
		t.Errorf("border column: got %q, want %q", got, '│')
	}
	title := " History rev 3/3 "
	if got := rowRunes(t, screen, 0, 41, 41+len(title)); got != title {
		t.Errorf("title row: got %q, want %q", got, title)
	}

	nodes := []struct {
		x, y int
		want rune
	}{
		{42, 1, 'o'}, // rev 0
		{42, 2, '│'},
		{42, 3, 'o'}, // rev 1
		{42, 4, '├'}, // edge splits toward both children
		{43, 4, '─'},
		{44, 4, '╮'},
		{42, 5, 'o'}, // rev 2, main branch leaf
		{44, 5, '@'}, // rev 3, head
	}
	for _, n := range nodes {
		if got := cellRune(t, screen, n.x, n.y); got != n.want {
			t.Errorf("cell (%d,%d): got %q, want %q", n.x, n.y, got, n.want)
		}
	}

	cells, w, _ := screen.GetContents()
	if got := cells[5*w+44].Style; got != theme.DevComfortDark.GetStyle("HistorySelected") {
		t.Errorf("head node is selected after Open but not drawn with the selected style")
	}

	detail := "rev 3  @1 -0 +1"
	if got := rowRunes(t, screen, 21, 42, 42+len(detail)); got != detail {
		t.Errorf("detail row: got %q, want %q", got, detail)
	}
	hint := "enter: jump  esc: close"
	if got := rowRunes(t, screen, 22, 42, 42+len(hint)); got != hint {
		t.Errorf("hint row: got %q, want %q", got, hint)
	}
}

func TestHistoryViewDrawBranchPoint(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	hv := NewHistoryView()
	hv.Open(branchedTree(t))
	hv.MoveSelection(0, -1) // head -> rev 1, the branch point

	hv.Draw(screen, 80, 24, &theme.DevComfortDark)
	screen.Show()

	detail := "rev 1  @0 -0 +1  (2 branches)"
	if got := rowRunes(t, screen, 21, 42, 42+len(detail)); got != detail {
		t.Errorf("branch point detail: got %q, want %q", got, detail)
	}
}

func TestHistoryViewScrollsToSelection(t *testing.T) {
	tr := history.New([]byte(""))
	for i := 0; i < 30; i++ {
		snapshot := strings.Repeat("a", i+1)
		tr.Commit(insertDelta(i), []byte(snapshot), types.Position{Line: 0, Col: i + 1})
	}

	// 40x10 screen: graph window is 5 rows tall, far smaller than the
	// 30-revision chain. Opening at the head must scroll it into view.
	screen := newSimScreen(t, 40, 10)
	hv := NewHistoryView()
	hv.Open(tr)

	hv.Draw(screen, 40, 10, &theme.DevComfortDark)
	screen.Show()

	if got := cellRune(t, screen, 22, 5); got != '@' {
		t.Errorf("head node at window bottom: got %q, want '@'", got)
	}
	if got := cellRune(t, screen, 22, 4); got != '│' {
		t.Errorf("edge above head: got %q, want '│'", got)
	}
	if got := cellRune(t, screen, 22, 3); got != 'o' {
		t.Errorf("parent above head: got %q, want 'o'", got)
	}

	// Walking to the root scrolls back up.
	hv.SelectRoot()
	hv.Draw(screen, 40, 10, &theme.DevComfortDark)
	screen.Show()
	if got := cellRune(t, screen, 22, 1); got != 'o' {
		t.Errorf("root node after SelectRoot: got %q, want 'o'", got)
	}
}
