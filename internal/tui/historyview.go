// internal/tui/historyview.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/wovenlab/loom/internal/config"
	"github.com/wovenlab/loom/internal/core/history"
	"github.com/wovenlab/loom/internal/theme"
)

// Edge direction bits for one graph cell. Edges from several children can
// land in the same cell; merging the bits picks the right box character.
const (
	edgeUp uint8 = 1 << iota
	edgeDown
	edgeLeft
	edgeRight
)

var edgeRunes = map[uint8]rune{
	edgeUp | edgeDown:                        '│',
	edgeLeft | edgeRight:                     '─',
	edgeUp | edgeRight:                       '╰',
	edgeUp | edgeLeft:                        '╯',
	edgeDown | edgeRight:                     '╭',
	edgeDown | edgeLeft:                      '╮',
	edgeUp | edgeDown | edgeRight:            '├',
	edgeUp | edgeDown | edgeLeft:             '┤',
	edgeUp | edgeLeft | edgeRight:            '┴',
	edgeDown | edgeLeft | edgeRight:          '┬',
	edgeUp | edgeDown | edgeLeft | edgeRight: '┼',
}

func edgeRune(bits uint8) rune {
	if r, ok := edgeRunes[bits]; ok {
		return r
	}
	return '·'
}

// HistoryView is the revision tree overlay. It renders the graph produced
// by history.Layout in a panel on the right edge of the screen and tracks
// a selection the user moves with the arrow keys. Depth grows downward;
// siblings spread horizontally.
type HistoryView struct {
	visible  bool
	selected int // arena index of the selected revision
	scrollY  int // graph-space origin of the visible window
	scrollX  int

	tree   *history.Tree
	coords []history.Coord
}

// NewHistoryView creates a hidden history view.
func NewHistoryView() *HistoryView {
	return &HistoryView{selected: -1}
}

// Visible reports whether the overlay is shown.
func (hv *HistoryView) Visible() bool {
	return hv.visible
}

// Open shows the overlay for tree with the head revision selected.
func (hv *HistoryView) Open(tree *history.Tree) {
	hv.tree = tree
	hv.visible = true
	hv.Refresh()
	hv.selected = tree.HeadIndex()
}

// Close hides the overlay.
func (hv *HistoryView) Close() {
	hv.visible = false
}

// Refresh recomputes the layout after the tree changed, keeping the
// selection when it is still valid.
func (hv *HistoryView) Refresh() {
	if hv.tree == nil {
		return
	}
	hv.coords = history.Layout(hv.tree)
	if hv.selected < 0 || hv.selected >= hv.tree.Len() {
		hv.selected = hv.tree.HeadIndex()
	}
}

// SelectedIndex returns the arena index of the selected revision.
func (hv *HistoryView) SelectedIndex() int {
	return hv.selected
}

// SelectRoot moves the selection to the initial revision.
func (hv *HistoryView) SelectRoot() {
	if hv.tree != nil && hv.tree.Len() > 0 {
		hv.selected = 0
	}
}

// SelectHead moves the selection to the current head revision.
func (hv *HistoryView) SelectHead() {
	if hv.tree != nil {
		hv.selected = hv.tree.HeadIndex()
	}
}

// MoveSelection moves the selection through the graph. dy steps between a
// revision and its parent or children; dx steps between revisions at the
// same depth. Returns true when the selection changed.
func (hv *HistoryView) MoveSelection(dx, dy int) bool {
	if hv.tree == nil || hv.selected < 0 || hv.selected >= len(hv.coords) {
		return false
	}
	cur := hv.coords[hv.selected]

	switch {
	case dy < 0:
		if p := hv.tree.Parent(hv.selected); p >= 0 {
			hv.selected = p
			return true
		}
	case dy > 0:
		best, bestDist := -1, 0
		for _, c := range hv.tree.Children(hv.selected) {
			dist := hv.coords[c].X - cur.X
			if dist < 0 {
				dist = -dist
			}
			if best == -1 || dist < bestDist {
				best, bestDist = c, dist
			}
		}
		if best >= 0 {
			hv.selected = best
			return true
		}
	case dx != 0:
		best := -1
		for i, c := range hv.coords {
			if c.Y != cur.Y || i == hv.selected {
				continue
			}
			if dx > 0 && c.X > cur.X {
				if best == -1 || c.X < hv.coords[best].X {
					best = i
				}
			}
			if dx < 0 && c.X < cur.X {
				if best == -1 || c.X > hv.coords[best].X {
					best = i
				}
			}
		}
		if best >= 0 {
			hv.selected = best
			return true
		}
	}
	return false
}

// buildGraph rasterizes the tree edges into a grid of direction bits.
// Nodes sit at (X*2, Y*2); the odd rows and columns carry the edges. The
// bool grid marks cells on the main branch.
func (hv *HistoryView) buildGraph() ([][]uint8, [][]bool) {
	maxX, maxY := 0, 0
	for _, c := range hv.coords {
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	rows, cols := maxY*2+1, maxX*2+1
	grid := make([][]uint8, rows)
	main := make([][]bool, rows)
	for r := range grid {
		grid[r] = make([]uint8, cols)
		main[r] = make([]bool, cols)
	}

	set := func(r, c int, bits uint8, onMain bool) {
		grid[r][c] |= bits
		if onMain {
			main[r][c] = true
		}
	}

	for child := 1; child < len(hv.coords); child++ {
		parent := hv.tree.Parent(child)
		if parent < 0 {
			continue
		}
		pc := hv.coords[parent].X * 2
		nc := hv.coords[child].X * 2
		ir := hv.coords[parent].Y*2 + 1
		onMain := hv.coords[child].OnMainBranch

		switch {
		case nc == pc:
			set(ir, pc, edgeUp|edgeDown, onMain)
		case nc > pc:
			set(ir, pc, edgeUp|edgeRight, onMain)
			for x := pc + 1; x < nc; x++ {
				set(ir, x, edgeLeft|edgeRight, onMain)
			}
			set(ir, nc, edgeLeft|edgeDown, onMain)
		default:
			set(ir, pc, edgeUp|edgeLeft, onMain)
			for x := nc + 1; x < pc; x++ {
				set(ir, x, edgeLeft|edgeRight, onMain)
			}
			set(ir, nc, edgeRight|edgeDown, onMain)
		}
	}
	return grid, main
}

// Draw renders the overlay panel. The panel claims the right side of the
// screen above the status bar: a title row, the scrollable graph, and two
// detail rows describing the selected revision.
func (hv *HistoryView) Draw(screen tcell.Screen, width, height int, activeTheme *theme.Theme) {
	if !hv.visible || hv.tree == nil || len(hv.coords) == 0 || activeTheme == nil {
		return
	}

	viewHeight := height - config.StatusBarHeight
	panelW := width / 2
	if panelW > 42 {
		panelW = 42
	}
	if panelW < 16 || viewHeight < 6 {
		return
	}
	panelX := width - panelW

	panelStyle := activeTheme.GetStyle("HistoryPanel")
	borderStyle := activeTheme.GetStyle("HistoryBorder")
	branchStyle := activeTheme.GetStyle("HistoryBranch")
	headStyle := activeTheme.GetStyle("HistoryHead")
	selectedStyle := activeTheme.GetStyle("HistorySelected")
	summaryStyle := activeTheme.GetStyle("HistorySummary")

	for y := 0; y < viewHeight; y++ {
		screen.SetContent(panelX, y, '│', nil, borderStyle)
		for x := panelX + 1; x < width; x++ {
			screen.SetContent(x, y, ' ', nil, panelStyle)
		}
	}

	title := fmt.Sprintf(" History rev %d/%d ", hv.tree.HeadIndex(), hv.tree.Len()-1)
	drawRunes(screen, panelX+1, 0, width, headStyle, title)

	sepRow := viewHeight - 3
	for x := panelX + 1; x < width; x++ {
		screen.SetContent(x, sepRow, '─', nil, borderStyle)
	}

	graphX := panelX + 2
	graphY := 1
	graphW := width - graphX - 1
	graphH := sepRow - graphY
	if graphW <= 0 || graphH <= 0 {
		return
	}

	hv.scrollToSelection(graphW, graphH)

	grid, mainCells := hv.buildGraph()
	for r := 0; r < len(grid); r++ {
		sy := graphY + r - hv.scrollY
		if sy < graphY || sy >= graphY+graphH {
			continue
		}
		for c := 0; c < len(grid[r]); c++ {
			bits := grid[r][c]
			if bits == 0 {
				continue
			}
			sx := graphX + c - hv.scrollX
			if sx < graphX || sx >= graphX+graphW {
				continue
			}
			style := branchStyle
			if mainCells[r][c] {
				style = panelStyle
			}
			screen.SetContent(sx, sy, edgeRune(bits), nil, style)
		}
	}

	head := hv.tree.HeadIndex()
	for i, coord := range hv.coords {
		sy := graphY + coord.Y*2 - hv.scrollY
		sx := graphX + coord.X*2 - hv.scrollX
		if sy < graphY || sy >= graphY+graphH || sx < graphX || sx >= graphX+graphW {
			continue
		}
		glyph := 'o'
		style := branchStyle
		if coord.OnMainBranch {
			style = panelStyle.Bold(true)
		}
		if i == head {
			glyph = '@'
			style = headStyle
		}
		if i == hv.selected {
			style = selectedStyle
		}
		screen.SetContent(sx, sy, glyph, nil, style)
	}

	detail := hv.selectedSummary()
	drawRunes(screen, panelX+2, sepRow+1, width, panelStyle, detail)
	drawRunes(screen, panelX+2, sepRow+2, width, summaryStyle, "enter: jump  esc: close")
}

func (hv *HistoryView) selectedSummary() string {
	sel := hv.selected
	if sel < 0 || sel >= hv.tree.Len() {
		return ""
	}
	var desc string
	if sel == 0 {
		desc = "initial"
	} else {
		desc = hv.tree.Delta(sel).String()
	}
	if n := len(hv.tree.Children(sel)); n > 1 {
		desc = fmt.Sprintf("%s  (%d branches)", desc, n)
	}
	return fmt.Sprintf("rev %d  %s", sel, desc)
}

// scrollToSelection adjusts the scroll origin so the selected node's graph
// cell stays inside the visible window.
func (hv *HistoryView) scrollToSelection(graphW, graphH int) {
	if hv.selected < 0 || hv.selected >= len(hv.coords) {
		return
	}
	row := hv.coords[hv.selected].Y * 2
	col := hv.coords[hv.selected].X * 2

	if row < hv.scrollY {
		hv.scrollY = row
	} else if row >= hv.scrollY+graphH {
		hv.scrollY = row - graphH + 1
	}
	if col < hv.scrollX {
		hv.scrollX = col
	} else if col >= hv.scrollX+graphW {
		hv.scrollX = col - graphW + 1
	}
	if hv.scrollY < 0 {
		hv.scrollY = 0
	}
	if hv.scrollX < 0 {
		hv.scrollX = 0
	}
}

func drawRunes(screen tcell.Screen, x, y, maxX int, style tcell.Style, s string) {
	for _, r := range s {
		if x >= maxX {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
