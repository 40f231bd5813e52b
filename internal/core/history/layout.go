package history

// Coord places one revision in the history diagram. Y is the depth from
// the root (root at 0), so larger Y draws lower on screen, matching the
// terminal's downward row axis. X is a column index. OnMainBranch marks
// the lineage that follows the first-created child from the root, the
// timeline that was never the product of an undo-then-diverge; it exists
// for rendering emphasis only.
type Coord struct {
	X, Y         int
	OnMainBranch bool
}

// Layout assigns diagram coordinates to every revision, indexed by
// revision number. It is a pure function of the tree's shape: the same
// tree always produces identical coordinates, and sibling subtrees never
// overlap at any depth.
//
// Columns are assigned in one depth-first pass over children in creation
// order. Leaves take the next free column from a single increasing
// counter; an inner node sits at the average of its children's columns,
// rounded toward the first child. A per-depth high-water mark shifts a
// subtree right if its root would otherwise collide with something
// already placed on that row.
func Layout(t *Tree) []Coord {
	coords := make([]Coord, t.Len())

	// nextSlot is the next free leaf column; minNext holds one high-water
	// mark per depth.
	nextSlot := 0
	var minNext []int

	atDepth := func(depth int) int {
		for len(minNext) <= depth {
			minNext = append(minNext, 0)
		}
		return minNext[depth]
	}

	var shift func(idx, by int)
	shift = func(idx, by int) {
		coords[idx].X += by
		if after := coords[idx].X + 1; after > atDepth(coords[idx].Y) {
			minNext[coords[idx].Y] = after
		}
		children := t.Children(idx)
		if len(children) == 0 && coords[idx].X+1 > nextSlot {
			nextSlot = coords[idx].X + 1
		}
		for _, child := range children {
			shift(child, by)
		}
	}

	var place func(idx, depth int) int
	place = func(idx, depth int) int {
		children := t.Children(idx)

		var x int
		if len(children) == 0 {
			x = nextSlot
			if floor := atDepth(depth); x < floor {
				x = floor
			}
			nextSlot = x + 1
		} else {
			sum := 0
			for _, child := range children {
				sum += place(child, depth+1)
			}
			x = sum / len(children) // rounds toward the first child
			if floor := atDepth(depth); x < floor {
				// Carry the whole subtree right so parent-child edges
				// keep their relative geometry.
				delta := floor - x
				for _, child := range children {
					shift(child, delta)
				}
				x += delta
			}
		}

		coords[idx] = Coord{X: x, Y: depth}
		if x+1 > atDepth(depth) {
			minNext[depth] = x + 1
		}
		return x
	}

	place(0, 0)

	for idx := 0; ; idx = t.Children(idx)[0] {
		coords[idx].OnMainBranch = true
		if len(t.Children(idx)) == 0 {
			break
		}
	}

	return coords
}
