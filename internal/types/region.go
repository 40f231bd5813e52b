// internal/types/region.go
package types

// Region is a half-open [Start, End) range of buffer positions. The editor
// stores search matches as regions; the renderer styles them.
type Region struct {
	Start Position
	End   Position
}

// Contains reports whether pos lies inside the region.
func (r Region) Contains(pos Position) bool {
	return !pos.Before(r.Start) && pos.Before(r.End)
}
