package engine

// neighborOffsets lists the 8 neighbor directions as (dRow, dCol)
var neighborOffsets = []struct{ dr, dc int }{
	{0, -1},  // West
	{0, 1},   // East
	{-1, 0},  // North
	{1, 0},   // South
	{-1, 1},  // North-East
	{-1, -1}, // North-West
	{1, 1},   // South-East
	{1, -1},  // South-West
}

// Neighbors returns the up to 8 in-bounds cells adjacent to p.
// Corners have 3, non-corner edges 5, interior cells 8.
func Neighbors(p Position, size int) []Position {
	out := make([]Position, 0, len(neighborOffsets))
	for _, off := range neighborOffsets {
		n := Position{Row: p.Row + off.dr, Col: p.Col + off.dc}
		if n.InBounds(size) {
			out = append(out, n)
		}
	}
	return out
}

// IsAdjacent reports whether a and b touch orthogonally or diagonally
func IsAdjacent(a, b Position) bool {
	dr := abs(a.Row - b.Row)
	dc := abs(a.Col - b.Col)
	return dr <= 1 && dc <= 1 && (dr != 0 || dc != 0)
}
