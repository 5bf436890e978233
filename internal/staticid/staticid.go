// Package staticid computes deterministic string-table ids for a fixed set
// of designated columns, independent of the table's allocator. The formula
// depends only on the row index and the column position, so ids are stable
// across builds regardless of which cells are populated.
package staticid

// Assigner yields one id per designated column per row starting at Offset.
type Assigner struct {
	Offset  int
	Columns []string
}

// ID returns the id for the designated column at position col (0-based) in
// row row. Ids grow row-major, so processing rows in ascending order yields
// a strictly increasing sequence.
func (a Assigner) ID(row, col int) int {
	return a.Offset + col + len(a.Columns)*row
}

// Enabled reports whether static assignment is active. A non-positive offset
// disables it and designated columns fall back to normal allocation.
func (a Assigner) Enabled() bool {
	return a.Offset > 0 && len(a.Columns) > 0
}
