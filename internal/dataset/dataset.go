package dataset

import "sort"

// Table is an integer-row-indexed, column-named tabular dataset. Cells are
// stored in row-keyed maps; a cell with no value is simply absent, so joins
// and overlays never rely on positional alignment.
type Table struct {
	columns []string
	colSet  map[string]struct{}
	ids     []int // ascending
	rows    map[int]map[string]string
}

// New returns an empty table with the given column order.
func New(columns ...string) *Table {
	t := &Table{
		colSet: make(map[string]struct{}, len(columns)),
		rows:   make(map[int]map[string]string),
	}
	for _, col := range columns {
		t.EnsureColumn(col)
	}
	return t
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colSet[name]
	return ok
}

// EnsureColumn appends the column if it is not already present.
func (t *Table) EnsureColumn(name string) {
	if _, ok := t.colSet[name]; ok {
		return
	}
	t.colSet[name] = struct{}{}
	t.columns = append(t.columns, name)
}

// RowIDs returns the row ids in ascending order.
func (t *Table) RowIDs() []int {
	out := make([]int, len(t.ids))
	copy(out, t.ids)
	return out
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.ids)
}

// HasRow reports whether the row id is present.
func (t *Table) HasRow(id int) bool {
	_, ok := t.rows[id]
	return ok
}

// EnsureRow inserts an empty row for id, keeping the index sorted.
func (t *Table) EnsureRow(id int) {
	if _, ok := t.rows[id]; ok {
		return
	}
	t.rows[id] = make(map[string]string)
	pos := sort.SearchInts(t.ids, id)
	t.ids = append(t.ids, 0)
	copy(t.ids[pos+1:], t.ids[pos:])
	t.ids[pos] = id
}

// Get returns the cell value and whether it is present.
func (t *Table) Get(id int, col string) (string, bool) {
	row, ok := t.rows[id]
	if !ok {
		return "", false
	}
	value, ok := row[col]
	return value, ok
}

// Set stores a cell value, creating the row and column as needed.
func (t *Table) Set(id int, col, value string) {
	t.EnsureColumn(col)
	t.EnsureRow(id)
	t.rows[id][col] = value
}

// Clear removes a cell value if present.
func (t *Table) Clear(id int, col string) {
	if row, ok := t.rows[id]; ok {
		delete(row, col)
	}
}

// Drop removes the row with the given id.
func (t *Table) Drop(id int) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	pos := sort.SearchInts(t.ids, id)
	t.ids = append(t.ids[:pos], t.ids[pos+1:]...)
}

// IsEmpty reports whether the table has no rows or no columns.
func (t *Table) IsEmpty() bool {
	return len(t.ids) == 0 || len(t.columns) == 0
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := New(t.columns...)
	for _, id := range t.ids {
		out.EnsureRow(id)
		for col, value := range t.rows[id] {
			out.rows[id][col] = value
		}
	}
	return out
}

// Restrict returns a copy limited to the columns also present in keep,
// preserving the receiver's column order and all of its rows.
func (t *Table) Restrict(keep *Table) *Table {
	var cols []string
	for _, col := range t.columns {
		if keep.HasColumn(col) {
			cols = append(cols, col)
		}
	}
	out := New(cols...)
	for _, id := range t.ids {
		out.EnsureRow(id)
		for _, col := range cols {
			if value, ok := t.rows[id][col]; ok {
				out.rows[id][col] = value
			}
		}
	}
	return out
}

// Select returns a copy limited to the named columns, in the given order,
// skipping names the table does not carry.
func (t *Table) Select(columns []string) *Table {
	var cols []string
	for _, col := range columns {
		if t.HasColumn(col) {
			cols = append(cols, col)
		}
	}
	out := New(cols...)
	for _, id := range t.ids {
		out.EnsureRow(id)
		for _, col := range cols {
			if value, ok := t.rows[id][col]; ok {
				out.rows[id][col] = value
			}
		}
	}
	return out
}

// Reindex returns a copy whose rows follow ids; ids without a source row
// become empty rows.
func (t *Table) Reindex(ids []int) *Table {
	out := New(t.columns...)
	for _, id := range ids {
		out.EnsureRow(id)
		if row, ok := t.rows[id]; ok {
			for col, value := range row {
				out.rows[id][col] = value
			}
		}
	}
	return out
}

// Overlay writes other's present cells over the receiver's values at
// matching row ids and columns. Rows and columns that only exist in other
// are ignored.
func (t *Table) Overlay(other *Table) {
	for _, id := range other.ids {
		row, ok := t.rows[id]
		if !ok {
			continue
		}
		for col, value := range other.rows[id] {
			if _, ok := t.colSet[col]; !ok {
				continue
			}
			row[col] = value
		}
	}
}
