package catalog

// Table is a sheet as read from a source: its header and its rows.
// Columns may be nil, in which case the union of row keys is used.
type Table struct {
	Columns []string
	Rows    []RawRow
}

// HasColumn reports whether the header (or, without a header, any row)
// carries the column.
func (t Table) HasColumn(col string) bool {
	if t.Columns != nil {
		for _, c := range t.Columns {
			if c == col {
				return true
			}
		}
		return false
	}
	for _, r := range t.Rows {
		if r.Has(col) {
			return true
		}
	}
	return false
}
