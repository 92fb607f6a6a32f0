package sales

// Table is a schema-free materialization of the sales table. The columns are
// whatever the database schema provides; the program never interprets them,
// it only renders them into the analysis prompt. Values are stringified at
// the repository boundary.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// RowCount reports how many data rows were fetched.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the query succeeded but returned zero rows.
func (t *Table) Empty() bool {
	return t.RowCount() == 0
}

// Head returns a copy of the table limited to the first n rows. n <= 0 or
// n >= RowCount returns the table unchanged.
func (t *Table) Head(n int) *Table {
	if t == nil || n <= 0 || n >= len(t.Rows) {
		return t
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}
