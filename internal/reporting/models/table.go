// Package models defines the report filters, rows and column projections.
package models

// Column is one labelled cell accessor of a report projection.
type Column[R any] struct {
	Label string
	Value func(R) string
}

// Table is a rendered report: the header labels and one string row per
// record, in projection order.
type Table struct {
	Name    string
	Title   string
	Sort    Sort
	Columns []string
	Rows    [][]string
}

// Render applies cols to every row.
func Render[R any](name, title string, sort Sort, cols []Column[R], rows []R) *Table {
	t := &Table{
		Name:    name,
		Title:   title,
		Sort:    sort,
		Columns: make([]string, len(cols)),
		Rows:    make([][]string, 0, len(rows)),
	}
	for i, c := range cols {
		t.Columns[i] = c.Label
	}
	for _, r := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.Value(r)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}
