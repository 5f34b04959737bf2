package table

import "strings"

// ColumnType is the closed set of semantic column types the engine infers.
// The set is fixed and precedence-ordered (boolean > number > date > string),
// so dispatch on it is always an exhaustive switch.
type ColumnType string

const (
	TypeString  ColumnType = "string"
	TypeNumber  ColumnType = "number"
	TypeDate    ColumnType = "date"
	TypeBoolean ColumnType = "boolean"
)

// Column describes one column of a dataset. Columns are created once when a
// dataset is built and never mutated afterward.
type Column struct {
	Name  string     `json:"name"`
	Type  ColumnType `json:"type"`
	Index int        `json:"index"`
}

// Dataset is the in-memory typed table produced from parsed delimited text.
// Every row holds exactly len(Headers) cells and Columns[i].Index == i.
// A dataset is owned by the caller that requested the parse; the summary and
// aggregation components only ever read it.
type Dataset struct {
	Headers  []string   `json:"headers"`
	Rows     [][]string `json:"rows"`
	Columns  []Column   `json:"columns"`
	RowCount int        `json:"row_count"`
}

// Empty returns a dataset with no rows or columns. Empty input text parses to
// this rather than an error.
func Empty() Dataset {
	return Dataset{
		Headers: []string{},
		Rows:    [][]string{},
		Columns: []Column{},
	}
}

// IsEmpty reports whether the dataset has no columns.
func (d Dataset) IsEmpty() bool {
	return len(d.Headers) == 0
}

// Normalize is the single normalization applied at every name/category lookup
// boundary: trim surrounding whitespace, then lowercase.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ColumnByName resolves a column by case-insensitive, trim-insensitive name
// match. Chart specifications may reference a dataset that no longer matches
// exactly, so resolution always happens at use time, never at construction.
func (d Dataset) ColumnByName(name string) (Column, bool) {
	want := Normalize(name)
	if want == "" {
		return Column{}, false
	}
	for _, col := range d.Columns {
		if Normalize(col.Name) == want {
			return col, true
		}
	}
	return Column{}, false
}

// Cell returns the cell at (row, col), or "" when either index is out of
// range. Datasets built by the ingest package are always rectangular, but
// callers handing in their own rows get the same soft behavior.
func (d Dataset) Cell(row, col int) string {
	if row < 0 || row >= len(d.Rows) {
		return ""
	}
	r := d.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ColumnValues returns all raw cell values of one column in row order.
func (d Dataset) ColumnValues(col int) []string {
	values := make([]string, 0, len(d.Rows))
	for i := range d.Rows {
		values = append(values, d.Cell(i, col))
	}
	return values
}
