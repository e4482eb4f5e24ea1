package dto

import "strings"

// Record is one row of a tabular dataset: column name -> cell value.
// Columns are discovered at runtime, never assumed.
type Record map[string]string

// Get returns the trimmed cell value for a column, or "" if absent.
func (r Record) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// Dataset holds the rows of a spreadsheet along with the column order
// from its header row.
type Dataset struct {
	Columns []string `json:"columns"`
	Rows    []Record `json:"rows"`
}

// Empty reports whether the dataset has no rows.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Rows) == 0
}
