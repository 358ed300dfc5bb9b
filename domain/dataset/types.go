package dataset

import (
	"math"
)

// Column is a single named column of subject-level values. Missing cells are
// encoded as NaN, meaning the subject predates the event the column records.
type Column []float64

// Sum adds every cell with no missing-value handling. A single NaN cell
// makes the result NaN, which is the documented behavior for the outcome
// base rate.
func (c Column) Sum() float64 {
	total := 0.0
	for _, v := range c {
		total += v
	}
	return total
}

// Total is the NaN-skipping sum used for event frequency counts: a missing
// cell contributes nothing rather than poisoning the count.
func (c Column) Total() float64 {
	total := 0.0
	for _, v := range c {
		if !math.IsNaN(v) {
			total += v
		}
	}
	return total
}

// NonMissing returns the number of cells that carry a value.
func (c Column) NonMissing() int {
	n := 0
	for _, v := range c {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Dataset is a rectangular table of named columns, one row per subject.
// Column order follows the source file and drives result ordering downstream.
type Dataset struct {
	names   []string
	columns map[string]Column
	rows    int
}

// New creates an empty dataset with the given row count.
func New(rows int) *Dataset {
	return &Dataset{
		columns: make(map[string]Column),
		rows:    rows,
	}
}

// AddColumn appends a named column. Re-adding a name replaces the values but
// keeps the original position.
func (d *Dataset) AddColumn(name string, values Column) {
	if _, exists := d.columns[name]; !exists {
		d.names = append(d.names, name)
	}
	d.columns[name] = values
}

// Column returns the named column and whether it exists.
func (d *Dataset) Column(name string) (Column, bool) {
	col, ok := d.columns[name]
	return col, ok
}

// Has reports whether the named column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.columns[name]
	return ok
}

// Rows returns the number of subjects.
func (d *Dataset) Rows() int {
	return d.rows
}

// Names returns the column names in source order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// EventColumns returns the candidate event column names in source order,
// excluding the member-attribute columns.
func (d *Dataset) EventColumns(memberCols []string) []string {
	member := make(map[string]bool, len(memberCols))
	for _, name := range memberCols {
		member[name] = true
	}

	var events []string
	for _, name := range d.names {
		if !member[name] {
			events = append(events, name)
		}
	}
	return events
}
