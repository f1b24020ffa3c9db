// Package tabulate executes queries built by querygen against the
// embedded DuckDB engine and assembles Table values with typed,
// width-aware output columns.
package tabulate

import "cimdea/internal/core"

// OutputColumn is either a synthetic column (ct, weighted_ct) or a
// grouping column carrying the full request-variable metadata so the
// formatter can compute widths. The formatters print cell values as
// stored; category labels are not substituted.
type OutputColumn struct {
	// Constructed columns set Name/Width/DataType directly.
	Name     string
	Width    int
	DataType string

	// RequestVar is set for grouping columns; nil for ct/weighted_ct.
	RequestVar *core.RequestVariable
}

// ConstructedColumn builds a synthetic (non-request-variable) output
// column, e.g. ct or weighted_ct.
func ConstructedColumn(name string, width int, dataType string) OutputColumn {
	return OutputColumn{Name: name, Width: width, DataType: dataType}
}

// RequestVarColumn builds an output column backed by a request variable.
func RequestVarColumn(rv core.RequestVariable) OutputColumn {
	width := rv.DisplayWidth
	if width == 0 {
		width = len(rv.Variable.Name)
	}
	return OutputColumn{
		Name:       rv.Variable.Name,
		Width:      width,
		DataType:   rv.Variable.DataType.String(),
		RequestVar: &rv,
	}
}

// EffectiveWidth returns the column's display width: the declared width,
// or the heading name's length if that's larger.
func (c OutputColumn) EffectiveWidth() int {
	if len(c.Name) > c.Width {
		return len(c.Name)
	}
	return c.Width
}

// Table is one dataset's tabulation result: a heading and the rows,
// stored as display strings to keep the type non-generic. Numeric
// formatting happens at read-out, not storage.
type Table struct {
	Dataset string
	Heading []OutputColumn
	Rows    [][]string
}

// Tabulation is the full per-dataset result set, in request sample order.
type Tabulation struct {
	Tables []Table
}
