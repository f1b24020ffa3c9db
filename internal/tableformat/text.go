package tableformat

import (
	"strings"

	"cimdea/internal/tabulate"
)

// textFormatter renders a bar-separated, right-aligned text table: one
// heading row, a single rule, then the data rows.
type textFormatter struct{}

func (textFormatter) Format(t tabulate.Table) (string, error) {
	widths := make([]int, len(t.Heading))
	for i, col := range t.Heading {
		widths[i] = columnWidth(col)
	}

	var sb strings.Builder
	writeRow(&sb, headingCells(t.Heading), widths)
	sb.WriteString(rule(widths))
	sb.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(&sb, row, widths)
	}

	return sb.String(), nil
}

func headingCells(heading []tabulate.OutputColumn) []string {
	cells := make([]string, len(heading))
	for i, col := range heading {
		cells[i] = col.Name
	}
	return cells
}

func writeRow(sb *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(padLeft(cell, widths[i]))
	}
	sb.WriteString("\n")
}

func rule(widths []int) string {
	var sb strings.Builder
	for i, w := range widths {
		if i > 0 {
			sb.WriteString("-+-")
		}
		sb.WriteString(strings.Repeat("-", w))
	}
	return sb.String()
}
