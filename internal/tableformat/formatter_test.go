package tableformat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cimdea/internal/tabulate"
)

func sampleTable() tabulate.Table {
	return tabulate.Table{
		Dataset: "us2015b",
		Heading: []tabulate.OutputColumn{
			tabulate.ConstructedColumn("ct", 2, "Integer"),
			tabulate.ConstructedColumn("weighted_ct", 11, "Integer"),
			tabulate.ConstructedColumn("MARST", 5, "Integer"),
		},
		Rows: [][]string{
			{"120", "12000", "1"},
			{"80", "8000", "2"},
		},
	}
}

func TestFromStringDefaultsToText(t *testing.T) {
	f, err := FromString("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)
}

func TestFromStringUnknownFails(t *testing.T) {
	_, err := FromString("xml")
	assert.Error(t, err)
}

func TestTextFormatterRendersRightAlignedRule(t *testing.T) {
	f, err := NewFormatter(FormatText)
	require.NoError(t, err)

	out, err := f.Format(sampleTable())
	require.NoError(t, err)

	assert.Contains(t, out, "ct | weighted_ct | MARST")
	assert.Contains(t, out, "---")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4) // heading, rule, 2 data rows
	firstDataRow := strings.Split(lines[2], " | ")
	require.Len(t, firstDataRow, 3)
	assert.Equal(t, "120", strings.TrimSpace(firstDataRow[0]))
	assert.Equal(t, "    1", firstDataRow[2]) // MARST column right-aligned to width 5
}

func TestJSONFormatterRendersHeadingAndRows(t *testing.T) {
	f, err := NewFormatter(FormatJSON)
	require.NoError(t, err)

	out, err := f.Format(sampleTable())
	require.NoError(t, err)

	assert.Contains(t, out, `"name": "MARST"`)
	assert.Contains(t, out, `"data_type": "Integer"`)
	assert.Contains(t, out, `"120"`)
}

func TestCSVAndHTMLAreUnimplemented(t *testing.T) {
	_, err := NewFormatter(FormatCSV)
	require.Error(t, err)

	_, err = NewFormatter(FormatHTML)
	require.Error(t, err)
}
