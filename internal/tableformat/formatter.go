// Package tableformat renders one tabulate.Table at a time into an output
// string: a text table, or a JSON payload. CSV and HTML are reserved,
// matching the spec's stated Non-goals for this round.
package tableformat

import (
	"strings"

	"cimdea/internal/core"
	"cimdea/internal/tabulate"
)

// Format is an enum type representing the available table output formats.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

// Formatter renders one Table to its display string.
type Formatter interface {
	Format(tabulate.Table) (string, error)
}

// FromString resolves name to a Format, defaulting to text when name is
// empty. Unknown names fail.
func FromString(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatCSV, FormatHTML:
		return f, nil
	default:
		return "", core.Msg("unsupported table format %q; use 'text' or 'json'", name)
	}
}

// NewFormatter builds the Formatter for format.
func NewFormatter(format Format) (Formatter, error) {
	switch format {
	case "", FormatText:
		return textFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	case FormatCSV:
		return nil, core.Unimplemented("CSV table output")
	case FormatHTML:
		return nil, core.Unimplemented("HTML table output")
	default:
		return nil, core.Msg("unsupported table format %q", format)
	}
}

// columnWidth is the effective display width of a heading column: its
// declared width, or the heading name's length if that is larger.
func columnWidth(col tabulate.OutputColumn) int {
	return col.EffectiveWidth()
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

