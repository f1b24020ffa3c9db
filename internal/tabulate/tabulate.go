package tabulate

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"

	_ "github.com/duckdb/duckdb-go/v2"

	"cimdea/internal/cimdeactx"
	"cimdea/internal/conventions"
	"cimdea/internal/core"
	"cimdea/internal/querygen"
	"cimdea/internal/request"
)

// Tabulator runs a DataRequest against DuckDB and assembles a Tabulation.
// A fresh connection is opened for each Tabulate call and closed before
// returning, success or failure; no table is ever returned half-built.
type Tabulator struct {
	Platform querygen.Platform
	Format   conventions.InputFormat
	out      io.Writer
}

// NewTabulator builds a Tabulator targeting DuckDB over Parquet input,
// the conventions default. Pass Options to override either.
func NewTabulator(opts ...Option) *Tabulator {
	t := &Tabulator{Platform: querygen.DuckDB, Format: conventions.Parquet, out: io.Discard}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Option configures a Tabulator.
type Option func(*Tabulator)

// WithFormat overrides the input format (default Parquet).
func WithFormat(format conventions.InputFormat) Option {
	return func(t *Tabulator) { t.Format = format }
}

// WithOutput directs diagnostic logging to w instead of discarding it.
func WithOutput(w io.Writer) Option {
	return func(t *Tabulator) { t.out = w }
}

func (t *Tabulator) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(t.out, format, args...)
}

// Tabulate connects to DuckDB, runs one generated query per requested
// sample, and returns the assembled Tabulation. The first dataset whose
// query fails to generate (a metadata error) or to run (an execution
// error, e.g. the dataset's file lacks a requested variable's column)
// aborts the whole call: the error is returned immediately, no tables are
// produced for the other datasets, and no partial Tabulation is returned.
func (t *Tabulator) Tabulate(ctx context.Context, mctx *cimdeactx.Context, req request.DataRequest) (*Tabulation, error) {
	gen, err := querygen.GetPlatform(t.Platform)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, core.ExecutionErr("connect", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			t.printf("warning: failed to close duckdb connection: %v\n", closeErr)
		}
	}()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		return nil, core.ExecutionErr("ping", pingErr)
	}

	heading := buildHeading(req.RequestVariables())

	tables := make([]Table, 0, len(req.RequestSamples()))
	for _, sample := range req.RequestSamples() {
		sqlText, err := gen.Generate(req, sample, mctx.Conventions, t.Format)
		if err != nil {
			return nil, core.MetadataErr("dataset", sample.Dataset.Name, "%s", err.Error())
		}
		t.printf("%s: %s\n", sample.Dataset.Name, sqlText)

		rows, err := t.runQuery(ctx, db, sqlText, heading)
		if err != nil {
			return nil, core.ExecutionErr(sample.Dataset.Name, err)
		}
		tables = append(tables, Table{Dataset: sample.Dataset.Name, Heading: heading, Rows: rows})
	}

	return &Tabulation{Tables: tables}, nil
}

// buildHeading assembles the output heading: ct, weighted_ct, then one
// column per request variable in request order.
func buildHeading(vars []core.RequestVariable) []OutputColumn {
	heading := make([]OutputColumn, 0, len(vars)+2)
	heading = append(heading, ConstructedColumn("ct", len("ct"), "Integer"))
	heading = append(heading, ConstructedColumn("weighted_ct", len("weighted_ct"), "Integer"))
	for _, rv := range vars {
		heading = append(heading, RequestVarColumn(rv))
	}
	return heading
}

// runQuery executes sqlText and reads out every row as display strings.
func (t *Tabulator) runQuery(ctx context.Context, db *sql.DB, sqlText string, heading []OutputColumn) ([][]string, error) {
	rows, err := db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	dest := make([]any, len(heading))
	scan := make([]any, len(heading))
	for i := range dest {
		scan[i] = &dest[i]
	}

	var out [][]string
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		record := make([]string, len(heading))
		for i := range heading {
			record[i] = formatCell(dest[i])
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return out, nil
}

// formatCell converts one raw cell value into its display string. Weight
// scaling (implied decimals) is not applied here: querygen already sums
// raw weight columns and divides general recodes in SQL, so the value
// read out is already the one to display.
func formatCell(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

