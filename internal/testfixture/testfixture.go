// Package testfixture builds small on-disk CSV datasets for DuckDB
// integration tests, in place of the teacher's testcontainers-go MySQL
// fixtures: a tabulation request only needs a couple of rows per record
// type, and DuckDB's read_csv_auto reads them directly with no server
// to start or tear down.
package testfixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cimdea/internal/conventions"
)

// Table is one record type's fixture data: a CSV header and its rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Dataset writes dataset's CSV files at the paths conv computes under
// conv.DataRoot. Callers that pass a t.TempDir data root get fresh paths
// per test, so tests never share or leak fixture state.
func Dataset(t *testing.T, conv *conventions.Conventions, dataset string, tables map[byte]Table) {
	t.Helper()

	paths, err := conv.PathsFromDatasetName(dataset, conventions.CSV)
	if err != nil {
		t.Fatalf("testfixture: computing CSV paths: %v", err)
	}

	for code, table := range tables {
		path, ok := paths[string(code)]
		if !ok {
			t.Fatalf("testfixture: no CSV path for record type %q in dataset %q", string(code), dataset)
		}
		writeCSV(t, path, table)
	}
}

func writeCSV(t *testing.T, path string, table Table) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("testfixture: creating %s: %v", filepath.Dir(path), err)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(table.Header, ","))
	sb.WriteString("\n")
	for _, row := range table.Rows {
		sb.WriteString(strings.Join(row, ","))
		sb.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("testfixture: writing %s: %v", path, err)
	}
}
