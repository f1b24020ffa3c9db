// Package querygen builds per-dataset SQL for a validated request plus
// the conventions-derived data paths, parameterized by a DataPlatform
// tag. Only the DuckDB dialect is implemented; DataFusion and Polars are
// reserved.
package querygen

import (
	"fmt"
	"sync"

	"cimdea/internal/conventions"
	"cimdea/internal/core"
	"cimdea/internal/request"
)

// Platform names a SQL-generation backend.
type Platform string

const (
	DuckDB     Platform = "duckdb"
	DataFusion Platform = "datafusion"
	Polars     Platform = "polars"
)

// Generator builds one SQL statement for one dataset, grouping variable
// set, weight, and set of subpopulation conditions.
type Generator interface {
	Generate(req request.DataRequest, sample core.RequestSample, conv *conventions.Conventions, format conventions.InputFormat) (string, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[Platform]func() Generator{}
)

// RegisterPlatform adds a constructor to the platform registry. Called
// from each platform implementation's init().
func RegisterPlatform(p Platform, ctor func() Generator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[p] = ctor
}

// GetPlatform returns the Generator for p. An unregistered platform is a
// configuration error; a registered-but-unimplemented platform (e.g.
// DataFusion, Polars) returns a Generator whose Generate always reports
// core.Unimplemented.
func GetPlatform(p Platform) (Generator, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := registry[p]
	if !ok {
		return nil, core.Msg("data platform %q is not registered", p)
	}
	return ctor(), nil
}

func init() {
	RegisterPlatform(DuckDB, func() Generator { return &duckDBGenerator{} })
	RegisterPlatform(DataFusion, func() Generator { return unimplementedGenerator{name: "DataFusion"} })
	RegisterPlatform(Polars, func() Generator { return unimplementedGenerator{name: "Polars"} })
}

type unimplementedGenerator struct{ name string }

func (g unimplementedGenerator) Generate(request.DataRequest, core.RequestSample, *conventions.Conventions, conventions.InputFormat) (string, error) {
	return "", core.Unimplemented(fmt.Sprintf("%s query generation", g.name))
}
