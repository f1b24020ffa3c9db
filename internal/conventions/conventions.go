// Package conventions maps (product, dataset, record type, input format)
// to on-disk data paths, and holds each built-in product's record
// hierarchy and defaults.
package conventions

import (
	"fmt"
	"strings"

	"cimdea/internal/core"
)

// InputFormat names the on-disk representation QueryGen/Conventions
// targets: fixed-width (.dat.gz), Parquet, or CSV.
type InputFormat string

const (
	FixedWidth InputFormat = "fixed_width"
	Parquet    InputFormat = "parquet"
	CSV        InputFormat = "csv"
)

// Conventions computes data file paths and SQL identifiers for one
// product, and owns that product's MicroDataCollection defaults.
type Conventions struct {
	Product    string
	DataRoot   string
	Collection *core.MicroDataCollection
}

// New builds Conventions for a known product name. Unknown product names
// fail construction.
func New(product, dataRoot string) (*Conventions, error) {
	canonical := core.CanonicalProductName(product)
	collection, err := defaultCollection(canonical)
	if err != nil {
		return nil, err
	}
	return &Conventions{Product: canonical, DataRoot: dataRoot, Collection: collection}, nil
}

// PathsFromDatasetName computes the set of data files for a dataset under
// the given input format. For fixed-width, the single file is keyed by
// the empty string. For parquet/csv, one file per record type is
// returned, keyed by the record type's uppercase code.
func (c *Conventions) PathsFromDatasetName(dataset string, format InputFormat) (map[string]string, error) {
	productLower := strings.ToLower(c.Product)

	switch format {
	case FixedWidth:
		path := fmt.Sprintf("%s/%s_%s.dat.gz", c.DataRoot, dataset, productLower)
		return map[string]string{"": path}, nil

	case Parquet, CSV:
		sub, ext := "parquet", "parquet"
		if format == CSV {
			sub, ext = "csv", "csv"
		}
		paths := make(map[string]string, len(c.Collection.RecordTypes))
		for code := range c.Collection.RecordTypes {
			rt := string(code)
			path := fmt.Sprintf("%s/%s/%s/%s_%s.%s.%s", c.DataRoot, sub, dataset, dataset, productLower, rt, ext)
			paths[rt] = path
		}
		return paths, nil

	default:
		return nil, core.Msg("unsupported input format %q", format)
	}
}

// TableAlias returns the SQL identifier used to reference dataset's
// record type rt, e.g. "us2015b_person".
func (c *Conventions) TableAlias(dataset string, rt core.RecordType) string {
	return fmt.Sprintf("%s_%s", dataset, strings.ToLower(rt.Name))
}

// LayoutPath returns the conventional path to a dataset's fixed-width
// layout descriptor.
func (c *Conventions) LayoutPath(dataset string) string {
	return fmt.Sprintf("%s/layouts/%s.layout.txt", c.DataRoot, dataset)
}

// defaultCollection builds the built-in household+person structure
// shared by USA, CPS, and IPUMSI; ATUS gets the same structure. Unknown
// products fail.
func defaultCollection(product string) (*core.MicroDataCollection, error) {
	switch product {
	case "USA", "CPS", "IPUMSI":
		return householdPersonCollection(product), nil
	case "ATUS":
		return householdPersonCollection(product), nil
	default:
		return nil, core.Msg("unknown product %q", product)
	}
}

func householdPersonCollection(product string) *core.MicroDataCollection {
	hierarchy := core.NewRecordHierarchy('H')
	_ = hierarchy.AddChild('H', 'P', core.ForeignKey{Column: "SERIALP", ParentColumn: "SERIAL"})

	household := core.RecordType{
		Name:      "Household",
		Code:      'H',
		RecordKey: "SERIAL",
		Weight:    &core.Weight{Column: "HHWT", ImpliedDecimal: 100},
	}
	person := core.RecordType{
		Name:        "Person",
		Code:        'P',
		RecordKey:   "PSERIAL",
		ForeignKeys: []core.ForeignKey{{Column: "SERIALP", ParentColumn: "SERIAL"}},
		Weight:      &core.Weight{Column: "PERWT", ImpliedDecimal: 100},
	}

	return &core.MicroDataCollection{
		Product: product,
		RecordTypes: map[byte]core.RecordType{
			'H': household,
			'P': person,
		},
		Hierarchy:             hierarchy,
		DefaultUnitOfAnalysis: 'P',
	}
}
