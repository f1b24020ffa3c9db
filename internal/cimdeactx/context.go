// Package cimdeactx implements Context, the root object that wires
// Conventions and the MetadataStore together and drives layout loading
// on demand.
package cimdeactx

import (
	"fmt"

	"cimdea/internal/conventions"
	"cimdea/internal/core"
	"cimdea/internal/layout"
	"cimdea/internal/metadata"
)

// Context is exclusively owned by the request handling it: one Context
// plus its Entities per request, never shared mutable state across
// concurrent requests.
type Context struct {
	Product    string
	ProductRoot string
	DataRoot   string

	Conventions *conventions.Conventions
	Entities    *metadata.Entities

	// AllowFullMetadata is true when the product root exists on disk;
	// EnableFullMetadata is true when the caller opts in. Both must hold
	// before full metadata (category labels, recoding) is consulted.
	AllowFullMetadata  bool
	EnableFullMetadata bool
}

// New constructs a Context for product, deriving product/data roots by
// convention unless overridden: productRoot defaults to
// "/pkg/ipums/<product>" and dataRoot to "<productRoot>/output_data/current".
func New(product string, productRoot, dataRoot *string, enableFullMetadata bool) (*Context, error) {
	canonical := core.CanonicalProductName(product)

	root := fmt.Sprintf("/pkg/ipums/%s", lowerProduct(canonical))
	if productRoot != nil {
		root = *productRoot
	}

	data := fmt.Sprintf("%s/output_data/current", root)
	if dataRoot != nil {
		data = *dataRoot
	}

	conv, err := conventions.New(canonical, data)
	if err != nil {
		return nil, err
	}

	return &Context{
		Product:            canonical,
		ProductRoot:        root,
		DataRoot:           data,
		Conventions:        conv,
		Entities:           metadata.NewEntities(),
		AllowFullMetadata:  productRootExists(root),
		EnableFullMetadata: enableFullMetadata,
	}, nil
}

func lowerProduct(p string) string {
	out := make([]byte, len(p))
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// LoadMetadataForDatasets loads metadata for each named dataset.
// Idempotent: loading an already-loaded dataset is a no-op on duplicates
// (MetadataStore's CreateDataset/CreateVariable already guarantee this).
// When full metadata is disabled (the common case), this dispatches to
// layout-file loading. With full metadata enabled, it would consult the
// metadata database at <product_root>/metadata/versions/metadata.db; that
// path is a stub here.
func (c *Context) LoadMetadataForDatasets(names []string) error {
	if c.EnableFullMetadata && c.AllowFullMetadata {
		return c.loadFullMetadataForDatasets(names)
	}
	for _, name := range names {
		if err := c.loadLayoutForDataset(name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) loadLayoutForDataset(dataset string) error {
	path := c.Conventions.LayoutPath(dataset)
	vars, err := layout.ParseFile(path)
	if err != nil {
		return err
	}

	ds := core.IpumsDataset{Name: dataset}
	for _, lv := range vars {
		iv, err := lv.ToIpumsVariable()
		if err != nil {
			return err
		}
		if err := c.Entities.AddDatasetVariable(ds, iv); err != nil {
			return err
		}
	}
	return nil
}

// loadFullMetadataForDatasets is a stub: the persistent metadata database
// is an external collaborator, specified only by the interface the core
// consumes. Implementations may defer.
func (c *Context) loadFullMetadataForDatasets(names []string) error {
	return core.Unimplemented("full metadata database loading (" + c.ProductRoot + "/metadata/versions/metadata.db)")
}

// productRootExists is overridable in tests; defaults to a real
// filesystem check.
var productRootExists = func(root string) bool {
	return dirExists(root)
}
