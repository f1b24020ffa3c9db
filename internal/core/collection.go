package core

import "strings"

// MicroDataCollection is a product: USA, CPS, IPUMSI, ATUS. It names the
// record types that exist in the product, their hierarchy, and the
// default unit of analysis.
type MicroDataCollection struct {
	Product               string
	RecordTypes           map[byte]RecordType
	Hierarchy             *RecordHierarchy
	DefaultUnitOfAnalysis byte
	// HasFullMetadata flags that full metadata (category labels,
	// formatting, recoding) has been loaded for this product; false means
	// only layout-derived metadata is available. The collection does not
	// hold the metadata entities themselves.
	HasFullMetadata bool
}

// CanonicalProductName upper-cases a product name for consistent lookup,
// e.g. "usa" -> "USA".
func CanonicalProductName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// RecordTypeCodes returns the record type codes known to this collection,
// used to report "valid codes" when a requested unit of analysis doesn't
// exist.
func (c *MicroDataCollection) RecordTypeCodes() []byte {
	codes := make([]byte, 0, len(c.RecordTypes))
	for code := range c.RecordTypes {
		codes = append(codes, code)
	}
	return codes
}

// ResolveUnitOfAnalysis returns the record type for the given code, or the
// product default if code is zero. Fails listing valid codes if the
// requested code isn't present in the hierarchy.
func (c *MicroDataCollection) ResolveUnitOfAnalysis(code byte) (RecordType, error) {
	if code == 0 {
		code = c.DefaultUnitOfAnalysis
	}
	rt, ok := c.RecordTypes[code]
	if !ok {
		return RecordType{}, Msg(
			"unknown unit-of-analysis record type %q; valid codes: %s",
			string(code), formatCodes(c.RecordTypeCodes()),
		)
	}
	return rt, nil
}

func formatCodes(codes []byte) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
