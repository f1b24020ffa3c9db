package core

// ForeignKey links a child record type to its parent by column name, e.g.
// person records carrying SERIALP that matches the household's SERIAL.
type ForeignKey struct {
	// Column is the name on the child record (e.g. "SERIALP").
	Column string
	// ParentColumn is the name on the parent record it matches (e.g. "SERIAL").
	ParentColumn string
}

// Weight describes a record type's population weight column. IPUMS weights
// are stored as integers with an implied decimal scale, e.g. PERWT/100.
type Weight struct {
	Column string
	// ImpliedDecimal is the implied decimal divisor of the stored integer
	// weight. SQL aggregation sums the raw integer column, and weighted_ct
	// is reported unscaled: no component divides it by ImpliedDecimal.
	ImpliedDecimal int
	// SelfWeighted marks a record type whose self-weighting sample-line
	// discipline (SELFWTSL = 2) must be applied when this weight is used
	// as the unit-of-analysis weight.
	SelfWeighted bool
}

// RecordType is one unit within the hierarchical record model, e.g.
// Household or Person.
type RecordType struct {
	Name       string
	Code       byte
	RecordKey  string
	ForeignKeys []ForeignKey
	Weight     *Weight
}

// Clone returns a deep-enough copy suitable for the "requests hold cloned
// values, not references into the store" ownership rule.
func (r RecordType) Clone() RecordType {
	fks := make([]ForeignKey, len(r.ForeignKeys))
	copy(fks, r.ForeignKeys)
	r.ForeignKeys = fks
	if r.Weight != nil {
		w := *r.Weight
		r.Weight = &w
	}
	return r
}
