package request

import "cimdea/internal/core"

// AbacusRequest is constructed from the external JSON envelope (see
// internal/request/json for the decode/validate step). By the time an
// AbacusRequest exists, every mnemonic has been resolved against
// metadata, every raw category bin has been converted, and every
// subpopulation entry has become an AND-combined core.Condition.
type AbacusRequest struct {
	product        string
	outputFormat   string
	variables      []core.RequestVariable
	samples        []core.RequestSample
	conditions     []core.Condition
	uoa            core.RecordType
}

// NewAbacusRequest builds an AbacusRequest from already-resolved parts.
// The JSON-to-parts resolution itself lives in package requestjson, which
// depends on this package rather than the reverse.
func NewAbacusRequest(
	product string,
	outputFormat string,
	variables []core.RequestVariable,
	samples []core.RequestSample,
	conditions []core.Condition,
	uoa core.RecordType,
) *AbacusRequest {
	return &AbacusRequest{
		product:      product,
		outputFormat: outputFormat,
		variables:    variables,
		samples:      samples,
		conditions:   conditions,
		uoa:          uoa,
	}
}

func (r *AbacusRequest) Product() string                        { return r.product }
func (r *AbacusRequest) OutputFormat() string                   { return r.outputFormat }
func (r *AbacusRequest) RequestVariables() []core.RequestVariable { return r.variables }
func (r *AbacusRequest) RequestSamples() []core.RequestSample     { return r.samples }
func (r *AbacusRequest) Conditions() []core.Condition             { return r.conditions }
func (r *AbacusRequest) UnitOfAnalysis() core.RecordType          { return r.uoa }
func (r *AbacusRequest) Codebook() string                         { return codebook(r.variables) }
