package request

import "cimdea/internal/core"

// SimpleRequest is constructed from bare name tuples: product, variable
// names, dataset names, and an optional unit-of-analysis code. Every
// requested name is validated against the metadata already loaded on the
// given Entities; unknown names are reported with the offending name.
type SimpleRequest struct {
	product    string
	variables  []core.RequestVariable
	samples    []core.RequestSample
	conditions []core.Condition
	uoa        core.RecordType
}

// entitiesLookup is the minimal surface SimpleRequest needs from
// metadata.Entities, kept narrow so this package doesn't import
// internal/metadata (and so tests can use a fake).
type entitiesLookup interface {
	VariableByName(name string) (core.IpumsVariable, bool)
	DatasetByName(name string) (core.IpumsDataset, bool)
}

// NewSimpleRequest validates variableNames/datasetNames against entities
// and resolves the unit of analysis (uoaCode, or the collection default
// when uoaCode is zero).
func NewSimpleRequest(
	collection *core.MicroDataCollection,
	entities entitiesLookup,
	variableNames []string,
	datasetNames []string,
	uoaCode byte,
) (*SimpleRequest, error) {
	uoa, err := collection.ResolveUnitOfAnalysis(uoaCode)
	if err != nil {
		return nil, err
	}

	variables := make([]core.RequestVariable, 0, len(variableNames))
	for _, name := range variableNames {
		v, ok := entities.VariableByName(name)
		if !ok {
			return nil, core.UnknownVariable(name)
		}
		variables = append(variables, core.RequestVariable{Variable: v})
	}

	samples := make([]core.RequestSample, 0, len(datasetNames))
	for _, name := range datasetNames {
		d, ok := entities.DatasetByName(name)
		if !ok {
			return nil, core.UnknownDataset(name)
		}
		samples = append(samples, core.RequestSample{Dataset: d})
	}

	return &SimpleRequest{
		product:   collection.Product,
		variables: variables,
		samples:   samples,
		uoa:       uoa,
	}, nil
}

func (r *SimpleRequest) Product() string                        { return r.product }
func (r *SimpleRequest) RequestVariables() []core.RequestVariable { return r.variables }
func (r *SimpleRequest) RequestSamples() []core.RequestSample     { return r.samples }
func (r *SimpleRequest) Conditions() []core.Condition             { return r.conditions }
func (r *SimpleRequest) UnitOfAnalysis() core.RecordType          { return r.uoa }
func (r *SimpleRequest) Codebook() string                         { return codebook(r.variables) }
