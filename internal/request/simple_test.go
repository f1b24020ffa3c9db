package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cimdea/internal/core"
)

type fakeEntities struct {
	variables map[string]core.IpumsVariable
	datasets  map[string]core.IpumsDataset
}

func (f fakeEntities) VariableByName(name string) (core.IpumsVariable, bool) {
	v, ok := f.variables[name]
	return v, ok
}

func (f fakeEntities) DatasetByName(name string) (core.IpumsDataset, bool) {
	d, ok := f.datasets[name]
	return d, ok
}

func personCollection() *core.MicroDataCollection {
	h := core.NewRecordHierarchy('H')
	_ = h.AddChild('H', 'P', core.ForeignKey{Column: "SERIALP", ParentColumn: "SERIAL"})
	return &core.MicroDataCollection{
		Product: "USA",
		RecordTypes: map[byte]core.RecordType{
			'H': {Name: "Household", Code: 'H'},
			'P': {Name: "Person", Code: 'P'},
		},
		Hierarchy:             h,
		DefaultUnitOfAnalysis: 'P',
	}
}

func TestNewSimpleRequestResolvesDefaultUnitOfAnalysis(t *testing.T) {
	entities := fakeEntities{
		variables: map[string]core.IpumsVariable{"MARST": {Name: "MARST"}},
		datasets:  map[string]core.IpumsDataset{"us2015b": {Name: "us2015b"}},
	}
	req, err := NewSimpleRequest(personCollection(), entities, []string{"MARST"}, []string{"us2015b"}, 0)
	require.NoError(t, err)
	assert.Equal(t, byte('P'), req.UnitOfAnalysis().Code)
	assert.Len(t, req.RequestVariables(), 1)
	assert.Len(t, req.RequestSamples(), 1)
}

func TestNewSimpleRequestUnknownVariableFails(t *testing.T) {
	entities := fakeEntities{
		variables: map[string]core.IpumsVariable{},
		datasets:  map[string]core.IpumsDataset{"us2015b": {Name: "us2015b"}},
	}
	_, err := NewSimpleRequest(personCollection(), entities, []string{"NOPE"}, []string{"us2015b"}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOPE")
}

func TestNewSimpleRequestUnknownDatasetFails(t *testing.T) {
	entities := fakeEntities{
		variables: map[string]core.IpumsVariable{"MARST": {Name: "MARST"}},
		datasets:  map[string]core.IpumsDataset{},
	}
	_, err := NewSimpleRequest(personCollection(), entities, []string{"MARST"}, []string{"nope"}, 0)
	require.Error(t, err)
}

func TestNewSimpleRequestUnknownUnitOfAnalysisListsValidCodes(t *testing.T) {
	entities := fakeEntities{
		variables: map[string]core.IpumsVariable{"MARST": {Name: "MARST"}},
		datasets:  map[string]core.IpumsDataset{"us2015b": {Name: "us2015b"}},
	}
	_, err := NewSimpleRequest(personCollection(), entities, []string{"MARST"}, []string{"us2015b"}, 'X')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid codes")
}
