// Package metadata owns the normalized, index-based store of datasets and
// variables, including the bipartite "which variables exist in which
// datasets" relation. Ids are dense, zero-based, and monotonically
// assigned; once issued they are never reused.
package metadata

import "cimdea/internal/core"

// Entities is the MetadataStore: two dense sequences (variables, datasets),
// two name->id maps, and two bipartite adjacency structures that must
// always agree with each other.
type Entities struct {
	variablesIndex []core.IpumsVariable
	datasetsIndex  []core.IpumsDataset

	variableIDByName map[string]int
	datasetIDByName  map[string]int

	// variablesForDataset[d] is the set of variable ids present in
	// dataset d. Grown lazily to accommodate sparse ids: inserting
	// (d=5, v=3) when only d=0..2 exist must extend this slice with
	// empty sets up to index 5.
	variablesForDataset []map[int]struct{}
	datasetsForVariable []map[int]struct{}
}

// NewEntities returns an empty MetadataStore.
func NewEntities() *Entities {
	return &Entities{
		variableIDByName: make(map[string]int),
		datasetIDByName:  make(map[string]int),
	}
}

// growSets resizes s to at least n entries, appending empty sets, and
// returns the resized slice. This is the fix for the sparse-adjacency
// pitfall: growth must target max(len(s), n), never just "append one."
func growSets(s []map[int]struct{}, n int) []map[int]struct{} {
	for len(s) < n {
		s = append(s, make(map[int]struct{}))
	}
	return s
}

// CreateVariable appends v to the variable index and registers its name,
// returning its id. If the name already exists, returns the existing id
// without mutating v's stored value.
func (e *Entities) CreateVariable(v core.IpumsVariable) int {
	if id, ok := e.variableIDByName[v.Name]; ok {
		return id
	}
	id := len(e.variablesIndex)
	v.ID = id
	e.variablesIndex = append(e.variablesIndex, v)
	e.variableIDByName[v.Name] = id
	e.datasetsForVariable = growSets(e.datasetsForVariable, id+1)
	return id
}

// CreateDataset appends d to the dataset index and registers its name,
// returning its id. Symmetric with CreateVariable.
func (e *Entities) CreateDataset(d core.IpumsDataset) int {
	if id, ok := e.datasetIDByName[d.Name]; ok {
		return id
	}
	id := len(e.datasetsIndex)
	d.ID = id
	e.datasetsIndex = append(e.datasetsIndex, d)
	e.datasetIDByName[d.Name] = id
	e.variablesForDataset = growSets(e.variablesForDataset, id+1)
	return id
}

// Connect inserts (datasetID, variableID) into both bipartite sides. Both
// ids must already exist; this is a programmer error otherwise, matching
// the teacher's "connect is only legal when both ids are present" rule.
func (e *Entities) Connect(datasetID, variableID int) error {
	if datasetID < 0 || datasetID >= len(e.datasetsIndex) {
		return core.MetadataErr("dataset", "", "connect: dataset id %d does not exist", datasetID)
	}
	if variableID < 0 || variableID >= len(e.variablesIndex) {
		return core.MetadataErr("variable", "", "connect: variable id %d does not exist", variableID)
	}
	e.variablesForDataset = growSets(e.variablesForDataset, datasetID+1)
	e.datasetsForVariable = growSets(e.datasetsForVariable, variableID+1)
	e.variablesForDataset[datasetID][variableID] = struct{}{}
	e.datasetsForVariable[variableID][datasetID] = struct{}{}
	return nil
}

// AddDatasetVariable is the sole public ingestion entry point: upsert
// dataset, upsert variable, then connect them.
func (e *Entities) AddDatasetVariable(d core.IpumsDataset, v core.IpumsVariable) error {
	datasetID := e.CreateDataset(d)
	variableID := e.CreateVariable(v)
	return e.Connect(datasetID, variableID)
}

// VariableByName returns the variable registered under name.
func (e *Entities) VariableByName(name string) (core.IpumsVariable, bool) {
	id, ok := e.variableIDByName[name]
	if !ok {
		return core.IpumsVariable{}, false
	}
	return e.variablesIndex[id].Clone(), true
}

// DatasetByName returns the dataset registered under name.
func (e *Entities) DatasetByName(name string) (core.IpumsDataset, bool) {
	id, ok := e.datasetIDByName[name]
	if !ok {
		return core.IpumsDataset{}, false
	}
	return e.datasetsIndex[id].Clone(), true
}

// VariableByID returns the variable at id. Panics on an out-of-range id:
// callers are expected to have validated ids obtained from this store, so
// an invalid id here is a contract violation, not a user error.
func (e *Entities) VariableByID(id int) core.IpumsVariable {
	return e.variablesIndex[id].Clone()
}

// DatasetByID returns the dataset at id. See VariableByID for the
// out-of-range contract.
func (e *Entities) DatasetByID(id int) core.IpumsDataset {
	return e.datasetsIndex[id].Clone()
}

// VariablesForDataset returns the variable ids connected to dataset d.
func (e *Entities) VariablesForDataset(d int) map[int]struct{} {
	if d < 0 || d >= len(e.variablesForDataset) {
		return nil
	}
	return e.variablesForDataset[d]
}

// DatasetsForVariable returns the dataset ids connected to variable v.
func (e *Entities) DatasetsForVariable(v int) map[int]struct{} {
	if v < 0 || v >= len(e.datasetsForVariable) {
		return nil
	}
	return e.datasetsForVariable[v]
}

// HasVariableInDataset reports whether variable name exists in dataset
// datasetName.
func (e *Entities) HasVariableInDataset(datasetName, variableName string) bool {
	d, ok := e.datasetIDByName[datasetName]
	if !ok {
		return false
	}
	v, ok := e.variableIDByName[variableName]
	if !ok {
		return false
	}
	_, present := e.VariablesForDataset(d)[v]
	return present
}

// DatasetCount and VariableCount report the current size of each index,
// used by callers that want to iterate ids 0..N-1 directly.
func (e *Entities) DatasetCount() int  { return len(e.datasetsIndex) }
func (e *Entities) VariableCount() int { return len(e.variablesIndex) }
