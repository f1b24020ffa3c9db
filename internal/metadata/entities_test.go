package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cimdea/internal/core"
)

func TestCreateVariableIsIdempotentByName(t *testing.T) {
	e := NewEntities()
	id1 := e.CreateVariable(core.IpumsVariable{Name: "MARST"})
	id2 := e.CreateVariable(core.IpumsVariable{Name: "MARST"})
	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, e.VariableCount())
}

func TestAddDatasetVariableIsIdempotent(t *testing.T) {
	e := NewEntities()
	d := core.IpumsDataset{Name: "us2015b"}
	v := core.IpumsVariable{Name: "MARST"}

	require.NoError(t, e.AddDatasetVariable(d, v))
	require.NoError(t, e.AddDatasetVariable(d, v))

	assert.Equal(t, 1, e.DatasetCount())
	assert.Equal(t, 1, e.VariableCount())
	assert.True(t, e.HasVariableInDataset("us2015b", "MARST"))
}

func TestBipartiteAdjacencyAgreesBothWays(t *testing.T) {
	e := NewEntities()
	require.NoError(t, e.AddDatasetVariable(core.IpumsDataset{Name: "us2015b"}, core.IpumsVariable{Name: "MARST"}))
	require.NoError(t, e.AddDatasetVariable(core.IpumsDataset{Name: "us1940a"}, core.IpumsVariable{Name: "MARST"}))

	marstID, ok := e.variableIDByName["MARST"]
	require.True(t, ok)
	datasets := e.DatasetsForVariable(marstID)
	assert.Len(t, datasets, 2)

	for datasetID := range datasets {
		vars := e.VariablesForDataset(datasetID)
		_, present := vars[marstID]
		assert.True(t, present, "VariablesForDataset must agree with DatasetsForVariable")
	}
}

func TestConnectGrowsSparseAdjacencyCorrectly(t *testing.T) {
	// Regression test for the known pitfall: adjacency growth must target
	// max(len, newID+1), not just append-one-if-missing, or inserting a
	// sparse id panics / silently drops data.
	e := NewEntities()
	for i := 0; i < 3; i++ {
		e.CreateDataset(core.IpumsDataset{Name: string(rune('A' + i))})
	}
	v := e.CreateVariable(core.IpumsVariable{Name: "SPARSEVAR"})

	// Dataset id 5 doesn't exist yet as a registered dataset; simulate the
	// pitfall scenario by creating datasets up through id 5 first, then
	// connecting the last one, which requires variablesForDataset to have
	// grown past the 3 entries created above.
	for i := 3; i <= 5; i++ {
		e.CreateDataset(core.IpumsDataset{Name: string(rune('A' + i))})
	}
	require.NoError(t, e.Connect(5, v))

	vars := e.VariablesForDataset(5)
	require.NotNil(t, vars)
	_, present := vars[v]
	assert.True(t, present)
}

func TestConnectRejectsUnknownIDs(t *testing.T) {
	e := NewEntities()
	err := e.Connect(0, 0)
	require.Error(t, err)
}

func TestVariableByNameAbsent(t *testing.T) {
	e := NewEntities()
	_, ok := e.VariableByName("NOPE")
	assert.False(t, ok)
}
