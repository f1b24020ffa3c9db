package conventions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnknownProductFails(t *testing.T) {
	_, err := New("not-a-product", "/data")
	require.Error(t, err)
}

func TestNewCanonicalizesProductName(t *testing.T) {
	c, err := New("usa", "/data")
	require.NoError(t, err)
	assert.Equal(t, "USA", c.Product)
	assert.Equal(t, byte('P'), c.Collection.DefaultUnitOfAnalysis)
}

func TestPathsFromDatasetNameParquet(t *testing.T) {
	c, err := New("usa", "/data")
	require.NoError(t, err)

	paths, err := c.PathsFromDatasetName("us2015b", Parquet)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "/data/parquet/us2015b/us2015b_usa.H.parquet", paths["H"])
	assert.Equal(t, "/data/parquet/us2015b/us2015b_usa.P.parquet", paths["P"])
}

func TestPathsFromDatasetNameFixedWidth(t *testing.T) {
	c, err := New("usa", "/data")
	require.NoError(t, err)

	paths, err := c.PathsFromDatasetName("us2015b", FixedWidth)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "/data/us2015b_usa.dat.gz", paths[""])
}

func TestPathsFromDatasetNameCSV(t *testing.T) {
	c, err := New("usa", "/data")
	require.NoError(t, err)

	paths, err := c.PathsFromDatasetName("us2015b", CSV)
	require.NoError(t, err)
	assert.Equal(t, "/data/csv/us2015b/us2015b_usa.P.csv", paths["P"])
}

func TestTableAlias(t *testing.T) {
	c, err := New("usa", "/data")
	require.NoError(t, err)
	rt := c.Collection.RecordTypes['P']
	assert.Equal(t, "us2015b_person", c.TableAlias("us2015b", rt))
}
