package querygen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cimdea/internal/conventions"
	"cimdea/internal/core"
)

type fakeRequest struct {
	product    string
	variables  []core.RequestVariable
	samples    []core.RequestSample
	conditions []core.Condition
	uoa        core.RecordType
}

func (f fakeRequest) Product() string                         { return f.product }
func (f fakeRequest) RequestVariables() []core.RequestVariable { return f.variables }
func (f fakeRequest) RequestSamples() []core.RequestSample     { return f.samples }
func (f fakeRequest) Conditions() []core.Condition             { return f.conditions }
func (f fakeRequest) UnitOfAnalysis() core.RecordType          { return f.uoa }
func (f fakeRequest) Codebook() string                         { return "" }

func testConventions(t *testing.T) *conventions.Conventions {
	t.Helper()
	conv, err := conventions.New("usa", "/data")
	require.NoError(t, err)
	return conv
}

func personVar(name string) core.RequestVariable {
	code := byte('P')
	return core.RequestVariable{Variable: core.IpumsVariable{Name: name, RecordTypeCode: &code}}
}

func TestGenerateSingleRecordTypeRawGrouping(t *testing.T) {
	conv := testConventions(t)
	req := fakeRequest{
		variables: []core.RequestVariable{personVar("MARST")},
		uoa:       conv.Collection.RecordTypes['P'],
	}
	gen, err := GetPlatform(DuckDB)
	require.NoError(t, err)

	sql, err := gen.Generate(req, core.RequestSample{Dataset: core.IpumsDataset{Name: "us2015b"}}, conv, conventions.Parquet)
	require.NoError(t, err)
	assert.Contains(t, sql, "SELECT COUNT(*) AS ct, SUM(us2015b_person.PERWT) AS weighted_ct, us2015b_person.MARST")
	assert.Contains(t, sql, "FROM read_parquet('/data/parquet/us2015b/us2015b_usa.P.parquet') AS us2015b_person")
	assert.Contains(t, sql, "GROUP BY us2015b_person.MARST")
	assert.Contains(t, sql, "ORDER BY us2015b_person.MARST ASC")
	assert.NotContains(t, sql, "JOIN")
}

func TestGenerateJoinsHouseholdVariable(t *testing.T) {
	conv := testConventions(t)
	code := byte('H')
	householdVar := core.RequestVariable{Variable: core.IpumsVariable{Name: "GQ", RecordTypeCode: &code}}
	req := fakeRequest{
		variables: []core.RequestVariable{householdVar},
		uoa:       conv.Collection.RecordTypes['P'],
	}
	gen, err := GetPlatform(DuckDB)
	require.NoError(t, err)

	sql, err := gen.Generate(req, core.RequestSample{Dataset: core.IpumsDataset{Name: "us2015b"}}, conv, conventions.Parquet)
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM read_parquet('/data/parquet/us2015b/us2015b_usa.P.parquet') AS us2015b_person")
	assert.Contains(t, sql, "JOIN read_parquet('/data/parquet/us2015b/us2015b_usa.H.parquet') AS us2015b_household")
	assert.Contains(t, sql, "ON us2015b_person.SERIALP = us2015b_household.SERIAL")
}

func TestGenerateCategoricalBinsEmitCase(t *testing.T) {
	conv := testConventions(t)
	lt := core.NewLessThan(10000, "low")
	rv := personVar("INCWAGE")
	rv.Bins = []core.CategoryBin{lt}
	req := fakeRequest{
		variables: []core.RequestVariable{rv},
		uoa:       conv.Collection.RecordTypes['P'],
	}
	gen, err := GetPlatform(DuckDB)
	require.NoError(t, err)

	sql, err := gen.Generate(req, core.RequestSample{Dataset: core.IpumsDataset{Name: "us2015b"}}, conv, conventions.Parquet)
	require.NoError(t, err)
	assert.Contains(t, sql, "CASE WHEN us2015b_person.INCWAGE < 10000 THEN 0 END")
}

func TestGenerateSubpopulationCondition(t *testing.T) {
	conv := testConventions(t)
	req := fakeRequest{
		variables:  []core.RequestVariable{personVar("SCHOOL")},
		conditions: []core.Condition{core.NewEqualsCondition("SCHOOL", []int{1, 2})},
		uoa:        conv.Collection.RecordTypes['P'],
	}
	gen, err := GetPlatform(DuckDB)
	require.NoError(t, err)

	sql, err := gen.Generate(req, core.RequestSample{Dataset: core.IpumsDataset{Name: "us2015b"}}, conv, conventions.Parquet)
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE us2015b_person.SCHOOL IN (1, 2)")
}

func TestGenerateUnsupportedRecordTypeFails(t *testing.T) {
	conv := testConventions(t)
	code := byte('X')
	req := fakeRequest{
		variables: []core.RequestVariable{{Variable: core.IpumsVariable{Name: "BOGUS", RecordTypeCode: &code}}},
		uoa:       conv.Collection.RecordTypes['P'],
	}
	gen, err := GetPlatform(DuckDB)
	require.NoError(t, err)

	_, err = gen.Generate(req, core.RequestSample{Dataset: core.IpumsDataset{Name: "us2015b"}}, conv, conventions.Parquet)
	require.Error(t, err)
}

func TestReservedPlatformsAreUnimplemented(t *testing.T) {
	gen, err := GetPlatform(DataFusion)
	require.NoError(t, err)
	_, err = gen.Generate(fakeRequest{}, core.RequestSample{}, testConventions(t), conventions.Parquet)
	require.Error(t, err)
}
