package projectconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullConfig(t *testing.T) {
	const doc = `
product = "usa"
product_root = "/pkg/ipums/usa"
data_root = "/data/usa/current"
output_format = "json"
`
	cfg, err := NewParser().Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "usa", cfg.Product)
	assert.Equal(t, "/pkg/ipums/usa", cfg.ProductRoot)
	assert.Equal(t, "/data/usa/current", cfg.DataRoot)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestParseEmptyDocumentYieldsZeroConfig(t *testing.T) {
	cfg, err := NewParser().Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestParseFileMissingIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewParser().ParseFile(filepath.Join(dir, "cimdea.toml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestParseFileReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cimdea.toml")
	require.NoError(t, os.WriteFile(path, []byte(`product = "cps"`), 0o644))

	cfg, err := NewParser().ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cps", cfg.Product)
}
