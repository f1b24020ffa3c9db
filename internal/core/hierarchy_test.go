package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildHouseholdPersonHierarchy(t *testing.T) *RecordHierarchy {
	t.Helper()
	h := NewRecordHierarchy('H')
	require.NoError(t, h.AddChild('H', 'P', ForeignKey{Column: "SERIALP", ParentColumn: "SERIAL"}))
	return h
}

func TestRecordHierarchyPathToRoot(t *testing.T) {
	h := buildHouseholdPersonHierarchy(t)

	path, err := h.PathToRoot('P')
	require.NoError(t, err)
	assert.Equal(t, []byte{'P', 'H'}, path)

	path, err = h.PathToRoot('H')
	require.NoError(t, err)
	assert.Equal(t, []byte{'H'}, path)
}

func TestRecordHierarchyUnknownCode(t *testing.T) {
	h := buildHouseholdPersonHierarchy(t)
	_, err := h.PathToRoot('X')
	require.Error(t, err)
}

func TestRecordHierarchyRejectsDuplicateChild(t *testing.T) {
	h := buildHouseholdPersonHierarchy(t)
	err := h.AddChild('H', 'P', ForeignKey{Column: "SERIALP", ParentColumn: "SERIAL"})
	require.Error(t, err)
}

func TestRecordHierarchyChildren(t *testing.T) {
	h := buildHouseholdPersonHierarchy(t)
	assert.Equal(t, []byte{'P'}, h.Children('H'))
	assert.Empty(t, h.Children('P'))
}
