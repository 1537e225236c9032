package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDiff() DiffResult {
	return DiffResult{
		AddedClasses:   []ChangeNode{{Kind: AddedKind, Name: "Ext.New"}},
		RemovedClasses: []ChangeNode{{Kind: RemovedKind, Name: "Ext.Old", Buckets: []Bucket{DeprecatedBucket}}},
		ModifiedClasses: []ClassChange{{
			Name:    "Ext.Panel",
			Scalars: []ScalarChange{{Property: "extends", Old: "Ext.A", New: "Ext.B"}},
			Categories: []CategoryChange{{
				Category: "methods",
				Added:    []ChangeNode{{Kind: AddedKind, Name: "hide"}},
				Modified: []ChangeNode{{
					Kind:    ModifiedKind,
					Name:    "show",
					Scalars: []ScalarChange{{Property: "access", Old: "public", NewAbsent: true}},
					Children: &ChildChanges{
						Removed: []ChangeNode{{Kind: RemovedKind, Name: "config"}},
					},
				}},
			}},
		}},
	}
}

func TestFlattenReport(t *testing.T) {
	rows := FlattenReport(sampleDiff())
	require.Len(t, rows, 6)

	assert.Equal(t, ChangeRow{Class: "Ext.New", Category: ClassesCategory, Kind: AddedKind}, rows[0])
	assert.Equal(t, "deprecated", rows[1].Buckets)
	assert.Equal(t, ChangeRow{Class: "Ext.Panel", Category: ClassesCategory, Kind: ModifiedKind, Property: "extends", Old: "Ext.A", New: "Ext.B"}, rows[2])
	assert.Equal(t, "hide", rows[3].Path)
	assert.Equal(t, ChangeRow{Class: "Ext.Panel", Category: "methods", Kind: ModifiedKind, Path: "show", Property: "access", Old: "public", New: AbsentValue}, rows[4])
	assert.Equal(t, ChangeRow{Class: "Ext.Panel", Category: "methods", Kind: RemovedKind, Path: "show/config"}, rows[5])
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "none", FormatValue("x", true))
	assert.Equal(t, "null", FormatValue(nil, false))
	assert.Equal(t, "String", FormatValue("String", false))
	assert.Equal(t, "true", FormatValue(true, false))
	assert.Equal(t, "42", FormatValue(42.0, false))
	assert.Equal(t, "1000000", FormatValue(1000000.0, false))
	assert.Equal(t, "1234567", FormatValue(1234567.0, false))
	assert.Equal(t, "0.25", FormatValue(0.25, false))
	assert.Equal(t, "-19000", FormatValue(-19000.0, false))
	assert.Equal(t, `["a","b"]`, FormatValue([]any{"a", "b"}, false))
}

func TestClassChangeRecords(t *testing.T) {
	records := ClassChangeRecords(sampleDiff())
	require.Len(t, records, 4)

	assert.Equal(t, ClassChangeRecord{ClassName: "Ext.New", Category: ClassesCategory, Added: 1}, records[0])
	assert.Equal(t, ClassChangeRecord{ClassName: "Ext.Old", Category: ClassesCategory, Removed: 1}, records[1])
	assert.Equal(t, ClassChangeRecord{ClassName: "Ext.Panel", Category: ClassesCategory, Modified: 1}, records[2])
	assert.Equal(t, ClassChangeRecord{ClassName: "Ext.Panel", Category: "methods", Added: 1, Modified: 1}, records[3])
}
