package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/branflake2267/docs-sub001/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRuns() []Run {
	now := time.Now()
	start := now.Add(-2 * time.Hour)
	end := start.Add(1500 * time.Millisecond)
	duration := int32(1500)
	params := `{"categories":"configs,methods","workers":4}`

	return []Run{
		{
			RunID:           1,
			RunUUID:         "0b5c5e4e-8a53-4c1c-9e53-6f0f2a0d6a11",
			StartTime:       start,
			EndTime:         &end,
			RunDurationMs:   &duration,
			OldVersion:      "6.2.0",
			NewVersion:      "7.0.0",
			AddedClasses:    12,
			RemovedClasses:  3,
			ModifiedClasses: 40,
			WarningCount:    2,
			ConfigParams:    &params,
		},
		{
			RunID:      2,
			RunUUID:    "6d1a1f7e-0a0b-44a3-9a45-2b4f0f8c2b22",
			StartTime:  now,
			OldVersion: "7.0.0",
			NewVersion: "7.1.0",
			// Unfinished run: nullable fields stay nil
		},
	}
}

func readAll[T any](t *testing.T, content []byte) []T {
	t.Helper()
	reader := parquet.NewGenericReader[T](bytes.NewReader(content))
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestRunStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(Run))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"run_id", "run_uuid", "start_time", "end_time", "run_duration_ms", "old_version",
		"new_version", "added_classes", "removed_classes", "modified_classes", "warning_count",
		"config_params",
	}
	for _, colName := range expectedColumns {
		_, ok := sch.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestClassChangeStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(ClassChange))
	for _, colName := range []string{"run_id", "class_name", "category", "added", "modified", "removed"} {
		_, ok := sch.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := sampleRuns()

	require.NoError(t, WriteRunsParquet(data, outputPath))

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	readData := readAll[Run](t, content)
	require.Len(t, readData, len(data))

	for i := range data {
		assert.Equal(t, data[i].RunID, readData[i].RunID)
		assert.Equal(t, data[i].RunUUID, readData[i].RunUUID)
		assert.Equal(t, data[i].OldVersion, readData[i].OldVersion)
		assert.Equal(t, data[i].ModifiedClasses, readData[i].ModifiedClasses)
		assert.WithinDuration(t, data[i].StartTime, readData[i].StartTime, time.Nanosecond)
	}

	// Nullable fields
	require.NotNil(t, readData[0].EndTime)
	assert.WithinDuration(t, *data[0].EndTime, *readData[0].EndTime, time.Nanosecond)
	require.NotNil(t, readData[0].RunDurationMs)
	assert.Equal(t, int32(1500), *readData[0].RunDurationMs)
	require.NotNil(t, readData[0].ConfigParams)
	assert.Equal(t, *data[0].ConfigParams, *readData[0].ConfigParams)

	assert.Nil(t, readData[1].EndTime)
	assert.Nil(t, readData[1].RunDurationMs)
	assert.Nil(t, readData[1].ConfigParams)
}

func TestWriteClassChangesParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "class_changes.parquet")
	data := ConvertClassChangeRecords([]schema.ClassChangeRecord{
		{RunID: 1, ClassName: "Ext.Panel", Category: "methods", Added: 1, Modified: 2},
		{RunID: 1, ClassName: "Ext.Gone", Category: schema.ClassesCategory, Removed: 1},
	})

	require.NoError(t, WriteClassChangesParquet(data, outputPath))

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, data, readAll[ClassChange](t, content))
}

func TestWriteChanges(t *testing.T) {
	rows := []schema.ChangeRow{
		{Class: "Ext.Window", Category: schema.ClassesCategory, Kind: schema.AddedKind, Buckets: "private"},
		{Class: "Ext.Panel", Category: "configs", Kind: schema.ModifiedKind, Path: "width", Property: "value", Old: "100", New: "200"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteChanges(&buf, ConvertChangeRows(rows)))

	got := readAll[Change](t, buf.Bytes())
	require.Len(t, got, 2)
	assert.Equal(t, "added", got[0].Kind)
	assert.Equal(t, "private", got[0].Buckets)
	assert.Equal(t, "width", got[1].Path)
	assert.Equal(t, "200", got[1].New)
}

func TestWriteRunsParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty_runs.parquet")

	require.NoError(t, WriteRunsParquet([]Run{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteRunsParquet_InvalidPath(t *testing.T) {
	err := WriteRunsParquet(sampleRuns(), "/nonexistent/directory/output.parquet")
	require.Error(t, err)
}

func TestConvertRunRecords(t *testing.T) {
	params := `{"workers":1}`
	records := []schema.RunRecord{{RunID: 7, RunUUID: "u", OldVersion: "a", NewVersion: "b", AddedClasses: 2, ConfigParams: &params}}

	runs := ConvertRunRecords(records)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(7), runs[0].RunID)
	assert.Equal(t, int32(2), runs[0].AddedClasses)
	assert.Same(t, &params, runs[0].ConfigParams)
}
