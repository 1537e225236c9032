package iocache

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/branflake2267/docs-sub001/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"docdiff_report_cache", false},
		{"_private", false},
		{"Table1", false},
		{"", true},
		{"1table", true},
		{"bad-name", true},
		{"drop; table", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteAndPlaceholders(t *testing.T) {
	assert.Equal(t, "`runs`", quoteTableName("runs", schema.MySQLBackend))
	assert.Equal(t, `"runs"`, quoteTableName("runs", schema.PostgreSQLBackend))
	assert.Equal(t, `"runs"`, quoteTableName("runs", schema.SQLiteBackend))

	assert.Equal(t, "?, ?, ?", placeholderList(schema.SQLiteBackend, 3))
	assert.Equal(t, "?, ?", placeholderList(schema.MySQLBackend, 2))
	assert.Equal(t, "$1, $2, $3", placeholderList(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "$4", placeholder(schema.PostgreSQLBackend, 4))
}

func TestDriverName(t *testing.T) {
	assert.Equal(t, "sqlite", driverName(schema.SQLiteBackend))
	assert.Equal(t, "mysql", driverName(schema.MySQLBackend))
	assert.Equal(t, "pgx", driverName(schema.PostgreSQLBackend))
}

func TestTimeScanner(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 30, 0, 123456789, time.UTC)

	ts := timeScanner{backend: schema.SQLiteBackend}
	ts.text.String, ts.text.Valid = now.Format(time.RFC3339Nano), true
	got, err := ts.value()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, now.Equal(*got))

	ts = timeScanner{backend: schema.SQLiteBackend}
	got, err = ts.value()
	require.NoError(t, err)
	assert.Nil(t, got)

	ts = timeScanner{backend: schema.SQLiteBackend}
	ts.text.String, ts.text.Valid = "yesterday", true
	_, err = ts.value()
	assert.Error(t, err)

	ts = timeScanner{backend: schema.PostgreSQLBackend}
	ts.native.Time, ts.native.Valid = now, true
	got, err = ts.value()
	require.NoError(t, err)
	assert.Equal(t, now, *got)
}

func TestFormatTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-01T10:30:00Z", formatTime(now, schema.SQLiteBackend))
	assert.Equal(t, now, formatTime(now, schema.MySQLBackend))
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintCacheStatus(&buf, schema.CacheStatus{Backend: "none"})
	assert.Equal(t, "Cache Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	PrintHistoryStatus(&buf, schema.HistoryStatus{
		Backend:       "sqlite",
		Connected:     true,
		TotalRuns:     2,
		LastRunID:     2,
		LastRunTime:   time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
		OldestRunTime: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		TotalChanges:  17,
		TableSizes:    map[string]int64{runsTable: 2, classChangesTable: 9},
	})
	out := buf.String()
	assert.Contains(t, out, "History Backend: sqlite\n")
	assert.Contains(t, out, "Last Run: 2024-05-02 09:00:00\n")
	assert.Contains(t, out, "Total Member Changes: 17\n")
	// Tables are listed in name order
	assert.Contains(t, out, "Table Sizes:\n  docdiff_class_changes: 9 rows\n  docdiff_runs: 2 rows\n")
}

func TestExecuteHistoryExport(t *testing.T) {
	t.Run("requires output file", func(t *testing.T) {
		err := ExecuteHistoryExport(&bytes.Buffer{}, &MockHistoryStore{}, "")
		assert.ErrorContains(t, err, "--output-file")
	})

	t.Run("no data", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", Connected: true}, nil)

		err := ExecuteHistoryExport(&bytes.Buffer{}, store, filepath.Join(t.TempDir(), "out"))
		assert.ErrorContains(t, err, "no history data")
		store.AssertExpectations(t)
	})

	t.Run("query failure", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", TotalRuns: 1}, nil)
		store.On("GetAllRuns").Return(nil, errors.New("boom"))

		err := ExecuteHistoryExport(&bytes.Buffer{}, store, filepath.Join(t.TempDir(), "out"))
		assert.ErrorContains(t, err, "boom")
	})

	t.Run("writes both files", func(t *testing.T) {
		store := newTestHistoryStore(t)
		runID, err := store.BeginRun("u", time.Now(), "1.0", "2.0", map[string]any{"workers": 1})
		require.NoError(t, err)
		require.NoError(t, store.RecordClassChanges(runID, schema.ClassChangeRecords(sampleDiff())))
		require.NoError(t, store.EndRun(runID, time.Now(), sampleDiff(), 0))

		prefix := filepath.Join(t.TempDir(), "history")
		var buf bytes.Buffer
		require.NoError(t, ExecuteHistoryExport(&buf, store, prefix))

		assert.FileExists(t, prefix+".runs.parquet")
		assert.FileExists(t, prefix+".class_changes.parquet")
		assert.Contains(t, buf.String(), "Exported 1 runs to: "+prefix+".runs.parquet")
		assert.Contains(t, buf.String(), "Exported 4 class change records")
	})
}

func TestMockCacheManager(t *testing.T) {
	mgr := &MockCacheManager{}
	mgr.On("GetReportStore").Return(nil)
	mgr.On("GetHistoryStore").Return(&MockHistoryStore{})

	assert.Nil(t, mgr.GetReportStore())
	assert.NotNil(t, mgr.GetHistoryStore())
	mgr.AssertNumberOfCalls(t, "GetReportStore", 1)
	mgr.AssertCalled(t, "GetHistoryStore")
}
