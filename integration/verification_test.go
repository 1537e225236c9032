//go:build basic

// Package integration contains integration tests for docdiff.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/branflake2267/docs-sub001/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDiffJSONReport runs docdiff diff against the fixtures and decodes the JSON report.
func TestDiffJSONReport(t *testing.T) {
	home := t.TempDir()
	res := runDocdiff(t, home, "diff", oldFixture, newFixture,
		"--output", "json", "--output-file", "-", "--cache-backend", "none")
	require.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stderr, "Corpora: old.json → new.json")

	var report schema.ChangeReport
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &report))
	assert.Equal(t, "old", report.OldVersion)
	assert.Equal(t, "new", report.NewVersion)
	assert.NotEmpty(t, report.RunID)

	added := make([]string, 0, len(report.Diff.AddedClasses))
	for _, n := range report.Diff.AddedClasses {
		added = append(added, n.Name)
	}
	removed := make([]string, 0, len(report.Diff.RemovedClasses))
	for _, n := range report.Diff.RemovedClasses {
		removed = append(removed, n.Name)
	}
	assert.Equal(t, []string{"Ext.Window"}, added)
	assert.ElementsMatch(t, []string{"Ext.Legacy", "Ext.Gone"}, removed)
	require.Len(t, report.Diff.ModifiedClasses, 1)
	assert.Equal(t, "Ext.Panel", report.Diff.ModifiedClasses[0].Name)
}

// TestDiffWorkersAgree verifies parallel runs produce the same changes as sequential runs.
func TestDiffWorkersAgree(t *testing.T) {
	home := t.TempDir()
	decode := func(workers string) schema.DiffResult {
		res := runDocdiff(t, home, "diff", oldFixture, newFixture,
			"--output", "json", "--output-file", "-", "--cache-backend", "none", "--workers", workers)
		require.Equal(t, 0, res.ExitCode)
		var report schema.ChangeReport
		require.NoError(t, json.Unmarshal([]byte(res.Stdout), &report))
		return report.Diff
	}
	assert.Equal(t, decode("1"), decode("8"))
}

// TestDiffMarkdownFile verifies the conventional markdown file name and content.
func TestDiffMarkdownFile(t *testing.T) {
	home := t.TempDir()
	out := filepath.Join(t.TempDir(), "changes.md")
	res := runDocdiff(t, home, "diff", oldFixture, newFixture,
		"--output-file", out, "--old-version", "6.0", "--new-version", "7.0", "--cache-backend", "none")
	require.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stderr, "Report written to "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "# Changes from 6.0 to 7.0\n"))
	assert.Contains(t, content, "\n## Added\n\n- Ext.Window\n")
	assert.Contains(t, content, "\n### Ext.Panel\n")
	assert.Contains(t, content, "\n## Summary\n")
}

// TestDiffExcludeBuckets verifies private classes disappear from the visible report.
func TestDiffExcludeBuckets(t *testing.T) {
	home := t.TempDir()
	res := runDocdiff(t, home, "diff", oldFixture, newFixture,
		"--output", "csv", "--output-file", "-", "--cache-backend", "none", "--exclude-buckets", "private")
	require.Equal(t, 0, res.ExitCode)

	records, err := csv.NewReader(strings.NewReader(res.Stdout)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, "class", records[0][0])
	for _, record := range records[1:] {
		assert.NotEqual(t, "Ext.Window", record[0])
	}
}

// TestCheckExitCodes verifies the CI gate fails on visible changes and passes on identical input.
func TestCheckExitCodes(t *testing.T) {
	home := t.TempDir()

	res := runDocdiff(t, home, "check", oldFixture, newFixture, "--cache-backend", "none")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stdout, "Change Check Results:")
	assert.Contains(t, res.Stdout, "class change(s) found")

	res = runDocdiff(t, home, "check", oldFixture, oldFixture, "--cache-backend", "none")
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "✅ No changes found")
}

// TestInvalidInput verifies malformed documents and bad flags fail the command.
func TestInvalidInput(t *testing.T) {
	home := t.TempDir()

	res := runDocdiff(t, home, "diff", oldFixture, "core/testdata/invalid.json", "--cache-backend", "none")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "invalid.json")

	res = runDocdiff(t, home, "diff", oldFixture, newFixture, "--output", "xml")
	assert.NotEqual(t, 0, res.ExitCode)
	assert.Contains(t, res.Stderr, "invalid output format")
}

// TestCacheAndHistoryLifecycle runs diffs against SQLite stores in an isolated HOME.
func TestCacheAndHistoryLifecycle(t *testing.T) {
	home := t.TempDir()
	args := []string{"diff", oldFixture, newFixture, "--output", "json", "--output-file", "-",
		"--cache-backend", "sqlite", "--history-backend", "sqlite"}

	first := runDocdiff(t, home, args...)
	require.Equal(t, 0, first.ExitCode)
	second := runDocdiff(t, home, args...)
	require.Equal(t, 0, second.ExitCode)

	var a, b schema.ChangeReport
	require.NoError(t, json.Unmarshal([]byte(first.Stdout), &a))
	require.NoError(t, json.Unmarshal([]byte(second.Stdout), &b))
	assert.Equal(t, a.Diff, b.Diff, "cached report should match the computed one")
	assert.NotEqual(t, a.RunID, b.RunID)

	res := runDocdiff(t, home, "cache", "status")
	require.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "Total Entries: 1")

	res = runDocdiff(t, home, "history", "status", "--history-backend", "sqlite")
	require.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "Total Runs: 2")

	res = runDocdiff(t, home, "cache", "clear")
	require.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "Cache cleared successfully.")

	res = runDocdiff(t, home, "history", "clear", "--history-backend", "sqlite")
	require.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "Run history cleared successfully.")
}
