package mcp_test

import (
	"context"
	"encoding/json"
	"slices"
	"testing"

	"github.com/branflake2267/docs-sub001/internal/contract"
	mcp_internal "github.com/branflake2267/docs-sub001/internal/mcp"
	"github.com/branflake2267/docs-sub001/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	oldFixture = "../../core/testdata/old.json"
	newFixture = "../../core/testdata/new.json"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		Categories:  slices.Clone(contract.DefaultCategories),
		MemberProps: slices.Clone(contract.DefaultMemberProps),
		ClassProps:  slices.Clone(contract.DefaultClassProps),
		Buckets:     slices.Clone(contract.DefaultBuckets),
		Workers:     1,
		Output:      schema.JSONOut,
	}
}

func callTool(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	// A nil manager disables caching and run history
	s := mcp_internal.NewMCPServer(baseConfig(), nil)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	t.Run("diff_corpora missing old_path", func(t *testing.T) {
		res := callTool(t, "diff_corpora", map[string]any{"new_path": newFixture})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "both an old and a new document path are required")
	})

	t.Run("diff_summary unknown bucket", func(t *testing.T) {
		res := callTool(t, "diff_summary", map[string]any{
			"old_path":        oldFixture,
			"new_path":        newFixture,
			"exclude_buckets": "static",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "not computed")
	})

	t.Run("diff_corpora missing file", func(t *testing.T) {
		res := callTool(t, "diff_corpora", map[string]any{
			"old_path": oldFixture,
			"new_path": "absent.json",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "diff failed")
	})
}

func TestMCPServerHandlers_DiffCorpora(t *testing.T) {
	res := callTool(t, "diff_corpora", map[string]any{
		"old_path":    oldFixture,
		"new_path":    newFixture,
		"new_version": "7.0-rc1",
	})
	require.False(t, res.IsError, resultText(t, res))

	var report schema.ChangeReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
	assert.Equal(t, "old", report.OldVersion)
	assert.Equal(t, "7.0-rc1", report.NewVersion)
	assert.Len(t, report.Diff.AddedClasses, 1)
	assert.Len(t, report.Diff.RemovedClasses, 2)
	require.Len(t, report.Diff.ModifiedClasses, 1)
	assert.Equal(t, "Ext.Panel", report.Diff.ModifiedClasses[0].Name)

	t.Run("excluded buckets hide classes", func(t *testing.T) {
		res := callTool(t, "diff_corpora", map[string]any{
			"old_path":        oldFixture,
			"new_path":        newFixture,
			"exclude_buckets": "private",
		})
		require.False(t, res.IsError)

		var visible schema.ChangeReport
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &visible))
		assert.Empty(t, visible.Diff.AddedClasses)
	})
}

func TestMCPServerHandlers_DiffSummary(t *testing.T) {
	res := callTool(t, "diff_summary", map[string]any{
		"old_path": oldFixture,
		"new_path": newFixture,
	})
	require.False(t, res.IsError, resultText(t, res))

	var summary mcp_internal.SummaryResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &summary))
	require.NotEmpty(t, summary.Categories)

	classes := summary.Categories[0]
	assert.Equal(t, schema.ClassesCategory, classes.Category)
	assert.Equal(t, 3, classes.Total)
	assert.Equal(t, 1, classes.Added)
	assert.Equal(t, 1, classes.Modified)
	assert.Equal(t, 2, classes.Removed)

	res = callTool(t, "diff_summary", map[string]any{
		"old_path":        oldFixture,
		"new_path":        newFixture,
		"exclude_buckets": "private",
	})
	require.False(t, res.IsError)
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &summary))
	assert.Equal(t, []schema.Bucket{schema.PrivateBucket}, summary.Excluded)
	assert.Equal(t, 0, summary.Categories[0].Added)
}
