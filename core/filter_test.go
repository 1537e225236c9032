package core

import (
	"context"
	"testing"

	"github.com/branflake2267/docs-sub001/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleReport_NoExclusion(t *testing.T) {
	old, new := loadFixtures(t)
	report, err := Diff(context.Background(), old, new, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, report, VisibleReport(report, nil))
}

func TestVisibleReport_ExcludePrivate(t *testing.T) {
	old, new := loadFixtures(t)
	report, err := Diff(context.Background(), old, new, DefaultOptions())
	require.NoError(t, err)

	visible := VisibleReport(report, []schema.Bucket{schema.PrivateBucket})
	assert.Empty(t, visible.Diff.AddedClasses, "Ext.Window is private")
	assert.Equal(t, names(report.Diff.RemovedClasses), names(visible.Diff.RemovedClasses))

	require.Len(t, visible.Diff.ModifiedClasses, 1)
	configs, ok := visible.Diff.ModifiedClasses[0].Category("configs")
	require.True(t, ok)
	assert.Equal(t, []string{"width"}, names(configs.Modified))

	// The source report is untouched.
	original, _ := report.Diff.ModifiedClasses[0].Category("configs")
	assert.Len(t, original.Modified, 2)
	assert.Equal(t, report.Summary, visible.Summary)
}

func TestVisibleReport_DropsEmptied(t *testing.T) {
	old := corpusFromJSON(t, `[{"name":"A","$type":"class","items":[{"$type":"methods","items":[
		{"name":"fn","items":[{"name":"secret","type":"String","access":"private"}]}]}]}]`)
	new := corpusFromJSON(t, `[{"name":"A","$type":"class","items":[{"$type":"methods","items":[
		{"name":"fn","items":[{"name":"secret","type":"Number","access":"private"}]}]}]}]`)

	report, err := Diff(context.Background(), old, new, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, report.Diff.ModifiedClasses, 1)

	visible := VisibleReport(report, []schema.Bucket{schema.PrivateBucket})
	assert.True(t, visible.Diff.Empty(), "fn only changed through a private child")
}
