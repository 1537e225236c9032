package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryCountsVisible(t *testing.T) {
	s := SummaryCounts{
		Categories: []string{ClassesCategory, "methods"},
		Buckets:    []Bucket{AllBucket, PrivateBucket, DeprecatedBucket},
		Counts: map[string]map[Bucket]Counts{
			"methods": {
				AllBucket:        {Total: 10, Added: 3, Modified: 2, Removed: 1},
				PrivateBucket:    {Total: 4, Added: 1, Modified: 1},
				DeprecatedBucket: {Total: 2, Removed: 1},
			},
		},
	}

	assert.Equal(t, Counts{Total: 10, Added: 3, Modified: 2, Removed: 1}, s.Visible("methods", nil))
	assert.Equal(t, Counts{Total: 6, Added: 2, Modified: 1, Removed: 1}, s.Visible("methods", []Bucket{PrivateBucket}))
	assert.Equal(t, Counts{Total: 4, Added: 2, Modified: 1}, s.Visible("methods", []Bucket{PrivateBucket, DeprecatedBucket}))
	assert.Equal(t, s.Visible("methods", nil), s.Visible("methods", []Bucket{AllBucket}), "all is never subtracted")
	assert.Equal(t, Counts{}, s.Visible("events", nil))
}

func TestSummaryCountsVisible_OverlappingBuckets(t *testing.T) {
	// One removed method that is both private and deprecated
	s := SummaryCounts{
		Counts: map[string]map[Bucket]Counts{
			"methods": {
				AllBucket:        {Total: 1, Removed: 1},
				PrivateBucket:    {Total: 1, Removed: 1},
				DeprecatedBucket: {Total: 1, Removed: 1},
			},
		},
	}

	assert.Equal(t, Counts{}, s.Visible("methods", []Bucket{PrivateBucket}))
	assert.Equal(t, Counts{Total: -1, Removed: -1}, s.Visible("methods", []Bucket{PrivateBucket, DeprecatedBucket}),
		"each excluded bucket is subtracted on its own")
}

func TestCountsArithmetic(t *testing.T) {
	a := Counts{Total: 5, Added: 1, Modified: 2, Removed: 3}
	b := Counts{Total: 1, Added: 1}

	assert.Equal(t, Counts{Total: 6, Added: 2, Modified: 2, Removed: 3}, a.Add(b))
	assert.Equal(t, Counts{Total: 4, Modified: 2, Removed: 3}, a.Sub(b))
	assert.Equal(t, 6, a.Changed())
}
