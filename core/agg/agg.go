// Package agg has aggregation logic for diff summary counters.
package agg

import (
	"slices"

	"github.com/branflake2267/docs-sub001/schema"
)

// SummaryAggregator accumulates category and bucket counters across a run.
// It is not safe for concurrent use; parallel runs give each worker its own
// aggregator and merge them in order.
type SummaryAggregator struct {
	categories []string
	buckets    []schema.Bucket
	counts     map[string]map[schema.Bucket]*schema.Counts
}

// New creates an aggregator for the given member categories and configured buckets.
// The classes pseudo-category and the all bucket are always present.
func New(categories []string, buckets []schema.Bucket) *SummaryAggregator {
	a := &SummaryAggregator{
		categories: append([]string{schema.ClassesCategory}, categories...),
		buckets:    []schema.Bucket{schema.AllBucket},
		counts:     make(map[string]map[schema.Bucket]*schema.Counts),
	}
	for _, b := range buckets {
		if b != schema.AllBucket && !slices.Contains(a.buckets, b) {
			a.buckets = append(a.buckets, b)
		}
	}
	for _, category := range a.categories {
		a.counts[category] = make(map[schema.Bucket]*schema.Counts, len(a.buckets))
		for _, b := range a.buckets {
			a.counts[category][b] = &schema.Counts{}
		}
	}
	return a
}

// Total counts one accepted item of the new corpus.
func (a *SummaryAggregator) Total(category string, tags []schema.Bucket) {
	a.bump(category, tags, func(c *schema.Counts) { c.Total++ })
}

// Added counts one added item.
func (a *SummaryAggregator) Added(category string, tags []schema.Bucket) {
	a.bump(category, tags, func(c *schema.Counts) { c.Added++ })
}

// Modified counts one modified item.
func (a *SummaryAggregator) Modified(category string, tags []schema.Bucket) {
	a.bump(category, tags, func(c *schema.Counts) { c.Modified++ })
}

// Removed counts one removed item.
func (a *SummaryAggregator) Removed(category string, tags []schema.Bucket) {
	a.bump(category, tags, func(c *schema.Counts) { c.Removed++ })
}

// bump increments the all bucket unconditionally and every tagged bucket that is tracked.
// Categories outside the configured list are ignored.
func (a *SummaryAggregator) bump(category string, tags []schema.Bucket, inc func(*schema.Counts)) {
	byBucket, ok := a.counts[category]
	if !ok {
		return
	}
	inc(byBucket[schema.AllBucket])
	for _, b := range tags {
		if b == schema.AllBucket {
			continue
		}
		if c, ok := byBucket[b]; ok {
			inc(c)
		}
	}
}

// Merge adds the counters of another aggregator built with the same configuration.
func (a *SummaryAggregator) Merge(other *SummaryAggregator) {
	for category, byBucket := range other.counts {
		mine, ok := a.counts[category]
		if !ok {
			continue
		}
		for b, c := range byBucket {
			if m, ok := mine[b]; ok {
				*m = m.Add(*c)
			}
		}
	}
}

// Summary returns an immutable snapshot of the counters.
func (a *SummaryAggregator) Summary() schema.SummaryCounts {
	out := schema.SummaryCounts{
		Categories: slices.Clone(a.categories),
		Buckets:    slices.Clone(a.buckets),
		Counts:     make(map[string]map[schema.Bucket]schema.Counts, len(a.counts)),
	}
	for category, byBucket := range a.counts {
		out.Counts[category] = make(map[schema.Bucket]schema.Counts, len(byBucket))
		for b, c := range byBucket {
			out.Counts[category][b] = *c
		}
	}
	return out
}

// Spawn returns an empty aggregator with the same configuration.
func (a *SummaryAggregator) Spawn() *SummaryAggregator {
	return New(a.categories[1:], a.buckets[1:])
}
