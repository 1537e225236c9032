package core

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/branflake2267/docs-sub001/schema"
)

// classPair is a class present in both corpora.
type classPair struct {
	old schema.ClassRecord
	new schema.ClassRecord
}

// Diff compares two corpora and returns the change model, the summary counts
// and the warnings of the run. Run metadata is left for the caller to fill.
//
// Added and modified classes follow the order of the new corpus, removed
// classes the order of the old one. The result does not depend on
// opts.Workers.
func Diff(ctx context.Context, old, new []schema.ClassRecord, opts Options) (schema.ChangeReport, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts.Workers = max(opts.Workers, 1)

	d := newDiffer(opts)
	oldIx := d.indexClasses(old)
	newIx := d.indexClasses(new)

	var (
		result schema.DiffResult
		pairs  []classPair
	)
	for _, cls := range newIx.Classes() {
		if cls.Ignore {
			d.skip(scope{}, cls.Name)
			continue
		}
		buckets := d.buckets(cls.Fields)
		d.summary.Total(schema.ClassesCategory, buckets)
		if oldCls, ok := oldIx.Lookup(cls.Name); ok {
			pairs = append(pairs, classPair{old: oldCls, new: cls})
			continue
		}
		result.AddedClasses = append(result.AddedClasses, schema.ChangeNode{
			Kind: schema.AddedKind, Name: cls.Name, Buckets: buckets,
		})
		d.summary.Added(schema.ClassesCategory, buckets)
		d.countMembers(cls)
	}

	for _, cls := range oldIx.Classes() {
		if _, ok := newIx.Lookup(cls.Name); ok {
			continue
		}
		if !cls.IsClass() || cls.Ignore {
			continue
		}
		buckets := d.buckets(cls.Fields)
		result.RemovedClasses = append(result.RemovedClasses, schema.ChangeNode{
			Kind: schema.RemovedKind, Name: cls.Name, Buckets: buckets,
		})
		d.summary.Removed(schema.ClassesCategory, buckets)
	}

	modified, err := d.diffClasses(ctx, pairs)
	if err != nil {
		return schema.ChangeReport{}, err
	}
	result.ModifiedClasses = modified

	return schema.ChangeReport{
		Diff:     result,
		Summary:  d.summary.Summary(),
		Warnings: d.warnings,
	}, nil
}

// diffMatched diffs one class pair and counts it when modified.
func (d *differ) diffMatched(p classPair) (schema.ClassChange, bool) {
	change, ok := d.diffClass(p.old, p.new)
	if ok {
		d.summary.Modified(schema.ClassesCategory, change.Buckets)
	}
	return change, ok
}

// diffClasses diffs matched classes, in parallel when more than one worker is
// configured. Each worker owns a spawned differ; counts are merged afterwards
// and warnings are replayed in class order so the output matches a
// sequential run.
func (d *differ) diffClasses(ctx context.Context, pairs []classPair) ([]schema.ClassChange, error) {
	workers := min(d.opts.Workers, len(pairs))
	if workers <= 1 {
		var out []schema.ClassChange
		for _, p := range pairs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if change, ok := d.diffMatched(p); ok {
				out = append(out, change)
			}
		}
		return out, nil
	}

	type classResult struct {
		change   schema.ClassChange
		changed  bool
		warnings []schema.Warning
	}
	results := make([]classResult, len(pairs))
	parts := make([]*differ, workers)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := range workers {
		part := d.spawn()
		parts[w] = part
		wg.Go(func() {
			for i := range jobs {
				change, changed := part.diffMatched(pairs[i])
				results[i] = classResult{
					change:   change,
					changed:  changed,
					warnings: slices.Clone(part.warnings),
				}
				part.warnings = part.warnings[:0]
			}
		})
	}

feed:
	for i := range pairs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []schema.ClassChange
	for _, part := range parts {
		d.absorb(part)
	}
	for _, r := range results {
		d.warnings = append(d.warnings, r.warnings...)
		if r.changed {
			out = append(out, r.change)
		}
	}
	return out, nil
}
