package core

import (
	"log/slog"

	"github.com/branflake2267/docs-sub001/core/agg"
	"github.com/branflake2267/docs-sub001/schema"
)

// scope locates a list of nodes inside the corpus for warnings.
type scope struct {
	class    string
	category string
	path     string // slash-joined names of enclosing nested items
}

// child returns the scope of the nested items of the named node.
func (s scope) child(name string) scope {
	s.path = s.item(name)
	return s
}

// item returns the path of a named node in this scope.
func (s scope) item(name string) string {
	if s.path == "" || name == "" {
		return s.path + name
	}
	return s.path + "/" + name
}

// differ holds the mutable state of one run, or of one worker of a run.
// Nothing in it is shared: parallel workers each get their own via spawn.
type differ struct {
	opts     Options
	warnings []schema.Warning
	summary  *agg.SummaryAggregator
}

func newDiffer(opts Options) *differ {
	return &differ{
		opts:    opts,
		summary: agg.New(opts.Categories, opts.Buckets),
	}
}

// spawn returns a differ with the same options and empty state.
func (d *differ) spawn() *differ {
	return &differ{
		opts:    d.opts,
		summary: d.summary.Spawn(),
	}
}

// absorb merges the state of a spawned differ.
func (d *differ) absorb(other *differ) {
	d.warnings = append(d.warnings, other.warnings...)
	d.summary.Merge(other.summary)
}

// warn records a warning and logs it.
func (d *differ) warn(kind schema.WarningKind, sc scope, name, msg string) {
	w := schema.Warning{
		Kind:     kind,
		Class:    sc.class,
		Category: sc.category,
		Path:     sc.item(name),
		Message:  msg,
	}
	d.warnings = append(d.warnings, w)
	logWarning(d.opts.Logger, w)
}

// logWarning writes one engine warning as a structured record.
func logWarning(logger *slog.Logger, w schema.Warning) {
	logger.Warn(w.Message, "kind", w.Kind, "class", w.Class, "category", w.Category, "path", w.Path)
}

// skip logs an ignored item. Ignored items are expected and are not reported as warnings.
func (d *differ) skip(sc scope, name string) {
	d.opts.Logger.Debug("ignored item skipped", "kind", schema.IgnoredItemWarning, "class", sc.class, "category", sc.category, "path", sc.item(name))
}

// buckets classifies raw fields into the configured buckets.
func (d *differ) buckets(fields map[string]any) []schema.Bucket {
	return schema.ClassifyBuckets(fields, d.opts.Buckets)
}
