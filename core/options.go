package core

import (
	"io"
	"log/slog"
	"slices"

	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/branflake2267/docs-sub001/schema"
	"github.com/gobwas/glob"
)

// Options controls a single diff run. The zero value is not usable; start
// from DefaultOptions or OptionsFromConfig.
type Options struct {
	Categories   []string        // member categories, in iteration order
	MemberProps  []string        // scalar scan order for members and nested items
	ClassProps   []string        // scalar scan order for classes
	ClassDetails bool            // compare class-level scalars
	AllProps     bool            // record every differing scalar instead of the first
	Buckets      []schema.Bucket // buckets computed besides all
	Excludes     []glob.Glob     // class names skipped on both sides
	Workers      int
	Logger       *slog.Logger
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Categories:  slices.Clone(contract.DefaultCategories),
		MemberProps: slices.Clone(contract.DefaultMemberProps),
		ClassProps:  slices.Clone(contract.DefaultClassProps),
		Buckets:     slices.Clone(contract.DefaultBuckets),
		Workers:     1,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// OptionsFromConfig builds run options from a validated config.
func OptionsFromConfig(cfg *contract.Config, logger *slog.Logger) Options {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Options{
		Categories:   cfg.Categories,
		MemberProps:  cfg.MemberProps,
		ClassProps:   cfg.ClassProps,
		ClassDetails: cfg.ClassDetails,
		AllProps:     cfg.AllProps,
		Buckets:      cfg.Buckets,
		Excludes:     cfg.ExcludeGlobs,
		Workers:      cfg.Workers,
		Logger:       logger,
	}
}

// excluded reports whether a class name matches any exclude pattern.
func (o Options) excluded(name string) bool {
	for _, g := range o.Excludes {
		if g.Match(name) {
			return true
		}
	}
	return false
}
