package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/branflake2267/docs-sub001/schema"
)

// ErrChangesFound is returned by ExecuteCheck when visible changes exist.
var ErrChangesFound = errors.New("changes found")

// ExecuteCheck runs the check command for CI/CD gating.
// It diffs both corpora, prints a concise result and returns ErrChangesFound
// when any change survives bucket exclusion.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()

	report, err := GetDiffReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	visible := VisibleReport(report, cfg.ExcludeBuckets)

	printCheckResult(os.Stdout, visible, cfg, time.Since(start))
	if !visible.Diff.Empty() {
		return ErrChangesFound
	}
	return nil
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(w io.Writer, report schema.ChangeReport, cfg *contract.Config, duration time.Duration) {
	printCheckHeader(w, report, cfg)
	_, _ = fmt.Fprintln(w, describeRun(report, duration))
	_, _ = fmt.Fprintln(w)

	if report.Diff.Empty() {
		_, _ = fmt.Fprintf(w, "✅ No changes found\n")
		return
	}
	printCheckFailure(w, report, cfg)
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(w io.Writer, report schema.ChangeReport, cfg *contract.Config) {
	_, _ = fmt.Fprintln(w, "Change Check Results:")

	excluded := "none"
	if len(cfg.ExcludeBuckets) > 0 {
		excluded = schema.FormatBuckets(cfg.ExcludeBuckets)
	}

	// Define labels and values for dynamic padding
	labels := []string{"Old:", "New:", "Buckets:", "Excluded:"}
	values := []any{
		fmt.Sprintf("%s (%s)", report.OldVersion, cfg.OldPath),
		fmt.Sprintf("%s (%s)", report.NewVersion, cfg.NewPath),
		schema.FormatBuckets(cfg.Buckets),
		excluded,
	}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}

	// Print each label-value pair with consistent padding
	for i, label := range labels {
		_, _ = fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	_, _ = fmt.Fprintln(w)
}

// printCheckFailure prints the visible changes per category.
func printCheckFailure(w io.Writer, report schema.ChangeReport, cfg *contract.Config) {
	d := report.Diff
	total := len(d.AddedClasses) + len(d.RemovedClasses) + len(d.ModifiedClasses)
	_, _ = fmt.Fprintf(w, "❌ %d class change(s) found\n\n", total)

	summary := report.Summary
	for _, category := range summary.Categories {
		c := summary.Visible(category, cfg.ExcludeBuckets)
		if c.Changed() == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "  %-16s +%d ~%d -%d\n", category+":", c.Added, c.Modified, c.Removed)
	}

	if len(d.RemovedClasses) > 0 {
		names := make([]string, len(d.RemovedClasses))
		for i, n := range d.RemovedClasses {
			names[i] = n.Name
		}
		_, _ = fmt.Fprintf(w, "\nRemoved classes: %s\n", strings.Join(names, ", "))
	}
}
