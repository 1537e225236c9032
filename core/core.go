// Package core has the diff engine and the executors that drive it.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/branflake2267/docs-sub001/internal/outwriter"
	"github.com/branflake2267/docs-sub001/schema"
	"github.com/google/uuid"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteDiff runs the corpus diff and writes the report in the configured format.
// It serves as the main entry point for the 'diff' command.
func ExecuteDiff(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := GetDiffReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	visible := VisibleReport(report, cfg.ExcludeBuckets)
	return outwriter.NewOutWriter().WriteReport(visible, cfg, time.Since(start))
}

// GetDiffReport reads both corpora, diffs them and tracks the run.
// The returned report is complete: bucket exclusion is left to the caller.
func GetDiffReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.ChangeReport, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogDiffHeader(os.Stderr, cfg)
	}

	// --- 0. Read both documents before any diff work ---
	oldData, err := readDocument(cfg.OldPath)
	if err != nil {
		return schema.ChangeReport{}, err
	}
	newData, err := readDocument(cfg.NewPath)
	if err != nil {
		return schema.ChangeReport{}, err
	}

	opts := OptionsFromConfig(cfg, contract.NewLogger(os.Stderr, cfg.Verbose))
	runUUID := uuid.NewString()
	startTime := time.Now()

	// --- 1. Begin Run Tracking (if configured) ---
	var (
		runID   int64
		history contract.HistoryStore
		store   contract.CacheStore
	)
	if mgr != nil {
		store = mgr.GetReportStore()
		if !shouldSkipHistory(ctx) {
			history = mgr.GetHistoryStore()
		}
	}
	if history != nil {
		runID, err = history.BeginRun(runUUID, startTime, cfg.OldVersion, cfg.NewVersion, configParams(cfg))
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			runID = 0
		}
	}

	// --- 2. Diff (with caching) ---
	report, err := cachedDiff(ctx, cfg, opts, store, oldData, newData)
	if err != nil {
		return schema.ChangeReport{}, err
	}
	report.RunID = runUUID
	report.OldVersion = cfg.OldVersion
	report.NewVersion = cfg.NewVersion
	report.GeneratedAt = startTime.UTC()

	// --- 3. End Run Tracking ---
	if history != nil && runID > 0 {
		if err := history.RecordClassChanges(runID, schema.ClassChangeRecords(report.Diff)); err != nil {
			contract.LogWarn("Failed to record class changes", err)
		}
		if err := history.EndRun(runID, time.Now(), report.Diff, len(report.Warnings)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return report, nil
}

// DiffFiles diffs two corpus files without headers, caching or run history.
func DiffFiles(ctx context.Context, cfg *contract.Config) (schema.ChangeReport, error) {
	return GetDiffReport(QuietContext(ctx), cfg, nil)
}

// readDocument reads one corpus document, naming it in any error.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &schema.InputError{Path: path, Err: err}
	}
	return data, nil
}

// configParams returns the run parameters stored with a tracked run.
func configParams(cfg *contract.Config) map[string]any {
	return map[string]any{
		"old_path":        cfg.OldPath,
		"new_path":        cfg.NewPath,
		"categories":      cfg.Categories,
		"member_props":    cfg.MemberProps,
		"class_props":     cfg.ClassProps,
		"class_details":   cfg.ClassDetails,
		"all_props":       cfg.AllProps,
		"buckets":         cfg.Buckets,
		"exclude_buckets": cfg.ExcludeBuckets,
		"excludes":        cfg.Excludes,
		"workers":         cfg.Workers,
	}
}

// describeRun returns a one-line description of a finished run.
func describeRun(report schema.ChangeReport, duration time.Duration) string {
	d := report.Diff
	return fmt.Sprintf("%s → %s: %d added, %d removed, %d modified classes in %v",
		report.OldVersion, report.NewVersion,
		len(d.AddedClasses), len(d.RemovedClasses), len(d.ModifiedClasses), duration)
}
