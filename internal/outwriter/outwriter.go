// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/branflake2267/docs-sub001/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport writes a change report to the configured destination in the configured format.
func (ow *OutWriter) WriteReport(report schema.ChangeReport, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteReportTo(w, report, cfg, duration)
	}, "Report written")
}

// WriteReportTo renders a change report, dispatching based on the output format configured.
func WriteReportTo(w io.Writer, report schema.ChangeReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, report); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeYAML(w, report); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVReport(w, report); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetReport(w, report); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	case schema.TextOut:
		return writeTextReport(w, report, cfg, duration)
	default:
		// Canonical markdown report
		_, err := io.WriteString(w, RenderMarkdown(report, cfg.ExcludeBuckets))
		return err
	}
	return nil
}

// LogDiffHeader prints a concise, 2-line header for a diff run.
func LogDiffHeader(w io.Writer, cfg *contract.Config) {
	// Line 1: The documents being compared
	_, _ = fmt.Fprintf(w, "🔎 Corpora: %s → %s\n", filepath.Base(cfg.OldPath), filepath.Base(cfg.NewPath))

	// Line 2: The version labels and run shape
	_, _ = fmt.Fprintf(w, "📊 Comparing: %s ↔ %s (categories: %d, workers: %d)\n",
		cfg.OldVersion, cfg.NewVersion, len(cfg.Categories), cfg.Workers)
}
