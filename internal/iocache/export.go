package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/branflake2267/docs-sub001/internal/parquet"
)

// ExecuteHistoryExport writes the run history to Parquet files prefixed by outputFile.
func ExecuteHistoryExport(w io.Writer, store contract.HistoryStore, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no history data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total class change records: %d\n", status.TableSizes[classChangesTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	changes, err := store.GetAllClassChanges()
	if err != nil {
		return fmt.Errorf("failed to retrieve class changes: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetChanges := parquet.ConvertClassChangeRecords(changes)

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	changesFile := outputFile + ".class_changes.parquet"
	if err := parquet.WriteClassChangesParquet(parquetChanges, changesFile); err != nil {
		return fmt.Errorf("failed to write class changes: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d class change records to: %s\n", len(parquetChanges), changesFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be used with:")
	_, _ = fmt.Fprintln(w, "  - Apache Spark")
	_, _ = fmt.Fprintln(w, "  - Pandas (via pyarrow)")
	_, _ = fmt.Fprintln(w, "  - DuckDB")

	return nil
}
