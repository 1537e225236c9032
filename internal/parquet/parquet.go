// Package parquet provides data structures and functions for exporting docdiff
// history and change rows to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/branflake2267/docs-sub001/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single diff run with metadata.
// This struct maps to the docdiff_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the identifier carried by the change report
	RunUUID string `parquet:"run_uuid,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	OldVersion string `parquet:"old_version,snappy"`
	NewVersion string `parquet:"new_version,snappy"`

	AddedClasses    int32 `parquet:"added_classes,snappy"`
	RemovedClasses  int32 `parquet:"removed_classes,snappy"`
	ModifiedClasses int32 `parquet:"modified_classes,snappy"`
	WarningCount    int32 `parquet:"warning_count,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ClassChange represents the change counts of one class category in a run.
// This struct maps to the docdiff_class_changes database table.
type ClassChange struct {
	RunID     int64  `parquet:"run_id,snappy"`
	ClassName string `parquet:"class_name,snappy"`
	Category  string `parquet:"category,snappy"`
	Added     int32  `parquet:"added,snappy"`
	Modified  int32  `parquet:"modified,snappy"`
	Removed   int32  `parquet:"removed,snappy"`
}

// Change is one flattened change of a report.
type Change struct {
	Class    string `parquet:"class,snappy,dict"`
	Category string `parquet:"category,snappy,dict"`
	Kind     string `parquet:"kind,snappy,dict"`
	Path     string `parquet:"path,snappy"`
	Property string `parquet:"property,snappy,dict"`
	Old      string `parquet:"old,snappy"`
	New      string `parquet:"new,snappy"`
	Buckets  string `parquet:"buckets,snappy,dict"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteClassChangesParquet writes a slice of ClassChange structs to a Parquet file.
func WriteClassChangesParquet(data []ClassChange, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteChanges writes change rows as a Parquet stream to w.
func WriteChanges(w io.Writer, data []Change) error {
	return write(w, data)
}

func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// write infers the schema from the struct tags of T.
func write[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:           record.RunID,
			RunUUID:         record.RunUUID,
			StartTime:       record.StartTime,
			EndTime:         record.EndTime,
			RunDurationMs:   record.RunDurationMs,
			OldVersion:      record.OldVersion,
			NewVersion:      record.NewVersion,
			AddedClasses:    record.AddedClasses,
			RemovedClasses:  record.RemovedClasses,
			ModifiedClasses: record.ModifiedClasses,
			WarningCount:    record.WarningCount,
			ConfigParams:    record.ConfigParams,
		}
	}
	return result
}

// ConvertClassChangeRecords converts schema.ClassChangeRecord to ClassChange for Parquet export.
func ConvertClassChangeRecords(records []schema.ClassChangeRecord) []ClassChange {
	result := make([]ClassChange, len(records))
	for i, record := range records {
		result[i] = ClassChange(record)
	}
	return result
}

// ConvertChangeRows converts flattened report rows to Change for Parquet output.
func ConvertChangeRows(rows []schema.ChangeRow) []Change {
	result := make([]Change, len(rows))
	for i, row := range rows {
		result[i] = Change{
			Class:    row.Class,
			Category: row.Category,
			Kind:     string(row.Kind),
			Path:     row.Path,
			Property: row.Property,
			Old:      row.Old,
			New:      row.New,
			Buckets:  row.Buckets,
		}
	}
	return result
}
