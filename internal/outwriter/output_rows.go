package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/branflake2267/docs-sub001/internal/parquet"
	"github.com/branflake2267/docs-sub001/schema"
)

// ChangeRowHeader is the CSV header of flattened change rows.
var ChangeRowHeader = []string{"class", "category", "kind", "path", "property", "old", "new", "buckets"}

// writeCSVReport writes one CSV row per change.
func writeCSVReport(w io.Writer, report schema.ChangeReport) error {
	rows := schema.FlattenReport(report.Diff)
	return writeCSVWithHeader(w, ChangeRowHeader, func(csvWriter *csv.Writer) error {
		for _, r := range rows {
			record := []string{r.Class, r.Category, string(r.Kind), r.Path, r.Property, r.Old, r.New, r.Buckets}
			if err := csvWriter.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeParquetReport writes one Parquet row per change.
func writeParquetReport(w io.Writer, report schema.ChangeReport) error {
	return parquet.WriteChanges(w, parquet.ConvertChangeRows(schema.FlattenReport(report.Diff)))
}
