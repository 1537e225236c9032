package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AbsentValue is how a missing property value is displayed.
const AbsentValue = "none"

// ChangeRow is one flattened change, used by tabular outputs.
type ChangeRow struct {
	Class    string     `json:"class"`
	Category string     `json:"category"`
	Kind     ChangeKind `json:"kind"`
	Path     string     `json:"path"`
	Property string     `json:"property"`
	Old      string     `json:"old"`
	New      string     `json:"new"`
	Buckets  string     `json:"buckets"`
}

// FormatValue renders a scalar property value for display.
func FormatValue(v any, absent bool) string {
	if absent {
		return AbsentValue
	}
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		// json.Marshal formats numbers the way JSON documents write them
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}

// FormatBuckets joins bucket tags with a comma.
func FormatBuckets(buckets []Bucket) string {
	parts := make([]string, len(buckets))
	for i, b := range buckets {
		parts[i] = string(b)
	}
	return strings.Join(parts, ",")
}

// FlattenReport flattens a diff into rows in report order.
// Modified nodes emit one row per scalar change, then the rows of their children.
func FlattenReport(d DiffResult) []ChangeRow {
	var rows []ChangeRow
	for _, n := range d.AddedClasses {
		rows = append(rows, ChangeRow{Class: n.Name, Category: ClassesCategory, Kind: AddedKind, Buckets: FormatBuckets(n.Buckets)})
	}
	for _, n := range d.RemovedClasses {
		rows = append(rows, ChangeRow{Class: n.Name, Category: ClassesCategory, Kind: RemovedKind, Buckets: FormatBuckets(n.Buckets)})
	}
	for _, cls := range d.ModifiedClasses {
		for _, sc := range cls.Scalars {
			rows = append(rows, scalarRow(cls.Name, ClassesCategory, "", sc, cls.Buckets))
		}
		for _, cat := range cls.Categories {
			rows = appendNodeRows(rows, cls.Name, cat.Category, "", cat.Added)
			rows = appendNodeRows(rows, cls.Name, cat.Category, "", cat.Modified)
			rows = appendNodeRows(rows, cls.Name, cat.Category, "", cat.Removed)
		}
	}
	return rows
}

func appendNodeRows(rows []ChangeRow, class, category, prefix string, nodes []ChangeNode) []ChangeRow {
	for _, n := range nodes {
		path := n.Name
		if prefix != "" {
			path = prefix + "/" + n.Name
		}
		if n.Kind != ModifiedKind {
			rows = append(rows, ChangeRow{Class: class, Category: category, Kind: n.Kind, Path: path, Buckets: FormatBuckets(n.Buckets)})
			continue
		}
		for _, sc := range n.Scalars {
			rows = append(rows, scalarRow(class, category, path, sc, n.Buckets))
		}
		if n.Children != nil {
			rows = appendNodeRows(rows, class, category, path, n.Children.Added)
			rows = appendNodeRows(rows, class, category, path, n.Children.Modified)
			rows = appendNodeRows(rows, class, category, path, n.Children.Removed)
		}
	}
	return rows
}

func scalarRow(class, category, path string, sc ScalarChange, buckets []Bucket) ChangeRow {
	return ChangeRow{
		Class:    class,
		Category: category,
		Kind:     ModifiedKind,
		Path:     path,
		Property: sc.Property,
		Old:      FormatValue(sc.Old, sc.OldAbsent),
		New:      FormatValue(sc.New, sc.NewAbsent),
		Buckets:  FormatBuckets(buckets),
	}
}

// ClassChangeRecords summarizes a diff into one record per changed class and category.
func ClassChangeRecords(d DiffResult) []ClassChangeRecord {
	var out []ClassChangeRecord
	for _, n := range d.AddedClasses {
		out = append(out, ClassChangeRecord{ClassName: n.Name, Category: ClassesCategory, Added: 1})
	}
	for _, n := range d.RemovedClasses {
		out = append(out, ClassChangeRecord{ClassName: n.Name, Category: ClassesCategory, Removed: 1})
	}
	for _, cls := range d.ModifiedClasses {
		if len(cls.Scalars) > 0 {
			out = append(out, ClassChangeRecord{ClassName: cls.Name, Category: ClassesCategory, Modified: 1})
		}
		for _, cat := range cls.Categories {
			out = append(out, ClassChangeRecord{
				ClassName: cls.Name,
				Category:  cat.Category,
				Added:     int32(len(cat.Added)),
				Modified:  int32(len(cat.Modified)),
				Removed:   int32(len(cat.Removed)),
			})
		}
	}
	return out
}
