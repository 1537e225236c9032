package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/branflake2267/docs-sub001/schema"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoChangesMessage is the whole markdown report of an empty diff.
const NoChangesMessage = "No changes found."

// titleCase turns a category name into a heading, e.g. "static-methods" -> "Static-Methods".
// Casers are stateful, so each call gets its own.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// RenderMarkdown renders the canonical markdown report: Added, Removed, Modified
// and Summary, in that order. Sections with no entries are omitted.
func RenderMarkdown(report schema.ChangeReport, excluded []schema.Bucket) string {
	if report.Diff.Empty() {
		return NoChangesMessage
	}
	var b strings.Builder
	writeMarkdownChanges(&b, report)
	writeMarkdownSummary(&b, report.Summary, excluded)
	return b.String()
}

// writeMarkdownChanges writes the title and the three change sections.
func writeMarkdownChanges(w io.Writer, report schema.ChangeReport) {
	d := report.Diff
	_, _ = fmt.Fprintf(w, "# Changes from %s to %s\n", report.OldVersion, report.NewVersion)

	if len(d.AddedClasses) > 0 {
		_, _ = fmt.Fprint(w, "\n## Added\n\n")
		for _, n := range d.AddedClasses {
			_, _ = fmt.Fprintf(w, "- %s\n", n.Name)
		}
	}

	if len(d.RemovedClasses) > 0 {
		_, _ = fmt.Fprint(w, "\n## Removed\n\n")
		for _, n := range d.RemovedClasses {
			_, _ = fmt.Fprintf(w, "- %s\n", n.Name)
		}
	}

	if len(d.ModifiedClasses) > 0 {
		_, _ = fmt.Fprint(w, "\n## Modified\n")
		for _, cls := range d.ModifiedClasses {
			writeMarkdownClass(w, cls)
		}
	}
}

func writeMarkdownClass(w io.Writer, cls schema.ClassChange) {
	_, _ = fmt.Fprintf(w, "\n### %s\n", cls.Name)
	if len(cls.Scalars) > 0 {
		_, _ = fmt.Fprintln(w)
		for _, sc := range cls.Scalars {
			_, _ = fmt.Fprintf(w, "- %s\n", formatScalar(sc))
		}
	}
	for _, cat := range cls.Categories {
		_, _ = fmt.Fprintf(w, "\n#### %s\n", titleCase(cat.Category))
		writeMarkdownGroup(w, "Added", cat.Added)
		writeMarkdownGroup(w, "Modified", cat.Modified)
		writeMarkdownGroup(w, "Removed", cat.Removed)
	}
}

func writeMarkdownGroup(w io.Writer, label string, nodes []schema.ChangeNode) {
	if len(nodes) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "\n**%s**\n\n", label)
	for _, n := range nodes {
		writeMarkdownNode(w, n, 0, false)
	}
}

// writeMarkdownNode writes one bullet for a node and indented bullets for its children.
// Nested added and removed items carry their kind since they share one list.
func writeMarkdownNode(w io.Writer, n schema.ChangeNode, depth int, nested bool) {
	indent := strings.Repeat("  ", depth)
	line := n.Name
	switch {
	case n.Kind != schema.ModifiedKind && nested:
		line = fmt.Sprintf("%s (%s)", n.Name, n.Kind)
	case len(n.Scalars) > 0:
		parts := make([]string, len(n.Scalars))
		for i, sc := range n.Scalars {
			parts[i] = formatScalar(sc)
		}
		line = fmt.Sprintf("%s: %s", n.Name, strings.Join(parts, "; "))
	}
	_, _ = fmt.Fprintf(w, "%s- %s\n", indent, line)

	if n.Children.Empty() {
		return
	}
	for _, group := range [][]schema.ChangeNode{n.Children.Added, n.Children.Modified, n.Children.Removed} {
		for _, child := range group {
			writeMarkdownNode(w, child, depth+1, true)
		}
	}
}

// formatScalar renders a scalar change as "**property** is new (was old)".
func formatScalar(sc schema.ScalarChange) string {
	return fmt.Sprintf("**%s** is %s (was %s)", sc.Property,
		schema.FormatValue(sc.New, sc.NewAbsent), schema.FormatValue(sc.Old, sc.OldAbsent))
}

// writeMarkdownSummary writes the visible counts per category as a table.
func writeMarkdownSummary(w io.Writer, summary schema.SummaryCounts, excluded []schema.Bucket) {
	if len(summary.Categories) == 0 {
		return
	}
	_, _ = fmt.Fprint(w, "\n## Summary\n\n")
	_, _ = fmt.Fprint(w, "| Category | Total | Added | Modified | Removed |\n")
	_, _ = fmt.Fprint(w, "| --- | ---: | ---: | ---: | ---: |\n")
	p := message.NewPrinter(language.English)
	for _, category := range summary.Categories {
		c := summary.Visible(category, excluded)
		_, _ = p.Fprintf(w, "| %s | %d | %d | %d | %d |\n",
			titleCase(category), c.Total, c.Added, c.Modified, c.Removed)
	}
	if len(excluded) > 0 {
		_, _ = fmt.Fprintf(w, "\nExcluded buckets: %s\n", schema.FormatBuckets(excluded))
	}
}
