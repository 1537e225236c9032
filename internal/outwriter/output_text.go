package outwriter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/branflake2267/docs-sub001/schema"
	"github.com/charmbracelet/glamour"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeTextReport renders the change sections for the terminal, followed by a summary table.
func writeTextReport(w io.Writer, report schema.ChangeReport, cfg *contract.Config, duration time.Duration) error {
	if report.Diff.Empty() {
		if _, err := fmt.Fprintf(w, "✅ %s\n", NoChangesMessage); err != nil {
			return err
		}
	} else {
		var md strings.Builder
		writeMarkdownChanges(&md, report)
		if _, err := io.WriteString(w, renderTerminalMarkdown(md.String(), GetTerminalWidth(cfg), cfg.UseColors)); err != nil {
			return err
		}
	}

	if err := writeSummaryTable(w, report.Summary, cfg); err != nil {
		return err
	}
	if len(report.Warnings) > 0 {
		if _, err := fmt.Fprintf(w, "⚠️  %d warning(s) raised while diffing\n", len(report.Warnings)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Diff completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend)
	return err
}

// renderTerminalMarkdown renders markdown with glamour.
// Returns the original content if the renderer cannot be built or fails.
func renderTerminalMarkdown(content string, width int, useColors bool) string {
	style := glamour.WithStandardStyle("notty")
	if useColors {
		style = glamour.WithAutoStyle()
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// writeSummaryTable writes the visible counts per category as a table.
func writeSummaryTable(w io.Writer, summary schema.SummaryCounts, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Category", "Total", "Added", "Modified", "Removed"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var green, yellow, red func(...any) string
	if cfg.UseColors {
		green = contract.AddedColor.SprintFunc()
		yellow = contract.ModifiedColor.SprintFunc()
		red = contract.RemovedColor.SprintFunc()
	} else {
		green = fmt.Sprint
		yellow = fmt.Sprint
		red = fmt.Sprint
	}

	var data [][]string
	for _, category := range summary.Categories {
		c := summary.Visible(category, cfg.ExcludeBuckets)
		data = append(data, []string{
			category,
			fmt.Sprintf("%d", c.Total),
			green(fmt.Sprintf("+%d", c.Added)),
			yellow(fmt.Sprintf("~%d", c.Modified)),
			red(fmt.Sprintf("-%d", c.Removed)),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
