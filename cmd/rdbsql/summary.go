package main

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"rdbsql/internal/convert"
	"rdbsql/internal/store"
)

// maxSkippedShown caps the skipped-line listing; --json has the full list.
const maxSkippedShown = 10

func renderSummary(summary convert.Summary) string {
	p := message.NewPrinter(language.English)
	title := cases.Title(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "Converted %s catalogs into %s (key %s) in %s\n",
		p.Sprintf("%d", len(summary.Sources)),
		summary.Output,
		summary.Key,
		summary.Duration.Round(time.Millisecond),
	)

	tableRows := make([][]string, 0, len(store.TableOrder))
	for _, table := range store.TableOrder {
		tableRows = append(tableRows, []string{title.String(table), p.Sprintf("%d", summary.Counts[table])})
	}
	b.WriteString(renderTable(
		[]string{"Table", "Rows"},
		tableRows,
		[]string{"Skipped lines", p.Sprintf("%d", len(summary.Skipped))},
		[]columnAlignment{alignLeft, alignRight},
	))
	b.WriteString("\n")

	sourceRows := make([][]string, 0, len(summary.Sources))
	for _, src := range summary.Sources {
		sourceRows = append(sourceRows, []string{
			src.Source,
			p.Sprintf("%d", src.Records),
			p.Sprintf("%d", src.NewGames),
			p.Sprintf("%d", src.Merged),
			p.Sprintf("%d", src.Skipped),
		})
	}
	b.WriteString(renderTable(
		[]string{"Source", "Records", "New", "Merged", "Skipped"},
		sourceRows,
		[]string{"Total", p.Sprintf("%d", summary.Records()), "", "", p.Sprintf("%d", len(summary.Skipped))},
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
	))
	b.WriteString("\n")

	if len(summary.Skipped) > 0 {
		b.WriteString("Skipped lines:\n")
		for i, skipped := range summary.Skipped {
			if i == maxSkippedShown {
				fmt.Fprintf(&b, "  ... and %s more\n", p.Sprintf("%d", len(summary.Skipped)-maxSkippedShown))
				break
			}
			fmt.Fprintf(&b, "  %s:%d: %s\n", skipped.Source, skipped.Line, skipped.Error)
		}
	}
	return b.String()
}
