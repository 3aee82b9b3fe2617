package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/leapstack-labs/leapscope/internal/chart"
)

// countPrinter groups digits in row counts, so wide results read as
// "(12,480 rows)" instead of "(12480 rows)".
var countPrinter = message.NewPrinter(language.English)

func renderResults(w io.Writer, result *chart.ExplainData, format string) error {
	switch format {
	case "json":
		return renderJSON(w, result)
	case "csv":
		return renderCSV(w, result)
	case "md", "markdown":
		return renderMarkdown(w, result)
	default:
		return renderTable(w, result)
	}
}

func renderTable(w io.Writer, result *chart.ExplainData) error {
	if len(result.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	// Header
	headerRow := make(table.Row, len(result.Columns))
	for i, col := range result.Columns {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	// Rows
	for _, r := range result.Rows {
		row := make(table.Row, len(result.Columns))
		for i := range result.Columns {
			row[i] = formatValue(cellAt(r, i))
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = countPrinter.Fprintf(w, "(%d rows)\n", len(result.Rows))
	return nil
}

func renderJSON(w io.Writer, result *chart.ExplainData) error {
	results := make([]map[string]any, 0, len(result.Rows))
	for _, r := range result.Rows {
		row := make(map[string]any, len(result.Columns))
		for i, col := range result.Columns {
			row[col] = cellAt(r, i)
		}
		results = append(results, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func renderCSV(w io.Writer, result *chart.ExplainData) error {
	// Header
	_, _ = fmt.Fprintln(w, strings.Join(result.Columns, ","))

	// Rows
	for _, r := range result.Rows {
		values := make([]string, len(result.Columns))
		for i := range result.Columns {
			values[i] = escapeCSV(formatValue(cellAt(r, i)))
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, result *chart.ExplainData) error {
	if len(result.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	// Header
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(result.Columns, " | "))
	// Separator
	seps := make([]string, len(result.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	// Rows
	for _, r := range result.Rows {
		values := make([]string, len(result.Columns))
		for i := range result.Columns {
			values[i] = formatValue(cellAt(r, i))
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

// cellAt tolerates rows shorter than the column list.
func cellAt(row []any, i int) any {
	if i < len(row) {
		return row[i]
	}
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// Helper functions for subcommands

func listTables(ctx context.Context, w io.Writer, runner queryRunner, format string, viewsOnly bool) error {
	query := `
		SELECT table_schema AS schema, table_name AS name, table_type AS type
		FROM information_schema.tables
	`
	if viewsOnly {
		query += ` WHERE table_type = 'VIEW'`
	}
	query += ` ORDER BY table_schema, table_name`

	result, err := runner.Execute(ctx, query)
	if err != nil {
		return err
	}
	return renderResults(w, result, format)
}

func showSchema(ctx context.Context, w io.Writer, runner queryRunner, tableName, format string) error {
	result, err := runner.Execute(ctx, fmt.Sprintf("DESCRIBE %s", tableName))
	if err != nil {
		return fmt.Errorf("failed to describe %s: %w", tableName, err)
	}
	if len(result.Rows) == 0 {
		return fmt.Errorf("table or view '%s' not found", tableName)
	}
	return renderResults(w, result, format)
}
