package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapscope/internal/state"
)

const logQueryWidth = 60

// NewLogCommand creates the log command.
func NewLogCommand() *cobra.Command {
	var limit int
	var format string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent drill-down queries",
		Long: `Show the most recent queries from the query log, newest first.

The log records every drill-down the dashboard runs and every statement
executed through 'leapscope query', including failures.`,
		Example: `  # Show the last 20 queries
  leapscope log

  # Show the last 5, as JSON
  leapscope log -n 5 --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContextWithoutExecutor(cmd)

			st, err := state.Open(cmdCtx.Cfg.StateFile, cmdCtx.Logger)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			records, err := st.RecentQueries(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return renderQueryLog(cmd.OutOrStdout(), records, format)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json")

	return cmd
}

func renderQueryLog(w io.Writer, records []state.QueryRecord, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "(no queries logged)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"When", "Status", "Rows", "Took", "Query"})

	for _, r := range records {
		status := r.Status
		if r.Status == "error" && r.Error != "" {
			status = "error: " + truncate(r.Error, 30)
		}
		t.AppendRow(table.Row{
			r.ExecutedAt.Format("2006-01-02 15:04:05"),
			status,
			r.RowCount,
			(time.Duration(r.DurationMS) * time.Millisecond).String(),
			truncate(collapseSpace(r.Query), logQueryWidth),
		})
	}

	t.Render()
	_, _ = countPrinter.Fprintf(w, "(%d queries)\n", len(records))
	return nil
}

// collapseSpace flattens a query onto one line for the table view.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
