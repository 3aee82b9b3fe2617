package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapscope/internal/history"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage chart snapshots",
		Long: `List and manage the chart snapshots kept by the dashboard.

Every payload the dashboard receives is stored as a snapshot, so past
charts can be reopened from the Home tab or inspected here.`,
		Example: `  # List snapshots, newest first
  leapscope history

  # Delete the second snapshot from the list
  leapscope history rm 2

  # Delete all snapshots
  leapscope history clear`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryList(cmd, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json")

	cmd.AddCommand(newHistoryRmCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func runHistoryList(cmd *cobra.Command, format string) error {
	cmdCtx := NewCommandContextWithoutExecutor(cmd)
	store := newHistoryStore(cmdCtx)

	entries, err := store.List()
	if err != nil {
		return err
	}
	return renderHistory(cmd.OutOrStdout(), entries, format)
}

// newHistoryRmCommand creates the rm subcommand.
func newHistoryRmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index|path>",
		Short: "Delete one snapshot",
		Long: `Delete a snapshot by its index in the listing (1-based) or by its
file path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContextWithoutExecutor(cmd)
			store := newHistoryStore(cmdCtx)

			entries, err := store.List()
			if err != nil {
				return err
			}
			entry, err := resolveEntry(entries, args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(entry.Path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", entry.Path)
			return nil
		},
	}
}

// newHistoryClearCommand creates the clear subcommand.
func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all snapshots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContextWithoutExecutor(cmd)
			store := newHistoryStore(cmdCtx)

			entries, err := store.List()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d snapshots\n", len(entries))
			return nil
		},
	}
}

func newHistoryStore(cmdCtx *CommandContext) *history.Store {
	return history.NewStore(history.Config{
		Dir:     cmdCtx.Cfg.History.Dir,
		Limit:   cmdCtx.Cfg.History.Limit,
		MaxRows: cmdCtx.Cfg.Data.MaxRows,
		Logger:  cmdCtx.Logger,
	})
}

// resolveEntry accepts a 1-based listing index or a snapshot path.
func resolveEntry(entries []history.Entry, arg string) (history.Entry, error) {
	if idx, err := strconv.Atoi(arg); err == nil {
		if idx < 1 || idx > len(entries) {
			return history.Entry{}, fmt.Errorf("index %d out of range (1-%d)", idx, len(entries))
		}
		return entries[idx-1], nil
	}
	for _, e := range entries {
		if e.Path == arg {
			return e, nil
		}
	}
	return history.Entry{}, fmt.Errorf("no snapshot matches %q", arg)
}

func renderHistory(w io.Writer, entries []history.Entry, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "(no snapshots)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Title", "Type", "Rows", "When", "Path"})

	for i, e := range entries {
		title := e.Title
		if title == "" {
			title = "(untitled)"
		}
		when := ""
		if e.Timestamp > 0 {
			when = time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04:05")
		}
		t.AppendRow(table.Row{i + 1, title, e.ChartType, e.RowCount, when, e.Path})
	}

	t.Render()
	_, _ = countPrinter.Fprintf(w, "(%d snapshots)\n", len(entries))
	return nil
}
